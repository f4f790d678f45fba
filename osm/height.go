package osm

import (
	"regexp"
	"strconv"
)

// numberPattern matches the first numeric token in a height tag, tolerating
// unit suffixes like "12 m" or "12m".
var numberPattern = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+`)

// metersPerLevel approximates building height from a floor count.
const metersPerLevel = 3.0

// normalizeHeight returns the building height in meters from the raw
// height tag, falling back to the level count times a standard floor
// height. Returns nil when neither tag yields a number.
func normalizeHeight(rawHeight, rawLevels string) *float64 {
	if h := firstNumber(rawHeight); h != nil {
		return h
	}
	if levels := firstNumber(rawLevels); levels != nil {
		h := *levels * metersPerLevel
		return &h
	}
	return nil
}

// firstNumber extracts the first numeric token of value, or nil.
func firstNumber(value string) *float64 {
	if value == "" {
		return nil
	}
	match := numberPattern.FindString(value)
	if match == "" {
		return nil
	}
	f, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return nil
	}
	return &f
}
