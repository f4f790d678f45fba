// Package czml reads and writes the small CZML subset used for extruded
// building overlays: a document packet with a fixed clock plus one polygon
// packet per building.
package czml

import (
	"encoding/json"
	"fmt"
)

// Document is an ordered list of CZML packets. The first packet is the
// document packet.
type Document []Packet

// Packet is a single CZML packet. Only the fields the building subset uses
// are modeled.
type Packet struct {
	ID      string   `json:"id"`
	Name    string   `json:"name,omitempty"`
	Version string   `json:"version,omitempty"`
	Clock   *Clock   `json:"clock,omitempty"`
	Polygon *Polygon `json:"polygon,omitempty"`
}

// Clock pins the document to a fixed interval.
type Clock struct {
	Interval    string  `json:"interval"`
	CurrentTime string  `json:"currentTime"`
	Multiplier  float64 `json:"multiplier"`
}

// Polygon is an extruded ground polygon.
type Polygon struct {
	Positions         PositionList `json:"positions"`
	PerPositionHeight bool         `json:"perPositionHeight"`
	ExtrudedHeight    float64      `json:"extrudedHeight"`
	Height            float64      `json:"height"`
	Material          *Material    `json:"material,omitempty"`
	Outline           bool         `json:"outline"`
	OutlineColor      *ColorValue  `json:"outlineColor,omitempty"`
}

// PositionList carries a flat lon, lat, height triplet list in degrees.
type PositionList struct {
	CartographicDegrees []float64 `json:"cartographicDegrees"`
}

// Material is a polygon surface material.
type Material struct {
	SolidColor *SolidColor `json:"solidColor,omitempty"`
}

// SolidColor is a single-color material.
type SolidColor struct {
	Color ColorValue `json:"color"`
}

// ColorValue is an RGBA color with 0-255 components.
type ColorValue struct {
	RGBA [4]int `json:"rgba"`
}

// Fixed document constants shared by every generated building document.
const (
	documentVersion  = "1.0"
	clockInterval    = "2020-01-01T00:00:00Z/2020-01-01T00:01:00Z"
	clockCurrentTime = "2020-01-01T00:00:00Z"
	clockMultiplier  = 1
)

// DefaultExtrudedHeight is used when a building has no usable height tags.
const DefaultExtrudedHeight = 10.0

// Building fill and outline colors.
var (
	buildingFill    = ColorValue{RGBA: [4]int{255, 165, 0, 160}}
	buildingOutline = ColorValue{RGBA: [4]int{0, 0, 0, 255}}
)

// Position is a geographic coordinate in degrees.
type Position struct {
	Lat, Lng float64
}

// BuildingDocument builds the two-packet document for one building way:
// the document packet and an extruded orange polygon packet. outline is the
// closed ground ring; height is the extrusion height in meters, with nil
// meaning unknown (DefaultExtrudedHeight is used).
func BuildingDocument(wayID int64, outline []Position, height *float64) Document {
	extruded := DefaultExtrudedHeight
	if height != nil {
		extruded = *height
	}

	cartographic := make([]float64, 0, len(outline)*3)
	for _, p := range outline {
		cartographic = append(cartographic, p.Lng, p.Lat, 0.0)
	}

	return Document{
		{
			ID:      "document",
			Name:    fmt.Sprintf("OSM Way %d", wayID),
			Version: documentVersion,
			Clock: &Clock{
				Interval:    clockInterval,
				CurrentTime: clockCurrentTime,
				Multiplier:  clockMultiplier,
			},
		},
		{
			ID:   fmt.Sprintf("building-%d", wayID),
			Name: fmt.Sprintf("Building %d", wayID),
			Polygon: &Polygon{
				Positions:         PositionList{CartographicDegrees: cartographic},
				PerPositionHeight: false,
				ExtrudedHeight:    extruded,
				Height:            0.0,
				Material:          &Material{SolidColor: &SolidColor{Color: buildingFill}},
				Outline:           true,
				OutlineColor:      &buildingOutline,
			},
		},
	}
}

// Parse decodes a CZML document.
func Parse(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse czml: %w", err)
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("parse czml: empty document")
	}
	return doc, nil
}

// Encode renders the document as indented JSON with a trailing newline,
// matching the on-disk format of the fetcher output.
func (d Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode czml: %w", err)
	}
	return append(data, '\n'), nil
}

// PolygonFeature is a decoded polygon packet.
type PolygonFeature struct {
	ID             string
	Name           string
	Outline        []Position
	ExtrudedHeight float64
}

// Polygons extracts every polygon packet, in packet order. Incomplete
// coordinate triplets at the tail are dropped; packets with no complete
// triplet are skipped.
func (d Document) Polygons() []PolygonFeature {
	var features []PolygonFeature
	for _, p := range d {
		if p.Polygon == nil {
			continue
		}
		deg := p.Polygon.Positions.CartographicDegrees
		ring := make([]Position, 0, len(deg)/3)
		for i := 0; i+2 < len(deg); i += 3 {
			ring = append(ring, Position{Lng: deg[i], Lat: deg[i+1]})
		}
		if len(ring) == 0 {
			continue
		}
		features = append(features, PolygonFeature{
			ID:             p.ID,
			Name:           p.Name,
			Outline:        ring,
			ExtrudedHeight: p.Polygon.ExtrudedHeight,
		})
	}
	return features
}
