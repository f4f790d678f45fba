package overlook

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(c.R * c.A * 255)),
		G: uint8(math.Round(c.G * c.A * 255)),
		B: uint8(math.Round(c.B * c.A * 255)),
		A: uint8(math.Round(c.A * 255)),
	}
}

// scaled returns the color with its alpha multiplied by a.
func (c Color) scaled(a float64) Color {
	c.A *= a
	return c
}

// Vec2 is a 2D vector used for positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat, Lng float64
}

// Footprint is a single drawable overlay shape: a closed ground outline with
// an extrusion height. The outline's last point repeats the first.
type Footprint struct {
	Outline []LatLng
	// Height is the extrusion height in meters. Zero means unknown; the
	// viewer shades unknown-height footprints the same as single-story ones.
	Height float64
	// Label is optional descriptive text (street address, way ID).
	Label string
}

// WhitePixel is a 1x1 white image used for solid color fills.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)
