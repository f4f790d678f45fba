package overlook

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// panAnim holds active pan tweens for camera latitude and longitude.
type panAnim struct {
	tweenLat *gween.Tween
	tweenLng *gween.Tween
	doneLat  bool
	doneLng  bool
}

// GeoCamera maps geographic coordinates onto the screen using an
// equirectangular projection about its center: one degree of latitude is
// Scale pixels, one degree of longitude Scale*cos(center latitude) pixels.
// Good enough for the city-block extents building overlays cover.
type GeoCamera struct {
	// Center is the geographic coordinate at the middle of the viewport.
	Center LatLng
	// Scale is the zoom level in pixels per degree of latitude.
	Scale float64
	// Viewport is the screen-space rectangle this camera projects into.
	Viewport Rect

	panTween *panAnim
	moved    bool
}

// defaultCameraScale shows roughly a neighborhood on a desktop window.
const defaultCameraScale = 200000

// newGeoCamera creates a camera with default values and the given viewport.
func newGeoCamera(viewport Rect) *GeoCamera {
	return &GeoCamera{
		Scale:    defaultCameraScale,
		Viewport: viewport,
	}
}

// PanTo animates the camera center to target over duration seconds.
func (c *GeoCamera) PanTo(target LatLng, duration float32, easeFn ease.TweenFunc) {
	c.panTween = &panAnim{
		tweenLat: gween.New(float32(c.Center.Lat), float32(target.Lat), duration, easeFn),
		tweenLng: gween.New(float32(c.Center.Lng), float32(target.Lng), duration, easeFn),
	}
}

// JumpTo snaps the camera center to target, cancelling any active pan.
func (c *GeoCamera) JumpTo(target LatLng) {
	c.panTween = nil
	c.Center = target
	c.moved = true
}

// FitBounds centers the camera on the given geographic box and picks a scale
// that fits it inside the viewport with the given pixel padding on each side.
func (c *GeoCamera) FitBounds(sw, ne LatLng, padding float64) {
	c.panTween = nil
	c.Center = LatLng{
		Lat: (sw.Lat + ne.Lat) / 2,
		Lng: (sw.Lng + ne.Lng) / 2,
	}
	spanLat := math.Abs(ne.Lat - sw.Lat)
	spanLng := math.Abs(ne.Lng-sw.Lng) * c.lngStretch()
	availW := c.Viewport.Width - 2*padding
	availH := c.Viewport.Height - 2*padding
	if availW <= 0 || availH <= 0 || (spanLat == 0 && spanLng == 0) {
		c.moved = true
		return
	}
	scale := math.Inf(1)
	if spanLng > 0 {
		scale = availW / spanLng
	}
	if spanLat > 0 {
		scale = math.Min(scale, availH/spanLat)
	}
	if !math.IsInf(scale, 1) {
		c.Scale = scale
	}
	c.moved = true
}

// update advances pan tweens. Called from Viewer.Update.
func (c *GeoCamera) update(dt float32) {
	prev := c.Center
	if c.panTween != nil {
		if !c.panTween.doneLat {
			val, done := c.panTween.tweenLat.Update(dt)
			c.Center.Lat = float64(val)
			c.panTween.doneLat = done
		}
		if !c.panTween.doneLng {
			val, done := c.panTween.tweenLng.Update(dt)
			c.Center.Lng = float64(val)
			c.panTween.doneLng = done
		}
		if c.panTween.doneLat && c.panTween.doneLng {
			c.panTween = nil
		}
	}
	if c.Center != prev {
		c.moved = true
	}
}

// takeMoved reports and clears the moved flag. The viewer uses it to decide
// when projected geometry must be rebuilt.
func (c *GeoCamera) takeMoved() bool {
	m := c.moved
	c.moved = false
	return m
}

// lngStretch is the latitude-dependent longitude compression factor.
func (c *GeoCamera) lngStretch() float64 {
	return math.Cos(c.Center.Lat * math.Pi / 180)
}

// Project converts a geographic coordinate to screen coordinates.
func (c *GeoCamera) Project(p LatLng) (sx, sy float64) {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	sx = cx + (p.Lng-c.Center.Lng)*c.Scale*c.lngStretch()
	sy = cy - (p.Lat-c.Center.Lat)*c.Scale
	return
}

// Unproject converts screen coordinates back to a geographic coordinate.
func (c *GeoCamera) Unproject(sx, sy float64) LatLng {
	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	stretch := c.lngStretch()
	p := LatLng{
		Lat: c.Center.Lat - (sy-cy)/c.Scale,
	}
	if stretch != 0 {
		p.Lng = c.Center.Lng + (sx-cx)/(c.Scale*stretch)
	} else {
		p.Lng = c.Center.Lng
	}
	return p
}

// VisibleBounds returns the geographic box currently covered by the viewport
// as (south-west, north-east) corners.
func (c *GeoCamera) VisibleBounds() (sw, ne LatLng) {
	tl := c.Unproject(c.Viewport.X, c.Viewport.Y)
	br := c.Unproject(c.Viewport.X+c.Viewport.Width, c.Viewport.Y+c.Viewport.Height)
	sw = LatLng{Lat: math.Min(tl.Lat, br.Lat), Lng: math.Min(tl.Lng, br.Lng)}
	ne = LatLng{Lat: math.Max(tl.Lat, br.Lat), Lng: math.Max(tl.Lng, br.Lng)}
	return
}
