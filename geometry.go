package overlook

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// buildPolygonFan generates vertices and indices for a fan-triangulated
// polygon in screen space. N vertices, 3*(N-2) indices. Fan triangulation
// assumes convex outlines, which covers typical building footprints; concave
// shapes render with minor artifacts rather than failing.
func buildPolygonFan(points []Vec2, c Color) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}

	verts := make([]ebiten.Vertex, n)
	inds := make([]uint16, (n-2)*3)

	r := float32(c.R * c.A)
	g := float32(c.G * c.A)
	b := float32(c.B * c.A)
	a := float32(c.A)

	for i, p := range points {
		v := &verts[i]
		v.DstX = float32(p.X)
		v.DstY = float32(p.Y)
		v.SrcX = 0.5
		v.SrcY = 0.5
		v.ColorR = r
		v.ColorG = g
		v.ColorB = b
		v.ColorA = a
	}

	for i := 0; i < n-2; i++ {
		inds[i*3] = 0
		inds[i*3+1] = uint16(i + 1)
		inds[i*3+2] = uint16(i + 2)
	}

	return verts, inds
}

// buildPolylineStroke generates quad geometry along the given open polyline
// with the given stroke width. 4 vertices and 6 indices per segment.
func buildPolylineStroke(points []Vec2, width float64, c Color) ([]ebiten.Vertex, []uint16) {
	if len(points) < 2 || width <= 0 {
		return nil, nil
	}

	half := width / 2
	segs := len(points) - 1
	verts := make([]ebiten.Vertex, 0, segs*4)
	inds := make([]uint16, 0, segs*6)

	r := float32(c.R * c.A)
	g := float32(c.G * c.A)
	b := float32(c.B * c.A)
	a := float32(c.A)

	for i := 0; i < segs; i++ {
		p0, p1 := points[i], points[i+1]
		px, py := perpendicular(p0, p1)
		if px == 0 && py == 0 {
			continue // degenerate segment
		}
		px *= half
		py *= half

		base := uint16(len(verts))
		for _, corner := range [4]Vec2{
			{p0.X + px, p0.Y + py},
			{p0.X - px, p0.Y - py},
			{p1.X - px, p1.Y - py},
			{p1.X + px, p1.Y + py},
		} {
			verts = append(verts, ebiten.Vertex{
				DstX: float32(corner.X), DstY: float32(corner.Y),
				SrcX: 0.5, SrcY: 0.5,
				ColorR: r, ColorG: g, ColorB: b, ColorA: a,
			})
		}
		inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	}

	return verts, inds
}

// perpendicular returns the unit vector perpendicular to the segment a→b,
// or (0, 0) for a zero-length segment.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return 0, 0
	}
	return -dy / length, dx / length
}
