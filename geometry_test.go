package overlook

import (
	"math"
	"testing"
)

// --- Polygon fan ---

func TestBuildPolygonFanCounts(t *testing.T) {
	square := []Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	verts, inds := buildPolygonFan(square, ColorWhite)

	if len(verts) != 4 {
		t.Errorf("verts = %d, want 4", len(verts))
	}
	if len(inds) != 6 {
		t.Errorf("inds = %d, want 6 (two triangles)", len(inds))
	}
	// Every triangle fans out from vertex 0.
	for i := 0; i < len(inds); i += 3 {
		if inds[i] != 0 {
			t.Errorf("triangle %d does not start at the fan origin", i/3)
		}
	}
}

func TestBuildPolygonFanTooFewPoints(t *testing.T) {
	verts, inds := buildPolygonFan([]Vec2{{0, 0}, {1, 1}}, ColorWhite)
	if verts != nil || inds != nil {
		t.Error("fewer than 3 points should produce no geometry")
	}
}

func TestBuildPolygonFanPremultipliesColor(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: 0, A: 0.5}
	verts, _ := buildPolygonFan([]Vec2{{0, 0}, {1, 0}, {1, 1}}, c)

	v := verts[0]
	if v.ColorR != 0.5 || v.ColorG != 0.25 || v.ColorB != 0 || v.ColorA != 0.5 {
		t.Errorf("vertex color = (%v, %v, %v, %v), want premultiplied (0.5, 0.25, 0, 0.5)",
			v.ColorR, v.ColorG, v.ColorB, v.ColorA)
	}
}

// --- Polyline stroke ---

func TestBuildPolylineStrokeCounts(t *testing.T) {
	line := []Vec2{{0, 0}, {10, 0}, {10, 10}}
	verts, inds := buildPolylineStroke(line, 2, ColorWhite)

	if len(verts) != 8 {
		t.Errorf("verts = %d, want 8 (4 per segment)", len(verts))
	}
	if len(inds) != 12 {
		t.Errorf("inds = %d, want 12 (6 per segment)", len(inds))
	}
}

func TestBuildPolylineStrokeWidth(t *testing.T) {
	verts, _ := buildPolylineStroke([]Vec2{{0, 0}, {10, 0}}, 4, ColorWhite)

	// Horizontal segment: the quad's first two corners straddle the line
	// vertically by half the width each.
	if got := math.Abs(float64(verts[0].DstY - verts[1].DstY)); got != 4 {
		t.Errorf("quad thickness = %v, want the stroke width 4", got)
	}
}

func TestBuildPolylineStrokeSkipsDegenerateSegments(t *testing.T) {
	line := []Vec2{{0, 0}, {0, 0}, {10, 0}}
	verts, inds := buildPolylineStroke(line, 2, ColorWhite)

	if len(verts) != 4 || len(inds) != 6 {
		t.Errorf("geometry = %d verts / %d inds, want one quad (degenerate segment skipped)",
			len(verts), len(inds))
	}
}

func TestBuildPolylineStrokeEmpty(t *testing.T) {
	if v, i := buildPolylineStroke([]Vec2{{0, 0}}, 2, ColorWhite); v != nil || i != nil {
		t.Error("a single point should produce no geometry")
	}
	if v, i := buildPolylineStroke([]Vec2{{0, 0}, {1, 1}}, 0, ColorWhite); v != nil || i != nil {
		t.Error("zero width should produce no geometry")
	}
}

// --- Perpendicular ---

func TestPerpendicularUnitLength(t *testing.T) {
	px, py := perpendicular(Vec2{0, 0}, Vec2{3, 4})
	if got := math.Hypot(px, py); math.Abs(got-1) > 1e-12 {
		t.Errorf("|perpendicular| = %v, want 1", got)
	}
	// Perpendicularity: dot product with the segment direction is zero.
	if dot := px*3 + py*4; math.Abs(dot) > 1e-12 {
		t.Errorf("dot = %v, want 0", dot)
	}
}

func TestPerpendicularZeroSegment(t *testing.T) {
	px, py := perpendicular(Vec2{5, 5}, Vec2{5, 5})
	if px != 0 || py != 0 {
		t.Errorf("perpendicular of a zero segment = (%v, %v), want (0, 0)", px, py)
	}
}
