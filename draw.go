package overlook

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	text "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// UI metrics shared by the widget constructors and the panel.
const (
	defaultTextSize = 13
	checkboxSize    = 14
	checkboxInset   = 3.5
	checkboxStroke  = 1.5

	shadowOffset = 3.0
	shadowAlpha  = 0.22
)

var shadowColor = Color{0, 0, 0, shadowAlpha}

// drawWidget renders w and its children. ox/oy is the accumulated parent
// offset in screen coordinates; alpha the accumulated parent alpha.
// Later siblings draw on top.
func drawWidget(screen *ebiten.Image, w *Widget, ox, oy, alpha float64) {
	if !w.Visible {
		return
	}
	alpha *= w.Alpha
	x := ox + w.X
	y := oy + w.Y

	switch w.Kind {
	case WidgetRect:
		r := Rect{X: x, Y: y, Width: w.Width, Height: w.Height}
		if w.Shadow {
			sr := r
			sr.X += shadowOffset
			sr.Y += shadowOffset
			fillRoundedRect(screen, sr, w.Corner, shadowColor.scaled(alpha))
		}
		fillRoundedRect(screen, r, w.Corner, w.Color.scaled(alpha))
	case WidgetText:
		drawText(screen, w.Text, x, y, w.TextSize, w.TextColor.scaled(alpha))
	case WidgetCheckbox:
		drawCheckbox(screen, Rect{X: x, Y: y, Width: w.Width, Height: w.Height}, w.Checked, w.TextColor.scaled(alpha))
	}

	for _, child := range w.children {
		drawWidget(screen, child, x, y, alpha)
	}
}

// drawText renders a single line of text with its top-left corner at (x, y).
func drawText(screen *ebiten.Image, s string, x, y, size float64, c Color) {
	if s == "" || c.A <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.toRGBA())
	text.Draw(screen, s, DefaultFont().face(size), op)
}

// drawCheckbox renders the box outline and, when checked, the inner fill.
func drawCheckbox(screen *ebiten.Image, r Rect, checked bool, c Color) {
	outline := []Vec2{
		{r.X, r.Y},
		{r.X + r.Width, r.Y},
		{r.X + r.Width, r.Y + r.Height},
		{r.X, r.Y + r.Height},
		{r.X, r.Y},
	}
	verts, inds := buildPolylineStroke(outline, checkboxStroke, c)
	drawSolidTriangles(screen, verts, inds)

	if checked {
		inner := Rect{
			X:      r.X + checkboxInset,
			Y:      r.Y + checkboxInset,
			Width:  r.Width - 2*checkboxInset,
			Height: r.Height - 2*checkboxInset,
		}
		fillRoundedRect(screen, inner, 1, c)
	}
}

// fillRoundedRect fills a rectangle with rounded corners using fan
// triangulation over the generated outline.
func fillRoundedRect(screen *ebiten.Image, r Rect, radius float64, c Color) {
	if r.Width <= 0 || r.Height <= 0 || c.A <= 0 {
		return
	}
	verts, inds := buildPolygonFan(roundedRectOutline(r, radius), c)
	drawSolidTriangles(screen, verts, inds)
}

// cornerSegments is the number of segments approximating each quarter-circle
// corner arc.
const cornerSegments = 6

// roundedRectOutline returns the clockwise outline of r with the given corner
// radius. A non-positive radius yields the four corners.
func roundedRectOutline(r Rect, radius float64) []Vec2 {
	if radius <= 0 {
		return []Vec2{
			{r.X, r.Y},
			{r.X + r.Width, r.Y},
			{r.X + r.Width, r.Y + r.Height},
			{r.X, r.Y + r.Height},
		}
	}
	radius = math.Min(radius, math.Min(r.Width, r.Height)/2)

	// Arc centers, in clockwise order starting top-left.
	centers := [4]Vec2{
		{r.X + radius, r.Y + radius},
		{r.X + r.Width - radius, r.Y + radius},
		{r.X + r.Width - radius, r.Y + r.Height - radius},
		{r.X + radius, r.Y + r.Height - radius},
	}
	startAngles := [4]float64{math.Pi, 1.5 * math.Pi, 0, 0.5 * math.Pi}

	points := make([]Vec2, 0, 4*(cornerSegments+1))
	for i := 0; i < 4; i++ {
		for s := 0; s <= cornerSegments; s++ {
			angle := startAngles[i] + float64(s)/cornerSegments*(math.Pi/2)
			points = append(points, Vec2{
				X: centers[i].X + math.Cos(angle)*radius,
				Y: centers[i].Y + math.Sin(angle)*radius,
			})
		}
	}
	return points
}

// drawSolidTriangles submits untextured triangles backed by the shared white
// pixel.
func drawSolidTriangles(screen *ebiten.Image, verts []ebiten.Vertex, inds []uint16) {
	if len(inds) == 0 {
		return
	}
	screen.DrawTriangles(verts, inds, WhitePixel, nil)
}
