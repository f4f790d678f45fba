package overlook

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS overlays a small FPS/TPS readout in the bottom-left corner.
	ShowFPS bool
}

// Run creates a resizable window and drives the viewer with ebiten's game
// loop. Blocks until the window closes.
func Run(v *Viewer, cfg RunConfig) error {
	width := cfg.Width
	if width <= 0 {
		width = defaultViewportW
	}
	height := cfg.Height
	if height <= 0 {
		height = defaultViewportH
	}
	title := cfg.Title
	if title == "" {
		title = "overlook"
	}

	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{viewer: v}
	if cfg.ShowFPS {
		g.fps = newFPSWidget()
		v.UI().AddChild(g.fps)
	}
	return ebiten.RunGame(g)
}

// game adapts a Viewer to the ebiten.Game interface.
type game struct {
	viewer     *Viewer
	fps        *Widget
	fpsElapsed float64
}

func (g *game) Update() error {
	g.viewer.Update()
	if g.fps != nil {
		g.updateFPS()
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.viewer.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewer.Layout(outsideWidth, outsideHeight)
}

// fpsInterval is how often the FPS readout refreshes, in seconds.
const fpsInterval = 0.5

// newFPSWidget creates the FPS/TPS readout label.
func newFPSWidget() *Widget {
	w := NewLabel("fps", "")
	w.TextSize = 11
	w.TextColor = Color{1, 1, 1, 0.8}
	return w
}

func (g *game) updateFPS() {
	g.fpsElapsed += 1.0 / float64(ebiten.TPS())
	if g.fpsElapsed < fpsInterval {
		return
	}
	g.fpsElapsed = 0
	g.fps.Text = fmt.Sprintf("FPS %.1f | TPS %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	_, h := g.viewer.Size()
	g.fps.X = 8
	g.fps.Y = float64(h) - 20
}
