package overlook

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Default window/viewport size used before the first Layout call.
const (
	defaultViewportW = 960
	defaultViewportH = 640
)

// Viewer owns the data-source collection, the geographic camera, and the
// widget layer. It draws every visible source's footprints under an
// equirectangular projection and dispatches pointer input to widgets.
type Viewer struct {
	// DataSources is the viewer's overlay registry.
	DataSources *DataSourceCollection
	// Camera controls the geographic projection.
	Camera *GeoCamera

	// ClearColor is the map background.
	ClearColor Color
	// FillColor and OutlineColor shade footprints without a color of their
	// own. Defaults match the CZML building material (orange, black outline).
	FillColor    Color
	OutlineColor Color

	ui            *Widget
	width, height int

	// Deferred frame tasks (the coalescing tick).
	tasks        []func()
	runningTasks []func()

	// Render state
	needsRender bool
	geometry    []sourceGeometry

	// Per-source changed listeners for geometry invalidation.
	watched map[DataSource]func()

	// Input state
	pressTarget    *Widget
	pressX, pressY float64
	injectQueue    []syntheticPointerEvent
}

// sourceGeometry is the projected, triangulated form of one visible source.
type sourceGeometry struct {
	fillVerts   []ebiten.Vertex
	fillInds    []uint16
	strokeVerts []ebiten.Vertex
	strokeInds  []uint16
}

// footprintStrokeWidth is the screen-space outline width in pixels.
const footprintStrokeWidth = 1.5

// NewViewer creates a viewer with an empty data-source collection.
func NewViewer() *Viewer {
	v := &Viewer{
		DataSources:  NewDataSourceCollection(),
		Camera:       newGeoCamera(Rect{Width: defaultViewportW, Height: defaultViewportH}),
		ClearColor:   Color{R: 0.09, G: 0.11, B: 0.13, A: 1},
		FillColor:    Color{R: 1, G: 165.0 / 255, B: 0, A: 160.0 / 255},
		OutlineColor: Color{R: 0, G: 0, B: 0, A: 1},
		ui:           NewContainer("root"),
		width:        defaultViewportW,
		height:       defaultViewportH,
		watched:      map[DataSource]func(){},
		needsRender:  true,
	}
	v.DataSources.SourceAdded.AddListener(func(ch CollectionChange) {
		v.watchSource(ch.Source)
		v.RequestRender()
	})
	v.DataSources.SourceRemoved.AddListener(func(ch CollectionChange) {
		v.unwatchSource(ch.Source)
		v.RequestRender()
	})
	return v
}

// UI returns the root container of the widget layer.
func (v *Viewer) UI() *Widget {
	return v.ui
}

// Size returns the current viewport size in pixels.
func (v *Viewer) Size() (width, height int) {
	return v.width, v.height
}

// RequestRender marks the scene dirty so projected geometry is rebuilt on
// the next draw.
func (v *Viewer) RequestRender() {
	v.needsRender = true
}

// InvokeLater queues fn to run at the start of the next Update, after the
// current synchronous burst of events has finished. Tasks queued by a
// running task execute one tick later.
func (v *Viewer) InvokeLater(fn func()) {
	if fn == nil {
		return
	}
	v.tasks = append(v.tasks, fn)
}

// runPendingTasks drains the tasks queued before this tick.
func (v *Viewer) runPendingTasks() {
	if len(v.tasks) == 0 {
		return
	}
	v.runningTasks = append(v.runningTasks[:0], v.tasks...)
	v.tasks = v.tasks[:0]
	for i, fn := range v.runningTasks {
		v.runningTasks[i] = nil
		fn()
	}
}

// Update drains deferred tasks, advances camera tweens, and processes
// pointer input. Call once per game tick.
func (v *Viewer) Update() {
	v.runPendingTasks()

	dt := float32(1.0 / float64(ebiten.TPS()))
	v.Camera.update(dt)

	v.processInput()
}

// Draw renders the projected footprints and then the widget layer.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.ClearColor.toRGBA())

	if v.needsRender || v.Camera.takeMoved() {
		v.rebuildGeometry()
		v.needsRender = false
	}
	for i := range v.geometry {
		geo := &v.geometry[i]
		drawSolidTriangles(screen, geo.fillVerts, geo.fillInds)
		drawSolidTriangles(screen, geo.strokeVerts, geo.strokeInds)
	}

	drawWidget(screen, v.ui, 0, 0, 1)
}

// Layout implements the ebiten.Game sizing contract for hosts embedding the
// viewer directly.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (v *Viewer) resize(width, height int) {
	if width == v.width && height == v.height {
		return
	}
	v.width = width
	v.height = height
	v.Camera.Viewport = Rect{Width: float64(width), Height: float64(height)}
	v.needsRender = true
}

// rebuildGeometry reprojects and retriangulates every visible source.
func (v *Viewer) rebuildGeometry() {
	v.geometry = v.geometry[:0]
	for i := 0; i < v.DataSources.Len(); i++ {
		ds := v.DataSources.Get(i)
		if !ds.Show() {
			continue
		}
		fs, ok := ds.(FootprintSource)
		if !ok {
			continue
		}
		for _, fp := range fs.Footprints() {
			if len(fp.Outline) < 3 {
				continue
			}
			projected := make([]Vec2, len(fp.Outline))
			for j, p := range fp.Outline {
				x, y := v.Camera.Project(p)
				projected[j] = Vec2{X: x, Y: y}
			}
			var geo sourceGeometry
			geo.fillVerts, geo.fillInds = buildPolygonFan(projected, v.FillColor)
			geo.strokeVerts, geo.strokeInds = buildPolylineStroke(projected, footprintStrokeWidth, v.OutlineColor)
			v.geometry = append(v.geometry, geo)
		}
	}
}

// --- Source content watching ---

func (v *Viewer) watchSource(ds DataSource) {
	cs, ok := ds.(ChangingSource)
	if !ok || cs.ChangedEvent() == nil {
		return
	}
	v.watched[ds] = cs.ChangedEvent().AddListener(func(DataSource) {
		v.RequestRender()
	})
}

func (v *Viewer) unwatchSource(ds DataSource) {
	remove, ok := v.watched[ds]
	if !ok {
		return
	}
	remove()
	delete(v.watched, ds)
}

// --- Pointer input ---

func (v *Viewer) processInput() {
	if v.processInjected() {
		return
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		v.pointerPressed(x, y)
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		v.pointerReleased(x, y)
	}
}

func (v *Viewer) pointerPressed(x, y float64) {
	v.pressTarget = v.ui.hitTest(x, y)
	v.pressX, v.pressY = x, y
}

// pointerReleased completes a click when press and release land on the same
// widget.
func (v *Viewer) pointerReleased(x, y float64) {
	target := v.pressTarget
	v.pressTarget = nil
	if target == nil || target.IsDisposed() {
		return
	}
	if v.ui.hitTest(x, y) != target {
		return
	}
	v.dispatchClick(target, x, y, MouseButtonLeft)
}

// dispatchClick bubbles a click from target up the widget tree until a
// handler consumes it.
func (v *Viewer) dispatchClick(target *Widget, x, y float64, button MouseButton) {
	ctx := ClickContext{Target: target, X: x, Y: y, Button: button}
	for w := target; w != nil; w = w.Parent {
		if w.OnClick != nil {
			w.OnClick(ctx)
			return
		}
	}
}
