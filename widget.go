package overlook

// ClickContext carries click event data. Target is the deepest widget under
// the pointer; the handler may live on any of its ancestors (delegation).
type ClickContext struct {
	// Target is the widget actually hit, not the widget owning the handler.
	Target *Widget
	// X and Y are the click position in screen coordinates.
	X, Y float64
	// Button is the mouse button that produced the click.
	Button MouseButton
}

// WidgetKind distinguishes drawing and interaction behavior for a Widget.
type WidgetKind uint8

const (
	WidgetContainer WidgetKind = iota // group widget with no visual output
	WidgetRect                        // solid rounded rectangle
	WidgetText                        // single-line text label
	WidgetCheckbox                    // toggleable checkbox
)

// widgetIDCounter is a plain counter (no atomic — overlook is single-threaded).
var widgetIDCounter uint64

func nextWidgetID() uint64 {
	widgetIDCounter++
	return widgetIDCounter
}

// Widget is a retained UI element. Widgets form a tree below the viewer's
// UI root; children are positioned relative to their parent and drawn after
// it (later siblings on top). A single flat struct covers all kinds.
type Widget struct {
	// Identity
	ID   uint64
	Name string
	Kind WidgetKind

	// Hierarchy
	Parent   *Widget
	children []*Widget

	// Layout (relative to parent)
	X, Y          float64
	Width, Height float64

	// Appearance
	Visible bool
	Alpha   float64
	Color   Color
	// Corner is the corner rounding radius for WidgetRect backgrounds.
	Corner float64
	// Shadow draws a soft offset shadow behind a WidgetRect.
	Shadow bool

	// Text fields (WidgetText, and the checkbox glyph color)
	Text      string
	TextSize  float64
	TextColor Color

	// Checkbox fields (WidgetCheckbox)
	Checked bool
	// AccessibleLabel names the control for assistive queries; it is never
	// drawn.
	AccessibleLabel string

	// Metadata
	UserData any

	// OnClick fires when a click resolves to this widget or one of its
	// descendants without a nearer handler. Nil by default.
	OnClick func(ClickContext)

	// Internal
	disposed bool
}

// widgetDefaults sets the common default field values shared by all constructors.
func widgetDefaults(w *Widget) {
	w.ID = nextWidgetID()
	w.Visible = true
	w.Alpha = 1
	w.Color = ColorWhite
	w.TextSize = defaultTextSize
	w.TextColor = Color{0.1, 0.1, 0.1, 1}
}

// NewContainer creates a container widget with no visual representation.
func NewContainer(name string) *Widget {
	w := &Widget{Name: name, Kind: WidgetContainer}
	widgetDefaults(w)
	return w
}

// NewRect creates a solid rectangle widget.
func NewRect(name string, width, height float64, c Color) *Widget {
	w := &Widget{Name: name, Kind: WidgetRect, Width: width, Height: height}
	widgetDefaults(w)
	w.Color = c
	return w
}

// NewLabel creates a single-line text widget sized to its content at draw
// time.
func NewLabel(name, content string) *Widget {
	w := &Widget{Name: name, Kind: WidgetText, Text: content}
	widgetDefaults(w)
	return w
}

// NewCheckbox creates an unchecked checkbox widget with the default box size.
func NewCheckbox(name string) *Widget {
	w := &Widget{Name: name, Kind: WidgetCheckbox, Width: checkboxSize, Height: checkboxSize}
	widgetDefaults(w)
	return w
}

// --- Tree manipulation ---

// AddChild appends child to this widget's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this widget (cycle).
func (w *Widget) AddChild(child *Widget) {
	if child == nil {
		panic("overlook: cannot add nil child widget")
	}
	if widgetIsAncestor(child, w) {
		panic("overlook: adding child widget would create a cycle")
	}
	if globalDebug {
		debugCheckDisposed(w, "AddChild")
		debugCheckDisposed(child, "AddChild")
		debugCheckTreeDepth(w)
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = w
	w.children = append(w.children, child)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (w *Widget) AddChildAt(child *Widget, index int) {
	if child == nil {
		panic("overlook: cannot add nil child widget")
	}
	if widgetIsAncestor(child, w) {
		panic("overlook: adding child widget would create a cycle")
	}
	if index < 0 || index > len(w.children) {
		panic("overlook: child widget index out of range")
	}
	if globalDebug {
		debugCheckDisposed(w, "AddChildAt")
		debugCheckDisposed(child, "AddChildAt")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = w
	w.children = append(w.children, nil)
	copy(w.children[index+1:], w.children[index:])
	w.children[index] = child
}

// RemoveChild detaches child from this widget.
// Panics if child.Parent != w.
func (w *Widget) RemoveChild(child *Widget) {
	if child.Parent != w {
		panic("overlook: child widget's parent is not this widget")
	}
	w.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveChildren detaches all children from this widget.
// Children are NOT disposed.
func (w *Widget) RemoveChildren() {
	for _, child := range w.children {
		child.Parent = nil
	}
	w.children = w.children[:0]
}

// RemoveFromParent detaches this widget from its parent.
// No-op if this widget has no parent.
func (w *Widget) RemoveFromParent() {
	if w.Parent == nil {
		return
	}
	w.Parent.RemoveChild(w)
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (w *Widget) Children() []*Widget {
	return w.children
}

// NumChildren returns the number of children.
func (w *Widget) NumChildren() int {
	return len(w.children)
}

// ChildAt returns the child at the given index.
func (w *Widget) ChildAt(index int) *Widget {
	return w.children[index]
}

// Find returns the first widget named name in a depth-first walk of this
// widget's subtree (excluding the widget itself), or nil.
func (w *Widget) Find(name string) *Widget {
	for _, child := range w.children {
		if child.Name == name {
			return child
		}
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Geometry ---

// AbsoluteBounds returns the widget's rectangle in screen coordinates,
// accumulated through its ancestors.
func (w *Widget) AbsoluteBounds() Rect {
	x, y := w.X, w.Y
	for p := w.Parent; p != nil; p = p.Parent {
		x += p.X
		y += p.Y
	}
	return Rect{X: x, Y: y, Width: w.Width, Height: w.Height}
}

// hitTest returns the deepest visible widget whose bounds contain the screen
// point (x, y), preferring later siblings (drawn on top). Containers with
// zero area never match themselves but their children still do.
func (w *Widget) hitTest(x, y float64) *Widget {
	if !w.Visible {
		return nil
	}
	for i := len(w.children) - 1; i >= 0; i-- {
		if hit := w.children[i].hitTest(x, y); hit != nil {
			return hit
		}
	}
	if w.Width <= 0 || w.Height <= 0 {
		return nil
	}
	if w.AbsoluteBounds().Contains(x, y) {
		return w
	}
	return nil
}

// --- Disposal ---

// Dispose removes this widget from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (w *Widget) Dispose() {
	if w.disposed {
		return
	}
	w.RemoveFromParent()
	w.dispose()
}

func (w *Widget) dispose() {
	w.disposed = true
	w.ID = 0
	for _, child := range w.children {
		child.Parent = nil
		child.dispose()
	}
	w.children = nil
	w.Parent = nil
	w.UserData = nil
	w.OnClick = nil
}

// IsDisposed returns true if this widget has been disposed.
func (w *Widget) IsDisposed() bool {
	return w.disposed
}

// --- Helpers ---

// widgetIsAncestor reports whether candidate is an ancestor of widget.
func widgetIsAncestor(candidate, widget *Widget) bool {
	for p := widget; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from w.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (w *Widget) removeChildByPtr(child *Widget) {
	for i, c := range w.children {
		if c == child {
			copy(w.children[i:], w.children[i+1:])
			w.children[len(w.children)-1] = nil
			w.children = w.children[:len(w.children)-1]
			return
		}
	}
}
