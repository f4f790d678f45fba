package overlook

import "testing"

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	w := NewContainer("test")
	assertWidgetDefaults(t, w, "test", WidgetContainer)
}

func TestNewRectDefaults(t *testing.T) {
	w := NewRect("rect", 100, 40, Color{0.5, 0.5, 0.5, 1})
	assertWidgetDefaults(t, w, "rect", WidgetRect)
	if w.Width != 100 || w.Height != 40 {
		t.Errorf("size = (%v, %v), want (100, 40)", w.Width, w.Height)
	}
	if w.Color != (Color{0.5, 0.5, 0.5, 1}) {
		t.Errorf("Color = %v, want the given color", w.Color)
	}
}

func TestNewLabelDefaults(t *testing.T) {
	w := NewLabel("lbl", "hello")
	assertWidgetDefaults(t, w, "lbl", WidgetText)
	if w.Text != "hello" {
		t.Errorf("Text = %q, want %q", w.Text, "hello")
	}
}

func TestNewCheckboxDefaults(t *testing.T) {
	w := NewCheckbox("cb")
	assertWidgetDefaults(t, w, "cb", WidgetCheckbox)
	if w.Checked {
		t.Error("new checkbox should be unchecked")
	}
	if w.Width != checkboxSize || w.Height != checkboxSize {
		t.Errorf("size = (%v, %v), want (%v, %v)", w.Width, w.Height, checkboxSize, checkboxSize)
	}
}

func assertWidgetDefaults(t *testing.T, w *Widget, name string, kind WidgetKind) {
	t.Helper()
	if w.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if w.Name != name {
		t.Errorf("Name = %q, want %q", w.Name, name)
	}
	if w.Kind != kind {
		t.Errorf("Kind = %d, want %d", w.Kind, kind)
	}
	if !w.Visible {
		t.Error("Visible should be true")
	}
	if w.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", w.Alpha)
	}
}

// --- Tree manipulation ---

func TestAddChildBasic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
	if parent.ChildAt(0) != child {
		t.Error("ChildAt(0) should be child")
	}
}

func TestAddChildReparent(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")

	p1.AddChild(child)
	p2.AddChild(child)

	if p1.NumChildren() != 0 {
		t.Error("p1 should have 0 children after reparent")
	}
	if p2.NumChildren() != 1 || child.Parent != p2 {
		t.Error("child should belong to p2")
	}
}

func TestAddChildCyclePanic(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for cycle, got none")
		}
	}()
	child.AddChild(parent)
}

func TestAddChildNilPanic(t *testing.T) {
	w := NewContainer("w")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for nil child, got none")
		}
	}()
	w.AddChild(nil)
}

func TestAddChildAt(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	c := NewContainer("c")
	parent.AddChild(a)
	parent.AddChild(c)

	parent.AddChildAt(b, 1)

	if parent.NumChildren() != 3 {
		t.Fatalf("NumChildren = %d, want 3", parent.NumChildren())
	}
	if parent.ChildAt(0) != a || parent.ChildAt(1) != b || parent.ChildAt(2) != c {
		t.Error("children should be in order a, b, c")
	}
}

func TestRemoveChildren(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	parent.AddChild(a)
	parent.AddChild(b)

	parent.RemoveChildren()

	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
	if a.Parent != nil || b.Parent != nil {
		t.Error("detached children should have nil Parent")
	}
	if a.IsDisposed() || b.IsDisposed() {
		t.Error("RemoveChildren should not dispose children")
	}
}

func TestRemoveChildWrongParentPanic(t *testing.T) {
	p1 := NewContainer("p1")
	p2 := NewContainer("p2")
	child := NewContainer("child")
	p1.AddChild(child)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic for foreign child, got none")
		}
	}()
	p2.RemoveChild(child)
}

// --- Find ---

func TestFindDepthFirst(t *testing.T) {
	root := NewContainer("root")
	branch := NewContainer("branch")
	deep := NewLabel("target", "deep")
	late := NewLabel("target", "late")
	root.AddChild(branch)
	branch.AddChild(deep)
	root.AddChild(late)

	if got := root.Find("target"); got != deep {
		t.Error("Find should return the depth-first match")
	}
	if got := root.Find("missing"); got != nil {
		t.Error("Find should return nil for a missing name")
	}
}

func TestFindExcludesSelf(t *testing.T) {
	root := NewContainer("root")
	if got := root.Find("root"); got != nil {
		t.Error("Find should not match the receiver itself")
	}
}

// --- Geometry / hit testing ---

func TestAbsoluteBounds(t *testing.T) {
	root := NewContainer("root")
	panel := NewRect("panel", 200, 100, ColorWhite)
	panel.X, panel.Y = 10, 20
	row := NewContainer("row")
	row.X, row.Y = 5, 30
	root.AddChild(panel)
	panel.AddChild(row)
	box := NewCheckbox("box")
	box.X = 2
	row.AddChild(box)

	b := box.AbsoluteBounds()
	if b.X != 17 || b.Y != 50 {
		t.Errorf("bounds origin = (%v, %v), want (17, 50)", b.X, b.Y)
	}
	if b.Width != checkboxSize || b.Height != checkboxSize {
		t.Errorf("bounds size = (%v, %v), want checkbox size", b.Width, b.Height)
	}
}

func TestHitTestDeepestChildWins(t *testing.T) {
	root := NewRect("root", 400, 400, ColorWhite)
	panel := NewRect("panel", 200, 200, ColorWhite)
	panel.X, panel.Y = 50, 50
	box := NewCheckbox("box")
	box.X, box.Y = 10, 10
	root.AddChild(panel)
	panel.AddChild(box)

	if got := root.hitTest(65, 65); got != box {
		t.Errorf("hitTest inside box = %v, want box", name(got))
	}
	if got := root.hitTest(150, 150); got != panel {
		t.Errorf("hitTest inside panel = %v, want panel", name(got))
	}
	if got := root.hitTest(10, 10); got != root {
		t.Errorf("hitTest outside panel = %v, want root", name(got))
	}
	if got := root.hitTest(500, 500); got != nil {
		t.Errorf("hitTest outside root = %v, want nil", name(got))
	}
}

func TestHitTestLaterSiblingWins(t *testing.T) {
	root := NewContainer("root")
	under := NewRect("under", 100, 100, ColorWhite)
	over := NewRect("over", 100, 100, ColorWhite)
	root.AddChild(under)
	root.AddChild(over)

	if got := root.hitTest(50, 50); got != over {
		t.Errorf("hitTest = %v, want the later sibling", name(got))
	}
}

func TestHitTestSkipsInvisible(t *testing.T) {
	root := NewRect("root", 100, 100, ColorWhite)
	hidden := NewRect("hidden", 100, 100, ColorWhite)
	hidden.Visible = false
	root.AddChild(hidden)

	if got := root.hitTest(50, 50); got != root {
		t.Errorf("hitTest = %v, want root (hidden child skipped)", name(got))
	}
}

func TestHitTestZeroAreaContainerNeverMatchesItself(t *testing.T) {
	root := NewContainer("root")
	box := NewCheckbox("box")
	root.AddChild(box)

	if got := root.hitTest(5, 5); got != box {
		t.Errorf("hitTest = %v, want box", name(got))
	}
	if got := root.hitTest(50, 50); got != nil {
		t.Errorf("hitTest on empty area = %v, want nil", name(got))
	}
}

func name(w *Widget) string {
	if w == nil {
		return "<nil>"
	}
	return w.Name
}

// --- Disposal ---

func TestDisposeDetachesAndRecurses(t *testing.T) {
	root := NewContainer("root")
	child := NewContainer("child")
	grand := NewLabel("grand", "x")
	root.AddChild(child)
	child.AddChild(grand)

	child.Dispose()

	if root.NumChildren() != 0 {
		t.Error("disposed child should be detached from root")
	}
	if !child.IsDisposed() || !grand.IsDisposed() {
		t.Error("dispose should recurse into descendants")
	}
	if child.NumChildren() != 0 {
		t.Error("disposed widget should have no children")
	}
}

func TestDisposeIdempotent(t *testing.T) {
	w := NewContainer("w")
	w.Dispose()
	w.Dispose() // must not panic
	if !w.IsDisposed() {
		t.Error("widget should remain disposed")
	}
}
