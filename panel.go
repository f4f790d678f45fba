package overlook

import (
	"errors"
	"fmt"
	"reflect"
)

// Exact user-facing strings promised by the panel.
const (
	// DefaultPanelTitle is the heading text used when PanelOptions.Title is
	// empty.
	DefaultPanelTitle = "Data Sources"
	// emptyListMessage is shown when no data source passes the filter.
	emptyListMessage = "No data sources loaded."
	// checkboxAccessibleLabel names every row checkbox for assistive queries.
	checkboxAccessibleLabel = "toggle data source visibility"
)

// Widget names used for selector-style lookups.
const (
	panelWidgetName = "layer-panel"
	panelTitleName  = "layer-panel-title"
	defaultListName = "layer-panel-list"
	panelRowName    = "layer-panel-row"
	panelToggleName = "layer-panel-toggle"
	panelLabelName  = "layer-panel-label"
	panelEmptyName  = "layer-panel-empty"
)

// Panel metrics.
const (
	panelDefaultX   = 12
	panelDefaultY   = 12
	panelWidth      = 220
	panelPadding    = 10
	panelCorner     = 6
	headingSize     = 14
	headingHeight   = 24
	rowHeight       = 22
	labelGap        = 8
	loadingRowAlpha = 0.45
)

// ErrNilViewer is returned by NewLayerPanel when no viewer is supplied.
var ErrNilViewer = errors.New("overlook: layer panel requires a viewer")

// PanelOptions configures a LayerPanel. The zero value creates a default
// panel attached to the viewer's UI root.
type PanelOptions struct {
	// Panel locates the container: a *Widget reference, or a string looked
	// up by name under the viewer's UI root. When nil or unresolved, a new
	// container with default placement and styling is created and appended
	// to the UI root.
	Panel any
	// ListSelector names the inner list region within the container;
	// created and appended when absent. Defaults to "layer-panel-list".
	ListSelector string
	// Filter, when set, restricts the panel to sources for which it returns
	// true.
	Filter func(DataSource) bool
	// Title is the heading text. Defaults to DefaultPanelTitle.
	Title string
	// Scheduler defers a coalesced rebuild by one tick. Defaults to the
	// viewer's frame-task queue (Viewer.InvokeLater). Swappable so hosts
	// with their own deferred-task primitive can supply it.
	Scheduler func(func())
}

// listenerRecord remembers which per-source listeners were actually
// attached, so detach reverses exactly that set.
type listenerRecord struct {
	removeLoading func()
	removeChanged func()
}

// rowIDCounter generates row identifiers: monotonically increasing, never
// reused, so an identifier from a superseded rebuild can never resolve
// against the current index. Plain counter — overlook is single-threaded.
var rowIDCounter uint64

func nextRowID() uint64 {
	rowIDCounter++
	return rowIDCounter
}

// LayerPanel mirrors the viewer's data-source collection into a checkbox
// list. Collection membership changes and per-source loading/changed events
// coalesce into a single list rebuild on the next tick; toggling a checkbox
// writes the source's show flag back and requests a viewer repaint.
type LayerPanel struct {
	viewer    *Viewer
	container *Widget
	list      *Widget
	filter    func(DataSource) bool
	schedule  func(func())

	// ownsContainer is true when the panel created its container and may
	// resize it to fit the rows.
	ownsContainer bool

	// index maps row identifiers to sources, valid only for the most recent
	// rebuild.
	index map[uint64]DataSource
	// records tracks per-source listeners for every currently known source.
	records map[DataSource]listenerRecord

	removeAdded   func()
	removeRemoved func()

	renderPending bool
	destroyed     bool
}

// NewLayerPanel creates a panel observing the viewer's data-source
// collection. Resolves (or creates) the container and list widgets, attaches
// all listeners, and performs one immediate synchronous rebuild.
// Returns ErrNilViewer when viewer is nil.
func NewLayerPanel(viewer *Viewer, opts PanelOptions) (*LayerPanel, error) {
	if viewer == nil {
		return nil, ErrNilViewer
	}

	p := &LayerPanel{
		viewer:  viewer,
		filter:  opts.Filter,
		index:   map[uint64]DataSource{},
		records: map[DataSource]listenerRecord{},
	}
	p.schedule = opts.Scheduler
	if p.schedule == nil {
		p.schedule = viewer.InvokeLater
	}

	p.resolveContainer(opts.Panel)
	p.resolveTitle(opts.Title)
	p.resolveList(opts.ListSelector)

	p.container.OnClick = p.handleClick

	p.removeAdded = viewer.DataSources.SourceAdded.AddListener(p.onSourceAdded)
	p.removeRemoved = viewer.DataSources.SourceRemoved.AddListener(p.onSourceRemoved)
	for i := 0; i < viewer.DataSources.Len(); i++ {
		p.attachSource(viewer.DataSources.Get(i))
	}

	p.render()
	return p, nil
}

// Container returns the panel's container widget.
func (p *LayerPanel) Container() *Widget {
	return p.container
}

// Refresh forces an immediate synchronous rebuild, bypassing the coalescing
// delay. Idempotent.
func (p *LayerPanel) Refresh() {
	p.render()
}

// VisibleSources returns, in collection order, every source that passes the
// filter (when configured) and has its show flag set. Pure read: it neither
// rebuilds the list nor mutates panel state.
func (p *LayerPanel) VisibleSources() []DataSource {
	var out []DataSource
	for i := 0; i < p.viewer.DataSources.Len(); i++ {
		ds := p.viewer.DataSources.Get(i)
		if p.filter != nil && !p.filter(ds) {
			continue
		}
		if !ds.Show() {
			continue
		}
		out = append(out, ds)
	}
	return out
}

// Destroy detaches every listener the panel attached and clears the identity
// index. The container widget is left in place, inert. A coalesced rebuild
// already scheduled may still run once; it is harmless because no listener
// can fire afterwards.
func (p *LayerPanel) Destroy() {
	if p.destroyed {
		return
	}
	p.destroyed = true

	p.removeAdded()
	p.removeRemoved()
	for ds := range p.records {
		p.detachSource(ds)
	}
	p.container.OnClick = nil
	clear(p.index)
}

// --- Construction helpers ---

// resolveContainer locates the container from the Panel option, or creates
// the default styled one appended to the viewer's UI root.
func (p *LayerPanel) resolveContainer(panel any) {
	switch target := panel.(type) {
	case *Widget:
		if target != nil {
			p.container = target
			return
		}
	case string:
		if found := p.viewer.UI().Find(target); found != nil {
			p.container = found
			return
		}
	}

	c := NewRect(panelWidgetName, panelWidth, 0, Color{1, 1, 1, 0.85})
	c.X = panelDefaultX
	c.Y = panelDefaultY
	c.Corner = panelCorner
	c.Shadow = true
	p.viewer.UI().AddChild(c)
	p.container = c
	p.ownsContainer = true
}

// resolveTitle updates the container's existing heading in place, or creates
// one inserted before any other children.
func (p *LayerPanel) resolveTitle(title string) {
	if title == "" {
		title = DefaultPanelTitle
	}
	for _, child := range p.container.Children() {
		if child.Kind == WidgetText {
			child.Text = title
			return
		}
	}
	heading := NewLabel(panelTitleName, title)
	heading.TextSize = headingSize
	heading.X = panelPadding
	heading.Y = panelPadding
	p.container.AddChildAt(heading, 0)
}

// resolveList locates the inner list region by name within the container,
// creating and appending it when absent.
func (p *LayerPanel) resolveList(selector string) {
	if selector == "" {
		selector = defaultListName
	}
	if found := p.container.Find(selector); found != nil {
		p.list = found
		return
	}
	list := NewContainer(selector)
	list.X = panelPadding
	list.Y = panelPadding + headingHeight
	p.container.AddChild(list)
	p.list = list
}

// --- Event wiring ---

func (p *LayerPanel) onSourceAdded(ch CollectionChange) {
	p.attachSource(ch.Source)
	p.scheduleRender()
}

func (p *LayerPanel) onSourceRemoved(ch CollectionChange) {
	p.detachSource(ch.Source)
	p.scheduleRender()
}

// attachSource subscribes to whichever of the loading/changed events the
// source exposes and records exactly what was attached.
func (p *LayerPanel) attachSource(ds DataSource) {
	var rec listenerRecord
	if ls, ok := ds.(LoadingSource); ok {
		if ev := ls.LoadingEvent(); ev != nil {
			rec.removeLoading = ev.AddListener(func(DataSource) { p.scheduleRender() })
		}
	}
	if cs, ok := ds.(ChangingSource); ok {
		if ev := cs.ChangedEvent(); ev != nil {
			rec.removeChanged = ev.AddListener(func(DataSource) { p.scheduleRender() })
		}
	}
	p.records[ds] = rec
}

// detachSource removes exactly the listeners attachSource added.
func (p *LayerPanel) detachSource(ds DataSource) {
	rec, ok := p.records[ds]
	if !ok {
		return
	}
	if rec.removeLoading != nil {
		rec.removeLoading()
	}
	if rec.removeChanged != nil {
		rec.removeChanged()
	}
	delete(p.records, ds)
}

// scheduleRender defers one rebuild to the next tick. At most one rebuild is
// pending at a time regardless of how many events arrive before it runs.
func (p *LayerPanel) scheduleRender() {
	if p.renderPending {
		return
	}
	p.renderPending = true
	p.schedule(func() {
		p.renderPending = false
		p.render()
	})
}

// --- Rendering ---

// render rebuilds the list from scratch: snapshot the collection, apply the
// filter, and replace the list region's children wholesale. No incremental
// diffing; expected list sizes are small.
func (p *LayerPanel) render() {
	clear(p.index)

	var filtered []DataSource
	for i := 0; i < p.viewer.DataSources.Len(); i++ {
		ds := p.viewer.DataSources.Get(i)
		if p.filter != nil && !p.filter(ds) {
			continue
		}
		filtered = append(filtered, ds)
	}

	p.list.RemoveChildren()

	if len(filtered) == 0 {
		empty := NewLabel(panelEmptyName, emptyListMessage)
		empty.TextColor = Color{0.35, 0.35, 0.35, 1}
		p.list.AddChild(empty)
		p.fitContainer(1)
		return
	}

	for i, ds := range filtered {
		p.list.AddChild(p.buildRow(ds, i))
	}
	p.fitContainer(len(filtered))
}

// buildRow creates one list row: checkbox plus label, de-emphasized while
// the source is loading. position is the 0-based index within the filtered
// snapshot.
func (p *LayerPanel) buildRow(ds DataSource, position int) *Widget {
	id := nextRowID()
	p.index[id] = ds

	row := NewContainer(panelRowName)
	row.Y = float64(position) * rowHeight

	cb := NewCheckbox(panelToggleName)
	cb.Checked = ds.Show()
	cb.AccessibleLabel = checkboxAccessibleLabel
	cb.UserData = id
	cb.Y = (rowHeight - checkboxSize) / 2
	row.AddChild(cb)

	label := NewLabel(panelLabelName, p.rowLabel(ds, position+1))
	label.X = checkboxSize + labelGap
	label.Y = (rowHeight - defaultTextSize) / 2
	row.AddChild(label)

	if ls, ok := ds.(LoadingSource); ok && ls.IsLoading() {
		row.Alpha = loadingRowAlpha
	}
	return row
}

// rowLabel returns the source's trimmed name, or a fallback built from the
// source's runtime type name and its 1-based position in the filtered
// snapshot. The position is recomputed every rebuild, so removals renumber
// the remaining unnamed rows.
func (p *LayerPanel) rowLabel(ds DataSource, position int) string {
	if name := sourceName(ds); name != "" {
		return name
	}
	return fmt.Sprintf("%s %d", sourceKind(ds), position)
}

// sourceKind returns the bare runtime type name of a source.
func sourceKind(ds DataSource) string {
	t := reflect.TypeOf(ds)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// fitContainer resizes a panel-owned container to its content.
func (p *LayerPanel) fitContainer(rows int) {
	if !p.ownsContainer {
		return
	}
	p.container.Height = panelPadding + headingHeight + float64(rows)*rowHeight + panelPadding
}

// --- Interaction ---

// handleClick is the single delegated handler on the container. Only clicks
// whose target is a checkbox act; everything else is ignored, including
// checkboxes whose row identifier no longer resolves.
func (p *LayerPanel) handleClick(ctx ClickContext) {
	target := ctx.Target
	if target == nil || target.Kind != WidgetCheckbox {
		return
	}
	id, ok := target.UserData.(uint64)
	if !ok {
		return
	}
	ds, ok := p.index[id]
	if !ok {
		return
	}
	target.Checked = !target.Checked
	ds.SetShow(target.Checked)
	p.viewer.RequestRender()
}
