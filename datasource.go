package overlook

import "strings"

// DataSource is the minimal contract for a geographic overlay: a visibility
// flag the viewer consults when drawing. Implementations must be comparable
// (pointer types are), since collections and the layer panel track sources
// by identity.
type DataSource interface {
	// Show reports whether the source's overlays should be drawn.
	Show() bool
	// SetShow toggles whether the source's overlays should be drawn.
	SetShow(show bool)
}

// NamedSource is implemented by data sources with a display name.
type NamedSource interface {
	Name() string
}

// LoadingSource is implemented by data sources that load content over time
// and report progress through a loading event.
type LoadingSource interface {
	// IsLoading reports whether a load is in flight.
	IsLoading() bool
	// LoadingEvent is raised whenever the loading state flips.
	LoadingEvent() *Event[DataSource]
}

// ChangingSource is implemented by data sources whose content can change
// after creation.
type ChangingSource interface {
	// ChangedEvent is raised whenever the source's content changes.
	ChangedEvent() *Event[DataSource]
}

// FootprintSource is implemented by data sources that carry drawable
// building footprints.
type FootprintSource interface {
	// Footprints returns the source's shapes. The returned slice MUST NOT
	// be mutated by the caller.
	Footprints() []Footprint
}

// sourceName returns the source's trimmed display name, or "" when the
// source is unnamed or its name is blank.
func sourceName(ds DataSource) string {
	named, ok := ds.(NamedSource)
	if !ok {
		return ""
	}
	return strings.TrimSpace(named.Name())
}

// --- CustomDataSource ---

// CustomDataSource is an in-memory data source populated by the caller.
// It implements every optional capability, which makes it the usual choice
// for application-defined overlays.
type CustomDataSource struct {
	name      string
	show      bool
	loading   bool
	footprint []Footprint

	loadingEvent Event[DataSource]
	changedEvent Event[DataSource]
}

// NewCustomDataSource creates a visible, empty source with the given name.
func NewCustomDataSource(name string) *CustomDataSource {
	return &CustomDataSource{name: name, show: true}
}

// Name returns the display name.
func (d *CustomDataSource) Name() string { return d.name }

// SetName updates the display name and raises the changed event.
func (d *CustomDataSource) SetName(name string) {
	if d.name == name {
		return
	}
	d.name = name
	d.changedEvent.Raise(d)
}

// Show reports whether the source's overlays should be drawn.
func (d *CustomDataSource) Show() bool { return d.show }

// SetShow toggles whether the source's overlays should be drawn.
func (d *CustomDataSource) SetShow(show bool) { d.show = show }

// IsLoading reports whether the source is currently loading.
func (d *CustomDataSource) IsLoading() bool { return d.loading }

// SetLoading flips the loading state and raises the loading event.
// No-op when the state is unchanged.
func (d *CustomDataSource) SetLoading(loading bool) {
	if d.loading == loading {
		return
	}
	d.loading = loading
	d.loadingEvent.Raise(d)
}

// LoadingEvent is raised whenever the loading state flips.
func (d *CustomDataSource) LoadingEvent() *Event[DataSource] { return &d.loadingEvent }

// ChangedEvent is raised whenever the source's content changes.
func (d *CustomDataSource) ChangedEvent() *Event[DataSource] { return &d.changedEvent }

// Footprints returns the source's shapes.
func (d *CustomDataSource) Footprints() []Footprint { return d.footprint }

// SetFootprints replaces the source's shapes and raises the changed event.
func (d *CustomDataSource) SetFootprints(footprints []Footprint) {
	d.footprint = footprints
	d.changedEvent.Raise(d)
}
