package overlook

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ionprf/overlook/czml"
)

// CZMLDataSource exposes the polygon packets of CZML building documents as
// drawable footprints. Loads are synchronous but still flip the loading flag
// and raise the loading event around the work, so observers such as the
// layer panel see the same lifecycle a streaming loader would produce.
type CZMLDataSource struct {
	name       string
	show       bool
	loading    bool
	footprints []Footprint

	loadingEvent Event[DataSource]
	changedEvent Event[DataSource]
}

// NewCZMLDataSource creates a visible, empty CZML source.
func NewCZMLDataSource(name string) *CZMLDataSource {
	return &CZMLDataSource{name: name, show: true}
}

// Name returns the display name.
func (d *CZMLDataSource) Name() string { return d.name }

// Show reports whether the source's overlays should be drawn.
func (d *CZMLDataSource) Show() bool { return d.show }

// SetShow toggles whether the source's overlays should be drawn.
func (d *CZMLDataSource) SetShow(show bool) { d.show = show }

// IsLoading reports whether a load is in flight.
func (d *CZMLDataSource) IsLoading() bool { return d.loading }

// LoadingEvent is raised whenever the loading state flips.
func (d *CZMLDataSource) LoadingEvent() *Event[DataSource] { return &d.loadingEvent }

// ChangedEvent is raised whenever loaded content changes.
func (d *CZMLDataSource) ChangedEvent() *Event[DataSource] { return &d.changedEvent }

// Footprints returns the loaded shapes.
func (d *CZMLDataSource) Footprints() []Footprint { return d.footprints }

// Load replaces the source's content with the polygons of one CZML document.
func (d *CZMLDataSource) Load(data []byte) error {
	d.beginLoad()
	doc, err := czml.Parse(data)
	if err != nil {
		d.endLoad()
		return err
	}
	d.footprints = appendFootprints(nil, doc)
	d.endLoad()
	d.changedEvent.Raise(d)
	return nil
}

// LoadFile replaces the source's content with the polygons of one CZML file.
func (d *CZMLDataSource) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load czml: %w", err)
	}
	return d.Load(data)
}

// LoadDir replaces the source's content with the polygons of every file
// listed in the directory's manifest, in manifest order.
func (d *CZMLDataSource) LoadDir(dir string) error {
	manifest, err := czml.ReadManifest(dir)
	if err != nil {
		return err
	}

	d.beginLoad()
	var footprints []Footprint
	for _, name := range manifest.Files {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			d.endLoad()
			return fmt.Errorf("load czml: %w", err)
		}
		doc, err := czml.Parse(data)
		if err != nil {
			d.endLoad()
			return err
		}
		footprints = appendFootprints(footprints, doc)
	}
	d.footprints = footprints
	d.endLoad()
	d.changedEvent.Raise(d)
	return nil
}

func (d *CZMLDataSource) beginLoad() {
	d.loading = true
	d.loadingEvent.Raise(d)
}

func (d *CZMLDataSource) endLoad() {
	d.loading = false
	d.loadingEvent.Raise(d)
}

// appendFootprints converts a document's polygon features.
func appendFootprints(dst []Footprint, doc czml.Document) []Footprint {
	for _, feature := range doc.Polygons() {
		outline := make([]LatLng, len(feature.Outline))
		for i, p := range feature.Outline {
			outline[i] = LatLng{Lat: p.Lat, Lng: p.Lng}
		}
		dst = append(dst, Footprint{
			Outline: outline,
			Height:  feature.ExtrudedHeight,
			Label:   feature.Name,
		})
	}
	return dst
}
