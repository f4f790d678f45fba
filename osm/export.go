package osm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ionprf/overlook/czml"
)

// ExportCZML writes one CZML document per building into dir (created if
// missing) plus a manifest listing the file names, and records the names in
// r.CZMLFiles. File names follow the way_<id>.czml convention.
func ExportCZML(r *Result, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("czml output dir: %w", err)
	}

	files := make([]string, 0, len(r.Buildings))
	for _, b := range r.Buildings {
		outline := make([]czml.Position, len(b.Outline))
		for i, p := range b.Outline {
			outline[i] = czml.Position{Lat: p.Lat, Lng: p.Lng}
		}
		doc := czml.BuildingDocument(b.WayID, outline, b.HeightMeters)
		data, err := doc.Encode()
		if err != nil {
			return err
		}
		name := fmt.Sprintf("way_%d.czml", b.WayID)
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("write czml: %w", err)
		}
		files = append(files, name)
	}

	if len(files) > 0 {
		if err := czml.WriteManifest(dir, czml.Manifest{Files: files}); err != nil {
			return err
		}
	}
	r.CZMLFiles = files
	return nil
}
