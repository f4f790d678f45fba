package czml

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the fixed file name of the per-directory manifest.
const ManifestName = "czml_manifest.json"

// Manifest lists the CZML file names written into one output directory.
type Manifest struct {
	Files []string `json:"files"`
}

// WriteManifest writes the manifest into dir as indented JSON with a
// trailing newline.
func WriteManifest(dir string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads the manifest from dir.
func ReadManifest(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}
