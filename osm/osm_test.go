package osm

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ionprf/overlook"
)

// samplePayload is a minimal Overpass response: one closed building way,
// one open way, one way tagged as something else, and a degenerate way.
const samplePayload = `{
  "elements": [
    {"type": "node", "id": 1, "lat": 37.795, "lon": -122.400},
    {"type": "node", "id": 2, "lat": 37.795, "lon": -122.399},
    {"type": "node", "id": 3, "lat": 37.796, "lon": -122.399},
    {"type": "node", "id": 4, "lat": 37.796, "lon": -122.400},
    {"type": "way", "id": 100, "nodes": [1, 2, 3, 4, 1],
     "tags": {"building": "yes", "height": "21 m",
              "addr:housenumber": "600", "addr:street": "Montgomery St",
              "addr:city": "San Francisco"}},
    {"type": "way", "id": 101, "nodes": [1, 2, 3],
     "tags": {"building": "residential", "building:levels": "4"}},
    {"type": "way", "id": 102, "nodes": [1, 2, 3, 1],
     "tags": {"highway": "residential"}},
    {"type": "way", "id": 103, "nodes": [1, 2],
     "tags": {"building": "yes"}}
  ]
}`

func writePayload(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// --- Extraction ---

func TestLoadPayloadExtractsBuildings(t *testing.T) {
	r, err := LoadPayload(writePayload(t, samplePayload))
	if err != nil {
		t.Fatalf("LoadPayload: %v", err)
	}

	if r.Count != 2 || len(r.Buildings) != 2 {
		t.Fatalf("Count = %d / %d buildings, want 2 (non-building and degenerate ways dropped)",
			r.Count, len(r.Buildings))
	}

	closed := r.Buildings[0]
	if closed.WayID != 100 {
		t.Errorf("WayID = %d, want 100", closed.WayID)
	}
	if len(closed.Outline) != 5 {
		t.Errorf("outline = %d points, want 5 (already closed)", len(closed.Outline))
	}
	if closed.Outline[0] != closed.Outline[len(closed.Outline)-1] {
		t.Error("outline should be closed")
	}
	if closed.HeightMeters == nil || *closed.HeightMeters != 21 {
		t.Errorf("HeightMeters = %v, want 21", closed.HeightMeters)
	}
	if closed.Address == nil || *closed.Address != "600, Montgomery St, San Francisco" {
		t.Errorf("Address = %v, want the joined addr tags", closed.Address)
	}

	open := r.Buildings[1]
	if open.WayID != 101 {
		t.Errorf("WayID = %d, want 101", open.WayID)
	}
	if len(open.Outline) != 4 {
		t.Errorf("outline = %d points, want 4 (ring closed by extraction)", len(open.Outline))
	}
	if open.HeightMeters == nil || *open.HeightMeters != 12 {
		t.Errorf("HeightMeters = %v, want 12 (4 levels x 3m)", open.HeightMeters)
	}
	if open.Address != nil {
		t.Errorf("Address = %q, want nil for a way without addr tags", *open.Address)
	}
}

func TestLoadPayloadMissingElements(t *testing.T) {
	_, err := LoadPayload(writePayload(t, `{"version": 0.6}`))
	if err == nil {
		t.Fatal("expected error for a payload without 'elements'")
	}
	if !errors.Is(err, ErrOverpass) {
		t.Errorf("err = %v, want ErrOverpass", err)
	}
	if !strings.Contains(err.Error(), "missing 'elements'") {
		t.Errorf("err = %v, want a missing-'elements' message", err)
	}
}

func TestLoadPayloadEmptyElements(t *testing.T) {
	r, err := LoadPayload(writePayload(t, `{"elements": []}`))
	if err != nil {
		t.Fatalf("LoadPayload: %v", err)
	}
	if r.Count != 0 || len(r.Buildings) != 0 {
		t.Errorf("Count = %d, want 0 for an empty element list", r.Count)
	}
}

// --- Ring closing ---

func TestCloseRing(t *testing.T) {
	a := overlook.LatLng{Lat: 1, Lng: 1}
	b := overlook.LatLng{Lat: 2, Lng: 2}

	open := closeRing([]overlook.LatLng{a, b})
	if len(open) != 3 || open[2] != a {
		t.Errorf("closeRing(open) = %v, want the first point appended", open)
	}

	closed := closeRing([]overlook.LatLng{a, b, a})
	if len(closed) != 3 {
		t.Errorf("closeRing(closed) = %d points, want unchanged 3", len(closed))
	}

	if got := closeRing(nil); len(got) != 0 {
		t.Errorf("closeRing(nil) = %v, want empty", got)
	}
}

// --- Height normalization ---

func TestNormalizeHeight(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	cases := []struct {
		name   string
		height string
		levels string
		want   *float64
	}{
		{"plain meters", "21", "", f(21)},
		{"unit suffix", "12 m", "", f(12)},
		{"attached unit", "12m", "", f(12)},
		{"decimal", "9.5", "", f(9.5)},
		{"height wins over levels", "21", "4", f(21)},
		{"levels fallback", "", "4", f(12)},
		{"decimal levels", "", "2.5", f(7.5)},
		{"garbage height, levels fallback", "tall", "2", f(6)},
		{"no tags", "", "", nil},
		{"garbage only", "unknown", "n/a", nil},
	}
	for _, tc := range cases {
		got := normalizeHeight(tc.height, tc.levels)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("%s: got %v, want nil", tc.name, *got)
		case tc.want != nil && got == nil:
			t.Errorf("%s: got nil, want %v", tc.name, *tc.want)
		case tc.want != nil && got != nil && *got != *tc.want:
			t.Errorf("%s: got %v, want %v", tc.name, *got, *tc.want)
		}
	}
}

// --- Address formatting ---

func TestFormatAddressFieldOrder(t *testing.T) {
	tags := map[string]string{
		"addr:city":        "San Francisco",
		"addr:street":      "Montgomery St",
		"addr:housenumber": "600",
		"addr:postcode":    "94111",
		"building":         "yes",
	}
	want := "600, Montgomery St, San Francisco, 94111"
	if got := formatAddress(tags); got != want {
		t.Errorf("formatAddress = %q, want %q", got, want)
	}
}

func TestFormatAddressEmpty(t *testing.T) {
	if got := formatAddress(map[string]string{"building": "yes"}); got != "" {
		t.Errorf("formatAddress = %q, want empty", got)
	}
}

// --- Endpoint fallback ---

func TestFetchBuildingsFallsBackToNextEndpoint(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusGatewayTimeout)
	}))
	defer bad.Close()

	var gotQuery, gotAgent string
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("data")
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer good.Close()

	c := &Client{Endpoints: []string{bad.URL, good.URL}}
	r, err := c.FetchBuildings(context.Background(), Bounds{
		SW: overlook.LatLng{Lat: 37.794, Lng: -122.401},
		NE: overlook.LatLng{Lat: 37.797, Lng: -122.395},
	})
	if err != nil {
		t.Fatalf("FetchBuildings: %v", err)
	}
	if r.Count != 2 {
		t.Errorf("Count = %d, want 2", r.Count)
	}
	if !strings.Contains(gotQuery, `way["building"]`) {
		t.Errorf("query = %q, want a building way query", gotQuery)
	}
	if !strings.Contains(gotQuery, "37.794") {
		t.Errorf("query = %q, should carry the bbox", gotQuery)
	}
	if gotAgent != DefaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotAgent, DefaultUserAgent)
	}
}

func TestFetchBuildingsAllEndpointsFail(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer bad.Close()

	c := &Client{Endpoints: []string{bad.URL, bad.URL}}
	_, err := c.FetchBuildings(context.Background(), Bounds{})
	if err == nil {
		t.Fatal("expected error when every endpoint fails")
	}
	if !errors.Is(err, ErrOverpass) {
		t.Errorf("err = %v, want ErrOverpass", err)
	}
}

func TestFetchBuildingsSkipsInvalidBody(t *testing.T) {
	invalid := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"no": "elements"}`))
	}))
	defer invalid.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(samplePayload))
	}))
	defer good.Close()

	c := &Client{Endpoints: []string{invalid.URL, good.URL}}
	r, err := c.FetchBuildings(context.Background(), Bounds{})
	if err != nil {
		t.Fatalf("FetchBuildings: %v", err)
	}
	if r.Count != 2 {
		t.Errorf("Count = %d, want 2 from the second endpoint", r.Count)
	}
}

// --- Bounds ---

func TestBoundsNormalizedAnyCornerOrder(t *testing.T) {
	b := Bounds{
		SW: overlook.LatLng{Lat: 37.797, Lng: -122.395}, // actually the NE corner
		NE: overlook.LatLng{Lat: 37.794, Lng: -122.401},
	}
	south, west, north, east := b.normalized()
	if south != 37.794 || north != 37.797 || west != -122.401 || east != -122.395 {
		t.Errorf("normalized = (%v, %v, %v, %v)", south, west, north, east)
	}
}
