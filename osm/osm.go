// Package osm fetches building footprints from the Overpass API (or a saved
// offline payload) and converts them into overlay-ready outlines with
// normalized heights and formatted addresses.
package osm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/ionprf/overlook"
)

// ErrOverpass wraps every failure to obtain a usable Overpass payload: all
// endpoints failing, or a response without an element list.
var ErrOverpass = errors.New("osm: overpass query failed")

// DefaultEndpoints are the Overpass API mirrors tried in order.
var DefaultEndpoints = []string{
	"https://overpass-api.de/api/interpreter",
	"https://overpass.kumi.systems/api/interpreter",
	"https://lz4.overpass-api.de/api/interpreter",
}

// DefaultUserAgent identifies this module to the Overpass mirrors.
const DefaultUserAgent = "github.com/ionprf/overlook"

// Bounds is a geographic bounding box given by two opposite corners.
// The corners may be supplied in either order.
type Bounds struct {
	SW, NE overlook.LatLng
}

// normalized returns south, west, north, east regardless of corner order.
func (b Bounds) normalized() (south, west, north, east float64) {
	south = math.Min(b.SW.Lat, b.NE.Lat)
	north = math.Max(b.SW.Lat, b.NE.Lat)
	west = math.Min(b.SW.Lng, b.NE.Lng)
	east = math.Max(b.SW.Lng, b.NE.Lng)
	return
}

// Building is one extracted building way.
type Building struct {
	WayID int64 `json:"way_id"`
	// Outline is the closed ground ring: the last point repeats the first.
	Outline []overlook.LatLng `json:"outline"`
	// HeightMeters is nil when no usable height tag was present.
	HeightMeters *float64 `json:"height_m"`
	// Address is nil when the way carries no addr:* tags.
	Address *string `json:"address"`
}

// Result is the outcome of one fetch.
type Result struct {
	Count     int        `json:"count"`
	Buildings []Building `json:"buildings"`
	// CZMLFiles is set by ExportCZML; nil when no export was performed.
	CZMLFiles []string `json:"czml_files"`
}

// Client queries the Overpass API with endpoint fallback.
// The zero value uses DefaultEndpoints, http.DefaultClient, and
// DefaultUserAgent.
type Client struct {
	// Endpoints are tried in order until one yields a decodable payload.
	Endpoints []string
	// HTTPClient overrides the HTTP client used for requests.
	HTTPClient *http.Client
	// UserAgent overrides the User-Agent header.
	UserAgent string
}

func (c *Client) endpoints() []string {
	if len(c.Endpoints) > 0 {
		return c.Endpoints
	}
	return DefaultEndpoints
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return DefaultUserAgent
}

// buildingQuery is the Overpass QL query for building ways in a bbox,
// recursed down to their nodes.
func buildingQuery(b Bounds) string {
	south, west, north, east := b.normalized()
	return fmt.Sprintf(
		"[out:json][timeout:120];\n(\n  way[\"building\"](%v,%v,%v,%v);\n);\n(._;>;);\nout body;",
		south, west, north, east)
}

// FetchBuildings queries each configured endpoint in order until one returns
// a decodable payload, then extracts buildings from it. All endpoint
// failures are accumulated into the returned error when none succeeds.
func (c *Client) FetchBuildings(ctx context.Context, b Bounds) (*Result, error) {
	query := buildingQuery(b)

	var errs []error
	for _, endpoint := range c.endpoints() {
		payload, err := c.fetchPayload(ctx, endpoint, query)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", endpoint, err))
			continue
		}
		return extractBuildings(payload)
	}
	return nil, fmt.Errorf("%w: %w", ErrOverpass, errors.Join(errs...))
}

// fetchPayload performs one GET against a single endpoint and decodes the
// JSON body.
func (c *Client) fetchPayload(ctx context.Context, endpoint, query string) (*payload, error) {
	full := endpoint + "?" + url.Values{"data": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused by the next attempt.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return decodePayload(body)
}

// LoadPayload reads a saved Overpass JSON payload and extracts buildings
// from it, bypassing the network entirely.
func LoadPayload(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("offline payload: %w", err)
	}
	p, err := decodePayload(data)
	if err != nil {
		return nil, err
	}
	return extractBuildings(p)
}

// --- Payload decoding ---

type payload struct {
	// Elements is a pointer so a payload without the key is distinguishable
	// from one with an empty list.
	Elements *[]element `json:"elements"`
}

type element struct {
	Type  string            `json:"type"`
	ID    int64             `json:"id"`
	Lat   float64           `json:"lat"`
	Lon   float64           `json:"lon"`
	Nodes []int64           `json:"nodes"`
	Tags  map[string]string `json:"tags"`
}

func decodePayload(data []byte) (*payload, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}
	if p.Elements == nil {
		return nil, fmt.Errorf("%w: invalid response: missing 'elements'", ErrOverpass)
	}
	return &p, nil
}

// extractBuildings resolves way node references into outlines and attaches
// normalized heights and formatted addresses. Ways with fewer than three
// unique points are dropped.
func extractBuildings(p *payload) (*Result, error) {
	nodes := map[int64]overlook.LatLng{}
	var ways []element
	for _, el := range *p.Elements {
		switch el.Type {
		case "node":
			nodes[el.ID] = overlook.LatLng{Lat: el.Lat, Lng: el.Lon}
		case "way":
			if el.Tags["building"] != "" {
				ways = append(ways, el)
			}
		}
	}

	result := &Result{Buildings: []Building{}}
	for _, way := range ways {
		outline := make([]overlook.LatLng, 0, len(way.Nodes)+1)
		for _, ref := range way.Nodes {
			node, ok := nodes[ref]
			if !ok {
				continue
			}
			outline = append(outline, node)
		}
		outline = closeRing(outline)
		// Need at least 3 unique points plus the closing point.
		if len(outline) < 4 {
			continue
		}

		b := Building{
			WayID:   way.ID,
			Outline: outline,
			HeightMeters: normalizeHeight(
				firstNonEmpty(way.Tags["height"], way.Tags["building:height"]),
				way.Tags["building:levels"]),
		}
		if addr := formatAddress(way.Tags); addr != "" {
			b.Address = &addr
		}
		result.Buildings = append(result.Buildings, b)
	}
	result.Count = len(result.Buildings)
	return result, nil
}

// closeRing appends the first point when the ring is not already closed.
func closeRing(ring []overlook.LatLng) []overlook.LatLng {
	if len(ring) == 0 {
		return ring
	}
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	return ring
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// addressFields is the fixed join order for addr:* tags.
var addressFields = [...]string{
	"addr:housenumber",
	"addr:houseletter",
	"addr:street",
	"addr:suburb",
	"addr:city",
	"addr:state",
	"addr:postcode",
	"addr:country",
}

// formatAddress joins the present addr:* tags in field order, or returns ""
// when none are set.
func formatAddress(tags map[string]string) string {
	var parts []string
	for _, key := range addressFields {
		if v := tags[key]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}
