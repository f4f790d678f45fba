// Command overlook-fetch downloads OSM building footprints for a bounding
// box from the Overpass API (or a saved offline payload), optionally writes
// per-building CZML documents plus a manifest, and prints a JSON summary to
// stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ionprf/overlook"
	"github.com/ionprf/overlook/osm"
)

// Default bounding box: a few blocks of downtown San Francisco.
const (
	defaultSW = "37.794547743358315,-122.40069761028977"
	defaultNE = "37.79677364468366,-122.39509830705937"
)

// urlList collects repeatable -overpass-url flags.
type urlList []string

func (u *urlList) String() string { return strings.Join(*u, ",") }

func (u *urlList) Set(value string) error {
	if value == "" {
		return fmt.Errorf("empty URL")
	}
	*u = append(*u, value)
	return nil
}

// parseCorner parses a "lat,lon" pair.
func parseCorner(s string) (overlook.LatLng, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return overlook.LatLng{}, fmt.Errorf("expected lat,lon but got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return overlook.LatLng{}, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return overlook.LatLng{}, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}
	return overlook.LatLng{Lat: lat, Lng: lng}, nil
}

func main() {
	log.SetFlags(0)

	var endpoints urlList
	sw := flag.String("sw", defaultSW, "south-west corner as lat,lon")
	ne := flag.String("ne", defaultNE, "north-east corner as lat,lon")
	czmlDir := flag.String("czml-dir", "czml_output", "directory for CZML output files")
	offline := flag.String("offline-payload", "", "path to a saved Overpass JSON payload to use instead of the network")
	noCZML := flag.Bool("no-czml", false, "disable CZML output")
	flag.Var(&endpoints, "overpass-url", "override default Overpass endpoints (repeatable)")
	flag.Parse()

	swCorner, err := parseCorner(*sw)
	if err != nil {
		log.Fatalf("overlook-fetch: -sw: %v", err)
	}
	neCorner, err := parseCorner(*ne)
	if err != nil {
		log.Fatalf("overlook-fetch: -ne: %v", err)
	}

	var result *osm.Result
	if *offline != "" {
		result, err = osm.LoadPayload(*offline)
	} else {
		client := &osm.Client{Endpoints: endpoints}
		result, err = client.FetchBuildings(context.Background(), osm.Bounds{SW: swCorner, NE: neCorner})
	}
	if err != nil {
		log.Fatalf("overlook-fetch: %v", err)
	}

	if !*noCZML {
		if err := osm.ExportCZML(result, *czmlDir); err != nil {
			log.Fatalf("overlook-fetch: %v", err)
		}
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("overlook-fetch: %v", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
}
