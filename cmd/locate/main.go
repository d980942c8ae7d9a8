// Command locate resolves one query against the bioregion catalog and prints
// the result as JSON.
//
// Usage:
//
//	go run ./cmd/locate -q 90210
//	go run ./cmd/locate -q "new mexico"
//	go run ./cmd/locate -lat 45.52 -lng -122.68 -regions data/regions.geojson
//	go run ./cmd/locate -states
//
// ZIP lookups honour ZIP_API_URL and ZIP_TIMEOUT.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/bioregion-locator/internal/adapter/geojson"
	"github.com/couchcryptid/bioregion-locator/internal/adapter/zippopotam"
	"github.com/couchcryptid/bioregion-locator/internal/config"
	"github.com/couchcryptid/bioregion-locator/internal/locator"
	"github.com/couchcryptid/bioregion-locator/internal/observability"
)

func main() {
	query := flag.String("q", "", "ZIP code or US state name/code")
	lat := flag.Float64("lat", 0, "latitude, used with -lng instead of -q")
	lng := flag.Float64("lng", 0, "longitude, used with -lat instead of -q")
	states := flag.Bool("states", false, "print the state list")
	regionsFile := flag.String("regions", "", "GeoJSON bioregion catalog (default: embedded)")
	verbose := flag.Bool("v", false, "log to stderr")
	flag.Parse()

	point := isFlagSet("lat") || isFlagSet("lng")
	if *query == "" && !*states && !point {
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(run(*query, *lat, *lng, point, *states, *regionsFile, *verbose, os.Stdout))
}

func run(query string, lat, lng float64, point, states bool, regionsFile string, verbose bool, out io.Writer) int {
	logOut := io.Discard
	if verbose {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	regions, err := geojson.Load(regionsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load catalog: %v\n", err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}

	metrics := observability.NewUnregisteredMetrics()
	client := zippopotam.NewClient(cfg.ZIPAPIURL, cfg.ZIPTimeout, metrics, logger)
	svc := locator.New(client, regions, nil, logger, metrics)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ZIPTimeout+time.Second)
	defer cancel()

	var result any
	switch {
	case states:
		result = svc.States()
	case point:
		result = svc.LocatePoint(ctx, lat, lng)
	default:
		lookup, err := svc.Locate(ctx, query)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding location. Please try again.")
			logger.Error("locate failed", "error", err)
			return 1
		}
		if lookup.Location == nil {
			fmt.Fprintf(os.Stderr, "location not found: %q\n", query)
			return 3
		}
		result = lookup
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "encode: %v\n", err)
		return 1
	}
	return 0
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
