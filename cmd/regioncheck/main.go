// Command regioncheck validates a bioregion catalog before it is deployed.
// It checks ring structure, recomputes every bounding box and centroid, and
// reports which state centroids no region claims. Overlapping envelopes are
// listed as warnings since catalog order decides the winner.
//
// Usage:
//
//	go run ./cmd/regioncheck                       # embedded catalog
//	go run ./cmd/regioncheck -regions data/regions.geojson -strict
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/couchcryptid/bioregion-locator/internal/adapter/geojson"
	"github.com/couchcryptid/bioregion-locator/internal/domain"
	"github.com/couchcryptid/bioregion-locator/internal/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// phase tracks pass/fail for a validation phase. Advisory phases never fail
// the run unless -strict is set.
type phase struct {
	name     string
	advisory bool
	errors   []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	regionsFile := flag.String("regions", "", "GeoJSON bioregion catalog (default: embedded)")
	strict := flag.Bool("strict", false, "fail on advisory phases too")
	flag.Parse()

	os.Exit(run(*regionsFile, *strict, os.Stdout))
}

func run(regionsFile string, strict bool, out io.Writer) int {
	fmt.Fprintln(out, "=== Bioregion Catalog Check ===")
	fmt.Fprintln(out)

	regions, err := geojson.Load(regionsFile)
	if err != nil {
		fmt.Fprintf(out, "FATAL: load catalog: %v\n", err)
		return 1
	}

	phases := []*phase{
		checkStructure(regions),
		checkEnvelopes(regions),
		checkStateCoverage(regions),
		checkOverlaps(regions),
	}

	failed := false
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			if p.advisory && !strict {
				status = fmt.Sprintf("WARN (%d)", len(p.errors))
			} else {
				failed = true
			}
		}
		fmt.Fprintf(out, "  %-40s %s\n", p.name, status)
	}
	fmt.Fprintf(out, "\nRegions: %d\n", len(regions))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if failed {
		fmt.Fprintln(out, "\nCatalog check FAILED.")
		return 1
	}
	fmt.Fprintln(out, "\nCatalog check passed.")
	return 0
}

// ── Phase 1: Structure ──

func checkStructure(regions []domain.Region) *phase {
	p := &phase{name: "Phase 1: Ring structure"}
	for _, r := range regions {
		if r.Name == "" {
			p.errorf("%s: missing name", r.ID)
		}
		for i, poly := range r.Polygons {
			if len(poly) == 0 {
				p.errorf("%s polygon %d: no rings", r.ID, i)
				continue
			}
			for j, ring := range poly {
				if distinct(ring) < 3 {
					p.errorf("%s polygon %d ring %d: %d distinct positions, need 3", r.ID, i, j, distinct(ring))
				}
			}
			for j, hole := range poly[1:] {
				if !holeInside(poly[0], hole) {
					p.errorf("%s polygon %d hole %d: not inside the exterior ring", r.ID, i, j+1)
				}
			}
		}
	}
	return p
}

func distinct(ring geometry.Ring) int {
	seen := make(map[geometry.Point]struct{}, len(ring))
	for _, pt := range ring {
		seen[pt] = struct{}{}
	}
	return len(seen)
}

// holeInside requires every hole vertex to fall within the exterior ring.
func holeInside(exterior, hole geometry.Ring) bool {
	outer := geometry.Polygon{exterior}
	for _, pt := range hole {
		if !geometry.Contains(outer, pt) {
			return false
		}
	}
	return true
}

// ── Phase 2: Envelopes ──
// Recomputes each region's bbox with orb and compares to the stored value.

func checkEnvelopes(regions []domain.Region) *phase {
	p := &phase{name: "Phase 2: Bounding boxes and centroids"}
	for _, r := range regions {
		var bound orb.Bound
		for i, poly := range r.Polygons {
			b := poly.Orb().Bound()
			if i == 0 {
				bound = b
				continue
			}
			bound = bound.Union(b)
		}
		want := geometry.BoundingBoxFromOrb(bound)
		if r.BBox != want {
			p.errorf("%s: bbox %v, recomputed %v", r.ID, r.BBox, want)
		}
		if r.Centroid != want.Center() {
			p.errorf("%s: centroid %v, recomputed %v", r.ID, r.Centroid, want.Center())
		}
		if lng, lat := r.Centroid.Lng(), r.Centroid.Lat(); lng < -180 || lng > 180 || lat < -90 || lat > 90 {
			p.errorf("%s: centroid %v outside WGS-84 range", r.ID, r.Centroid)
		}
	}
	return p
}

// ── Phase 3: State coverage ──

func checkStateCoverage(regions []domain.Region) *phase {
	p := &phase{name: "Phase 3: State centroid coverage", advisory: true}
	for _, s := range domain.States() {
		if _, ok := domain.FindRegion(regions, geometry.Point{s.Lng, s.Lat}); !ok {
			p.errorf("%s (%s): centroid %.4f,%.4f is in no region", s.Name, s.Code, s.Lat, s.Lng)
		}
	}
	return p
}

// ── Phase 4: Overlaps ──
// Envelope overlap is common along shared borders; only a point claimed by
// two regions is reported.

func checkOverlaps(regions []domain.Region) *phase {
	p := &phase{name: "Phase 4: Region overlaps", advisory: true}
	for i := range regions {
		for j := i + 1; j < len(regions); j++ {
			a, b := &regions[i], &regions[j]
			if !a.BBox.Orb().Intersects(b.BBox.Orb()) {
				continue
			}
			for _, poly := range b.Polygons {
				c, _ := planar.CentroidArea(poly.Orb())
				pt := geometry.Point(c)
				if a.Contains(pt) && b.Contains(pt) {
					p.errorf("%s and %s both contain %v; %s wins by catalog order", a.ID, b.ID, pt, a.ID)
				}
			}
		}
	}
	return p
}
