package domain

import (
	"errors"
	"fmt"
	"slices"

	"github.com/couchcryptid/bioregion-locator/internal/geometry"
)

// Region is a named bioregion. Polygons holds one entry per part of a
// multi-part region.
type Region struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Biome       string               `json:"biome,omitempty"`
	Description string               `json:"description,omitempty"`
	KeySpecies  []string             `json:"key_species,omitempty"`
	Polygons    []geometry.Polygon   `json:"-"`
	BBox        geometry.BoundingBox `json:"bbox"`
	Centroid    geometry.Point       `json:"centroid"`
}

// NewRegion builds a region and precomputes its bounding box and
// bounding-box centroid across all parts.
func NewRegion(id, name string, polygons []geometry.Polygon) (Region, error) {
	if id == "" {
		return Region{}, errors.New("region id is required")
	}
	if len(polygons) == 0 {
		return Region{}, fmt.Errorf("region %s: no polygons", id)
	}

	var bbox geometry.BoundingBox
	for i, poly := range polygons {
		b, err := poly.Bounds()
		if err != nil {
			return Region{}, fmt.Errorf("region %s polygon %d: %w", id, i, err)
		}
		if i == 0 {
			bbox = b
			continue
		}
		bbox = geometry.BoundingBox{
			min(bbox[0], b[0]), min(bbox[1], b[1]),
			max(bbox[2], b[2]), max(bbox[3], b[3]),
		}
	}

	return Region{
		ID:       id,
		Name:     name,
		Polygons: polygons,
		BBox:     bbox,
		Centroid: bbox.Center(),
	}, nil
}

// Clone returns a deep copy so callers can't alter a shared catalog.
func (r *Region) Clone() Region {
	out := *r
	out.KeySpecies = slices.Clone(r.KeySpecies)
	if r.Polygons != nil {
		out.Polygons = make([]geometry.Polygon, len(r.Polygons))
		for i, poly := range r.Polygons {
			out.Polygons[i] = make(geometry.Polygon, len(poly))
			for j, ring := range poly {
				out.Polygons[i][j] = slices.Clone(ring)
			}
		}
	}
	return out
}

// Contains reports whether any part of the region contains pt.
func (r *Region) Contains(pt geometry.Point) bool {
	// Even-odd ray casting never places a point outside the envelope inside
	// a ring, so the box check only skips work.
	if !r.BBox.Covers(pt) {
		return false
	}
	for _, poly := range r.Polygons {
		if geometry.Contains(poly, pt) {
			return true
		}
	}
	return false
}

// FindRegion returns the first region in catalog order that contains pt.
// The pointer aliases the regions slice.
func FindRegion(regions []Region, pt geometry.Point) (*Region, bool) {
	for i := range regions {
		if regions[i].Contains(pt) {
			return &regions[i], true
		}
	}
	return nil, false
}
