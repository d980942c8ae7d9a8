// Package geojson loads bioregion catalogs from GeoJSON FeatureCollections.
package geojson

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/couchcryptid/bioregion-locator/internal/domain"
	"github.com/couchcryptid/bioregion-locator/internal/geometry"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

//go:embed bioregions.geojson
var defaultCatalog []byte

// LoadDefault parses the embedded catalog of coarse North American bioregions.
func LoadDefault() ([]domain.Region, error) {
	return Parse(defaultCatalog)
}

// LoadFile reads and parses a catalog from disk.
func LoadFile(path string) ([]domain.Region, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	regions, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return regions, nil
}

// Load returns the catalog at path, or the embedded catalog when path is empty.
func Load(path string) ([]domain.Region, error) {
	if path == "" {
		return LoadDefault()
	}
	return LoadFile(path)
}

// Parse converts a FeatureCollection into regions. Feature order is kept.
func Parse(data []byte) ([]domain.Region, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode feature collection: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, errors.New("catalog has no features")
	}

	regions := make([]domain.Region, 0, len(fc.Features))
	seen := make(map[string]int, len(fc.Features))
	for i, f := range fc.Features {
		region, err := featureToRegion(i, f)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[region.ID]; ok {
			return nil, fmt.Errorf("feature %d: duplicate region id %q (first at feature %d)", i, region.ID, prev)
		}
		seen[region.ID] = i
		regions = append(regions, region)
	}
	return regions, nil
}

func featureToRegion(index int, f *geojson.Feature) (domain.Region, error) {
	id := featureID(f)
	if id == "" {
		return domain.Region{}, fmt.Errorf("feature %d: missing id", index)
	}

	var polygons []geometry.Polygon
	switch g := f.Geometry.(type) {
	case orb.Polygon:
		polygons = []geometry.Polygon{geometry.PolygonFromOrb(g)}
	case orb.MultiPolygon:
		polygons = make([]geometry.Polygon, 0, len(g))
		for _, p := range g {
			polygons = append(polygons, geometry.PolygonFromOrb(p))
		}
	case nil:
		return domain.Region{}, fmt.Errorf("feature %s: missing geometry", id)
	default:
		return domain.Region{}, fmt.Errorf("feature %s: unsupported geometry %s", id, g.GeoJSONType())
	}

	props := make(map[string]string, 3)
	for _, key := range []string{"name", "biome", "description"} {
		v, err := stringProperty(f.Properties, key)
		if err != nil {
			return domain.Region{}, fmt.Errorf("feature %s: %w", id, err)
		}
		props[key] = v
	}
	if props["name"] == "" {
		props["name"] = id
	}

	region, err := domain.NewRegion(id, props["name"], polygons)
	if err != nil {
		return domain.Region{}, err
	}
	region.Biome = props["biome"]
	region.Description = props["description"]
	region.KeySpecies = stringList(f.Properties["key_species"])
	return region, nil
}

// featureID prefers the "id" property and falls back to the feature id.
func featureID(f *geojson.Feature) string {
	if id, ok := f.Properties["id"].(string); ok && id != "" {
		return id
	}
	if id, ok := f.ID.(string); ok {
		return id
	}
	return ""
}

// stringProperty reads an optional string property and rejects other types.
func stringProperty(props geojson.Properties, key string) (string, error) {
	v, ok := props[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("property %q is %T, want string", key, v)
	}
	return s, nil
}

func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
