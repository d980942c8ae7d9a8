package geojson

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/bioregion-locator/internal/domain"
	"github.com/couchcryptid/bioregion-locator/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	regions, err := LoadDefault()
	require.NoError(t, err)
	require.Len(t, regions, 12)

	assert.Equal(t, "cascadia", regions[0].ID)
	assert.Equal(t, "Cascadia", regions[0].Name)
	assert.Equal(t, "Temperate Rainforest", regions[0].Biome)
	assert.NotEmpty(t, regions[0].Description)
	assert.Contains(t, regions[0].KeySpecies, "Pacific salmon")
	assert.Equal(t, geometry.BoundingBox{-124.8, 42, -116, 49}, regions[0].BBox)

	for _, r := range regions {
		assert.NotEmpty(t, r.Polygons, r.ID)
		assert.Equal(t, r.BBox.Center(), r.Centroid, r.ID)
	}
}

func TestLoadDefault_MultiPolygon(t *testing.T) {
	regions, err := LoadDefault()
	require.NoError(t, err)

	var hawaii *domain.Region
	for i := range regions {
		if regions[i].ID == "hawaiian-islands" {
			hawaii = &regions[i]
		}
	}
	require.NotNil(t, hawaii)
	assert.Len(t, hawaii.Polygons, 2)
	assert.Equal(t, geometry.BoundingBox{-160.3, 18.9, -154.8, 22.3}, hawaii.BBox)
}

func TestLoadDefault_StateCentroids(t *testing.T) {
	regions, err := LoadDefault()
	require.NoError(t, err)

	tests := []struct {
		state string
		want  string
	}{
		{"CA", "california-floristic"},
		{"WA", "cascadia"},
		{"OR", "cascadia"},
		{"NV", "great-basin"},
		{"UT", "great-basin"},
		{"AZ", "southwestern-deserts"},
		{"CO", "rocky-mountains"},
		{"MT", "rocky-mountains"},
		{"TX", "great-plains"},
		{"ND", "great-plains"},
		{"ME", "northern-forests"},
		{"NY", "eastern-temperate-forests"},
		{"GA", "eastern-temperate-forests"},
		{"FL", "florida-peninsula"},
		{"AK", "alaska-tundra-taiga"},
		{"HI", "hawaiian-islands"},
		{"PR", "caribbean-islands"},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			s, ok := domain.LookupState(tt.state)
			require.True(t, ok)
			r, found := domain.FindRegion(regions, geometry.Point{s.Lng, s.Lat})
			require.True(t, found)
			assert.Equal(t, tt.want, r.ID)
		})
	}
}

func TestLoadDefault_EveryStateCovered(t *testing.T) {
	regions, err := LoadDefault()
	require.NoError(t, err)

	for _, s := range domain.States() {
		_, found := domain.FindRegion(regions, geometry.Point{s.Lng, s.Lat})
		assert.True(t, found, "%s centroid outside every region", s.Code)
	}
}

func TestLoadDefault_Holes(t *testing.T) {
	regions, err := LoadDefault()
	require.NoError(t, err)

	// Lake Okeechobee and the Great Salt Lake are cut out of their regions.
	_, found := domain.FindRegion(regions, geometry.Point{-80.85, 26.95})
	assert.False(t, found)
	_, found = domain.FindRegion(regions, geometry.Point{-112.6, 41.1})
	assert.False(t, found)

	r, found := domain.FindRegion(regions, geometry.Point{-80.3, 26.0})
	require.True(t, found)
	assert.Equal(t, "florida-peninsula", r.ID)
}

func TestParse_FeatureIDFallback(t *testing.T) {
	data := []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","id":"box","properties":{},
		 "geometry":{"type":"Polygon","coordinates":[[[0,0],[10,0],[10,10],[0,10],[0,0]]]}}
	]}`)

	regions, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "box", regions[0].ID)
	assert.Equal(t, "box", regions[0].Name)
	assert.Nil(t, regions[0].KeySpecies)
	assert.Equal(t, geometry.Point{5, 5}, regions[0].Centroid)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "not json",
			data:    `nope`,
			wantErr: "decode feature collection",
		},
		{
			name:    "empty collection",
			data:    `{"type":"FeatureCollection","features":[]}`,
			wantErr: "no features",
		},
		{
			name: "unsupported geometry",
			data: `{"type":"FeatureCollection","features":[
				{"type":"Feature","properties":{"id":"pin"},"geometry":{"type":"Point","coordinates":[1,2]}}]}`,
			wantErr: "feature pin: unsupported geometry Point",
		},
		{
			name: "non-string property",
			data: `{"type":"FeatureCollection","features":[
				{"type":"Feature","properties":{"id":"n","name":42},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`,
			wantErr: `feature n: property "name" is float64, want string`,
		},
		{
			name: "missing id",
			data: `{"type":"FeatureCollection","features":[
				{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`,
			wantErr: "feature 0: missing id",
		},
		{
			name: "duplicate id",
			data: `{"type":"FeatureCollection","features":[
				{"type":"Feature","properties":{"id":"a"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}},
				{"type":"Feature","properties":{"id":"a"},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`,
			wantErr: `duplicate region id "a"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.geojson")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"id":"only","name":"Only"},
		 "geometry":{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]]]}}]}`), 0o600))

	regions, err := Load(path)
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "Only", regions[0].Name)

	regions, err = Load("")
	require.NoError(t, err)
	assert.Len(t, regions, 12)

	_, err = Load(filepath.Join(t.TempDir(), "missing.geojson"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read catalog")
}
