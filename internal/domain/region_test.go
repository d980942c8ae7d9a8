package domain

import (
	"testing"

	"github.com/couchcryptid/bioregion-locator/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRegion(t *testing.T, id string, polys ...geometry.Polygon) Region {
	t.Helper()
	r, err := NewRegion(id, id, polys)
	require.NoError(t, err)
	return r
}

func TestNewRegion_BoundsAcrossParts(t *testing.T) {
	r := mustRegion(t, "islands",
		geometry.Polygon{{{0, 0}, {0, 2}, {2, 2}, {2, 0}}},
		geometry.Polygon{{{10, 4}, {10, 6}, {12, 6}, {12, 4}}},
	)

	assert.Equal(t, geometry.BoundingBox{0, 0, 12, 6}, r.BBox)
	assert.Equal(t, geometry.Point{6, 3}, r.Centroid)
}

func TestNewRegion_Invalid(t *testing.T) {
	_, err := NewRegion("", "x", []geometry.Polygon{{{{0, 0}, {1, 1}, {1, 0}}}})
	require.Error(t, err)

	_, err = NewRegion("empty", "x", nil)
	require.Error(t, err)

	_, err = NewRegion("hollow", "x", []geometry.Polygon{{}})
	require.ErrorIs(t, err, geometry.ErrNoCoordinates)
}

func TestRegion_ContainsAnyPart(t *testing.T) {
	r := mustRegion(t, "islands",
		geometry.Polygon{{{0, 0}, {0, 2}, {2, 2}, {2, 0}}},
		geometry.Polygon{{{10, 4}, {10, 6}, {12, 6}, {12, 4}}},
	)

	assert.True(t, r.Contains(geometry.Point{1, 1}))
	assert.True(t, r.Contains(geometry.Point{11, 5}))
	assert.False(t, r.Contains(geometry.Point{6, 3}), "between the parts")
	assert.False(t, r.Contains(geometry.Point{50, 50}))
}

func TestFindRegion_FirstMatchWins(t *testing.T) {
	big := mustRegion(t, "big", geometry.Polygon{{{0, 0}, {0, 10}, {10, 10}, {10, 0}}})
	small := mustRegion(t, "small", geometry.Polygon{{{4, 4}, {4, 6}, {6, 6}, {6, 4}}})

	r, ok := FindRegion([]Region{big, small}, geometry.Point{5, 5})
	require.True(t, ok)
	assert.Equal(t, "big", r.ID)

	r, ok = FindRegion([]Region{small, big}, geometry.Point{5, 5})
	require.True(t, ok)
	assert.Equal(t, "small", r.ID)
}

func TestFindRegion_HoleFallsThrough(t *testing.T) {
	donut := mustRegion(t, "donut", geometry.Polygon{
		{{0, 0}, {0, 10}, {10, 10}, {10, 0}},
		{{4, 4}, {4, 6}, {6, 6}, {6, 4}},
	})
	lake := mustRegion(t, "lake", geometry.Polygon{{{4, 4}, {4, 6}, {6, 6}, {6, 4}}})

	r, ok := FindRegion([]Region{donut, lake}, geometry.Point{5, 5})
	require.True(t, ok)
	assert.Equal(t, "lake", r.ID)

	_, ok = FindRegion([]Region{donut}, geometry.Point{5, 5})
	assert.False(t, ok)
}

func TestFindRegion_Empty(t *testing.T) {
	r, ok := FindRegion(nil, geometry.Point{0, 0})
	assert.False(t, ok)
	assert.Nil(t, r)
}

func TestRegion_CloneIsIndependent(t *testing.T) {
	orig, err := NewRegion("box", "Box", []geometry.Polygon{
		{{{0, 0}, {10, 0}, {10, 10}, {0, 10}}},
	})
	require.NoError(t, err)
	orig.KeySpecies = []string{"heron"}

	c := orig.Clone()
	c.Name = "Changed"
	c.KeySpecies[0] = "egret"
	c.Polygons[0][0][0] = geometry.Point{50, 50}

	assert.Equal(t, "Box", orig.Name)
	assert.Equal(t, []string{"heron"}, orig.KeySpecies)
	assert.Equal(t, geometry.Point{0, 0}, orig.Polygons[0][0][0])
	assert.True(t, orig.Contains(geometry.Point{5, 5}))
}
