package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestNewLookupEvent(t *testing.T) {
	at := time.Date(2024, time.April, 26, 15, 10, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })

	loc := &LocationResult{Lat: 36.1, Lng: -119.7, Name: "California"}
	region := &Region{ID: "california-floristic", Name: "California Floristic Province"}

	e := NewLookupEvent("CA", QueryKindState, loc, region)

	assert.Equal(t, "CA", e.Query)
	assert.Equal(t, QueryKindState, e.Kind)
	assert.Equal(t, loc, e.Location)
	assert.Equal(t, "california-floristic", e.RegionID)
	assert.Equal(t, "California Floristic Province", e.RegionName)
	assert.Equal(t, at, e.ResolvedAt)
	assert.Len(t, e.ID, 36)

	again := NewLookupEvent("CA", QueryKindState, loc, region)
	assert.Equal(t, e.ID, again.ID, "same lookup at the same instant shares an ID")

	other := NewLookupEvent("NV", QueryKindState, loc, nil)
	assert.NotEqual(t, e.ID, other.ID)
	assert.Empty(t, other.RegionID)
}
