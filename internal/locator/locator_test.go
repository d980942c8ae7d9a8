package locator_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/couchcryptid/bioregion-locator/internal/domain"
	"github.com/couchcryptid/bioregion-locator/internal/geometry"
	"github.com/couchcryptid/bioregion-locator/internal/locator"
	"github.com/couchcryptid/bioregion-locator/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockResolver struct {
	results map[string]domain.LocationResult
	err     error
}

func (m *mockResolver) ResolveZIP(_ context.Context, zip string) (domain.LocationResult, error) {
	if m.err != nil {
		return domain.LocationResult{}, m.err
	}
	r, ok := m.results[zip]
	if !ok {
		return domain.LocationResult{}, domain.ErrNotFound
	}
	return r, nil
}

type mockPublisher struct {
	mu     sync.Mutex
	events []domain.LookupEvent
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, event domain.LookupEvent) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRegions is a west box and an east box split at lng -100, with a hole
// in the east box.
func testRegions(t *testing.T) []domain.Region {
	t.Helper()
	west, err := domain.NewRegion("west", "West", []geometry.Polygon{
		{{{-125, 25}, {-100, 25}, {-100, 50}, {-125, 50}}},
	})
	require.NoError(t, err)
	east, err := domain.NewRegion("east", "East", []geometry.Polygon{
		{
			{{-100, 25}, {-65, 25}, {-65, 50}, {-100, 50}},
			{{-90, 30}, {-85, 30}, {-85, 35}, {-90, 35}},
		},
	})
	require.NoError(t, err)
	return []domain.Region{west, east}
}

func newLocator(t *testing.T, zips domain.ZIPResolver, pub locator.Publisher) (*locator.Locator, *observability.Metrics) {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	return locator.New(zips, testRegions(t), pub, discardLogger(), metrics), metrics
}

// --- tests ---

func TestNew_SetsRegionsGauge(t *testing.T) {
	_, metrics := newLocator(t, nil, nil)
	assert.InDelta(t, 2.0, testutil.ToFloat64(metrics.RegionsLoaded), 0)
}

func TestLocate_ZIP(t *testing.T) {
	zips := &mockResolver{results: map[string]domain.LocationResult{
		"90210": {Lat: 34.0901, Lng: -118.4065, Name: "Beverly Hills, CA 90210"},
	}}
	l, metrics := newLocator(t, zips, nil)

	lookup, err := l.Locate(context.Background(), "90210")
	require.NoError(t, err)

	assert.Equal(t, domain.QueryKindZIP, lookup.Kind)
	require.NotNil(t, lookup.Location)
	assert.Equal(t, "Beverly Hills, CA 90210", lookup.Location.Name)
	require.NotNil(t, lookup.Region)
	assert.Equal(t, "west", lookup.Region.ID)

	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.GeocodeRequests.WithLabelValues("zip", "found")), 0)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.RegionLookups.WithLabelValues("match")), 0)
}

func TestLocate_State(t *testing.T) {
	l, _ := newLocator(t, nil, nil)

	lookup, err := l.Locate(context.Background(), "new york")
	require.NoError(t, err)

	assert.Equal(t, domain.QueryKindState, lookup.Kind)
	require.NotNil(t, lookup.Location)
	assert.Equal(t, "New York", lookup.Location.Name)
	require.NotNil(t, lookup.Region)
	assert.Equal(t, "east", lookup.Region.ID)
}

func TestLocate_NotFound(t *testing.T) {
	l, metrics := newLocator(t, &mockResolver{}, nil)

	lookup, err := l.Locate(context.Background(), "00000")
	require.NoError(t, err)
	assert.Nil(t, lookup.Location)
	assert.Nil(t, lookup.Region)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.GeocodeRequests.WithLabelValues("zip", "not_found")), 0)
	assert.InDelta(t, 0.0, testutil.ToFloat64(metrics.RegionLookups.WithLabelValues("no_match")), 0)
}

func TestLocate_ResolverError(t *testing.T) {
	l, metrics := newLocator(t, &mockResolver{err: errors.New("connection refused")}, nil)

	_, err := l.Locate(context.Background(), "10001")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.GeocodeRequests.WithLabelValues("zip", "error")), 0)
}

func TestLocatePoint(t *testing.T) {
	l, metrics := newLocator(t, nil, nil)

	tests := []struct {
		name     string
		lat, lng float64
		want     string
	}{
		{"west", 40, -110, "west"},
		{"east", 40, -80, "east"},
		{"hole", 32, -87, ""},
		{"outside", 10, -80, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookup := l.LocatePoint(context.Background(), tt.lat, tt.lng)
			assert.Equal(t, domain.QueryKindPoint, lookup.Kind)
			require.NotNil(t, lookup.Location)
			assert.Equal(t, tt.lat, lookup.Location.Lat)
			assert.Equal(t, tt.lng, lookup.Location.Lng)
			if tt.want == "" {
				assert.Nil(t, lookup.Region)
				return
			}
			require.NotNil(t, lookup.Region)
			assert.Equal(t, tt.want, lookup.Region.ID)
		})
	}

	assert.InDelta(t, 2.0, testutil.ToFloat64(metrics.RegionLookups.WithLabelValues("no_match")), 0)
}

func TestLocate_PublishesEvent(t *testing.T) {
	fake := clockwork.NewFakeClockAt(time.Date(2024, 4, 26, 15, 0, 0, 0, time.UTC))
	domain.SetClock(fake)
	t.Cleanup(func() { domain.SetClock(nil) })

	pub := &mockPublisher{}
	l, metrics := newLocator(t, nil, pub)

	_, err := l.Locate(context.Background(), "CO")
	require.NoError(t, err)
	l.LocatePoint(context.Background(), 40, -80)

	require.Len(t, pub.events, 2)
	first := pub.events[0]
	assert.Equal(t, "CO", first.Query)
	assert.Equal(t, domain.QueryKindState, first.Kind)
	assert.Equal(t, "west", first.RegionID)
	assert.Equal(t, fake.Now().UTC(), first.ResolvedAt)
	assert.NotEmpty(t, first.ID)

	second := pub.events[1]
	assert.Equal(t, "40,-80", second.Query)
	assert.Equal(t, domain.QueryKindPoint, second.Kind)
	assert.Equal(t, "east", second.RegionID)

	assert.InDelta(t, 2.0, testutil.ToFloat64(metrics.EventsPublished), 0)
}

func TestLocate_PublishFailureIsNotReturned(t *testing.T) {
	pub := &mockPublisher{err: errors.New("broker unavailable")}
	l, metrics := newLocator(t, nil, pub)

	lookup, err := l.Locate(context.Background(), "Texas")
	require.NoError(t, err)
	require.NotNil(t, lookup.Location)

	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.PublishErrors), 0)
	assert.InDelta(t, 0.0, testutil.ToFloat64(metrics.EventsPublished), 0)
}

func TestLocate_PublishOutlivesCancelledRequest(t *testing.T) {
	pub := &mockPublisher{}
	l, _ := newLocator(t, nil, pub)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Locate(ctx, "Utah")
	require.NoError(t, err)
	assert.Len(t, pub.events, 1)
}

func TestContains(t *testing.T) {
	l, _ := newLocator(t, nil, nil)
	square := []byte(`[[[0,0],[10,0],[10,10],[0,10],[0,0]]]`)

	inside, err := l.Contains([]byte(`[5,5]`), square)
	require.NoError(t, err)
	assert.True(t, inside)

	inside, err = l.Contains([]byte(`{"type":"Feature","geometry":{"type":"Point","coordinates":[15,5]}}`), square)
	require.NoError(t, err)
	assert.False(t, inside)

	_, err = l.Contains([]byte(`"nope"`), square)
	require.ErrorIs(t, err, geometry.ErrInvalidShape)
	assert.Contains(t, err.Error(), "point")

	_, err = l.Contains([]byte(`[5,5]`), []byte(`42`))
	require.ErrorIs(t, err, geometry.ErrInvalidShape)
	assert.Contains(t, err.Error(), "polygon")
}

func TestBBox(t *testing.T) {
	l, _ := newLocator(t, nil, nil)

	got, err := l.BBox([]byte(`[[[-10,-4],[6,-4],[6,8],[-10,8]]]`))
	require.NoError(t, err)
	assert.Equal(t, geometry.BoundingBox{-10, -4, 6, 8}, got.BBox)
	assert.Equal(t, geometry.Point{-2, 2}, got.Centroid)

	_, err = l.BBox([]byte(`[]`))
	require.ErrorIs(t, err, geometry.ErrNoCoordinates)

	_, err = l.BBox([]byte(`{`))
	require.ErrorIs(t, err, geometry.ErrInvalidShape)
}

func TestStatesAndRegions(t *testing.T) {
	l, _ := newLocator(t, nil, nil)

	states := l.States()
	require.Len(t, states, 52)
	assert.Equal(t, "Alabama (AL)", states[0].Label)

	regions := l.Regions()
	require.Len(t, regions, 2)
	assert.Equal(t, "west", regions[0].ID)
}

func TestRegionsAndLookupsDoNotExposeCatalog(t *testing.T) {
	l, _ := newLocator(t, nil, nil)

	regions := l.Regions()
	regions[0].Name = "Renamed"
	regions[0].Polygons[0][0][0] = geometry.Point{0, 0}

	lookup := l.LocatePoint(context.Background(), 40, -110)
	require.NotNil(t, lookup.Region)
	assert.Equal(t, "West", lookup.Region.Name)
	lookup.Region.ID = "mutated"

	again := l.LocatePoint(context.Background(), 40, -110)
	require.NotNil(t, again.Region)
	assert.Equal(t, "west", again.Region.ID)
	assert.Equal(t, "West", l.Regions()[0].Name)
}

func TestCheckReadiness(t *testing.T) {
	l, _ := newLocator(t, nil, nil)
	require.NoError(t, l.CheckReadiness(context.Background()))

	empty := locator.New(nil, nil, nil, discardLogger(), observability.NewMetricsForTesting())
	assert.Error(t, empty.CheckReadiness(context.Background()))
}
