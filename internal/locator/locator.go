// Package locator ties geocoding, the bioregion catalog and lookup publishing
// together behind one service used by the HTTP API and the CLI.
package locator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/bioregion-locator/internal/domain"
	"github.com/couchcryptid/bioregion-locator/internal/geometry"
	"github.com/couchcryptid/bioregion-locator/internal/observability"
)

const publishTimeout = 5 * time.Second

// Publisher receives a record of every completed lookup.
type Publisher interface {
	Publish(ctx context.Context, event domain.LookupEvent) error
}

// Lookup is the answer to a locate request. Location is nil when the query
// did not resolve; Region is nil when no bioregion contains the location.
type Lookup struct {
	Query    string                 `json:"query"`
	Kind     domain.QueryKind       `json:"kind"`
	Location *domain.LocationResult `json:"location"`
	Region   *domain.Region         `json:"region"`
}

// BBoxResult is a polygon's envelope and its midpoint.
type BBoxResult struct {
	BBox     geometry.BoundingBox `json:"bbox"`
	Centroid geometry.Point       `json:"centroid"`
}

// Locator resolves free-text and coordinate queries against the bioregion catalog.
type Locator struct {
	zips      domain.ZIPResolver
	regions   []domain.Region
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Locator. zips and publisher may be nil: ZIP queries then
// miss, and lookups are not published.
func New(zips domain.ZIPResolver, regions []domain.Region, publisher Publisher, logger *slog.Logger, metrics *observability.Metrics) *Locator {
	metrics.RegionsLoaded.Set(float64(len(regions)))
	return &Locator{
		zips:      zips,
		regions:   regions,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a catalog is loaded. ZIP caches and the
// publisher degrade on failure, so they do not gate readiness.
func (l *Locator) CheckReadiness(_ context.Context) error {
	if len(l.regions) == 0 {
		return errors.New("no bioregions loaded")
	}
	return nil
}

// Geocode resolves a ZIP code or state to a point. See domain.Geocode.
func (l *Locator) Geocode(ctx context.Context, text string) (*domain.LocationResult, error) {
	kind := domain.KindOf(text)
	loc, err := domain.Geocode(ctx, text, l.zips, l.logger)
	switch {
	case err != nil:
		l.metrics.GeocodeRequests.WithLabelValues(string(kind), "error").Inc()
		l.logger.Error("geocode failed", "query", text, "error", err)
	case loc == nil:
		l.metrics.GeocodeRequests.WithLabelValues(string(kind), "not_found").Inc()
	default:
		l.metrics.GeocodeRequests.WithLabelValues(string(kind), "found").Inc()
	}
	return loc, err
}

// Locate geocodes text and maps the result onto the first containing
// bioregion. An unresolved query is not an error: the Lookup carries a nil
// Location.
func (l *Locator) Locate(ctx context.Context, text string) (Lookup, error) {
	loc, err := l.Geocode(ctx, text)
	if err != nil {
		return Lookup{}, err
	}
	lookup := Lookup{Query: text, Kind: domain.KindOf(text), Location: loc}
	if loc != nil {
		lookup.Region = l.findRegion(geometry.Point{loc.Lng, loc.Lat})
	}
	l.publish(ctx, lookup)
	return lookup, nil
}

// LocatePoint maps a coordinate pair onto the first containing bioregion.
func (l *Locator) LocatePoint(ctx context.Context, lat, lng float64) Lookup {
	lookup := Lookup{
		Query:    strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64),
		Kind:     domain.QueryKindPoint,
		Location: &domain.LocationResult{Lat: lat, Lng: lng},
		Region:   l.findRegion(geometry.Point{lng, lat}),
	}
	l.publish(ctx, lookup)
	return lookup
}

// Contains decodes a point and a polygon, each either raw coordinates or a
// Feature, and reports whether the polygon contains the point.
func (l *Locator) Contains(pointJSON, polygonJSON []byte) (bool, error) {
	pt, err := geometry.ParsePoint(pointJSON)
	if err != nil {
		return false, fmt.Errorf("point: %w", err)
	}
	poly, err := geometry.ParsePolygon(polygonJSON)
	if err != nil {
		return false, fmt.Errorf("polygon: %w", err)
	}
	return geometry.PointInPolygon(pt, poly)
}

// BBox decodes a polygon and returns its envelope and bounding-box centroid.
func (l *Locator) BBox(polygonJSON []byte) (BBoxResult, error) {
	poly, err := geometry.ParsePolygon(polygonJSON)
	if err != nil {
		return BBoxResult{}, fmt.Errorf("polygon: %w", err)
	}
	b, err := geometry.BBox(poly)
	if err != nil {
		return BBoxResult{}, err
	}
	return BBoxResult{BBox: b, Centroid: b.Center()}, nil
}

// States lists the selectable states.
func (l *Locator) States() []domain.StateOption {
	return domain.ListStates()
}

// Regions returns a copy of the catalog in match order.
func (l *Locator) Regions() []domain.Region {
	out := make([]domain.Region, len(l.regions))
	for i, r := range l.regions {
		out[i] = r.Clone()
	}
	return out
}

func (l *Locator) findRegion(pt geometry.Point) *domain.Region {
	region, ok := domain.FindRegion(l.regions, pt)
	if !ok {
		l.metrics.RegionLookups.WithLabelValues("no_match").Inc()
		return nil
	}
	l.metrics.RegionLookups.WithLabelValues("match").Inc()
	clone := region.Clone()
	return &clone
}

// publish records the lookup. Failures are logged and counted, never returned.
func (l *Locator) publish(ctx context.Context, lookup Lookup) {
	if l.publisher == nil {
		return
	}
	event := domain.NewLookupEvent(lookup.Query, lookup.Kind, lookup.Location, lookup.Region)

	// The caller's request may finish before the broker acknowledges.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := l.publisher.Publish(ctx, event); err != nil {
		l.metrics.PublishErrors.Inc()
		l.logger.Warn("publish lookup event failed", "id", event.ID, "error", err)
		return
	}
	l.metrics.EventsPublished.Inc()
}
