package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/bioregion-locator/internal/domain"
	"github.com/couchcryptid/bioregion-locator/internal/locator"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Service is the locator surface the API serves. *locator.Locator implements it.
type Service interface {
	sharedobs.ReadinessChecker
	Geocode(ctx context.Context, text string) (*domain.LocationResult, error)
	Locate(ctx context.Context, text string) (locator.Lookup, error)
	LocatePoint(ctx context.Context, lat, lng float64) locator.Lookup
	Contains(pointJSON, polygonJSON []byte) (bool, error)
	BBox(polygonJSON []byte) (locator.BBoxResult, error)
	States() []domain.StateOption
	Regions() []domain.Region
}

// Server exposes the location API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	svc        Service
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API routes and /healthz, /readyz, and /metrics.
func NewServer(addr string, svc Service, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		svc:    svc,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(svc))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/geocode", s.handleGeocode)
	mux.HandleFunc("GET /api/v1/states", s.handleStates)
	mux.HandleFunc("GET /api/v1/regions", s.handleRegions)
	mux.HandleFunc("GET /api/v1/regions/locate", s.handleLocate)
	mux.HandleFunc("POST /api/v1/geometry/contains", s.handleContains)
	mux.HandleFunc("POST /api/v1/geometry/bbox", s.handleBBox)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
