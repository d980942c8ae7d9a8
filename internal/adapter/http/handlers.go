package http

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/bioregion-locator/internal/geometry"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

const (
	maxBodyBytes = 1 << 20

	// msgLookupFailed is shown to callers when the ZIP upstream fails.
	msgLookupFailed = "Error finding location. Please try again."
)

type errorResponse struct {
	Error string `json:"error"`
}

type containsRequest struct {
	Point   json.RawMessage `json:"point"`
	Polygon json.RawMessage `json:"polygon"`
}

type containsResponse struct {
	Inside bool `json:"inside"`
}

type bboxRequest struct {
	Polygon json.RawMessage `json:"polygon"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	sharedobs.WriteJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleGeocode(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	loc, err := s.svc.Geocode(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusBadGateway, msgLookupFailed)
		return
	}
	if loc == nil {
		writeError(w, http.StatusNotFound, "location not found")
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, loc)
}

func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.svc.States())
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.svc.Regions())
}

// handleLocate accepts either ?q=<zip or state> or ?lat=&lng=.
func (s *Server) handleLocate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if q := strings.TrimSpace(query.Get("q")); q != "" {
		lookup, err := s.svc.Locate(r.Context(), q)
		if err != nil {
			writeError(w, http.StatusBadGateway, msgLookupFailed)
			return
		}
		if lookup.Location == nil {
			writeError(w, http.StatusNotFound, "location not found")
			return
		}
		sharedobs.WriteJSON(w, http.StatusOK, lookup)
		return
	}

	if query.Get("lat") == "" && query.Get("lng") == "" {
		writeError(w, http.StatusBadRequest, "provide q, or lat and lng")
		return
	}
	lat, err := parseCoordinate(query.Get("lat"), 90)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lat: "+err.Error())
		return
	}
	lng, err := parseCoordinate(query.Get("lng"), 180)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid lng: "+err.Error())
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, s.svc.LocatePoint(r.Context(), lat, lng))
}

func (s *Server) handleContains(w http.ResponseWriter, r *http.Request) {
	var req containsRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if len(req.Point) == 0 || len(req.Polygon) == 0 {
		writeError(w, http.StatusBadRequest, "point and polygon are required")
		return
	}

	inside, err := s.svc.Contains(req.Point, req.Polygon)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, containsResponse{Inside: inside})
}

func (s *Server) handleBBox(w http.ResponseWriter, r *http.Request) {
	var req bboxRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if len(req.Polygon) == 0 {
		writeError(w, http.StatusBadRequest, "polygon is required")
		return
	}

	result, err := s.svc.BBox(req.Polygon)
	switch {
	case errors.Is(err, geometry.ErrNoCoordinates):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		sharedobs.WriteJSON(w, http.StatusOK, result)
	}
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Debug("invalid request body", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func parseCoordinate(raw string, limit float64) (float64, error) {
	if raw == "" {
		return 0, errors.New("missing")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("not a number")
	}
	if math.Abs(v) > limit {
		return 0, errors.New("out of range")
	}
	return v, nil
}
