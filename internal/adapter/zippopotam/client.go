package zippopotam

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/bioregion-locator/internal/domain"
	"github.com/couchcryptid/bioregion-locator/internal/observability"
)

// DefaultBaseURL is the US endpoint of the public Zippopotam.us API.
const DefaultBaseURL = "https://api.zippopotam.us/us"

// Client implements domain.ZIPResolver using the Zippopotam.us API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Zippopotam client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		metrics: metrics,
		logger:  logger,
	}
}

// ResolveZIP looks up a five-digit ZIP code. Any non-2xx answer or an empty
// place list is domain.ErrNotFound.
func (c *Client) ResolveZIP(ctx context.Context, zip string) (domain.LocationResult, error) {
	result, outcome, err := c.doRequest(ctx, zip)
	c.metrics.ZIPLookups.WithLabelValues(outcome).Inc()
	return result, err
}

func (c *Client) doRequest(ctx context.Context, zip string) (domain.LocationResult, string, error) {
	fullURL := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(zip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.LocationResult{}, "error", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ZIPAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.LocationResult{}, "error", fmt.Errorf("zip lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logger.Debug("zip lookup non-success status", "zip", zip, "status", resp.StatusCode)
		return domain.LocationResult{}, "not_found", fmt.Errorf("%w: zippopotam status %d", domain.ErrNotFound, resp.StatusCode)
	}

	var zipResp response
	if err := json.NewDecoder(resp.Body).Decode(&zipResp); err != nil {
		return domain.LocationResult{}, "error", fmt.Errorf("decode response: %w", err)
	}

	if len(zipResp.Places) == 0 {
		return domain.LocationResult{}, "not_found", fmt.Errorf("%w: no places for %s", domain.ErrNotFound, zip)
	}

	p := zipResp.Places[0]
	lat, err := strconv.ParseFloat(strings.TrimSpace(p.Latitude), 64)
	if err != nil {
		return domain.LocationResult{}, "error", fmt.Errorf("parse latitude %q: %w", p.Latitude, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(p.Longitude), 64)
	if err != nil {
		return domain.LocationResult{}, "error", fmt.Errorf("parse longitude %q: %w", p.Longitude, err)
	}

	return domain.LocationResult{
		Lat:  lat,
		Lng:  lng,
		Name: fmt.Sprintf("%s, %s %s", p.PlaceName, p.StateAbbreviation, zip),
	}, "success", nil
}

// Zippopotam API response types. Coordinates arrive as strings.

type response struct {
	PostCode string  `json:"post code"`
	Country  string  `json:"country abbreviation"`
	Places   []place `json:"places"`
}

type place struct {
	PlaceName         string `json:"place name"`
	Latitude          string `json:"latitude"`
	Longitude         string `json:"longitude"`
	State             string `json:"state"`
	StateAbbreviation string `json:"state abbreviation"`
}
