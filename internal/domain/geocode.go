package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

var zipPattern = regexp.MustCompile(`^[0-9]{5}$`)

// IsZIP reports whether text, once trimmed, is exactly five ASCII digits.
func IsZIP(text string) bool {
	return zipPattern.MatchString(strings.TrimSpace(text))
}

// KindOf returns the resolution path Geocode will take for text.
func KindOf(text string) QueryKind {
	if IsZIP(text) {
		return QueryKindZIP
	}
	return QueryKindState
}

// Geocode resolves a ZIP code or state to a point. A nil result with a nil
// error means the location is unknown; errors are reserved for
// infrastructure failures on the ZIP path. A nil resolver disables ZIP
// lookups, which then behave as misses.
func Geocode(ctx context.Context, text string, zips ZIPResolver, logger *slog.Logger) (*LocationResult, error) {
	text = strings.TrimSpace(text)

	if !IsZIP(text) {
		state, ok := LookupState(text)
		if !ok {
			return nil, nil
		}
		return &LocationResult{Lat: state.Lat, Lng: state.Lng, Name: state.Name}, nil
	}

	if zips == nil {
		logger.Warn("zip lookup requested but no resolver configured", "zip", text)
		return nil, nil
	}

	result, err := zips.ResolveZIP(ctx, text)
	if errors.Is(err, ErrNotFound) {
		logger.Debug("zip not found", "zip", text)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve zip %s: %w", text, err)
	}
	return &result, nil
}
