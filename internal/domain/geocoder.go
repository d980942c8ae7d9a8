package domain

import (
	"context"
	"errors"
)

// ErrNotFound marks an expected miss from a resolver: the upstream answered,
// but the code does not exist.
var ErrNotFound = errors.New("location not found")

// ZIPResolver turns a five-digit US ZIP code into a location.
type ZIPResolver interface {
	// ResolveZIP returns ErrNotFound when the code is unknown. Any other
	// error is an infrastructure failure.
	ResolveZIP(ctx context.Context, zip string) (LocationResult, error)
}
