package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LookupEvent records one completed lookup for downstream consumers.
type LookupEvent struct {
	ID         string          `json:"id"`
	Query      string          `json:"query"`
	Kind       QueryKind       `json:"kind"`
	Location   *LocationResult `json:"location,omitempty"`
	RegionID   string          `json:"region_id,omitempty"`
	RegionName string          `json:"region_name,omitempty"`
	ResolvedAt time.Time       `json:"resolved_at"`
}

// lookupNamespace scopes lookup event IDs.
var lookupNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/couchcryptid/bioregion-locator/lookup"))

// NewLookupEvent stamps a lookup with the package clock. The ID is a
// name-based UUID of kind, query and timestamp, so replays of the same
// lookup at the same instant collapse downstream.
func NewLookupEvent(query string, kind QueryKind, loc *LocationResult, region *Region) LookupEvent {
	now := clock.Now().UTC()
	e := LookupEvent{
		Query:      query,
		Kind:       kind,
		Location:   loc,
		ResolvedAt: now,
	}
	if region != nil {
		e.RegionID = region.ID
		e.RegionName = region.Name
	}
	name := fmt.Sprintf("%s|%s|%s", kind, query, now.Format(time.RFC3339Nano))
	e.ID = uuid.NewSHA1(lookupNamespace, []byte(name)).String()
	return e
}
