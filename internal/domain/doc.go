// Package domain resolves free-text US locations to points and maps points
// onto bioregions.
//
// # Query Forms
//
// Two input forms are recognised after trimming surrounding whitespace:
//
//	ZIP code:  exactly five ASCII digits, e.g. "90210".
//	           Anything else made of digits ("9021", "902100") is not a ZIP
//	           and falls through to the state table, where it never matches.
//	State:     a two-letter USPS code ("CA", "dc") or the full name
//	           ("California", "new york"), both case-insensitive.
//
// ZIP codes are resolved through a [ZIPResolver] (the Zippopotam.us API in
// production). States are resolved from a fixed, process-wide table of
// approximate geographic centres covering the 50 states, DC and Puerto Rico.
//
// # Result Conventions
//
// A location that cannot be resolved is a nil [LocationResult] with a nil
// error. Only infrastructure failures (network errors, malformed upstream
// payloads) surface as errors, so callers can tell "no such place" from
// "try again later".
//
// Display names:
//
//	ZIP:   "<place name>, <state code> <zip>"  →  "Beverly Hills, CA 90210"
//	State: "<full name>"                       →  "California"
//
// # Bioregions
//
// A [Region] is a named ecological area made of one or more polygons. The
// catalog is an ordered slice and [FindRegion] returns the first region
// whose geometry contains the point. Overlapping regions are not ranked by
// area or specificity, so catalog order is significant.
package domain
