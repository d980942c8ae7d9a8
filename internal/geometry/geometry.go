// Package geometry answers planar questions about GeoJSON-style polygons:
// point containment, bounding boxes and bounding-box centroids.
//
// # Coordinate conventions
//
// Positions are (longitude, latitude) pairs, the GeoJSON axis order. No range
// validation happens here; callers supply sane WGS-84 values.
//
// A Polygon is an ordered list of rings. Ring 0 is the exterior boundary and
// rings 1..N are holes. Winding order is never checked and rings do not need
// to repeat their first position at the end: the last position always
// connects back to the first.
//
// # Containment
//
// [PointInPolygon] uses even-odd ray casting with the half-open comparison
//
//	(yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi) + xi
//
// so a point lying exactly on an edge may land on either side. Holes are
// tested one level deep only; an island inside a hole is not inside the
// polygon.
//
// # Centroid
//
// [Centroid] is the midpoint of the bounding box, not the area-weighted
// centroid. Label placement relies on that being cheap and predictable.
package geometry

import "errors"

var (
	// ErrInvalidShape is returned when a point or polygon argument is neither
	// raw coordinates nor a Feature carrying the expected geometry.
	ErrInvalidShape = errors.New("invalid geometry shape")

	// ErrNoCoordinates is returned by BBox and Centroid for a polygon without
	// a single position.
	ErrNoCoordinates = errors.New("polygon has no coordinates")
)

// Point is a (longitude, latitude) pair.
type Point [2]float64

// Lng returns the longitude (X).
func (p Point) Lng() float64 { return p[0] }

// Lat returns the latitude (Y).
func (p Point) Lat() float64 { return p[1] }

// Ring is one closed loop of positions. Closure is implicit.
type Ring []Point

// Polygon is an exterior ring followed by zero or more hole rings.
type Polygon []Ring

// BoundingBox is the axis-aligned envelope (minLng, minLat, maxLng, maxLat).
type BoundingBox [4]float64

// Center returns the midpoint of the box.
func (b BoundingBox) Center() Point {
	return Point{(b[0] + b[2]) / 2, (b[1] + b[3]) / 2}
}

// Covers reports whether pt lies inside or on the edge of the box.
func (b BoundingBox) Covers(pt Point) bool {
	return pt[0] >= b[0] && pt[0] <= b[2] && pt[1] >= b[1] && pt[1] <= b[3]
}
