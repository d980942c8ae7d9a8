package geometry

import "math"

// BBox returns the envelope of every position in poly, holes included.
// A polygon without positions yields ErrNoCoordinates rather than a zero box.
func BBox(poly PolygonInput) (BoundingBox, error) {
	rings, err := normalizePolygon(poly)
	if err != nil {
		return BoundingBox{}, err
	}
	return rings.Bounds()
}

// Centroid returns the midpoint of the bounding box of poly.
func Centroid(poly PolygonInput) (Point, error) {
	b, err := BBox(poly)
	if err != nil {
		return Point{}, err
	}
	return b.Center(), nil
}

// Bounds is BBox for an already-normalised polygon.
func (p Polygon) Bounds() (BoundingBox, error) {
	b := BoundingBox{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	n := 0
	for _, ring := range p {
		for _, pt := range ring {
			b[0] = math.Min(b[0], pt[0])
			b[1] = math.Min(b[1], pt[1])
			b[2] = math.Max(b[2], pt[0])
			b[3] = math.Max(b[3], pt[1])
			n++
		}
	}
	if n == 0 {
		return BoundingBox{}, ErrNoCoordinates
	}
	return b, nil
}
