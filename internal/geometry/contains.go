package geometry

// PointInPolygon reports whether pt lies inside the exterior ring of poly and
// outside every hole. Either argument may be raw coordinates or a Feature.
// A polygon with no rings contains nothing. Only a malformed input shape
// produces an error.
func PointInPolygon(pt PointInput, poly PolygonInput) (bool, error) {
	p, err := normalizePoint(pt)
	if err != nil {
		return false, err
	}
	rings, err := normalizePolygon(poly)
	if err != nil {
		return false, err
	}
	return Contains(rings, p), nil
}

// Contains is PointInPolygon for already-normalised values.
func Contains(poly Polygon, pt Point) bool {
	if len(poly) == 0 || !ringContains(poly[0], pt) {
		return false
	}
	// Holes are assumed disjoint, so the first one that claims the point wins.
	for _, hole := range poly[1:] {
		if ringContains(hole, pt) {
			return false
		}
	}
	return true
}

// ringContains counts crossings of a ray cast from pt towards +X.
func ringContains(ring Ring, pt Point) bool {
	x, y := pt[0], pt[1]
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		// yi != yj whenever the first operand holds, so the division is safe.
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
