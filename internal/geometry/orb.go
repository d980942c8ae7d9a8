package geometry

import "github.com/paulmach/orb"

// Orb converts p to an orb.Polygon. orb uses the same (X=lng, Y=lat) order.
func (p Polygon) Orb() orb.Polygon {
	out := make(orb.Polygon, len(p))
	for i, ring := range p {
		r := make(orb.Ring, len(ring))
		for j, pt := range ring {
			r[j] = orb.Point(pt)
		}
		out[i] = r
	}
	return out
}

// PolygonFromOrb converts an orb.Polygon, keeping ring order.
func PolygonFromOrb(p orb.Polygon) Polygon {
	out := make(Polygon, len(p))
	for i, ring := range p {
		r := make(Ring, len(ring))
		for j, pt := range ring {
			r[j] = Point(pt)
		}
		out[i] = r
	}
	return out
}

// Orb converts b to an orb.Bound.
func (b BoundingBox) Orb() orb.Bound {
	return orb.Bound{
		Min: orb.Point{b[0], b[1]},
		Max: orb.Point{b[2], b[3]},
	}
}

// BoundingBoxFromOrb converts an orb.Bound.
func BoundingBoxFromOrb(b orb.Bound) BoundingBox {
	return BoundingBox{b.Min[0], b.Min[1], b.Max[0], b.Max[1]}
}
