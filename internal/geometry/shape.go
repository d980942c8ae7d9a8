package geometry

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	geometryTypePoint   = "Point"
	geometryTypePolygon = "Polygon"
	featureType         = "Feature"
)

// PointInput is either a raw Point or a PointFeature.
type PointInput interface {
	isPointInput()
}

// PolygonInput is either a raw Polygon or a PolygonFeature.
type PolygonInput interface {
	isPolygonInput()
}

// PointGeometry is the geometry member of a point Feature.
type PointGeometry struct {
	Type        string `json:"type,omitempty"`
	Coordinates Point  `json:"coordinates"`
}

// PolygonGeometry is the geometry member of a polygon Feature.
type PolygonGeometry struct {
	Type        string  `json:"type,omitempty"`
	Coordinates Polygon `json:"coordinates"`
}

// PointFeature wraps a point in the GeoJSON Feature envelope.
type PointFeature struct {
	Type       string         `json:"type"`
	Geometry   *PointGeometry `json:"geometry"`
	Properties map[string]any `json:"properties,omitempty"`
}

// PolygonFeature wraps a polygon in the GeoJSON Feature envelope.
type PolygonFeature struct {
	Type       string           `json:"type"`
	Geometry   *PolygonGeometry `json:"geometry"`
	Properties map[string]any   `json:"properties,omitempty"`
}

func (Point) isPointInput() {}

func (PointFeature) isPointInput() {}

func (Polygon) isPolygonInput() {}

func (PolygonFeature) isPolygonInput() {}

// MakePoint wraps coords in a Feature envelope. Nothing is validated.
func MakePoint(coords Point, properties map[string]any) PointFeature {
	return PointFeature{
		Type:       featureType,
		Geometry:   &PointGeometry{Type: geometryTypePoint, Coordinates: coords},
		Properties: properties,
	}
}

// MakePolygon wraps rings in a Feature envelope. Nothing is validated.
func MakePolygon(rings Polygon, properties map[string]any) PolygonFeature {
	return PolygonFeature{
		Type:       featureType,
		Geometry:   &PolygonGeometry{Type: geometryTypePolygon, Coordinates: rings},
		Properties: properties,
	}
}

func normalizePoint(in PointInput) (Point, error) {
	switch v := in.(type) {
	case Point:
		return v, nil
	case PointFeature:
		return v.point()
	case *PointFeature:
		if v == nil {
			return Point{}, fmt.Errorf("%w: nil point feature", ErrInvalidShape)
		}
		return v.point()
	default:
		return Point{}, fmt.Errorf("%w: unsupported point input %T", ErrInvalidShape, in)
	}
}

func (f PointFeature) point() (Point, error) {
	if f.Geometry == nil {
		return Point{}, fmt.Errorf("%w: point feature has no geometry", ErrInvalidShape)
	}
	if t := f.Geometry.Type; t != "" && t != geometryTypePoint {
		return Point{}, fmt.Errorf("%w: expected Point geometry, got %q", ErrInvalidShape, t)
	}
	return f.Geometry.Coordinates, nil
}

func normalizePolygon(in PolygonInput) (Polygon, error) {
	switch v := in.(type) {
	case Polygon:
		return v, nil
	case PolygonFeature:
		return v.polygon()
	case *PolygonFeature:
		if v == nil {
			return nil, fmt.Errorf("%w: nil polygon feature", ErrInvalidShape)
		}
		return v.polygon()
	default:
		return nil, fmt.Errorf("%w: unsupported polygon input %T", ErrInvalidShape, in)
	}
}

func (f PolygonFeature) polygon() (Polygon, error) {
	if f.Geometry == nil {
		return nil, fmt.Errorf("%w: polygon feature has no geometry", ErrInvalidShape)
	}
	if t := f.Geometry.Type; t != "" && t != geometryTypePolygon {
		return nil, fmt.Errorf("%w: expected Polygon geometry, got %q", ErrInvalidShape, t)
	}
	return f.Geometry.Coordinates, nil
}

// rawFeature decodes the envelope loosely so missing members can be told
// apart from zero values.
type rawFeature struct {
	Type       string         `json:"type"`
	Geometry   *rawGeometry   `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type rawGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// ParsePoint decodes a JSON point given either as a bare [lng, lat] array or
// as a Feature envelope. Anything else is ErrInvalidShape.
func ParsePoint(data []byte) (PointInput, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty point", ErrInvalidShape)
	}
	switch data[0] {
	case '[':
		pt, err := decodePosition(data)
		if err != nil {
			return nil, err
		}
		return pt, nil
	case '{':
		var f rawFeature
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
		}
		if f.Geometry == nil || isNullJSON(f.Geometry.Coordinates) {
			return nil, fmt.Errorf("%w: point feature has no coordinates", ErrInvalidShape)
		}
		pt, err := decodePosition(f.Geometry.Coordinates)
		if err != nil {
			return nil, err
		}
		return PointFeature{
			Type:       f.Type,
			Geometry:   &PointGeometry{Type: f.Geometry.Type, Coordinates: pt},
			Properties: f.Properties,
		}, nil
	default:
		return nil, fmt.Errorf("%w: point must be an array or a feature", ErrInvalidShape)
	}
}

// ParsePolygon decodes a JSON polygon given either as bare rings or as a
// Feature envelope. Anything else is ErrInvalidShape.
func ParsePolygon(data []byte) (PolygonInput, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty polygon", ErrInvalidShape)
	}
	switch data[0] {
	case '[':
		poly, err := decodeRings(data)
		if err != nil {
			return nil, err
		}
		return poly, nil
	case '{':
		var f rawFeature
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
		}
		if f.Geometry == nil || isNullJSON(f.Geometry.Coordinates) {
			return nil, fmt.Errorf("%w: polygon feature has no coordinates", ErrInvalidShape)
		}
		poly, err := decodeRings(f.Geometry.Coordinates)
		if err != nil {
			return nil, err
		}
		return PolygonFeature{
			Type:       f.Type,
			Geometry:   &PolygonGeometry{Type: f.Geometry.Type, Coordinates: poly},
			Properties: f.Properties,
		}, nil
	default:
		return nil, fmt.Errorf("%w: polygon must be an array or a feature", ErrInvalidShape)
	}
}

func decodePosition(data []byte) (Point, error) {
	var pos []*float64
	if err := json.Unmarshal(data, &pos); err != nil {
		return Point{}, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	if pos == nil {
		return Point{}, fmt.Errorf("%w: position is null", ErrInvalidShape)
	}
	return positionToPoint(pos)
}

// positionToPoint accepts [lng, lat] or [lng, lat, alt]; altitude is ignored.
func positionToPoint(pos []*float64) (Point, error) {
	if len(pos) < 2 || len(pos) > 3 {
		return Point{}, fmt.Errorf("%w: position needs 2 or 3 values, got %d", ErrInvalidShape, len(pos))
	}
	for i, v := range pos {
		if v == nil {
			return Point{}, fmt.Errorf("%w: position value %d is null", ErrInvalidShape, i)
		}
	}
	return Point{*pos[0], *pos[1]}, nil
}

func decodeRings(data []byte) (Polygon, error) {
	var rings [][][]*float64
	if err := json.Unmarshal(data, &rings); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	if rings == nil {
		return nil, fmt.Errorf("%w: rings are null", ErrInvalidShape)
	}
	poly := make(Polygon, len(rings))
	for i, ring := range rings {
		if ring == nil {
			return nil, fmt.Errorf("%w: ring %d is null", ErrInvalidShape, i)
		}
		poly[i] = make(Ring, len(ring))
		for j, pos := range ring {
			pt, err := positionToPoint(pos)
			if err != nil {
				return nil, fmt.Errorf("ring %d position %d: %w", i, j, err)
			}
			poly[i][j] = pt
		}
	}
	return poly, nil
}

// isNullJSON reports whether a raw member is absent or a literal null.
func isNullJSON(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
