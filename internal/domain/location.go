package domain

// QueryKind classifies how a lookup was resolved.
type QueryKind string

const (
	QueryKindZIP   QueryKind = "zip"
	QueryKindState QueryKind = "state"
	QueryKindPoint QueryKind = "point"
)

// LocationResult is a resolved geocode.
type LocationResult struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

// StateCentroid is one row of the static state table.
type StateCentroid struct {
	Code string
	Name string
	Lat  float64
	Lng  float64
}

// StateOption is a state rendered for pickers and dropdowns.
type StateOption struct {
	Code        string     `json:"code"`
	Label       string     `json:"label"`
	Coordinates [2]float64 `json:"coordinates"` // [lat, lng]
}
