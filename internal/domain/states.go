package domain

import (
	"fmt"
	"strings"
)

// stateCentroids is the fixed state table in authoring order. Coordinates are
// approximate geographic centres, good enough to centre a map.
var stateCentroids = []StateCentroid{
	{Code: "AL", Name: "Alabama", Lat: 32.806671, Lng: -86.791130},
	{Code: "AK", Name: "Alaska", Lat: 61.370716, Lng: -152.404419},
	{Code: "AZ", Name: "Arizona", Lat: 33.729759, Lng: -111.431221},
	{Code: "AR", Name: "Arkansas", Lat: 34.969704, Lng: -92.373123},
	{Code: "CA", Name: "California", Lat: 36.116203, Lng: -119.681564},
	{Code: "CO", Name: "Colorado", Lat: 39.059811, Lng: -105.311104},
	{Code: "CT", Name: "Connecticut", Lat: 41.597782, Lng: -72.755371},
	{Code: "DE", Name: "Delaware", Lat: 39.318523, Lng: -75.507141},
	{Code: "DC", Name: "District of Columbia", Lat: 38.897438, Lng: -77.026817},
	{Code: "FL", Name: "Florida", Lat: 27.766279, Lng: -81.686783},
	{Code: "GA", Name: "Georgia", Lat: 33.040619, Lng: -83.643074},
	{Code: "HI", Name: "Hawaii", Lat: 21.094318, Lng: -157.498337},
	{Code: "ID", Name: "Idaho", Lat: 44.240459, Lng: -114.478828},
	{Code: "IL", Name: "Illinois", Lat: 40.349457, Lng: -88.986137},
	{Code: "IN", Name: "Indiana", Lat: 39.849426, Lng: -86.258278},
	{Code: "IA", Name: "Iowa", Lat: 42.011539, Lng: -93.210526},
	{Code: "KS", Name: "Kansas", Lat: 38.526600, Lng: -96.726486},
	{Code: "KY", Name: "Kentucky", Lat: 37.668140, Lng: -84.670067},
	{Code: "LA", Name: "Louisiana", Lat: 31.169546, Lng: -91.867805},
	{Code: "ME", Name: "Maine", Lat: 44.693947, Lng: -69.381927},
	{Code: "MD", Name: "Maryland", Lat: 39.063946, Lng: -76.802101},
	{Code: "MA", Name: "Massachusetts", Lat: 42.230171, Lng: -71.530106},
	{Code: "MI", Name: "Michigan", Lat: 43.326618, Lng: -84.536095},
	{Code: "MN", Name: "Minnesota", Lat: 45.694454, Lng: -93.900192},
	{Code: "MS", Name: "Mississippi", Lat: 32.741646, Lng: -89.678696},
	{Code: "MO", Name: "Missouri", Lat: 38.456085, Lng: -92.288368},
	{Code: "MT", Name: "Montana", Lat: 46.921925, Lng: -110.454353},
	{Code: "NE", Name: "Nebraska", Lat: 41.125370, Lng: -98.268082},
	{Code: "NV", Name: "Nevada", Lat: 38.313515, Lng: -117.055374},
	{Code: "NH", Name: "New Hampshire", Lat: 43.452492, Lng: -71.563896},
	{Code: "NJ", Name: "New Jersey", Lat: 40.298904, Lng: -74.521011},
	{Code: "NM", Name: "New Mexico", Lat: 34.840515, Lng: -106.248482},
	{Code: "NY", Name: "New York", Lat: 42.165726, Lng: -74.948051},
	{Code: "NC", Name: "North Carolina", Lat: 35.630066, Lng: -79.806419},
	{Code: "ND", Name: "North Dakota", Lat: 47.528912, Lng: -99.784012},
	{Code: "OH", Name: "Ohio", Lat: 40.388783, Lng: -82.764915},
	{Code: "OK", Name: "Oklahoma", Lat: 35.565342, Lng: -96.928917},
	{Code: "OR", Name: "Oregon", Lat: 44.572021, Lng: -122.070938},
	{Code: "PA", Name: "Pennsylvania", Lat: 40.590752, Lng: -77.209755},
	{Code: "RI", Name: "Rhode Island", Lat: 41.680893, Lng: -71.511780},
	{Code: "SC", Name: "South Carolina", Lat: 33.856892, Lng: -80.945007},
	{Code: "SD", Name: "South Dakota", Lat: 44.299782, Lng: -99.438828},
	{Code: "TN", Name: "Tennessee", Lat: 35.747845, Lng: -86.692345},
	{Code: "TX", Name: "Texas", Lat: 31.054487, Lng: -97.563461},
	{Code: "UT", Name: "Utah", Lat: 40.150032, Lng: -111.862434},
	{Code: "VT", Name: "Vermont", Lat: 44.045876, Lng: -72.710686},
	{Code: "VA", Name: "Virginia", Lat: 37.769337, Lng: -78.169968},
	{Code: "WA", Name: "Washington", Lat: 47.400902, Lng: -121.490494},
	{Code: "WV", Name: "West Virginia", Lat: 38.491226, Lng: -80.954453},
	{Code: "WI", Name: "Wisconsin", Lat: 44.268543, Lng: -89.616508},
	{Code: "WY", Name: "Wyoming", Lat: 42.755966, Lng: -107.302490},
	{Code: "PR", Name: "Puerto Rico", Lat: 18.220833, Lng: -66.590149},
}

// stateIndex maps a USPS code to its row in stateCentroids.
var stateIndex = func() map[string]int {
	idx := make(map[string]int, len(stateCentroids))
	for i, s := range stateCentroids {
		idx[s.Code] = i
	}
	return idx
}()

// LookupState resolves a state code or full name, case-insensitively.
// The second return is false when nothing matches.
func LookupState(text string) (StateCentroid, bool) {
	key := strings.ToUpper(strings.TrimSpace(text))
	if key == "" {
		return StateCentroid{}, false
	}
	if i, ok := stateIndex[key]; ok {
		return stateCentroids[i], true
	}
	for _, s := range stateCentroids {
		if strings.EqualFold(s.Name, key) {
			return s, true
		}
	}
	return StateCentroid{}, false
}

// ListStates returns one option per table row, in table order.
func ListStates() []StateOption {
	out := make([]StateOption, len(stateCentroids))
	for i, s := range stateCentroids {
		out[i] = StateOption{
			Code:        s.Code,
			Label:       fmt.Sprintf("%s (%s)", s.Name, s.Code),
			Coordinates: [2]float64{s.Lat, s.Lng},
		}
	}
	return out
}

// States returns a copy of the state table.
func States() []StateCentroid {
	out := make([]StateCentroid, len(stateCentroids))
	copy(out, stateCentroids)
	return out
}
