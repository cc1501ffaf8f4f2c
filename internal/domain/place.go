// Package domain contains the core data types for the GreenRoute planner.
// Every other internal package (geo, emission, schedule, carbon, scoring,
// builder, regret, repo, service, handler) speaks in these types.
// The only external imports are uuid and the OpenAPI calendar-date type.
package domain

import "math"

// GeoPoint is a named WGS84 coordinate. It is a value type: copy freely.
type GeoPoint struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name,omitempty"`
}

// Valid reports whether the coordinate is a finite point inside the WGS84 ranges.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}
