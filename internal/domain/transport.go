package domain

import "strings"

// Mode is the travel mode of a TransportSegment.
type Mode string

const (
	ModeFlightShort Mode = "flight_short"
	ModeFlightLong  Mode = "flight_long"
	ModeTrain       Mode = "train"
	ModeBus         Mode = "bus"
	ModeCar         Mode = "car"
	ModeFerry       Mode = "ferry"
	ModeWalk        Mode = "walk"
)

// IsFlight reports whether m is any flight mode ("flight", "flight_short", "flight_long").
func (m Mode) IsFlight() bool {
	return strings.HasPrefix(strings.ToLower(string(m)), "flight")
}

// TransportSegment is a single leg between two points.
// Origin and Destination are nil when a collaborator could not resolve them;
// the carbon predictor then relies on DistanceKm.
type TransportSegment struct {
	ID              string    `json:"id"`
	Mode            Mode      `json:"mode"`
	Origin          *GeoPoint `json:"origin,omitempty"`
	Destination     *GeoPoint `json:"destination,omitempty"`
	DistanceKm      *float64  `json:"distance_km,omitempty"`
	EmissionKg      *float64  `json:"emission_kg,omitempty"`
	PriceUSD        float64   `json:"price_usd"`
	DurationMinutes int       `json:"duration_minutes"`
}
