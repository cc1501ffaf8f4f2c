// Package emission is the static emission model: per-km transport factors,
// per-visit activity factors and the hotel-night figure. Every exported
// estimate is rounded to 3 decimal places. Unknown keys never fail; they fall
// back to documented defaults.
package emission

import (
	"math"
	"strings"

	"github.com/pkordes/greenroute/internal/domain"
)

const (
	// RadiativeForcing scales flight CO2 to account for non-CO2 effects at altitude.
	RadiativeForcing = 1.9

	// LongHaulThresholdKm is the distance from which a flight uses the long-haul factor.
	LongHaulThresholdKm = 1500.0

	// HotelKgPerNight is the flat room-night figure.
	HotelKgPerNight = 15.0

	// DefaultActivityKg applies to categories missing from the activity table.
	DefaultActivityKg = 3.0

	hotelFloorKg   = 8.0
	hotelStarStep  = 2.0
	hotelMaxStars  = 5
	estimatePlaces = 3
)

// kg CO2e per passenger-km.
var transportFactors = map[domain.Mode]float64{
	domain.ModeFlightShort: 0.15,
	domain.ModeFlightLong:  0.11,
	domain.ModeTrain:       0.04,
	domain.ModeBus:         0.08,
	domain.ModeCar:         0.20,
	domain.ModeFerry:       0.12,
	domain.ModeWalk:        0,
}

// kg CO2e per visit.
var activityFactors = map[string]float64{
	"museum":     2.5,
	"restaurant": 4.0,
	"outdoor":    0.5,
	"ski":        18.0,
	"beach":      0.8,
	"nightlife":  3.0,
	"wellness":   2.0,
	"shopping":   5.0,
}

// Transport returns the emission of travelling km kilometres by mode.
// Flights pick their class by distance and carry the radiative forcing
// multiplier. Unknown modes are costed as car travel. Negative distances count as 0.
func Transport(mode domain.Mode, km float64) float64 {
	if km <= 0 || math.IsNaN(km) {
		return 0
	}
	return Round(km*TransportFactor(mode, km), estimatePlaces)
}

// TransportFactor returns the effective kg/km factor for mode at distance km,
// including the flight class choice and radiative forcing.
func TransportFactor(mode domain.Mode, km float64) float64 {
	if mode.IsFlight() {
		if km >= LongHaulThresholdKm {
			return transportFactors[domain.ModeFlightLong] * RadiativeForcing
		}
		return transportFactors[domain.ModeFlightShort] * RadiativeForcing
	}
	if f, ok := transportFactors[domain.Mode(strings.ToLower(string(mode)))]; ok {
		return f
	}
	return transportFactors[domain.ModeCar]
}

// IsKnownMode reports whether mode has its own factor (flights included).
func IsKnownMode(mode domain.Mode) bool {
	if mode.IsFlight() {
		return true
	}
	_, ok := transportFactors[domain.Mode(strings.ToLower(string(mode)))]
	return ok
}

// Activity returns the per-visit emission of an activity category.
// Lookup is case-insensitive and ignores surrounding whitespace.
func Activity(category string) float64 {
	if f, ok := activityFactors[NormalizeCategory(category)]; ok {
		return f
	}
	return DefaultActivityKg
}

// NormalizeCategory lower-cases and trims a free-form category.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// HotelNight returns the flat per-night hotel figure.
func HotelNight() float64 {
	return HotelKgPerNight
}

// HotelNightForStars applies the star heuristic: each star below five takes
// 2 kg off the flat figure, never going under 8 kg. A rating outside 1..5 is
// treated as unknown and gets the flat figure.
func HotelNightForStars(stars int) float64 {
	if stars < 1 || stars > hotelMaxStars {
		return HotelKgPerNight
	}
	missing := float64(max(0, hotelMaxStars-stars))
	return Round(math.Max(hotelFloorKg, HotelKgPerNight-missing*hotelStarStep), estimatePlaces)
}

// Estimate is the single-entry contract over both tables. With a distance the
// key is a transport mode; without one it is an activity category.
func Estimate(key string, km *float64) float64 {
	if km != nil {
		return Transport(domain.Mode(key), *km)
	}
	return Round(Activity(key), estimatePlaces)
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
