package domain

import (
	"fmt"
	"strings"
)

// Limits accepted at the API boundary.
const (
	MaxActivitiesPerRequest = 200
	MaxDurationHours        = 24
	MaxDurationMinutes      = 7 * 24 * 60
)

// ValidateGeoPoint checks lat/lng ranges. field names the point in error messages.
func ValidateGeoPoint(field string, p GeoPoint) error {
	if !(p.Lat >= -90 && p.Lat <= 90) {
		return fmt.Errorf("%w: %s.lat must be between -90 and 90", ErrValidation, field)
	}
	if !(p.Lng >= -180 && p.Lng <= 180) {
		return fmt.Errorf("%w: %s.lng must be between -180 and 180", ErrValidation, field)
	}
	return nil
}

// ValidateActivity enforces the Activity field ranges.
func ValidateActivity(field string, a Activity) error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: %s.id is required", ErrValidation, field)
	}
	if err := ValidateGeoPoint(field+".location", a.Location); err != nil {
		return err
	}
	if a.PriceUSD < 0 {
		return fmt.Errorf("%w: %s.price_usd must not be negative", ErrValidation, field)
	}
	if a.DurationHours <= 0 || a.DurationHours > MaxDurationHours {
		return fmt.Errorf("%w: %s.duration_hours must be in (0, %d]", ErrValidation, field, MaxDurationHours)
	}
	if a.EmissionKg != nil && *a.EmissionKg < 0 {
		return fmt.Errorf("%w: %s.emission_kg must not be negative", ErrValidation, field)
	}
	if a.InterestScore != nil && (*a.InterestScore < 0 || *a.InterestScore > 1) {
		return fmt.Errorf("%w: %s.interest_score must be in [0, 1]", ErrValidation, field)
	}
	return nil
}

// ValidateHotel enforces the Hotel field ranges.
func ValidateHotel(field string, h Hotel) error {
	if strings.TrimSpace(h.ID) == "" {
		return fmt.Errorf("%w: %s.id is required", ErrValidation, field)
	}
	if err := ValidateGeoPoint(field+".location", h.Location); err != nil {
		return err
	}
	if h.PricePerNightUSD < 0 {
		return fmt.Errorf("%w: %s.price_per_night_usd must not be negative", ErrValidation, field)
	}
	if h.Stars < 1 || h.Stars > 5 {
		return fmt.Errorf("%w: %s.stars must be between 1 and 5", ErrValidation, field)
	}
	if h.EmissionKgPerNight != nil && *h.EmissionKgPerNight < 0 {
		return fmt.Errorf("%w: %s.emission_kg_per_night must not be negative", ErrValidation, field)
	}
	return nil
}

// ValidateTransport enforces the TransportSegment field ranges. Missing
// coordinates are allowed; present ones must be in range.
func ValidateTransport(field string, s TransportSegment) error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("%w: %s.id is required", ErrValidation, field)
	}
	if s.Origin != nil {
		if err := ValidateGeoPoint(field+".origin", *s.Origin); err != nil {
			return err
		}
	}
	if s.Destination != nil {
		if err := ValidateGeoPoint(field+".destination", *s.Destination); err != nil {
			return err
		}
	}
	if s.DistanceKm != nil && *s.DistanceKm < 0 {
		return fmt.Errorf("%w: %s.distance_km must not be negative", ErrValidation, field)
	}
	if s.EmissionKg != nil && *s.EmissionKg < 0 {
		return fmt.Errorf("%w: %s.emission_kg must not be negative", ErrValidation, field)
	}
	if s.PriceUSD < 0 {
		return fmt.Errorf("%w: %s.price_usd must not be negative", ErrValidation, field)
	}
	if s.DurationMinutes <= 0 || s.DurationMinutes > MaxDurationMinutes {
		return fmt.Errorf("%w: %s.duration_minutes must be in (0, %d]", ErrValidation, field, MaxDurationMinutes)
	}
	return nil
}
