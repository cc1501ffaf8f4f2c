package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripCarbon is one recorded trip footprint for a user.
type TripCarbon struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	EmissionKg  float64   `json:"emission_kg"`
	ItineraryID string    `json:"itinerary_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LeaderboardEntry ranks a user by average recorded emission per trip (lower is better).
type LeaderboardEntry struct {
	Rank          int     `json:"rank"`
	UserID        string  `json:"user_id"`
	AvgEmissionKg float64 `json:"avg_emission_kg"`
	TripCount     int     `json:"trip_count"`
}
