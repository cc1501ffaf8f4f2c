package domain

// Activity is a candidate stop supplied by a place-search collaborator.
// EmissionKg and InterestScore are optional; the planner fills them in.
type Activity struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"` // free-form, compared case-insensitively
	Location      GeoPoint `json:"location"`
	PriceUSD      float64  `json:"price_usd"`
	DurationHours float64  `json:"duration_hours"`
	EmissionKg    *float64 `json:"emission_kg,omitempty"`
	InterestScore *float64 `json:"interest_score,omitempty"`
}

// Hotel is the nightly anchor of an itinerary day.
type Hotel struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Location           GeoPoint `json:"location"`
	PricePerNightUSD   float64  `json:"price_per_night_usd"`
	Stars              int      `json:"stars"`
	EmissionKgPerNight *float64 `json:"emission_kg_per_night,omitempty"`
}

// Float64 returns a pointer to v. Handy for the optional numeric fields.
func Float64(v float64) *float64 {
	return &v
}

// ValueOr dereferences p, returning def when p is nil.
func ValueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
