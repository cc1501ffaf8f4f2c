package domain

// TravelPreferences are the 0..1 slider values a traveller sets.
// Nil means "not answered"; consumers treat it as the neutral 0.5.
type TravelPreferences struct {
	TripPace              *float64 `json:"trip_pace,omitempty"`
	CrowdComfort          *float64 `json:"crowd_comfort,omitempty"`
	MorningTolerance      *float64 `json:"morning_tolerance,omitempty"`
	LateNightTolerance    *float64 `json:"late_night_tolerance,omitempty"`
	WalkingEffort         *float64 `json:"walking_effort,omitempty"`
	BudgetLevel           *float64 `json:"budget_level,omitempty"`
	PlanningVsSpontaneity *float64 `json:"planning_vs_spontaneity,omitempty"`
	NoiseSensitivity      *float64 `json:"noise_sensitivity,omitempty"`
	EcoPreference         *float64 `json:"eco_preference,omitempty"`
}

// UserPreferences combines the sliders with free-form interests.
type UserPreferences struct {
	Travel    TravelPreferences `json:"travel"`
	Interests []string          `json:"interests"`
}
