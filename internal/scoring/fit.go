package scoring

import (
	"cmp"
	"slices"

	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/emission"
)

// TravelVector is the nine-slider input of the preference-fit engine.
type TravelVector struct {
	TripPace              float64 `json:"trip_pace"`
	CrowdComfort          float64 `json:"crowd_comfort"`
	MorningTolerance      float64 `json:"morning_tolerance"`
	LateNightTolerance    float64 `json:"late_night_tolerance"`
	WalkingEffort         float64 `json:"walking_effort"`
	BudgetLevel           float64 `json:"budget_level"`
	PlanningVsSpontaneity float64 `json:"planning_vs_spontaneity"`
	NoiseSensitivity      float64 `json:"noise_sensitivity"`
	EcoPreference         float64 `json:"eco_preference"`
}

// ActivityInput is one activity as the fit engine expects it.
type ActivityInput struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	DurationHours     float64 `json:"duration_hours"`
	EmissionKg        float64 `json:"emission_kg"`
	PriceUSD          float64 `json:"price_usd"`
	TypicalStartHour  int     `json:"typical_start_hour"`
	TypicalCrowdLevel float64 `json:"typical_crowd_level"`
}

// BatchRequest is the body POSTed to the engine's /batch_score.
type BatchRequest struct {
	Travel     TravelVector    `json:"travel"`
	Interests  []string        `json:"interests"`
	Activities []ActivityInput `json:"activities"`
}

// Score is the engine's verdict on one activity.
type Score struct {
	FitScore          float64  `json:"fit_score"`
	RegretProbability *float64 `json:"regret_probability,omitempty"`
	Explanation       []string `json:"explanation,omitempty"`
}

// BatchResponse holds one Score per requested activity, in request order.
type BatchResponse struct {
	Scores []Score `json:"scores"`
}

// RankedActivity is an activity with its fit verdict attached.
type RankedActivity struct {
	domain.Activity
	FitScore          float64  `json:"fit_score"`
	RegretProbability *float64 `json:"regret_probability,omitempty"`
	Explanation       []string `json:"explanation,omitempty"`
}

// Provider category labels mapped onto interest names.
var categoryToInterest = map[string]string{
	"sightseeing": "culture",
	"sights":      "culture",
	"tour":        "culture",
	"tours":       "culture",
	"attraction":  "outdoor",
	"attractions": "outdoor",
	"experience":  "outdoor",
	"activities":  "outdoor",
	"restaurant":  "food",
	"dining":      "food",
}

// MatchCategory normalises a provider category into the interest vocabulary.
func MatchCategory(category string) string {
	c := emission.NormalizeCategory(category)
	if mapped, ok := categoryToInterest[c]; ok {
		return mapped
	}
	return c
}

// NewTravelVector fills unanswered sliders with 0.5 and clamps the rest to [0, 1].
func NewTravelVector(t domain.TravelPreferences) TravelVector {
	v := func(p *float64) float64 { return emission.Clamp(domain.ValueOr(p, scoreNeutral), 0, 1) }
	return TravelVector{
		TripPace:              v(t.TripPace),
		CrowdComfort:          v(t.CrowdComfort),
		MorningTolerance:      v(t.MorningTolerance),
		LateNightTolerance:    v(t.LateNightTolerance),
		WalkingEffort:         v(t.WalkingEffort),
		BudgetLevel:           v(t.BudgetLevel),
		PlanningVsSpontaneity: v(t.PlanningVsSpontaneity),
		NoiseSensitivity:      v(t.NoiseSensitivity),
		EcoPreference:         v(t.EcoPreference),
	}
}

// BuildBatchRequest assembles the engine request for activities.
func BuildBatchRequest(prefs domain.UserPreferences, activities []domain.Activity) BatchRequest {
	req := BatchRequest{
		Travel:     NewTravelVector(prefs.Travel),
		Interests:  prefs.Interests,
		Activities: make([]ActivityInput, len(activities)),
	}
	if req.Interests == nil {
		req.Interests = []string{}
	}
	for i, a := range activities {
		cat := a.Category
		if cat == "" {
			cat = "outdoor"
		}
		dur := a.DurationHours
		if dur <= 0 {
			dur = 1
		}
		req.Activities[i] = ActivityInput{
			ID:                a.ID,
			Name:              a.Name,
			Category:          MatchCategory(cat),
			DurationHours:     dur,
			EmissionKg:        domain.ValueOr(a.EmissionKg, 0),
			PriceUSD:          a.PriceUSD,
			TypicalStartHour:  12,
			TypicalCrowdLevel: 0.5,
		}
	}
	return req
}

// MergeAndRank attaches scores to activities by position and sorts by fit
// descending, then emission ascending. When the counts differ every activity
// gets the neutral 0.5 in input order and ok is false.
func MergeAndRank(activities []domain.Activity, scores []Score) (ranked []RankedActivity, ok bool) {
	ranked = make([]RankedActivity, len(activities))
	if len(scores) != len(activities) {
		for i, a := range activities {
			ranked[i] = RankedActivity{Activity: a, FitScore: scoreNeutral}
		}
		return ranked, false
	}
	for i, a := range activities {
		ranked[i] = RankedActivity{
			Activity:          a,
			FitScore:          scores[i].FitScore,
			RegretProbability: scores[i].RegretProbability,
			Explanation:       scores[i].Explanation,
		}
	}
	sortRanked(ranked)
	return ranked, true
}

// RankFallback ranks without the engine: 1 for an interest match (after
// category mapping), 0.5 when no interests are declared, otherwise 0.
func RankFallback(activities []domain.Activity, interests []string) []RankedActivity {
	normalized := normalizeAll(interests)
	ranked := make([]RankedActivity, len(activities))
	for i, a := range activities {
		fit := 0.0
		switch {
		case len(normalized) == 0:
			fit = scoreNeutral
		case slices.Contains(normalized, MatchCategory(a.Category)):
			fit = 1
		}
		ranked[i] = RankedActivity{Activity: a, FitScore: fit}
	}
	sortRanked(ranked)
	return ranked
}

func sortRanked(r []RankedActivity) {
	slices.SortStableFunc(r, func(a, b RankedActivity) int {
		if c := cmp.Compare(b.FitScore, a.FitScore); c != 0 {
			return c
		}
		return cmp.Compare(domain.ValueOr(a.EmissionKg, 0), domain.ValueOr(b.EmissionKg, 0))
	})
}
