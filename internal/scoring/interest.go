// Package scoring rates activities and itineraries against what a traveller
// said they like, and ranks activity pools with an optional external
// preference-fit engine.
package scoring

import (
	"math"
	"slices"

	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/emission"
)

const (
	scoreNeutral = 0.5
	scoreExact   = 1.0
	scoreRelated = 0.6
	scoreMiss    = 0.1

	activityWeight = 0.7
	carbonWeight   = 0.3

	// CarbonNormKg is the footprint at which an itinerary earns no carbon bonus.
	CarbonNormKg = 500.0
)

// relatedCategories maps an activity category to interests that count as a
// partial match.
var relatedCategories = map[string][]string{
	"outdoor":    {"nature", "hiking", "adventure", "sports"},
	"nature":     {"outdoor", "hiking", "adventure", "beach"},
	"museum":     {"culture", "art", "history"},
	"culture":    {"museum", "art", "history"},
	"restaurant": {"food", "local", "culinary"},
	"food":       {"restaurant", "local", "culinary"},
	"nightlife":  {"bars", "entertainment"},
	"wellness":   {"spa", "relaxation", "health"},
	"beach":      {"outdoor", "nature"},
	"ski":        {"outdoor", "adventure", "sports"},
}

// ScoreActivity returns 0.5 when no interests are declared, 1.0 for an exact
// category match, 0.6 for a related category and 0.1 otherwise.
func ScoreActivity(a domain.Activity, prefs domain.UserPreferences) float64 {
	interests := normalizeAll(prefs.Interests)
	if len(interests) == 0 {
		return scoreNeutral
	}
	cat := emission.NormalizeCategory(a.Category)
	if slices.Contains(interests, cat) {
		return scoreExact
	}
	for _, r := range relatedCategories[cat] {
		if slices.Contains(interests, r) {
			return scoreRelated
		}
	}
	return scoreMiss
}

// ScoreItinerary blends the mean activity score (0.5 when there are none)
// with a carbon bonus of clamp(1 - total/500, 0, 1), weighted 0.7 / 0.3.
// The result is always in [0, 1].
func ScoreItinerary(it domain.Itinerary, prefs domain.UserPreferences) float64 {
	sum, n := 0.0, 0
	for _, d := range it.Days {
		for _, a := range d.Activities {
			sum += ScoreActivity(a, prefs)
			n++
		}
	}
	avg := scoreNeutral
	if n > 0 {
		avg = sum / float64(n)
	}
	bonus := emission.Clamp(1-it.TotalEmissionKg/CarbonNormKg, 0, 1)
	if math.IsNaN(bonus) {
		bonus = 0
	}
	return emission.Clamp(activityWeight*avg+carbonWeight*bonus, 0, 1)
}

// Stars converts a [0, 1] score to a 1–5 display rating.
func Stars(score float64) int {
	return int(emission.Clamp(math.Round(score*5), 1, 5))
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := emission.NormalizeCategory(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}
