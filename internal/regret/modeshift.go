package regret

import (
	"context"
	"strings"

	"github.com/pkordes/greenroute/internal/carbon"
	"github.com/pkordes/greenroute/internal/domain"
)

// ShortFlightKm is the distance under which a flight is swapped for rail.
const ShortFlightKm = 800.0

// ModeShift is a local rule engine: short flights become trains and skiing
// becomes a generic outdoor activity. The result is re-costed with the
// deterministic predictor.
type ModeShift struct{}

// Name implements Engine.
func (ModeShift) Name() string { return "mode_shift" }

// Alternative implements Engine. It returns ErrNoImprovement when no rule
// applies or the swap does not lower the footprint.
func (ModeShift) Alternative(_ context.Context, it domain.Itinerary, _ domain.UserPreferences, currentKg float64) (domain.Itinerary, error) {
	alt := it.Clone()
	changed := false

	for d := range alt.Days {
		day := &alt.Days[d]
		for i := range day.Transport {
			s := &day.Transport[i]
			if s.Mode.IsFlight() && carbon.LegDistance(*s) < ShortFlightKm {
				s.Mode = domain.ModeTrain
				s.EmissionKg = nil
				changed = true
			}
		}
		for i := range day.Activities {
			a := &day.Activities[i]
			if strings.EqualFold(strings.TrimSpace(a.Category), "ski") {
				a.Category = "outdoor"
				a.EmissionKg = nil
				changed = true
			}
		}
	}
	if !changed {
		return domain.Itinerary{}, ErrNoImprovement
	}

	alt = carbon.Apply(alt, carbon.Predict(alt))
	if alt.TotalEmissionKg >= currentKg {
		return domain.Itinerary{}, ErrNoImprovement
	}
	return alt, nil
}
