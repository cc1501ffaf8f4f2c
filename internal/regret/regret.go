// Package regret offers a lower-carbon alternative to an itinerary the
// traveller already picked, with the expected savings.
//
// Alternatives come from an ordered list of engines. The first engine that
// returns a cheaper plan wins; when none can, a fixed 25% reduction is
// assumed so the traveller always sees an estimate.
package regret

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/emission"
)

const (
	// HeuristicFactor is the assumed alternative footprint relative to the current one.
	HeuristicFactor = 0.75

	// KgPerTree is the CO2e a tree absorbs per year, used for the trees figure.
	KgPerTree = 21.0

	heuristicSource = "heuristic"
)

// ErrNoImprovement is returned by an Engine that cannot find a cheaper plan.
var ErrNoImprovement = errors.New("no lower-carbon alternative")

// Engine generates an alternative itinerary. The returned itinerary's
// TotalEmissionKg must hold its footprint.
type Engine interface {
	Name() string
	Alternative(ctx context.Context, it domain.Itinerary, prefs domain.UserPreferences, currentKg float64) (domain.Itinerary, error)
}

// Predictor measures the current footprint. *carbon.Chain satisfies it.
type Predictor interface {
	Predict(ctx context.Context, it domain.Itinerary) (domain.CarbonResult, string)
}

// Alternative is the estimator's answer. The original itinerary is never modified.
type Alternative struct {
	Itinerary       domain.Itinerary `json:"itinerary"`
	CurrentKg       float64          `json:"current_kg"`
	EstimatedKg     float64          `json:"estimated_kg"`
	SavingsKg       float64          `json:"savings_kg"`
	RegretScore     float64          `json:"regret_score"`
	TreesEquivalent float64          `json:"trees_equivalent"`
	Source          string           `json:"source"`
	CarbonSource    string           `json:"carbon_source"`
}

// Estimator runs the engine chain.
type Estimator struct {
	predictor Predictor
	engines   []Engine
	log       *slog.Logger
}

// NewEstimator builds an Estimator trying engines in order before the heuristic.
func NewEstimator(predictor Predictor, log *slog.Logger, engines ...Engine) *Estimator {
	return &Estimator{predictor: predictor, engines: engines, log: log}
}

// Estimate never fails. The current footprint comes from the predictor; an
// itinerary with nothing to measure keeps its recorded TotalEmissionKg.
func (e *Estimator) Estimate(ctx context.Context, it domain.Itinerary, prefs domain.UserPreferences) Alternative {
	res, carbonSource := e.predictor.Predict(ctx, it)
	current := it.TotalEmissionKg
	if len(res.Items) > 0 {
		current = res.TotalKg
	}
	current = max(0, current)

	for _, eng := range e.engines {
		alt, err := eng.Alternative(ctx, it, prefs, current)
		if err == nil && alt.TotalEmissionKg >= 0 {
			return finish(alt, current, alt.TotalEmissionKg, eng.Name(), carbonSource)
		}
		if err == nil {
			err = errors.New("negative alternative total")
		}
		level := slog.LevelWarn
		if errors.Is(err, ErrNoImprovement) {
			level = slog.LevelDebug
		}
		e.log.Log(ctx, level, "alternative engine skipped", "engine", eng.Name(), "itinerary_id", it.ID, "error", err)
	}

	alt := it.Clone()
	return finish(alt, current, current*HeuristicFactor, heuristicSource, carbonSource)
}

func finish(alt domain.Itinerary, current, estimated float64, source, carbonSource string) Alternative {
	estimated = emission.Round(estimated, 3)
	savings := emission.Round(max(0, current-estimated), 3)
	score := 0.0
	if current > 0 {
		score = emission.Round(emission.Clamp((current-estimated)/current, 0, 1), 4)
	}
	alt.TotalEmissionKg = estimated
	alt.RegretScore = score
	return Alternative{
		Itinerary:       alt,
		CurrentKg:       emission.Round(current, 3),
		EstimatedKg:     estimated,
		SavingsKg:       savings,
		RegretScore:     score,
		TreesEquivalent: emission.Round(savings/KgPerTree, 1),
		Source:          source,
		CarbonSource:    carbonSource,
	}
}
