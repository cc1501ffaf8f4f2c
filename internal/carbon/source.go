package carbon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/greenroute/internal/domain"
)

// Source is anything that can produce a CarbonResult for an itinerary.
type Source interface {
	Name() string
	Predict(ctx context.Context, it domain.Itinerary) (domain.CarbonResult, error)
}

// Local adapts Predict to the Source interface.
type Local struct{}

// Name implements Source.
func (Local) Name() string { return "local" }

// Predict implements Source. It never returns an error.
func (Local) Predict(_ context.Context, it domain.Itinerary) (domain.CarbonResult, error) {
	return Predict(it), nil
}

// Chain tries each source in order and returns the first valid result. The
// local predictor is always the final step, so Predict never fails.
type Chain struct {
	sources []Source
	log     *slog.Logger
}

// NewChain builds a Chain over sources. Nil sources are skipped.
func NewChain(log *slog.Logger, sources ...Source) *Chain {
	c := &Chain{log: log}
	for _, s := range sources {
		if s != nil {
			c.sources = append(c.sources, s)
		}
	}
	return c
}

// Predict returns the first usable result and the name of the source that produced it.
func (c *Chain) Predict(ctx context.Context, it domain.Itinerary) (domain.CarbonResult, string) {
	for _, s := range c.sources {
		res, err := s.Predict(ctx, it)
		if err == nil {
			err = validate(res)
		}
		if err == nil {
			return res, s.Name()
		}
		c.log.WarnContext(ctx, "carbon predictor failed, falling back",
			"source", s.Name(),
			"itinerary_id", it.ID,
			"error", err,
		)
	}
	return Predict(it), Local{}.Name()
}

func validate(r domain.CarbonResult) error {
	if r.TotalKg < 0 {
		return fmt.Errorf("%w: negative total_kg", domain.ErrUnavailable)
	}
	for _, item := range r.Items {
		if item.EmissionKg < 0 {
			return fmt.Errorf("%w: negative emission for %s", domain.ErrUnavailable, item.Key())
		}
	}
	return nil
}
