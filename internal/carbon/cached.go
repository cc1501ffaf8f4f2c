package carbon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pkordes/greenroute/internal/cache"
	"github.com/pkordes/greenroute/internal/domain"
)

// Cached memoises another Source keyed by the itinerary's JSON encoding.
// Cache failures are logged and bypassed.
type Cached struct {
	next  Source
	cache cache.Cache
	log   *slog.Logger
}

// NewCached wraps next with c.
func NewCached(next Source, c cache.Cache, log *slog.Logger) *Cached {
	return &Cached{next: next, cache: c, log: log}
}

// Name implements Source.
func (c *Cached) Name() string { return c.next.Name() }

// Predict implements Source.
func (c *Cached) Predict(ctx context.Context, it domain.Itinerary) (domain.CarbonResult, error) {
	payload, err := json.Marshal(it)
	if err != nil {
		return domain.CarbonResult{}, fmt.Errorf("carbon.Cached.Predict: encode: %w", err)
	}
	key := cache.Key("carbon", payload)

	if raw, ok, err := c.cache.Get(ctx, key); err != nil {
		c.log.WarnContext(ctx, "carbon cache read failed", "error", err)
	} else if ok {
		var res domain.CarbonResult
		if err := json.Unmarshal(raw, &res); err == nil {
			return res, nil
		}
	}

	res, err := c.next.Predict(ctx, it)
	if err != nil {
		return domain.CarbonResult{}, err
	}
	if raw, err := json.Marshal(res); err == nil {
		if err := c.cache.Set(ctx, key, raw); err != nil {
			c.log.WarnContext(ctx, "carbon cache write failed", "error", err)
		}
	}
	return res, nil
}
