package scoring

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pkordes/greenroute/internal/cache"
	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/remote"
)

// FitEngine scores a batch of activities against a traveller profile.
type FitEngine interface {
	BatchScore(ctx context.Context, req BatchRequest) (BatchResponse, error)
}

// RemoteEngine is the HTTP preference-fit engine.
type RemoteEngine struct {
	client *remote.Client
}

// NewRemoteEngine wraps a configured collaborator client.
func NewRemoteEngine(client *remote.Client) *RemoteEngine {
	return &RemoteEngine{client: client}
}

// BatchScore implements FitEngine by POSTing to /batch_score.
func (e *RemoteEngine) BatchScore(ctx context.Context, req BatchRequest) (BatchResponse, error) {
	var res BatchResponse
	if err := e.client.PostJSON(ctx, "/batch_score", req, &res); err != nil {
		return BatchResponse{}, fmt.Errorf("scoring.RemoteEngine.BatchScore: %w", err)
	}
	return res, nil
}

// CachedEngine memoises another FitEngine by request payload.
type CachedEngine struct {
	next  FitEngine
	cache cache.Cache
	log   *slog.Logger
}

// NewCachedEngine wraps next with c.
func NewCachedEngine(next FitEngine, c cache.Cache, log *slog.Logger) *CachedEngine {
	return &CachedEngine{next: next, cache: c, log: log}
}

// BatchScore implements FitEngine.
func (e *CachedEngine) BatchScore(ctx context.Context, req BatchRequest) (BatchResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return BatchResponse{}, fmt.Errorf("scoring.CachedEngine.BatchScore: encode: %w", err)
	}
	key := cache.Key("fit", payload)

	if raw, ok, err := e.cache.Get(ctx, key); err != nil {
		e.log.WarnContext(ctx, "fit cache read failed", "error", err)
	} else if ok {
		var res BatchResponse
		if err := json.Unmarshal(raw, &res); err == nil {
			return res, nil
		}
	}

	res, err := e.next.BatchScore(ctx, req)
	if err != nil {
		return BatchResponse{}, err
	}
	if raw, err := json.Marshal(res); err == nil {
		if err := e.cache.Set(ctx, key, raw); err != nil {
			e.log.WarnContext(ctx, "fit cache write failed", "error", err)
		}
	}
	return res, nil
}

// Ranking is the outcome of Ranker.Rank.
type Ranking struct {
	Activities []RankedActivity `json:"activities"`

	// Source is "engine" or "fallback".
	Source string `json:"source"`

	// Degraded is true when the engine was configured but its answer was not used.
	Degraded bool `json:"degraded"`
}

// Ranker orders an activity pool, preferring the fit engine when one is set.
type Ranker struct {
	engine FitEngine
	log    *slog.Logger
}

// NewRanker builds a Ranker. engine may be nil, in which case every call uses RankFallback.
func NewRanker(engine FitEngine, log *slog.Logger) *Ranker {
	return &Ranker{engine: engine, log: log}
}

// Rank never fails. Engine errors fall back to RankFallback; a score-count
// mismatch counts as a failed batch and gives every activity the neutral 0.5
// in input order.
func (r *Ranker) Rank(ctx context.Context, prefs domain.UserPreferences, activities []domain.Activity) Ranking {
	if r.engine == nil || len(activities) == 0 {
		return Ranking{Activities: RankFallback(activities, prefs.Interests), Source: "fallback"}
	}

	res, err := r.engine.BatchScore(ctx, BuildBatchRequest(prefs, activities))
	if err != nil {
		r.log.WarnContext(ctx, "fit engine failed, using fallback ranking", "activities", len(activities), "error", err)
		return Ranking{Activities: RankFallback(activities, prefs.Interests), Source: "fallback", Degraded: true}
	}

	ranked, ok := MergeAndRank(activities, res.Scores)
	if !ok {
		r.log.WarnContext(ctx, "fit engine score count mismatch",
			"want", len(activities),
			"got", len(res.Scores),
		)
		return Ranking{Activities: ranked, Source: "fallback", Degraded: true}
	}
	return Ranking{Activities: ranked, Source: "engine"}
}
