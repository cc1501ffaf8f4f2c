package scoring_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/greenroute/internal/cache"
	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/remote"
	"github.com/pkordes/greenroute/internal/scoring"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// mockEngine is a test double for scoring.FitEngine.
type mockEngine struct {
	batchScore func(ctx context.Context, req scoring.BatchRequest) (scoring.BatchResponse, error)
	calls      int
}

func (m *mockEngine) BatchScore(ctx context.Context, req scoring.BatchRequest) (scoring.BatchResponse, error) {
	m.calls++
	return m.batchScore(ctx, req)
}

var _ scoring.FitEngine = (*mockEngine)(nil)

func TestRanker_NoEngineUsesFallback(t *testing.T) {
	r := scoring.NewRanker(nil, discard)

	got := r.Rank(context.Background(), prefs("ski"), []domain.Activity{act("a", "museum"), act("b", "ski")})

	assert.Equal(t, "fallback", got.Source)
	assert.False(t, got.Degraded)
	assert.Equal(t, []string{"b", "a"}, rankedIDs(got.Activities))
}

func TestRanker_EngineErrorFallsBack(t *testing.T) {
	engine := &mockEngine{batchScore: func(context.Context, scoring.BatchRequest) (scoring.BatchResponse, error) {
		return scoring.BatchResponse{}, errors.New("timeout")
	}}

	got := scoring.NewRanker(engine, discard).Rank(context.Background(), prefs(), []domain.Activity{act("a", "museum")})

	assert.Equal(t, "fallback", got.Source)
	assert.True(t, got.Degraded)
	assert.Equal(t, 0.5, got.Activities[0].FitScore)
}

func TestRanker_MismatchIsDegradedNeutral(t *testing.T) {
	engine := &mockEngine{batchScore: func(context.Context, scoring.BatchRequest) (scoring.BatchResponse, error) {
		return scoring.BatchResponse{Scores: []scoring.Score{{FitScore: 1}}}, nil
	}}

	got := scoring.NewRanker(engine, discard).Rank(context.Background(), prefs("ski"),
		[]domain.Activity{act("a", "museum"), act("b", "ski")})

	assert.Equal(t, "fallback", got.Source)
	assert.True(t, got.Degraded)
	assert.Equal(t, []string{"a", "b"}, rankedIDs(got.Activities))
	for _, a := range got.Activities {
		assert.Equal(t, 0.5, a.FitScore)
	}
}

func TestRemoteEngine_BatchScore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/batch_score", r.URL.Path)
		var req scoring.BatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		res := scoring.BatchResponse{}
		for i := range req.Activities {
			res.Scores = append(res.Scores, scoring.Score{FitScore: float64(i) / 10})
		}
		_ = json.NewEncoder(w).Encode(res)
	}))
	defer srv.Close()

	engine := scoring.NewRemoteEngine(remote.New(remote.Config{BaseURL: srv.URL, Timeout: time.Second}, srv.Client()))

	got := scoring.NewRanker(engine, discard).Rank(context.Background(), prefs(),
		[]domain.Activity{act("a", "museum"), act("b", "ski"), act("c", "beach")})

	assert.Equal(t, "engine", got.Source)
	assert.False(t, got.Degraded)
	assert.Equal(t, []string{"c", "b", "a"}, rankedIDs(got.Activities))
}

func TestCachedEngine_ReusesResponse(t *testing.T) {
	engine := &mockEngine{batchScore: func(_ context.Context, req scoring.BatchRequest) (scoring.BatchResponse, error) {
		return scoring.BatchResponse{Scores: make([]scoring.Score, len(req.Activities))}, nil
	}}
	cached := scoring.NewCachedEngine(engine, cache.NewMemory(time.Minute), discard)
	req := scoring.BuildBatchRequest(prefs("ski"), []domain.Activity{act("a", "ski")})

	for range 2 {
		res, err := cached.BatchScore(context.Background(), req)
		require.NoError(t, err)
		assert.Len(t, res.Scores, 1)
	}
	assert.Equal(t, 1, engine.calls)
}
