package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/greenroute/internal/builder"
	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/handler"
	"github.com/pkordes/greenroute/internal/regret"
	"github.com/pkordes/greenroute/internal/scoring"
	"github.com/pkordes/greenroute/internal/service"
)

// mockPlanner is a test double for handler.PlannerServicer.
// Set only the method fields your test needs.
type mockPlanner struct {
	schedule       func(ctx context.Context, req service.ScheduleRequest) ([]domain.ItineraryDay, error)
	predictCarbon  func(ctx context.Context, it domain.Itinerary) (service.CarbonPrediction, error)
	applyCarbon    func(ctx context.Context, it domain.Itinerary, r *domain.CarbonResult) (domain.Itinerary, error)
	alternative    func(ctx context.Context, it domain.Itinerary, prefs domain.UserPreferences) (regret.Alternative, error)
	rankActivities func(ctx context.Context, prefs domain.UserPreferences, acts []domain.Activity) (scoring.Ranking, error)
	scoreItinerary func(ctx context.Context, it domain.Itinerary, prefs domain.UserPreferences) (service.ItineraryScore, error)
	geoJSON        func(ctx context.Context, it domain.Itinerary) (*geojson.FeatureCollection, error)
	candidates     func(ctx context.Context, req builder.Request) (service.CandidateSet, error)
}

func (m *mockPlanner) Schedule(ctx context.Context, req service.ScheduleRequest) ([]domain.ItineraryDay, error) {
	return m.schedule(ctx, req)
}
func (m *mockPlanner) PredictCarbon(ctx context.Context, it domain.Itinerary) (service.CarbonPrediction, error) {
	return m.predictCarbon(ctx, it)
}
func (m *mockPlanner) ApplyCarbon(ctx context.Context, it domain.Itinerary, r *domain.CarbonResult) (domain.Itinerary, error) {
	return m.applyCarbon(ctx, it, r)
}
func (m *mockPlanner) Alternative(ctx context.Context, it domain.Itinerary, prefs domain.UserPreferences) (regret.Alternative, error) {
	return m.alternative(ctx, it, prefs)
}
func (m *mockPlanner) RankActivities(ctx context.Context, prefs domain.UserPreferences, acts []domain.Activity) (scoring.Ranking, error) {
	return m.rankActivities(ctx, prefs, acts)
}
func (m *mockPlanner) ScoreItinerary(ctx context.Context, it domain.Itinerary, prefs domain.UserPreferences) (service.ItineraryScore, error) {
	return m.scoreItinerary(ctx, it, prefs)
}
func (m *mockPlanner) GeoJSON(ctx context.Context, it domain.Itinerary) (*geojson.FeatureCollection, error) {
	return m.geoJSON(ctx, it)
}
func (m *mockPlanner) Candidates(ctx context.Context, req builder.Request) (service.CandidateSet, error) {
	return m.candidates(ctx, req)
}

// mockRecords is a test double for handler.CarbonRecordServicer.
type mockRecords struct {
	record      func(ctx context.Context, tc domain.TripCarbon) (domain.TripCarbon, error)
	listByUser  func(ctx context.Context, userID string) ([]domain.TripCarbon, error)
	leaderboard func(ctx context.Context, p domain.PaginationParams) ([]domain.LeaderboardEntry, int64, error)
}

func (m *mockRecords) Record(ctx context.Context, tc domain.TripCarbon) (domain.TripCarbon, error) {
	return m.record(ctx, tc)
}
func (m *mockRecords) ListByUser(ctx context.Context, userID string) ([]domain.TripCarbon, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockRecords) Leaderboard(ctx context.Context, p domain.PaginationParams) ([]domain.LeaderboardEntry, int64, error) {
	return m.leaderboard(ctx, p)
}

var (
	_ handler.PlannerServicer      = (*mockPlanner)(nil)
	_ handler.CarbonRecordServicer = (*mockRecords)(nil)
	_ handler.PlannerServicer      = (*service.PlannerService)(nil)
	_ handler.CarbonRecordServicer = (*service.CarbonRecordService)(nil)
)

// ---- helpers ---------------------------------------------------------------

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newHTTPHandler(p handler.PlannerServicer, r handler.CarbonRecordServicer) http.Handler {
	return handler.NewServer(p, r, discard).Routes()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		buf = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) handler.ErrorResponse {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[handler.ErrorResponse](t, rec)
	require.Equal(t, code, body.Error.Code)
	return body
}

// ---- health ----------------------------------------------------------------

func TestGetHealth(t *testing.T) {
	rec := do(t, newHTTPHandler(nil, nil), http.MethodGet, "/healthz", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[handler.HealthResponse](t, rec).Status)
}

func TestGetOpenAPI(t *testing.T) {
	rec := do(t, newHTTPHandler(nil, nil), http.MethodGet, "/openapi.yaml", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "openapi: 3.0.3")
}
