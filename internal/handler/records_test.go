package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/greenroute/internal/domain"
)

func TestPostCarbonRecord_Created(t *testing.T) {
	id := uuid.New()
	r := &mockRecords{record: func(_ context.Context, tc domain.TripCarbon) (domain.TripCarbon, error) {
		tc.ID = id
		tc.CreatedAt = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
		return tc, nil
	}}

	rec := do(t, newHTTPHandler(nil, r), http.MethodPost, "/api/v1/carbon/records",
		`{"user_id": "ana", "emission_kg": 120.5, "itinerary_id": "it-9"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decode[domain.TripCarbon](t, rec)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "ana", got.UserID)
	assert.Equal(t, 120.5, got.EmissionKg)
	assert.Equal(t, "it-9", got.ItineraryID)
}

func TestPostCarbonRecord_Validation(t *testing.T) {
	r := &mockRecords{record: func(context.Context, domain.TripCarbon) (domain.TripCarbon, error) {
		return domain.TripCarbon{}, fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}}

	rec := do(t, newHTTPHandler(nil, r), http.MethodPost, "/api/v1/carbon/records", `{"emission_kg": 1}`)

	body := requireError(t, rec, http.StatusUnprocessableEntity, "validation_error")
	assert.Equal(t, "user_id is required", body.Error.Message)
}

func TestListUserRecords(t *testing.T) {
	r := &mockRecords{listByUser: func(_ context.Context, userID string) ([]domain.TripCarbon, error) {
		return []domain.TripCarbon{{UserID: userID, EmissionKg: 5}}, nil
	}}

	rec := do(t, newHTTPHandler(nil, r), http.MethodGet, "/api/v1/users/ana/carbon/records", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[struct {
		Data []domain.TripCarbon `json:"data"`
	}](t, rec)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "ana", got.Data[0].UserID)
}

func TestGetLeaderboard_Pagination(t *testing.T) {
	var got domain.PaginationParams
	r := &mockRecords{leaderboard: func(_ context.Context, p domain.PaginationParams) ([]domain.LeaderboardEntry, int64, error) {
		got = p
		return []domain.LeaderboardEntry{{Rank: 6, UserID: "ana", AvgEmissionKg: 12.3, TripCount: 2}}, 11, nil
	}}

	rec := do(t, newHTTPHandler(nil, r), http.MethodGet, "/api/v1/leaderboard?page=2&limit=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 5}, got)
	assert.JSONEq(t, `{
		"data": [{"rank": 6, "user_id": "ana", "avg_emission_kg": 12.3, "trip_count": 2}],
		"pagination": {"page": 2, "limit": 5, "total": 11}
	}`, rec.Body.String())
}

func TestGetLeaderboard_Defaults(t *testing.T) {
	var got domain.PaginationParams
	r := &mockRecords{leaderboard: func(_ context.Context, p domain.PaginationParams) ([]domain.LeaderboardEntry, int64, error) {
		got = p
		return []domain.LeaderboardEntry{}, 0, nil
	}}

	rec := do(t, newHTTPHandler(nil, r), http.MethodGet, "/api/v1/leaderboard?limit=1000", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 100}, got)
}

func TestGetLeaderboard_BadPage(t *testing.T) {
	rec := do(t, newHTTPHandler(nil, &mockRecords{}), http.MethodGet, "/api/v1/leaderboard?page=abc", nil)

	requireError(t, rec, http.StatusBadRequest, "bad_request")
}
