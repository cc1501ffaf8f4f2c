package service_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/repo"
	"github.com/pkordes/greenroute/internal/service"
)

type mockTripCarbonRepo struct {
	record      func(ctx context.Context, tc domain.TripCarbon) (domain.TripCarbon, error)
	listByUser  func(ctx context.Context, userID string) ([]domain.TripCarbon, error)
	leaderboard func(ctx context.Context, p domain.PaginationParams) ([]domain.LeaderboardEntry, int64, error)
}

func (m *mockTripCarbonRepo) Record(ctx context.Context, tc domain.TripCarbon) (domain.TripCarbon, error) {
	return m.record(ctx, tc)
}
func (m *mockTripCarbonRepo) ListByUser(ctx context.Context, userID string) ([]domain.TripCarbon, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTripCarbonRepo) Leaderboard(ctx context.Context, p domain.PaginationParams) ([]domain.LeaderboardEntry, int64, error) {
	return m.leaderboard(ctx, p)
}

var _ repo.TripCarbonRepo = (*mockTripCarbonRepo)(nil)

func echoRecordRepo() *mockTripCarbonRepo {
	return &mockTripCarbonRepo{record: func(_ context.Context, tc domain.TripCarbon) (domain.TripCarbon, error) {
		tc.ID = uuid.New()
		return tc, nil
	}}
}

func TestCarbonRecordService_Record_TrimsUser(t *testing.T) {
	svc := service.NewCarbonRecordService(echoRecordRepo())

	got, err := svc.Record(context.Background(), domain.TripCarbon{UserID: "  ana ", EmissionKg: 12.5})

	require.NoError(t, err)
	assert.Equal(t, "ana", got.UserID)
	assert.NotEqual(t, uuid.Nil, got.ID)
}

func TestCarbonRecordService_Record_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   domain.TripCarbon
	}{
		{"blank user", domain.TripCarbon{UserID: "   ", EmissionKg: 1}},
		{"long user", domain.TripCarbon{UserID: strings.Repeat("x", 129), EmissionKg: 1}},
		{"negative", domain.TripCarbon{UserID: "ana", EmissionKg: -0.1}},
		{"nan", domain.TripCarbon{UserID: "ana", EmissionKg: math.NaN()}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.NewCarbonRecordService(&mockTripCarbonRepo{}).Record(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestCarbonRecordService_Record_RepoError(t *testing.T) {
	boom := errors.New("db down")
	r := &mockTripCarbonRepo{record: func(context.Context, domain.TripCarbon) (domain.TripCarbon, error) {
		return domain.TripCarbon{}, boom
	}}

	_, err := service.NewCarbonRecordService(r).Record(context.Background(), domain.TripCarbon{UserID: "ana"})

	assert.ErrorIs(t, err, boom)
}

func TestCarbonRecordService_ListByUser_NeverNil(t *testing.T) {
	r := &mockTripCarbonRepo{listByUser: func(context.Context, string) ([]domain.TripCarbon, error) {
		return nil, nil
	}}

	got, err := service.NewCarbonRecordService(r).ListByUser(context.Background(), "ana")

	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestCarbonRecordService_Leaderboard(t *testing.T) {
	var gotParams domain.PaginationParams
	r := &mockTripCarbonRepo{leaderboard: func(_ context.Context, p domain.PaginationParams) ([]domain.LeaderboardEntry, int64, error) {
		gotParams = p
		return nil, 0, nil
	}}
	p := domain.PaginationParams{Page: 2, Limit: 5}

	entries, total, err := service.NewCarbonRecordService(r).Leaderboard(context.Background(), p)

	require.NoError(t, err)
	assert.Equal(t, p, gotParams)
	assert.NotNil(t, entries)
	assert.Zero(t, total)
}
