package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/repo"
)

const maxUserIDLen = 128

// CarbonRecordService records trip footprints and ranks travellers by them.
type CarbonRecordService struct {
	repo repo.TripCarbonRepo
}

// NewCarbonRecordService returns a CarbonRecordService backed by r.
func NewCarbonRecordService(r repo.TripCarbonRepo) *CarbonRecordService {
	return &CarbonRecordService{repo: r}
}

// Record validates and persists tc. The user id is trimmed first.
func (s *CarbonRecordService) Record(ctx context.Context, tc domain.TripCarbon) (domain.TripCarbon, error) {
	tc.UserID = strings.TrimSpace(tc.UserID)
	tc.ItineraryID = strings.TrimSpace(tc.ItineraryID)
	if err := validateTripCarbon(tc); err != nil {
		return domain.TripCarbon{}, err
	}
	out, err := s.repo.Record(ctx, tc)
	if err != nil {
		return domain.TripCarbon{}, fmt.Errorf("service.CarbonRecordService.Record: %w", err)
	}
	return out, nil
}

// ListByUser returns a user's records, newest first. Never nil.
func (s *CarbonRecordService) ListByUser(ctx context.Context, userID string) ([]domain.TripCarbon, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	out, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.CarbonRecordService.ListByUser: %w", err)
	}
	if out == nil {
		return []domain.TripCarbon{}, nil
	}
	return out, nil
}

// Leaderboard returns one page of the ranking and the number of ranked users.
func (s *CarbonRecordService) Leaderboard(ctx context.Context, p domain.PaginationParams) ([]domain.LeaderboardEntry, int64, error) {
	entries, total, err := s.repo.Leaderboard(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.CarbonRecordService.Leaderboard: %w", err)
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return entries, total, nil
}

func validateTripCarbon(tc domain.TripCarbon) error {
	if tc.UserID == "" {
		return fmt.Errorf("%w: user_id is required", domain.ErrValidation)
	}
	if len(tc.UserID) > maxUserIDLen {
		return fmt.Errorf("%w: user_id must be at most %d characters", domain.ErrValidation, maxUserIDLen)
	}
	if tc.EmissionKg < 0 || math.IsNaN(tc.EmissionKg) || math.IsInf(tc.EmissionKg, 0) {
		return fmt.Errorf("%w: emission_kg must be a non-negative number", domain.ErrValidation)
	}
	return nil
}
