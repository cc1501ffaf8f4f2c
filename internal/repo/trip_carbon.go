package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/greenroute/internal/domain"
)

// TripCarbonRepo persists recorded trip footprints.
type TripCarbonRepo interface {
	// Record inserts a footprint and returns it with the DB-generated id and created_at.
	Record(ctx context.Context, tc domain.TripCarbon) (domain.TripCarbon, error)

	// ListByUser returns a user's records, newest first.
	ListByUser(ctx context.Context, userID string) ([]domain.TripCarbon, error)

	// Leaderboard returns one page of users ordered by average emission per
	// trip ascending, and the number of ranked users overall.
	Leaderboard(ctx context.Context, p domain.PaginationParams) ([]domain.LeaderboardEntry, int64, error)
}

type pgTripCarbonRepo struct {
	db db
}

// NewTripCarbonRepo returns a TripCarbonRepo on db. Pass *pgxpool.Pool in
// production and a pgx.Tx in tests.
func NewTripCarbonRepo(db db) TripCarbonRepo {
	return &pgTripCarbonRepo{db: db}
}

func (r *pgTripCarbonRepo) Record(ctx context.Context, tc domain.TripCarbon) (domain.TripCarbon, error) {
	const q = `
		INSERT INTO trip_carbon (user_id, emission_kg, itinerary_id)
		VALUES (@user_id, @emission_kg, @itinerary_id)
		RETURNING id, user_id, emission_kg, itinerary_id, created_at`

	args := pgx.NamedArgs{
		"user_id":      tc.UserID,
		"emission_kg":  tc.EmissionKg,
		"itinerary_id": nullText(tc.ItineraryID),
	}

	out, err := scanTripCarbon(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripCarbon{}, fmt.Errorf("repo.TripCarbonRepo.Record: %w", err)
	}
	return out, nil
}

func (r *pgTripCarbonRepo) ListByUser(ctx context.Context, userID string) ([]domain.TripCarbon, error) {
	const q = `
		SELECT id, user_id, emission_kg, itinerary_id, created_at
		FROM trip_carbon
		WHERE user_id = @user_id
		ORDER BY created_at DESC, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("repo.TripCarbonRepo.ListByUser: %w", err)
	}
	defer rows.Close()

	out := []domain.TripCarbon{}
	for rows.Next() {
		tc, err := scanTripCarbon(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripCarbonRepo.ListByUser: scan: %w", err)
		}
		out = append(out, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripCarbonRepo.ListByUser: rows: %w", err)
	}
	return out, nil
}

// Leaderboard ranks on the average rounded to 0.1 kg; ties are broken by
// user id so pages are stable.
func (r *pgTripCarbonRepo) Leaderboard(ctx context.Context, p domain.PaginationParams) ([]domain.LeaderboardEntry, int64, error) {
	const countQ = `SELECT COUNT(DISTINCT user_id) FROM trip_carbon`

	var total int64
	if err := r.db.QueryRow(ctx, countQ).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TripCarbonRepo.Leaderboard: count: %w", err)
	}

	const q = `
		SELECT user_id,
		       ROUND(AVG(emission_kg)::numeric, 1)::float8 AS avg_emission_kg,
		       COUNT(*) AS trip_count
		FROM trip_carbon
		GROUP BY user_id
		ORDER BY avg_emission_kg ASC, user_id ASC
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TripCarbonRepo.Leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []domain.LeaderboardEntry{}
	for rows.Next() {
		var (
			e     domain.LeaderboardEntry
			count int64
		)
		if err := rows.Scan(&e.UserID, &e.AvgEmissionKg, &count); err != nil {
			return nil, 0, fmt.Errorf("repo.TripCarbonRepo.Leaderboard: scan: %w", err)
		}
		e.TripCount = int(count)
		e.Rank = p.Offset() + len(entries) + 1
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.TripCarbonRepo.Leaderboard: rows: %w", err)
	}
	return entries, total, nil
}

func scanTripCarbon(s scanner) (domain.TripCarbon, error) {
	var (
		tc          domain.TripCarbon
		id          pgtype.UUID
		itineraryID pgtype.Text
	)
	if err := s.Scan(&id, &tc.UserID, &tc.EmissionKg, &itineraryID, &tc.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripCarbon{}, domain.ErrNotFound
		}
		return domain.TripCarbon{}, err
	}
	tc.ID = uuid.UUID(id.Bytes)
	if itineraryID.Valid {
		tc.ItineraryID = itineraryID.String
	}
	return tc, nil
}

func nullText(s string) pgtype.Text {
	return pgtype.Text{String: s, Valid: s != ""}
}
