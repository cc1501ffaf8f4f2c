// Package handler exposes the planning and carbon services over HTTP as
// JSON endpoints on a chi router. Handlers decode and shape payloads only;
// every rule lives in the service layer.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/paulmach/orb/geojson"

	"github.com/pkordes/greenroute/internal/builder"
	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/regret"
	"github.com/pkordes/greenroute/internal/scoring"
	"github.com/pkordes/greenroute/internal/service"
)

// PlannerServicer is the planning surface the handlers depend on.
// *service.PlannerService satisfies it.
type PlannerServicer interface {
	Schedule(ctx context.Context, req service.ScheduleRequest) ([]domain.ItineraryDay, error)
	PredictCarbon(ctx context.Context, it domain.Itinerary) (service.CarbonPrediction, error)
	ApplyCarbon(ctx context.Context, it domain.Itinerary, r *domain.CarbonResult) (domain.Itinerary, error)
	Alternative(ctx context.Context, it domain.Itinerary, prefs domain.UserPreferences) (regret.Alternative, error)
	RankActivities(ctx context.Context, prefs domain.UserPreferences, acts []domain.Activity) (scoring.Ranking, error)
	ScoreItinerary(ctx context.Context, it domain.Itinerary, prefs domain.UserPreferences) (service.ItineraryScore, error)
	GeoJSON(ctx context.Context, it domain.Itinerary) (*geojson.FeatureCollection, error)
	Candidates(ctx context.Context, req builder.Request) (service.CandidateSet, error)
}

// CarbonRecordServicer is the trip-record surface the handlers depend on.
// *service.CarbonRecordService satisfies it.
type CarbonRecordServicer interface {
	Record(ctx context.Context, tc domain.TripCarbon) (domain.TripCarbon, error)
	ListByUser(ctx context.Context, userID string) ([]domain.TripCarbon, error)
	Leaderboard(ctx context.Context, p domain.PaginationParams) ([]domain.LeaderboardEntry, int64, error)
}

// Server holds the handler dependencies. Handlers are split by resource
// across files but all hang off this struct.
type Server struct {
	planner PlannerServicer
	records CarbonRecordServicer
	log     *slog.Logger
}

// NewServer constructs the Server.
func NewServer(planner PlannerServicer, records CarbonRecordServicer, log *slog.Logger) *Server {
	return &Server{planner: planner, records: records, log: log}
}

// Routes returns the API router. Global middleware (request id, logging,
// CORS, body limit) is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.getHealth)
	r.Get("/openapi.yaml", s.getOpenAPI)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/schedule", s.postSchedule)

		r.Post("/carbon/predict", s.postPredictCarbon)
		r.Post("/carbon/apply", s.postApplyCarbon)
		r.Post("/carbon/alternative", s.postAlternative)
		r.Post("/carbon/records", s.postCarbonRecord)

		r.Post("/activities/rank", s.postRankActivities)

		r.Post("/itineraries/candidates", s.postCandidates)
		r.Post("/itineraries/score", s.postScoreItinerary)
		r.Post("/itineraries/geojson", s.postGeoJSON)

		r.Get("/users/{userId}/carbon/records", s.listUserRecords)
		r.Get("/leaderboard", s.getLeaderboard)
	})
	return r
}
