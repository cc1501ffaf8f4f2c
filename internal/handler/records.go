package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/greenroute/internal/domain"
)

type recordRequest struct {
	UserID      string  `json:"user_id"`
	EmissionKg  float64 `json:"emission_kg"`
	ItineraryID string  `json:"itinerary_id"`
}

// Pagination describes the page a list response holds.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type leaderboardResponse struct {
	Data       []domain.LeaderboardEntry `json:"data"`
	Pagination Pagination                `json:"pagination"`
}

type recordsResponse struct {
	Data []domain.TripCarbon `json:"data"`
}

// postCarbonRecord handles POST /api/v1/carbon/records.
func (s *Server) postCarbonRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	rec, err := s.records.Record(r.Context(), domain.TripCarbon{
		UserID:      req.UserID,
		EmissionKg:  req.EmissionKg,
		ItineraryID: req.ItineraryID,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// listUserRecords handles GET /api/v1/users/{userId}/carbon/records.
func (s *Server) listUserRecords(w http.ResponseWriter, r *http.Request) {
	recs, err := s.records.ListByUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recordsResponse{Data: recs})
}

// getLeaderboard handles GET /api/v1/leaderboard?page=&limit=
// (defaults page=1, limit=20, max limit 100).
func (s *Server) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		s.writeError(w, r, badRequest("invalid page: %v", err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		s.writeError(w, r, badRequest("invalid limit: %v", err))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	entries, total, err := s.records.Leaderboard(r.Context(), params)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leaderboardResponse{
		Data: entries,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}
