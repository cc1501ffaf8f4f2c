package handler

import (
	"net/http"

	"github.com/pkordes/greenroute/internal/builder"
	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/service"
)

type scheduleRequest struct {
	Activities []domain.Activity `json:"activities"`
	StartDate  domain.Date       `json:"start_date"`
	EndDate    domain.Date       `json:"end_date"`
	Hotel      domain.Hotel      `json:"hotel"`
}

type scheduleResponse struct {
	Days []domain.ItineraryDay `json:"days"`
}

type itineraryRequest struct {
	Itinerary   *domain.Itinerary      `json:"itinerary"`
	Preferences domain.UserPreferences `json:"preferences"`
}

type rankRequest struct {
	Preferences domain.UserPreferences `json:"preferences"`
	Activities  []domain.Activity      `json:"activities"`
}

type candidatesRequest struct {
	City        string                    `json:"city"`
	Anchor      domain.GeoPoint           `json:"anchor"`
	StartDate   domain.Date               `json:"start_date"`
	EndDate     domain.Date               `json:"end_date"`
	Activities  []domain.Activity         `json:"activities"`
	Hotels      []domain.Hotel            `json:"hotels"`
	Transport   []domain.TransportSegment `json:"transport"`
	Preferences domain.UserPreferences    `json:"preferences"`
}

// postSchedule handles POST /api/v1/schedule.
func (s *Server) postSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	days, err := s.planner.Schedule(r.Context(), service.ScheduleRequest{
		Activities: req.Activities,
		StartDate:  req.StartDate.Time,
		EndDate:    req.EndDate.Time,
		Hotel:      req.Hotel,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scheduleResponse{Days: days})
}

// postRankActivities handles POST /api/v1/activities/rank.
func (s *Server) postRankActivities(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	ranking, err := s.planner.RankActivities(r.Context(), req.Preferences, req.Activities)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

// postCandidates handles POST /api/v1/itineraries/candidates.
func (s *Server) postCandidates(w http.ResponseWriter, r *http.Request) {
	var req candidatesRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	set, err := s.planner.Candidates(r.Context(), builder.Request{
		City:        req.City,
		Anchor:      req.Anchor,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
		Activities:  req.Activities,
		Hotels:      req.Hotels,
		Transport:   req.Transport,
		Preferences: req.Preferences,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// postScoreItinerary handles POST /api/v1/itineraries/score.
func (s *Server) postScoreItinerary(w http.ResponseWriter, r *http.Request) {
	var req itineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := requireItinerary(req.Itinerary); err != nil {
		s.writeError(w, r, err)
		return
	}
	score, err := s.planner.ScoreItinerary(r.Context(), *req.Itinerary, req.Preferences)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// postGeoJSON handles POST /api/v1/itineraries/geojson.
func (s *Server) postGeoJSON(w http.ResponseWriter, r *http.Request) {
	var req itineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := requireItinerary(req.Itinerary); err != nil {
		s.writeError(w, r, err)
		return
	}
	fc, err := s.planner.GeoJSON(r.Context(), *req.Itinerary)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	raw, err := fc.MarshalJSON()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
