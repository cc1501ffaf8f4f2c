package handler

import (
	"net/http"

	"github.com/pkordes/greenroute/internal/domain"
)

type applyCarbonRequest struct {
	Itinerary    *domain.Itinerary    `json:"itinerary"`
	CarbonResult *domain.CarbonResult `json:"carbon_result"`
}

// postPredictCarbon handles POST /api/v1/carbon/predict.
func (s *Server) postPredictCarbon(w http.ResponseWriter, r *http.Request) {
	var req itineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := requireItinerary(req.Itinerary); err != nil {
		s.writeError(w, r, err)
		return
	}
	pred, err := s.planner.PredictCarbon(r.Context(), *req.Itinerary)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pred)
}

// postApplyCarbon handles POST /api/v1/carbon/apply. Without carbon_result
// the itinerary is predicted first.
func (s *Server) postApplyCarbon(w http.ResponseWriter, r *http.Request) {
	var req applyCarbonRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := requireItinerary(req.Itinerary); err != nil {
		s.writeError(w, r, err)
		return
	}
	it, err := s.planner.ApplyCarbon(r.Context(), *req.Itinerary, req.CarbonResult)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// postAlternative handles POST /api/v1/carbon/alternative.
func (s *Server) postAlternative(w http.ResponseWriter, r *http.Request) {
	var req itineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := requireItinerary(req.Itinerary); err != nil {
		s.writeError(w, r, err)
		return
	}
	alt, err := s.planner.Alternative(r.Context(), *req.Itinerary, req.Preferences)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alt)
}
