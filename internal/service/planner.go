package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/greenroute/internal/builder"
	"github.com/pkordes/greenroute/internal/carbon"
	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/emission"
	"github.com/pkordes/greenroute/internal/geo"
	"github.com/pkordes/greenroute/internal/regret"
	"github.com/pkordes/greenroute/internal/schedule"
	"github.com/pkordes/greenroute/internal/scoring"
)

// CarbonPredictor estimates an itinerary's footprint and names the source
// that produced it. *carbon.Chain satisfies it.
type CarbonPredictor interface {
	Predict(ctx context.Context, it domain.Itinerary) (domain.CarbonResult, string)
}

// ActivityRanker orders an activity pool for a traveller. *scoring.Ranker satisfies it.
type ActivityRanker interface {
	Rank(ctx context.Context, prefs domain.UserPreferences, activities []domain.Activity) scoring.Ranking
}

// AlternativeEstimator proposes a lower-carbon itinerary. *regret.Estimator satisfies it.
type AlternativeEstimator interface {
	Estimate(ctx context.Context, it domain.Itinerary, prefs domain.UserPreferences) regret.Alternative
}

// ScheduleRequest is the input of PlannerService.Schedule.
type ScheduleRequest struct {
	Activities []domain.Activity
	StartDate  time.Time
	EndDate    time.Time
	Hotel      domain.Hotel
}

// CarbonPrediction is a carbon estimate and the predictor that produced it.
type CarbonPrediction struct {
	domain.CarbonResult
	Source string `json:"source"`
}

// ItineraryScore is an itinerary's preference/carbon score and star rating.
type ItineraryScore struct {
	Score float64 `json:"score"`
	Stars int     `json:"stars"`
}

// ScoredCandidate is a built itinerary with its carbon estimate applied.
type ScoredCandidate struct {
	Variant      builder.Variant  `json:"variant"`
	Itinerary    domain.Itinerary `json:"itinerary"`
	Score        float64          `json:"score"`
	Stars        int              `json:"stars"`
	CarbonSource string           `json:"carbon_source"`
}

// CandidateSet is the result of PlannerService.Candidates.
type CandidateSet struct {
	Candidates      []ScoredCandidate `json:"candidates"`
	RankingSource   string            `json:"ranking_source"`
	RankingDegraded bool              `json:"ranking_degraded"`
}

// PlannerService runs the itinerary planning use cases.
type PlannerService struct {
	carbon  CarbonPredictor
	ranker  ActivityRanker
	regret  AlternativeEstimator
	builder *builder.Builder
}

// NewPlannerService wires the planning collaborators together.
func NewPlannerService(c CarbonPredictor, r ActivityRanker, a AlternativeEstimator, b *builder.Builder) *PlannerService {
	return &PlannerService{carbon: c, ranker: r, regret: a, builder: b}
}

// Schedule spreads activities over the trip's days around the hotel.
func (s *PlannerService) Schedule(_ context.Context, req ScheduleRequest) ([]domain.ItineraryDay, error) {
	if err := validateDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if err := validatePool("activities", req.Activities); err != nil {
		return nil, err
	}
	if err := domain.ValidateHotel("hotel", req.Hotel); err != nil {
		return nil, err
	}
	return schedule.Plan(req.Activities, req.StartDate, req.EndDate, req.Hotel), nil
}

// PredictCarbon estimates the footprint of it.
func (s *PlannerService) PredictCarbon(ctx context.Context, it domain.Itinerary) (CarbonPrediction, error) {
	if err := validateItinerary(it); err != nil {
		return CarbonPrediction{}, err
	}
	res, source := s.carbon.Predict(ctx, it)
	return CarbonPrediction{CarbonResult: res, Source: source}, nil
}

// ApplyCarbon merges r into it. A nil r is predicted first.
func (s *PlannerService) ApplyCarbon(ctx context.Context, it domain.Itinerary, r *domain.CarbonResult) (domain.Itinerary, error) {
	if err := validateItinerary(it); err != nil {
		return domain.Itinerary{}, err
	}
	if r == nil {
		res, _ := s.carbon.Predict(ctx, it)
		r = &res
	} else if err := validateCarbonResult(*r); err != nil {
		return domain.Itinerary{}, err
	}
	return carbon.Apply(it, *r), nil
}

// Alternative proposes a lower-carbon version of it.
func (s *PlannerService) Alternative(ctx context.Context, it domain.Itinerary, prefs domain.UserPreferences) (regret.Alternative, error) {
	if err := validateItinerary(it); err != nil {
		return regret.Alternative{}, err
	}
	return s.regret.Estimate(ctx, it, prefs), nil
}

// RankActivities orders acts by fit for prefs.
func (s *PlannerService) RankActivities(ctx context.Context, prefs domain.UserPreferences, acts []domain.Activity) (scoring.Ranking, error) {
	if err := validatePool("activities", acts); err != nil {
		return scoring.Ranking{}, err
	}
	return s.ranker.Rank(ctx, prefs, acts), nil
}

// ScoreItinerary rates it against prefs.
func (s *PlannerService) ScoreItinerary(_ context.Context, it domain.Itinerary, prefs domain.UserPreferences) (ItineraryScore, error) {
	if err := validateItinerary(it); err != nil {
		return ItineraryScore{}, err
	}
	score := scoring.ScoreItinerary(it, prefs)
	return ItineraryScore{Score: emission.Round(score, 4), Stars: scoring.Stars(score)}, nil
}

// GeoJSON renders it as a map-ready FeatureCollection.
func (s *PlannerService) GeoJSON(_ context.Context, it domain.Itinerary) (*geojson.FeatureCollection, error) {
	if err := validateItinerary(it); err != nil {
		return nil, err
	}
	return geo.FeatureCollection(it), nil
}

// Candidates ranks the activity pool, builds the three itinerary variants,
// then estimates and scores each variant concurrently. Fit-engine scores
// stand in for missing interest scores; the pool keeps its input order.
func (s *PlannerService) Candidates(ctx context.Context, req builder.Request) (CandidateSet, error) {
	if err := validateCandidateRequest(req); err != nil {
		return CandidateSet{}, err
	}

	ranking := s.ranker.Rank(ctx, req.Preferences, req.Activities)
	req.Activities = withFitScores(req.Activities, ranking)

	built := s.builder.Build(req)
	out := make([]ScoredCandidate, len(built))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range built {
		g.Go(func() error {
			res, source := s.carbon.Predict(gctx, c.Itinerary)
			it := carbon.Apply(c.Itinerary, res)
			score := scoring.ScoreItinerary(it, req.Preferences)
			out[i] = ScoredCandidate{
				Variant:      c.Variant,
				Itinerary:    it,
				Score:        emission.Round(score, 4),
				Stars:        scoring.Stars(score),
				CarbonSource: source,
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return CandidateSet{}, fmt.Errorf("service.PlannerService.Candidates: %w", err)
	}

	return CandidateSet{
		Candidates:      out,
		RankingSource:   ranking.Source,
		RankingDegraded: ranking.Degraded,
	}, nil
}

func validateCandidateRequest(req builder.Request) error {
	if strings.TrimSpace(req.City) == "" {
		return fmt.Errorf("%w: city is required", domain.ErrValidation)
	}
	if err := domain.ValidateGeoPoint("anchor", req.Anchor); err != nil {
		return err
	}
	if err := validateDates(req.StartDate, req.EndDate); err != nil {
		return err
	}
	if err := validatePool("activities", req.Activities); err != nil {
		return err
	}
	for i, h := range req.Hotels {
		if err := domain.ValidateHotel(fmt.Sprintf("hotels[%d]", i), h); err != nil {
			return err
		}
	}
	for i, t := range req.Transport {
		if err := domain.ValidateTransport(fmt.Sprintf("transport[%d]", i), t); err != nil {
			return err
		}
	}
	return nil
}

// withFitScores copies pool in input order, filling absent interest scores
// with the engine's fit score for the same activity id. Fallback rankings
// leave the pool untouched.
func withFitScores(pool []domain.Activity, r scoring.Ranking) []domain.Activity {
	out := slices.Clone(pool)
	if r.Source != "engine" {
		return out
	}
	fit := make(map[string]float64, len(r.Activities))
	for _, ra := range r.Activities {
		fit[ra.ID] = ra.FitScore
	}
	for i, a := range out {
		if a.InterestScore != nil {
			continue
		}
		if f, ok := fit[a.ID]; ok {
			out[i].InterestScore = domain.Float64(emission.Clamp(f, 0, 1))
		}
	}
	return out
}
