// Package builder assembles the three itinerary candidates offered for a
// trip: best interest match, lowest carbon and premium. Each candidate is a
// strategy that picks an activity order and a hotel; scheduling, leg
// synthesis and totals are shared.
package builder

import (
	"cmp"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/greenroute/internal/carbon"
	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/emission"
	"github.com/pkordes/greenroute/internal/schedule"
	"github.com/pkordes/greenroute/internal/scoring"
)

// MaxActivitiesPerDay caps every candidate's daily plan.
const MaxActivitiesPerDay = 3

// Variant names the optimisation target of a candidate.
type Variant string

const (
	VariantBestMatch Variant = "best_match"
	VariantLowCarbon Variant = "low_carbon"
	VariantPremium   Variant = "premium"
)

// Request is everything the builder needs for one trip.
type Request struct {
	City        string
	Anchor      domain.GeoPoint
	StartDate   time.Time
	EndDate     time.Time
	Activities  []domain.Activity
	Hotels      []domain.Hotel
	Transport   []domain.TransportSegment
	Preferences domain.UserPreferences
}

// Candidate is one built itinerary and the strategy that produced it.
type Candidate struct {
	Variant   Variant          `json:"variant"`
	Itinerary domain.Itinerary `json:"itinerary"`
}

// Builder produces candidates. The zero value is not usable; call New.
type Builder struct {
	newID func() string
}

// Option customises a Builder.
type Option func(*Builder)

// WithIDGenerator replaces the random UUID itinerary ids.
func WithIDGenerator(f func() string) Option {
	return func(b *Builder) { b.newID = f }
}

// New returns a Builder.
func New(opts ...Option) *Builder {
	b := &Builder{newID: func() string { return uuid.NewString() }}
	for _, o := range opts {
		o(b)
	}
	return b
}

// strategy decides activity order and hotel for one variant.
type strategy struct {
	variant Variant
	order   func([]domain.Activity) []domain.Activity
	hotel   func([]domain.Hotel) (domain.Hotel, bool)
}

var strategies = []strategy{
	{variant: VariantBestMatch, order: byInterestDesc, hotel: cheapestHotel},
	{variant: VariantLowCarbon, order: byEmissionAsc, hotel: cheapestHotel},
	{variant: VariantPremium, order: slices.Clone[[]domain.Activity], hotel: topRatedHotel},
}

// Build returns exactly three candidates, in best-match, low-carbon, premium
// order. Missing activity scores and emissions are filled in first so every
// strategy sorts on the same numbers. Empty pools never fail: an empty hotel
// pool yields the synthetic default hotel at the anchor.
func (b *Builder) Build(req Request) []Candidate {
	pool := enrich(req.Activities, req.Preferences)
	dayCount := schedule.DayCount(req.StartDate, req.EndDate)

	var arrival *domain.TransportSegment
	if len(req.Transport) > 0 {
		leg := withLegEmission(req.Transport[0])
		arrival = &leg
	}

	out := make([]Candidate, 0, len(strategies))
	for _, s := range strategies {
		hotel, ok := s.hotel(req.Hotels)
		if !ok {
			hotel = DefaultHotel(req.Anchor)
		}
		hotel = withHotelEmission(hotel)

		acts := s.order(pool)
		if limit := dayCount * MaxActivitiesPerDay; len(acts) > limit {
			acts = acts[:limit]
		}

		days := schedule.Plan(acts, req.StartDate, req.EndDate, hotel)
		if arrival != nil && len(days) > 0 {
			days[0].Transport = append([]domain.TransportSegment{*arrival}, days[0].Transport...)
		}

		it := domain.Itinerary{
			ID:        b.newID(),
			City:      req.City,
			StartDate: domain.Date{Time: req.StartDate},
			EndDate:   domain.Date{Time: req.EndDate},
			Days:      days,
		}
		it.TotalPriceUSD = TotalPrice(it)
		it.TotalEmissionKg = TotalEmission(it)
		it.InterestMatchScore = InterestMatch(it)
		out = append(out, Candidate{Variant: s.variant, Itinerary: it})
	}
	return out
}

// DefaultHotel stands in when no hotel was found.
func DefaultHotel(anchor domain.GeoPoint) domain.Hotel {
	return domain.Hotel{
		ID:               "default-hotel",
		Name:             "Hotel",
		Location:         anchor,
		PricePerNightUSD: 100,
		Stars:            3,
	}
}

// TotalPrice is hotel nights plus every activity and transport price, in USD.
func TotalPrice(it domain.Itinerary) float64 {
	sum := 0.0
	for _, d := range it.Days {
		sum += d.Hotel.PricePerNightUSD
		for _, a := range d.Activities {
			sum += a.PriceUSD
		}
		for _, s := range d.Transport {
			sum += s.PriceUSD
		}
	}
	return emission.Round(sum, 2)
}

// TotalEmission is hotel nights plus every activity and transport emission.
// Missing values count as 0.
func TotalEmission(it domain.Itinerary) float64 {
	sum := 0.0
	for _, d := range it.Days {
		sum += domain.ValueOr(d.Hotel.EmissionKgPerNight, 0)
		for _, a := range d.Activities {
			sum += domain.ValueOr(a.EmissionKg, 0)
		}
		for _, s := range d.Transport {
			sum += domain.ValueOr(s.EmissionKg, 0)
		}
	}
	return emission.Round(sum, 3)
}

// InterestMatch is the mean interest score of the scheduled activities, 0 when none.
func InterestMatch(it domain.Itinerary) float64 {
	sum, n := 0.0, 0
	for _, d := range it.Days {
		for _, a := range d.Activities {
			sum += domain.ValueOr(a.InterestScore, 0)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return emission.Round(sum/float64(n), 4)
}

// enrich copies the pool, filling InterestScore from the traveller's
// interests and EmissionKg from the category table where absent.
func enrich(pool []domain.Activity, prefs domain.UserPreferences) []domain.Activity {
	out := make([]domain.Activity, len(pool))
	for i, a := range pool {
		if a.InterestScore == nil {
			a.InterestScore = domain.Float64(scoring.ScoreActivity(a, prefs))
		}
		if a.EmissionKg == nil {
			a.EmissionKg = domain.Float64(emission.Estimate(a.Category, nil))
		}
		out[i] = a
	}
	return out
}

func withHotelEmission(h domain.Hotel) domain.Hotel {
	if h.EmissionKgPerNight == nil {
		h.EmissionKgPerNight = domain.Float64(emission.HotelNightForStars(h.Stars))
	}
	return h
}

func withLegEmission(s domain.TransportSegment) domain.TransportSegment {
	if s.EmissionKg == nil {
		s.EmissionKg = domain.Float64(emission.Transport(s.Mode, carbon.LegDistance(s)))
	}
	return s
}

func byInterestDesc(acts []domain.Activity) []domain.Activity {
	out := slices.Clone(acts)
	slices.SortStableFunc(out, func(a, b domain.Activity) int {
		return cmp.Compare(domain.ValueOr(b.InterestScore, 0), domain.ValueOr(a.InterestScore, 0))
	})
	return out
}

func byEmissionAsc(acts []domain.Activity) []domain.Activity {
	out := slices.Clone(acts)
	slices.SortStableFunc(out, func(a, b domain.Activity) int {
		return cmp.Compare(domain.ValueOr(a.EmissionKg, 0), domain.ValueOr(b.EmissionKg, 0))
	})
	return out
}

func cheapestHotel(hotels []domain.Hotel) (domain.Hotel, bool) {
	if len(hotels) == 0 {
		return domain.Hotel{}, false
	}
	return slices.MinFunc(hotels, func(a, b domain.Hotel) int {
		return cmp.Compare(a.PricePerNightUSD, b.PricePerNightUSD)
	}), true
}

func topRatedHotel(hotels []domain.Hotel) (domain.Hotel, bool) {
	if len(hotels) == 0 {
		return domain.Hotel{}, false
	}
	best := hotels[0]
	for _, h := range hotels[1:] {
		if h.Stars > best.Stars {
			best = h
		}
	}
	return best, true
}
