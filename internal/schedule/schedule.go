// Package schedule spreads a flat list of activities over the days of a trip,
// orders each day by proximity to the hotel and synthesises the walking or bus
// legs between stops.
package schedule

import (
	"fmt"
	"math"
	"time"

	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/emission"
	"github.com/pkordes/greenroute/internal/geo"
)

const (
	// MaxDays caps the length of any generated plan.
	MaxDays = 14

	// WalkThresholdKm is the longest leg that is walked rather than bussed.
	WalkThresholdKm = 2.0

	walkSpeedKmh    = 4.0
	busSpeedKmh     = 20.0
	busFareUSDPerKm = 0.15
	minLegMinutes   = 5
)

// DayCount returns ceil((end - start) / 1 day), clamped to [1, MaxDays].
// An end before start gives a single day.
func DayCount(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	return min(MaxDays, max(1, days))
}

// Plan distributes activities across DayCount(start, end) days in input
// order, at most ceil(len(activities)/days) per day, then orders each day by
// nearest neighbour from the hotel and adds hotel → stops → hotel legs.
// Every input activity appears exactly once. Days without activities carry
// the hotel and no transport.
func Plan(activities []domain.Activity, start, end time.Time, hotel domain.Hotel) []domain.ItineraryDay {
	dayCount := DayCount(start, end)
	perDay := int(math.Ceil(float64(len(activities)) / float64(dayCount)))

	days := make([]domain.ItineraryDay, 0, dayCount)
	next := 0
	for d := range dayCount {
		date := domain.Date{Time: start.AddDate(0, 0, d)}

		take := min(perDay, len(activities)-next)
		bucket := activities[next : next+take]
		next += take

		ordered := NearestNeighbour(hotel.Location, bucket)
		days = append(days, domain.ItineraryDay{
			Date:       date,
			Activities: ordered,
			Transport:  Legs(date.Format(domain.DateLayout), hotel, ordered),
			Hotel:      hotel,
		})
	}
	return days
}

// NearestNeighbour returns a new slice with acts ordered greedily: from the
// current position always visit the closest unvisited stop next. Ties keep
// input order. This is a heuristic, not an optimal tour.
func NearestNeighbour(from domain.GeoPoint, acts []domain.Activity) []domain.Activity {
	remaining := make([]domain.Activity, len(acts))
	copy(remaining, acts)
	ordered := make([]domain.Activity, 0, len(acts))

	current := from
	for len(remaining) > 0 {
		best := 0
		bestDist := geo.Distance(current, remaining[0].Location)
		for i := 1; i < len(remaining); i++ {
			if d := geo.Distance(current, remaining[i].Location); d < bestDist {
				best, bestDist = i, d
			}
		}
		ordered = append(ordered, remaining[best])
		current = remaining[best].Location
		remaining = append(remaining[:best], remaining[best+1:]...)
	}
	return ordered
}

// Legs builds the closed path hotel → ordered[0] → … → ordered[n-1] → hotel.
// It returns an empty, non-nil slice when there are no stops.
func Legs(date string, hotel domain.Hotel, ordered []domain.Activity) []domain.TransportSegment {
	legs := make([]domain.TransportSegment, 0, len(ordered)+1)
	if len(ordered) == 0 {
		return legs
	}

	prev := withName(hotel.Location, hotel.Name, "Hotel")
	for i, a := range ordered {
		dest := withName(a.Location, a.Name, "")
		legs = append(legs, Leg(fmt.Sprintf("seg-%s-%d-to-%s", date, i, a.ID), prev, dest))
		prev = dest
	}
	home := withName(hotel.Location, hotel.Name, "Hotel")
	legs = append(legs, Leg(fmt.Sprintf("seg-%s-return-hotel", date), prev, home))
	return legs
}

// Leg synthesises a single local leg: walk up to WalkThresholdKm, bus beyond.
func Leg(id string, from, to domain.GeoPoint) domain.TransportSegment {
	km := geo.Distance(from, to)

	seg := domain.TransportSegment{
		ID:          id,
		Origin:      &from,
		Destination: &to,
		DistanceKm:  domain.Float64(emission.Round(km, 2)),
	}
	if km <= WalkThresholdKm {
		seg.Mode = domain.ModeWalk
		seg.EmissionKg = domain.Float64(0)
		seg.DurationMinutes = legMinutes(km, walkSpeedKmh)
		return seg
	}
	seg.Mode = domain.ModeBus
	seg.EmissionKg = domain.Float64(emission.Transport(domain.ModeBus, km))
	seg.PriceUSD = emission.Round(km*busFareUSDPerKm, 2)
	seg.DurationMinutes = legMinutes(km, busSpeedKmh)
	return seg
}

func legMinutes(km, speedKmh float64) int {
	return max(minLegMinutes, int(math.Ceil(km/speedKmh*60)))
}

func withName(p domain.GeoPoint, name, fallback string) domain.GeoPoint {
	if p.Name == "" {
		p.Name = name
	}
	if p.Name == "" {
		p.Name = fallback
	}
	return p
}
