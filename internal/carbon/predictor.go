// Package carbon estimates the footprint of an itinerary and merges estimates
// back onto it. Predict is the deterministic reference predictor; Chain lets a
// remote predictor stand in for it and falls back to Predict when that fails.
package carbon

import (
	"fmt"
	"strings"

	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/emission"
	"github.com/pkordes/greenroute/internal/geo"
)

// Predict walks every day of it and emits one item per transport leg, per
// activity and per hotel night. It never fails: legs without usable
// coordinates fall back to their declared distance, then to 0 km.
func Predict(it domain.Itinerary) domain.CarbonResult {
	items := make([]domain.CarbonItem, 0)

	for _, day := range it.Days {
		for _, s := range day.Transport {
			km := LegDistance(s)
			items = append(items, domain.CarbonItem{
				ID:          s.ID,
				Type:        domain.ItemTransport,
				Description: legDescription(s),
				DistanceKm:  domain.Float64(emission.Round(km, 2)),
				EmissionKg:  emission.Transport(s.Mode, km),
			})
		}

		for _, a := range day.Activities {
			items = append(items, domain.CarbonItem{
				ID:          a.ID,
				Type:        domain.ItemActivity,
				Description: a.Name,
				EmissionKg:  emission.Estimate(a.Category, nil),
			})
		}

		items = append(items, domain.CarbonItem{
			ID:          day.Hotel.ID,
			Type:        domain.ItemHotel,
			Description: day.Hotel.Name,
			EmissionKg:  emission.HotelNight(),
		})
	}

	return domain.CarbonResult{Items: items, TotalKg: Total(items)}
}

// Total sums item emissions and rounds to 3 decimals.
func Total(items []domain.CarbonItem) float64 {
	sum := 0.0
	for _, i := range items {
		sum += i.EmissionKg
	}
	return emission.Round(sum, 3)
}

// LegDistance is the great-circle length of s when both ends are known and
// valid, otherwise its declared distance, otherwise 0.
func LegDistance(s domain.TransportSegment) float64 {
	if s.Origin != nil && s.Destination != nil && s.Origin.Valid() && s.Destination.Valid() {
		return geo.Distance(*s.Origin, *s.Destination)
	}
	return max(0, domain.ValueOr(s.DistanceKm, 0))
}

func legDescription(s domain.TransportSegment) string {
	var from, to string
	if s.Origin != nil {
		from = s.Origin.Name
	}
	if s.Destination != nil {
		to = s.Destination.Name
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s → %s", s.Mode, from, to))
}
