package domain

import (
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Date is a calendar day serialised as "2006-01-02".
type Date = openapi_types.Date

// DateLayout is the layout Date uses on the wire and in generated ids.
const DateLayout = openapi_types.DateFormat

// ItineraryDay is one calendar day of a plan.
// When Activities is non-empty, Transport forms the path
// hotel → Activities[0] → … → Activities[n-1] → hotel. A builder may prepend
// a single arrival leg on the first day.
type ItineraryDay struct {
	Date       Date               `json:"date"`
	Activities []Activity         `json:"activities"`
	Transport  []TransportSegment `json:"transport"`
	Hotel      Hotel              `json:"hotel"`
}

// Itinerary is a complete multi-day plan for one city.
type Itinerary struct {
	ID                 string         `json:"id"`
	City               string         `json:"city"`
	StartDate          Date           `json:"start_date"`
	EndDate            Date           `json:"end_date"`
	Days               []ItineraryDay `json:"days"`
	TotalPriceUSD      float64        `json:"total_price_usd"`
	TotalEmissionKg    float64        `json:"total_emission_kg"`
	InterestMatchScore float64        `json:"interest_match_score"`
	RegretScore        float64        `json:"regret_score"`
}

// Activities returns every scheduled activity across all days, in day order.
func (it Itinerary) Activities() []Activity {
	var out []Activity
	for _, d := range it.Days {
		out = append(out, d.Activities...)
	}
	return out
}

// Clone returns a deep copy. Optional numeric fields get fresh pointers so
// the copy can be edited without touching the original.
func (it Itinerary) Clone() Itinerary {
	out := it
	out.Days = make([]ItineraryDay, len(it.Days))
	for i, d := range it.Days {
		nd := d
		nd.Activities = make([]Activity, len(d.Activities))
		for j, a := range d.Activities {
			nd.Activities[j] = a.clone()
		}
		nd.Transport = make([]TransportSegment, len(d.Transport))
		for j, s := range d.Transport {
			nd.Transport[j] = s.clone()
		}
		nd.Hotel = d.Hotel.clone()
		out.Days[i] = nd
	}
	return out
}

func (a Activity) clone() Activity {
	a.EmissionKg = copyFloat(a.EmissionKg)
	a.InterestScore = copyFloat(a.InterestScore)
	return a
}

func (h Hotel) clone() Hotel {
	h.EmissionKgPerNight = copyFloat(h.EmissionKgPerNight)
	return h
}

func (s TransportSegment) clone() TransportSegment {
	if s.Origin != nil {
		o := *s.Origin
		s.Origin = &o
	}
	if s.Destination != nil {
		d := *s.Destination
		s.Destination = &d
	}
	s.DistanceKm = copyFloat(s.DistanceKm)
	s.EmissionKg = copyFloat(s.EmissionKg)
	return s
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
