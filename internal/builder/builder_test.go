package builder_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/greenroute/internal/builder"
	"github.com/pkordes/greenroute/internal/domain"
)

var (
	anchor = domain.GeoPoint{Lat: 38.7223, Lng: -9.1393, Name: "Lisbon"}
	start  = time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC)
)

func sequentialIDs() builder.Option {
	n := 0
	return builder.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("it-%d", n)
	})
}

func activity(id, category string, interest, kg, price float64) domain.Activity {
	return domain.Activity{
		ID:            id,
		Name:          id,
		Category:      category,
		Location:      domain.GeoPoint{Lat: anchor.Lat + 0.01, Lng: anchor.Lng},
		PriceUSD:      price,
		DurationHours: 2,
		EmissionKg:    domain.Float64(kg),
		InterestScore: domain.Float64(interest),
	}
}

func baseRequest() builder.Request {
	return builder.Request{
		City:      "Lisbon",
		Anchor:    anchor,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
		Activities: []domain.Activity{
			activity("tram", "tour", 0.4, 1.0, 10),
			activity("fado", "nightlife", 0.9, 3.0, 40),
			activity("oceanario", "museum", 0.7, 2.5, 25),
		},
		Hotels: []domain.Hotel{
			{ID: "budget", Name: "Budget", Location: anchor, PricePerNightUSD: 60, Stars: 2},
			{ID: "palace", Name: "Palace", Location: anchor, PricePerNightUSD: 300, Stars: 5},
			{ID: "mid", Name: "Mid", Location: anchor, PricePerNightUSD: 120, Stars: 4},
		},
		Transport: []domain.TransportSegment{
			{ID: "flight-in", Mode: domain.ModeFlightShort, DistanceKm: domain.Float64(1450), PriceUSD: 120, DurationMinutes: 150},
			{ID: "flight-alt", Mode: domain.ModeFlightShort, DistanceKm: domain.Float64(1450), PriceUSD: 90, DurationMinutes: 160},
		},
	}
}

func candidateIDs(it domain.Itinerary) []string {
	var out []string
	for _, d := range it.Days {
		for _, a := range d.Activities {
			out = append(out, a.ID)
		}
	}
	return out
}

func TestBuild_ThreeVariantsInOrder(t *testing.T) {
	got := builder.New(sequentialIDs()).Build(baseRequest())

	require.Len(t, got, 3)
	assert.Equal(t, builder.VariantBestMatch, got[0].Variant)
	assert.Equal(t, builder.VariantLowCarbon, got[1].Variant)
	assert.Equal(t, builder.VariantPremium, got[2].Variant)
	assert.Equal(t, "it-1", got[0].Itinerary.ID)
	assert.Equal(t, "it-3", got[2].Itinerary.ID)
	for _, c := range got {
		assert.Equal(t, "Lisbon", c.Itinerary.City)
		assert.Equal(t, "2025-09-10", c.Itinerary.StartDate.Format(domain.DateLayout))
		assert.Len(t, c.Itinerary.Days, 2)
		assert.Equal(t, 0.0, c.Itinerary.RegretScore)
	}
}

func TestBuild_HotelSelection(t *testing.T) {
	got := builder.New().Build(baseRequest())

	assert.Equal(t, "budget", got[0].Itinerary.Days[0].Hotel.ID)
	assert.Equal(t, "budget", got[1].Itinerary.Days[0].Hotel.ID)
	assert.Equal(t, "palace", got[2].Itinerary.Days[1].Hotel.ID)
}

func TestBuild_EmptyHotelPoolUsesDefault(t *testing.T) {
	req := baseRequest()
	req.Hotels = nil

	got := builder.New().Build(req)

	for _, c := range got {
		h := c.Itinerary.Days[0].Hotel
		assert.Equal(t, "default-hotel", h.ID)
		assert.Equal(t, "Hotel", h.Name)
		assert.Equal(t, 3, h.Stars)
		assert.Equal(t, 100.0, h.PricePerNightUSD)
		assert.Equal(t, anchor, h.Location)
	}
}

func TestBuild_ActivityOrderPerVariant(t *testing.T) {
	req := baseRequest()
	req.EndDate = start.AddDate(0, 0, 1) // single day keeps all three together

	got := builder.New().Build(req)

	assert.ElementsMatch(t, []string{"fado", "oceanario", "tram"}, candidateIDs(got[0].Itinerary))
	// Every activity sits at the same spot, so nearest-neighbour keeps bucket order.
	assert.Equal(t, []string{"fado", "oceanario", "tram"}, candidateIDs(got[0].Itinerary))
	assert.Equal(t, []string{"tram", "oceanario", "fado"}, candidateIDs(got[1].Itinerary))
	assert.Equal(t, []string{"tram", "fado", "oceanario"}, candidateIDs(got[2].Itinerary))
}

func TestBuild_CapsThreeActivitiesPerDay(t *testing.T) {
	req := baseRequest()
	req.EndDate = start.AddDate(0, 0, 1)
	req.Activities = nil
	for i := range 8 {
		req.Activities = append(req.Activities, activity(fmt.Sprintf("a%d", i), "museum", float64(i)/10, float64(i), 5))
	}

	got := builder.New().Build(req)

	for _, c := range got {
		require.Len(t, c.Itinerary.Days, 1)
		assert.Len(t, c.Itinerary.Days[0].Activities, builder.MaxActivitiesPerDay)
	}
	assert.ElementsMatch(t, []string{"a7", "a6", "a5"}, candidateIDs(got[0].Itinerary))
	assert.ElementsMatch(t, []string{"a0", "a1", "a2"}, candidateIDs(got[1].Itinerary))
}

func TestBuild_ArrivalLegOnFirstDayOnly(t *testing.T) {
	got := builder.New().Build(baseRequest())

	for _, c := range got {
		first := c.Itinerary.Days[0].Transport
		require.NotEmpty(t, first)
		assert.Equal(t, "flight-in", first[0].ID)
		require.NotNil(t, first[0].EmissionKg)
		assert.InDelta(t, 1450*0.15*1.9, *first[0].EmissionKg, 1e-9)
		for _, s := range c.Itinerary.Days[1].Transport {
			assert.NotEqual(t, "flight-in", s.ID)
		}
	}
}

func TestBuild_Totals(t *testing.T) {
	req := baseRequest()
	req.Transport = nil
	req.Activities = []domain.Activity{activity("fado", "nightlife", 0.9, 3.0, 40)}
	// Put the stop on the hotel so the synthetic legs are zero-cost walks.
	req.Activities[0].Location = anchor

	got := builder.New().Build(req)
	best := got[0].Itinerary

	// 2 nights at 60 + 40; hotel 2 stars ⇒ 9 kg/night heuristic.
	assert.Equal(t, 160.0, best.TotalPriceUSD)
	assert.Equal(t, 2*9.0+3.0, best.TotalEmissionKg)
	assert.Equal(t, 0.9, best.InterestMatchScore)
}

func TestBuild_EmptyPools(t *testing.T) {
	got := builder.New().Build(builder.Request{City: "Nowhere", Anchor: anchor, StartDate: start, EndDate: start})

	require.Len(t, got, 3)
	for _, c := range got {
		require.Len(t, c.Itinerary.Days, 1)
		assert.Empty(t, c.Itinerary.Days[0].Activities)
		assert.Empty(t, c.Itinerary.Days[0].Transport)
		assert.Equal(t, 0.0, c.Itinerary.InterestMatchScore)
		assert.Equal(t, 100.0, c.Itinerary.TotalPriceUSD)
		assert.Equal(t, 11.0, c.Itinerary.TotalEmissionKg)
	}
}

func TestBuild_FillsMissingScoresFromPreferences(t *testing.T) {
	req := baseRequest()
	req.EndDate = start.AddDate(0, 0, 1)
	req.Preferences = domain.UserPreferences{Interests: []string{"museum"}}
	req.Activities = []domain.Activity{
		{ID: "bar", Category: "nightlife", Location: anchor, DurationHours: 1},
		{ID: "art", Category: "museum", Location: anchor, DurationHours: 1},
	}

	got := builder.New().Build(req)

	best := got[0].Itinerary.Days[0].Activities
	require.Len(t, best, 2)
	assert.Equal(t, "art", best[0].ID)
	assert.Equal(t, 1.0, *best[0].InterestScore)
	assert.Equal(t, 2.5, *best[0].EmissionKg)
	assert.Equal(t, 0.1, *best[1].InterestScore)
	assert.Nil(t, req.Activities[0].InterestScore, "input pool is not modified")
}
