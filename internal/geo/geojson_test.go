package geo_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/geo"
)

func TestFeatureCollection(t *testing.T) {
	hotel := domain.Hotel{ID: "h1", Name: "Inn", Location: paris, Stars: 3}
	museum := domain.Activity{ID: "a1", Name: "Louvre", Category: "museum", Location: domain.GeoPoint{Lat: 48.8606, Lng: 2.3376}}
	date := domain.Date{Time: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)}

	it := domain.Itinerary{Days: []domain.ItineraryDay{
		{
			Date:       date,
			Hotel:      hotel,
			Activities: []domain.Activity{museum},
			Transport: []domain.TransportSegment{
				{ID: "s1", Mode: domain.ModeWalk, Origin: &hotel.Location, Destination: &museum.Location, DistanceKm: domain.Float64(1.2)},
				{ID: "s2", Mode: domain.ModeTrain, DistanceKm: domain.Float64(40)}, // no coordinates: skipped
			},
		},
		{Date: date, Hotel: hotel},
	}}

	fc := geo.FeatureCollection(it)

	require.Len(t, fc.Features, 3)
	assert.Equal(t, "hotel", fc.Features[0].Properties["kind"])
	assert.Equal(t, "activity", fc.Features[1].Properties["kind"])
	assert.Equal(t, "2025-05-01", fc.Features[1].Properties["date"])
	assert.Equal(t, "transport", fc.Features[2].Properties["kind"])
	assert.Equal(t, "LineString", fc.Features[2].Geometry.GeoJSONType())
	require.Len(t, fc.BBox, 4)

	raw, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"FeatureCollection"`)
}

func TestFeatureCollection_Empty(t *testing.T) {
	fc := geo.FeatureCollection(domain.Itinerary{})
	assert.Empty(t, fc.Features)
	assert.Nil(t, fc.BBox)
}
