package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/pkordes/greenroute/internal/domain"
)

// FeatureCollection renders an itinerary for a map: one Point per hotel
// (deduplicated by id) and activity, one LineString per transport leg whose
// endpoints are both known. BBox covers every emitted coordinate.
func FeatureCollection(it domain.Itinerary) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	var all []domain.GeoPoint
	seenHotels := make(map[string]bool)

	for dayIdx, day := range it.Days {
		date := day.Date.Format(domain.DateLayout)

		if !seenHotels[day.Hotel.ID] && day.Hotel.Location.Valid() {
			seenHotels[day.Hotel.ID] = true
			f := geojson.NewFeature(Point(day.Hotel.Location))
			f.Properties["kind"] = "hotel"
			f.Properties["id"] = day.Hotel.ID
			f.Properties["name"] = day.Hotel.Name
			f.Properties["stars"] = day.Hotel.Stars
			fc.Append(f)
			all = append(all, day.Hotel.Location)
		}

		for order, a := range day.Activities {
			if !a.Location.Valid() {
				continue
			}
			f := geojson.NewFeature(Point(a.Location))
			f.Properties["kind"] = "activity"
			f.Properties["id"] = a.ID
			f.Properties["name"] = a.Name
			f.Properties["category"] = a.Category
			f.Properties["date"] = date
			f.Properties["day"] = dayIdx + 1
			f.Properties["order"] = order + 1
			fc.Append(f)
			all = append(all, a.Location)
		}

		for _, s := range day.Transport {
			if s.Origin == nil || s.Destination == nil || !s.Origin.Valid() || !s.Destination.Valid() {
				continue
			}
			f := geojson.NewFeature(orb.LineString{Point(*s.Origin), Point(*s.Destination)})
			f.Properties["kind"] = "transport"
			f.Properties["id"] = s.ID
			f.Properties["mode"] = string(s.Mode)
			f.Properties["date"] = date
			if s.DistanceKm != nil {
				f.Properties["distance_km"] = *s.DistanceKm
			}
			if s.EmissionKg != nil {
				f.Properties["emission_kg"] = *s.EmissionKg
			}
			fc.Append(f)
			all = append(all, *s.Origin, *s.Destination)
		}
	}

	if len(all) > 0 {
		fc.BBox = geojson.NewBBox(Bound(all...))
	}
	return fc
}
