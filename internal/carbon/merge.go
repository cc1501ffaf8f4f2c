package carbon

import "github.com/pkordes/greenroute/internal/domain"

// Apply returns a copy of it with emissions taken from r. Activities,
// transport legs and hotels whose "{type}:{id}" key appears in r are
// overwritten; everything else keeps its prior value. TotalEmissionKg is
// always replaced by r.TotalKg. it is not modified.
func Apply(it domain.Itinerary, r domain.CarbonResult) domain.Itinerary {
	byKey := make(map[string]float64, len(r.Items))
	for _, item := range r.Items {
		byKey[item.Key()] = item.EmissionKg
	}

	out := it.Clone()
	for d := range out.Days {
		day := &out.Days[d]
		for i := range day.Activities {
			if v, ok := byKey[domain.CarbonKey(domain.ItemActivity, day.Activities[i].ID)]; ok {
				day.Activities[i].EmissionKg = domain.Float64(v)
			}
		}
		for i := range day.Transport {
			if v, ok := byKey[domain.CarbonKey(domain.ItemTransport, day.Transport[i].ID)]; ok {
				day.Transport[i].EmissionKg = domain.Float64(v)
			}
		}
		if v, ok := byKey[domain.CarbonKey(domain.ItemHotel, day.Hotel.ID)]; ok {
			day.Hotel.EmissionKgPerNight = domain.Float64(v)
		}
	}
	out.TotalEmissionKg = r.TotalKg
	return out
}
