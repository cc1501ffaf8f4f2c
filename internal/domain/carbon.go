package domain

// ItemType classifies a CarbonItem.
type ItemType string

const (
	ItemTransport ItemType = "transport"
	ItemActivity  ItemType = "activity"
	ItemHotel     ItemType = "hotel"
)

// CarbonItem is one line of a carbon estimate. DistanceKm is nil for
// activities and hotel nights.
type CarbonItem struct {
	ID          string   `json:"id"`
	Type        ItemType `json:"type"`
	Description string   `json:"description,omitempty"`
	DistanceKm  *float64 `json:"distance_km"`
	EmissionKg  float64  `json:"emission_kg"`
}

// Key is the "{type}:{id}" lookup key used when merging results onto an itinerary.
func (c CarbonItem) Key() string {
	return CarbonKey(c.Type, c.ID)
}

// CarbonKey builds the merge key for an item of type t with the given id.
func CarbonKey(t ItemType, id string) string {
	return string(t) + ":" + id
}

// CarbonResult is the output of any carbon predictor, local or remote.
type CarbonResult struct {
	Items   []CarbonItem `json:"items"`
	TotalKg float64      `json:"total_kg"`
}
