package regret

import (
	"context"
	"fmt"

	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/remote"
)

type remoteRequest struct {
	Itinerary   domain.Itinerary       `json:"itinerary_json"`
	Preferences domain.UserPreferences `json:"user_prefs"`
}

type remoteResponse struct {
	OriginalTotalKg      float64           `json:"original_total_kg"`
	AlternativeTotalKg   float64           `json:"alternative_total_kg"`
	AlternativeItinerary *domain.Itinerary `json:"alternative_itinerary"`
	SavingsKg            float64           `json:"savings_kg"`
	RegretScore          float64           `json:"regret_score"`
}

// Remote asks an external alternative-generation service for a plan.
type Remote struct {
	client *remote.Client
}

// NewRemote wraps a configured collaborator client.
func NewRemote(client *remote.Client) *Remote {
	return &Remote{client: client}
}

// Name implements Engine.
func (r *Remote) Name() string { return "remote" }

// Alternative implements Engine.
func (r *Remote) Alternative(ctx context.Context, it domain.Itinerary, prefs domain.UserPreferences, _ float64) (domain.Itinerary, error) {
	var res remoteResponse
	if err := r.client.PostJSON(ctx, "", remoteRequest{Itinerary: it, Preferences: prefs}, &res); err != nil {
		return domain.Itinerary{}, fmt.Errorf("regret.Remote.Alternative: %w", err)
	}
	if res.AlternativeItinerary == nil {
		return domain.Itinerary{}, fmt.Errorf("regret.Remote.Alternative: %w: no alternative_itinerary", domain.ErrUnavailable)
	}
	alt := *res.AlternativeItinerary
	alt.TotalEmissionKg = res.AlternativeTotalKg
	return alt, nil
}
