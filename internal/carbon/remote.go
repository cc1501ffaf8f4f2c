package carbon

import (
	"context"
	"fmt"

	"github.com/pkordes/greenroute/internal/domain"
	"github.com/pkordes/greenroute/internal/remote"
)

type remoteRequest struct {
	Itinerary domain.Itinerary `json:"itinerary_json"`
}

// Remote calls an external inference service that returns the same
// CarbonResult shape as Predict. The client's base URL is the full endpoint.
type Remote struct {
	client *remote.Client
}

// NewRemote wraps a configured collaborator client.
func NewRemote(client *remote.Client) *Remote {
	return &Remote{client: client}
}

// Name implements Source.
func (r *Remote) Name() string { return "remote" }

// Predict implements Source.
func (r *Remote) Predict(ctx context.Context, it domain.Itinerary) (domain.CarbonResult, error) {
	var res domain.CarbonResult
	if err := r.client.PostJSON(ctx, "", remoteRequest{Itinerary: it}, &res); err != nil {
		return domain.CarbonResult{}, fmt.Errorf("carbon.Remote.Predict: %w", err)
	}
	if res.Items == nil {
		return domain.CarbonResult{}, fmt.Errorf("carbon.Remote.Predict: %w: response has no items", domain.ErrUnavailable)
	}
	return res, nil
}
