package shipengine

import (
	"context"

	"github.com/shipengine/shipengine-go/internal/api"
)

// Carrier types mirror the API's carrier account shape.
type (
	Carrier            = api.Carrier
	CarrierService     = api.CarrierService
	CarrierPackageType = api.CarrierPackageType
	CarrierOption      = api.CarrierOption
)

// ListCarriers returns the carrier accounts connected to the ShipEngine
// account.
func (c *Client) ListCarriers(ctx context.Context, opts ...Option) ([]Carrier, error) {
	s, _, err := c.settings(opts)
	if err != nil {
		return nil, err
	}
	resp, err := c.apiClient.ListCarriers(ctx, s)
	if err != nil {
		return nil, err
	}
	return resp.Carriers, nil
}
