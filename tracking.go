package shipengine

import (
	"context"

	"github.com/shipengine/shipengine-go/internal/api"
	"github.com/shipengine/shipengine-go/internal/apierrors"
)

// Tracking types mirror the API's tracking shape.
type (
	TrackingInfo = api.TrackingInfo
	TrackEvent   = api.TrackEvent
)

// TrackUsingLabelID returns tracking information for a label created
// through ShipEngine.
func (c *Client) TrackUsingLabelID(ctx context.Context, labelID string, opts ...Option) (*TrackingInfo, error) {
	if labelID == "" {
		return nil, apierrors.NewFieldValueRequired("label_id")
	}
	s, _, err := c.settings(opts)
	if err != nil {
		return nil, err
	}
	return c.apiClient.TrackByLabelID(ctx, s, labelID)
}

// TrackUsingCarrierCode returns tracking information for any tracking
// number of a supported carrier.
func (c *Client) TrackUsingCarrierCode(ctx context.Context, carrierCode, trackingNumber string, opts ...Option) (*TrackingInfo, error) {
	if carrierCode == "" {
		return nil, apierrors.NewFieldValueRequired("carrier_code")
	}
	if trackingNumber == "" {
		return nil, apierrors.NewFieldValueRequired("tracking_number")
	}
	s, _, err := c.settings(opts)
	if err != nil {
		return nil, err
	}
	return c.apiClient.TrackByCarrier(ctx, s, carrierCode, trackingNumber)
}
