package shipengine

import (
	"context"
	"time"

	"github.com/shipengine/shipengine-go/internal/api"
	"github.com/shipengine/shipengine-go/internal/apierrors"
)

// Shared shipment value types.
type (
	MonetaryValue = api.MonetaryValue
	Weight        = api.Weight
	Dimensions    = api.Dimensions
	Package       = api.Package
	RateOptions   = api.RateOptions
	Rate          = api.Rate
)

// Shipment describes what is shipped, from where and to where.
type Shipment struct {
	CarrierID   string
	ServiceCode string
	// ShipDate is sent as a date; the time of day is ignored.
	ShipDate           time.Time
	ShipTo             Address
	ShipFrom           Address
	Confirmation       string
	Packages           []Package
	ExternalShipmentID string
}

// RatesRequest asks for rate quotes. Exactly one of ShipmentID and
// Shipment must be set.
type RatesRequest struct {
	ShipmentID  string
	Shipment    *Shipment
	RateOptions RateOptions
}

// RatesResult holds the quotes returned for a shipment.
type RatesResult struct {
	ShipmentID    string     `json:"shipment_id"`
	RateRequestID string     `json:"rate_request_id"`
	Status        string     `json:"status"`
	CreatedAt     *time.Time `json:"created_at"`
	Rates         []Rate     `json:"rates"`
	InvalidRates  []Rate     `json:"invalid_rates"`
}

// GetRatesWithShipmentDetails quotes rates for a shipment across the
// carriers named in req.RateOptions.
func (c *Client) GetRatesWithShipmentDetails(ctx context.Context, req RatesRequest, opts ...Option) (*RatesResult, error) {
	wire, err := req.toWire()
	if err != nil {
		return nil, err
	}
	s, _, err := c.settings(opts)
	if err != nil {
		return nil, err
	}

	resp, err := c.apiClient.GetRates(ctx, s, wire)
	if err != nil {
		return nil, err
	}
	rr := resp.RateResponse
	shipmentID := rr.ShipmentID
	if shipmentID == "" {
		shipmentID = resp.ShipmentID
	}
	return &RatesResult{
		ShipmentID:    shipmentID,
		RateRequestID: rr.RateRequestID,
		Status:        rr.Status,
		CreatedAt:     rr.CreatedAt,
		Rates:         rr.Rates,
		InvalidRates:  rr.InvalidRates,
	}, nil
}

func (r RatesRequest) toWire() (api.RatesRequest, error) {
	if len(r.RateOptions.CarrierIDs) == 0 {
		return api.RatesRequest{}, apierrors.NewFieldValueRequired("carrier_ids")
	}
	out := api.RatesRequest{RateOptions: r.RateOptions}
	switch {
	case r.Shipment != nil:
		shipment, err := r.Shipment.toWire()
		if err != nil {
			return api.RatesRequest{}, err
		}
		out.Shipment = &shipment
	case r.ShipmentID != "":
		out.ShipmentID = r.ShipmentID
	default:
		return api.RatesRequest{}, apierrors.NewFieldValueRequired("shipment")
	}
	return out, nil
}

func (s Shipment) toWire() (api.Shipment, error) {
	if err := validateAddress(s.ShipTo); err != nil {
		return api.Shipment{}, err
	}
	if err := validateAddress(s.ShipFrom); err != nil {
		return api.Shipment{}, err
	}
	if len(s.Packages) == 0 {
		return api.Shipment{}, apierrors.NewFieldValueRequired("packages")
	}
	out := api.Shipment{
		CarrierID:          s.CarrierID,
		ServiceCode:        s.ServiceCode,
		ShipTo:             s.ShipTo.toREST(),
		ShipFrom:           s.ShipFrom.toREST(),
		Confirmation:       s.Confirmation,
		Packages:           s.Packages,
		ExternalShipmentID: s.ExternalShipmentID,
	}
	if !s.ShipDate.IsZero() {
		out.ShipDate = s.ShipDate.Format(time.DateOnly)
	}
	return out, nil
}
