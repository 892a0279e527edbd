package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// RPC method names.
const (
	MethodValidateAddress = "address.validate.v1"
)

// ValidateAddress validates a single address through the JSON-RPC endpoint.
func (c *Client) ValidateAddress(ctx context.Context, s Settings, addr RPCAddress) (*RPCValidateAddressResult, error) {
	var result RPCValidateAddressResult
	requestID, err := c.Call(ctx, s, MethodValidateAddress, RPCValidateAddressParams{Address: addr}, &result)
	if err != nil {
		return nil, err
	}
	result.RequestID = requestID
	return &result, nil
}

// ValidateAddresses validates a batch of addresses.
func (c *Client) ValidateAddresses(ctx context.Context, s Settings, addrs []Address) ([]AddressValidationResult, error) {
	var result []AddressValidationResult
	if err := c.rest(ctx, s, Request{Method: http.MethodPost, Path: "/v1/addresses/validate", Body: addrs}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListCarriers lists the carrier accounts connected to the account.
func (c *Client) ListCarriers(ctx context.Context, s Settings) (*ListCarriersResponse, error) {
	var result ListCarriersResponse
	if err := c.rest(ctx, s, Request{Method: http.MethodGet, Path: "/v1/carriers"}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetRates quotes rates for a shipment.
func (c *Client) GetRates(ctx context.Context, s Settings, req RatesRequest) (*RatesResponse, error) {
	var result RatesResponse
	if err := c.rest(ctx, s, Request{Method: http.MethodPost, Path: "/v1/rates", Body: req}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateLabelFromRate purchases a label for a previously quoted rate.
func (c *Client) CreateLabelFromRate(ctx context.Context, s Settings, rateID string, opts LabelOptions) (*Label, error) {
	var result Label
	path := "/v1/labels/rates/" + url.PathEscape(rateID)
	if err := c.rest(ctx, s, Request{Method: http.MethodPost, Path: path, Body: opts}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateLabel purchases a label from full shipment details.
func (c *Client) CreateLabel(ctx context.Context, s Settings, req CreateLabelRequest) (*Label, error) {
	var result Label
	if err := c.rest(ctx, s, Request{Method: http.MethodPost, Path: "/v1/labels", Body: req}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListLabels returns one page of labels.
func (c *Client) ListLabels(ctx context.Context, s Settings, page, pageSize int) (*ListLabelsResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if pageSize > 0 {
		q.Set("page_size", strconv.Itoa(pageSize))
	}
	var result ListLabelsResponse
	if err := c.rest(ctx, s, Request{Method: http.MethodGet, Path: "/v1/labels", Query: q}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// VoidLabel voids a label.
func (c *Client) VoidLabel(ctx context.Context, s Settings, labelID string) (*VoidLabelResponse, error) {
	var result VoidLabelResponse
	path := "/v1/labels/" + url.PathEscape(labelID) + "/void"
	if err := c.rest(ctx, s, Request{Method: http.MethodPut, Path: path}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TrackByLabelID returns tracking information for a label.
func (c *Client) TrackByLabelID(ctx context.Context, s Settings, labelID string) (*TrackingInfo, error) {
	var result TrackingInfo
	path := "/v1/labels/" + url.PathEscape(labelID) + "/track"
	if err := c.rest(ctx, s, Request{Method: http.MethodGet, Path: path}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TrackByCarrier returns tracking information for a carrier tracking number.
func (c *Client) TrackByCarrier(ctx context.Context, s Settings, carrierCode, trackingNumber string) (*TrackingInfo, error) {
	q := url.Values{}
	q.Set("carrier_code", carrierCode)
	q.Set("tracking_number", trackingNumber)
	var result TrackingInfo
	if err := c.rest(ctx, s, Request{Method: http.MethodGet, Path: "/v1/tracking", Query: q}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) rest(ctx context.Context, s Settings, req Request, result any) error {
	resp, err := c.Do(ctx, s, req)
	if err != nil {
		return err
	}
	return resp.Decode(result)
}
