package shipengine

import (
	"context"

	"github.com/shipengine/shipengine-go/internal/api"
	"github.com/shipengine/shipengine-go/internal/apierrors"
)

// Label types mirror the API's label shape.
type (
	Label           = api.Label
	LabelOptions    = api.LabelOptions
	LabelDownload   = api.LabelDownload
	Link            = api.Link
	PaginationLinks = api.PaginationLinks
	// LabelPage is one page of ListLabels results.
	LabelPage = api.ListLabelsResponse
	// VoidLabelResult reports whether a void request was approved.
	VoidLabelResult = api.VoidLabelResponse
)

// LabelRequest purchases a label from full shipment details.
type LabelRequest struct {
	Shipment      Shipment
	IsReturnLabel bool
	// TestLabel creates a label that is not billed and cannot be shipped.
	TestLabel bool
	LabelOptions
}

// ListLabelsParams selects a page of labels. A zero PageSize uses the
// configured page size.
type ListLabelsParams struct {
	Page     int
	PageSize int
}

// CreateLabelFromRate purchases a label for a rate returned by
// GetRatesWithShipmentDetails.
func (c *Client) CreateLabelFromRate(ctx context.Context, rateID string, labelOpts LabelOptions, opts ...Option) (*Label, error) {
	if rateID == "" {
		return nil, apierrors.NewFieldValueRequired("rate_id")
	}
	s, _, err := c.settings(opts)
	if err != nil {
		return nil, err
	}
	return c.apiClient.CreateLabelFromRate(ctx, s, rateID, labelOpts)
}

// CreateLabelFromShipmentDetails purchases a label for a shipment in a
// single request.
func (c *Client) CreateLabelFromShipmentDetails(ctx context.Context, req LabelRequest, opts ...Option) (*Label, error) {
	shipment, err := req.Shipment.toWire()
	if err != nil {
		return nil, err
	}
	s, _, err := c.settings(opts)
	if err != nil {
		return nil, err
	}
	return c.apiClient.CreateLabel(ctx, s, api.CreateLabelRequest{
		Shipment:      shipment,
		IsReturnLabel: req.IsReturnLabel,
		TestLabel:     req.TestLabel,
		LabelOptions:  req.LabelOptions,
	})
}

// ListLabels returns one page of the account's labels.
func (c *Client) ListLabels(ctx context.Context, params ListLabelsParams, opts ...Option) (*LabelPage, error) {
	if params.Page < 0 {
		return nil, apierrors.NewValidation("page", "Page must be zero or greater.")
	}
	if params.PageSize < 0 {
		return nil, apierrors.NewValidation("page_size", "Page size must be zero or greater.")
	}
	s, cfg, err := c.settings(opts)
	if err != nil {
		return nil, err
	}
	pageSize := params.PageSize
	if pageSize == 0 {
		pageSize = cfg.PageSize
	}
	return c.apiClient.ListLabels(ctx, s, params.Page, pageSize)
}

// VoidLabel voids an unused label.
func (c *Client) VoidLabel(ctx context.Context, labelID string, opts ...Option) (*VoidLabelResult, error) {
	if labelID == "" {
		return nil, apierrors.NewFieldValueRequired("label_id")
	}
	s, _, err := c.settings(opts)
	if err != nil {
		return nil, err
	}
	return c.apiClient.VoidLabel(ctx, s, labelID)
}
