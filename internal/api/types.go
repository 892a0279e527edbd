package api

import "time"

// RPCAddress is the address shape of the JSON-RPC endpoint.
type RPCAddress struct {
	Name          string   `json:"name,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	CompanyName   string   `json:"companyName,omitempty"`
	Street        []string `json:"street"`
	CityLocality  string   `json:"cityLocality,omitempty"`
	StateProvince string   `json:"stateProvince,omitempty"`
	PostalCode    string   `json:"postalCode,omitempty"`
	CountryCode   string   `json:"countryCode"`
	IsResidential *bool    `json:"isResidential,omitempty"`
}

// RPCMessage is an informational, warning or error message attached to an
// RPC address validation result.
type RPCMessage struct {
	Type       string `json:"type"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	DetailCode string `json:"detailCode,omitempty"`
}

// RPCValidateAddressParams is the params member of address.validate.v1.
type RPCValidateAddressParams struct {
	Address RPCAddress `json:"address"`
}

// RPCValidateAddressResult is the result member of address.validate.v1.
type RPCValidateAddressResult struct {
	IsValid           *bool        `json:"isValid"`
	NormalizedAddress *RPCAddress  `json:"normalizedAddress"`
	Messages          []RPCMessage `json:"messages"`

	// RequestID is filled from the response envelope, not the result.
	RequestID string `json:"-"`
}

// Address is the address shape of the REST endpoints.
type Address struct {
	Name                        string `json:"name,omitempty"`
	Phone                       string `json:"phone,omitempty"`
	CompanyName                 string `json:"company_name,omitempty"`
	AddressLine1                string `json:"address_line1"`
	AddressLine2                string `json:"address_line2,omitempty"`
	AddressLine3                string `json:"address_line3,omitempty"`
	CityLocality                string `json:"city_locality,omitempty"`
	StateProvince               string `json:"state_province,omitempty"`
	PostalCode                  string `json:"postal_code,omitempty"`
	CountryCode                 string `json:"country_code"`
	AddressResidentialIndicator string `json:"address_residential_indicator,omitempty"`
}

// ResponseMessage is a message attached to a REST validation result.
type ResponseMessage struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	DetailCode string `json:"detail_code,omitempty"`
}

// AddressValidationResult is one element of the POST /v1/addresses/validate response.
type AddressValidationResult struct {
	Status          string            `json:"status"`
	OriginalAddress Address           `json:"original_address"`
	MatchedAddress  *Address          `json:"matched_address"`
	Messages        []ResponseMessage `json:"messages"`
}

// MonetaryValue is an amount in a currency.
type MonetaryValue struct {
	Currency string  `json:"currency"`
	Amount   float64 `json:"amount"`
}

// Weight is a package weight.
type Weight struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Dimensions are package dimensions.
type Dimensions struct {
	Unit   string  `json:"unit"`
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Package is a single parcel of a shipment.
type Package struct {
	PackageCode       string         `json:"package_code,omitempty"`
	Weight            Weight         `json:"weight"`
	Dimensions        *Dimensions    `json:"dimensions,omitempty"`
	InsuredValue      *MonetaryValue `json:"insured_value,omitempty"`
	TrackingNumber    string         `json:"tracking_number,omitempty"`
	ExternalPackageID string         `json:"external_package_id,omitempty"`
}

// Shipment is the shipment payload of rate and label requests.
type Shipment struct {
	ShipmentID         string    `json:"shipment_id,omitempty"`
	CarrierID          string    `json:"carrier_id,omitempty"`
	ServiceCode        string    `json:"service_code,omitempty"`
	ShipDate           string    `json:"ship_date,omitempty"`
	ShipTo             Address   `json:"ship_to"`
	ShipFrom           Address   `json:"ship_from"`
	Confirmation       string    `json:"confirmation,omitempty"`
	Packages           []Package `json:"packages"`
	ExternalShipmentID string    `json:"external_shipment_id,omitempty"`
}

// CarrierService is a shipping service offered by a carrier.
type CarrierService struct {
	CarrierID               string `json:"carrier_id"`
	CarrierCode             string `json:"carrier_code"`
	ServiceCode             string `json:"service_code"`
	Name                    string `json:"name"`
	Domestic                bool   `json:"domestic"`
	International           bool   `json:"international"`
	IsMultiPackageSupported bool   `json:"is_multi_package_supported"`
}

// CarrierPackageType is a package type a carrier accepts.
type CarrierPackageType struct {
	PackageID   string `json:"package_id,omitempty"`
	PackageCode string `json:"package_code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CarrierOption is an advanced option a carrier supports.
type CarrierOption struct {
	Name         string `json:"name"`
	DefaultValue string `json:"default_value"`
	Description  string `json:"description"`
}

// Carrier is a carrier account connected to the ShipEngine account.
type Carrier struct {
	CarrierID                         string               `json:"carrier_id"`
	CarrierCode                       string               `json:"carrier_code"`
	AccountNumber                     string               `json:"account_number"`
	RequiresFundedAmount              bool                 `json:"requires_funded_amount"`
	Balance                           float64              `json:"balance"`
	Nickname                          string               `json:"nickname"`
	FriendlyName                      string               `json:"friendly_name"`
	Primary                           bool                 `json:"primary"`
	HasMultiPackageSupportingServices bool                 `json:"has_multi_package_supporting_services"`
	SupportsLabelMessages             bool                 `json:"supports_label_messages"`
	Services                          []CarrierService     `json:"services"`
	Packages                          []CarrierPackageType `json:"packages"`
	Options                           []CarrierOption      `json:"options"`
}

// ListCarriersResponse is the GET /v1/carriers response.
type ListCarriersResponse struct {
	Carriers  []Carrier `json:"carriers"`
	RequestID string    `json:"request_id"`
}

// RateOptions narrows a rate request.
type RateOptions struct {
	CarrierIDs   []string `json:"carrier_ids"`
	ServiceCodes []string `json:"service_codes,omitempty"`
	PackageTypes []string `json:"package_types,omitempty"`
}

// RatesRequest is the POST /v1/rates request.
type RatesRequest struct {
	ShipmentID  string      `json:"shipment_id,omitempty"`
	Shipment    *Shipment   `json:"shipment,omitempty"`
	RateOptions RateOptions `json:"rate_options"`
}

// Rate is a single shipping rate quote.
type Rate struct {
	RateID                string        `json:"rate_id"`
	RateType              string        `json:"rate_type"`
	CarrierID             string        `json:"carrier_id"`
	ShippingAmount        MonetaryValue `json:"shipping_amount"`
	InsuranceAmount       MonetaryValue `json:"insurance_amount"`
	ConfirmationAmount    MonetaryValue `json:"confirmation_amount"`
	OtherAmount           MonetaryValue `json:"other_amount"`
	DeliveryDays          *int          `json:"delivery_days"`
	GuaranteedService     bool          `json:"guaranteed_service"`
	EstimatedDeliveryDate *time.Time    `json:"estimated_delivery_date"`
	CarrierDeliveryDays   string        `json:"carrier_delivery_days"`
	ShipDate              *time.Time    `json:"ship_date"`
	NegotiatedRate        bool          `json:"negotiated_rate"`
	ServiceType           string        `json:"service_type"`
	ServiceCode           string        `json:"service_code"`
	Trackable             bool          `json:"trackable"`
	CarrierCode           string        `json:"carrier_code"`
	CarrierNickname       string        `json:"carrier_nickname"`
	CarrierFriendlyName   string        `json:"carrier_friendly_name"`
	ValidationStatus      string        `json:"validation_status"`
	WarningMessages       []string      `json:"warning_messages"`
	ErrorMessages         []string      `json:"error_messages"`
}

// RateResponse is the rate_response member of a rates response.
type RateResponse struct {
	RateRequestID string     `json:"rate_request_id"`
	ShipmentID    string     `json:"shipment_id"`
	Status        string     `json:"status"`
	CreatedAt     *time.Time `json:"created_at"`
	Rates         []Rate     `json:"rates"`
	InvalidRates  []Rate     `json:"invalid_rates"`
}

// RatesResponse is the POST /v1/rates response.
type RatesResponse struct {
	ShipmentID   string       `json:"shipment_id"`
	CarrierID    string       `json:"carrier_id"`
	ServiceCode  string       `json:"service_code"`
	ShipDate     *time.Time   `json:"ship_date"`
	RateResponse RateResponse `json:"rate_response"`
}

// LabelOptions are the shared options of label creation requests.
type LabelOptions struct {
	ValidateAddress   string `json:"validate_address,omitempty"`
	LabelLayout       string `json:"label_layout,omitempty"`
	LabelFormat       string `json:"label_format,omitempty"`
	LabelDownloadType string `json:"label_download_type,omitempty"`
	DisplayScheme     string `json:"display_scheme,omitempty"`
}

// CreateLabelRequest is the POST /v1/labels request.
type CreateLabelRequest struct {
	Shipment      Shipment `json:"shipment"`
	IsReturnLabel bool     `json:"is_return_label,omitempty"`
	TestLabel     bool     `json:"test_label,omitempty"`
	LabelOptions
}

// Link is a downloadable resource.
type Link struct {
	Href string `json:"href"`
	Type string `json:"type,omitempty"`
}

// LabelDownload holds the download links of a label.
type LabelDownload struct {
	Href string `json:"href"`
	PDF  string `json:"pdf,omitempty"`
	PNG  string `json:"png,omitempty"`
	ZPL  string `json:"zpl,omitempty"`
}

// Label is a purchased shipping label.
type Label struct {
	LabelID         string        `json:"label_id"`
	Status          string        `json:"status"`
	ShipmentID      string        `json:"shipment_id"`
	ShipDate        *time.Time    `json:"ship_date"`
	CreatedAt       *time.Time    `json:"created_at"`
	ShipmentCost    MonetaryValue `json:"shipment_cost"`
	InsuranceCost   MonetaryValue `json:"insurance_cost"`
	TrackingNumber  string        `json:"tracking_number"`
	IsReturnLabel   bool          `json:"is_return_label"`
	IsInternational bool          `json:"is_international"`
	BatchID         string        `json:"batch_id"`
	CarrierID       string        `json:"carrier_id"`
	CarrierCode     string        `json:"carrier_code"`
	ServiceCode     string        `json:"service_code"`
	PackageCode     string        `json:"package_code"`
	Voided          bool          `json:"voided"`
	VoidedAt        *time.Time    `json:"voided_at"`
	LabelFormat     string        `json:"label_format"`
	LabelLayout     string        `json:"label_layout"`
	Trackable       bool          `json:"trackable"`
	TrackingStatus  string        `json:"tracking_status"`
	LabelDownload   LabelDownload `json:"label_download"`
	FormDownload    *Link         `json:"form_download"`
	InsuranceClaim  *Link         `json:"insurance_claim"`
	Packages        []Package     `json:"packages"`
}

// PaginationLinks are the navigation links of a paged response.
type PaginationLinks struct {
	First *Link `json:"first"`
	Last  *Link `json:"last"`
	Prev  *Link `json:"prev"`
	Next  *Link `json:"next"`
}

// ListLabelsResponse is the GET /v1/labels response.
type ListLabelsResponse struct {
	Labels []Label         `json:"labels"`
	Total  int             `json:"total"`
	Page   int             `json:"page"`
	Pages  int             `json:"pages"`
	Links  PaginationLinks `json:"links"`
}

// VoidLabelResponse is the PUT /v1/labels/{label_id}/void response.
type VoidLabelResponse struct {
	Approved bool   `json:"approved"`
	Message  string `json:"message"`
}

// TrackEvent is one scan event of a tracked package.
type TrackEvent struct {
	OccurredAt        *time.Time `json:"occurred_at"`
	CarrierOccurredAt string     `json:"carrier_occurred_at"`
	Description       string     `json:"description"`
	CityLocality      string     `json:"city_locality"`
	StateProvince     string     `json:"state_province"`
	PostalCode        string     `json:"postal_code"`
	CountryCode       string     `json:"country_code"`
	CompanyName       string     `json:"company_name"`
	Signer            string     `json:"signer"`
	EventCode         string     `json:"event_code"`
	Latitude          *float64   `json:"latitude"`
	Longitude         *float64   `json:"longitude"`
}

// TrackingInfo is the tracking response of both tracking endpoints.
type TrackingInfo struct {
	TrackingNumber           string       `json:"tracking_number"`
	StatusCode               string       `json:"status_code"`
	StatusDescription        string       `json:"status_description"`
	CarrierStatusCode        string       `json:"carrier_status_code"`
	CarrierStatusDescription string       `json:"carrier_status_description"`
	ShipDate                 *time.Time   `json:"ship_date"`
	EstimatedDeliveryDate    *time.Time   `json:"estimated_delivery_date"`
	ActualDeliveryDate       *time.Time   `json:"actual_delivery_date"`
	ExceptionDescription     string       `json:"exception_description"`
	Events                   []TrackEvent `json:"events"`
}
