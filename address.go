package shipengine

import (
	"context"
	"fmt"
	"strings"

	"github.com/shipengine/shipengine-go/internal/api"
	"github.com/shipengine/shipengine-go/internal/apierrors"
)

const maxStreetLines = 3

// Address is a postal address.
type Address struct {
	Name          string   `json:"name,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	CompanyName   string   `json:"company_name,omitempty"`
	Street        []string `json:"street"`
	CityLocality  string   `json:"city_locality,omitempty"`
	StateProvince string   `json:"state_province,omitempty"`
	PostalCode    string   `json:"postal_code,omitempty"`
	// CountryCode is the ISO 3166-1 alpha-2 country code.
	CountryCode string `json:"country_code"`
	// IsResidential is nil when unknown.
	IsResidential *bool `json:"is_residential"`
}

// MessageType is the severity of an AddressMessage.
type MessageType string

// Address message severities.
const (
	MessageInfo    MessageType = "info"
	MessageWarning MessageType = "warning"
	MessageError   MessageType = "error"
)

// AddressMessage is a note attached to an address validation result.
type AddressMessage struct {
	Type       MessageType `json:"type"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	DetailCode string      `json:"detail_code,omitempty"`
}

// AddressValidationResult is the outcome of validating one address.
type AddressValidationResult struct {
	// IsValid is nil when the API could not decide.
	IsValid *bool `json:"is_valid"`
	// NormalizedAddress is the matched address, if any.
	NormalizedAddress *Address         `json:"normalized_address"`
	Info              []AddressMessage `json:"info,omitempty"`
	Warnings          []AddressMessage `json:"warnings,omitempty"`
	Errors            []AddressMessage `json:"errors,omitempty"`

	// Status and OriginalAddress are only set by ValidateAddresses.
	Status          string   `json:"status,omitempty"`
	OriginalAddress *Address `json:"original_address,omitempty"`

	RequestID string `json:"request_id,omitempty"`
}

// ValidateAddress checks a single address against the carrier address
// databases and returns its normalized form.
//
// The address is checked locally first. An address that fails the local
// checks is rejected with a validation error and no request is sent.
func (c *Client) ValidateAddress(ctx context.Context, addr Address, opts ...Option) (*AddressValidationResult, error) {
	if err := validateAddress(addr); err != nil {
		return nil, err
	}
	s, _, err := c.settings(opts)
	if err != nil {
		return nil, err
	}

	result, err := c.apiClient.ValidateAddress(ctx, s, addr.toRPC())
	if err != nil {
		return nil, err
	}
	return fromRPCValidation(result), nil
}

// NormalizeAddress validates addr and returns its normalized form. An
// address the API cannot resolve fails with a business rules error coded
// invalid_address.
func (c *Client) NormalizeAddress(ctx context.Context, addr Address, opts ...Option) (*Address, error) {
	result, err := c.ValidateAddress(ctx, addr, opts...)
	if err != nil {
		return nil, err
	}
	if result.IsValid == nil || !*result.IsValid || result.NormalizedAddress == nil {
		return nil, apierrors.NewBusinessRules(apierrors.CodeInvalidAddress, invalidAddressMessage(result.Errors), result.RequestID)
	}
	return result.NormalizedAddress, nil
}

func invalidAddressMessage(msgs []AddressMessage) string {
	if len(msgs) == 0 {
		return "Invalid address."
	}
	parts := make([]string, len(msgs))
	for i, m := range msgs {
		parts[i] = m.Message
	}
	return "Invalid address.\n" + strings.Join(parts, "\n")
}

// ValidateAddresses validates a batch of addresses in one request. Results
// are returned in input order.
func (c *Client) ValidateAddresses(ctx context.Context, addrs []Address, opts ...Option) ([]AddressValidationResult, error) {
	if len(addrs) == 0 {
		return nil, apierrors.NewFieldValueRequired("addresses")
	}
	wire := make([]api.Address, len(addrs))
	for i, a := range addrs {
		if err := validateAddress(a); err != nil {
			return nil, err
		}
		wire[i] = a.toREST()
	}
	s, _, err := c.settings(opts)
	if err != nil {
		return nil, err
	}

	results, err := c.apiClient.ValidateAddresses(ctx, s, wire)
	if err != nil {
		return nil, err
	}
	out := make([]AddressValidationResult, len(results))
	for i, r := range results {
		out[i] = fromRESTValidation(r)
	}
	return out, nil
}

// validateAddress applies the local address checks.
func validateAddress(a Address) error {
	var lines int
	for _, line := range a.Street {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	if lines == 0 {
		return requiredField("street", "Invalid address. At least one address line is required.")
	}
	if len(a.Street) > maxStreetLines {
		return apierrors.NewValidation("street", "Invalid address. No more than 3 street lines are allowed.")
	}

	country := strings.TrimSpace(a.CountryCode)
	if country == "" {
		return requiredField("country_code", "Invalid address. The country must be specified.")
	}
	if !isCountryCode(country) {
		return apierrors.NewValidation("country_code", fmt.Sprintf("Invalid address. %s is not a valid country code.", country))
	}

	hasPostal := strings.TrimSpace(a.PostalCode) != ""
	hasCityState := strings.TrimSpace(a.CityLocality) != "" && strings.TrimSpace(a.StateProvince) != ""
	if !hasPostal && !hasCityState {
		return requiredField("postal_code", "Invalid address. Either the postal code or the city/locality and state/province must be specified.")
	}
	return nil
}

func isCountryCode(s string) bool {
	if len(s) != 2 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func requiredField(field, message string) *Error {
	err := apierrors.NewFieldValueRequired(field)
	err.Message = message
	return err
}

func (a Address) toRPC() api.RPCAddress {
	return api.RPCAddress{
		Name:          a.Name,
		Phone:         a.Phone,
		CompanyName:   a.CompanyName,
		Street:        a.Street,
		CityLocality:  a.CityLocality,
		StateProvince: a.StateProvince,
		PostalCode:    a.PostalCode,
		CountryCode:   a.CountryCode,
		IsResidential: a.IsResidential,
	}
}

func addressFromRPC(a *api.RPCAddress) *Address {
	if a == nil {
		return nil
	}
	return &Address{
		Name:          a.Name,
		Phone:         a.Phone,
		CompanyName:   a.CompanyName,
		Street:        a.Street,
		CityLocality:  a.CityLocality,
		StateProvince: a.StateProvince,
		PostalCode:    a.PostalCode,
		CountryCode:   a.CountryCode,
		IsResidential: a.IsResidential,
	}
}

func (a Address) toREST() api.Address {
	out := api.Address{
		Name:          a.Name,
		Phone:         a.Phone,
		CompanyName:   a.CompanyName,
		CityLocality:  a.CityLocality,
		StateProvince: a.StateProvince,
		PostalCode:    a.PostalCode,
		CountryCode:   a.CountryCode,
	}
	lines := [3]*string{&out.AddressLine1, &out.AddressLine2, &out.AddressLine3}
	for i, line := range a.Street {
		if i >= len(lines) {
			break
		}
		*lines[i] = line
	}
	switch {
	case a.IsResidential == nil:
		out.AddressResidentialIndicator = "unknown"
	case *a.IsResidential:
		out.AddressResidentialIndicator = "yes"
	default:
		out.AddressResidentialIndicator = "no"
	}
	return out
}

func addressFromREST(a *api.Address) *Address {
	if a == nil {
		return nil
	}
	out := &Address{
		Name:          a.Name,
		Phone:         a.Phone,
		CompanyName:   a.CompanyName,
		CityLocality:  a.CityLocality,
		StateProvince: a.StateProvince,
		PostalCode:    a.PostalCode,
		CountryCode:   a.CountryCode,
	}
	for _, line := range []string{a.AddressLine1, a.AddressLine2, a.AddressLine3} {
		if line != "" {
			out.Street = append(out.Street, line)
		}
	}
	switch a.AddressResidentialIndicator {
	case "yes":
		out.IsResidential = boolPtr(true)
	case "no":
		out.IsResidential = boolPtr(false)
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

func fromRPCValidation(r *api.RPCValidateAddressResult) *AddressValidationResult {
	out := &AddressValidationResult{
		IsValid:           r.IsValid,
		NormalizedAddress: addressFromRPC(r.NormalizedAddress),
		RequestID:         r.RequestID,
	}
	for _, m := range r.Messages {
		out.addMessage(AddressMessage{
			Type:       MessageType(m.Type),
			Code:       m.Code,
			Message:    m.Message,
			DetailCode: m.DetailCode,
		})
	}
	return out
}

func fromRESTValidation(r api.AddressValidationResult) AddressValidationResult {
	out := AddressValidationResult{
		NormalizedAddress: addressFromREST(r.MatchedAddress),
		Status:            r.Status,
		OriginalAddress:   addressFromREST(&r.OriginalAddress),
	}
	switch r.Status {
	case "verified":
		out.IsValid = boolPtr(true)
	case "unverified", "error":
		out.IsValid = boolPtr(false)
	}
	for _, m := range r.Messages {
		out.addMessage(AddressMessage{
			Type:       MessageType(m.Type),
			Code:       m.Code,
			Message:    m.Message,
			DetailCode: m.DetailCode,
		})
	}
	return out
}

func (r *AddressValidationResult) addMessage(m AddressMessage) {
	switch m.Type {
	case MessageError:
		r.Errors = append(r.Errors, m)
	case MessageWarning:
		r.Warnings = append(r.Warnings, m)
	default:
		r.Info = append(r.Info, m)
	}
}
