package shipengine

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shipengine/shipengine-go/events"
)

func testAddress() Address {
	return Address{
		Name:          "Jane Doe",
		Street:        []string{"4 Jersey St", "Suite 200"},
		CityLocality:  "Boston",
		StateProvince: "MA",
		PostalCode:    "02215",
		CountryCode:   "US",
	}
}

func TestValidateAddress_LocalChecks(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(a *Address)
		wantCode ErrorCode
		wantMsg  string
	}{
		{
			name:     "no street",
			mutate:   func(a *Address) { a.Street = nil },
			wantCode: CodeFieldValueRequired,
			wantMsg:  "Invalid address. At least one address line is required.",
		},
		{
			name:     "blank street",
			mutate:   func(a *Address) { a.Street = []string{"  ", ""} },
			wantCode: CodeFieldValueRequired,
			wantMsg:  "Invalid address. At least one address line is required.",
		},
		{
			name:     "four street lines",
			mutate:   func(a *Address) { a.Street = []string{"a", "b", "c", "d"} },
			wantCode: CodeInvalidFieldValue,
			wantMsg:  "Invalid address. No more than 3 street lines are allowed.",
		},
		{
			name:     "missing country",
			mutate:   func(a *Address) { a.CountryCode = "" },
			wantCode: CodeFieldValueRequired,
			wantMsg:  "Invalid address. The country must be specified.",
		},
		{
			name:     "bad country",
			mutate:   func(a *Address) { a.CountryCode = "USA" },
			wantCode: CodeInvalidFieldValue,
			wantMsg:  "Invalid address. USA is not a valid country code.",
		},
		{
			name:     "lowercase country",
			mutate:   func(a *Address) { a.CountryCode = "us" },
			wantCode: CodeInvalidFieldValue,
			wantMsg:  "Invalid address. us is not a valid country code.",
		},
		{
			name: "no postal code or city and state",
			mutate: func(a *Address) {
				a.PostalCode = ""
				a.CityLocality = ""
				a.StateProvince = ""
			},
			wantCode: CodeFieldValueRequired,
			wantMsg:  "Invalid address. Either the postal code or the city/locality and state/province must be specified.",
		},
		{
			name: "city without state",
			mutate: func(a *Address) {
				a.PostalCode = ""
				a.StateProvince = ""
			},
			wantCode: CodeFieldValueRequired,
			wantMsg:  "Invalid address. Either the postal code or the city/locality and state/province must be specified.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAddress()
			tt.mutate(&a)

			err := validateAddress(a)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("error = %v, want ErrValidation", err)
			}
			var apiErr *Error
			errors.As(err, &apiErr)
			if apiErr.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", apiErr.Code, tt.wantCode)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestValidateAddress_LocalChecksPass(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Address)
	}{
		{"complete", func(a *Address) {}},
		{"postal code only", func(a *Address) { a.CityLocality, a.StateProvince = "", "" }},
		{"city and state only", func(a *Address) { a.PostalCode = "" }},
		{"three street lines", func(a *Address) { a.Street = []string{"a", "b", "c"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := testAddress()
			tt.mutate(&a)
			if err := validateAddress(a); err != nil {
				t.Errorf("validateAddress() error = %v", err)
			}
		})
	}
}

func TestClient_ValidateAddress_FailsBeforeRequest(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	rec := &events.Recorder{}
	client := newTestClient(t, server, WithEmitter(rec))

	_, err := client.ValidateAddress(context.Background(), Address{
		Street:      []string{"4 Jersey St"},
		CountryCode: "US",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
	var apiErr *Error
	errors.As(err, &apiErr)
	if apiErr.Code != CodeFieldValueRequired {
		t.Errorf("Code = %s, want FIELD_VALUE_REQUIRED", apiErr.Code)
	}
	if requests.Load() != 0 {
		t.Errorf("requests = %d, want 0", requests.Load())
	}
	if n := len(rec.Events()); n != 0 {
		t.Errorf("events = %d, want 0", n)
	}
}

func TestClient_ValidateAddress(t *testing.T) {
	var params map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var env struct {
			ID     string         `json:"id"`
			Method string         `json:"method"`
			Params map[string]any `json:"params"`
		}
		json.Unmarshal(body, &env)
		if env.Method != "address.validate.v1" {
			t.Errorf("method = %s, want address.validate.v1", env.Method)
		}
		params = env.Params
		w.Write([]byte(`{"jsonrpc":"2.0","id":"` + env.ID + `","result":{
			"isValid":true,
			"normalizedAddress":{"name":"JANE DOE","street":["4 JERSEY ST STE 200"],"cityLocality":"BOSTON","stateProvince":"MA","postalCode":"02215-4148","countryCode":"US","isResidential":false},
			"messages":[
				{"type":"info","code":"suite_normalized","message":"Suite was normalized."},
				{"type":"warning","code":"partial_match","message":"Partial match."}
			]}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	result, err := client.ValidateAddress(context.Background(), testAddress())
	if err != nil {
		t.Fatalf("ValidateAddress() error = %v", err)
	}

	sent := params["address"].(map[string]any)
	if sent["cityLocality"] != "Boston" || sent["countryCode"] != "US" {
		t.Errorf("address params = %v", sent)
	}

	if result.IsValid == nil || !*result.IsValid {
		t.Errorf("IsValid = %v, want true", result.IsValid)
	}
	norm := result.NormalizedAddress
	if norm == nil {
		t.Fatal("NormalizedAddress is nil")
	}
	if norm.PostalCode != "02215-4148" || len(norm.Street) != 1 {
		t.Errorf("NormalizedAddress = %+v", norm)
	}
	if norm.IsResidential == nil || *norm.IsResidential {
		t.Errorf("IsResidential = %v, want false", norm.IsResidential)
	}
	if len(result.Info) != 1 || len(result.Warnings) != 1 || len(result.Errors) != 0 {
		t.Errorf("messages = info %d, warnings %d, errors %d", len(result.Info), len(result.Warnings), len(result.Errors))
	}
	if result.RequestID == "" {
		t.Error("RequestID is empty")
	}
}

func TestClient_NormalizeAddress(t *testing.T) {
	tests := []struct {
		name    string
		result  string
		wantErr bool
		wantMsg string
	}{
		{
			name:   "valid",
			result: `{"isValid":true,"normalizedAddress":{"street":["4 JERSEY ST"],"cityLocality":"BOSTON","stateProvince":"MA","postalCode":"02215","countryCode":"US"},"messages":[]}`,
		},
		{
			name:    "invalid with errors",
			result:  `{"isValid":false,"normalizedAddress":null,"messages":[{"type":"error","code":"address_not_found","message":"Address not found."}]}`,
			wantErr: true,
			wantMsg: "Invalid address.\nAddress not found.",
		},
		{
			name:    "undetermined",
			result:  `{"isValid":null,"normalizedAddress":null,"messages":[]}`,
			wantErr: true,
			wantMsg: "Invalid address.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("x-shipengine-requestid", "srv-norm")
				w.Write([]byte(`{"jsonrpc":"2.0","id":"x","result":` + tt.result + `}`))
			}))
			defer server.Close()

			client := newTestClient(t, server)
			addr, err := client.NormalizeAddress(context.Background(), testAddress())
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("NormalizeAddress() error = %v", err)
				}
				if addr.CityLocality != "BOSTON" {
					t.Errorf("CityLocality = %s, want BOSTON", addr.CityLocality)
				}
				return
			}

			if !errors.Is(err, ErrBusinessRules) {
				t.Fatalf("error = %v, want ErrBusinessRules", err)
			}
			var apiErr *Error
			errors.As(err, &apiErr)
			if apiErr.Code != CodeInvalidAddress {
				t.Errorf("Code = %s, want invalid_address", apiErr.Code)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tt.wantMsg)
			}
			if apiErr.RequestID != "srv-norm" {
				t.Errorf("RequestID = %s, want srv-norm", apiErr.RequestID)
			}
		})
	}
}

func TestClient_ValidateAddresses(t *testing.T) {
	var sent []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/addresses/validate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &sent)
		w.Write([]byte(`[
			{"status":"verified","original_address":{"address_line1":"4 Jersey St","country_code":"US"},
			 "matched_address":{"address_line1":"4 JERSEY ST","address_line2":"STE 200","city_locality":"BOSTON","state_province":"MA","postal_code":"02215","country_code":"US","address_residential_indicator":"no"},
			 "messages":[]},
			{"status":"error","original_address":{"address_line1":"1 Nowhere","country_code":"US"},"matched_address":null,
			 "messages":[{"code":"a1000","message":"Invalid City, State, or Zip","type":"error"}]}
		]`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	results, err := client.ValidateAddresses(context.Background(), []Address{testAddress(), testAddress()})
	if err != nil {
		t.Fatalf("ValidateAddresses() error = %v", err)
	}

	if len(sent) != 2 || sent[0]["address_line1"] != "4 Jersey St" || sent[0]["address_line2"] != "Suite 200" {
		t.Errorf("request body = %v", sent)
	}
	if sent[0]["address_residential_indicator"] != "unknown" {
		t.Errorf("address_residential_indicator = %v, want unknown", sent[0]["address_residential_indicator"])
	}

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	first := results[0]
	if first.IsValid == nil || !*first.IsValid || first.Status != "verified" {
		t.Errorf("results[0] = %+v", first)
	}
	if first.NormalizedAddress == nil || len(first.NormalizedAddress.Street) != 2 {
		t.Errorf("NormalizedAddress = %+v", first.NormalizedAddress)
	}
	if r := first.NormalizedAddress.IsResidential; r == nil || *r {
		t.Errorf("IsResidential = %v, want false", r)
	}
	second := results[1]
	if second.IsValid == nil || *second.IsValid || second.NormalizedAddress != nil {
		t.Errorf("results[1] = %+v", second)
	}
	if len(second.Errors) != 1 || second.Errors[0].Code != "a1000" {
		t.Errorf("results[1].Errors = %+v", second.Errors)
	}
}

func TestAddress_RESTRoundTrip(t *testing.T) {
	residential := true
	a := testAddress()
	a.IsResidential = &residential

	wire := a.toREST()
	if wire.AddressLine1 != "4 Jersey St" || wire.AddressLine2 != "Suite 200" || wire.AddressLine3 != "" {
		t.Errorf("address lines = %q %q %q", wire.AddressLine1, wire.AddressLine2, wire.AddressLine3)
	}
	if wire.AddressResidentialIndicator != "yes" {
		t.Errorf("indicator = %s, want yes", wire.AddressResidentialIndicator)
	}

	back := addressFromREST(&wire)
	if len(back.Street) != 2 || back.Street[1] != "Suite 200" {
		t.Errorf("Street = %v", back.Street)
	}
	if back.IsResidential == nil || !*back.IsResidential {
		t.Errorf("IsResidential = %v, want true", back.IsResidential)
	}

	wire.AddressResidentialIndicator = "unknown"
	if addressFromREST(&wire).IsResidential != nil {
		t.Error("unknown indicator should map to nil")
	}
	if addressFromREST(nil) != nil {
		t.Error("nil address should map to nil")
	}
}
