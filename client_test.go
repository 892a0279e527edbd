package shipengine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shipengine/shipengine-go/events"
)

// newTestClient creates a client pointed at server with the given options.
func newTestClient(t *testing.T, server *httptest.Server, opts ...Option) *Client {
	t.Helper()
	cfg, err := NewConfig("abc123", append([]Option{WithBaseURL(server.URL)}, opts...)...)
	if err != nil {
		t.Fatalf("NewConfig() error = %v", err)
	}
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, ErrFieldValueRequired) {
		t.Errorf("New(Config{}) error = %v, want ErrFieldValueRequired", err)
	}
}

func TestNew_FillsNilEmitter(t *testing.T) {
	client, err := New(Config{
		APIKey:   "abc123",
		BaseURL:  DefaultBaseURL,
		Timeout:  time.Second,
		PageSize: 10,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.Config().Emitter == nil {
		t.Error("Emitter is nil")
	}
}

func TestClient_WithUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"carriers":[]}`))
	}))
	defer server.Close()

	cfg, _ := NewConfig("abc123", WithBaseURL(server.URL))
	client, err := New(cfg, WithUserAgent("my-app/2.0"), WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := client.ListCarriers(context.Background()); err != nil {
		t.Fatalf("ListCarriers() error = %v", err)
	}
	if gotUA != "my-app/2.0" {
		t.Errorf("User-Agent = %q, want my-app/2.0", gotUA)
	}
}

func TestClient_DefaultUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`{"carriers":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if _, err := client.ListCarriers(context.Background()); err != nil {
		t.Fatalf("ListCarriers() error = %v", err)
	}
	if !strings.HasPrefix(gotUA, "shipengine-go/"+Version+" (") {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestClient_RetriesThenSucceeds(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("API-Key") != "abc123" {
			t.Errorf("API-Key = %q, want abc123", r.Header.Get("API-Key"))
		}
		if attempts.Add(1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"carriers":[{"carrier_id":"se-123","carrier_code":"ups","friendly_name":"UPS"}]}`))
	}))
	defer server.Close()

	rec := &events.Recorder{}
	client := newTestClient(t, server, WithRetries(2), WithEmitter(rec))

	carriers, err := client.ListCarriers(context.Background())
	if err != nil {
		t.Fatalf("ListCarriers() error = %v", err)
	}
	if len(carriers) != 1 || carriers[0].CarrierID != "se-123" {
		t.Errorf("carriers = %+v", carriers)
	}

	sent := rec.RequestsSent()
	if len(sent) != 3 {
		t.Fatalf("RequestSent events = %d, want 3", len(sent))
	}
	for i, e := range sent {
		if e.RetryAttempt != i {
			t.Errorf("RequestSent[%d].RetryAttempt = %d, want %d", i, e.RetryAttempt, i)
		}
	}
}

func TestClient_RateLimitExhausted(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	rec := &events.Recorder{}
	client := newTestClient(t, server, WithRetries(0), WithEmitter(rec))

	_, err := client.ListCarriers(context.Background())
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("error = %v, want ErrRateLimited", err)
	}
	var apiErr *Error
	errors.As(err, &apiErr)
	if apiErr.RetryAttempt != 0 {
		t.Errorf("RetryAttempt = %d, want 0", apiErr.RetryAttempt)
	}
	if attempts.Load() != 1 {
		t.Errorf("attempts = %d, want 1", attempts.Load())
	}
	if n := len(rec.Errors()); n != 1 {
		t.Errorf("Error events = %d, want 1", n)
	}
}

func TestClient_HonorsRetryAfter(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a one second Retry-After")
	}

	var mu sync.Mutex
	var times []time.Time
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		times = append(times, time.Now())
		n := len(times)
		mu.Unlock()
		if n == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"carriers":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, WithRetries(1))
	if _, err := client.ListCarriers(context.Background()); err != nil {
		t.Fatalf("ListCarriers() error = %v", err)
	}

	if len(times) != 2 {
		t.Fatalf("attempts = %d, want 2", len(times))
	}
	if gap := times[1].Sub(times[0]); gap < time.Second {
		t.Errorf("gap between attempts = %v, want >= 1s", gap)
	}
}

func TestClient_RetryWithoutRetryAfterIsImmediate(t *testing.T) {
	var mu sync.Mutex
	var times []time.Time
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		times = append(times, time.Now())
		n := len(times)
		mu.Unlock()
		if n == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"carriers":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, WithRetries(1))
	if _, err := client.ListCarriers(context.Background()); err != nil {
		t.Fatalf("ListCarriers() error = %v", err)
	}

	if gap := times[1].Sub(times[0]); gap >= 100*time.Millisecond {
		t.Errorf("gap between attempts = %v, want < 100ms", gap)
	}
}

func TestClient_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"request_id":"7b80d4a4","errors":[{"error_source":"shipengine","error_type":"security","error_code":"unauthorized","message":"The API key is invalid. Please see https://www.shipengine.com/docs/auth"}]}`))
	}))
	defer server.Close()

	rec := &events.Recorder{}
	client := newTestClient(t, server, WithEmitter(rec))
	_, err := client.ListCarriers(context.Background())
	if !errors.Is(err, ErrSecurity) {
		t.Fatalf("error = %v, want ErrSecurity", err)
	}

	var apiErr *Error
	errors.As(err, &apiErr)
	if apiErr.Source != SourceShipEngine {
		t.Errorf("Source = %s, want shipengine", apiErr.Source)
	}
	if apiErr.Type != TypeSecurity {
		t.Errorf("Type = %s, want security", apiErr.Type)
	}
	if apiErr.Code != CodeUnauthorized {
		t.Errorf("Code = %s, want unauthorized", apiErr.Code)
	}
	if apiErr.Message != "The API key is invalid. Please see https://www.shipengine.com/docs/auth" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.RequestID != "7b80d4a4" {
		t.Errorf("RequestID = %s, want 7b80d4a4", apiErr.RequestID)
	}

	errs := rec.Errors()
	if len(errs) != 1 {
		t.Fatalf("Error events = %d, want 1", len(errs))
	}
	if errs[0].Code != "unauthorized" || errs[0].Source != "shipengine" || errs[0].Type != "security" {
		t.Errorf("Error event = %+v", errs[0])
	}
}

func TestClient_PerCallOverridesDoNotLeak(t *testing.T) {
	var mu sync.Mutex
	var keys []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get("API-Key"))
		mu.Unlock()
		w.Write([]byte(`{"carriers":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	before := client.Config()

	if _, err := client.ListCarriers(context.Background(), WithAPIKey("override"), WithTimeout(time.Second)); err != nil {
		t.Fatalf("ListCarriers() error = %v", err)
	}
	if _, err := client.ListCarriers(context.Background()); err != nil {
		t.Fatalf("ListCarriers() error = %v", err)
	}

	if keys[0] != "override" || keys[1] != "abc123" {
		t.Errorf("API keys sent = %v, want [override abc123]", keys)
	}
	if client.Config() != before {
		t.Errorf("Config changed: %+v, want %+v", client.Config(), before)
	}
}

func TestClient_InvalidPerCallOverride(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.ListCarriers(context.Background(), WithRetries(-1))
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
	if requests.Load() != 0 {
		t.Errorf("requests = %d, want 0", requests.Load())
	}
}

func TestClient_ConcurrentCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"tracking_number": r.Header.Get("API-Key"),
			"status_code":     "IT",
		})
	}))
	defer server.Close()

	rec := &events.Recorder{}
	client := newTestClient(t, server, WithEmitter(rec))

	const calls = 25
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < calls; i++ {
		key := fmt.Sprintf("key-%d", i)
		g.Go(func() error {
			info, err := client.TrackUsingLabelID(ctx, "se-1", WithAPIKey(key))
			if err != nil {
				return err
			}
			if info.TrackingNumber != key {
				return fmt.Errorf("call with %s saw %s", key, info.TrackingNumber)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}

	if n := len(rec.RequestsSent()); n != calls {
		t.Errorf("RequestSent events = %d, want %d", n, calls)
	}
	ids := make(map[string]struct{})
	for _, e := range rec.RequestsSent() {
		ids[e.RequestID] = struct{}{}
	}
	if len(ids) != calls {
		t.Errorf("distinct request ids = %d, want %d", len(ids), calls)
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"carriers":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListCarriers(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Errorf("error is %T, want *Error", err)
	}
}

func TestClient_RatesAndLabels(t *testing.T) {
	var rateBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/rates":
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &rateBody)
			w.Write([]byte(`{"shipment_id":"se-ship","rate_response":{"rate_request_id":"se-rr","shipment_id":"se-ship","status":"completed","rates":[{"rate_id":"se-rate","carrier_id":"se-123","service_code":"ups_ground","shipping_amount":{"currency":"usd","amount":9.5}}]}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/v1/labels/rates/se-rate":
			w.Write([]byte(`{"label_id":"se-label","status":"completed","tracking_number":"1Z999","label_download":{"href":"https://example.com/label.pdf"}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/v1/labels":
			w.Write([]byte(`{"label_id":"se-label-2","status":"completed"}`))
		case r.Method == http.MethodPut && r.URL.Path == "/v1/labels/se-label/void":
			w.Write([]byte(`{"approved":true,"message":"Request for refund submitted."}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	ctx := context.Background()

	shipment := &Shipment{
		ServiceCode: "ups_ground",
		ShipDate:    time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC),
		ShipTo:      testAddress(),
		ShipFrom:    testAddress(),
		Packages:    []Package{{Weight: Weight{Value: 1.5, Unit: "pound"}}},
	}
	rates, err := client.GetRatesWithShipmentDetails(ctx, RatesRequest{
		Shipment:    shipment,
		RateOptions: RateOptions{CarrierIDs: []string{"se-123"}},
	})
	if err != nil {
		t.Fatalf("GetRatesWithShipmentDetails() error = %v", err)
	}
	if rates.ShipmentID != "se-ship" || len(rates.Rates) != 1 || rates.Rates[0].ShippingAmount.Amount != 9.5 {
		t.Errorf("rates = %+v", rates)
	}
	sent := rateBody["shipment"].(map[string]any)
	if sent["ship_date"] != "2026-03-04" {
		t.Errorf("ship_date = %v, want 2026-03-04", sent["ship_date"])
	}
	if sent["ship_to"].(map[string]any)["address_line1"] != "4 Jersey St" {
		t.Errorf("ship_to = %v", sent["ship_to"])
	}

	label, err := client.CreateLabelFromRate(ctx, rates.Rates[0].RateID, LabelOptions{LabelFormat: "pdf"})
	if err != nil {
		t.Fatalf("CreateLabelFromRate() error = %v", err)
	}
	if label.LabelID != "se-label" || label.TrackingNumber != "1Z999" {
		t.Errorf("label = %+v", label)
	}

	label2, err := client.CreateLabelFromShipmentDetails(ctx, LabelRequest{Shipment: *shipment, TestLabel: true})
	if err != nil {
		t.Fatalf("CreateLabelFromShipmentDetails() error = %v", err)
	}
	if label2.LabelID != "se-label-2" {
		t.Errorf("label = %+v", label2)
	}

	void, err := client.VoidLabel(ctx, label.LabelID)
	if err != nil {
		t.Fatalf("VoidLabel() error = %v", err)
	}
	if !void.Approved {
		t.Error("void not approved")
	}
}

func TestClient_ListLabelsPageSize(t *testing.T) {
	var queries []string
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		queries = append(queries, r.URL.RawQuery)
		mu.Unlock()
		w.Write([]byte(`{"labels":[],"total":0,"page":1,"pages":0}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	ctx := context.Background()

	if _, err := client.ListLabels(ctx, ListLabelsParams{}); err != nil {
		t.Fatalf("ListLabels() error = %v", err)
	}
	if _, err := client.ListLabels(ctx, ListLabelsParams{Page: 2}, WithPageSize(10)); err != nil {
		t.Fatalf("ListLabels() error = %v", err)
	}
	if _, err := client.ListLabels(ctx, ListLabelsParams{PageSize: 5}); err != nil {
		t.Fatalf("ListLabels() error = %v", err)
	}

	want := []string{"page_size=50", "page=2&page_size=10", "page_size=5"}
	for i, q := range want {
		if queries[i] != q {
			t.Errorf("query %d = %q, want %q", i, queries[i], q)
		}
	}
}

func TestClient_Tracking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/labels/se-label/track":
			w.Write([]byte(`{"tracking_number":"1Z999","status_code":"DE","events":[{"description":"Delivered","city_locality":"BOSTON"}]}`))
		case "/v1/tracking":
			if r.URL.Query().Get("carrier_code") != "ups" || r.URL.Query().Get("tracking_number") != "1Z999" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.Write([]byte(`{"tracking_number":"1Z999","status_code":"IT","actual_delivery_date":null}`))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	ctx := context.Background()

	info, err := client.TrackUsingLabelID(ctx, "se-label")
	if err != nil {
		t.Fatalf("TrackUsingLabelID() error = %v", err)
	}
	if info.StatusCode != "DE" || len(info.Events) != 1 || info.Events[0].CityLocality != "BOSTON" {
		t.Errorf("info = %+v", info)
	}

	info, err = client.TrackUsingCarrierCode(ctx, "ups", "1Z999")
	if err != nil {
		t.Fatalf("TrackUsingCarrierCode() error = %v", err)
	}
	if info.StatusCode != "IT" || info.ActualDeliveryDate != nil {
		t.Errorf("info = %+v", info)
	}
}

func TestClient_RequiredIdentifiers(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	rec := &events.Recorder{}
	client := newTestClient(t, server, WithEmitter(rec))
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		wantMsg string
	}{
		{"rate id", func() error {
			_, err := client.CreateLabelFromRate(ctx, "", LabelOptions{})
			return err
		}, "rate_id must be specified."},
		{"void label id", func() error {
			_, err := client.VoidLabel(ctx, "")
			return err
		}, "label_id must be specified."},
		{"track label id", func() error {
			_, err := client.TrackUsingLabelID(ctx, "")
			return err
		}, "label_id must be specified."},
		{"carrier code", func() error {
			_, err := client.TrackUsingCarrierCode(ctx, "", "1Z")
			return err
		}, "carrier_code must be specified."},
		{"tracking number", func() error {
			_, err := client.TrackUsingCarrierCode(ctx, "ups", "")
			return err
		}, "tracking_number must be specified."},
		{"carrier ids", func() error {
			_, err := client.GetRatesWithShipmentDetails(ctx, RatesRequest{ShipmentID: "se-1"})
			return err
		}, "carrier_ids must be specified."},
		{"shipment", func() error {
			_, err := client.GetRatesWithShipmentDetails(ctx, RatesRequest{RateOptions: RateOptions{CarrierIDs: []string{"se-1"}}})
			return err
		}, "shipment must be specified."},
		{"addresses", func() error {
			_, err := client.ValidateAddresses(ctx, nil)
			return err
		}, "addresses must be specified."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, ErrFieldValueRequired) {
				t.Fatalf("error = %v, want ErrFieldValueRequired", err)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}

	if requests.Load() != 0 {
		t.Errorf("requests = %d, want 0", requests.Load())
	}
	if n := len(rec.Events()); n != 0 {
		t.Errorf("events = %d, want 0", n)
	}
}
