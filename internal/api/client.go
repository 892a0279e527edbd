package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/shipengine/shipengine-go/events"
	"github.com/shipengine/shipengine-go/internal/apierrors"
	"github.com/shipengine/shipengine-go/internal/requestid"
)

// Header names sent and consumed by the client.
const (
	HeaderAPIKey      = "API-Key"
	HeaderRetries     = "Retries"
	HeaderRetryAfter  = "Retry-After"
	HeaderUserAgent   = "User-Agent"
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "x-shipengine-requestid"
)

// Settings is the merged, validated configuration of a single call.
type Settings struct {
	APIKey  string
	BaseURL string
	Retries int
	Timeout time.Duration
	Emitter events.Emitter
}

// Request describes one logical API call. It is never mutated once built.
type Request struct {
	// Method is the HTTP method. JSON-RPC calls always use POST.
	Method string
	// Path is appended to the base URL, e.g. "/v1/carriers". Empty for
	// JSON-RPC calls, which are posted to the base URL itself.
	Path string
	// Query is encoded into the URL for GET and DELETE requests.
	Query url.Values
	// Body is marshalled as JSON. For JSON-RPC calls it becomes params.
	Body any
	// RPCMethod selects the JSON-RPC transport when non-empty.
	RPCMethod string
}

// Response is a successful API response. For JSON-RPC calls Body holds the
// envelope's result member.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       json.RawMessage
	RequestID  string
	URL        string
}

// Decode unmarshals the response body into v. A body that does not match v
// is reported as a system error rather than a partially filled value.
func (r *Response) Decode(v any) error {
	if v == nil || len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return apierrors.NewDecode(err, r.RequestID, r.URL, r.StatusCode)
	}
	return nil
}

// Client executes API calls. It holds no per-call state and is safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	userAgent  string
	limiter    *rate.Limiter
	newID      func() string
	wait       func(ctx context.Context, d time.Duration) error
	now        func() time.Time
}

// Option configures the API client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for every attempt.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRateLimiter paces attempts through l. Every attempt, retries included,
// waits for a token before it is sent.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithIDGenerator replaces the correlation id generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newID = fn
		}
	}
}

// New creates a new API client.
func New(opts ...Option) *Client {
	c := &Client{
		userAgent: DefaultUserAgent(),
		newID:     requestid.New,
		wait:      sleep,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Transport: newTransport()}
	}
	return c
}

// newTransport returns a pooled transport with TLS 1.2 as the floor.
// Timeouts are applied per attempt through the request context.
func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// call is the immutable descriptor built once per logical call.
type call struct {
	method    string
	url       string
	body      []byte
	requestID string
	rpc       bool
	label     string
}

func (c *Client) build(s Settings, req Request) (*call, error) {
	cl := &call{
		method:    strings.ToUpper(req.Method),
		requestID: c.newID(),
	}

	if req.RPCMethod != "" {
		cl.rpc = true
		cl.method = http.MethodPost
		cl.url = s.BaseURL
		cl.label = req.RPCMethod
		data, err := json.Marshal(rpcRequest{
			JSONRPC: rpcVersion,
			ID:      cl.requestID,
			Method:  req.RPCMethod,
			Params:  req.Body,
		})
		if err != nil {
			return nil, encodeError(err)
		}
		cl.body = data
		return cl, nil
	}

	if cl.method == "" {
		cl.method = http.MethodGet
	}
	cl.url = strings.TrimRight(s.BaseURL, "/") + req.Path
	if len(req.Query) > 0 {
		cl.url += "?" + req.Query.Encode()
	}
	cl.label = cl.method + " " + req.Path

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, encodeError(err)
		}
		cl.body = data
	}
	return cl, nil
}

func encodeError(err error) *apierrors.Error {
	return &apierrors.Error{
		Message: fmt.Sprintf("failed to marshal request body: %v", err),
		Source:  apierrors.SourceShipEngine,
		Type:    apierrors.TypeValidation,
		Code:    apierrors.CodeInvalidFieldValue,
		Err:     err,
	}
}

// newHTTPRequest builds the request for one attempt. Headers are set on a
// fresh request every time; nothing shared is mutated.
func (cl *call) newHTTPRequest(ctx context.Context, s Settings, userAgent string, attempt int) (*http.Request, error) {
	var body io.Reader
	if cl.body != nil {
		body = bytes.NewReader(cl.body)
	}
	req, err := http.NewRequestWithContext(ctx, cl.method, cl.url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderContentType, "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderAPIKey, s.APIKey)
	req.Header.Set(HeaderUserAgent, userAgent)
	if attempt > 0 {
		req.Header.Set(HeaderRetries, strconv.Itoa(attempt))
	}
	return req, nil
}

// Do executes req, retrying while the API answers 429 and retries remain.
// On success it returns the raw response; on failure it returns an
// *apierrors.Error after emitting an Error event.
func (c *Client) Do(ctx context.Context, s Settings, req Request) (*Response, error) {
	emitter := s.Emitter
	if emitter == nil {
		emitter = events.NopEmitter{}
	}

	cl, err := c.build(s, req)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		out := c.attempt(ctx, s, cl, attempt, emitter)

		if out.state == stateRetryable {
			if attempt < s.Retries {
				if err := c.wait(ctx, out.retryAfter); err != nil {
					out = fatal(apierrors.NewTransport(err, cl.url))
				} else {
					continue
				}
			} else {
				out = fatal(out.rateLimitError(cl))
			}
		}

		if out.state == stateSuccess {
			return out.response, nil
		}

		c.emitError(emitter, cl, out.err)
		return nil, out.err
	}
}

// Call performs a JSON-RPC call and decodes the result member into result.
// It returns the request id the server reported for the call.
func (c *Client) Call(ctx context.Context, s Settings, method string, params, result any) (string, error) {
	resp, err := c.Do(ctx, s, Request{RPCMethod: method, Body: params})
	if err != nil {
		return "", err
	}
	return resp.RequestID, resp.Decode(result)
}

func (c *Client) attempt(ctx context.Context, s Settings, cl *call, attempt int, emitter events.Emitter) outcome {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fatal(apierrors.NewTransport(err, cl.url))
		}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	httpReq, err := cl.newHTTPRequest(attemptCtx, s, c.userAgent, attempt)
	if err != nil {
		return fatal(apierrors.NewTransport(err, cl.url))
	}

	emitter.OnRequestSent(events.RequestSent{
		Timestamp:    c.now(),
		Message:      fmt.Sprintf("Calling the ShipEngine %s API at %s", cl.label, cl.url),
		RequestID:    cl.requestID,
		URL:          cl.url,
		Body:         cl.body,
		Headers:      httpReq.Header.Clone(),
		Timeout:      s.Timeout,
		RetryAttempt: attempt,
	})

	start := c.now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fatal(apierrors.NewTransport(err, cl.url))
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fatal(apierrors.NewTransport(err, cl.url))
	}
	elapsed := c.now().Sub(start)
	out := classify(cl, httpReq, resp, body)

	emitter.OnResponseReceived(events.ResponseReceived{
		Timestamp:    c.now(),
		Message:      fmt.Sprintf("Received an HTTP %d response from the ShipEngine %s API", resp.StatusCode, cl.label),
		RequestID:    cl.requestID,
		URL:          cl.url,
		StatusCode:   resp.StatusCode,
		Body:         body,
		Headers:      resp.Header.Clone(),
		Elapsed:      elapsed,
		RetryAttempt: attempt,
		Success:      out.state == stateSuccess,
	})

	return out
}

func (c *Client) emitError(emitter events.Emitter, cl *call, err error) {
	e := events.Error{
		Timestamp: c.now(),
		Message:   err.Error(),
		RequestID: cl.requestID,
		URL:       cl.url,
	}
	var apiErr *apierrors.Error
	if errors.As(err, &apiErr) {
		e.Message = apiErr.Message
		e.StatusCode = apiErr.StatusCode
		e.Source = string(apiErr.Source)
		e.Type = string(apiErr.Type)
		e.Code = string(apiErr.Code)
	}
	emitter.OnError(e)
}
