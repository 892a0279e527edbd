package shipengine

import (
	"net/http"

	"golang.org/x/time/rate"
)

// clientConfig holds construction-time settings that cannot be overridden
// per call.
type clientConfig struct {
	httpClient *http.Client
	userAgent  string
	limit      rate.Limit
	burst      int
}

// ClientOption configures a Client at construction.
type ClientOption func(*clientConfig)

// WithHTTPClient sets a custom HTTP client. Its Timeout should be zero or
// larger than Config.Timeout, which is applied per attempt.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *clientConfig) {
		c.userAgent = ua
	}
}

// WithRateLimit paces outgoing attempts to limit per second with the given
// burst. Retries consume tokens like first attempts.
func WithRateLimit(limit rate.Limit, burst int) ClientOption {
	return func(c *clientConfig) {
		c.limit = limit
		if burst < 1 {
			burst = 1
		}
		c.burst = burst
	}
}
