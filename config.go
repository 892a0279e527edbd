package shipengine

import (
	"time"

	"github.com/shipengine/shipengine-go/events"
	"github.com/shipengine/shipengine-go/internal/apierrors"
)

// Default configuration values.
const (
	DefaultBaseURL  = "https://api.shipengine.com"
	DefaultRetries  = 1
	DefaultTimeout  = 30 * time.Second
	DefaultPageSize = 50
)

// Config holds the settings used for every call a Client makes.
//
// Config is a value type. A Client keeps its own copy, and per-call
// overrides produce a new Config through Merge without touching the
// original, so one Client can serve concurrent callers with different
// overrides.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string
	// BaseURL is the API root. JSON-RPC calls are posted here and REST
	// paths are appended to it.
	BaseURL string
	// Retries is the number of additional attempts made after a 429
	// response. Zero disables retries.
	Retries int
	// Timeout bounds a single attempt.
	Timeout time.Duration
	// PageSize is the default page size of list operations.
	PageSize int
	// Emitter receives lifecycle events. Never nil after NewConfig.
	Emitter events.Emitter
}

// Option sets one Config field. Options are used both when creating a
// Config and as per-call overrides.
type Option func(*Config)

// WithAPIKey overrides the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithRetries sets how many times a rate limited request is retried.
func WithRetries(n int) Option {
	return func(c *Config) {
		c.Retries = n
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithPageSize sets the default page size of list operations.
func WithPageSize(n int) Option {
	return func(c *Config) {
		c.PageSize = n
	}
}

// WithEmitter sets the event emitter. A nil emitter disables events.
func WithEmitter(e events.Emitter) Option {
	return func(c *Config) {
		if e == nil {
			e = events.NopEmitter{}
		}
		c.Emitter = e
	}
}

// NewConfig returns a validated Config for apiKey with defaults applied
// before opts.
func NewConfig(apiKey string, opts ...Option) (Config, error) {
	cfg := Config{
		APIKey:   apiKey,
		BaseURL:  DefaultBaseURL,
		Retries:  DefaultRetries,
		Timeout:  DefaultTimeout,
		PageSize: DefaultPageSize,
		Emitter:  events.NopEmitter{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Merge returns a copy of c with opts applied and validated. c itself is
// never modified. Merge with no options returns a Config equal to c.
func (c Config) Merge(opts ...Option) (Config, error) {
	merged := c
	for _, opt := range opts {
		opt(&merged)
	}
	if merged.Emitter == nil {
		merged.Emitter = events.NopEmitter{}
	}
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// Validate reports the first field that violates its constraint.
func (c Config) Validate() error {
	switch {
	case c.APIKey == "":
		return apierrors.NewFieldValueRequired("api_key")
	case c.BaseURL == "":
		return apierrors.NewFieldValueRequired("base_url")
	case c.Retries < 0:
		return apierrors.NewValidation("retries", "Retries must be zero or greater.")
	case c.Timeout < time.Millisecond:
		return apierrors.NewValidation("timeout", "Timeout must be at least 1 millisecond.")
	case c.PageSize <= 0:
		return apierrors.NewValidation("page_size", "Page size must be greater than zero.")
	}
	return nil
}
