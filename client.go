package shipengine

import (
	"golang.org/x/time/rate"

	"github.com/shipengine/shipengine-go/internal/api"
)

// Version is the SDK version reported in the User-Agent header.
const Version = api.SDKVersion

// Client is the ShipEngine API client.
//
// A Client is safe for concurrent use. Every call merges its per-call
// options onto a copy of the Client's Config, so concurrent callers never
// observe each other's overrides. The configured Emitter is shared by all
// calls and must itself be safe for concurrent use.
type Client struct {
	config    Config
	apiClient *api.Client
}

// buildAPIClient creates the request pipeline from construction options.
func buildAPIClient(cfg *clientConfig) *api.Client {
	var apiOpts []api.Option
	if cfg.httpClient != nil {
		apiOpts = append(apiOpts, api.WithHTTPClient(cfg.httpClient))
	}
	if cfg.userAgent != "" {
		apiOpts = append(apiOpts, api.WithUserAgent(cfg.userAgent))
	}
	if cfg.limit > 0 {
		apiOpts = append(apiOpts, api.WithRateLimiter(rate.NewLimiter(cfg.limit, cfg.burst)))
	}
	return api.New(apiOpts...)
}

// New creates a Client from a Config. The Config is validated again so a
// zero Config or one edited after NewConfig is rejected before any request
// is made.
//
//	cfg, err := shipengine.NewConfig(os.Getenv("SHIPENGINE_API_KEY"), shipengine.WithRetries(2))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := shipengine.New(cfg)
func New(cfg Config, opts ...ClientOption) (*Client, error) {
	cfg, err := cfg.Merge()
	if err != nil {
		return nil, err
	}

	cc := &clientConfig{}
	for _, opt := range opts {
		opt(cc)
	}

	return &Client{
		config:    cfg,
		apiClient: buildAPIClient(cc),
	}, nil
}

// Config returns a copy of the Client's base configuration.
func (c *Client) Config() Config {
	return c.config
}

// settings merges per-call overrides onto the base configuration.
func (c *Client) settings(opts []Option) (api.Settings, Config, error) {
	cfg, err := c.config.Merge(opts...)
	if err != nil {
		return api.Settings{}, Config{}, err
	}
	return api.Settings{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Retries: cfg.Retries,
		Timeout: cfg.Timeout,
		Emitter: cfg.Emitter,
	}, cfg, nil
}
