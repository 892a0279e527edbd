// Package shipengine provides a Go client for the ShipEngine shipping API:
// address validation, carrier accounts, rates, labels and package tracking.
//
// Basic usage:
//
//	cfg, err := shipengine.NewConfig("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := shipengine.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := client.ValidateAddress(ctx, shipengine.Address{
//	    Street:        []string{"4 Jersey St"},
//	    CityLocality:  "Boston",
//	    StateProvince: "MA",
//	    PostalCode:    "02215",
//	    CountryCode:   "US",
//	})
//
// # Per-call options
//
// Every operation accepts trailing [Option] values that override the
// client's [Config] for that call only:
//
//	carriers, err := client.ListCarriers(ctx, shipengine.WithTimeout(5*time.Second))
//
// # Errors
//
// Every failure is an [*Error]. Use errors.Is with [ErrValidation],
// [ErrFieldValueRequired], [ErrBusinessRules], [ErrSystem], [ErrSecurity]
// or [ErrRateLimited] to branch on the kind, and errors.As to read the
// request id, source, type and code. Input is validated before any request
// is sent.
//
// # Retries
//
// Requests answered with 429 Too Many Requests are retried up to
// [Config.Retries] times, waiting for the Retry-After delay when the API
// sends one. No other failure is retried.
//
// # Events
//
// Set [Config.Emitter] to observe each attempt. The events package provides
// a slog emitter, and the events/metrics and events/tracing packages provide
// Prometheus and OpenTelemetry emitters.
package shipengine
