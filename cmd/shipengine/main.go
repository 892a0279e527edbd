// Command shipengine is a small command line client for the ShipEngine API.
//
// Configuration is read from flags, then the environment (SHIPENGINE_API_KEY,
// SHIPENGINE_BASE_URL, optionally loaded from a .env file), then a YAML file
// given with --config. Results are written to stdout as JSON.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	shipengine "github.com/shipengine/shipengine-go"
)

// Version information (injected via ldflags at build time)
var (
	version = "dev"
	commit  = "unknown"
)

// Config holds the streams the command reads from and writes to.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultConfig returns a Config wired to the process streams.
func DefaultConfig() Config {
	return Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := DefaultConfig()
	if err := run(ctx, os.Args[1:], cfg); err != nil {
		reportError(cfg.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run executes the command line in args. Canceling ctx aborts the request
// in flight.
func run(ctx context.Context, args []string, cfg Config) error {
	cmd := newRootCommand(cfg)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// reportError writes err to w, as JSON when it is an API error.
func reportError(w io.Writer, err error) {
	var apiErr *shipengine.Error
	if !errors.As(err, &apiErr) {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	writeJSON(w, errorOutput{Error: errorDetail{
		Message:    apiErr.Message,
		RequestID:  apiErr.RequestID,
		Source:     string(apiErr.Source),
		Type:       string(apiErr.Type),
		Code:       string(apiErr.Code),
		StatusCode: apiErr.StatusCode,
		Field:      apiErr.Field,
	}})
}
