package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	shipengine "github.com/shipengine/shipengine-go"
	"github.com/shipengine/shipengine-go/events"
)

// Environment variables read by the command.
const (
	envAPIKey   = "SHIPENGINE_API_KEY"
	envBaseURL  = "SHIPENGINE_BASE_URL"
	envLogLevel = "SHIPENGINE_LOG_LEVEL"
)

// fileConfig is the layout of the --config YAML file.
type fileConfig struct {
	APIKey   string        `yaml:"api_key"`
	BaseURL  string        `yaml:"base_url"`
	Retries  *int          `yaml:"retries"`
	Timeout  time.Duration `yaml:"timeout"`
	PageSize int           `yaml:"page_size"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	apiKey     string
	baseURL    string
	retries    int
	timeout    time.Duration
	configPath string
	envFile    string
	verbose    bool
	logFormat  string

	changed func(name string) bool
}

// loadEnv loads the .env file, if any, without overriding variables that
// are already set.
func (g *globalFlags) loadEnv() error {
	if g.envFile == "" {
		return nil
	}
	err := godotenv.Load(g.envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", g.envFile, err)
	}
	return nil
}

// options resolves the SDK options. Flags win over the environment, which
// wins over the config file.
func (g *globalFlags) options(stderr io.Writer) ([]shipengine.Option, string, error) {
	var fc fileConfig
	if g.configPath != "" {
		var err error
		if fc, err = loadFileConfig(g.configPath); err != nil {
			return nil, "", err
		}
	}

	apiKey := firstSet(g.flagString("api-key", g.apiKey), os.Getenv(envAPIKey), fc.APIKey)
	var opts []shipengine.Option

	if baseURL := firstSet(g.flagString("base-url", g.baseURL), os.Getenv(envBaseURL), fc.BaseURL); baseURL != "" {
		opts = append(opts, shipengine.WithBaseURL(baseURL))
	}
	switch {
	case g.changed("retries"):
		opts = append(opts, shipengine.WithRetries(g.retries))
	case fc.Retries != nil:
		opts = append(opts, shipengine.WithRetries(*fc.Retries))
	}
	switch {
	case g.changed("timeout"):
		opts = append(opts, shipengine.WithTimeout(g.timeout))
	case fc.Timeout != 0:
		opts = append(opts, shipengine.WithTimeout(fc.Timeout))
	}
	if fc.PageSize != 0 {
		opts = append(opts, shipengine.WithPageSize(fc.PageSize))
	}
	if g.verbose {
		opts = append(opts, shipengine.WithEmitter(events.NewLogEmitter(g.logger(stderr))))
	}
	return opts, apiKey, nil
}

func (g *globalFlags) flagString(name, value string) string {
	if g.changed(name) {
		return value
	}
	return ""
}

// logger builds the slog logger used by --verbose.
func (g *globalFlags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelDebug
	if env := os.Getenv(envLogLevel); env != "" {
		level = parseLevel(env)
	}
	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(g.logFormat, "text") {
		handler = slog.NewTextHandler(w, handlerOpts)
	} else {
		handler = slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// newClient builds an SDK client from the resolved settings.
func (g *globalFlags) newClient(stderr io.Writer) (*shipengine.Client, error) {
	if err := g.loadEnv(); err != nil {
		return nil, err
	}
	opts, apiKey, err := g.options(stderr)
	if err != nil {
		return nil, err
	}
	cfg, err := shipengine.NewConfig(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return shipengine.New(cfg, shipengine.WithUserAgent(fmt.Sprintf("shipengine-cli/%s (sdk %s)", version, shipengine.Version)))
}
