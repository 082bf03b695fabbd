package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/mikmak/psga/internal/config/loader"
	"github.com/mikmak/psga/internal/dispatcher"
	"github.com/mikmak/psga/internal/logging"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "PSGA_"

// Config is the complete application configuration.
type Config struct {
	Logging    LoggingConfig    `toml:"logging"`
	Dispatcher DispatcherConfig `toml:"dispatcher"`
	REST       RESTConfig       `toml:"rest"`
	UI         UIConfig         `toml:"ui"`
}

// LoggingConfig configures the application logger.
type LoggingConfig struct {
	Level string `toml:"level"`
	// File receives log output; empty means stderr. A terminal UI owns the
	// screen, so the demo defaults to a file.
	File string `toml:"file"`
}

// DispatcherConfig configures the event dispatcher.
type DispatcherConfig struct {
	ExitEvent        string `toml:"exit_event"`
	MenuDelimiter    string `toml:"menu_delimiter"`
	RecoverFromPanic bool   `toml:"recover_from_panic"`
	Metrics          bool   `toml:"metrics"`
}

// RESTConfig configures the mock REST server and its client.
type RESTConfig struct {
	Addr     string `toml:"addr"`
	BaseURL  string `toml:"base_url"`
	RetryMax int    `toml:"retry_max"`
	Timeout  string `toml:"timeout"`
}

// UIConfig configures the terminal window.
type UIConfig struct {
	// Keys binds key names (e.g. "F5", "Ctrl+N", "q") to event keys.
	Keys map[string]string `toml:"keys"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{
			Level: "info",
		},
		Dispatcher: DispatcherConfig{
			ExitEvent:        dispatcher.DefaultExitEvent,
			MenuDelimiter:    dispatcher.DefaultMenuDelimiter,
			RecoverFromPanic: true,
		},
		REST: RESTConfig{
			Addr:     "127.0.0.1:8000",
			BaseURL:  "http://127.0.0.1:8000/",
			RetryMax: 2,
			Timeout:  "5s",
		},
		UI: UIConfig{
			Keys: map[string]string{},
		},
	}
}

// Load builds the configuration from defaults, the TOML file at path (may
// be empty or missing) and the environment.
func Load(path string) (Config, error) {
	return LoadFrom(loader.NewTOMLLoader(path), loader.NewEnvLoader(EnvPrefix))
}

// LoadFrom builds the configuration from defaults and the given loaders,
// applied in order.
func LoadFrom(loaders ...loader.Loader) (Config, error) {
	merged, err := toMap(Default())
	if err != nil {
		return Config{}, err
	}

	for _, l := range loaders {
		m, err := l.Load()
		if err != nil {
			return Config{}, err
		}
		merged = loader.DeepMerge(merged, m)
	}

	data, err := toml.Marshal(merged)
	if err != nil {
		return Config{}, fmt.Errorf("encoding merged config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding merged config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func toMap(cfg Config) (map[string]any, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	var m map[string]any
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding defaults: %w", err)
	}
	return m, nil
}

// Validate checks every setting.
func (c Config) Validate() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return &ValidationError{Path: "logging.level", Value: c.Logging.Level, Message: "must be debug, info, warn or error"}
	}
	if c.Dispatcher.ExitEvent == "" {
		return &ValidationError{Path: "dispatcher.exit_event", Value: c.Dispatcher.ExitEvent, Message: "must not be empty"}
	}
	if c.Dispatcher.MenuDelimiter == "" {
		return &ValidationError{Path: "dispatcher.menu_delimiter", Value: c.Dispatcher.MenuDelimiter, Message: "must not be empty"}
	}
	if c.REST.RetryMax < 0 {
		return &ValidationError{Path: "rest.retry_max", Value: c.REST.RetryMax, Message: "must not be negative"}
	}
	if _, err := c.RequestTimeout(); err != nil {
		return &ValidationError{Path: "rest.timeout", Value: c.REST.Timeout, Message: err.Error()}
	}
	u, err := url.Parse(c.REST.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &ValidationError{Path: "rest.base_url", Value: c.REST.BaseURL, Message: "must be an absolute URL"}
	}
	return nil
}

// RequestTimeout returns the parsed REST timeout; "" means no timeout.
func (c Config) RequestTimeout() (time.Duration, error) {
	if c.REST.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.REST.Timeout)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", d)
	}
	return d, nil
}

// DispatcherOptions converts the settings into a dispatcher configuration.
func (c Config) DispatcherOptions(logger *logging.Logger) dispatcher.Config {
	cfg := dispatcher.DefaultConfig().
		WithExitEvent(c.Dispatcher.ExitEvent).
		WithMenuDelimiter(c.Dispatcher.MenuDelimiter).
		WithPanicRecovery(c.Dispatcher.RecoverFromPanic).
		WithLogger(logger)
	if c.Dispatcher.Metrics {
		cfg = cfg.WithMetrics()
	}
	return cfg
}
