package dispatcher

import "github.com/mikmak/psga/internal/logging"

const (
	// DefaultExitEvent is the event key that ends the loop.
	DefaultExitEvent = "Exit"

	// DefaultMenuDelimiter separates a menu entry's label from its event name.
	DefaultMenuDelimiter = "::"

	// LoggerComponent is the component name the dispatcher logs under.
	LoggerComponent = "PSGA"
)

// Config holds dispatcher configuration options.
type Config struct {
	// ExitEvent is the event key that ends Loop.
	ExitEvent string

	// MenuDelimiter separates label and event name in menu item keys.
	// Empty disables menu key splitting.
	MenuDelimiter string

	// RecoverFromPanic wraps handler invocation in panic recovery.
	RecoverFromPanic bool

	// EnableMetrics enables dispatch timing and statistics collection.
	EnableMetrics bool

	// Logger receives event traces (debug) and handler panics (error).
	// Nil means the process-wide default logger.
	Logger *logging.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ExitEvent:        DefaultExitEvent,
		MenuDelimiter:    DefaultMenuDelimiter,
		RecoverFromPanic: true,
		EnableMetrics:    false,
	}
}

// WithExitEvent returns a copy of the config with the exit event set.
func (c Config) WithExitEvent(name string) Config {
	c.ExitEvent = name
	return c
}

// WithMenuDelimiter returns a copy of the config with the menu delimiter set.
func (c Config) WithMenuDelimiter(delim string) Config {
	c.MenuDelimiter = delim
	return c
}

// WithPanicRecovery returns a copy of the config with panic recovery set.
func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithMetrics returns a copy of the config with metrics enabled.
func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

// WithLogger returns a copy of the config with the logger set.
func (c Config) WithLogger(l *logging.Logger) Config {
	c.Logger = l
	return c
}
