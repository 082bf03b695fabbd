package dispatcher

import (
	"runtime"
	"time"

	"github.com/mikmak/psga/internal/action"
	"github.com/mikmak/psga/internal/logging"
	"github.com/mikmak/psga/internal/window"
)

// Dispatcher routes event names to registered actions.
type Dispatcher struct {
	registry *Registry
	config   Config
	logger   *logging.Logger
	metrics  *Metrics

	// loop guard, see Loop
	running chan struct{}
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	logger := config.Logger
	if logger == nil {
		logger = logging.Default()
	}

	d := &Dispatcher{
		registry: NewRegistry(),
		config:   config,
		logger:   logger.WithComponent(LoggerComponent),
		running:  make(chan struct{}, 1),
	}

	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}

	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// Register binds a under its name and every alias. It returns d so calls
// can be chained. Register panics with ErrNilAction if a is nil.
func (d *Dispatcher) Register(a *action.Action) *Dispatcher {
	if a == nil {
		panic(ErrNilAction)
	}
	for _, key := range a.Keys() {
		if prev := d.registry.Register(key, a); prev != nil && prev != a {
			d.logger.Debug("%q rebound from %s to %s", key, prev, a)
		}
	}
	return d
}

// RegisterAll registers every action in order.
func (d *Dispatcher) RegisterAll(actions ...*action.Action) {
	for _, a := range actions {
		d.Register(a)
	}
}

// RegisterFunc wraps fn in an action named name with the given aliases,
// registers it and returns it.
func (d *Dispatcher) RegisterFunc(name string, fn action.Handler, aliases ...string) *action.Action {
	a := action.New(fn, action.WithName(name), action.WithKeys(aliases...))
	d.Register(a)
	return a
}

// Unregister removes the binding for name. Other keys of the same action
// stay registered.
func (d *Dispatcher) Unregister(name string) {
	d.registry.Unregister(name)
}

// Dispatch invokes the action bound to name with values. It returns false,
// and does nothing else, if no action is bound to name.
func (d *Dispatcher) Dispatch(name string, values window.Values) bool {
	a := d.registry.Get(name)
	if a == nil {
		if d.metrics != nil {
			d.metrics.RecordUnmatched(name)
		}
		return false
	}

	start := time.Now()
	if d.config.RecoverFromPanic {
		d.invokeWithRecovery(name, a, values)
	} else {
		a.Invoke(values)
	}

	if d.metrics != nil {
		d.metrics.RecordDispatch(name, time.Since(start))
	}
	return true
}

// invokeWithRecovery invokes a and logs a panic instead of propagating it.
func (d *Dispatcher) invokeWithRecovery(name string, a *action.Action, values window.Values) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			d.logger.Error("handler panic for %q (%s): %v\n%s", name, a, r, string(stack[:n]))

			if d.metrics != nil {
				d.metrics.RecordPanic(name)
			}
		}
	}()

	a.Invoke(values)
}

// Has returns true if an action is bound to name.
func (d *Dispatcher) Has(name string) bool {
	return d.registry.Has(name)
}

// Registry returns the action registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector (nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// Logger returns the dispatcher's logger.
func (d *Dispatcher) Logger() *logging.Logger {
	return d.logger
}
