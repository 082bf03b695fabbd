package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mikmak/psga/internal/window"
)

// Route returns the event name ev is dispatched under.
func (d *Dispatcher) Route(ev window.Event) string {
	if ev.IsCompound() {
		return ev.Key
	}
	if delim := d.config.MenuDelimiter; delim != "" {
		if idx := strings.LastIndex(ev.Key, delim); idx >= 0 {
			return ev.Key[idx+len(delim):]
		}
	}
	return ev.Key
}

// Loop reads events from src and dispatches each one until the exit event
// arrives or the window closes, both of which return nil. It returns ctx's
// error if ctx is done and a wrapped error if src fails otherwise.
// Only one Loop may run per dispatcher at a time.
func (d *Dispatcher) Loop(ctx context.Context, src window.Source) error {
	if src == nil {
		return ErrNilSource
	}

	select {
	case d.running <- struct{}{}:
		defer func() { <-d.running }()
	default:
		return ErrLoopRunning
	}

	for {
		ev, err := src.Read(ctx)
		if err != nil {
			switch {
			case errors.Is(err, window.ErrClosed):
				d.logger.Debug("window closed")
				return nil
			case ctx.Err() != nil:
				return ctx.Err()
			default:
				return fmt.Errorf("reading event: %w", err)
			}
		}

		d.logger.Debug("event %s values %v", ev, ev.Values)

		if d.isExit(ev) {
			return nil
		}

		name := d.Route(ev)
		if !d.Dispatch(name, ev.Values) {
			d.logger.Debug("no action for %q", name)
		}
	}
}

// DispatchEvent routes a single event without running the loop.
// It returns false for the exit event and unregistered names.
func (d *Dispatcher) DispatchEvent(ev window.Event) bool {
	if d.isExit(ev) {
		return false
	}
	return d.Dispatch(d.Route(ev), ev.Values)
}

func (d *Dispatcher) isExit(ev window.Event) bool {
	return d.config.ExitEvent != "" && !ev.IsCompound() && ev.Key == d.config.ExitEvent
}
