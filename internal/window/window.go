package window

import (
	"context"
	"errors"
)

// ErrClosed is returned by Read once the window has been closed.
var ErrClosed = errors.New("window: closed")

// Source is a blocking event source.
type Source interface {
	// Read blocks until the next event is available, the window is closed
	// (ErrClosed) or ctx is done.
	Read(ctx context.Context) (Event, error)
}

// Window is an event source that also accepts posted events and background
// operations.
type Window interface {
	Source

	// WriteEventValue posts an event keyed by key whose values map key to
	// value. Safe to call from any goroutine.
	WriteEventValue(key string, value any)

	// PerformLongOperation runs fn off the loop goroutine and posts its
	// result as WriteEventValue(key, result).
	PerformLongOperation(fn func() any, key string)

	// Close closes the window; pending and future reads return ErrClosed.
	Close()
}
