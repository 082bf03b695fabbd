package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNilAction indicates a nil action was passed for registration.
	ErrNilAction = errors.New("dispatcher: nil action")

	// ErrLoopRunning indicates Loop was called while another loop is active.
	ErrLoopRunning = errors.New("dispatcher: loop already running")

	// ErrNilSource indicates Loop was called without an event source.
	ErrNilSource = errors.New("dispatcher: nil event source")
)
