package config

import (
	"errors"
	"fmt"

	"github.com/mikmak/psga/internal/config/loader"
)

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("config: invalid value")

// ParseError is returned when a configuration file can't be parsed.
type ParseError = loader.ParseError

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	Path    string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Path, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}
