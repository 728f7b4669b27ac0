package feature

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	// ErrConfiguration reports an unsupported style string, direction,
	// font size, scale factor or domain size.
	ErrConfiguration = errors.New("configuration error")
	// ErrBounds reports a feature that does not fit inside the domain.
	ErrBounds = errors.New("bounds error")
	// ErrAlreadyAttached reports a feature that already belongs to a canvas.
	ErrAlreadyAttached = fmt.Errorf("%w: feature already attached to a canvas", ErrConfiguration)
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindBounds        ErrorKind = "bounds"
)

// Error wraps a validation failure with the operation and offending value.
type Error struct {
	Op    string
	Kind  ErrorKind
	Value any
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	if e.Value != nil {
		base += fmt.Sprintf(" (value=%v)", e.Value)
	}
	if e.Err != nil {
		base += ": " + e.Err.Error()
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case KindConfiguration:
		return target == ErrConfiguration
	case KindBounds:
		return target == ErrBounds
	}
	return false
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind == kind
	}
	return false
}

// ConfigError builds a configuration error for op.
func ConfigError(op string, value any, format string, args ...any) error {
	return &Error{Op: op, Kind: KindConfiguration, Value: value, Err: fmt.Errorf(format, args...)}
}

// BoundsError builds a bounds error for op.
func BoundsError(op string, value any, format string, args ...any) error {
	return &Error{Op: op, Kind: KindBounds, Value: value, Err: fmt.Errorf(format, args...)}
}
