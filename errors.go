package copattern

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrUnknownTag indicates a hook was registered for a tag that does not
	// occur in the grammar.
	ErrUnknownTag = errors.New("hook registered for unknown tag")

	// ErrInvalidConfig indicates invalid configuration was provided
	ErrInvalidConfig = errors.New("invalid configuration")
)

// CompileError wraps grammar compilation errors with additional context.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("copattern: compiling %s: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("copattern: compile failed: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// BuildError describes a malformed pattern construction. Constructors panic
// with a *BuildError; a malformed tree is a programming error, not a
// matching failure.
type BuildError struct {
	Op      string
	Message string
}

// Error implements the error interface
func (e *BuildError) Error() string {
	return "copattern: " + e.Op + ": " + e.Message
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "copattern: invalid config: " + e.Field + ": " + e.Message
}

// Unwrap allows errors.Is(err, ErrInvalidConfig).
func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

func buildPanic(op, format string, args ...any) {
	panic(&BuildError{Op: op, Message: fmt.Sprintf(format, args...)})
}
