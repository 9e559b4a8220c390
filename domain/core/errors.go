package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound            = errors.New("resource not found")
	ErrInstanceNotFound    = fmt.Errorf("%w: instance", ErrNotFound)
	ErrUnknownDistribution = fmt.Errorf("%w: distribution", ErrNotFound)
	ErrUnknownParameter    = fmt.Errorf("%w: parameter", ErrNotFound)

	// Input errors
	ErrParse      = errors.New("parameter value could not be parsed")
	ErrConstraint = errors.New("parameter constraint violated")

	// Rendering errors
	ErrRenderUnavailable = errors.New("render target unavailable")
	ErrRenderFailed      = errors.New("render failed")
)

// NewNotFoundError wraps ErrNotFound with the resource kind and id
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

// IsNotFoundError checks the ErrNotFound chain
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInputError reports whether err was caused by user input rather than the system
func IsInputError(err error) bool {
	return errors.Is(err, ErrParse) ||
		errors.Is(err, ErrConstraint) ||
		errors.Is(err, ErrUnknownParameter)
}

// IsRenderUnavailable reports whether a render pass was skipped for lack of a surface
func IsRenderUnavailable(err error) bool {
	return errors.Is(err, ErrRenderUnavailable)
}
