package distribution

import (
	"fmt"

	"distviz/domain/core"
)

// ParseError reports raw input that cannot be read as the parameter's type.
type ParseError struct {
	Param string
	Raw   string
	Kind  ParamKind
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: cannot parse %q as %s", e.Param, e.Raw, e.Kind)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{core.ErrParse}
	}
	return []error{core.ErrParse, e.Err}
}

// ConstraintViolation reports a parameter outside its domain or a sibling bound.
type ConstraintViolation struct {
	Kind   core.Kind
	Param  string
	Value  float64
	Reason string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s: %s = %v %s", e.Kind, e.Param, e.Value, e.Reason)
}

func (e *ConstraintViolation) Unwrap() error {
	return core.ErrConstraint
}
