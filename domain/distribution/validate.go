package distribution

import (
	"fmt"
	"math"
)

// Validated is a parameter set that passed Validate for a specific model.
// Only Validate constructs one, so holders never need to re-check.
type Validated struct {
	model  Model
	params Params
}

// Model returns the model the parameters were validated against.
func (v Validated) Model() Model { return v.model }

// Params returns a copy of the validated parameters.
func (v Validated) Params() Params { return v.params.Clone() }

// Get returns one parameter value.
func (v Validated) Get(name string) float64 { return v.params[name] }

// IsZero reports whether v was never produced by Validate.
func (v Validated) IsZero() bool { return v.model == nil }

// Validate checks every declared parameter against its kind and interval,
// then every cross-parameter bound.
func Validate(m Model, p Params) (Validated, error) {
	spec := m.Spec()
	for _, param := range spec.Parameters {
		v, ok := p[param.Name]
		if !ok {
			return Validated{}, &ConstraintViolation{Kind: spec.Kind, Param: param.Name, Value: math.NaN(), Reason: "is missing"}
		}
		if param.Kind == Integer && v != math.Trunc(v) {
			return Validated{}, &ConstraintViolation{Kind: spec.Kind, Param: param.Name, Value: v, Reason: "is not an integer"}
		}
		if !param.Valid.Contains(v) {
			return Validated{}, &ConstraintViolation{
				Kind:   spec.Kind,
				Param:  param.Name,
				Value:  v,
				Reason: fmt.Sprintf("must lie in %s", param.Valid),
			}
		}
	}
	for _, b := range spec.Bounds {
		if p[b.Param] > p[b.AtMost] {
			return Validated{}, &ConstraintViolation{
				Kind:   spec.Kind,
				Param:  b.Param,
				Value:  p[b.Param],
				Reason: fmt.Sprintf("must not exceed %s = %v", b.AtMost, p[b.AtMost]),
			}
		}
	}
	return Validated{model: m, params: p.Clone()}, nil
}

// ApplyBounds clamps dependents down to their bounding parameter in one pass
// over spec.Bounds and returns the names that changed, in order.
func ApplyBounds(spec *Spec, p Params) []string {
	var clamped []string
	for _, b := range spec.Bounds {
		if limit := p[b.AtMost]; p[b.Param] > limit {
			p[b.Param] = limit
			clamped = append(clamped, b.Param)
		}
	}
	return clamped
}
