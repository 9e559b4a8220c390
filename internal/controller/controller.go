// Package controller owns the mutable parameter state of one distribution
// instance. Every mutation goes parse → own-domain check → cascade → validate
// → commit, so the committed parameters always pass distribution.Validate.
package controller

import (
	"fmt"

	"distviz/domain/core"
	"distviz/domain/distribution"
	"distviz/internal"
)

// Change describes one committed mutation.
type Change struct {
	Name    string   `json:"name"`
	Value   float64  `json:"value"`
	Clamped []string `json:"clamped,omitempty"` // dependents lowered by the cascade, in order
}

// Listener is notified after every committed change.
type Listener func(Change)

// Controller holds the validated parameters of one model.
type Controller struct {
	model     distribution.Model
	current   distribution.Validated
	listeners []Listener
	logger    *internal.Logger
}

// New creates a controller holding the model's defaults.
func New(m distribution.Model) (*Controller, error) {
	return NewWithParams(m, m.Spec().Defaults())
}

// NewWithParams creates a controller from an explicit starting point, which
// must already be valid.
func NewWithParams(m distribution.Model, p distribution.Params) (*Controller, error) {
	v, err := distribution.Validate(m, p)
	if err != nil {
		return nil, fmt.Errorf("initial parameters: %w", err)
	}
	return &Controller{
		model:   m,
		current: v,
		logger:  internal.DefaultLogger,
	}, nil
}

// SetLogger replaces the logger.
func (c *Controller) SetLogger(l *internal.Logger) {
	c.logger = l
}

// Model returns the controlled model.
func (c *Controller) Model() distribution.Model { return c.model }

// Values returns a snapshot of the current parameters.
func (c *Controller) Values() distribution.Params { return c.current.Params() }

// Validated returns the current, already validated parameters.
func (c *Controller) Validated() distribution.Validated { return c.current }

// Subscribe registers fn for every future change.
func (c *Controller) Subscribe(fn Listener) {
	c.listeners = append(c.listeners, fn)
}

// Set parses raw as the named parameter and commits it together with any
// clamped dependents. On error nothing changes.
func (c *Controller) Set(name, raw string) (Change, error) {
	param, err := c.lookup(name)
	if err != nil {
		return Change{}, err
	}
	v, err := param.Parse(raw)
	if err != nil {
		return Change{}, err
	}
	return c.apply(param, v)
}

// SetValue commits an already numeric value, as sent by the JSON API.
func (c *Controller) SetValue(name string, v float64) (Change, error) {
	param, err := c.lookup(name)
	if err != nil {
		return Change{}, err
	}
	return c.apply(param, v)
}

// Reset restores every default and notifies listeners with an empty name.
func (c *Controller) Reset() {
	v, err := distribution.Validate(c.model, c.model.Spec().Defaults())
	if err != nil {
		// defaults are static data; a failure here is a broken Spec
		panic(fmt.Sprintf("controller: defaults of %s are invalid: %v", c.model.Spec().Kind, err))
	}
	c.current = v
	c.notify(Change{})
}

func (c *Controller) lookup(name string) (distribution.Parameter, error) {
	spec := c.model.Spec()
	param, ok := spec.Parameter(name)
	if !ok {
		return distribution.Parameter{}, fmt.Errorf("%w: %s has no parameter %q", core.ErrUnknownParameter, spec.Kind, name)
	}
	return param, nil
}

func (c *Controller) apply(param distribution.Parameter, v float64) (Change, error) {
	spec := c.model.Spec()
	if param.Kind == distribution.Integer && v != float64(int64(v)) {
		return Change{}, &distribution.ConstraintViolation{Kind: spec.Kind, Param: param.Name, Value: v, Reason: "is not an integer"}
	}
	if !param.Valid.Contains(v) {
		return Change{}, &distribution.ConstraintViolation{
			Kind:   spec.Kind,
			Param:  param.Name,
			Value:  v,
			Reason: fmt.Sprintf("must lie in %s", param.Valid),
		}
	}

	next := c.current.Params()
	next[param.Name] = v
	clamped := distribution.ApplyBounds(spec, next)

	validated, err := distribution.Validate(c.model, next)
	if err != nil {
		c.logger.Warn("[Controller] %s: rejected %s = %v after cascade: %v", spec.Kind, param.Name, v, err)
		return Change{}, err
	}
	c.current = validated

	change := Change{Name: param.Name, Value: validated.Get(param.Name), Clamped: clamped}
	if len(clamped) > 0 {
		c.logger.Debug("[Controller] %s: %s = %v clamped %v", spec.Kind, param.Name, v, clamped)
	}
	c.notify(change)
	return change, nil
}

func (c *Controller) notify(change Change) {
	for _, fn := range c.listeners {
		fn(change)
	}
}
