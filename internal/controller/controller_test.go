package controller

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distviz/domain/core"
	"distviz/domain/distribution"
)

func newController(t *testing.T, m distribution.Model) *Controller {
	t.Helper()
	c, err := New(m)
	require.NoError(t, err)
	return c
}

func TestSet_CommitsAndNotifies(t *testing.T) {
	c := newController(t, distribution.Binomial{})
	var seen []Change
	c.Subscribe(func(ch Change) { seen = append(seen, ch) })

	change, err := c.Set("n", "20")
	require.NoError(t, err)
	assert.Equal(t, Change{Name: "n", Value: 20}, change)
	assert.Equal(t, 20.0, c.Values()["n"])
	assert.Equal(t, 20.0, c.Validated().Get("n"))
	require.Len(t, seen, 1)
	assert.Equal(t, change, seen[0])
}

func TestSet_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		model  distribution.Model
		param  string
		raw    string
		target error
	}{
		{"unknown parameter", distribution.Binomial{}, "q", "0.5", core.ErrUnknownParameter},
		{"not a number", distribution.Binomial{}, "p", "half", core.ErrParse},
		{"fractional integer", distribution.Binomial{}, "n", "2.5", core.ErrParse},
		{"probability of one", distribution.Binomial{}, "p", "1", core.ErrConstraint},
		{"zero trials", distribution.Binomial{}, "n", "0", core.ErrConstraint},
		{"negative rate", distribution.Poisson{}, "lambda", "-2", core.ErrConstraint},
		{"zero population", distribution.Hypergeometric{}, "N", "0", core.ErrConstraint},
		{"perfect correlation", distribution.BivariateNormal{}, "rho", "-1", core.ErrConstraint},
		{"infinite rate", distribution.Exponential{}, "lambda", "Inf", core.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(t, tt.model)
			before := c.Values()
			notified := false
			c.Subscribe(func(Change) { notified = true })

			_, err := c.Set(tt.param, tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, before, c.Values(), "state must be untouched")
			assert.False(t, notified)
		})
	}
}

func TestSet_ConstraintViolationCarriesParameter(t *testing.T) {
	c := newController(t, distribution.Poisson{})
	_, err := c.Set("lambda", "0")
	var cv *distribution.ConstraintViolation
	require.True(t, errors.As(err, &cv))
	assert.Equal(t, "lambda", cv.Param)
	assert.Equal(t, distribution.KindPoisson, cv.Kind)
}

func TestSet_HypergeometricCascade(t *testing.T) {
	c := newController(t, distribution.Hypergeometric{})
	var seen []Change
	c.Subscribe(func(ch Change) { seen = append(seen, ch) })

	// N=50, M=20, K=10: shrinking N below both drags M then K down in one call
	change, err := c.Set("N", "8")
	require.NoError(t, err)
	assert.Equal(t, []string{"M", "K"}, change.Clamped)
	assert.Equal(t, distribution.Params{"N": 8, "M": 8, "K": 8}, c.Values())
	require.Len(t, seen, 1, "one notification for the whole cascade")

	// lowering M only touches K
	change, err = c.Set("M", "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"K"}, change.Clamped)
	assert.Equal(t, distribution.Params{"N": 8, "M": 3, "K": 3}, c.Values())

	// raising K above M clamps K itself
	change, err = c.Set("K", "7")
	require.NoError(t, err)
	assert.Equal(t, 3.0, change.Value)
	assert.Equal(t, []string{"K"}, change.Clamped)
	assert.Equal(t, distribution.Params{"N": 8, "M": 3, "K": 3}, c.Values())

	// growing N clamps nothing
	change, err = c.Set("N", "100")
	require.NoError(t, err)
	assert.Empty(t, change.Clamped)

	_, err = distribution.Validate(c.Model(), c.Values())
	assert.NoError(t, err)
}

func TestSet_DegenerateHypergeometric(t *testing.T) {
	c := newController(t, distribution.Hypergeometric{})
	_, err := c.Set("N", "1")
	require.NoError(t, err)
	_, err = c.Set("M", "1")
	require.NoError(t, err)
	_, err = c.Set("K", "1")
	require.NoError(t, err)

	v := c.Validated()
	m := v.Model()
	assert.InDelta(t, 1.0, m.Density(1, v.Params()), 1e-6)
	assert.Equal(t, "undefined", m.Variance(v.Params()).String())
}

func TestSetValue(t *testing.T) {
	c := newController(t, distribution.NegativeBinomial{})
	_, err := c.SetValue("r", 4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, c.Values()["r"])

	_, err = c.SetValue("r", 4.5)
	assert.ErrorIs(t, err, core.ErrConstraint)
	assert.Equal(t, 4.0, c.Values()["r"])
}

func TestReset(t *testing.T) {
	c := newController(t, distribution.Gamma{})
	_, err := c.Set("alpha", "3.5")
	require.NoError(t, err)

	var seen []Change
	c.Subscribe(func(ch Change) { seen = append(seen, ch) })
	c.Reset()
	assert.Equal(t, distribution.Gamma{}.Spec().Defaults(), c.Values())
	require.Len(t, seen, 1)
	assert.Empty(t, seen[0].Name)
}

func TestValues_IsSnapshot(t *testing.T) {
	c := newController(t, distribution.Binomial{})
	v := c.Values()
	v["n"] = 400
	assert.Equal(t, 10.0, c.Values()["n"])
}

func TestNewWithParams_RejectsInvalid(t *testing.T) {
	_, err := NewWithParams(distribution.Binomial{}, distribution.Params{"n": 10, "p": 2})
	assert.ErrorIs(t, err, core.ErrConstraint)
}
