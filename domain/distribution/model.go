package distribution

import (
	"fmt"
	"math"
	"strings"
)

// Model is the pure-math contract every distribution satisfies. Density must
// be total: 0 outside the support and never NaN for validated parameters.
type Model interface {
	Spec() *Spec
	Density(x float64, p Params) float64
	Mean(p Params) Statistic
	Variance(p Params) Statistic
	Domain(p Params) Range
}

// Captioner is implemented by models whose caption departs from the
// "Mean: …, Variance: …" template.
type Captioner interface {
	Caption(p Params, mean, variance Statistic) string
}

// JointModel is implemented by models that also expose a two-dimensional
// density surface.
type JointModel interface {
	Model
	Joint(x, y float64, p Params) float64
	JointWindow(p Params) (x Range, y Range)
	JointCaption(p Params) string
}

// Caption returns the chart caption for validated parameters.
func Caption(v Validated) string {
	m := v.Model()
	mean, variance := m.Mean(v.params), m.Variance(v.params)
	if c, ok := m.(Captioner); ok {
		return c.Caption(v.params, mean, variance)
	}
	return DefaultCaption(mean, variance)
}

// DefaultCaption is the shared "Mean: …, Variance: …" template.
func DefaultCaption(mean, variance Statistic) string {
	return fmt.Sprintf("Mean: %s, Variance: %s", mean, variance)
}

// Legend names the current parameter values, e.g. "n = 10, p = 0.50".
func Legend(spec *Spec, p Params) string {
	parts := make([]string, 0, len(spec.Parameters))
	for _, param := range spec.Parameters {
		parts = append(parts, fmt.Sprintf("%s = %s", param.Symbol, param.Format(p[param.Name])))
	}
	return strings.Join(parts, ", ")
}

// count converts x to a non-negative integer when it is one.
func count(x float64) (uint64, bool) {
	if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
		return 0, false
	}
	return uint64(x), true
}

// Upper limits on counts and rates. They keep every discrete support, and
// with it each sampled series, at a few thousand points.
const (
	MaxTrials = 5000
	MaxRate   = 1000
)

// integerRange is the displayed support [lo, hi] of a discrete model.
func integerRange(lo, hi int) Range {
	return Range{Min: float64(lo), Max: float64(hi)}
}
