// Package sampling turns a model and validated parameters into the ordered
// point series the renderer consumes. Sampling is deterministic: equal inputs
// give bit-identical series.
package sampling

import (
	"distviz/domain/distribution"
)

const (
	// MinResolution and MaxResolution bound continuous sample counts.
	MinResolution = 2
	MaxResolution = 10000

	// DefaultResolution is used when neither caller nor spec picks one.
	DefaultResolution = 500

	// Joint lattices are resolution² evaluations, so they get their own bounds.
	MaxGridResolution     = 1001
	DefaultGridResolution = 301
)

// Point is one evaluated (x, density) pair.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is an immutable, ordered sample of a density.
type Series struct {
	Points   []Point `json:"points"`
	Discrete bool    `json:"discrete"`
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Points) }

// XValues returns the abscissae in order.
func (s Series) XValues() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.X
	}
	return out
}

// YValues returns the densities in order.
func (s Series) YValues() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Y
	}
	return out
}

// Resolution resolves the continuous sample count for spec: a positive
// request wins, then the spec's preference, then DefaultResolution; the
// result is clamped to [MinResolution, MaxResolution].
func Resolution(spec *distribution.Spec, requested int) int {
	n := requested
	if n <= 0 {
		n = spec.Resolution
	}
	if n <= 0 {
		n = DefaultResolution
	}
	switch {
	case n < MinResolution:
		n = MinResolution
	case n > MaxResolution:
		n = MaxResolution
	}
	return n
}

// Sample evaluates the model behind v over its domain. Discrete models are
// sampled at every integer of the inclusive domain, truncated to the first
// MaxResolution integers; continuous models at resolution evenly spaced
// points that include both ends.
func Sample(v distribution.Validated, resolution int) Series {
	m := v.Model()
	p := v.Params()
	spec := m.Spec()
	window := m.Domain(p)

	if spec.Support == distribution.Discrete {
		if !(window.Max >= window.Min) {
			return Series{Discrete: true}
		}
		// The support never yields more than MaxResolution points.
		if window.Max-window.Min >= MaxResolution {
			window.Max = window.Min + MaxResolution - 1
		}
		lo, hi := int(window.Min), int(window.Max)
		points := make([]Point, 0, hi-lo+1)
		for k := lo; k <= hi; k++ {
			x := float64(k)
			points = append(points, Point{X: x, Y: m.Density(x, p)})
		}
		return Series{Points: points, Discrete: true}
	}

	xs := Linspace(window.Min, window.Max, Resolution(spec, resolution))
	points := make([]Point, len(xs))
	for i, x := range xs {
		points[i] = Point{X: x, Y: m.Density(x, p)}
	}
	return Series{Points: points}
}

// Linspace returns n evenly spaced values from lo to hi inclusive. Each value
// is computed from its index, so the last one is exactly hi.
func Linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
