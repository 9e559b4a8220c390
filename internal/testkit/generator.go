package testkit

import (
	"fmt"
	"math"

	"distviz/domain/distribution"
)

const maxDraws = 100

// RandomParams draws a valid parameter set for m from its slider ranges,
// snapped to the slider step and resolved through the bound cascade.
func (k *TestKit) RandomParams(m distribution.Model) (distribution.Validated, error) {
	spec := m.Spec()
	for attempt := 0; attempt < maxDraws; attempt++ {
		p := make(distribution.Params, len(spec.Parameters))
		for _, param := range spec.Parameters {
			p[param.Name] = k.draw(param)
		}
		distribution.ApplyBounds(spec, p)
		if v, err := distribution.Validate(m, p); err == nil {
			return v, nil
		}
	}
	return distribution.Validated{}, fmt.Errorf("no valid %s parameters after %d draws", spec.Kind, maxDraws)
}

func (k *TestKit) draw(param distribution.Parameter) float64 {
	s := param.Slider
	v := s.Min + k.rng.Float64()*(s.Max-s.Min)
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
	}
	if param.Kind == distribution.Integer {
		v = math.Round(v)
	}
	return math.Min(math.Max(v, s.Min), s.Max)
}

// Points returns n positions spread over the display domain of v
func (k *TestKit) Points(v distribution.Validated, n int) []float64 {
	r := v.Model().Domain(v.Params())
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = r.Min + k.rng.Float64()*(r.Max-r.Min)
	}
	return xs
}
