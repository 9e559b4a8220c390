package sampling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/integrate"
)

// Summary describes a series numerically. Non-finite densities (a pole at
// the edge of the support) are left out.
type Summary struct {
	Points int     `json:"points"`
	Mass   float64 `json:"mass"`  // Σ y for mass functions, ∫ y dx for densities
	MaxY   float64 `json:"max_y"` // largest finite density
	Mean   float64 `json:"mean"`  // numeric first moment over the window
	Poles  int     `json:"poles"` // points whose density is +Inf
}

// Summarize computes the Summary of s.
func Summarize(s Series) Summary {
	sum := Summary{Points: s.Len()}
	var xs, ys, xys stats.Float64Data
	for _, p := range s.Points {
		if math.IsInf(p.Y, 1) {
			sum.Poles++
			continue
		}
		if math.IsNaN(p.Y) || math.IsInf(p.Y, -1) {
			continue
		}
		xs = append(xs, p.X)
		ys = append(ys, p.Y)
		xys = append(xys, p.X*p.Y)
	}
	if len(ys) == 0 {
		return sum
	}
	sum.MaxY, _ = ys.Max()

	var first float64
	if s.Discrete || len(ys) < 2 {
		sum.Mass, _ = ys.Sum()
		first, _ = xys.Sum()
	} else {
		sum.Mass = integrate.Trapezoidal(xs, ys)
		first = integrate.Trapezoidal(xs, xys)
	}
	if sum.Mass > 0 {
		sum.Mean = first / sum.Mass
	}
	return sum
}
