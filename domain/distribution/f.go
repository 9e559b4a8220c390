package distribution

import (
	"math"

	"distviz/domain/numeric"
)

var fSpec = Spec{
	Kind:    KindF,
	Name:    "F-Distribution",
	Summary: "Ratio of two independent chi-squared variables, each divided by its degrees of freedom.",
	Formula: "f(x; d1, d2) = √((d1 x)^d1 * d2^d2 / (d1 x + d2)^(d1+d2)) / (x B(d1/2, d2/2))",
	Moments: "Mean: d2/(d2-2) (d2 > 2), Variance: 2d2²(d1+d2-2) / (d1(d2-2)²(d2-4)) (d2 > 4)",
	Support: Continuous,
	Parameters: []Parameter{
		{Name: "df1", Symbol: "df1", Label: "numerator degrees of freedom", Kind: Real, Default: 1, Valid: Positive(), Slider: Slider{Min: 1, Max: 30, Step: 1}},
		{Name: "df2", Symbol: "df2", Label: "denominator degrees of freedom", Kind: Real, Default: 1, Valid: Positive(), Slider: Slider{Min: 1, Max: 30, Step: 1}},
	},
	YMax:       1,
	Resolution: 500,
	Color:      "#ff0000",
}

// F is F(d1, d2).
type F struct{}

func (F) Spec() *Spec { return &fSpec }

func (F) Density(x float64, p Params) float64 {
	if x <= 0 {
		return 0
	}
	d1, d2 := p["df1"], p["df2"]
	logP := 0.5*(d1*math.Log(d1*x)+d2*math.Log(d2)-(d1+d2)*math.Log(d1*x+d2)) -
		math.Log(x) - numeric.LogBeta(d1/2, d2/2)
	return numeric.ExpProb(logP)
}

// Mean diverges for d2 ≤ 2.
func (F) Mean(p Params) Statistic {
	d2 := p["df2"]
	if d2 <= 2 {
		return Infinite()
	}
	return Finite(d2 / (d2 - 2))
}

// Variance diverges for 2 < d2 ≤ 4 and is undefined where the mean is infinite.
func (F) Variance(p Params) Statistic {
	d1, d2 := p["df1"], p["df2"]
	switch {
	case d2 <= 2:
		return Undefined()
	case d2 <= 4:
		return Infinite()
	}
	return Finite(2 * d2 * d2 * (d1 + d2 - 2) / (d1 * (d2 - 2) * (d2 - 2) * (d2 - 4)))
}

func (F) Domain(Params) Range { return Range{Min: 0, Max: 5} }
