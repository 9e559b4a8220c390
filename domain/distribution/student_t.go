package distribution

import (
	"fmt"
	"math"

	"distviz/domain/numeric"
)

var studentTSpec = Spec{
	Kind:    KindStudentT,
	Name:    "Student's t-Distribution",
	Summary: "Standardized sample mean of a small normal sample. With one degree of freedom it is the Cauchy distribution.",
	Formula: "f(x; n) = Γ((n+1)/2) / (√(nπ) Γ(n/2)) * (1 + x²/n)^(-(n+1)/2)",
	Moments: "Mean: 0 (n > 1), Variance: n/(n-2) (n > 2)",
	Support: Continuous,
	Parameters: []Parameter{
		{Name: "df", Symbol: "n", Label: "degrees of freedom", Kind: Real, Default: 1, Valid: Positive(), Slider: Slider{Min: 1, Max: 30, Step: 1}},
	},
	YMax:       0.4,
	Resolution: 1000,
	Color:      "#ff0000",
}

// StudentT is t(n).
type StudentT struct{}

func (StudentT) Spec() *Spec { return &studentTSpec }

func (StudentT) Density(x float64, p Params) float64 {
	n := p["df"]
	logCoef := numeric.LogGamma((n+1)/2) - numeric.LogGamma(n/2) - 0.5*math.Log(n*math.Pi)
	return numeric.ExpProb(logCoef - (n+1)/2*math.Log1p(x*x/n))
}

// Mean exists only for n > 1.
func (StudentT) Mean(p Params) Statistic {
	if p["df"] <= 1 {
		return Undefined()
	}
	return Finite(0)
}

// Variance diverges for 1 < n ≤ 2 and does not exist for n ≤ 1.
func (StudentT) Variance(p Params) Statistic {
	n := p["df"]
	switch {
	case n <= 1:
		return Undefined()
	case n <= 2:
		return Infinite()
	}
	return Finite(n / (n - 2))
}

func (StudentT) Domain(Params) Range { return Range{Min: -5, Max: 5} }

func (StudentT) Caption(p Params, mean, variance Statistic) string {
	if p["df"] == 1 {
		return fmt.Sprintf("Cauchy Distribution, Mean: %s, Variance: %s", mean, variance)
	}
	return DefaultCaption(mean, variance)
}
