package distribution

import (
	"distviz/domain/numeric"
)

var binomialSpec = Spec{
	Kind:    KindBinomial,
	Name:    "Binomial Distribution",
	Summary: "Number of successes in a fixed number of independent Bernoulli trials.",
	Formula: "P(X=k) = C(n,k) * p^k * (1-p)^(n-k)",
	Moments: "Mean: np, Variance: np(1-p)",
	Support: Discrete,
	Parameters: []Parameter{
		{Name: "n", Symbol: "n", Label: "number of trials", Kind: Integer, Default: 10, Valid: Between(1, MaxTrials), Slider: Slider{Min: 1, Max: 500, Step: 1}},
		{Name: "p", Symbol: "p", Label: "probability of success", Kind: Real, Default: 0.5, Valid: OpenUnit(), Slider: Slider{Min: 0.001, Max: 0.999, Step: 0.001}},
	},
	YMax:  1,
	Color: "#0000ff",
}

// Binomial is B(n, p).
type Binomial struct{}

func (Binomial) Spec() *Spec { return &binomialSpec }

// Density is the pmf C(n,k) p^k (1-p)^(n-k), evaluated in log space.
func (Binomial) Density(x float64, p Params) float64 {
	k, ok := count(x)
	n := uint64(p.Int("n"))
	if !ok || k > n {
		return 0
	}
	prob := p["p"]
	logP := numeric.LogCombination(n, k) +
		numeric.XLogY(float64(k), prob) +
		numeric.XLog1pY(float64(n-k), -prob)
	return numeric.ExpProb(logP)
}

func (Binomial) Mean(p Params) Statistic {
	return Finite(p["n"] * p["p"])
}

func (Binomial) Variance(p Params) Statistic {
	return Finite(p["n"] * p["p"] * (1 - p["p"]))
}

func (Binomial) Domain(p Params) Range {
	return integerRange(0, p.Int("n"))
}
