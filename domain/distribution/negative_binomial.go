package distribution

import (
	"distviz/domain/numeric"
)

var negativeBinomialSpec = Spec{
	Kind:    KindNegativeBinomial,
	Name:    "Negative Binomial Distribution",
	Summary: "Number of failures before a specified number of successes.",
	Formula: "P(X=k) = C(r+k-1, k) * (1-p)^k * p^r",
	Moments: "Mean: r(1-p)/p, Variance: r(1-p)/p²",
	Support: Discrete,
	Parameters: []Parameter{
		{Name: "p", Symbol: "p", Label: "probability of success", Kind: Real, Default: 0.5, Valid: OpenUnit(), Slider: Slider{Min: 0.01, Max: 0.99, Step: 0.01}},
		{Name: "r", Symbol: "r", Label: "required successes", Kind: Integer, Default: 3, Valid: Between(1, MaxTrials), Slider: Slider{Min: 1, Max: 10, Step: 1}},
	},
	YMax:  0.3,
	Color: "#00ffff",
}

// NegativeBinomial is NB(r, p) over the failure count k ≥ 0.
type NegativeBinomial struct{}

func (NegativeBinomial) Spec() *Spec { return &negativeBinomialSpec }

func (NegativeBinomial) Density(x float64, p Params) float64 {
	k, ok := count(x)
	if !ok {
		return 0
	}
	r := uint64(p.Int("r"))
	prob := p["p"]
	if r == 0 {
		// Zero required successes: all mass sits on k = 0.
		if k == 0 {
			return 1
		}
		return 0
	}
	logP := numeric.LogCombination(r+k-1, k) +
		numeric.XLog1pY(float64(k), -prob) +
		numeric.XLogY(float64(r), prob)
	return numeric.ExpProb(logP)
}

func (NegativeBinomial) Mean(p Params) Statistic {
	return Finite(p["r"] * (1 - p["p"]) / p["p"])
}

func (NegativeBinomial) Variance(p Params) Statistic {
	prob := p["p"]
	return Finite(p["r"] * (1 - prob) / (prob * prob))
}

func (NegativeBinomial) Domain(Params) Range { return integerRange(0, 49) }
