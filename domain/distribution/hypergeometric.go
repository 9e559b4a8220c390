package distribution

import (
	"fmt"

	"distviz/domain/numeric"
)

var hypergeometricSpec = Spec{
	Kind:    KindHypergeometric,
	Name:    "Hypergeometric Distribution",
	Summary: "Number of successes in a sequence of draws without replacement.",
	Formula: "P(X=x) = C(M,x) * C(N-M,K-x) / C(N,K)",
	Moments: "Mean: M * K / N, Variance: M * (N-M) * K * (N-K) / N^2 / (N-1)",
	Support: Discrete,
	Parameters: []Parameter{
		{Name: "N", Symbol: "N", Label: "population size", Kind: Integer, Default: 50, Valid: Between(1, MaxTrials), Slider: Slider{Min: 1, Max: 100, Step: 1}},
		{Name: "M", Symbol: "M", Label: "success states in the population", Kind: Integer, Default: 20, Valid: Between(0, MaxTrials), Slider: Slider{Min: 0, Max: 100, Step: 1}},
		{Name: "K", Symbol: "K", Label: "number of draws", Kind: Integer, Default: 10, Valid: Between(0, MaxTrials), Slider: Slider{Min: 0, Max: 100, Step: 1}},
	},
	// N ≥ M ≥ K: setting N clamps M, then K against both.
	Bounds: []Bound{
		{Param: "M", AtMost: "N"},
		{Param: "K", AtMost: "N"},
		{Param: "K", AtMost: "M"},
	},
	YMax:  1,
	Color: "#00ff00",
}

// Hypergeometric is H(N, M, K): successes among K draws from N items of which
// M are successes.
type Hypergeometric struct{}

func (Hypergeometric) Spec() *Spec { return &hypergeometricSpec }

func (Hypergeometric) Density(x float64, p Params) float64 {
	k, ok := count(x)
	if !ok {
		return 0
	}
	n, m, draws := uint64(p.Int("N")), uint64(p.Int("M")), uint64(p.Int("K"))
	if m > n || draws > n || k > m || k > draws || draws-k > n-m {
		return 0
	}
	logP := numeric.LogCombination(m, k) +
		numeric.LogCombination(n-m, draws-k) -
		numeric.LogCombination(n, draws)
	return numeric.ExpProb(logP)
}

func (Hypergeometric) Mean(p Params) Statistic {
	return Finite(p["K"] * p["M"] / p["N"])
}

// Variance is K M (N-M) (N-K) / (N² (N-1)); the N = 1 population leaves the
// denominator at zero and is reported as undefined.
func (Hypergeometric) Variance(p Params) Statistic {
	n, m, k := p["N"], p["M"], p["K"]
	if n <= 1 {
		return Undefined()
	}
	return Finite(k * m * (n - m) * (n - k) / (n * n * (n - 1)))
}

func (Hypergeometric) Domain(p Params) Range { return integerRange(0, p.Int("K")) }

func (Hypergeometric) Caption(p Params, mean, variance Statistic) string {
	return fmt.Sprintf("Hypergeometric Distribution (N = %d, M = %d, K = %d), Mean: %s, Variance: %s",
		p.Int("N"), p.Int("M"), p.Int("K"), mean, variance)
}
