package distribution

var chiSquaredSpec = Spec{
	Kind:    KindChiSquared,
	Name:    "Chi-Squared Distribution",
	Summary: "Sum of the squares of n independent standard normal random variables.",
	Formula: "f(x; n) = x^(n/2 - 1) * e^(-x/2) / (2^(n/2) * Γ(n/2))",
	Moments: "Mean: n, Variance: 2n",
	Support: Continuous,
	Parameters: []Parameter{
		{Name: "df", Symbol: "n", Label: "degrees of freedom", Kind: Real, Default: 1, Valid: Positive(), Slider: Slider{Min: 1, Max: 20, Step: 1}},
	},
	YMax:       0.5,
	Resolution: 2000,
	Color:      "#ff0000",
}

// ChiSquared is χ²(n), the Gamma distribution with shape n/2 and rate 1/2.
type ChiSquared struct{}

func (ChiSquared) Spec() *Spec { return &chiSquaredSpec }

func (ChiSquared) Density(x float64, p Params) float64 {
	return gammaDensity(x, p["df"]/2, 0.5)
}

func (ChiSquared) Mean(p Params) Statistic { return Finite(p["df"]) }

func (ChiSquared) Variance(p Params) Statistic { return Finite(2 * p["df"]) }

func (ChiSquared) Domain(Params) Range { return Range{Min: 0, Max: 20} }
