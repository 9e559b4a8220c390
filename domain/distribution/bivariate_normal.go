package distribution

import (
	"fmt"
	"math"
)

var bivariateNormalSpec = Spec{
	Kind:    KindBivariateNormal,
	Name:    "Bivariate Normal Distribution",
	Summary: "Joint behavior of two normally distributed random variables, and the distribution of Y once X is observed.",
	Formula: "f(y | x₀) = N(μy + ρ(σy/σx)(x₀ - μx), σy²(1 - ρ²))",
	Moments: "Conditional Mean: μy + ρ(σy/σx)(x₀ - μx), Conditional Variance: σy²(1 - ρ²)",
	Support: Continuous,
	Parameters: []Parameter{
		{Name: "mu_x", Symbol: "μx", Label: "mean of X", Kind: Real, Default: 0, Valid: AnyReal(), Slider: Slider{Min: -3, Max: 3, Step: 0.1}},
		{Name: "mu_y", Symbol: "μy", Label: "mean of Y", Kind: Real, Default: 0, Valid: AnyReal(), Slider: Slider{Min: -3, Max: 3, Step: 0.1}},
		{Name: "var_x", Symbol: "σx²", Label: "variance of X", Kind: Real, Default: 1, Valid: Positive(), Slider: Slider{Min: 0.1, Max: 3, Step: 0.1}},
		{Name: "var_y", Symbol: "σy²", Label: "variance of Y", Kind: Real, Default: 1, Valid: Positive(), Slider: Slider{Min: 0.1, Max: 3, Step: 0.1}},
		{Name: "rho", Symbol: "ρ", Label: "correlation", Kind: Real, Default: 0,
			Valid: Interval{Min: -1, Max: 1, MinOpen: true, MaxOpen: true}, Slider: Slider{Min: -0.99, Max: 0.99, Step: 0.01}},
		{Name: "x0", Symbol: "x₀", Label: "conditioning value of X", Kind: Real, Default: 0, Valid: AnyReal(), Slider: Slider{Min: -3, Max: 3, Step: 0.1}},
	},
	YMax:           1,
	Resolution:     1000,
	GridResolution: 301,
	Color:          "#ff0000",
}

// BivariateNormal is the joint normal of (X, Y). As a one-dimensional Model it
// is the conditional distribution of Y given X = x₀.
type BivariateNormal struct{}

func (BivariateNormal) Spec() *Spec { return &bivariateNormalSpec }

// Conditional returns the mean and variance of Y | X = x₀.
func (BivariateNormal) Conditional(p Params) (mean, variance float64) {
	rho := p["rho"]
	mean = p["mu_y"] + rho*math.Sqrt(p["var_y"]/p["var_x"])*(p["x0"]-p["mu_x"])
	variance = p["var_y"] * (1 - rho*rho)
	return mean, variance
}

func (b BivariateNormal) Density(y float64, p Params) float64 {
	mean, variance := b.Conditional(p)
	z := (y - mean) / math.Sqrt(variance)
	return math.Exp(-0.5*z*z) / math.Sqrt(2*math.Pi*variance)
}

func (b BivariateNormal) Mean(p Params) Statistic {
	mean, _ := b.Conditional(p)
	return Finite(mean)
}

func (b BivariateNormal) Variance(p Params) Statistic {
	_, variance := b.Conditional(p)
	return Finite(variance)
}

func (BivariateNormal) Domain(Params) Range { return Range{Min: -3, Max: 3} }

func (BivariateNormal) Caption(p Params, mean, variance Statistic) string {
	return fmt.Sprintf("Conditional Distribution of Y given X = %.2f, Mean: %s, Variance: %s", p["x0"], mean, variance)
}

// Joint is the bivariate normal density at (x, y).
func (BivariateNormal) Joint(x, y float64, p Params) float64 {
	sx, sy, rho := math.Sqrt(p["var_x"]), math.Sqrt(p["var_y"]), p["rho"]
	z := (x - p["mu_x"]) / sx
	w := (y - p["mu_y"]) / sy
	oneMinusRho2 := 1 - rho*rho
	q := (z*z - 2*rho*z*w + w*w) / oneMinusRho2
	return math.Exp(-0.5*q) / (2 * math.Pi * sx * sy * math.Sqrt(oneMinusRho2))
}

func (BivariateNormal) JointWindow(Params) (Range, Range) {
	return Range{Min: -3, Max: 3}, Range{Min: -3, Max: 3}
}

func (BivariateNormal) JointCaption(p Params) string {
	return fmt.Sprintf("Bivariate Normal Distribution (ρ = %.2f)", p["rho"])
}
