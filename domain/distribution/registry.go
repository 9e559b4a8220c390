package distribution

import (
	"fmt"

	"distviz/domain/core"
)

// Distribution kinds served by the catalog.
const (
	KindBinomial         core.Kind = "binomial"
	KindPoisson          core.Kind = "poisson"
	KindGeometric        core.Kind = "geometric"
	KindNegativeBinomial core.Kind = "negative_binomial"
	KindHypergeometric   core.Kind = "hypergeometric"
	KindExponential      core.Kind = "exponential"
	KindWeibull          core.Kind = "weibull"
	KindGamma            core.Kind = "gamma"
	KindBeta             core.Kind = "beta"
	KindChiSquared       core.Kind = "chi_squared"
	KindStudentT         core.Kind = "student_t"
	KindF                core.Kind = "f"
	KindLogNormal        core.Kind = "log_normal"
	KindBivariateNormal  core.Kind = "bivariate_normal"
)

var catalog = []Model{
	Binomial{},
	Poisson{},
	Geometric{},
	NegativeBinomial{},
	Hypergeometric{},
	Exponential{},
	Weibull{},
	Gamma{},
	Beta{},
	ChiSquared{},
	StudentT{},
	F{},
	LogNormal{},
	BivariateNormal{},
}

// All returns every model, discrete ones first, in display order.
func All() []Model {
	out := make([]Model, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds the model for a kind.
func Lookup(kind core.Kind) (Model, error) {
	for _, m := range catalog {
		if m.Spec().Kind == kind {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", core.ErrUnknownDistribution, kind)
}
