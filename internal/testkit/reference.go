package testkit

import (
	"gonum.org/v1/gonum/stat/distuv"

	"distviz/domain/core"
	"distviz/domain/distribution"
)

// Reference is an independent implementation a model is checked against
type Reference interface {
	Prob(x float64) float64
	Mean() float64
	Variance() float64
}

// ReferenceFor returns the gonum distribution matching kind and p. Kinds
// gonum does not provide report false.
func ReferenceFor(kind core.Kind, p distribution.Params) (Reference, bool) {
	switch kind {
	case distribution.KindBinomial:
		return distuv.Binomial{N: p["n"], P: p["p"]}, true
	case distribution.KindPoisson:
		return distuv.Poisson{Lambda: p["lambda"]}, true
	case distribution.KindExponential:
		return distuv.Exponential{Rate: p["lambda"]}, true
	case distribution.KindWeibull:
		return distuv.Weibull{K: p["k"], Lambda: p["lambda"]}, true
	case distribution.KindGamma:
		return distuv.Gamma{Alpha: p["alpha"], Beta: p["beta"]}, true
	case distribution.KindBeta:
		return distuv.Beta{Alpha: p["alpha"], Beta: p["beta"]}, true
	case distribution.KindChiSquared:
		return distuv.ChiSquared{K: p["df"]}, true
	case distribution.KindStudentT:
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: p["df"]}, true
	case distribution.KindF:
		return distuv.F{D1: p["df1"], D2: p["df2"]}, true
	case distribution.KindLogNormal:
		return distuv.LogNormal{Mu: p["mu"], Sigma: p["sigma"]}, true
	}
	return nil, false
}
