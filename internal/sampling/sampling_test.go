package sampling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distviz/domain/distribution"
)

func validated(t *testing.T, m distribution.Model, p distribution.Params) distribution.Validated {
	t.Helper()
	if p == nil {
		p = m.Spec().Defaults()
	}
	v, err := distribution.Validate(m, p)
	require.NoError(t, err)
	return v
}

func TestSample_DiscreteCoversInclusiveDomain(t *testing.T) {
	tests := []struct {
		name   string
		model  distribution.Model
		params distribution.Params
		first  float64
		last   float64
	}{
		{"binomial", distribution.Binomial{}, distribution.Params{"n": 12, "p": 0.3}, 0, 12},
		{"geometric", distribution.Geometric{}, nil, 1, 19},
		{"hypergeometric", distribution.Hypergeometric{}, distribution.Params{"N": 30, "M": 10, "K": 4}, 0, 4},
		{"poisson", distribution.Poisson{}, nil, 0, 19},
		{"negative binomial", distribution.NegativeBinomial{}, nil, 0, 49},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Sample(validated(t, tt.model, tt.params), 0)
			assert.True(t, s.Discrete)
			require.Equal(t, int(tt.last-tt.first)+1, s.Len())
			assert.Equal(t, tt.first, s.Points[0].X)
			assert.Equal(t, tt.last, s.Points[s.Len()-1].X)
			for i, p := range s.Points {
				assert.Equal(t, tt.first+float64(i), p.X)
			}
		})
	}
}

func TestSample_DiscreteAtParameterLimits(t *testing.T) {
	tests := []struct {
		name   string
		model  distribution.Model
		params distribution.Params
	}{
		{"binomial", distribution.Binomial{}, distribution.Params{"n": distribution.MaxTrials, "p": 0.5}},
		{"poisson", distribution.Poisson{}, distribution.Params{"lambda": distribution.MaxRate}},
		{"hypergeometric", distribution.Hypergeometric{}, distribution.Params{
			"N": distribution.MaxTrials, "M": distribution.MaxTrials / 2, "K": distribution.MaxTrials / 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Sample(validated(t, tt.model, tt.params), 0)
			assert.LessOrEqual(t, s.Len(), MaxResolution)
			total := 0.0
			for _, p := range s.YValues() {
				total += p
			}
			// Poisson's window ends at λ + 4√λ and leaves ~3e-5 outside
			assert.InDelta(t, 1.0, total, 1e-4)
		})
	}
}

// unboundedCount has a discrete support far wider than any chart.
type unboundedCount struct{}

var unboundedCountSpec = distribution.Spec{Kind: "unbounded", Support: distribution.Discrete, YMax: 1}

func (unboundedCount) Spec() *distribution.Spec                        { return &unboundedCountSpec }
func (unboundedCount) Density(float64, distribution.Params) float64    { return 0 }
func (unboundedCount) Mean(distribution.Params) distribution.Statistic { return distribution.Finite(0) }
func (unboundedCount) Variance(distribution.Params) distribution.Statistic {
	return distribution.Finite(0)
}
func (unboundedCount) Domain(distribution.Params) distribution.Range {
	return distribution.Range{Min: 0, Max: 1e18}
}

func TestSample_DiscreteSupportIsTruncated(t *testing.T) {
	v := validated(t, unboundedCount{}, distribution.Params{})
	s := Sample(v, 0)
	require.Equal(t, MaxResolution, s.Len())
	assert.Equal(t, 0.0, s.Points[0].X)
	assert.Equal(t, float64(MaxResolution-1), s.Points[s.Len()-1].X)
}

func TestSample_ContinuousResolution(t *testing.T) {
	v := validated(t, distribution.Exponential{}, nil)

	s := Sample(v, 0)
	assert.False(t, s.Discrete)
	assert.Equal(t, 500, s.Len())
	assert.Equal(t, 0.0, s.Points[0].X)
	assert.Equal(t, 5.0, s.Points[s.Len()-1].X)

	assert.Equal(t, 11, Sample(v, 11).Len())
	assert.Equal(t, MinResolution, Sample(v, 1).Len())
	assert.Equal(t, MaxResolution, Sample(v, 1_000_000).Len())

	xs := Sample(v, 11).XValues()
	assert.InDeltaSlice(t, []float64{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 4.5, 5}, xs, 1e-12)
}

func TestSample_IsDeterministic(t *testing.T) {
	for _, m := range distribution.All() {
		v := validated(t, m, nil)
		a := Sample(v, 0)
		b := Sample(v, 0)
		require.Equal(t, a.Len(), b.Len())
		for i := range a.Points {
			assert.Equal(t, math.Float64bits(a.Points[i].X), math.Float64bits(b.Points[i].X))
			assert.Equal(t, math.Float64bits(a.Points[i].Y), math.Float64bits(b.Points[i].Y))
		}
	}
}

func TestSample_NeverNaN(t *testing.T) {
	for _, m := range distribution.All() {
		s := Sample(validated(t, m, nil), 0)
		for _, p := range s.Points {
			assert.False(t, math.IsNaN(p.Y), "%s at %v", m.Spec().Kind, p.X)
		}
	}
}

func TestSummarize_Discrete(t *testing.T) {
	s := Sample(validated(t, distribution.Binomial{}, distribution.Params{"n": 20, "p": 0.25}), 0)
	sum := Summarize(s)
	assert.Equal(t, 21, sum.Points)
	assert.InDelta(t, 1.0, sum.Mass, 1e-9)
	assert.InDelta(t, 5.0, sum.Mean, 1e-9)
	assert.Zero(t, sum.Poles)
	assert.Greater(t, sum.MaxY, 0.19)
}

// TestSummarize_ContinuousIntegratesToOne checks densities whose display
// window holds practically all of the mass.
func TestSummarize_ContinuousIntegratesToOne(t *testing.T) {
	tests := []struct {
		name   string
		model  distribution.Model
		params distribution.Params
		mean   float64
	}{
		{"exponential", distribution.Exponential{}, distribution.Params{"lambda": 3}, 1.0 / 3},
		{"gamma", distribution.Gamma{}, distribution.Params{"alpha": 3, "beta": 1}, 3},
		{"beta", distribution.Beta{}, distribution.Params{"alpha": 2, "beta": 3}, 0.4},
		{"chi-squared", distribution.ChiSquared{}, distribution.Params{"df": 4}, 4},
		{"weibull", distribution.Weibull{}, distribution.Params{"k": 2, "lambda": 1}, math.Sqrt(math.Pi) / 2},
		{"log-normal", distribution.LogNormal{}, distribution.Params{"mu": 0, "sigma": 0.3}, math.Exp(0.045)},
		{"conditional normal", distribution.BivariateNormal{}, distribution.Params{"mu_x": 0, "mu_y": 0.5, "var_x": 1, "var_y": 0.25, "rho": 0, "x0": 0}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sum := Summarize(Sample(validated(t, tt.model, tt.params), 2000))
			assert.InDelta(t, 1.0, sum.Mass, 5e-3)
			assert.InDelta(t, tt.mean, sum.Mean, 2e-2)
		})
	}
}

func TestSummarize_SkipsPoles(t *testing.T) {
	s := Sample(validated(t, distribution.Gamma{}, distribution.Params{"alpha": 0.5, "beta": 1}), 0)
	require.True(t, math.IsInf(s.Points[0].Y, 1))
	sum := Summarize(s)
	assert.Equal(t, 1, sum.Poles)
	assert.False(t, math.IsInf(sum.MaxY, 0))
	assert.False(t, math.IsNaN(sum.Mass))
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(Series{}))
}

func TestSampleGrid(t *testing.T) {
	v := validated(t, distribution.BivariateNormal{}, nil)
	g, err := SampleGrid(v, 41)
	require.NoError(t, err)

	c, r := g.Dims()
	assert.Equal(t, 41, c)
	assert.Equal(t, 41, r)
	assert.Equal(t, -3.0, g.X(0))
	assert.Equal(t, 3.0, g.Y(r-1))
	// the lattice centre is the origin, the mode of the standard joint normal
	assert.InDelta(t, 1/(2*math.Pi), g.Z(20, 20), 1e-12)
	assert.InDelta(t, g.Z(20, 20), g.Max(), 1e-15)

	_, err = SampleGrid(validated(t, distribution.Binomial{}, nil), 10)
	assert.Error(t, err)
}

func TestGridResolution(t *testing.T) {
	joint := distribution.BivariateNormal{}.Spec()
	assert.Equal(t, 301, GridResolution(joint, 0))
	assert.Equal(t, 41, GridResolution(joint, 41))
	assert.Equal(t, MinResolution, GridResolution(joint, 1))
	assert.Equal(t, MaxGridResolution, GridResolution(joint, 100_000))
	assert.Equal(t, DefaultGridResolution, GridResolution(distribution.Binomial{}.Spec(), 0))

	// the conditional curve keeps its own, finer resolution
	assert.Equal(t, 1000, Resolution(joint, 0))
}

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{2}, Linspace(2, 4, 1))
	assert.Equal(t, []float64{2, 3, 4}, Linspace(2, 4, 3))
}
