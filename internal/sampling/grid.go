package sampling

import (
	"fmt"

	"distviz/domain/distribution"
)

// Grid is a regular lattice of joint density values. Z is indexed [row][col]
// with rows along y and columns along x. It satisfies gonum plot's GridXYZ.
type Grid struct {
	Xs []float64
	Ys []float64
	Zs [][]float64
}

// Dims returns the number of columns and rows.
func (g *Grid) Dims() (c, r int) { return len(g.Xs), len(g.Ys) }

// Z returns the density at column c, row r.
func (g *Grid) Z(c, r int) float64 { return g.Zs[r][c] }

// X returns the x coordinate of column c.
func (g *Grid) X(c int) float64 { return g.Xs[c] }

// Y returns the y coordinate of row r.
func (g *Grid) Y(r int) float64 { return g.Ys[r] }

// Max returns the largest value on the lattice.
func (g *Grid) Max() float64 {
	max := 0.0
	for _, row := range g.Zs {
		for _, z := range row {
			if z > max {
				max = z
			}
		}
	}
	return max
}

// GridResolution resolves the lattice size per axis the way Resolution does
// for series, falling back to the spec's GridResolution and clamping to
// [MinResolution, MaxGridResolution].
func GridResolution(spec *distribution.Spec, requested int) int {
	n := requested
	if n <= 0 {
		n = spec.GridResolution
	}
	if n <= 0 {
		n = DefaultGridResolution
	}
	switch {
	case n < MinResolution:
		n = MinResolution
	case n > MaxGridResolution:
		n = MaxGridResolution
	}
	return n
}

// SampleGrid evaluates a joint model over its window on a resolution ×
// resolution lattice.
func SampleGrid(v distribution.Validated, resolution int) (*Grid, error) {
	jm, ok := v.Model().(distribution.JointModel)
	if !ok {
		return nil, fmt.Errorf("%s has no joint density", v.Model().Spec().Kind)
	}
	p := v.Params()
	n := GridResolution(jm.Spec(), resolution)
	xr, yr := jm.JointWindow(p)

	g := &Grid{
		Xs: Linspace(xr.Min, xr.Max, n),
		Ys: Linspace(yr.Min, yr.Max, n),
		Zs: make([][]float64, n),
	}
	for r, y := range g.Ys {
		row := make([]float64, n)
		for c, x := range g.Xs {
			row[c] = jm.Joint(x, y, p)
		}
		g.Zs[r] = row
	}
	return g, nil
}
