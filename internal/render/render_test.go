package render

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distviz/domain/core"
	"distviz/domain/distribution"
	"distviz/internal/sampling"
)

var pngMagic = []byte("\x89PNG")

func sampled(t *testing.T, m distribution.Model) (sampling.Series, distribution.Validated) {
	t.Helper()
	v, err := distribution.Validate(m, m.Spec().Defaults())
	require.NoError(t, err)
	return sampling.Sample(v, 0), v
}

func TestRender_UnavailableWithoutContainer(t *testing.T) {
	s, _ := sampled(t, distribution.Binomial{})
	style := StyleFor(distribution.Binomial{}.Spec(), 0)

	err := Render(NewTarget(nil, PNG), s, "caption", "label", style)
	assert.ErrorIs(t, err, ErrRenderUnavailable)
	assert.True(t, core.IsRenderUnavailable(err))

	target := NewTarget(FixedWidth(0), PNG)
	err = Render(target, s, "caption", "label", style)
	assert.ErrorIs(t, err, ErrRenderUnavailable)
	assert.Nil(t, target.Frame(), "no frame committed")
}

func TestRender_SizesToContainer(t *testing.T) {
	s, v := sampled(t, distribution.Binomial{})
	target := NewTarget(FixedWidth(640), PNG)
	require.NoError(t, Render(target, s, distribution.Caption(v), "n = 10, p = 0.50", StyleFor(v.Model().Spec(), 640)))

	w, h := target.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.True(t, bytes.HasPrefix(target.Frame(), pngMagic))

	// a resize signal takes effect on the next pass
	target.Attach(FixedWidth(400))
	require.NoError(t, Render(target, s, "c", "l", StyleFor(v.Model().Spec(), 400)))
	w, h = target.Size()
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)
}

func TestRender_IsIdempotent(t *testing.T) {
	for _, format := range []Format{PNG, SVG} {
		for _, m := range []distribution.Model{distribution.Poisson{}, distribution.Gamma{}, distribution.F{}} {
			s, v := sampled(t, m)
			style := StyleFor(m.Spec(), 500)
			caption := distribution.Caption(v)
			label := distribution.Legend(m.Spec(), v.Params())

			target := NewTarget(FixedWidth(500), format)
			require.NoError(t, Render(target, s, caption, label, style))
			first := target.Frame()
			require.NoError(t, Render(target, s, caption, label, style))
			assert.Equal(t, first, target.Frame(), "%s %s", m.Spec().Kind, format)
		}
	}
}

func TestRender_SVG(t *testing.T) {
	s, v := sampled(t, distribution.StudentT{})
	target := NewTarget(FixedWidth(300), SVG)
	require.NoError(t, Render(target, s, distribution.Caption(v), "n = 1.00", StyleFor(v.Model().Spec(), 300)))
	assert.Contains(t, string(target.Frame()), "<svg")
	assert.Contains(t, string(target.Frame()), "Cauchy")
}

func TestRender_PolesAreClipped(t *testing.T) {
	p := distribution.Params{"alpha": 0.5, "beta": 0.5}
	v, err := distribution.Validate(distribution.Beta{}, p)
	require.NoError(t, err)
	s := sampling.Sample(v, 0)
	require.True(t, math.IsInf(s.Points[0].Y, 1))

	target := NewTarget(FixedWidth(320), PNG)
	require.NoError(t, Render(target, s, distribution.Caption(v), "α = 0.50, β = 0.50", StyleFor(v.Model().Spec(), 320)))
	assert.NotEmpty(t, target.Frame())
}

func TestRender_EmptySeries(t *testing.T) {
	err := Render(NewTarget(FixedWidth(100), PNG), sampling.Series{}, "", "", Style{YMax: 1})
	assert.ErrorIs(t, err, core.ErrRenderFailed)
}

func TestClip(t *testing.T) {
	s := sampling.Series{Points: []sampling.Point{
		{X: 0, Y: math.Inf(1)},
		{X: 1, Y: 0.5},
		{X: 2, Y: 3},
		{X: 3, Y: math.NaN()},
	}}
	xs, ys := clip(s, 2)
	assert.Equal(t, []float64{0, 1, 2, 3}, xs)
	assert.Equal(t, []float64{2, 0.5, 2, 0}, ys)
}

func TestStyleFor(t *testing.T) {
	bars := StyleFor(distribution.Binomial{}.Spec(), 800)
	assert.Equal(t, Bars, bars.Kind)
	assert.Equal(t, "#0000ff", bars.Color)
	assert.Equal(t, captionFontSize, bars.CaptionFontSize)

	line := StyleFor(distribution.ChiSquared{}.Spec(), 300)
	assert.Equal(t, Line, line.Kind)
	assert.Equal(t, narrowCaptionFontSize, line.CaptionFontSize)
	assert.Equal(t, 0.5, line.YMax)
}

func TestStyle_YTop(t *testing.T) {
	s := Style{YMax: 1}
	assert.Equal(t, 1.0, s.yTop(0.4))
	assert.InDelta(t, 2.1, s.yTop(2), 1e-12)
	assert.Equal(t, 10.0, s.yTop(500))
}

func TestRenderSurface(t *testing.T) {
	v, err := distribution.Validate(distribution.BivariateNormal{}, distribution.Params{
		"mu_x": 0, "mu_y": 0, "var_x": 1, "var_y": 2, "rho": 0.7, "x0": 0,
	})
	require.NoError(t, err)
	grid, err := sampling.SampleGrid(v, 40)
	require.NoError(t, err)

	target := NewTarget(FixedWidth(480), PNG)
	jm := v.Model().(distribution.JointModel)
	require.NoError(t, RenderSurface(target, grid, jm.JointCaption(v.Params())))
	assert.True(t, bytes.HasPrefix(target.Frame(), pngMagic))
	w, h := target.Size()
	assert.Equal(t, 480, w)
	assert.Equal(t, 360, h)

	assert.ErrorIs(t, RenderSurface(NewTarget(nil, PNG), grid, ""), ErrRenderUnavailable)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	f, err = ParseFormat(" SVG ")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)
	assert.Equal(t, "image/svg+xml", f.ContentType())
	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestFrame_IsACopy(t *testing.T) {
	target := NewTarget(FixedWidth(10), PNG)
	target.commit([]byte{1, 2, 3})
	f := target.Frame()
	f[0] = 9
	assert.Equal(t, []byte{1, 2, 3}, target.Frame())
}
