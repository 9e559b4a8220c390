// Package render draws sampled series onto an owned Target. Every pass sizes
// the target from its container, draws into a fresh buffer and commits the
// encoded frame, so nothing carries over between renders.
package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"distviz/domain/core"
	"distviz/internal/sampling"
)

// Render draws series on t with caption as title and label as the legend
// entry. Returns ErrRenderUnavailable when the container has no width.
func Render(t *Target, series sampling.Series, caption, label string, style Style) error {
	if err := t.resize(); err != nil {
		return err
	}
	if series.Len() == 0 {
		return fmt.Errorf("%w: empty series", core.ErrRenderFailed)
	}

	summary := sampling.Summarize(series)
	top := style.yTop(summary.MaxY)
	xs, ys := clip(series, top)

	color := drawing.ColorFromHex(strings.TrimPrefix(style.Color, "#"))
	var plotted chart.Series
	line := chart.ContinuousSeries{
		Name:    label,
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: color,
			StrokeWidth: 2,
			FillColor:   color.WithAlpha(48),
		},
	}
	if style.Kind == Bars {
		plotted = chart.HistogramSeries{
			Name: label,
			Style: chart.Style{
				StrokeColor: color,
				StrokeWidth: 1,
				FillColor:   color.WithAlpha(160),
			},
			InnerSeries: line,
		}
	} else {
		plotted = line
	}

	lo, hi := xs[0], xs[len(xs)-1]
	if style.Kind == Bars {
		lo, hi = lo-0.5, hi+0.5
	}

	ch := chart.Chart{
		Title:      caption,
		TitleStyle: chart.Style{FontSize: style.CaptionFontSize},
		Width:      t.width,
		Height:     t.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			Style: chart.Style{FontSize: style.CaptionFontSize - 2},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: top},
			Style: chart.Style{FontSize: style.CaptionFontSize - 2},
		},
		Series: []chart.Series{plotted},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	provider := chart.PNG
	if t.format == SVG {
		provider = chart.SVG
	}
	if err := ch.Render(provider, &buf); err != nil {
		return fmt.Errorf("%w: %v", core.ErrRenderFailed, err)
	}
	t.commit(buf.Bytes())
	return nil
}

// clip keeps every y inside [0, top]: poles and overshoot are flattened to
// the ceiling, NaN is drawn as 0.
func clip(series sampling.Series, top float64) (xs, ys []float64) {
	xs = make([]float64, series.Len())
	ys = make([]float64, series.Len())
	for i, p := range series.Points {
		xs[i] = p.X
		switch {
		case math.IsNaN(p.Y) || p.Y < 0:
			ys[i] = 0
		case p.Y > top:
			ys[i] = top
		default:
			ys[i] = p.Y
		}
	}
	return xs, ys
}
