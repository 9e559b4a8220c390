package render

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"distviz/domain/core"
	"distviz/internal/sampling"
)

const (
	surfaceColors = 24
	pixelsPerInch = 96
)

// RenderSurface draws a joint density lattice as a heat map.
func RenderSurface(t *Target, grid *sampling.Grid, caption string) error {
	if err := t.resize(); err != nil {
		return err
	}
	if c, r := grid.Dims(); c < 2 || r < 2 {
		return fmt.Errorf("%w: grid of %dx%d", core.ErrRenderFailed, c, r)
	}

	p := plot.New()
	p.Title.Text = caption
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewHeatMap(grid, palette.Heat(surfaceColors, 1)))

	w := vg.Length(t.width) * vg.Inch / pixelsPerInch
	h := vg.Length(t.height) * vg.Inch / pixelsPerInch
	wt, err := p.WriterTo(w, h, string(t.format))
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrRenderFailed, err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("%w: %v", core.ErrRenderFailed, err)
	}
	t.commit(buf.Bytes())
	return nil
}
