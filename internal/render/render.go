// Package render draws a grid surface to a PNG heatmap with gonum/plot,
// for quick visual inspection of a fill without a browser.
package render

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/surface.report/internal/raster"
)

// surfaceGrid adapts a raster.Grid to plotter.GridXYZ. Nodata cells are
// rendered at the grid's minimum valid value so holes read as the darkest
// band of the palette.
type surfaceGrid struct {
	g   *raster.Grid
	min float64
}

func newSurfaceGrid(g *raster.Grid) surfaceGrid {
	min := math.Inf(1)
	for _, v := range g.Data {
		if v != g.Nodata && v < min {
			min = v
		}
	}
	if math.IsInf(min, 1) {
		min = 0
	}
	return surfaceGrid{g: g, min: min}
}

func (s surfaceGrid) Dims() (c, r int) { return s.g.Cols, s.g.Rows }

func (s surfaceGrid) Z(c, r int) float64 {
	// plot's y axis grows upward; raster row 0 is the top.
	v := s.g.Value(s.g.Rows-1-r, c)
	if v == s.g.Nodata {
		return s.min
	}
	return v
}

func (s surfaceGrid) X(c int) float64 { return float64(c) }
func (s surfaceGrid) Y(r int) float64 { return float64(r) }

// WritePNG renders the grid as a heatmap PNG at path.
func WritePNG(path string, g *raster.Grid, title string) error {
	h := plotter.NewHeatMap(newSurfaceGrid(g), palette.Heat(16, 1))

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row"
	p.Add(h)

	width := 6 * vg.Inch
	height := width * vg.Length(g.Rows) / vg.Length(g.Cols)
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("render png %s: %w", path, err)
	}
	return nil
}
