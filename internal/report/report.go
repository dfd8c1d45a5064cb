// Package report renders a self-contained HTML report for a completed
// gap-fill run: the run parameters plus go-echarts heatmaps of the input
// and filled surfaces.
package report

import (
	"fmt"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/surface.report/internal/fill"
	"github.com/banshee-data/surface.report/internal/raster"
)

// maxHeatmapPoints bounds the number of cells rendered per chart; larger
// grids are downsampled by stride to keep the page responsive.
const maxHeatmapPoints = 20000

// viridis-like ramp, matching the org's grid visualisations.
var heatmapColors = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// WriteReport writes an HTML report for one run to path.
func WriteReport(path string, input, filled *raster.Grid, sum *fill.Summary, runID string) error {
	subtitle := fmt.Sprintf(
		"run=%s filter=%d holes=%d filled=%d unfilled=%d elapsed=%s",
		runID, sum.FilterSize, sum.HoleCells, sum.FilledCells, sum.UnfilledCells, sum.Elapsed,
	)

	inputChart := heatmapChart("Input surface", subtitle, input)
	filledChart := heatmapChart("Filled surface", subtitle, filled)

	page := components.NewPage()
	page.AddCharts(inputChart, filledChart)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := page.Render(f); err != nil {
		f.Close()
		return fmt.Errorf("render report %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// heatmapChart builds one grid heatmap. Nodata cells are omitted, so holes
// show as gaps in the input chart and any unfilled holes remain visible in
// the output chart.
func heatmapChart(title, subtitle string, g *raster.Grid) *charts.HeatMap {
	stride := 1
	if cells := g.Rows * g.Cols; cells > maxHeatmapPoints {
		stride = int(math.Ceil(math.Sqrt(float64(cells) / float64(maxHeatmapPoints))))
	}

	var (
		data     []opts.HeatMapData
		min      = math.Inf(1)
		max      = math.Inf(-1)
		xLabels  []string
		yLabels  []string
		haveData bool
	)
	for col := 0; col < g.Cols; col += stride {
		xLabels = append(xLabels, fmt.Sprintf("%d", col))
	}
	for row := 0; row < g.Rows; row += stride {
		// Row 0 is the top of the raster; flip so north is up.
		yLabels = append(yLabels, fmt.Sprintf("%d", g.Rows-1-row))
	}

	for yi, row := 0, 0; row < g.Rows; yi, row = yi+1, row+stride {
		for xi, col := 0, 0; col < g.Cols; xi, col = xi+1, col+stride {
			v := g.Value(row, col)
			if v == g.Nodata {
				continue
			}
			haveData = true
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			data = append(data, opts.HeatMapData{
				Value: [3]interface{}{xi, len(yLabels) - 1 - yi, v},
			})
		}
	}
	if !haveData {
		min, max = 0, 1
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "surface.report gap-fill report", Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Name: "column"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yLabels, Name: "row"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        float32(min),
			Max:        float32(max),
			InRange:    &opts.VisualMapInRange{Color: heatmapColors},
		}),
	)
	hm.SetXAxis(xLabels).AddSeries("elevation", data)
	return hm
}
