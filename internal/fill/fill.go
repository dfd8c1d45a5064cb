package fill

import (
	"fmt"
	"time"

	"github.com/banshee-data/surface.report/internal/raster"
	"github.com/banshee-data/surface.report/internal/spatial"
)

// 8-connected neighbourhood offsets, clockwise from the upper-right.
var (
	neighbourDX = [8]int{1, 1, 1, 0, -1, -1, -1, 0}
	neighbourDY = [8]int{-1, 0, 1, 1, 1, 0, -1, -1}
)

// ProgressFunc receives advisory progress updates. It is invoked at row
// granularity, only when the whole-number percentage changes.
type ProgressFunc func(stage string, pct int)

// Stage names passed to ProgressFunc.
const (
	StageBoundary = "locating hole boundary cells"
	StageFill     = "interpolating data holes"
)

// Options configures a gap-fill run.
type Options struct {
	// FilterSize is the search radius in grid-cell units bounding which
	// boundary samples may influence a hole. Even values are coerced up
	// to the next odd number. Default 11.
	FilterSize int

	// Progress, when non-nil, receives advisory progress updates.
	Progress ProgressFunc
}

// DefaultOptions returns the standard run configuration.
func DefaultOptions() Options {
	return Options{FilterSize: 11}
}

// Validate rejects unusable configurations.
func (o Options) Validate() error {
	if o.FilterSize < 1 {
		return fmt.Errorf("fill: filter size must be a positive integer, got %d", o.FilterSize)
	}
	return nil
}

// effectiveFilterSize coerces even filter sizes up to odd.
func (o Options) effectiveFilterSize() int {
	if o.FilterSize%2 == 0 {
		return o.FilterSize + 1
	}
	return o.FilterSize
}

// Run fills the nodata holes in input and returns a new output grid of the
// same dimensions and georeferencing, together with run statistics. The
// input grid is never mutated.
//
// Holes with no boundary sample within the search radius are re-emitted as
// nodata and counted in Summary.UnfilledCells.
func Run(input *raster.Grid, opts Options) (*raster.Grid, *Summary, error) {
	if input == nil {
		return nil, nil, fmt.Errorf("fill: nil input grid")
	}
	if err := opts.Validate(); err != nil {
		return nil, nil, err
	}

	start := time.Now()
	radius := opts.effectiveFilterSize()
	nodata := input.Nodata

	frs := extractBoundary(input, float64(radius), opts.Progress)

	output := raster.NewGridLike(input)
	sum := &Summary{FilterSize: radius, BoundaryCells: frs.Len()}

	var filled []float64
	lastPct := -1
	for row := 0; row < input.Rows; row++ {
		for col := 0; col < input.Cols; col++ {
			v := input.Value(row, col)
			if v != nodata {
				output.SetValue(row, col, v)
				continue
			}
			sum.HoleCells++
			est, ok := idwEstimate(frs.Search(float64(col), float64(row)))
			if !ok {
				output.SetValue(row, col, nodata)
				sum.UnfilledCells++
				continue
			}
			output.SetValue(row, col, est)
			filled = append(filled, est)
			sum.FilledCells++
		}
		reportProgress(opts.Progress, StageFill, row, input.Rows, &lastPct)
	}

	sum.addFilledStats(filled)
	sum.Elapsed = time.Since(start)
	return output, sum, nil
}

// extractBoundary scans every valid cell and inserts those with at least
// one nodata 8-neighbour into a fresh fixed-radius index, keyed by grid
// coordinates (x = col, y = row). Out-of-bounds neighbour reads yield the
// nodata sentinel, so valid edge cells always classify as boundary.
func extractBoundary(input *raster.Grid, radius float64, progress ProgressFunc) *spatial.FixedRadiusSearch {
	frs := spatial.NewFixedRadiusSearch(radius)
	nodata := input.Nodata
	lastPct := -1
	for row := 0; row < input.Rows; row++ {
		for col := 0; col < input.Cols; col++ {
			v := input.Value(row, col)
			if v == nodata {
				continue
			}
			for i := 0; i < 8; i++ {
				if input.Value(row+neighbourDY[i], col+neighbourDX[i]) == nodata {
					frs.Insert(float64(col), float64(row), v)
					break
				}
			}
		}
		reportProgress(progress, StageBoundary, row, input.Rows, &lastPct)
	}
	return frs
}

// idwEstimate combines boundary samples with inverse-square-distance
// weights. Samples at zero distance are excluded from both sums: a query
// point coinciding exactly with a stored boundary point is a measurement
// artifact, not a certainty, and would otherwise divide by zero. The
// second return is false when no positive-distance sample exists.
func idwEstimate(results []spatial.SearchResult) (float64, bool) {
	var sumWeights, sumWeighted float64
	for _, r := range results {
		if r.Distance <= 0 {
			continue
		}
		w := 1.0 / (r.Distance * r.Distance)
		sumWeights += w
		sumWeighted += r.Value * w
	}
	if sumWeights == 0 {
		return 0, false
	}
	return sumWeighted / sumWeights, true
}

func reportProgress(progress ProgressFunc, stage string, row, rows int, lastPct *int) {
	if progress == nil || rows < 2 {
		return
	}
	pct := int(100.0 * float64(row) / float64(rows-1))
	if pct != *lastPct {
		progress(stage, pct)
		*lastPct = pct
	}
}
