package fill

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the statistics of one gap-fill run.
type Summary struct {
	// FilterSize is the effective search radius after odd coercion.
	FilterSize int `json:"filter_size"`

	HoleCells     int `json:"hole_cells"`
	BoundaryCells int `json:"boundary_cells"`
	FilledCells   int `json:"filled_cells"`

	// UnfilledCells counts holes with no boundary sample in range; these
	// remain nodata in the output.
	UnfilledCells int `json:"unfilled_cells"`

	// Distribution of the interpolated estimates. Zero when nothing was
	// filled; StdDev is zero for fewer than two estimates.
	FilledMean   float64 `json:"filled_mean"`
	FilledStdDev float64 `json:"filled_stddev"`
	FilledMin    float64 `json:"filled_min"`
	FilledMax    float64 `json:"filled_max"`

	Elapsed time.Duration `json:"elapsed_ns"`
}

// addFilledStats computes the estimate distribution from the filled
// values.
func (s *Summary) addFilledStats(filled []float64) {
	if len(filled) == 0 {
		return
	}
	s.FilledMean = stat.Mean(filled, nil)
	if len(filled) > 1 {
		s.FilledStdDev = stat.StdDev(filled, nil)
	}
	s.FilledMin = floats.Min(filled)
	s.FilledMax = floats.Max(filled)
}
