// Package raster provides in-memory storage and Esri ASCII Grid I/O for
// regularly-gridded surfaces with a nodata sentinel.
//
// Responsibilities: the Grid type, bounds-tolerant cell access, output grid
// allocation, and provenance metadata propagation.
//
// Out-of-bounds reads return the nodata sentinel rather than failing. The
// gap-fill boundary scan depends on this: edge cells see nodata beyond the
// grid and classify as boundary cells without any special casing.
package raster

// Grid is a row-major 2D surface of float64 cell values. Every cell holds
// either a measurement or exactly the Nodata sentinel; NaN is never stored.
type Grid struct {
	Rows int
	Cols int

	// Nodata is the sentinel marking missing cells.
	Nodata float64

	// Georeferencing header, carried through from input to output.
	XLLCorner float64
	YLLCorner float64
	CellSize  float64

	// Data is the flat backing slice, idx = row*Cols + col.
	Data []float64

	metadata []string
}

// NewGrid allocates a grid with every cell initialised to nodata.
func NewGrid(rows, cols int, nodata float64) *Grid {
	g := &Grid{
		Rows:     rows,
		Cols:     cols,
		Nodata:   nodata,
		CellSize: 1,
		Data:     make([]float64, rows*cols),
	}
	for i := range g.Data {
		g.Data[i] = nodata
	}
	return g
}

// NewGridLike allocates an all-nodata grid with the same dimensions,
// sentinel, and georeferencing as src. Used for output surfaces.
func NewGridLike(src *Grid) *Grid {
	g := NewGrid(src.Rows, src.Cols, src.Nodata)
	g.XLLCorner = src.XLLCorner
	g.YLLCorner = src.YLLCorner
	g.CellSize = src.CellSize
	return g
}

// Value returns the cell value at (row, col), or the nodata sentinel for
// any out-of-bounds coordinate. It never panics.
func (g *Grid) Value(row, col int) float64 {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return g.Nodata
	}
	return g.Data[row*g.Cols+col]
}

// SetValue writes v at (row, col). Out-of-bounds writes are ignored.
func (g *Grid) SetValue(row, col int, v float64) {
	if row < 0 || row >= g.Rows || col < 0 || col >= g.Cols {
		return
	}
	g.Data[row*g.Cols+col] = v
}

// AddMetadataEntry appends a human-readable provenance line. Entries are
// written as trailing comment lines by WriteASCII and round-tripped by
// ReadASCII.
func (g *Grid) AddMetadataEntry(entry string) {
	g.metadata = append(g.metadata, entry)
}

// MetadataEntries returns the provenance lines in insertion order.
func (g *Grid) MetadataEntries() []string {
	return g.metadata
}
