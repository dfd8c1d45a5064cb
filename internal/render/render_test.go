package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/surface.report/internal/raster"
)

func TestWritePNG(t *testing.T) {
	t.Parallel()
	g := raster.NewGrid(8, 10, -9999)
	for i := range g.Data {
		g.Data[i] = float64(i % 17)
	}
	g.SetValue(3, 3, g.Nodata)

	path := filepath.Join(t.TempDir(), "surface.png")
	require.NoError(t, WritePNG(path, g, "test surface"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWritePNG_AllNodata(t *testing.T) {
	t.Parallel()
	g := raster.NewGrid(4, 4, -9999)
	path := filepath.Join(t.TempDir(), "empty.png")
	assert.NoError(t, WritePNG(path, g, "empty"))
}

func TestSurfaceGrid_FlipsRows(t *testing.T) {
	t.Parallel()
	g := raster.NewGrid(2, 2, -9999)
	g.SetValue(0, 0, 1) // top-left of the raster
	g.SetValue(1, 0, 2) // bottom-left

	s := newSurfaceGrid(g)
	c, r := s.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, r)
	// plot row 0 is the bottom of the image.
	assert.Equal(t, 2.0, s.Z(0, 0))
	assert.Equal(t, 1.0, s.Z(0, 1))
}

func TestSurfaceGrid_NodataRendersAtMin(t *testing.T) {
	t.Parallel()
	g := raster.NewGrid(1, 3, -9999)
	g.SetValue(0, 0, 4)
	g.SetValue(0, 2, 9)

	s := newSurfaceGrid(g)
	assert.Equal(t, 4.0, s.Z(1, 0))
}
