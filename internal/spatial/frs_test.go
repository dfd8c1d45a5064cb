package spatial

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFixedRadiusSearch_RejectsNonPositiveRadius(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewFixedRadiusSearch(0) })
	assert.Panics(t, func() { NewFixedRadiusSearch(-3) })
}

func TestSearch_Empty(t *testing.T) {
	t.Parallel()
	frs := NewFixedRadiusSearch(5)
	assert.Empty(t, frs.Search(0, 0))
	assert.Equal(t, 0, frs.Len())
}

func TestSearch_RadiusInclusive(t *testing.T) {
	t.Parallel()
	frs := NewFixedRadiusSearch(5)
	frs.Insert(3, 4, 10) // distance 5 from origin, exactly the radius
	frs.Insert(4, 4, 20) // distance ~5.657, out of range

	results := frs.Search(0, 0)
	require.Len(t, results, 1)
	assert.Equal(t, 10.0, results[0].Value)
	assert.InDelta(t, 5.0, results[0].Distance, 1e-12)
}

func TestSearch_ZeroDistanceMatch(t *testing.T) {
	t.Parallel()
	frs := NewFixedRadiusSearch(2)
	frs.Insert(7, 7, 3)

	results := frs.Search(7, 7)
	require.Len(t, results, 1)
	assert.Equal(t, 0.0, results[0].Distance)
}

func TestSearch_DuplicatesPermitted(t *testing.T) {
	t.Parallel()
	frs := NewFixedRadiusSearch(2)
	frs.Insert(1, 1, 5)
	frs.Insert(1, 1, 6)

	results := frs.Search(1, 2)
	require.Len(t, results, 2)
	assert.Equal(t, 2, frs.Len())

	values := []float64{results[0].Value, results[1].Value}
	sort.Float64s(values)
	assert.Equal(t, []float64{5, 6}, values)
}

func TestSearch_AcrossBucketBoundaries(t *testing.T) {
	t.Parallel()
	// Radius 2 puts these points in different hash buckets; all are still
	// within range of the query at the bucket corner.
	frs := NewFixedRadiusSearch(2)
	points := [][2]float64{
		{-0.5, -0.5}, {0.5, -0.5}, {-0.5, 0.5}, {0.5, 0.5},
		{1.9, 0}, {0, -1.9}, {-1.9, 0},
	}
	for i, p := range points {
		frs.Insert(p[0], p[1], float64(i))
	}
	frs.Insert(10, 10, 99) // far away

	results := frs.Search(0, 0)
	assert.Len(t, results, len(points))
	for _, r := range results {
		assert.LessOrEqual(t, r.Distance, 2.0)
		assert.NotEqual(t, 99.0, r.Value)
	}
}

func TestSearch_NegativeCoordinates(t *testing.T) {
	t.Parallel()
	frs := NewFixedRadiusSearch(3)
	frs.Insert(-7, -7, 1)
	results := frs.Search(-8, -8)
	require.Len(t, results, 1)
	assert.InDelta(t, math.Sqrt2, results[0].Distance, 1e-12)
}

func TestRadius(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 11.0, NewFixedRadiusSearch(11).Radius())
}
