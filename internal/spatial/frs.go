// Package spatial provides a fixed-radius search structure for 2D point
// samples. Points are inserted once during a build phase and then queried
// many times; the structure is not safe for concurrent mutation but reads
// are pure and may be shared once population is complete.
package spatial

import "math"

// SearchResult pairs a stored sample value with its Euclidean distance
// from the query point.
type SearchResult struct {
	Value    float64
	Distance float64
}

type sample struct {
	x, y, value float64
}

type bucketKey struct {
	x, y int
}

// FixedRadiusSearch stores (x, y, value) samples and answers "all samples
// within radius r of (x, y)" queries. Samples are hashed into square
// buckets of side r, so a query inspects at most the 3x3 block of buckets
// around the query point. Duplicate points are permitted.
type FixedRadiusSearch struct {
	radius  float64
	buckets map[bucketKey][]sample
	n       int
}

// NewFixedRadiusSearch creates an empty index with the given search
// radius. The radius is fixed for the index's lifetime and must be
// positive.
func NewFixedRadiusSearch(radius float64) *FixedRadiusSearch {
	if radius <= 0 {
		panic("spatial: search radius must be positive")
	}
	return &FixedRadiusSearch{
		radius:  radius,
		buckets: make(map[bucketKey][]sample),
	}
}

// Radius returns the configured search radius.
func (f *FixedRadiusSearch) Radius() float64 { return f.radius }

// Len returns the number of stored samples.
func (f *FixedRadiusSearch) Len() int { return f.n }

func (f *FixedRadiusSearch) key(x, y float64) bucketKey {
	return bucketKey{
		x: int(math.Floor(x / f.radius)),
		y: int(math.Floor(y / f.radius)),
	}
}

// Insert adds one sample at (x, y).
func (f *FixedRadiusSearch) Insert(x, y, value float64) {
	k := f.key(x, y)
	f.buckets[k] = append(f.buckets[k], sample{x: x, y: y, value: value})
	f.n++
}

// Search returns every stored sample whose Euclidean distance to (x, y) is
// at most the configured radius, paired with that distance. The result
// order is unspecified; the slice is empty when nothing is in range.
func (f *FixedRadiusSearch) Search(x, y float64) []SearchResult {
	center := f.key(x, y)
	var results []SearchResult
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			k := bucketKey{x: center.x + dx, y: center.y + dy}
			for _, s := range f.buckets[k] {
				d := math.Hypot(s.x-x, s.y-y)
				if d <= f.radius {
					results = append(results, SearchResult{Value: s.value, Distance: d})
				}
			}
		}
	}
	return results
}
