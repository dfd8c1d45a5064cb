// Package fill repairs nodata holes in gridded surfaces.
//
// Responsibilities: boundary cell extraction, inverse-distance-weighted
// hole interpolation, and per-run summary statistics.
// Key types: Options, Summary.
//
// The algorithm is a deterministic two-pass sweep. Pass one locates every
// valid cell with at least one nodata 8-neighbour and loads it into a
// fixed-radius search index. Pass two copies valid cells through and
// estimates each hole from the in-range boundary samples, weighting each
// sample by the reciprocal of its squared distance. The index is fully
// populated before the first query and read-only afterwards.
package fill
