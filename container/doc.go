// Package container encodes element lists into a splat container and decodes
// elements back out of one.
//
// A container is a single little-endian byte buffer:
//
//	+------------------+--------------------------+----------------------------+
//	| Header (4096 B)  | Section headers (1024 B) | Section data blocks        |
//	|                  | × MaxSectionCount        | × MaxSectionCount          |
//	+------------------+--------------------------+----------------------------+
//
// Each section data block holds the partial bucket lengths, the bucket centers and
// the element records, in that order. Bucket regions only exist at compression
// levels 1 and 2, where centers are stored as 16-bit offsets from their bucket
// center.
//
// # Building
//
//	c, err := container.Build(lists,
//	    container.WithCompressionLevel(format.LevelHalf),
//	    container.WithMinimumOpacity(5),
//	)
//
// # Decoding
//
// Single element getters (Center, ScaleAndRotation, Color, Coefficients) and bulk
// fills (FillCenters, FillScaleRotation, FillColors, FillCoefficients,
// FillCovariances, FillPackedCoefficients) never mutate the buffer. Bulk fills take a
// half-open range [from, to) and write into caller-owned slices.
//
// # Progressive loading
//
// UpdateCounts and UpdateSectionCount are the only mutations after construction and
// only touch count fields. Allocate and StreamWriter build on them to fill a
// preallocated container while it is already being read.
package container
