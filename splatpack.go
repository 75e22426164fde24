// Package splatpack stores Gaussian splat scenes in a compact, randomly accessible
// binary container.
//
// A scene is a set of elements, each with a center, an anisotropic scale, a
// rotation, a color with opacity and up to 45 directional color coefficients. The
// container keeps them in one little-endian buffer that can be decoded in place,
// either one element at a time or in bulk into GPU friendly arrays.
//
// # Core Features
//
//   - Three compression levels: full float, half float, half float with 8-bit
//     coefficients
//   - Bucket-relative 16-bit centers at levels 1 and 2, with an error bound set by
//     the block size
//   - Multiple independently bucketed sections per container
//   - Progressive loading: active counts can grow while readers decode
//   - Checksummed archive envelopes with None, Zstd, S2 or LZ4 compression
//
// # Basic Usage
//
// Building a container:
//
//	list := splat.NewArray(1)
//	e := list.AddDefault()
//	e[splat.X], e[splat.Y], e[splat.Z] = 1, 2, 3
//	e[splat.Opacity] = 255
//
//	c, err := splatpack.Build([]*splat.Array{list},
//	    container.WithCompressionLevel(format.LevelHalf),
//	)
//
// Decoding:
//
//	centers := make([]float32, 3*c.ElementCount())
//	err = c.FillCenters(centers, 0, c.ElementCount(), container.FillOptions{})
//
// Storing:
//
//	packed, err := splatpack.Pack(c, format.CompressionZstd)
//	c2, err := splatpack.Unpack(packed)
//
// # Package Structure
//
// This package holds thin wrappers over the container and archive packages. Use
// those directly for streaming construction, re-encoding and envelope inspection.
package splatpack

import (
	"github.com/arloliu/splatpack/archive"
	"github.com/arloliu/splatpack/container"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/splat"
)

var defaultBuildOptions = []container.BuildOption{
	container.WithCompressionLevel(format.LevelHalf),
}

// Build encodes element lists into a container, one section per list.
//
// The default compression level is format.LevelHalf; opts are applied after the
// defaults and override them.
//
// Example:
//
//	c, err := splatpack.Build(lists,
//	    container.WithMinimumOpacity(5),
//	    container.WithBlockSize(2),
//	)
func Build(lists []*splat.Array, opts ...container.BuildOption) (*container.Container, error) {
	allOpts := append(append([]container.BuildOption(nil), defaultBuildOptions...), opts...)
	return container.Build(lists, allOpts...)
}

// BuildLossless encodes element lists at format.LevelFull.
func BuildLossless(lists []*splat.Array, opts ...container.BuildOption) (*container.Container, error) {
	allOpts := append([]container.BuildOption{container.WithCompressionLevel(format.LevelFull)}, opts...)
	return container.Build(lists, allOpts...)
}

// Open parses a raw container buffer. The buffer is retained, not copied.
func Open(buf []byte) (*container.Container, error) {
	return container.New(buf)
}

// Pack wraps the container bytes in an archive envelope compressed with comp.
func Pack(c *container.Container, comp format.CompressionType) ([]byte, error) {
	return archive.Pack(c.Bytes(), comp)
}

// Unpack verifies an archive envelope and opens the container inside it.
func Unpack(data []byte) (*container.Container, error) {
	raw, err := archive.Unpack(data)
	if err != nil {
		return nil, err
	}

	return container.New(raw)
}
