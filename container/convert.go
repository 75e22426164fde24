package container

import (
	"fmt"

	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/splat"
)

// Export decodes the active elements of one section back into an element list.
// Centers, scales, rotations and coefficients are real values; colors and opacity
// are in [0, 255].
func (c *Container) Export(sectionIndex int) (*splat.Array, error) {
	if sectionIndex < 0 || sectionIndex >= len(c.sections) {
		return nil, fmt.Errorf("%w: %d", errs.ErrSectionIndexOutOfRange, sectionIndex)
	}

	s := &c.sections[sectionIndex]
	degree := c.storages[sectionIndex].Degree
	count := int(c.sectionCounts[sectionIndex].Load())
	active := c.ElementCount()
	out := splat.NewArray(degree)
	out.Elements = make([][]float32, 0, count)

	coefficients := make([]float32, splat.ComponentCount(degree)-splat.BaseComponentCount)
	for local := range count {
		i := int(s.Layout.ElementOffset) + local
		if i >= active {
			break
		}

		center, err := c.Center(i, nil)
		if err != nil {
			return nil, err
		}
		scale, rotation, err := c.ScaleAndRotation(i, nil, nil)
		if err != nil {
			return nil, err
		}
		color, err := c.Color(i)
		if err != nil {
			return nil, err
		}
		n, err := c.Coefficients(i, coefficients)
		if err != nil {
			return nil, err
		}

		out.AddFromComponents(
			center[0], center[1], center[2],
			scale[0], scale[1], scale[2],
			rotation.W, rotation.V[0], rotation.V[1], rotation.V[2],
			float32(color[0]), float32(color[1]), float32(color[2]), float32(color[3]),
			coefficients[:n]...,
		)
	}

	return out, nil
}

// ExportAll exports every section.
func (c *Container) ExportAll() ([]*splat.Array, error) {
	lists := make([]*splat.Array, len(c.sections))
	for i := range c.sections {
		list, err := c.Export(i)
		if err != nil {
			return nil, err
		}
		lists[i] = list
	}

	return lists, nil
}

// Convert re-encodes the container at another compression level. The reference
// center is carried over; opts are applied after it and may override bucketing
// parameters.
func (c *Container) Convert(level format.CompressionLevel, opts ...BuildOption) (*Container, error) {
	lists, err := c.ExportAll()
	if err != nil {
		return nil, err
	}

	center := c.ReferenceCenter()
	buildOpts := make([]BuildOption, 0, len(opts)+2)
	buildOpts = append(buildOpts,
		WithReferenceCenter(center[0], center[1], center[2]),
		WithCompressionLevel(level),
	)
	buildOpts = append(buildOpts, opts...)

	return Build(lists, buildOpts...)
}
