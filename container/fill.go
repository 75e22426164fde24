package container

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/internal/xform"
	"github.com/arloliu/splatpack/layout"
	"github.com/arloliu/splatpack/quant"
)

// FillOptions controls a bulk fill.
type FillOptions struct {
	// Transform is applied to every element when not nil.
	Transform *mgl32.Mat4
	// DestOffset is the destination element index that element `from` is written to.
	DestOffset int
	// OutputLevel is the encoding of the written values; it may differ from the
	// stored level. Scale, rotation and covariance values at levels 1 and 2 are half
	// float bit patterns held in a float32; coefficients at level 2 are 8-bit codes.
	OutputLevel format.CompressionLevel
	// ScaleOverride replaces decoded scale components before any transform.
	ScaleOverride *ScaleOverride
}

func (o *FillOptions) validate() error {
	if !o.OutputLevel.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompressionLevel, o.OutputLevel)
	}

	return nil
}

// FillCenters writes 3 center components per element of [from, to) into dst.
// Centers are always real values.
func (c *Container) FillCenters(dst []float32, from, to int, opts FillOptions) error {
	if err := c.checkRange(from, to, opts.DestOffset, layout.CenterComponents, len(dst)); err != nil {
		return err
	}

	for i := from; i < to; i++ {
		loc, err := c.locate(i)
		if err != nil {
			return err
		}
		center, err := c.centerAt(loc)
		if err != nil {
			return err
		}
		if opts.Transform != nil {
			center = xform.TransformPoint(opts.Transform, center)
		}

		out := (opts.DestOffset + i - from) * layout.CenterComponents
		copy(dst[out:out+layout.CenterComponents], center[:])
	}

	return nil
}

// FillScaleRotation writes 3 scale and 4 rotation components per element of
// [from, to). Either destination may be nil to skip it. Rotations are written as
// x, y, z, w.
func (c *Container) FillScaleRotation(scales, rotations []float32, from, to int, opts FillOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if scales != nil {
		if err := c.checkRange(from, to, opts.DestOffset, layout.ScaleComponents, len(scales)); err != nil {
			return err
		}
	}
	if rotations != nil {
		if err := c.checkRange(from, to, opts.DestOffset, layout.RotationComponents, len(rotations)); err != nil {
			return err
		}
	}
	if err := c.checkRange(from, to, 0, 0, 0); err != nil {
		return err
	}

	level, rng := c.header.CompressionLevel, c.header.CoefficientRange
	out := opts.OutputLevel
	// Without a transform or override the stored encoding converts directly.
	direct := opts.Transform == nil && opts.ScaleOverride == nil

	for i := from; i < to; i++ {
		loc, err := c.locate(i)
		if err != nil {
			return err
		}
		d := opts.DestOffset + i - from

		var scale [3]float32
		var rot [4]float32 // x, y, z, w
		if direct {
			rawScale, rawRot := c.rawScaleRotationAt(loc)
			for k, v := range rawScale {
				scale[k] = quant.Convert(v, level, out, false, rng)
			}
			for k, v := range [4]float32{rawRot[1], rawRot[2], rawRot[3], rawRot[0]} {
				rot[k] = quant.Convert(v, level, out, false, rng)
			}
		} else {
			s, q := c.scaleRotationAt(loc)
			s = opts.ScaleOverride.apply(s)
			if opts.Transform != nil {
				s, q = xform.ApplyToScaleRotation(opts.Transform, s, q)
			}
			for k := range scale {
				scale[k] = quant.Encode(s[k], out, false, rng)
			}
			for k, v := range [4]float32{q.V[0], q.V[1], q.V[2], q.W} {
				rot[k] = quant.Encode(v, out, false, rng)
			}
		}

		if scales != nil {
			copy(scales[d*layout.ScaleComponents:], scale[:])
		}
		if rotations != nil {
			copy(rotations[d*layout.RotationComponents:], rot[:])
		}
	}

	return nil
}

// FillColors writes 4 color bytes per element of [from, to). Opacity below
// minOpacity is written as 0.
func (c *Container) FillColors(dst []uint8, minOpacity uint8, from, to int, opts FillOptions) error {
	if err := c.checkRange(from, to, opts.DestOffset, layout.ColorComponents, len(dst)); err != nil {
		return err
	}

	for i := from; i < to; i++ {
		loc, err := c.locate(i)
		if err != nil {
			return err
		}
		color := c.colorAt(loc)
		if color[3] < minOpacity {
			color[3] = 0
		}

		out := (opts.DestOffset + i - from) * layout.ColorComponents
		copy(dst[out:out+layout.ColorComponents], color[:])
	}

	return nil
}

// FillCoefficients writes the directional coefficients of [from, to) into dst.
//
// The written degree is min(degree, MinDegree()), so every element has the same
// stride of layout.CoefficientCount(degree) values. When a transform is given the
// three degree-1 triples are rotated by its rotation part; higher degrees are left
// unrotated, which is an approximation for rotated scenes.
func (c *Container) FillCoefficients(dst []float32, degree int, from, to int, opts FillOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	outDegree := max(min(degree, c.minDegree), 0)
	stride := layout.CoefficientCount(outDegree)
	if err := c.checkRange(from, to, opts.DestOffset, stride, len(dst)); err != nil {
		return err
	}
	if stride == 0 {
		return nil
	}

	level, rng := c.header.CompressionLevel, c.header.CoefficientRange
	out := opts.OutputLevel

	var rotation xform.CoefficientRotation
	if opts.Transform != nil {
		rotation = xform.NewCoefficientRotation(opts.Transform)
	}

	for i := from; i < to; i++ {
		loc, err := c.locate(i)
		if err != nil {
			return err
		}
		values := dst[(opts.DestOffset+i-from)*stride:][:stride]
		c.rawCoefficientsAt(loc, values)

		if opts.Transform == nil {
			for j, v := range values {
				values[j] = quant.Convert(v, level, out, true, rng)
			}
			continue
		}

		for j, v := range values {
			values[j] = quant.Decode(v, level, true, rng)
		}
		rotateDegree1(rotation, values)
		for j, v := range values {
			values[j] = quant.Encode(v, out, true, rng)
		}
	}

	return nil
}

// FillCovariances writes the 6 upper-triangle covariance components (xx, xy, xz,
// yy, yz, zz) per element of [from, to). At output levels 1 and 2 they are half
// float bit patterns.
func (c *Container) FillCovariances(dst []float32, from, to int, opts FillOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if err := c.checkRange(from, to, opts.DestOffset, layout.CovarianceComponents, len(dst)); err != nil {
		return err
	}

	rng := c.header.CoefficientRange
	for i := from; i < to; i++ {
		loc, err := c.locate(i)
		if err != nil {
			return err
		}
		scale, rotation := c.scaleRotationAt(loc)
		scale = opts.ScaleOverride.apply(scale)
		cov := xform.Covariance(scale, rotation.Normalize(), opts.Transform)

		out := (opts.DestOffset + i - from) * layout.CovarianceComponents
		for k, v := range cov {
			dst[out+k] = quant.Encode(v, opts.OutputLevel, false, rng)
		}
	}

	return nil
}

// FillPackedCoefficients packs the three degree-1 coefficient triples of each
// element of [from, to) into 3 words of 11/10/11 bits, scaled against
// CoefficientRange().AbsMax(). The container must store at least degree 1.
func (c *Container) FillPackedCoefficients(dst []uint32, from, to int, opts FillOptions) error {
	if c.minDegree < 1 {
		return fmt.Errorf("%w: packed coefficients need degree 1, container has %d", errs.ErrInvalidDegree, c.minDegree)
	}
	if err := c.checkRange(from, to, opts.DestOffset, 3, len(dst)); err != nil {
		return err
	}

	level, rng := c.header.CompressionLevel, c.header.CoefficientRange
	scale := rng.AbsMax()

	var rotation xform.CoefficientRotation
	if opts.Transform != nil {
		rotation = xform.NewCoefficientRotation(opts.Transform)
	}

	var values [9]float32
	for i := from; i < to; i++ {
		loc, err := c.locate(i)
		if err != nil {
			return err
		}
		c.rawCoefficientsAt(loc, values[:])
		for j, v := range values {
			values[j] = quant.Decode(v, level, true, rng)
		}
		if opts.Transform != nil {
			rotateDegree1(rotation, values[:])
		}

		out := (opts.DestOffset + i - from) * 3
		for k := range 3 {
			dst[out+k] = quant.PackUnit11_10_11([3]float32(values[3*k:3*k+3]), scale)
		}
	}

	return nil
}

// rotateDegree1 rotates the first 9 real coefficient values in place, laid out as
// three RGB triples, one per degree-1 basis function.
func rotateDegree1(r xform.CoefficientRotation, values []float32) {
	triples := [3]mgl32.Vec3{
		{values[0], values[1], values[2]},
		{values[3], values[4], values[5]},
		{values[6], values[7], values[8]},
	}
	r.Rotate(&triples)
	for k := range triples {
		copy(values[3*k:3*k+3], triples[k][:])
	}
}
