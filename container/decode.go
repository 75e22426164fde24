package container

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/arloliu/splatpack/endian"
	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/internal/xform"
	"github.com/arloliu/splatpack/layout"
	"github.com/arloliu/splatpack/quant"
	"github.com/arloliu/splatpack/section"
)

// ScaleOverride replaces individual decoded scale components. Nil fields keep the
// stored value.
type ScaleOverride struct {
	X, Y, Z *float32
}

func (o *ScaleOverride) apply(scale mgl32.Vec3) mgl32.Vec3 {
	if o == nil {
		return scale
	}
	for k, v := range [3]*float32{o.X, o.Y, o.Z} {
		if v != nil {
			scale[k] = *v
		}
	}

	return scale
}

// Center returns the center of element i, transformed by transform when it is not nil.
func (c *Container) Center(i int, transform *mgl32.Mat4) (mgl32.Vec3, error) {
	loc, err := c.locate(i)
	if err != nil {
		return mgl32.Vec3{}, err
	}

	center, err := c.centerAt(loc)
	if err != nil {
		return mgl32.Vec3{}, err
	}
	if transform != nil {
		center = xform.TransformPoint(transform, center)
	}

	return center, nil
}

// ScaleAndRotation returns the scale and rotation of element i.
//
// override is applied to the decoded scale first. When transform is not nil the
// result is the decomposition of transform·R·S, with the rotation normalized and its
// scalar part made non-negative.
func (c *Container) ScaleAndRotation(i int, transform *mgl32.Mat4, override *ScaleOverride) (mgl32.Vec3, mgl32.Quat, error) {
	loc, err := c.locate(i)
	if err != nil {
		return mgl32.Vec3{}, mgl32.Quat{}, err
	}

	scale, rotation := c.scaleRotationAt(loc)
	scale = override.apply(scale)
	if transform != nil {
		scale, rotation = xform.ApplyToScaleRotation(transform, scale, rotation)
	}

	return scale, rotation, nil
}

// Color returns the R, G, B and opacity bytes of element i.
func (c *Container) Color(i int) ([4]uint8, error) {
	loc, err := c.locate(i)
	if err != nil {
		return [4]uint8{}, err
	}

	return c.colorAt(loc), nil
}

// Coefficients decodes the directional coefficients of element i into dst and
// returns how many were written, which depends on the degree of its section.
func (c *Container) Coefficients(i int, dst []float32) (int, error) {
	loc, err := c.locate(i)
	if err != nil {
		return 0, err
	}

	n := loc.storage.CoefficientComponents
	if len(dst) < n {
		return 0, fmt.Errorf("%w: need %d values, have %d", errs.ErrDestinationTooSmall, n, len(dst))
	}

	c.rawCoefficientsAt(loc, dst[:n])
	level, rng := c.header.CompressionLevel, c.header.CoefficientRange
	for j := range dst[:n] {
		dst[j] = quant.Decode(dst[j], level, true, rng)
	}

	return n, nil
}

func (c *Container) centerAt(loc location) (mgl32.Vec3, error) {
	engine := endian.GetContainerEngine()
	rec := c.buf[loc.record+loc.storage.Offsets.Center:]

	if !c.header.CompressionLevel.Bucketed() {
		return mgl32.Vec3{
			endian.Float32(engine, rec[0:]),
			endian.Float32(engine, rec[4:]),
			endian.Float32(engine, rec[8:]),
		}, nil
	}

	s := loc.section
	b, err := c.bucketIndex(s, loc.local)
	if err != nil {
		return mgl32.Vec3{}, err
	}

	bucketBase := s.Layout.BucketsBase + b*section.BucketStorageSize
	var center mgl32.Vec3
	for k := range layout.CenterComponents {
		bc := endian.Float32(engine, c.buf[bucketBase+4*k:])
		q := engine.Uint16(rec[2*k:])
		center[k] = bc + quant.DequantizePosition(q, s.Layout.DecodeFactor, s.Layout.ScaleRange)
	}

	return center, nil
}

// bucketIndex finds the bucket holding local element index local. Full buckets are
// found by division; partial buckets have unequal sizes and are scanned.
func (c *Container) bucketIndex(s *section.Section, local int) (int, error) {
	h := &s.Header
	full := int(h.FullBucketCount) * int(h.BucketSize)
	if local < full {
		return local / int(h.BucketSize), nil
	}

	engine := endian.GetContainerEngine()
	rem := local - full
	for p := range int(h.PartialBucketCount) {
		n := int(engine.Uint32(c.buf[s.Layout.Base+p*section.PartialBucketLengthSize:]))
		if rem < n {
			return int(h.FullBucketCount) + p, nil
		}
		rem -= n
	}

	return 0, fmt.Errorf("%w: section %d element %d is not covered by any bucket",
		errs.ErrIndexOutOfRange, s.Index, local)
}

// rawValue reads component k of an attribute in its stored encoding: a float32 at
// level 0, a half float bit pattern otherwise, and an 8-bit code for coefficients at
// level 2.
func (c *Container) rawValue(b []byte, k int, isCoefficient bool) float32 {
	engine := endian.GetContainerEngine()
	switch level := c.header.CompressionLevel; {
	case level == format.LevelFull:
		return endian.Float32(engine, b[4*k:])
	case isCoefficient && level == format.LevelHalfUint8:
		return float32(b[k])
	default:
		return float32(engine.Uint16(b[2*k:]))
	}
}

// rawScaleRotationAt returns scale and rotation in their stored encoding. The
// rotation is in storage order w, x, y, z.
func (c *Container) rawScaleRotationAt(loc location) ([3]float32, [4]float32) {
	scaleBytes := c.buf[loc.record+loc.storage.Offsets.Scale:]
	rotBytes := c.buf[loc.record+loc.storage.Offsets.Rotation:]

	var scale [3]float32
	for k := range scale {
		scale[k] = c.rawValue(scaleBytes, k, false)
	}
	var rot [4]float32
	for k := range rot {
		rot[k] = c.rawValue(rotBytes, k, false)
	}

	return scale, rot
}

func (c *Container) scaleRotationAt(loc location) (mgl32.Vec3, mgl32.Quat) {
	rawScale, rawRot := c.rawScaleRotationAt(loc)
	level, rng := c.header.CompressionLevel, c.header.CoefficientRange

	var scale mgl32.Vec3
	for k, v := range rawScale {
		scale[k] = quant.Decode(v, level, false, rng)
	}

	return scale, mgl32.Quat{
		W: quant.Decode(rawRot[0], level, false, rng),
		V: mgl32.Vec3{
			quant.Decode(rawRot[1], level, false, rng),
			quant.Decode(rawRot[2], level, false, rng),
			quant.Decode(rawRot[3], level, false, rng),
		},
	}
}

func (c *Container) colorAt(loc location) [4]uint8 {
	var color [4]uint8
	copy(color[:], c.buf[loc.record+loc.storage.Offsets.Color:])

	return color
}

// rawCoefficientsAt reads len(dst) coefficients in their stored encoding.
func (c *Container) rawCoefficientsAt(loc location, dst []float32) {
	b := c.buf[loc.record+loc.storage.Offsets.Coefficients:]
	for j := range dst {
		dst[j] = c.rawValue(b, j, true)
	}
}
