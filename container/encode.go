package container

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/arloliu/splatpack/endian"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/internal/xform"
	"github.com/arloliu/splatpack/layout"
	"github.com/arloliu/splatpack/quant"
	"github.com/arloliu/splatpack/splat"
)

// elementEncoder writes element records of one section.
type elementEncoder struct {
	level        format.CompressionLevel
	storage      layout.Storage
	rng          quant.Range
	encodeFactor float32
	scaleRange   uint32
}

func newElementEncoder(level format.CompressionLevel, storage layout.Storage, rng quant.Range, blockSize float32) elementEncoder {
	enc := elementEncoder{
		level:      level,
		storage:    storage,
		rng:        rng,
		scaleRange: quant.ScaleRange(level),
	}
	if level.Bucketed() {
		enc.encodeFactor = quant.EncodeFactor(blockSize, enc.scaleRange)
	}

	return enc
}

// write encodes e into rec, which must be storage.BytesPerElementAtDegree long.
// bucketCenter is ignored at level 0, where centers are absolute.
func (enc *elementEncoder) write(rec []byte, e []float32, bucketCenter [3]float32) {
	engine := endian.GetContainerEngine()
	st := &enc.storage

	center := rec[st.Offsets.Center:]
	for k := range layout.CenterComponents {
		v := splat.Component(e, splat.X+k)
		if enc.level.Bucketed() {
			q := quant.QuantizePosition(v-bucketCenter[k], enc.encodeFactor, enc.scaleRange)
			engine.PutUint16(center[2*k:], q)
		} else {
			endian.PutFloat32(engine, center[4*k:], v)
		}
	}

	scale := rec[st.Offsets.Scale:]
	for k := range layout.ScaleComponents {
		enc.putFloat(scale, k, splat.Component(e, splat.Scale0+k))
	}

	rot := normalizedRotation(e)
	rotation := rec[st.Offsets.Rotation:]
	for k, v := range [4]float32{rot.W, rot.V[0], rot.V[1], rot.V[2]} {
		enc.putFloat(rotation, k, v)
	}

	color := rec[st.Offsets.Color:]
	for k := range layout.ColorComponents {
		color[k] = toColorByte(splat.Component(e, splat.FDC0+k))
	}

	coefficients := rec[st.Offsets.Coefficients:]
	for j := range st.CoefficientComponents {
		v := splat.Component(e, splat.FRC0+j)
		switch enc.level {
		case format.LevelFull:
			endian.PutFloat32(engine, coefficients[4*j:], v)
		case format.LevelHalf:
			engine.PutUint16(coefficients[2*j:], quant.ToHalf(v))
		default:
			coefficients[j] = quant.ToUint8(v, enc.rng)
		}
	}
}

// putFloat writes component k of a float attribute as float32 at level 0 and as
// half float otherwise.
func (enc *elementEncoder) putFloat(dst []byte, k int, v float32) {
	engine := endian.GetContainerEngine()
	if enc.level == format.LevelFull {
		endian.PutFloat32(engine, dst[4*k:], v)
		return
	}
	engine.PutUint16(dst[2*k:], quant.ToHalf(v))
}

// normalizedRotation reads the rotation of e as a unit quaternion with a
// non-negative scalar part, defaulting to identity when it is missing or has zero
// length.
func normalizedRotation(e []float32) mgl32.Quat {
	q := mgl32.Quat{
		W: splat.Component(e, splat.Rot0),
		V: mgl32.Vec3{
			splat.Component(e, splat.Rot1),
			splat.Component(e, splat.Rot2),
			splat.Component(e, splat.Rot3),
		},
	}

	return xform.Canonical(q)
}

func toColorByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}

	return uint8(v)
}
