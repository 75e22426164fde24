package quant

import (
	"math"

	"github.com/arloliu/splatpack/format"
)

// Position scale ranges per compression level. Level 0 stores absolute centers.
const (
	FullScaleRange      = 1
	QuantizedScaleRange = 32767
)

// ScaleRange returns the position quantization range of level.
func ScaleRange(level format.CompressionLevel) uint32 {
	if level.Bucketed() {
		return QuantizedScaleRange
	}

	return FullScaleRange
}

// EncodeFactor returns the multiplier applied to bucket-relative offsets before rounding.
func EncodeFactor(blockSize float32, scaleRange uint32) float32 {
	return float32(scaleRange) / (blockSize * 0.5)
}

// DecodeFactor returns the inverse of EncodeFactor: (blockSize/2)/scaleRange.
func DecodeFactor(blockSize float32, scaleRange uint32) float32 {
	return (blockSize * 0.5) / float32(scaleRange)
}

// QuantizePosition stores one bucket-relative offset component.
//
// The result is round(delta*factor)+scaleRange clamped to [0, 2*scaleRange+1].
func QuantizePosition(delta, factor float32, scaleRange uint32) uint16 {
	v := math.Round(float64(delta*factor)) + float64(scaleRange)
	hi := float64(2*scaleRange + 1)
	if v < 0 {
		v = 0
	} else if v > hi {
		v = hi
	}

	return uint16(v)
}

// DequantizePosition recovers a bucket-relative offset component.
func DequantizePosition(q uint16, factor float32, scaleRange uint32) float32 {
	return (float32(q) - float32(scaleRange)) * factor
}

// PositionError returns the worst case reconstruction error of a bucket-relative
// position component: blockSize/(2*scaleRange).
func PositionError(blockSize float32, scaleRange uint32) float32 {
	return blockSize / (2 * float32(scaleRange))
}
