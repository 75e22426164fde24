package quant

import "math"

// Bit widths of the packed degree-1 coefficient word.
const (
	packedRedMax   = 2047 // 11 bits
	packedGreenMax = 1023 // 10 bits
	packedBlueMax  = 2047 // 11 bits

	packedGreenShift = 11
	packedBlueShift  = 21
)

// PackUnit11_10_11 packs three coefficient values into one 32-bit word.
//
// Each component is normalized by scale (usually Range.AbsMax of the container),
// mapped from [-1, 1] onto [0, 1] and quantized to 11, 10 and 11 bits. The first
// component occupies the low bits.
func PackUnit11_10_11(v [3]float32, scale float32) uint32 {
	r := toUnitFixed(v[0], scale, packedRedMax)
	g := toUnitFixed(v[1], scale, packedGreenMax)
	b := toUnitFixed(v[2], scale, packedBlueMax)

	return r | g<<packedGreenShift | b<<packedBlueShift
}

// UnpackUnit11_10_11 reverses PackUnit11_10_11.
func UnpackUnit11_10_11(word uint32, scale float32) [3]float32 {
	return [3]float32{
		fromUnitFixed(word&packedRedMax, scale, packedRedMax),
		fromUnitFixed((word>>packedGreenShift)&packedGreenMax, scale, packedGreenMax),
		fromUnitFixed((word>>packedBlueShift)&packedBlueMax, scale, packedBlueMax),
	}
}

func toUnitFixed(v, scale float32, maxVal uint32) uint32 {
	if scale <= 0 {
		scale = 1
	}
	v = clamp(v/scale, -1, 1)
	v = 0.5*v + 0.5
	q := math.Floor(float64(v) * float64(maxVal))

	return uint32(clamp(float32(q), 0, float32(maxVal)))
}

func fromUnitFixed(q uint32, scale float32, maxVal uint32) float32 {
	if scale <= 0 {
		scale = 1
	}

	return (float32(q)/float32(maxVal)*2 - 1) * scale
}
