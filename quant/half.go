package quant

import "github.com/x448/float16"

// ToHalf encodes v as an IEEE 754 binary16 bit pattern (round to nearest even).
func ToHalf(v float32) uint16 {
	return float16.Fromfloat32(v).Bits()
}

// FromHalf decodes a binary16 bit pattern to float32.
func FromHalf(bits uint16) float32 {
	return float16.Frombits(bits).Float32()
}

// HalfEpsilon is the relative rounding error bound of a normal half float (2^-11).
const HalfEpsilon = 1.0 / 2048.0
