package quant

import "math"

// DefaultCoefficientHalfRange is half of the default 8-bit coefficient compression range.
const DefaultCoefficientHalfRange = 1.5

// Range is the closed interval used by 8-bit range quantization.
type Range struct {
	Min float32
	Max float32
}

// DefaultCoefficientRange is used when a container carries no coefficients or
// stores a zero bound.
var DefaultCoefficientRange = Range{Min: -DefaultCoefficientHalfRange, Max: DefaultCoefficientHalfRange}

// Span returns Max - Min.
func (r Range) Span() float32 {
	return r.Max - r.Min
}

// AbsMax returns max(|Min|, |Max|).
func (r Range) AbsMax() float32 {
	return float32(math.Max(math.Abs(float64(r.Min)), math.Abs(float64(r.Max))))
}

// Step returns the reconstruction error bound of ToUint8/FromUint8 over r.
func (r Range) Step() float32 {
	return r.Span() / 255
}

// ToUint8 clamps v to rng and maps it linearly onto [0, 255], rounding down.
func ToUint8(v float32, rng Range) uint8 {
	v = clamp(v, rng.Min, rng.Max)
	span := rng.Span()
	if span <= 0 {
		return 0
	}

	q := math.Floor(float64((v - rng.Min) / span * 255))

	return uint8(clamp(float32(q), 0, 255))
}

// FromUint8 maps an 8-bit code back onto rng.
func FromUint8(u uint8, rng Range) float32 {
	return float32(u)/255*rng.Span() + rng.Min
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}
