package quant

import "github.com/arloliu/splatpack/format"

// convertFunc converts one encoded value. rng is only consulted by 8-bit conversions.
type convertFunc func(v float32, rng Range) float32

func identity(v float32, _ Range) float32 { return v }

func fullToHalf(v float32, _ Range) float32 { return float32(ToHalf(v)) }

func halfToFull(v float32, _ Range) float32 { return FromHalf(uint16(v)) }

func fullToUint8(v float32, rng Range) float32 { return float32(ToUint8(v, rng)) }

func uint8ToFull(v float32, rng Range) float32 { return FromUint8(uint8(v), rng) }

func halfToUint8(v float32, rng Range) float32 {
	return float32(ToUint8(FromHalf(uint16(v)), rng))
}

func uint8ToHalf(v float32, rng Range) float32 {
	return float32(ToHalf(FromUint8(uint8(v), rng)))
}

// conversions is indexed by [isCoefficient][from][to]. Level 2 only differs from
// level 1 for directional coefficients, so the non-coefficient 1<->2 entries are
// identities.
var conversions = [2][format.LevelCount][format.LevelCount]convertFunc{
	// attributes other than directional coefficients
	{
		{identity, fullToHalf, fullToHalf},
		{halfToFull, identity, identity},
		{halfToFull, identity, identity},
	},
	// directional coefficients
	{
		{identity, fullToHalf, fullToUint8},
		{halfToFull, identity, halfToUint8},
		{uint8ToFull, uint8ToHalf, identity},
	},
}

// Convert re-encodes v, currently encoded at level from, as level to.
//
// isCoefficient selects the directional coefficient variant of level 2. rng is the
// 8-bit quantization range and is ignored by every other conversion.
func Convert(v float32, from, to format.CompressionLevel, isCoefficient bool, rng Range) float32 {
	if from == to {
		return v
	}

	coeff := 0
	if isCoefficient {
		coeff = 1
	}

	return conversions[coeff][from][to](v, rng)
}

// Encode encodes a real value at level.
func Encode(v float32, level format.CompressionLevel, isCoefficient bool, rng Range) float32 {
	return Convert(v, format.LevelFull, level, isCoefficient, rng)
}

// Decode decodes a value encoded at level back to a real value.
func Decode(v float32, level format.CompressionLevel, isCoefficient bool, rng Range) float32 {
	return Convert(v, level, format.LevelFull, isCoefficient, rng)
}
