// Package quant implements the numeric conversions behind the three container
// compression levels.
//
// Every attribute value moves through one of three representations:
//
//   - float32 at level 0,
//   - an IEEE 754 half float bit pattern at level 1, and at level 2 for everything
//     except directional coefficients,
//   - an 8-bit code linearly mapped onto a caller supplied [min, max] range, used only
//     for directional coefficients at level 2.
//
// Encoded values are carried around as float32 so that one destination array can hold
// any of the representations, the way a GPU upload buffer would. Convert moves a value
// between representations without needing the original float.
//
// Positions at levels 1 and 2 are stored as unsigned offsets from a bucket center; see
// QuantizePosition.
package quant
