// Package splat defines the intermediate per-element attribute list consumed by the
// container builder.
//
// An element is a flat []float32 with fixed symbolic offsets. Parsers of external file
// formats produce an Array; the builder only reads it.
package splat

import "github.com/golang/geo/r3"

// Offsets of each attribute inside an element.
const (
	X = 0
	Y = 1
	Z = 2

	Scale0 = 3
	Scale1 = 4
	Scale2 = 5

	// Rot0 is the scalar part of the rotation quaternion, Rot1..Rot3 the vector part.
	Rot0 = 6
	Rot1 = 7
	Rot2 = 8
	Rot3 = 9

	// FDC0..FDC2 are the base color channels in [0, 255].
	FDC0 = 10
	FDC1 = 11
	FDC2 = 12
	// Opacity is in [0, 255].
	Opacity = 13

	// FRC0 is the first directional coefficient: 9 for degree 1 start here, 15 more
	// for degree 2 start at FRC9 and 21 more for degree 3 at FRC24.
	FRC0  = 14
	FRC9  = FRC0 + 9
	FRC24 = FRC0 + 24
	FRC44 = FRC0 + 44
)

// BaseComponentCount is the number of components of an element without coefficients.
const BaseComponentCount = 14

// coefficientCount mirrors layout.CoefficientCount without importing the container layout.
func coefficientCount(degree int) int {
	switch {
	case degree <= 0:
		return 0
	case degree == 1:
		return 9
	case degree == 2:
		return 24
	default:
		return 45
	}
}

// ComponentCount returns the length of an element of the given degree.
func ComponentCount(degree int) int {
	return BaseComponentCount + coefficientCount(degree)
}

// NewElement returns a default element: origin, unit scale, identity rotation,
// black and fully transparent, zero coefficients.
func NewElement(degree int) []float32 {
	e := make([]float32, ComponentCount(degree))
	e[Scale0], e[Scale1], e[Scale2] = 1, 1, 1
	e[Rot0] = 1

	return e
}

// Array is an ordered list of elements sharing one directional coefficient degree.
type Array struct {
	Degree   int
	Elements [][]float32
}

// NewArray creates an empty Array of the given degree.
func NewArray(degree int) *Array {
	return &Array{Degree: degree}
}

// Len returns the number of elements.
func (a *Array) Len() int {
	return len(a.Elements)
}

// Add appends e without copying it.
func (a *Array) Add(e []float32) {
	a.Elements = append(a.Elements, e)
}

// AddDefault appends a default element and returns it for in-place filling.
func (a *Array) AddDefault() []float32 {
	e := NewElement(a.Degree)
	a.Add(e)

	return e
}

// AddFromComponents appends an element built from its base components followed by
// up to ComponentCount(a.Degree)-BaseComponentCount coefficients.
func (a *Array) AddFromComponents(
	x, y, z,
	scale0, scale1, scale2,
	rot0, rot1, rot2, rot3,
	r, g, b, opacity float32,
	coefficients ...float32,
) []float32 {
	e := make([]float32, ComponentCount(a.Degree))
	copy(e, []float32{x, y, z, scale0, scale1, scale2, rot0, rot1, rot2, rot3, r, g, b, opacity})
	copy(e[FRC0:], coefficients)
	a.Add(e)

	return e
}

// AddFromArray appends a copy of src's element at index, truncated or zero padded to
// a.Degree.
func (a *Array) AddFromArray(src *Array, index int) {
	e := NewElement(a.Degree)
	copy(e, src.Elements[index])
	a.Add(e)
}

// Position returns the center of element i.
func (a *Array) Position(i int) r3.Vector {
	e := a.Elements[i]

	return r3.Vector{X: float64(e[X]), Y: float64(e[Y]), Z: float64(e[Z])}
}

// Positions returns the centers of all elements.
func (a *Array) Positions() []r3.Vector {
	out := make([]r3.Vector, len(a.Elements))
	for i := range a.Elements {
		out[i] = a.Position(i)
	}

	return out
}

// Filter returns a new Array holding the elements whose opacity is at least
// minOpacity. Missing opacity counts as 0.
func (a *Array) Filter(minOpacity float32) *Array {
	out := &Array{Degree: a.Degree, Elements: make([][]float32, 0, len(a.Elements))}
	for _, e := range a.Elements {
		if Component(e, Opacity) >= minOpacity {
			out.Elements = append(out.Elements, e)
		}
	}

	return out
}

// Component returns e[offset] or 0 if e is too short.
func Component(e []float32, offset int) float32 {
	if offset < len(e) {
		return e[offset]
	}

	return 0
}
