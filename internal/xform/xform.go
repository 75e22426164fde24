// Package xform holds the affine transform math applied while decoding elements.
package xform

import "github.com/go-gl/mathgl/mgl32"

// TransformPoint applies m to p, including the projective divide.
func TransformPoint(m *mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if v[3] != 0 && v[3] != 1 {
		inv := 1 / v[3]
		return mgl32.Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
	}

	return v.Vec3()
}

// Decompose splits an affine matrix into translation, rotation and scale.
//
// A negative determinant is attributed to the x axis.
func Decompose(m mgl32.Mat4) (mgl32.Vec3, mgl32.Quat, mgl32.Vec3) {
	sx := m.Col(0).Vec3().Len()
	sy := m.Col(1).Vec3().Len()
	sz := m.Col(2).Vec3().Len()
	if m.Det() < 0 {
		sx = -sx
	}

	translation := m.Col(3).Vec3()

	r := m
	for col, s := range [3]float32{sx, sy, sz} {
		if s == 0 {
			continue
		}
		inv := 1 / s
		for row := 0; row < 3; row++ {
			r.Set(row, col, r.At(row, col)*inv)
		}
	}
	r.SetCol(3, mgl32.Vec4{0, 0, 0, 1})

	return translation, mgl32.Mat4ToQuat(r), mgl32.Vec3{sx, sy, sz}
}

// Canonical returns q normalized with a non-negative scalar part.
func Canonical(q mgl32.Quat) mgl32.Quat {
	if q.Len() == 0 {
		return mgl32.QuatIdent()
	}
	q = q.Normalize()
	if q.W < 0 {
		q = mgl32.Quat{W: -q.W, V: q.V.Mul(-1)}
	}

	return q
}

// ApplyToScaleRotation composes t·R·S and decomposes the result back into a scale
// and a canonical rotation.
func ApplyToScaleRotation(t *mgl32.Mat4, scale mgl32.Vec3, rotation mgl32.Quat) (mgl32.Vec3, mgl32.Quat) {
	m := t.Mul4(rotation.Mat4()).Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
	_, r, s := Decompose(m)

	return s, Canonical(r)
}

// CoefficientRotation is the 3×3 rotation applied to each degree-1 coefficient triple.
type CoefficientRotation [3]mgl32.Vec3

// NewCoefficientRotation derives the degree-1 coefficient rotation from the rotation
// part of t. Degree-1 basis functions are ordered y, z, x.
func NewCoefficientRotation(t *mgl32.Mat4) CoefficientRotation {
	_, q, _ := Decompose(*t)
	m := q.Normalize().Mat4().Mat3()

	return CoefficientRotation{
		{m[4], -m[7], m[1]},
		{-m[5], m[8], -m[2]},
		{m[3], -m[6], m[0]},
	}
}

// Rotate rotates the three degree-1 coefficient triples in place. c[k] holds the RGB
// coefficients of basis function k.
func (r CoefficientRotation) Rotate(c *[3]mgl32.Vec3) {
	in := *c
	for k := range 3 {
		row := r[k]
		c[k] = in[0].Mul(row[0]).Add(in[1].Mul(row[1])).Add(in[2].Mul(row[2]))
	}
}

// Covariance returns the upper triangle (xx, xy, xz, yy, yz, zz) of
// t3·(R·S)·(R·S)ᵀ·t3ᵀ, where t3 is the linear part of t. t may be nil.
func Covariance(scale mgl32.Vec3, rotation mgl32.Quat, t *mgl32.Mat4) [6]float32 {
	rs := rotation.Mat4().Mat3().Mul3(mgl32.Diag3(scale))
	cov := rs.Mul3(rs.Transpose())
	if t != nil {
		t3 := t.Mat3()
		cov = t3.Mul3(cov).Mul3(t3.Transpose())
	}

	return [6]float32{cov[0], cov[3], cov[6], cov[4], cov[7], cov[8]}
}
