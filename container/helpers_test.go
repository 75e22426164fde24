package container

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/splatpack/splat"
)

// randomArray returns n fully opaque elements with centers in [-extent, extent) and
// rotations with a non-negative scalar part.
func randomArray(n, degree int, extent float32, seed int64) *splat.Array {
	r := rand.New(rand.NewSource(seed))
	a := splat.NewArray(degree)
	for range n {
		q := mgl32.Quat{
			W: r.Float32()*2 - 1,
			V: mgl32.Vec3{r.Float32()*2 - 1, r.Float32()*2 - 1, r.Float32()*2 - 1},
		}.Normalize()
		if q.W < 0 {
			q = mgl32.Quat{W: -q.W, V: q.V.Mul(-1)}
		}

		e := a.AddDefault()
		e[splat.X] = (r.Float32()*2 - 1) * extent
		e[splat.Y] = (r.Float32()*2 - 1) * extent
		e[splat.Z] = (r.Float32()*2 - 1) * extent
		e[splat.Scale0] = 0.01 + r.Float32()
		e[splat.Scale1] = 0.01 + r.Float32()
		e[splat.Scale2] = 0.01 + r.Float32()
		e[splat.Rot0], e[splat.Rot1], e[splat.Rot2], e[splat.Rot3] = q.W, q.V[0], q.V[1], q.V[2]
		e[splat.FDC0] = float32(r.Intn(256))
		e[splat.FDC1] = float32(r.Intn(256))
		e[splat.FDC2] = float32(r.Intn(256))
		e[splat.Opacity] = 255
		for j := splat.FRC0; j < len(e); j++ {
			e[j] = r.Float32()*2 - 1
		}
	}

	return a
}

// elementIndexByCenter maps decoded element order back to input order by matching
// centers within tol. Levels 1 and 2 reorder elements by bucket.
func elementIndexByCenter(t *testing.T, c *Container, src *splat.Array, tol float32) []int {
	t.Helper()

	mapping := make([]int, c.ElementCount())
	used := make([]bool, src.Len())
	for i := range mapping {
		center, err := c.Center(i, nil)
		require.NoError(t, err)

		mapping[i] = -1
		for j, e := range src.Elements {
			if used[j] {
				continue
			}
			d := mgl32.Vec3{e[splat.X], e[splat.Y], e[splat.Z]}.Sub(center)
			if abs32(d[0]) <= tol && abs32(d[1]) <= tol && abs32(d[2]) <= tol {
				mapping[i] = j
				used[j] = true

				break
			}
		}
		require.NotEqual(t, -1, mapping[i], "decoded element %d has no source match", i)
	}

	return mapping
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}

	return v
}

// requireSameRotation asserts whether a and b describe the same rotation within tol.
func requireSameRotation(t *testing.T, want, got mgl32.Quat, tol float64) {
	t.Helper()

	dot := want.Dot(got)
	if dot < 0 {
		got = mgl32.Quat{W: -got.W, V: got.V.Mul(-1)}
	}
	require.InDelta(t, want.W, got.W, tol)
	require.InDelta(t, want.V[0], got.V[0], tol)
	require.InDelta(t, want.V[1], got.V[1], tol)
	require.InDelta(t, want.V[2], got.V[2], tol)
}
