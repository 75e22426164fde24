package container

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/splatpack/endian"
	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/quant"
	"github.com/arloliu/splatpack/section"
	"github.com/arloliu/splatpack/splat"
)

func singleElement(t *testing.T, level format.CompressionLevel, scale [3]float32, rot mgl32.Quat) *Container {
	t.Helper()

	list := splat.NewArray(1)
	coeffs := []float32{0.1, 0.2, 0.3, -0.1, -0.2, -0.3, 0.5, 0.25, -0.5}
	list.AddFromComponents(1, 2, 3, scale[0], scale[1], scale[2], rot.W, rot.V[0], rot.V[1], rot.V[2], 10, 20, 30, 200, coeffs...)

	c, err := Build([]*splat.Array{list}, WithCompressionLevel(level))
	require.NoError(t, err)

	return c
}

func TestGetters_IndexOutOfRange(t *testing.T) {
	c, err := Build([]*splat.Array{randomArray(5, 1, 1, 1)})
	require.NoError(t, err)

	for _, i := range []int{-1, 5, 100} {
		_, err := c.Center(i, nil)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		_, _, err = c.ScaleAndRotation(i, nil, nil)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		_, err = c.Color(i)
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		_, err = c.Coefficients(i, make([]float32, 9))
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	}
}

func TestCoefficients_DestinationTooSmall(t *testing.T) {
	c := singleElement(t, format.LevelFull, [3]float32{1, 1, 1}, mgl32.QuatIdent())

	_, err := c.Coefficients(0, make([]float32, 8))
	require.ErrorIs(t, err, errs.ErrDestinationTooSmall)

	dst := make([]float32, 12)
	n, err := c.Coefficients(0, dst)
	require.NoError(t, err)
	require.Equal(t, 9, n)
	require.Equal(t, []float32{0.1, 0.2, 0.3, -0.1, -0.2, -0.3, 0.5, 0.25, -0.5}, dst[:9])
}

func TestCenter_Transform(t *testing.T) {
	c := singleElement(t, format.LevelFull, [3]float32{1, 1, 1}, mgl32.QuatIdent())

	m := mgl32.Translate3D(10, 20, 30)
	center, err := c.Center(0, &m)
	require.NoError(t, err)
	require.Equal(t, mgl32.Vec3{11, 22, 33}, center)

	m = mgl32.Scale3D(2, 2, 2)
	center, err = c.Center(0, &m)
	require.NoError(t, err)
	require.Equal(t, mgl32.Vec3{2, 4, 6}, center)
}

func TestScaleAndRotation_TransformAndOverride(t *testing.T) {
	c := singleElement(t, format.LevelFull, [3]float32{0.5, 1, 2}, mgl32.QuatIdent())

	t.Run("override", func(t *testing.T) {
		y := float32(7)
		scale, _, err := c.ScaleAndRotation(0, nil, &ScaleOverride{Y: &y})
		require.NoError(t, err)
		require.Equal(t, mgl32.Vec3{0.5, 7, 2}, scale)
	})

	t.Run("rotation about z", func(t *testing.T) {
		q := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1})
		m := q.Mat4()
		scale, rotation, err := c.ScaleAndRotation(0, &m, nil)
		require.NoError(t, err)
		require.InDeltaSlice(t, []float32{0.5, 1, 2}, scale[:], 1e-5)
		requireSameRotation(t, q, rotation, 1e-5)
		require.GreaterOrEqual(t, rotation.W, float32(0))
	})

	t.Run("uniform scale and translation", func(t *testing.T) {
		m := mgl32.Translate3D(5, 5, 5).Mul4(mgl32.Scale3D(3, 3, 3))
		scale, rotation, err := c.ScaleAndRotation(0, &m, nil)
		require.NoError(t, err)
		require.InDeltaSlice(t, []float32{1.5, 3, 6}, scale[:], 1e-5)
		requireSameRotation(t, mgl32.QuatIdent(), rotation, 1e-5)
	})

	t.Run("scalar part made non-negative", func(t *testing.T) {
		neg := singleElement(t, format.LevelFull, [3]float32{1, 1, 1}, mgl32.Quat{W: -1})
		m := mgl32.Ident4()
		_, rotation, err := neg.ScaleAndRotation(0, &m, nil)
		require.NoError(t, err)
		require.InDelta(t, 1, rotation.W, 1e-6)
	})
}

func TestNew_FormatErrors(t *testing.T) {
	c, err := Build([]*splat.Array{randomArray(20, 1, 2, 3)}, WithCompressionLevel(format.LevelHalf))
	require.NoError(t, err)

	t.Run("short header", func(t *testing.T) {
		_, err := New(c.Bytes()[:section.HeaderSize-1])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("short section headers", func(t *testing.T) {
		_, err := New(c.Bytes()[:section.HeaderSize+10])
		require.ErrorIs(t, err, errs.ErrInvalidSectionHeaderSize)
	})

	t.Run("truncated data is reported lazily", func(t *testing.T) {
		buf := c.Bytes()
		truncated, err := New(buf[:len(buf)-1])
		require.NoError(t, err)

		_, err = truncated.Center(0, nil)
		require.ErrorIs(t, err, errs.ErrTruncatedSection)
	})

	t.Run("max element count larger than buffer", func(t *testing.T) {
		small, err := Allocate(4, 0, [3]float32{})
		require.NoError(t, err)
		buf := append([]byte(nil), small.Bytes()...)
		engine := endian.GetContainerEngine()
		engine.PutUint32(buf[12:], 4_000_000_000)
		engine.PutUint32(buf[section.SectionHeaderOffset(0)+4:], 4_000_000_000)

		_, err = New(buf)
		require.ErrorIs(t, err, errs.ErrTruncatedSection)
	})

	t.Run("version mismatch", func(t *testing.T) {
		buf := append([]byte(nil), c.Bytes()...)
		buf[0] = section.VersionMajor + 1
		_, err := New(buf)
		require.ErrorIs(t, err, errs.ErrUnsupportedVersion)
	})

	t.Run("count mismatch", func(t *testing.T) {
		buf := append([]byte(nil), c.Bytes()...)
		endian.GetContainerEngine().PutUint32(buf[12:], 21)
		_, err := New(buf)
		require.ErrorIs(t, err, errs.ErrCountMismatch)
	})
}

func TestCenter_PartialBucketScan(t *testing.T) {
	src := randomArray(200, 0, 2, 11)
	c, err := Build([]*splat.Array{src},
		WithCompressionLevel(format.LevelHalfUint8),
		WithBlockSize(1.5),
		WithBucketSize(3),
	)
	require.NoError(t, err)

	s := c.Sections()[0]
	require.Positive(t, s.Header.PartialBucketCount)
	require.Positive(t, s.Header.FullBucketCount)

	tol := quant.PositionError(1.5, quant.QuantizedScaleRange) + 1e-5
	mapping := elementIndexByCenter(t, c, src, tol)
	require.Len(t, mapping, src.Len())
}

func TestBucketIndex(t *testing.T) {
	list := splat.NewArray(0)
	for _, p := range [][3]float32{{0.1, 0.1, 0.1}, {0.2, 0.2, 0.2}, {3.5, 0.1, 0.1}, {0.3, 0.3, 0.3}, {3.6, 0.2, 0.2}, {3.7, 0.3, 0.3}} {
		list.AddFromComponents(p[0], p[1], p[2], 1, 1, 1, 1, 0, 0, 0, 255, 255, 255, 255)
	}
	c, err := Build([]*splat.Array{list},
		WithCompressionLevel(format.LevelHalf),
		WithBlockSize(1),
		WithBucketSize(2),
	)
	require.NoError(t, err)

	// Full buckets: A(0,1), B(2,4). Partial: A(3), B(5).
	s := &c.sections[0]
	for local, want := range []int{0, 0, 1, 1, 2, 3} {
		got, err := c.bucketIndex(s, local)
		require.NoError(t, err)
		require.Equal(t, want, got, "local %d", local)
	}

	_, err = c.bucketIndex(s, 6)
	require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
}
