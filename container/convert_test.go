package container

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/quant"
	"github.com/arloliu/splatpack/splat"
)

func TestExport(t *testing.T) {
	src := randomArray(25, 1, 2, 6)
	c, err := Build([]*splat.Array{src}, WithReferenceCenter(4, 5, 6))
	require.NoError(t, err)

	out, err := c.Export(0)
	require.NoError(t, err)
	require.Equal(t, 1, out.Degree)
	require.Equal(t, src.Len(), out.Len())
	for i, e := range src.Elements {
		got := out.Elements[i]
		require.Len(t, got, splat.ComponentCount(1))
		require.Equal(t, e[:splat.Scale2+1], got[:splat.Scale2+1])
		require.InDeltaSlice(t, e[splat.Rot0:splat.Rot3+1], got[splat.Rot0:splat.Rot3+1], 1e-6)
		require.Equal(t, e[splat.FDC0:], got[splat.FDC0:])
	}

	_, err = c.Export(1)
	require.ErrorIs(t, err, errs.ErrSectionIndexOutOfRange)
}

func TestConvert(t *testing.T) {
	first, second := randomArray(120, 1, 3, 12), randomArray(10, 1, 3, 13)
	all := splat.NewArray(1)
	all.Elements = append(append(all.Elements, first.Elements...), second.Elements...)

	full, err := Build([]*splat.Array{first, second}, WithReferenceCenter(1, 1, 1))
	require.NoError(t, err)

	half, err := full.Convert(format.LevelHalf, WithBlockSize(1), WithBucketSize(32))
	require.NoError(t, err)
	require.Equal(t, format.LevelHalf, half.CompressionLevel())
	require.Equal(t, full.ElementCount(), half.ElementCount())
	require.Equal(t, full.SectionCount(), half.SectionCount())
	require.Equal(t, [3]float32{1, 1, 1}, half.ReferenceCenter())
	require.Equal(t, uint32(120), half.Sections()[0].Header.MaxElementCount)

	tol := quant.PositionError(1, quant.QuantizedScaleRange) + 1e-5
	mapping := elementIndexByCenter(t, half, all, tol)
	require.Len(t, mapping, 130)

	back, err := half.Convert(format.LevelFull)
	require.NoError(t, err)
	require.Equal(t, format.LevelFull, back.CompressionLevel())
	require.Equal(t, 130, back.ElementCount())
}
