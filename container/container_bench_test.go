package container

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/splat"
)

func benchContainer(b *testing.B, level format.CompressionLevel, n int) *Container {
	b.Helper()

	c, err := Build([]*splat.Array{randomArray(n, 1, 20, 1)}, WithCompressionLevel(level))
	if err != nil {
		b.Fatal(err)
	}

	return c
}

func BenchmarkBuild(b *testing.B) {
	lists := []*splat.Array{randomArray(10000, 1, 20, 1)}
	for _, level := range []format.CompressionLevel{format.LevelFull, format.LevelHalf, format.LevelHalfUint8} {
		b.Run(level.String(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := Build(lists, WithCompressionLevel(level)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFillCenters(b *testing.B) {
	const n = 10000
	for _, level := range []format.CompressionLevel{format.LevelFull, format.LevelHalf} {
		b.Run(level.String(), func(b *testing.B) {
			c := benchContainer(b, level, n)
			dst := make([]float32, 3*n)
			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				if err := c.FillCenters(dst, 0, n, FillOptions{}); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkFillScaleRotation(b *testing.B) {
	const n = 10000
	c := benchContainer(b, format.LevelHalf, n)
	scales := make([]float32, 3*n)
	rotations := make([]float32, 4*n)
	m := mgl32.HomogRotate3DY(0.3)

	b.Run("direct", func(b *testing.B) {
		for b.Loop() {
			if err := c.FillScaleRotation(scales, rotations, 0, n, FillOptions{OutputLevel: format.LevelHalf}); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("transform", func(b *testing.B) {
		for b.Loop() {
			if err := c.FillScaleRotation(scales, rotations, 0, n, FillOptions{Transform: &m}); err != nil {
				b.Fatal(err)
			}
		}
	})
}
