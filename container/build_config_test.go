package container

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/internal/options"
	"github.com/arloliu/splatpack/section"
)

func TestDefaultBuildConfig(t *testing.T) {
	cfg := DefaultBuildConfig()
	require.Equal(t, format.LevelFull, cfg.CompressionLevel)
	require.Equal(t, float32(section.DefaultBlockSize), cfg.BlockSize)
	require.Equal(t, section.DefaultBucketSize, cfg.BucketSize)
	require.Zero(t, cfg.MinimumOpacity)
	require.Nil(t, cfg.Logger)
}

func TestBuildOptions(t *testing.T) {
	logger := slog.Default()
	cfg := DefaultBuildConfig()
	err := options.Apply(cfg,
		WithCompressionLevel(format.LevelHalfUint8),
		WithMinimumOpacity(12),
		WithReferenceCenter(1, 2, 3),
		WithBlockSize(2.5),
		WithBucketSize(64),
		WithListOptions(ListOptions{BlockSizeFactor: 2}, ListOptions{BucketSizeFactor: 0.5}),
		WithLogger(logger),
	)
	require.NoError(t, err)
	require.Equal(t, format.LevelHalfUint8, cfg.CompressionLevel)
	require.Equal(t, float32(12), cfg.MinimumOpacity)
	require.Equal(t, [3]float32{1, 2, 3}, cfg.ReferenceCenter)
	require.Equal(t, float32(2.5), cfg.BlockSize)
	require.Equal(t, 64, cfg.BucketSize)
	require.Len(t, cfg.ListOptions, 2)
	require.Same(t, logger, cfg.Logger)

	t.Run("list params", func(t *testing.T) {
		block, bucketSize := cfg.listParams(0)
		require.Equal(t, float32(5), block)
		require.Equal(t, 64, bucketSize)

		block, bucketSize = cfg.listParams(1)
		require.Equal(t, float32(2.5), block)
		require.Equal(t, 32, bucketSize)

		block, bucketSize = cfg.listParams(7)
		require.Equal(t, float32(2.5), block)
		require.Equal(t, 64, bucketSize)
		fractional := DefaultBuildConfig()
		require.NoError(t, options.Apply(fractional, WithListOptions(
			ListOptions{BucketSizeFactor: 0.33},
			ListOptions{BucketSizeFactor: 0.1},
		)))
		_, bucketSize = fractional.listParams(0)
		require.Equal(t, 85, bucketSize)
		_, bucketSize = fractional.listParams(1)
		require.Equal(t, 26, bucketSize)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		require.ErrorIs(t, options.Apply(DefaultBuildConfig(), WithCompressionLevel(9)), errs.ErrInvalidCompressionLevel)
		require.ErrorIs(t, options.Apply(DefaultBuildConfig(), WithBlockSize(-1)), errs.ErrInvalidBlockSize)
		require.ErrorIs(t, options.Apply(DefaultBuildConfig(), WithBucketSize(-3)), errs.ErrInvalidBucketSize)
	})
}
