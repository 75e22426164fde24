package container

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/internal/options"
	"github.com/arloliu/splatpack/section"
)

// ListOptions scales the global bucketing parameters for one input list.
//
// A zero factor means 1.0.
type ListOptions struct {
	BlockSizeFactor  float32
	BucketSizeFactor float32
}

// BuildConfig holds the encoder parameters.
type BuildConfig struct {
	// CompressionLevel selects the attribute precision. Default: format.LevelFull.
	CompressionLevel format.CompressionLevel
	// MinimumOpacity drops elements whose opacity (0-255) is below it. Default: 0.
	MinimumOpacity float32
	// ReferenceCenter is recorded in the header for consumers. Default: origin.
	ReferenceCenter [3]float32
	// BlockSize is the edge length of a bucketing grid cell. Default: section.DefaultBlockSize.
	BlockSize float32
	// BucketSize is the bucket capacity. Default: section.DefaultBucketSize.
	BucketSize int
	// ListOptions holds per-list overrides, indexed like the input lists. Lists
	// without an entry use the global parameters.
	ListOptions []ListOptions
	// Logger receives debug records while building. Nil disables logging.
	Logger *slog.Logger
}

// BuildOption configures a BuildConfig.
type BuildOption = options.Option[*BuildConfig]

// DefaultBuildConfig returns the configuration used when no options are given.
func DefaultBuildConfig() *BuildConfig {
	return &BuildConfig{
		CompressionLevel: format.LevelFull,
		BlockSize:        section.DefaultBlockSize,
		BucketSize:       section.DefaultBucketSize,
	}
}

// WithCompressionLevel sets the compression level.
func WithCompressionLevel(level format.CompressionLevel) BuildOption {
	return options.New(func(cfg *BuildConfig) error {
		if !level.Valid() {
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompressionLevel, level)
		}
		cfg.CompressionLevel = level

		return nil
	})
}

// WithMinimumOpacity sets the opacity threshold below which elements are dropped.
func WithMinimumOpacity(opacity float32) BuildOption {
	return options.NoError(func(cfg *BuildConfig) {
		cfg.MinimumOpacity = opacity
	})
}

// WithReferenceCenter sets the reference center recorded in the header.
func WithReferenceCenter(x, y, z float32) BuildOption {
	return options.NoError(func(cfg *BuildConfig) {
		cfg.ReferenceCenter = [3]float32{x, y, z}
	})
}

// WithBlockSize sets the global bucketing block size.
func WithBlockSize(size float32) BuildOption {
	return options.New(func(cfg *BuildConfig) error {
		if !(size > 0) {
			return fmt.Errorf("%w: %v", errs.ErrInvalidBlockSize, size)
		}
		cfg.BlockSize = size

		return nil
	})
}

// WithBucketSize sets the global bucket capacity.
func WithBucketSize(size int) BuildOption {
	return options.New(func(cfg *BuildConfig) error {
		if size <= 0 {
			return fmt.Errorf("%w: %d", errs.ErrInvalidBucketSize, size)
		}
		cfg.BucketSize = size

		return nil
	})
}

// WithListOptions sets the per-list bucketing overrides.
func WithListOptions(opts ...ListOptions) BuildOption {
	return options.NoError(func(cfg *BuildConfig) {
		cfg.ListOptions = append([]ListOptions(nil), opts...)
	})
}

// WithLogger sets the logger receiving build progress records.
func WithLogger(logger *slog.Logger) BuildOption {
	return options.NoError(func(cfg *BuildConfig) {
		cfg.Logger = logger
	})
}

// listParams returns the effective block size and bucket capacity of list i. The
// scaled capacity rounds up.
func (cfg *BuildConfig) listParams(i int) (float32, int) {
	blockFactor, bucketFactor := float32(1), float32(1)
	if i < len(cfg.ListOptions) {
		if f := cfg.ListOptions[i].BlockSizeFactor; f != 0 {
			blockFactor = f
		}
		if f := cfg.ListOptions[i].BucketSizeFactor; f != 0 {
			bucketFactor = f
		}
	}

	bucketSize := int(math.Ceil(float64(float32(cfg.BucketSize) * bucketFactor)))

	return cfg.BlockSize * blockFactor, bucketSize
}
