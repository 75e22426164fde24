// Package layout holds the per compression level attribute size tables of a
// container element record.
//
// An element record is laid out as center, scale, rotation, color and directional
// coefficients, each attribute starting where the previous one ends. The tables are
// immutable and indexed by format.CompressionLevel.
package layout

import (
	"fmt"

	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
)

// Component counts per attribute.
const (
	CenterComponents     = 3
	ScaleComponents      = 3
	RotationComponents   = 4
	ColorComponents      = 4
	CovarianceComponents = 6
)

// MaxDegree is the highest directional coefficient degree a container can store.
const MaxDegree = 3

// coefficientCounts is the number of coefficient components stored per element for
// each degree: 9 for degree 1, 15 more for degree 2, 21 more for degree 3.
var coefficientCounts = [MaxDegree + 1]int{0, 9, 24, 45}

// Level is the attribute size table of one compression level.
type Level struct {
	BytesPerCenter      int
	BytesPerScale       int
	BytesPerRotation    int
	BytesPerColor       int
	BytesPerCoefficient int
	// ScaleRange is the position quantization range.
	ScaleRange uint32
	// BytesPerElement is indexed by directional coefficient degree.
	BytesPerElement [MaxDegree + 1]int
}

// Offsets are the byte offsets of each attribute inside one element record.
type Offsets struct {
	Center       int
	Scale        int
	Rotation     int
	Color        int
	Coefficients int
}

var levels = [format.LevelCount]Level{
	newLevel(12, 12, 16, 4, 4, 1),
	newLevel(6, 6, 8, 4, 2, 32767),
	newLevel(6, 6, 8, 4, 1, 32767),
}

var offsets = [format.LevelCount]Offsets{
	newOffsets(levels[0]),
	newOffsets(levels[1]),
	newOffsets(levels[2]),
}

func newLevel(center, scale, rotation, color, coefficient int, scaleRange uint32) Level {
	l := Level{
		BytesPerCenter:      center,
		BytesPerScale:       scale,
		BytesPerRotation:    rotation,
		BytesPerColor:       color,
		BytesPerCoefficient: coefficient,
		ScaleRange:          scaleRange,
	}
	base := center + scale + rotation + color
	for degree := range l.BytesPerElement {
		l.BytesPerElement[degree] = base + coefficientCounts[degree]*coefficient
	}

	return l
}

func newOffsets(l Level) Offsets {
	return Offsets{
		Center:       0,
		Scale:        l.BytesPerCenter,
		Rotation:     l.BytesPerCenter + l.BytesPerScale,
		Color:        l.BytesPerCenter + l.BytesPerScale + l.BytesPerRotation,
		Coefficients: l.BytesPerCenter + l.BytesPerScale + l.BytesPerRotation + l.BytesPerColor,
	}
}

// ForLevel returns the size table of level. The level must be valid.
func ForLevel(level format.CompressionLevel) Level {
	return levels[level]
}

// OffsetsForLevel returns the attribute offsets of level. The level must be valid.
func OffsetsForLevel(level format.CompressionLevel) Offsets {
	return offsets[level]
}

// CoefficientCount returns the number of coefficient components stored for degree.
// Degrees above MaxDegree are clamped.
func CoefficientCount(degree int) int {
	if degree <= 0 {
		return 0
	}
	if degree > MaxDegree {
		degree = MaxDegree
	}

	return coefficientCounts[degree]
}

// BytesPerElement returns the record size of one element.
func BytesPerElement(level format.CompressionLevel, degree int) int {
	return levels[level].BytesPerElement[degree]
}

// Storage is the complete per attribute breakdown of one element record.
type Storage struct {
	Level
	Offsets
	Degree                  int
	CoefficientComponents   int
	CoefficientBytes        int
	BytesPerElementAtDegree int
}

// StorageFor validates level and degree and returns the element storage breakdown.
//
// Returns:
//   - Storage: attribute sizes and offsets
//   - error: ErrInvalidCompressionLevel or ErrInvalidDegree
func StorageFor(level format.CompressionLevel, degree int) (Storage, error) {
	if !level.Valid() {
		return Storage{}, fmt.Errorf("%w: %d", errs.ErrInvalidCompressionLevel, level)
	}
	if degree < 0 || degree > MaxDegree {
		return Storage{}, fmt.Errorf("%w: %d", errs.ErrInvalidDegree, degree)
	}

	l := levels[level]
	count := coefficientCounts[degree]

	return Storage{
		Level:                   l,
		Offsets:                 offsets[level],
		Degree:                  degree,
		CoefficientComponents:   count,
		CoefficientBytes:        count * l.BytesPerCoefficient,
		BytesPerElementAtDegree: l.BytesPerElement[degree],
	}, nil
}
