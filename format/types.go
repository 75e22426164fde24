// Package format holds the small enumerations shared by the container codec,
// the builder and the archive envelope.
package format

type (
	// CompressionLevel selects one of the three attribute precision schemes of a container.
	CompressionLevel uint8
	// CompressionType selects the general purpose codec of an archive envelope.
	CompressionType uint8
)

const (
	LevelFull      CompressionLevel = 0 // LevelFull stores every attribute as float32.
	LevelHalf      CompressionLevel = 1 // LevelHalf stores attributes as half floats and centers bucket-relative.
	LevelHalfUint8 CompressionLevel = 2 // LevelHalfUint8 is LevelHalf with 8-bit range quantized coefficients.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// LevelCount is the number of defined compression levels.
const LevelCount = 3

// Valid reports whether l is one of the defined compression levels.
func (l CompressionLevel) Valid() bool {
	return l <= LevelHalfUint8
}

// Bucketed reports whether centers at this level are stored relative to bucket centers.
func (l CompressionLevel) Bucketed() bool {
	return l >= LevelHalf
}

func (l CompressionLevel) String() string {
	switch l {
	case LevelFull:
		return "Full"
	case LevelHalf:
		return "Half"
	case LevelHalfUint8:
		return "HalfUint8"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
