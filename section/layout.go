package section

import (
	"fmt"

	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/layout"
	"github.com/arloliu/splatpack/quant"
)

// Layout is the set of byte offsets and sizes of one section, derived from its stored
// header fields.
type Layout struct {
	// BytesPerElement is the size of one element record.
	BytesPerElement int
	// ElementOffset is the global index of the section's first element.
	ElementOffset uint32
	// Base is the absolute byte offset of the section data block.
	Base int
	// BucketsBase is the absolute byte offset of the bucket center array.
	BucketsBase int
	// DataBase is the absolute byte offset of the first element record.
	DataBase int
	// PartialLengthsSize is the size of the partial bucket length array.
	PartialLengthsSize int
	// BucketsStorageSize covers the partial lengths and the bucket centers.
	BucketsStorageSize int
	// ElementDataSize is BytesPerElement × MaxElementCount.
	ElementDataSize int
	// StorageSize is the size of the whole section data block.
	StorageSize int
	// ScaleRange is the position quantization range, falling back to the level default.
	ScaleRange uint32
	// DecodeFactor converts a quantized position offset back to world units.
	DecodeFactor float32
}

// End returns the byte offset just past the section data block.
func (l Layout) End() int {
	return l.Base + l.StorageSize
}

// DeriveLayout computes the byte layout of a section from its stored fields.
//
// Parameters:
//   - stored: Parsed section header fields
//   - level: Compression level of the container
//   - base: Absolute byte offset of the section data block
//   - elementOffset: Global index of the section's first element
//
// Returns:
//   - Layout: Derived offsets and sizes
//   - error: ErrInvalidDegree if the stored degree is above layout.MaxDegree
func DeriveLayout(stored SectionHeader, level format.CompressionLevel, base int, elementOffset uint32) (Layout, error) {
	storage, err := layout.StorageFor(level, int(stored.Degree))
	if err != nil {
		return Layout{}, err
	}

	scaleRange := stored.ScaleRange
	if scaleRange == 0 {
		scaleRange = storage.ScaleRange
	}

	partialSize := int(stored.PartialBucketCount) * PartialBucketLengthSize
	bucketsSize := int(stored.BucketStorageSize)*int(stored.BucketCount) + partialSize
	dataSize := storage.BytesPerElementAtDegree * int(stored.MaxElementCount)

	l := Layout{
		BytesPerElement:    storage.BytesPerElementAtDegree,
		ElementOffset:      elementOffset,
		Base:               base,
		BucketsBase:        base + partialSize,
		DataBase:           base + bucketsSize,
		PartialLengthsSize: partialSize,
		BucketsStorageSize: bucketsSize,
		ElementDataSize:    dataSize,
		StorageSize:        bucketsSize + dataSize,
		ScaleRange:         scaleRange,
	}
	if stored.BlockSize > 0 {
		l.DecodeFactor = quant.DecodeFactor(stored.BlockSize, scaleRange)
	}

	return l, nil
}

// Section pairs the stored header fields of a section with its derived layout.
type Section struct {
	Index  int
	Header SectionHeader
	Layout Layout
}

// ParseSectionHeaders parses all MaxSectionCount section headers of a container.
//
// Parsing is O(MaxSectionCount): the data blocks are located but not validated. A
// section whose data block runs past the end of buf is reported lazily by the
// accessor that touches it.
//
// Parameters:
//   - h: Parsed global header
//   - buf: Whole container buffer
//   - offset: Byte offset of the first section header, normally HeaderSize
//
// Returns:
//   - []Section: One entry per section in header order
//   - error: ErrInvalidSectionHeaderSize if the header region is truncated, or
//     ErrInvalidDegree from DeriveLayout
func ParseSectionHeaders(h Header, buf []byte, offset int) ([]Section, error) {
	count := int(h.MaxSectionCount)
	if offset < 0 || len(buf) < offset+count*SectionHeaderSize {
		return nil, errs.ErrInvalidSectionHeaderSize
	}

	sections := make([]Section, count)
	base := offset + count*SectionHeaderSize
	var elementOffset uint32

	for i := range sections {
		headerBase := offset + i*SectionHeaderSize

		var stored SectionHeader
		if err := stored.Parse(buf[headerBase:]); err != nil {
			return nil, err
		}

		l, err := DeriveLayout(stored, h.CompressionLevel, base, elementOffset)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}

		sections[i] = Section{Index: i, Header: stored, Layout: l}
		base += l.StorageSize
		elementOffset += stored.MaxElementCount
	}

	return sections, nil
}
