package section

import (
	"github.com/arloliu/splatpack/endian"
	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
)

// SectionHeader holds the stored fields of one 1024-byte section header.
//
// Byte offsets of the section's regions are not part of it; see DeriveLayout.
type SectionHeader struct {
	ElementCount       uint32  // byte offset 0-3
	MaxElementCount    uint32  // byte offset 4-7
	BucketSize         uint32  // byte offset 8-11
	BucketCount        uint32  // byte offset 12-15
	BlockSize          float32 // byte offset 16-19
	BucketStorageSize  uint16  // byte offset 20-21
	ScaleRange         uint32  // byte offset 24-27
	StorageSize        uint32  // byte offset 28-31
	FullBucketCount    uint32  // byte offset 32-35
	PartialBucketCount uint32  // byte offset 36-39
	Degree             uint16  // byte offset 40-41
}

// Parse parses the section header from the first SectionHeaderSize bytes of data.
func (s *SectionHeader) Parse(data []byte) error {
	if len(data) < SectionHeaderSize {
		return errs.ErrInvalidSectionHeaderSize
	}

	engine := endian.GetContainerEngine()

	s.ElementCount = engine.Uint32(data[secElementCountOffset:])
	s.MaxElementCount = engine.Uint32(data[secMaxElementCountOffset:])
	s.BucketSize = engine.Uint32(data[secBucketSizeOffset:])
	s.BucketCount = engine.Uint32(data[secBucketCountOffset:])
	s.BlockSize = endian.Float32(engine, data[secBlockSizeOffset:])
	s.BucketStorageSize = engine.Uint16(data[secBucketStorageSizeOffset:])
	s.ScaleRange = engine.Uint32(data[secScaleRangeOffset:])
	s.StorageSize = engine.Uint32(data[secStorageSizeOffset:])
	s.FullBucketCount = engine.Uint32(data[secFullBucketCountOffset:])
	s.PartialBucketCount = engine.Uint32(data[secPartialBucketCountOffset:])
	s.Degree = engine.Uint16(data[secDegreeOffset:])

	return nil
}

// WriteTo writes the section header into the first SectionHeaderSize bytes of buf.
//
// At level 0 the bucket related fields are written as zero, and at levels 1 and 2 the
// bucket storage size is always BucketStorageSize.
func (s *SectionHeader) WriteTo(level format.CompressionLevel, buf []byte) error {
	if len(buf) < SectionHeaderSize {
		return errs.ErrInvalidSectionHeaderSize
	}

	region := buf[:SectionHeaderSize]
	clear(region)

	engine := endian.GetContainerEngine()
	bucketed := level.Bucketed()

	engine.PutUint32(region[secElementCountOffset:], s.ElementCount)
	engine.PutUint32(region[secMaxElementCountOffset:], s.MaxElementCount)
	engine.PutUint32(region[secStorageSizeOffset:], s.StorageSize)
	engine.PutUint16(region[secDegreeOffset:], s.Degree)

	if bucketed {
		engine.PutUint32(region[secBucketSizeOffset:], s.BucketSize)
		engine.PutUint32(region[secBucketCountOffset:], s.BucketCount)
		endian.PutFloat32(engine, region[secBlockSizeOffset:], s.BlockSize)
		engine.PutUint16(region[secBucketStorageSizeOffset:], BucketStorageSize)
		engine.PutUint32(region[secScaleRangeOffset:], s.ScaleRange)
		engine.PutUint32(region[secFullBucketCountOffset:], s.FullBucketCount)
		engine.PutUint32(region[secPartialBucketCountOffset:], s.PartialBucketCount)
	}

	return nil
}

// WriteSectionElementCount overwrites only the active element count of the section
// header starting at offset in buf.
func WriteSectionElementCount(count uint32, buf []byte, offset int) error {
	if offset < 0 || len(buf) < offset+SectionHeaderSize {
		return errs.ErrInvalidSectionHeaderSize
	}

	endian.GetContainerEngine().PutUint32(buf[offset+secElementCountOffset:], count)

	return nil
}
