package section

// Fixed region sizes of the container in bytes.
const (
	HeaderSize              = 4096 // global header
	SectionHeaderSize       = 1024 // one section header
	BucketStorageSize       = 12   // one bucket center: 3 × f32
	PartialBucketLengthSize = 4    // one partial bucket length: u32
)

// Current format version.
const (
	VersionMajor = 0
	VersionMinor = 1
)

// Bucketing defaults used when the caller does not provide a block or bucket size.
const (
	DefaultBlockSize  = 5.0
	DefaultBucketSize = 256
)

// Header field offsets.
const (
	hdrVersionMajorOffset    = 0
	hdrVersionMinorOffset    = 1
	hdrMaxSectionCountOffset = 4
	hdrSectionCountOffset    = 8
	hdrMaxElementCountOffset = 12
	hdrElementCountOffset    = 16
	hdrCompressionOffset     = 20
	hdrCenterOffset          = 24
	hdrCoeffMinOffset        = 36
	hdrCoeffMaxOffset        = 40
)

// Section header field offsets.
const (
	secElementCountOffset       = 0
	secMaxElementCountOffset    = 4
	secBucketSizeOffset         = 8
	secBucketCountOffset        = 12
	secBlockSizeOffset          = 16
	secBucketStorageSizeOffset  = 20
	secScaleRangeOffset         = 24
	secStorageSizeOffset        = 28
	secFullBucketCountOffset    = 32
	secPartialBucketCountOffset = 36
	secDegreeOffset             = 40
)

// SectionHeaderOffset returns the byte offset of section header i.
func SectionHeaderOffset(i int) int {
	return HeaderSize + i*SectionHeaderSize
}

// DataOffset returns the byte offset of the first section data block for a container
// with maxSectionCount sections.
func DataOffset(maxSectionCount int) int {
	return HeaderSize + maxSectionCount*SectionHeaderSize
}
