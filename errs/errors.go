// Package errs defines the sentinel errors returned by splatpack packages.
//
// Callers should compare with errors.Is, since most call sites wrap the sentinel
// with the offending index or size.
package errs

import "errors"

// Format errors. These are raised lazily, when a parse or decode touches the
// malformed region of a buffer.
var (
	ErrInvalidHeaderSize        = errors.New("invalid header size")
	ErrInvalidSectionHeaderSize = errors.New("invalid section header size")
	ErrUnsupportedVersion       = errors.New("unsupported container version")
	ErrInvalidCompressionLevel  = errors.New("invalid compression level")
	ErrInvalidDegree            = errors.New("invalid directional coefficient degree")
	ErrTruncatedSection         = errors.New("section data exceeds buffer length")
	ErrInvalidArchive           = errors.New("invalid archive envelope")
	ErrChecksumMismatch         = errors.New("archive checksum mismatch")
	ErrCountMismatch            = errors.New("section max counts do not sum to header max element count")
)

// Range errors.
var (
	ErrIndexOutOfRange        = errors.New("element index out of range")
	ErrSectionIndexOutOfRange = errors.New("section index out of range")
	ErrCountExceedsMax        = errors.New("count exceeds allocated maximum")
	ErrDestinationTooSmall    = errors.New("destination slice too small")
)

// Builder errors.
var (
	ErrNoElementLists    = errors.New("no element lists provided")
	ErrInvalidBlockSize  = errors.New("block size must be positive")
	ErrInvalidBucketSize = errors.New("bucket size must be positive")
	ErrStreamFull        = errors.New("stream writer reached max element count")
	ErrSectionTooLarge   = errors.New("section storage size exceeds 4 GiB")
)
