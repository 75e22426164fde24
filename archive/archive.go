// Package archive wraps a container buffer in a checksummed, optionally compressed
// envelope for storage and transmission.
//
// Envelope layout (little-endian):
//
//	+--------+---------+-------------+----------+------------+------------+---------+
//	| magic  | version | compression | reserved | raw length | xxHash64   | payload |
//	| "SPAK" | u8      | u8          | u16      | u64        | u64        | ...     |
//	+--------+---------+-------------+----------+------------+------------+---------+
//	0        4         5             6          8            16           24
//
// The checksum covers the raw container, so it verifies both the transport and the
// codec.
package archive

import (
	"bytes"
	"fmt"
	"time"

	"github.com/arloliu/splatpack/compress"
	"github.com/arloliu/splatpack/endian"
	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/internal/hash"
	"github.com/arloliu/splatpack/internal/pool"
)

// Frame constants.
const (
	FrameSize = 24
	Version   = 1
	// MaxRawLength bounds the raw container length a frame may declare.
	MaxRawLength = 1 << 36
)

// Magic identifies an archive envelope.
var Magic = [4]byte{'S', 'P', 'A', 'K'}

const (
	frameVersionOffset     = 4
	frameCompressionOffset = 5
	frameRawLengthOffset   = 8
	frameChecksumOffset    = 16
)

// FrameHeader is the fixed header of an envelope.
type FrameHeader struct {
	Version     uint8
	Compression format.CompressionType
	RawLength   uint64
	Checksum    uint64
}

// Parse decodes the frame header from the first FrameSize bytes of data.
func (h *FrameHeader) Parse(data []byte) error {
	if len(data) < FrameSize {
		return fmt.Errorf("%w: %d bytes is shorter than the frame", errs.ErrInvalidArchive, len(data))
	}
	if !bytes.Equal(data[:len(Magic)], Magic[:]) {
		return fmt.Errorf("%w: bad magic %q", errs.ErrInvalidArchive, data[:len(Magic)])
	}

	engine := endian.GetContainerEngine()
	h.Version = data[frameVersionOffset]
	if h.Version != Version {
		return fmt.Errorf("%w: archive version %d", errs.ErrUnsupportedVersion, h.Version)
	}
	h.Compression = format.CompressionType(data[frameCompressionOffset])
	h.RawLength = engine.Uint64(data[frameRawLengthOffset:])
	h.Checksum = engine.Uint64(data[frameChecksumOffset:])

	return nil
}

// WriteTo encodes the frame header into the first FrameSize bytes of buf.
func (h *FrameHeader) WriteTo(buf []byte) {
	engine := endian.GetContainerEngine()
	copy(buf, Magic[:])
	buf[frameVersionOffset] = h.Version
	buf[frameCompressionOffset] = uint8(h.Compression)
	engine.PutUint16(buf[frameCompressionOffset+1:], 0)
	engine.PutUint64(buf[frameRawLengthOffset:], h.RawLength)
	engine.PutUint64(buf[frameChecksumOffset:], h.Checksum)
}

// Pack compresses container with comp and prepends the frame header.
func Pack(container []byte, comp format.CompressionType) ([]byte, error) {
	out, _, err := PackStats(container, comp)
	return out, err
}

// PackStats is Pack that also reports sizes and compression time.
func PackStats(container []byte, comp format.CompressionType) ([]byte, compress.CompressionStats, error) {
	codec, err := compress.CreateCodec(comp, "archive")
	if err != nil {
		return nil, compress.CompressionStats{}, err
	}

	start := time.Now()
	payload, err := codec.Compress(container)
	if err != nil {
		return nil, compress.CompressionStats{}, fmt.Errorf("compress container: %w", err)
	}
	elapsed := time.Since(start)

	h := FrameHeader{
		Version:     Version,
		Compression: comp,
		RawLength:   uint64(len(container)),
		Checksum:    hash.Checksum(container),
	}

	bb := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(bb)

	bb.Grow(FrameSize + len(payload))
	h.WriteTo(bb.ExtendOrGrow(FrameSize))
	bb.MustWrite(payload)

	out := bytes.Clone(bb.Bytes())
	stats := compress.CompressionStats{
		Algorithm:         comp,
		OriginalSize:      int64(len(container)),
		CompressedSize:    int64(len(payload)),
		CompressionTimeNs: elapsed.Nanoseconds(),
	}

	return out, stats, nil
}

// Unpack verifies an envelope and returns the raw container bytes. The result never
// aliases data.
func Unpack(data []byte) ([]byte, error) {
	var h FrameHeader
	if err := h.Parse(data); err != nil {
		return nil, err
	}

	if h.RawLength > MaxRawLength {
		return nil, fmt.Errorf("%w: raw length %d exceeds %d", errs.ErrInvalidArchive, h.RawLength, uint64(MaxRawLength))
	}

	codec, err := compress.GetCodec(h.Compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidArchive, err)
	}

	payload := data[FrameSize:]
	if h.Compression == format.CompressionNone && uint64(len(payload)) != h.RawLength {
		return nil, fmt.Errorf("%w: payload is %d bytes, frame says %d", errs.ErrInvalidArchive, len(payload), h.RawLength)
	}
	var raw []byte
	if sized, ok := codec.(compress.SizedDecompressor); ok {
		raw, err = sized.DecompressSized(payload, int(h.RawLength))
	} else {
		raw, err = codec.Decompress(payload)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidArchive, err)
	}

	if uint64(len(raw)) != h.RawLength {
		return nil, fmt.Errorf("%w: payload decoded to %d bytes, frame says %d", errs.ErrInvalidArchive, len(raw), h.RawLength)
	}
	if !hash.Verify(raw, h.Checksum) {
		return nil, errs.ErrChecksumMismatch
	}

	if h.Compression == format.CompressionNone {
		raw = bytes.Clone(raw)
	}

	return raw, nil
}

// Inspect parses the frame header and reports the envelope sizes without
// decompressing the payload.
func Inspect(data []byte) (FrameHeader, compress.CompressionStats, error) {
	var h FrameHeader
	if err := h.Parse(data); err != nil {
		return FrameHeader{}, compress.CompressionStats{}, err
	}

	return h, compress.CompressionStats{
		Algorithm:      h.Compression,
		OriginalSize:   int64(h.RawLength),
		CompressedSize: int64(len(data) - FrameSize),
	}, nil
}
