package section

import (
	"fmt"

	"github.com/arloliu/splatpack/endian"
	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/quant"
)

// Header represents the fixed 4096-byte global header at the start of a container.
type Header struct {
	// VersionMajor must match VersionMajor for the container to be readable.
	VersionMajor uint8 // byte offset 0
	// VersionMinor is informational.
	VersionMinor uint8 // byte offset 1
	// MaxSectionCount is fixed at allocation time.
	MaxSectionCount uint32 // byte offset 4-7
	// SectionCount is the number of sections currently visible, at most MaxSectionCount.
	SectionCount uint32 // byte offset 8-11
	// MaxElementCount is fixed at allocation time.
	MaxElementCount uint32 // byte offset 12-15
	// ElementCount is the number of elements currently visible, at most MaxElementCount.
	ElementCount uint32 // byte offset 16-19
	// CompressionLevel selects the attribute encoding of every section.
	CompressionLevel format.CompressionLevel // byte offset 20-21
	// ReferenceCenter is the scene center the container was built around.
	ReferenceCenter [3]float32 // byte offset 24-35
	// CoefficientRange is the 8-bit quantization range of directional coefficients.
	CoefficientRange quant.Range // byte offset 36-43
}

// NewHeader creates a header of the current version with the default coefficient range.
func NewHeader(level format.CompressionLevel) *Header {
	return &Header{
		VersionMajor:     VersionMajor,
		VersionMinor:     VersionMinor,
		CompressionLevel: level,
		CoefficientRange: quant.DefaultCoefficientRange,
	}
}

// Parse parses the header from a byte slice.
//
// Parameters:
//   - data: Byte slice starting with the header (at least HeaderSize bytes)
//
// Returns:
//   - error: ErrInvalidHeaderSize, ErrUnsupportedVersion or ErrInvalidCompressionLevel
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetContainerEngine()

	h.VersionMajor = data[hdrVersionMajorOffset]
	h.VersionMinor = data[hdrVersionMinorOffset]
	if h.VersionMajor != VersionMajor {
		return fmt.Errorf("%w: %d.%d", errs.ErrUnsupportedVersion, h.VersionMajor, h.VersionMinor)
	}

	h.MaxSectionCount = engine.Uint32(data[hdrMaxSectionCountOffset:])
	h.SectionCount = engine.Uint32(data[hdrSectionCountOffset:])
	h.MaxElementCount = engine.Uint32(data[hdrMaxElementCountOffset:])
	h.ElementCount = engine.Uint32(data[hdrElementCountOffset:])

	level := engine.Uint16(data[hdrCompressionOffset:])
	if !format.CompressionLevel(level).Valid() || level > 0xFF {
		return fmt.Errorf("%w: %d", errs.ErrInvalidCompressionLevel, level)
	}
	h.CompressionLevel = format.CompressionLevel(level)

	for i := range h.ReferenceCenter {
		h.ReferenceCenter[i] = endian.Float32(engine, data[hdrCenterOffset+4*i:])
	}

	h.CoefficientRange.Min = endian.Float32(engine, data[hdrCoeffMinOffset:])
	if h.CoefficientRange.Min == 0 {
		h.CoefficientRange.Min = quant.DefaultCoefficientRange.Min
	}
	h.CoefficientRange.Max = endian.Float32(engine, data[hdrCoeffMaxOffset:])
	if h.CoefficientRange.Max == 0 {
		h.CoefficientRange.Max = quant.DefaultCoefficientRange.Max
	}

	return nil
}

// WriteTo writes the header into the first HeaderSize bytes of buf.
//
// Reserved bytes are zeroed. A zero coefficient bound is written as the default bound.
//
// Returns:
//   - error: ErrInvalidHeaderSize if buf is shorter than HeaderSize
func (h *Header) WriteTo(buf []byte) error {
	if len(buf) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	region := buf[:HeaderSize]
	clear(region)

	engine := endian.GetContainerEngine()

	region[hdrVersionMajorOffset] = h.VersionMajor
	region[hdrVersionMinorOffset] = h.VersionMinor
	engine.PutUint32(region[hdrMaxSectionCountOffset:], h.MaxSectionCount)
	engine.PutUint32(region[hdrSectionCountOffset:], h.SectionCount)
	engine.PutUint32(region[hdrMaxElementCountOffset:], h.MaxElementCount)
	engine.PutUint32(region[hdrElementCountOffset:], h.ElementCount)
	engine.PutUint16(region[hdrCompressionOffset:], uint16(h.CompressionLevel))

	for i, v := range h.ReferenceCenter {
		endian.PutFloat32(engine, region[hdrCenterOffset+4*i:], v)
	}

	coeffMin, coeffMax := h.CoefficientRange.Min, h.CoefficientRange.Max
	if coeffMin == 0 {
		coeffMin = quant.DefaultCoefficientRange.Min
	}
	if coeffMax == 0 {
		coeffMax = quant.DefaultCoefficientRange.Max
	}
	endian.PutFloat32(engine, region[hdrCoeffMinOffset:], coeffMin)
	endian.PutFloat32(engine, region[hdrCoeffMaxOffset:], coeffMax)

	return nil
}

// Bytes serializes the header into a new HeaderSize byte slice.
func (h *Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	_ = h.WriteTo(b)

	return b
}

// ParseHeader parses a Header from the start of buf.
func ParseHeader(buf []byte) (Header, error) {
	h := Header{}
	if err := h.Parse(buf); err != nil {
		return Header{}, err
	}

	return h, nil
}

// WriteHeaderCounts overwrites only the active section and element counts of the
// header at the start of buf.
func WriteHeaderCounts(sectionCount, elementCount uint32, buf []byte) error {
	if len(buf) < HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.GetContainerEngine()
	engine.PutUint32(buf[hdrSectionCountOffset:], sectionCount)
	engine.PutUint32(buf[hdrElementCountOffset:], elementCount)

	return nil
}
