package container

import (
	"fmt"
	"sync/atomic"

	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/layout"
	"github.com/arloliu/splatpack/quant"
	"github.com/arloliu/splatpack/section"
)

// Container is a parsed view over a container buffer.
//
// Decoding never mutates the buffer. Active counts are mirrored in atomics so that
// readers running concurrently with UpdateCounts or UpdateSectionCount observe either
// the old or the new count. Progressive updates themselves must be serialized by the
// caller.
type Container struct {
	buf      []byte
	header   section.Header
	sections []section.Section
	storages []layout.Storage

	elementCount  atomic.Uint32
	sectionCount  atomic.Uint32
	sectionCounts []atomic.Uint32

	// sectionOf maps a global element index to its section index.
	sectionOf []uint32
	minDegree int
}

// New parses the header and every section header of buf.
//
// The buffer is retained, not copied. Section data blocks are not validated here;
// an access touching a block that runs past the end of buf fails with
// ErrTruncatedSection. Only a max element count that could not fit in buf at all
// is rejected up front.
//
// Returns:
//   - *Container: Parsed container
//   - error: A format error from the header or section header parse, or
//     ErrCountMismatch if the section max counts do not add up to the header's
func New(buf []byte) (*Container, error) {
	h, err := section.ParseHeader(buf)
	if err != nil {
		return nil, err
	}

	sections, err := section.ParseSectionHeaders(h, buf, section.HeaderSize)
	if err != nil {
		return nil, err
	}

	var total uint64
	for i := range sections {
		total += uint64(sections[i].Header.MaxElementCount)
	}
	if total != uint64(h.MaxElementCount) {
		return nil, fmt.Errorf("%w: sections %d, header %d", errs.ErrCountMismatch, total, h.MaxElementCount)
	}

	minRecord := uint64(layout.BytesPerElement(h.CompressionLevel, 0))
	if uint64(h.MaxElementCount)*minRecord > uint64(len(buf)) {
		return nil, fmt.Errorf("%w: %d elements cannot fit in %d bytes", errs.ErrTruncatedSection, h.MaxElementCount, len(buf))
	}

	c := &Container{
		buf:           buf,
		header:        h,
		sections:      sections,
		storages:      make([]layout.Storage, len(sections)),
		sectionCounts: make([]atomic.Uint32, len(sections)),
		sectionOf:     make([]uint32, h.MaxElementCount),
	}
	c.elementCount.Store(h.ElementCount)
	c.sectionCount.Store(h.SectionCount)

	for i := range sections {
		s := &sections[i]
		storage, err := layout.StorageFor(h.CompressionLevel, int(s.Header.Degree))
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		c.storages[i] = storage
		c.sectionCounts[i].Store(s.Header.ElementCount)

		start := s.Layout.ElementOffset
		for j := start; j < start+s.Header.MaxElementCount; j++ {
			c.sectionOf[j] = uint32(i)
		}

		if i == 0 || storage.Degree < c.minDegree {
			c.minDegree = storage.Degree
		}
	}

	return c, nil
}

// Bytes returns the underlying buffer.
func (c *Container) Bytes() []byte {
	return c.buf
}

// ElementCount returns the number of active elements.
func (c *Container) ElementCount() int {
	return int(c.elementCount.Load())
}

// MaxElementCount returns the number of element slots allocated at creation.
func (c *Container) MaxElementCount() int {
	return int(c.header.MaxElementCount)
}

// SectionCount returns the number of active sections.
func (c *Container) SectionCount() int {
	return int(c.sectionCount.Load())
}

// MaxSectionCount returns the number of sections allocated at creation.
func (c *Container) MaxSectionCount() int {
	return int(c.header.MaxSectionCount)
}

// CompressionLevel returns the attribute precision of the container.
func (c *Container) CompressionLevel() format.CompressionLevel {
	return c.header.CompressionLevel
}

// ReferenceCenter returns the reference center recorded at build time.
func (c *Container) ReferenceCenter() [3]float32 {
	return c.header.ReferenceCenter
}

// CoefficientRange returns the 8-bit coefficient quantization range.
func (c *Container) CoefficientRange() quant.Range {
	return c.header.CoefficientRange
}

// MinDegree returns the lowest directional coefficient degree over all sections.
func (c *Container) MinDegree() int {
	return c.minDegree
}

// Header returns the parsed global header with the current active counts.
func (c *Container) Header() section.Header {
	h := c.header
	h.ElementCount = c.elementCount.Load()
	h.SectionCount = c.sectionCount.Load()

	return h
}

// Sections returns a snapshot of every section with its current active count.
func (c *Container) Sections() []section.Section {
	out := make([]section.Section, len(c.sections))
	copy(out, c.sections)
	for i := range out {
		out[i].Header.ElementCount = c.sectionCounts[i].Load()
	}

	return out
}

// location is a resolved element: its section, storage table and record offset.
type location struct {
	section *section.Section
	storage *layout.Storage
	local   int
	record  int
}

// locate resolves global index i, checking it against the active element count and
// checking that the owning section data block fits in the buffer.
func (c *Container) locate(i int) (location, error) {
	if i < 0 || i >= int(c.elementCount.Load()) {
		return location{}, fmt.Errorf("%w: %d", errs.ErrIndexOutOfRange, i)
	}

	si := c.sectionOf[i]
	s := &c.sections[si]
	if s.Layout.End() > len(c.buf) {
		return location{}, fmt.Errorf("%w: section %d ends at %d, buffer is %d bytes",
			errs.ErrTruncatedSection, si, s.Layout.End(), len(c.buf))
	}

	local := i - int(s.Layout.ElementOffset)

	return location{
		section: s,
		storage: &c.storages[si],
		local:   local,
		record:  s.Layout.DataBase + local*s.Layout.BytesPerElement,
	}, nil
}

// checkRange validates a half-open fill range and the destination length for stride
// values per element starting at element destOffset.
func (c *Container) checkRange(from, to, destOffset, stride, dstLen int) error {
	if from < 0 || to < from || to > int(c.elementCount.Load()) {
		return fmt.Errorf("%w: [%d, %d)", errs.ErrIndexOutOfRange, from, to)
	}
	if destOffset < 0 || (destOffset+to-from)*stride > dstLen {
		return fmt.Errorf("%w: need %d values, have %d", errs.ErrDestinationTooSmall, (destOffset+to-from)*stride, dstLen)
	}

	return nil
}
