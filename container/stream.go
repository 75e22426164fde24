package container

import (
	"fmt"

	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/layout"
	"github.com/arloliu/splatpack/quant"
	"github.com/arloliu/splatpack/section"
)

// Allocate creates an empty level 0 container with a single section of
// maxElementCount slots. Active counts start at zero; fill it with a StreamWriter.
func Allocate(maxElementCount uint32, degree int, referenceCenter [3]float32) (*Container, error) {
	storage, err := layout.StorageFor(format.LevelFull, degree)
	if err != nil {
		return nil, err
	}

	size, err := sectionStorageSize(uint64(storage.BytesPerElementAtDegree) * uint64(maxElementCount))
	if err != nil {
		return nil, err
	}

	sh := section.SectionHeader{
		MaxElementCount: maxElementCount,
		StorageSize:     size,
		Degree:          uint16(degree),
	}
	buf := make([]byte, section.DataOffset(1)+int(sh.StorageSize))

	h := section.NewHeader(format.LevelFull)
	h.MaxSectionCount = 1
	h.MaxElementCount = maxElementCount
	h.ReferenceCenter = referenceCenter
	if err := h.WriteTo(buf); err != nil {
		return nil, err
	}
	if err := sh.WriteTo(format.LevelFull, buf[section.SectionHeaderOffset(0):]); err != nil {
		return nil, err
	}

	return New(buf)
}

// StreamWriter appends elements to the free slots of a level 0 container while
// readers keep decoding it. Appended elements become visible on Flush.
//
// A StreamWriter is not safe for concurrent use.
type StreamWriter struct {
	c        *Container
	written  uint32
	flushed  uint32
	encoders []elementEncoder
}

// NewStreamWriter returns a writer appending after the active elements of c.
// Sections are filled in order, each up to its max element count.
func NewStreamWriter(c *Container) (*StreamWriter, error) {
	if c.CompressionLevel() != format.LevelFull {
		return nil, fmt.Errorf("%w: streaming needs level %s, container is %s",
			errs.ErrInvalidCompressionLevel, format.LevelFull, c.CompressionLevel())
	}

	w := &StreamWriter{
		c:        c,
		written:  c.elementCount.Load(),
		encoders: make([]elementEncoder, len(c.storages)),
	}
	w.flushed = w.written
	for i, st := range c.storages {
		w.encoders[i] = newElementEncoder(format.LevelFull, st, quant.DefaultCoefficientRange, 0)
	}

	return w, nil
}

// Append writes elements into the next free slots. It fails with ErrStreamFull once
// every slot is used; elements written before that remain pending.
func (w *StreamWriter) Append(elements ...[]float32) error {
	c := w.c
	for _, e := range elements {
		if w.written >= c.header.MaxElementCount {
			return errs.ErrStreamFull
		}

		si := c.sectionOf[w.written]
		s := &c.sections[si]
		if s.Layout.End() > len(c.buf) {
			return fmt.Errorf("%w: section %d", errs.ErrTruncatedSection, si)
		}
		local := int(w.written - s.Layout.ElementOffset)
		rec := s.Layout.DataBase + local*s.Layout.BytesPerElement
		w.encoders[si].write(c.buf[rec:rec+s.Layout.BytesPerElement], e, [3]float32{})
		w.written++
	}

	return nil
}

// Flush publishes every appended element through the progressive update API.
func (w *StreamWriter) Flush() error {
	if w.written == w.flushed {
		return nil
	}

	c := w.c
	var activeSections uint32
	for i := range c.sections {
		l := c.sections[i].Layout
		maxCount := c.sections[i].Header.MaxElementCount
		if w.written <= l.ElementOffset && maxCount > 0 {
			break
		}
		count := min(w.written-l.ElementOffset, maxCount)
		if err := c.UpdateSectionCount(i, count); err != nil {
			return err
		}
		activeSections = uint32(i + 1)
	}

	if err := c.UpdateCounts(activeSections, w.written); err != nil {
		return err
	}
	w.flushed = w.written

	return nil
}

// Written returns the number of appended elements, flushed or not.
func (w *StreamWriter) Written() int {
	return int(w.written)
}

// Pending returns the number of appended elements not yet flushed.
func (w *StreamWriter) Pending() int {
	return int(w.written - w.flushed)
}
