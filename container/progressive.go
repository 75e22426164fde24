package container

import (
	"fmt"

	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/section"
)

// UpdateCounts sets the active section and element counts.
//
// Only the two count fields of the header are written. Counts above the maxima
// recorded at creation are rejected and leave the buffer untouched.
func (c *Container) UpdateCounts(sectionCount, elementCount uint32) error {
	if sectionCount > c.header.MaxSectionCount {
		return fmt.Errorf("%w: section count %d > %d", errs.ErrCountExceedsMax, sectionCount, c.header.MaxSectionCount)
	}
	if elementCount > c.header.MaxElementCount {
		return fmt.Errorf("%w: element count %d > %d", errs.ErrCountExceedsMax, elementCount, c.header.MaxElementCount)
	}

	if err := section.WriteHeaderCounts(sectionCount, elementCount, c.buf); err != nil {
		return err
	}
	c.sectionCount.Store(sectionCount)
	c.elementCount.Store(elementCount)

	return nil
}

// UpdateSectionCount sets the active element count of one section. Only the count
// field of its section header is written.
func (c *Container) UpdateSectionCount(sectionIndex int, count uint32) error {
	if sectionIndex < 0 || sectionIndex >= len(c.sections) {
		return fmt.Errorf("%w: %d", errs.ErrSectionIndexOutOfRange, sectionIndex)
	}

	maxCount := c.sections[sectionIndex].Header.MaxElementCount
	if count > maxCount {
		return fmt.Errorf("%w: section %d count %d > %d", errs.ErrCountExceedsMax, sectionIndex, count, maxCount)
	}

	if err := section.WriteSectionElementCount(count, c.buf, section.SectionHeaderOffset(sectionIndex)); err != nil {
		return err
	}
	c.sectionCounts[sectionIndex].Store(count)

	return nil
}
