package container

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/arloliu/splatpack/bucket"
	"github.com/arloliu/splatpack/endian"
	"github.com/arloliu/splatpack/errs"
	"github.com/arloliu/splatpack/format"
	"github.com/arloliu/splatpack/internal/options"
	"github.com/arloliu/splatpack/layout"
	"github.com/arloliu/splatpack/quant"
	"github.com/arloliu/splatpack/section"
	"github.com/arloliu/splatpack/splat"
)

// sectionPlan is one encoded section before it is copied into the container buffer.
type sectionPlan struct {
	header    section.SectionHeader
	layout    section.Layout
	elements  *splat.Array
	order     []bucket.Bucket
	partial   []uint32
	blockSize float32
	dropped   int
}

// Build encodes lists into a new container, one section per list.
//
// The directional coefficient degree of every section is the highest degree of
// any list. The coefficient range stored in the header is the global min/max of
// every coefficient of every list, taken before opacity filtering. Each list is then
// filtered by opacity, bucketed with its effective block and bucket size (levels
// 1 and 2 only) and written in bucket order.
//
// Parameters:
//   - lists: Input element lists; a nil entry produces an empty section
//   - opts: Build options, see DefaultBuildConfig for defaults
//
// Returns:
//   - *Container: The parsed container over the new buffer
//   - error: ErrNoElementLists, an option error or a bucketing error
func Build(lists []*splat.Array, opts ...BuildOption) (*Container, error) {
	if len(lists) == 0 {
		return nil, errs.ErrNoElementLists
	}

	cfg := DefaultBuildConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	level := cfg.CompressionLevel
	degree := maxDegree(lists)
	storage, err := layout.StorageFor(level, degree)
	if err != nil {
		return nil, err
	}

	rng := coefficientRange(lists)

	plans := make([]sectionPlan, len(lists))
	var totalElements uint32
	for i, list := range lists {
		if list == nil {
			list = splat.NewArray(degree)
		}
		if err := plans[i].prepare(cfg, i, list, level, degree); err != nil {
			return nil, fmt.Errorf("list %d: %w", i, err)
		}
		totalElements += plans[i].header.MaxElementCount
	}

	// Data blocks follow all section headers; offsets are cumulative storage sizes.
	base := section.DataOffset(len(plans))
	var elementOffset uint32
	for i := range plans {
		l, err := section.DeriveLayout(plans[i].header, level, base, elementOffset)
		if err != nil {
			return nil, err
		}
		plans[i].layout = l
		size, err := sectionStorageSize(uint64(l.StorageSize))
		if err != nil {
			return nil, fmt.Errorf("list %d: %w", i, err)
		}
		plans[i].header.StorageSize = size
		base = l.End()
		elementOffset += plans[i].header.MaxElementCount
	}

	buf := make([]byte, base)

	header := section.NewHeader(level)
	header.MaxSectionCount = uint32(len(plans))
	header.SectionCount = uint32(len(plans))
	header.MaxElementCount = totalElements
	header.ElementCount = totalElements
	header.ReferenceCenter = cfg.ReferenceCenter
	header.CoefficientRange = rng
	if err := header.WriteTo(buf); err != nil {
		return nil, err
	}

	for i := range plans {
		p := &plans[i]
		if err := p.header.WriteTo(level, buf[section.SectionHeaderOffset(i):]); err != nil {
			return nil, err
		}
		enc := newElementEncoder(level, storage, rng, p.blockSize)
		p.writeData(buf, &enc)

		if cfg.Logger != nil {
			cfg.Logger.Debug("section encoded",
				slog.Int("section", i),
				slog.Int("elements", int(p.header.ElementCount)),
				slog.Int("dropped", p.dropped),
				slog.Int("fullBuckets", int(p.header.FullBucketCount)),
				slog.Int("partialBuckets", int(p.header.PartialBucketCount)),
				slog.Int("bytes", p.layout.StorageSize),
			)
		}
	}

	if cfg.Logger != nil {
		cfg.Logger.Debug("container built",
			slog.String("compression", level.String()),
			slog.Int("sections", len(plans)),
			slog.Int("elements", int(totalElements)),
			slog.Int("degree", degree),
			slog.Int("bytes", len(buf)),
		)
	}

	return New(buf)
}

// prepare filters and buckets one list and fills the stored section header fields
// except StorageSize.
func (p *sectionPlan) prepare(cfg *BuildConfig, index int, list *splat.Array, level format.CompressionLevel, degree int) error {
	p.elements = list.Filter(cfg.MinimumOpacity)
	p.dropped = list.Len() - p.elements.Len()

	count := uint32(p.elements.Len())
	p.header = section.SectionHeader{
		ElementCount:    count,
		MaxElementCount: count,
		Degree:          uint16(degree),
	}

	if !level.Bucketed() {
		members := make([]int, p.elements.Len())
		for i := range members {
			members[i] = i
		}
		p.order = []bucket.Bucket{{Members: members}}

		return nil
	}

	blockSize, bucketSize := cfg.listParams(index)
	res, err := bucket.Compute(p.elements.Positions(), float64(blockSize), bucketSize)
	if err != nil {
		return err
	}

	p.blockSize = blockSize
	p.order = res.Ordered()
	p.partial = res.PartialLengths()
	p.header.BucketSize = uint32(bucketSize)
	p.header.BucketCount = uint32(len(p.order))
	p.header.BlockSize = blockSize
	p.header.BucketStorageSize = section.BucketStorageSize
	p.header.ScaleRange = quant.ScaleRange(level)
	p.header.FullBucketCount = uint32(len(res.Full))
	p.header.PartialBucketCount = uint32(len(res.Partial))

	return nil
}

// writeData writes the partial bucket lengths, the bucket centers and the element
// records of the section into buf.
func (p *sectionPlan) writeData(buf []byte, enc *elementEncoder) {
	engine := endian.GetContainerEngine()
	l := &p.layout
	bucketed := enc.level.Bucketed()

	if bucketed {
		for i, n := range p.partial {
			engine.PutUint32(buf[l.Base+i*section.PartialBucketLengthSize:], n)
		}
		for i := range p.order {
			off := l.BucketsBase + i*section.BucketStorageSize
			for k, v := range p.order[i].Center {
				endian.PutFloat32(engine, buf[off+4*k:], v)
			}
		}
	}

	rec := l.DataBase
	for i := range p.order {
		b := &p.order[i]
		for _, m := range b.Members {
			enc.write(buf[rec:rec+l.BytesPerElement], p.elements.Elements[m], b.Center)
			rec += l.BytesPerElement
		}
	}
}

func maxDegree(lists []*splat.Array) int {
	degree := 0
	for _, list := range lists {
		if list != nil && list.Degree > degree {
			degree = list.Degree
		}
	}

	return min(degree, layout.MaxDegree)
}

// sectionStorageSize narrows a section data block size to its u32 header field.
func sectionStorageSize(size uint64) (uint32, error) {
	if size > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d bytes", errs.ErrSectionTooLarge, size)
	}

	return uint32(size), nil
}

// coefficientRange scans every stored coefficient of every list. Bounds that come
// out as zero fall back to the default range, matching what a header parse returns.
func coefficientRange(lists []*splat.Array) quant.Range {
	lo, hi := float32(math.Inf(1)), float32(math.Inf(-1))
	found := false
	for _, list := range lists {
		if list == nil {
			continue
		}
		count := layout.CoefficientCount(list.Degree)
		for _, e := range list.Elements {
			for j := range count {
				v := splat.Component(e, splat.FRC0+j)
				lo = min(lo, v)
				hi = max(hi, v)
				found = true
			}
		}
	}

	if !found {
		return quant.DefaultCoefficientRange
	}
	if lo == 0 {
		lo = quant.DefaultCoefficientRange.Min
	}
	if hi == 0 {
		hi = quant.DefaultCoefficientRange.Max
	}

	return quant.Range{Min: lo, Max: hi}
}
