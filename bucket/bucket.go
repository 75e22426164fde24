// Package bucket partitions element positions into fixed-size grid cells and packs
// each cell into capacity-bounded buckets.
//
// A bucket gives position quantization a small effective range: every member is
// stored as an offset from the bucket's reference center, which is the geometric
// center of its grid cell. The reconstruction error therefore depends on the block
// size and not on where the scene sits in world space.
package bucket

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/arloliu/splatpack/errs"
)

// Bucket is a group of elements sharing one quantization reference center.
type Bucket struct {
	// Center is the center of the grid cell the members fall in.
	Center [3]float32
	// Members holds the input indices of the elements, in input order.
	Members []int
}

// Len returns the number of members.
func (b *Bucket) Len() int {
	return len(b.Members)
}

// Result is the output of Compute.
type Result struct {
	// Full buckets hold exactly the configured capacity, in the order they filled up.
	Full []Bucket
	// Partial buckets hold fewer members, ordered by the first time their cell was seen.
	Partial []Bucket
}

// Ordered returns full buckets followed by partial buckets, which is the order
// elements are written in.
func (r Result) Ordered() []Bucket {
	out := make([]Bucket, 0, len(r.Full)+len(r.Partial))
	out = append(out, r.Full...)

	return append(out, r.Partial...)
}

// PartialLengths returns the member count of every partial bucket.
func (r Result) PartialLengths() []uint32 {
	lengths := make([]uint32, len(r.Partial))
	for i := range r.Partial {
		lengths[i] = uint32(len(r.Partial[i].Members))
	}

	return lengths
}

// Count returns the total number of members over all buckets.
func (r Result) Count() int {
	n := 0
	for i := range r.Full {
		n += len(r.Full[i].Members)
	}
	for i := range r.Partial {
		n += len(r.Partial[i].Members)
	}

	return n
}

// Bounds returns the axis aligned bounding box of positions.
func Bounds(positions []r3.Vector) (lo, hi r3.Vector) {
	for i, p := range positions {
		if i == 0 {
			lo, hi = p, p
			continue
		}
		lo = r3.Vector{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y), Z: math.Min(lo.Z, p.Z)}
		hi = r3.Vector{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y), Z: math.Max(hi.Z, p.Z)}
	}

	return lo, hi
}

// Compute assigns every position to exactly one bucket.
//
// Grid coordinates are floor((p - min) / blockSize) per axis and the cell id is
// x*(yBlocks*zBlocks) + y*zBlocks + z. Elements are appended to the open bucket of
// their cell; a bucket reaching capacity is sealed as full and the next element of the
// same cell opens a new one.
//
// Parameters:
//   - positions: Element centers, indexed by input order
//   - blockSize: Edge length of a grid cell
//   - capacity: Maximum bucket size
//
// Returns:
//   - Result: Full and partial buckets
//   - error: ErrInvalidBlockSize or ErrInvalidBucketSize
func Compute(positions []r3.Vector, blockSize float64, capacity int) (Result, error) {
	if !(blockSize > 0) || math.IsInf(blockSize, 0) {
		return Result{}, errs.ErrInvalidBlockSize
	}
	if capacity <= 0 {
		return Result{}, errs.ErrInvalidBucketSize
	}
	if len(positions) == 0 {
		return Result{}, nil
	}

	lo, hi := Bounds(positions)
	extent := hi.Sub(lo)
	// floor(extent/blockSize)+1 blocks per axis keeps a point on the max face inside
	// the grid, so distinct cells never share an id.
	yBlocks := int64(math.Floor(extent.Y/blockSize)) + 1
	zBlocks := int64(math.Floor(extent.Z/blockSize)) + 1
	halfBlock := blockSize / 2

	var res Result
	open := make(map[int64]*Bucket)
	var order []int64

	for i, p := range positions {
		d := p.Sub(lo)
		xb := math.Floor(d.X / blockSize)
		yb := math.Floor(d.Y / blockSize)
		zb := math.Floor(d.Z / blockSize)

		id := int64(xb)*(yBlocks*zBlocks) + int64(yb)*zBlocks + int64(zb)

		b, seen := open[id]
		if !seen {
			order = append(order, id)
		}
		if b == nil {
			center := r3.Vector{
				X: xb*blockSize + lo.X + halfBlock,
				Y: yb*blockSize + lo.Y + halfBlock,
				Z: zb*blockSize + lo.Z + halfBlock,
			}
			b = &Bucket{
				Center:  [3]float32{float32(center.X), float32(center.Y), float32(center.Z)},
				Members: make([]int, 0, min(capacity, 16)),
			}
			open[id] = b
		}

		b.Members = append(b.Members, i)
		if len(b.Members) >= capacity {
			res.Full = append(res.Full, *b)
			open[id] = nil
		}
	}

	for _, id := range order {
		if b := open[id]; b != nil {
			res.Partial = append(res.Partial, *b)
		}
	}

	return res, nil
}
