// Package section defines the fixed byte layout of a splat container and the pure
// functions that read and write it.
//
// Nothing in this package holds state. Every function takes the raw buffer and an
// offset, so the same codec serves freshly built containers, containers still being
// streamed in, and containers mapped from disk.
//
// # Container Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (4096 bytes, fixed)                              │
//	│  - version, section counts, element counts              │
//	│  - compression level, reference center                  │
//	│  - directional coefficient min/max                      │
//	├─────────────────────────────────────────────────────────┤
//	│ Section Headers (MaxSectionCount × 1024 bytes)          │
//	├─────────────────────────────────────────────────────────┤
//	│ Section 0 data                                          │
//	│  - partial bucket lengths (u32 × partial count)         │
//	│  - bucket centers (3 × f32 × bucket count)              │
//	│  - element records (bytes per element × max count)      │
//	├─────────────────────────────────────────────────────────┤
//	│ Section 1 data ...                                      │
//	└─────────────────────────────────────────────────────────┘
//
// Bucket regions only exist at compression levels 1 and 2.
//
// # Header Format
//
//	Bytes  | Field               | Type
//	-------|---------------------|------
//	0      | VersionMajor        | u8
//	1      | VersionMinor        | u8
//	2-3    | reserved            | zero
//	4-7    | MaxSectionCount     | u32
//	8-11   | SectionCount        | u32
//	12-15  | MaxElementCount     | u32
//	16-19  | ElementCount        | u32
//	20-21  | CompressionLevel    | u16
//	24-35  | ReferenceCenter     | 3 × f32
//	36-39  | CoefficientMin      | f32 (0 means default)
//	40-43  | CoefficientMax      | f32 (0 means default)
//
// # Section Header Format
//
//	Bytes  | Field               | Type
//	-------|---------------------|------
//	0-3    | ElementCount        | u32
//	4-7    | MaxElementCount     | u32
//	8-11   | BucketSize          | u32
//	12-15  | BucketCount         | u32
//	16-19  | BlockSize           | f32
//	20-21  | BucketStorageSize   | u16
//	24-27  | ScaleRange          | u32
//	28-31  | StorageSize         | u32
//	32-35  | FullBucketCount     | u32
//	36-39  | PartialBucketCount  | u32
//	40-41  | Degree              | u16
//
// All multi-byte fields are little-endian. Every byte not listed above is zero.
//
// # Derived Layout
//
// Byte offsets of the bucket and element regions are not stored. DeriveLayout
// recomputes them from the stored fields on every parse, so a count update can never
// leave a stale offset behind.
package section
