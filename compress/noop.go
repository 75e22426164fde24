package compress

// NoOpCompressor passes data through unchanged. It is used for containers that are
// stored uncompressed and as a baseline in benchmarks.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data without copying it.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data without copying it.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
