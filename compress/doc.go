// Package compress provides the general purpose codecs applied to whole container
// buffers when they are stored or transmitted.
//
// A container is already quantized, so these codecs work on the remaining
// redundancy: zeroed header padding, repeated bucket centers and the high bytes of
// half floats and quantized offsets.
//
// # Supported Algorithms
//
//   - format.CompressionNone: NoOpCompressor, returns its input unchanged
//   - format.CompressionZstd: ZstdCompressor, best ratio, pooled encoders and decoders
//   - format.CompressionS2:   S2Compressor, balanced speed and ratio
//   - format.CompressionLZ4:  LZ4Compressor, fastest decompression
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(c.Bytes())
//
// LZ4 blocks do not record their decompressed size. Callers that know it, such as
// the archive envelope, should use DecompressSized to decode in one pass.
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use; the zstd and LZ4
// codecs draw their working state from sync.Pool.
package compress
