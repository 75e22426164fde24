package compress

import (
	"bytes"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/splatpack/format"
)

// containerLikePayload mimics a container: a zero padded header followed by
// repetitive quantized records.
func containerLikePayload(records int) []byte {
	r := rand.New(rand.NewSource(1))
	data := make([]byte, 4096+1024, 4096+1024+records*24)
	copy(data, []byte{0, 1, 0, 0, 1, 0, 0, 0})
	for range records {
		rec := make([]byte, 24)
		for k := 0; k < 6; k += 2 {
			rec[k] = byte(r.Intn(256))
			rec[k+1] = 0x7f
		}
		rec[6], rec[7] = 0x00, 0x3c
		rec[20], rec[21], rec[22], rec[23] = 200, 100, 50, 255
		data = append(data, rec...)
	}

	return data
}

var errRoundTripMismatch = errors.New("round trip mismatch")

func allCodecs() map[format.CompressionType]Codec {
	return map[format.CompressionType]Codec{
		format.CompressionNone: NewNoOpCompressor(),
		format.CompressionZstd: NewZstdCompressor(),
		format.CompressionS2:   NewS2Compressor(),
		format.CompressionLZ4:  NewLZ4Compressor(),
	}
}

func TestGetCodec(t *testing.T) {
	for ct := range allCodecs() {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0x9))
	require.Error(t, err)
}

func TestCreateCodec(t *testing.T) {
	for ct, want := range allCodecs() {
		codec, err := CreateCodec(ct, "archive")
		require.NoError(t, err)
		require.IsType(t, want, codec)
	}

	_, err := CreateCodec(format.CompressionType(0), "archive")
	require.ErrorContains(t, err, "invalid archive compression")
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"small":     []byte("splat"),
		"container": containerLikePayload(2000),
		"zeros":     make([]byte, 64*1024),
	}

	for ct, codec := range allCodecs() {
		for name, data := range payloads {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.True(t, bytes.Equal(data, decompressed))

				if sized, ok := codec.(SizedDecompressor); ok {
					decompressed, err = sized.DecompressSized(compressed, len(data))
					require.NoError(t, err)
					require.True(t, bytes.Equal(data, decompressed))
				}
			})
		}
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for ct, codec := range allCodecs() {
		t.Run(ct.String(), func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

func TestAllCodecs_CompressContainer(t *testing.T) {
	data := containerLikePayload(4000)
	for ct, codec := range allCodecs() {
		if ct == format.CompressionNone {
			continue
		}
		t.Run(ct.String(), func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(data))
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03}
	for ct, codec := range allCodecs() {
		if ct == format.CompressionNone {
			continue
		}
		t.Run(ct.String(), func(t *testing.T) {
			_, err := codec.Decompress(garbage)
			require.Error(t, err)
		})
	}
}

func TestLZ4_DecompressSizedMismatch(t *testing.T) {
	data := containerLikePayload(100)
	codec := NewLZ4Compressor()
	compressed, err := codec.Compress(data)
	require.NoError(t, err)

	_, err = codec.DecompressSized(compressed, len(data)+10)
	require.Error(t, err)
}

func TestDecompressSized_ImplausibleSize(t *testing.T) {
	data := containerLikePayload(100)

	t.Run("LZ4 rejects sizes beyond the block ratio", func(t *testing.T) {
		codec := NewLZ4Compressor()
		compressed, err := codec.Compress(data)
		require.NoError(t, err)

		_, err = codec.DecompressSized(compressed, 1<<40)
		require.Error(t, err)
	})

	t.Run("Zstd caps the preallocation", func(t *testing.T) {
		codec := NewZstdCompressor()
		compressed, err := codec.Compress(data)
		require.NoError(t, err)

		out, err := codec.DecompressSized(compressed, 1<<40)
		require.NoError(t, err)
		require.Equal(t, data, out)
		require.LessOrEqual(t, cap(out), zstdMaxPrealloc)
	})
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	data := containerLikePayload(500)
	for ct, codec := range allCodecs() {
		t.Run(ct.String(), func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, 8)
			for range 8 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					compressed, err := codec.Compress(data)
					if err != nil {
						errCh <- err
						return
					}
					out, err := codec.Decompress(compressed)
					if err != nil {
						errCh <- err
						return
					}
					if !bytes.Equal(out, data) {
						errCh <- errRoundTripMismatch
					}
				}()
			}
			wg.Wait()
			close(errCh)
			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func TestCompressionStats(t *testing.T) {
	s := CompressionStats{Algorithm: format.CompressionZstd, OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, s.CompressionRatio(), 1e-12)
	require.InDelta(t, 75.0, s.SpaceSavings(), 1e-9)
	require.Zero(t, CompressionStats{}.CompressionRatio())
}
