package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(128)
	require.Equal(t, 0, bb.Len())
	require.Equal(t, 128, cap(bb.B))
}

func TestByteBuffer_MustWriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)
	bb.MustWrite([]byte("SPAK"))
	bb.MustWrite([]byte{1, 2})
	require.Equal(t, []byte{'S', 'P', 'A', 'K', 1, 2}, bb.Bytes())

	capBefore := cap(bb.B)
	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.Equal(t, capBefore, cap(bb.B))
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	t.Run("within capacity", func(t *testing.T) {
		bb := NewByteBuffer(32)
		bb.MustWrite([]byte{9, 9})
		region := bb.ExtendOrGrow(8)
		require.Len(t, region, 8)
		require.Equal(t, 10, bb.Len())
		require.Equal(t, make([]byte, 8), region)
	})

	t.Run("grows and keeps content", func(t *testing.T) {
		bb := NewByteBuffer(4)
		bb.MustWrite([]byte{1, 2, 3, 4})
		region := bb.ExtendOrGrow(100)
		require.Len(t, region, 100)
		require.Equal(t, []byte{1, 2, 3, 4}, bb.B[:4])
		require.GreaterOrEqual(t, cap(bb.B), 104)
	})

	t.Run("zeroes reused capacity", func(t *testing.T) {
		bb := NewByteBuffer(8)
		bb.MustWrite([]byte{7, 7, 7, 7})
		bb.Reset()
		region := bb.ExtendOrGrow(4)
		require.Equal(t, []byte{0, 0, 0, 0}, region)
	})
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(FrameBufferDefaultSize)
	bb.Grow(10)
	require.Equal(t, FrameBufferDefaultSize, cap(bb.B), "no growth when capacity suffices")

	bb.MustWrite(make([]byte, FrameBufferDefaultSize))
	bb.Grow(1)
	require.Equal(t, 2*FrameBufferDefaultSize, cap(bb.B))
}

func TestByteBufferPool(t *testing.T) {
	t.Run("returned buffers are reset", func(t *testing.T) {
		p := NewByteBufferPool(64, 0)
		bb := p.Get()
		bb.MustWrite([]byte("frame"))
		p.Put(bb)

		again := p.Get()
		require.Equal(t, 0, again.Len())
	})

	t.Run("drops oversized buffers", func(t *testing.T) {
		p := NewByteBufferPool(8, 16)
		bb := p.Get()
		bb.Grow(64)
		p.Put(bb)
		require.Equal(t, 0, p.Get().Len())
	})

	t.Run("nil put is ignored", func(t *testing.T) {
		p := NewByteBufferPool(8, 16)
		require.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("concurrent use", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := range 16 {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				bb := GetFrameBuffer()
				bb.MustWrite([]byte{byte(i)})
				require.Equal(t, 1, bb.Len())
				PutFrameBuffer(bb)
			}(i)
		}
		wg.Wait()
	})
}
