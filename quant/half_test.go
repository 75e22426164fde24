package quant

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHalf_KnownBits(t *testing.T) {
	tests := []struct {
		name string
		val  float32
		bits uint16
	}{
		{"Zero", 0, 0x0000},
		{"One", 1, 0x3C00},
		{"MinusTwo", -2, 0xC000},
		{"Half", 0.5, 0x3800},
		{"MaxHalf", 65504, 0x7BFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.bits, ToHalf(tt.val))
			require.Equal(t, tt.val, FromHalf(tt.bits))
		})
	}
}

func TestHalf_RelativeError(t *testing.T) {
	for _, v := range []float32{0.001, 0.123456, 0.7071, 1.5, 3.14159, 42.42, -17.3, 1000.5} {
		got := FromHalf(ToHalf(v))
		relErr := math.Abs(float64(got-v)) / math.Abs(float64(v))
		require.LessOrEqual(t, relErr, float64(HalfEpsilon), "value %v", v)
	}
}
