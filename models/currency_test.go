package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedMul(t *testing.T) {
	t.Run("normal product", func(t *testing.T) {
		v, err := CheckedMul(1000, 333)
		require.NoError(t, err)
		assert.Equal(t, uint64(333000), v)
	})

	t.Run("zero operand", func(t *testing.T) {
		v, err := CheckedMul(0, math.MaxUint64)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), v)
	})

	t.Run("max times one", func(t *testing.T) {
		v, err := CheckedMul(math.MaxUint64, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64), v)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := CheckedMul(math.MaxUint64, 2)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestCheckedAdd(t *testing.T) {
	t.Run("normal sum", func(t *testing.T) {
		v, err := CheckedAdd(LamportsPerSOL, LamportsPerSOL)
		require.NoError(t, err)
		assert.Equal(t, uint64(2_000_000_000), v)
	})

	t.Run("boundary", func(t *testing.T) {
		v, err := CheckedAdd(math.MaxUint64-1, 1)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64), v)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := CheckedAdd(math.MaxUint64, 1)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestMulBps(t *testing.T) {
	tests := []struct {
		name     string
		value    uint64
		bps      uint16
		expected uint64
	}{
		{"five percent", 1000, 500, 50},
		{"fifty percent", 1000, 5000, 500},
		{"full denominator", 1000, 10000, 1000},
		{"zero bps", 1000, 0, 0},
		{"floor division", 999, 250, 24}, // 999 × 250 / 10000 = 24.975
		{"remainder drops entirely", 3, 3333, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := MulBps(tt.value, tt.bps)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}

	t.Run("large value does not wrap", func(t *testing.T) {
		// The intermediate product exceeds 64 bits; the quotient must not.
		v, err := MulBps(math.MaxUint64, 5000)
		require.NoError(t, err)
		assert.Equal(t, uint64(math.MaxUint64/2), v)
	})

	t.Run("bps above denominator rejected", func(t *testing.T) {
		_, err := MulBps(1000, 10001)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}
