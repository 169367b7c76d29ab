package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerTokenAmount(t *testing.T) {
	tests := []struct {
		name     string
		total    uint64
		supply   uint64
		expected uint64
	}{
		{"even split", 1000, 10, 100},
		{"floor division leaves remainder", 1000, 3, 333},
		{"total below supply", 5, 10, 0},
		{"zero supply", 1000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PerTokenAmount(tt.total, tt.supply))
		})
	}
}

func TestDistributionClaimableBy(t *testing.T) {
	d := &DistributionRecord{AmountPerToken: 333}

	amount, err := d.ClaimableBy(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(999), amount)

	amount, err = d.ClaimableBy(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), amount)

	d.AmountPerToken = math.MaxUint64
	_, err = d.ClaimableBy(2)
	assert.ErrorIs(t, err, ErrOverflow)
}

// A full-supply sweep claims supply × per-token amount, never the raw
// total: the floor remainder stays in the vault.
func TestDistributionRemainderIsUnclaimable(t *testing.T) {
	total := uint64(1000)
	supply := uint64(3)
	perToken := PerTokenAmount(total, supply)

	d := &DistributionRecord{TotalAmount: total, TotalTokenSupply: supply, AmountPerToken: perToken}
	swept, err := d.ClaimableBy(supply)
	require.NoError(t, err)
	assert.Equal(t, uint64(999), swept)
	assert.Less(t, swept, total)
}
