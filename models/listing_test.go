package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingIsOpen(t *testing.T) {
	assert.True(t, (&Listing{IsActive: true, Amount: 1}).IsOpen())
	assert.False(t, (&Listing{IsActive: true, Amount: 0}).IsOpen())
	assert.False(t, (&Listing{IsActive: false, Amount: 1}).IsOpen())
}

func TestListingTotalPrice(t *testing.T) {
	l := &Listing{PricePerToken: 250}

	price, err := l.TotalPrice(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), price)

	l.PricePerToken = math.MaxUint64
	_, err = l.TotalPrice(2)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestMarketplaceFee(t *testing.T) {
	m := &Marketplace{FeeBps: 250}

	fee, err := m.Fee(10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), fee)

	// 999 × 250 / 10000 floors to 24.
	fee, err = m.Fee(999)
	require.NoError(t, err)
	assert.Equal(t, uint64(24), fee)

	m.FeeBps = 0
	fee, err = m.Fee(10_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), fee)
}
