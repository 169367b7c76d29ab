package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCampaignStatus(t *testing.T) {
	assert.Equal(t, "active", CampaignStatusActive.String())
	assert.Equal(t, "funded", CampaignStatusFunded.String())
	assert.Equal(t, "cancelled", CampaignStatusCancelled.String())
	assert.Equal(t, "unknown(7)", CampaignStatus(7).String())

	assert.False(t, CampaignStatusActive.IsTerminal())
	assert.True(t, CampaignStatusFunded.IsTerminal())
	assert.True(t, CampaignStatusCancelled.IsTerminal())

	assert.True(t, CampaignStatusActive.IsValid())
	assert.True(t, CampaignStatusCancelled.IsValid())
	assert.False(t, CampaignStatus(3).IsValid())
}

func TestCampaignPlatformTokens(t *testing.T) {
	c := &Campaign{TotalTokens: 1000, PlatformEquityBps: 500}
	tokens, err := c.PlatformTokens()
	require.NoError(t, err)
	assert.Equal(t, uint64(50), tokens)

	c = &Campaign{TotalTokens: 100, PlatformEquityBps: 5000}
	tokens, err = c.PlatformTokens()
	require.NoError(t, err)
	assert.Equal(t, uint64(50), tokens)

	// 99 × 500 / 10000 = 4.95, floored
	c = &Campaign{TotalTokens: 99, PlatformEquityBps: 500}
	tokens, err = c.PlatformTokens()
	require.NoError(t, err)
	assert.Equal(t, uint64(4), tokens)
}

func TestCampaignAvailableTokens(t *testing.T) {
	t.Run("platform share reduces supply", func(t *testing.T) {
		c := &Campaign{TotalTokens: 1000, PlatformEquityBps: 500, TokensSold: 200}
		available, err := c.AvailableTokens()
		require.NoError(t, err)
		assert.Equal(t, uint64(750), available)
	})

	t.Run("fully sold out", func(t *testing.T) {
		c := &Campaign{TotalTokens: 100, PlatformEquityBps: 5000, TokensSold: 50}
		available, err := c.AvailableTokens()
		require.NoError(t, err)
		assert.Equal(t, uint64(0), available)
	})

	t.Run("oversold state is an invariant violation", func(t *testing.T) {
		c := &Campaign{TotalTokens: 100, PlatformEquityBps: 5000, TokensSold: 51}
		_, err := c.AvailableTokens()
		var violation *InvariantViolationError
		require.ErrorAs(t, err, &violation)
		assert.Equal(t, "campaign", violation.Entity)
	})
}

func TestCampaignTokensFor(t *testing.T) {
	c := &Campaign{TokenPrice: 3}
	assert.Equal(t, uint64(333), c.TokensFor(1000))
	assert.Equal(t, uint64(0), c.TokensFor(2))

	// A zero price never divides.
	c = &Campaign{TokenPrice: 0}
	assert.Equal(t, uint64(0), c.TokensFor(1000))
}

func TestCampaignIsExpired(t *testing.T) {
	deadline := int64(1_700_000_000)
	before := time.Unix(deadline-1, 0)
	at := time.Unix(deadline, 0)
	after := time.Unix(deadline+1, 0)

	c := &Campaign{FundingGoal: 1000, TotalRaised: 500, FundingDeadline: deadline}
	assert.False(t, c.IsExpired(before))
	assert.False(t, c.IsExpired(at))
	assert.True(t, c.IsExpired(after))

	// A fully funded campaign never expires.
	c.TotalRaised = 1000
	assert.False(t, c.IsExpired(after))
}

func TestCampaignIsFullyFunded(t *testing.T) {
	c := &Campaign{FundingGoal: 1000, TotalRaised: 999}
	assert.False(t, c.IsFullyFunded())
	c.TotalRaised = 1000
	assert.True(t, c.IsFullyFunded())
	c.TotalRaised = 1001
	assert.True(t, c.IsFullyFunded())
}
