package codec

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
)

func globalTag(name string) Discriminator {
	var d Discriminator
	sum := sha256.Sum256([]byte("global:" + name))
	copy(d[:], sum[:8])
	return d
}

func accountTag(name string) Discriminator {
	var d Discriminator
	sum := sha256.Sum256([]byte("account:" + name))
	copy(d[:], sum[:8])
	return d
}

// The pinned instruction tags must equal sha256("global:<name>")[0:8].
func TestInstructionDiscriminators(t *testing.T) {
	tests := []struct {
		name string
		tag  Discriminator
	}{
		{"initialize_pool", ixInitializePool},
		{"deposit_dividend", ixDepositDividend},
		{"start_distribution", ixStartDistribution},
		{"claim_dividend", ixClaimDividend},
		{"update_authority", ixUpdateAuthority},
		{"initialize_platform", ixInitializePlatform},
		{"add_to_whitelist", ixAddToWhitelist},
		{"remove_from_whitelist", ixRemoveFromWhitelist},
		{"create_campaign", ixCreateCampaign},
		{"invest", ixInvest},
		{"finalize_campaign", ixFinalizeCampaign},
		{"cancel_campaign", ixCancelCampaign},
		{"claim_refund", ixClaimRefund},
		{"claim_tokens", ixClaimTokens},
		{"update_platform_wallet", ixUpdatePlatformWallet},
		{"initialize_marketplace", ixInitializeMarketplace},
		{"create_listing", ixCreateListing},
		{"buy_tokens", ixBuyTokens},
		{"cancel_listing", ixCancelListing},
		{"update_listing_price", ixUpdateListingPrice},
		{"update_fee", ixUpdateFee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, globalTag(tt.name), tt.tag)
		})
	}
}

// The pinned account tags must equal sha256("account:<StructName>")[0:8].
func TestAccountDiscriminators(t *testing.T) {
	tests := []struct {
		name string
		tag  Discriminator
	}{
		{"DividendPool", accDividendPool},
		{"DistributionRecord", accDistributionRecord},
		{"ClaimRecord", accClaimRecord},
		{"PlatformConfig", accPlatformConfig},
		{"WhitelistEntry", accWhitelistEntry},
		{"Campaign", accCampaign},
		{"InvestorRecord", accInvestorRecord},
		{"Marketplace", accMarketplace},
		{"Listing", accListing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, accountTag(tt.name), tt.tag)
		})
	}
}
