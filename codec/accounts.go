package codec

import (
	"propvest/models"
)

// Minimum layout sizes per entity: discriminator plus every fixed-width
// field, with variable-length strings counted at zero length. Buffers
// shorter than this can never hold a valid account of the type. On-chain
// accounts additionally carry a trailing PDA bump byte (two for Campaign)
// which the decoders skip.
const (
	dividendPoolMinSize       = discriminatorLen + 32*3 + 4 + 8*5                             // 148
	distributionRecordMinSize = discriminatorLen + 32 + 8*6                                   // 88
	claimRecordMinSize        = discriminatorLen + 32*2 + 8*3 + 1                             // 97
	platformConfigMinSize     = discriminatorLen + 32*2 + 8                                   // 80
	whitelistEntryMinSize     = discriminatorLen + 32*2 + 8 + 1                               // 81
	campaignMinSize           = discriminatorLen + 32*3 + 4 + 8 + 8 + 2 + 8 + 8 + 8 + 8 + 4 + 1 + 8 // 171
	investorRecordMinSize     = discriminatorLen + 32*2 + 8*3 + 1 + 1                         // 98
	listingMinSize            = discriminatorLen + 32*2 + 8*3 + 1                             // 97
	marketplaceMinSize        = discriminatorLen + 32 + 2 + 8 + 8                             // 58
)

// ListingAccountSize is the exact on-chain size of a Listing account (its
// fields plus the trailing bump), used as the data-size filter for bulk
// listing scans.
const ListingAccountSize = listingMinSize + 1

// DecodeDividendPool decodes a DividendPool account blob.
func DecodeDividendPool(data []byte) (*models.DividendPool, error) {
	r, err := newAccountReader("DividendPool", data, accDividendPool, dividendPoolMinSize)
	if err != nil {
		return nil, err
	}
	p := &models.DividendPool{
		Authority:                  r.pubkey(),
		PropertyMint:               r.pubkey(),
		DividendVault:              r.pubkey(),
		PropertyID:                 r.str(),
		TotalDistributed:           r.u64(),
		CurrentEpoch:               r.u64(),
		DistributionFrequencyDays:  r.u64(),
		LastDistributionTime:       r.i64(),
		TotalDepositedCurrentEpoch: r.u64(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

// DecodeDistributionRecord decodes a DistributionRecord account blob.
func DecodeDistributionRecord(data []byte) (*models.DistributionRecord, error) {
	r, err := newAccountReader("DistributionRecord", data, accDistributionRecord, distributionRecordMinSize)
	if err != nil {
		return nil, err
	}
	d := &models.DistributionRecord{
		Pool:             r.pubkey(),
		Epoch:            r.u64(),
		TotalAmount:      r.u64(),
		TotalTokenSupply: r.u64(),
		AmountPerToken:   r.u64(),
		DistributedAt:    r.i64(),
		TotalClaimed:     r.u64(),
	}
	if r.err != nil {
		return nil, r.err
	}
	if d.TotalClaimed > d.TotalAmount {
		return nil, &models.InvariantViolationError{
			Entity: "DistributionRecord",
			Detail: "total claimed exceeds total amount",
		}
	}
	return d, nil
}

// DecodeClaimRecord decodes a ClaimRecord account blob.
func DecodeClaimRecord(data []byte) (*models.ClaimRecord, error) {
	r, err := newAccountReader("ClaimRecord", data, accClaimRecord, claimRecordMinSize)
	if err != nil {
		return nil, err
	}
	c := &models.ClaimRecord{
		User:          r.pubkey(),
		Distribution:  r.pubkey(),
		Epoch:         r.u64(),
		AmountClaimed: r.u64(),
		ClaimedAt:     r.i64(),
		Claimed:       r.boolean(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return c, nil
}

// DecodePlatformConfig decodes the crowdfunding platform singleton.
func DecodePlatformConfig(data []byte) (*models.PlatformConfig, error) {
	r, err := newAccountReader("PlatformConfig", data, accPlatformConfig, platformConfigMinSize)
	if err != nil {
		return nil, err
	}
	c := &models.PlatformConfig{
		Admin:          r.pubkey(),
		PlatformWallet: r.pubkey(),
		TotalCampaigns: r.u64(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return c, nil
}

// DecodeWhitelistEntry decodes a WhitelistEntry account blob.
func DecodeWhitelistEntry(data []byte) (*models.WhitelistEntry, error) {
	r, err := newAccountReader("WhitelistEntry", data, accWhitelistEntry, whitelistEntryMinSize)
	if err != nil {
		return nil, err
	}
	e := &models.WhitelistEntry{
		Wallet:        r.pubkey(),
		WhitelistedBy: r.pubkey(),
		WhitelistedAt: r.i64(),
		IsActive:      r.boolean(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return e, nil
}

// DecodeCampaign decodes a Campaign account blob. Every field after the
// variable-length property id is read relative to the discovered string
// length, never at a fixed offset.
func DecodeCampaign(data []byte) (*models.Campaign, error) {
	r, err := newAccountReader("Campaign", data, accCampaign, campaignMinSize)
	if err != nil {
		return nil, err
	}
	c := &models.Campaign{
		Creator:           r.pubkey(),
		PropertyMint:      r.pubkey(),
		EscrowVault:       r.pubkey(),
		PropertyID:        r.str(),
		FundingGoal:       r.u64(),
		TotalRaised:       r.u64(),
		PlatformEquityBps: r.u16(),
		FundingDeadline:   r.i64(),
		TokenPrice:        r.u64(),
		TotalTokens:       r.u64(),
		TokensSold:        r.u64(),
		InvestorCount:     r.u32(),
		Status:            models.CampaignStatus(r.u8()),
		CreatedAt:         r.i64(),
	}
	if r.err != nil {
		return nil, r.err
	}
	if !c.Status.IsValid() {
		return nil, &MalformedAccountError{
			Entity: "Campaign",
			Offset: r.off,
			Reason: "unknown campaign status byte",
		}
	}
	return c, nil
}

// DecodeInvestorRecord decodes an InvestorRecord account blob.
func DecodeInvestorRecord(data []byte) (*models.InvestorRecord, error) {
	r, err := newAccountReader("InvestorRecord", data, accInvestorRecord, investorRecordMinSize)
	if err != nil {
		return nil, err
	}
	rec := &models.InvestorRecord{
		Investor:        r.pubkey(),
		Campaign:        r.pubkey(),
		AmountInvested:  r.u64(),
		TokensPurchased: r.u64(),
		InvestedAt:      r.i64(),
		Refunded:        r.boolean(),
		TokensClaimed:   r.boolean(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}

// DecodeListing decodes a Listing account blob. The caller sets Address;
// it is not part of the stored layout.
func DecodeListing(data []byte) (*models.Listing, error) {
	r, err := newAccountReader("Listing", data, accListing, listingMinSize)
	if err != nil {
		return nil, err
	}
	l := &models.Listing{
		Seller:        r.pubkey(),
		TokenMint:     r.pubkey(),
		Amount:        r.u64(),
		PricePerToken: r.u64(),
		CreatedAt:     r.i64(),
		IsActive:      r.boolean(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return l, nil
}

// DecodeMarketplace decodes the marketplace stats singleton.
func DecodeMarketplace(data []byte) (*models.Marketplace, error) {
	r, err := newAccountReader("Marketplace", data, accMarketplace, marketplaceMinSize)
	if err != nil {
		return nil, err
	}
	m := &models.Marketplace{
		Authority:     r.pubkey(),
		FeeBps:        r.u16(),
		TotalVolume:   r.u64(),
		TotalListings: r.u64(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}
