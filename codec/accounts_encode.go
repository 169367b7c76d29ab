package codec

import (
	"propvest/models"
)

// Account encoders: the exact mirror of the decoders, rendering a record
// back into the on-chain byte layout (including the trailing PDA bump
// bytes, written as zero). The client never writes accounts to the ledger;
// these exist for round-trip verification and for building byte-exact
// fixtures in tests and tooling.

// EncodeDividendPool renders a DividendPool account blob.
func EncodeDividendPool(p *models.DividendPool) []byte {
	w := newWireWriter(accDividendPool)
	w.pubkey(p.Authority)
	w.pubkey(p.PropertyMint)
	w.pubkey(p.DividendVault)
	w.str(p.PropertyID)
	w.u64(p.TotalDistributed)
	w.u64(p.CurrentEpoch)
	w.u64(p.DistributionFrequencyDays)
	w.i64(p.LastDistributionTime)
	w.u64(p.TotalDepositedCurrentEpoch)
	w.u8(0) // bump
	return w.buf
}

// EncodeDistributionRecord renders a DistributionRecord account blob.
func EncodeDistributionRecord(d *models.DistributionRecord) []byte {
	w := newWireWriter(accDistributionRecord)
	w.pubkey(d.Pool)
	w.u64(d.Epoch)
	w.u64(d.TotalAmount)
	w.u64(d.TotalTokenSupply)
	w.u64(d.AmountPerToken)
	w.i64(d.DistributedAt)
	w.u64(d.TotalClaimed)
	w.u8(0) // bump
	return w.buf
}

// EncodeClaimRecord renders a ClaimRecord account blob.
func EncodeClaimRecord(c *models.ClaimRecord) []byte {
	w := newWireWriter(accClaimRecord)
	w.pubkey(c.User)
	w.pubkey(c.Distribution)
	w.u64(c.Epoch)
	w.u64(c.AmountClaimed)
	w.i64(c.ClaimedAt)
	w.boolean(c.Claimed)
	w.u8(0) // bump
	return w.buf
}

// EncodePlatformConfig renders the crowdfunding platform singleton.
func EncodePlatformConfig(c *models.PlatformConfig) []byte {
	w := newWireWriter(accPlatformConfig)
	w.pubkey(c.Admin)
	w.pubkey(c.PlatformWallet)
	w.u64(c.TotalCampaigns)
	w.u8(0) // bump
	return w.buf
}

// EncodeWhitelistEntry renders a WhitelistEntry account blob.
func EncodeWhitelistEntry(e *models.WhitelistEntry) []byte {
	w := newWireWriter(accWhitelistEntry)
	w.pubkey(e.Wallet)
	w.pubkey(e.WhitelistedBy)
	w.i64(e.WhitelistedAt)
	w.boolean(e.IsActive)
	w.u8(0) // bump
	return w.buf
}

// EncodeCampaign renders a Campaign account blob.
func EncodeCampaign(c *models.Campaign) []byte {
	w := newWireWriter(accCampaign)
	w.pubkey(c.Creator)
	w.pubkey(c.PropertyMint)
	w.pubkey(c.EscrowVault)
	w.str(c.PropertyID)
	w.u64(c.FundingGoal)
	w.u64(c.TotalRaised)
	w.u16(c.PlatformEquityBps)
	w.i64(c.FundingDeadline)
	w.u64(c.TokenPrice)
	w.u64(c.TotalTokens)
	w.u64(c.TokensSold)
	w.u32(c.InvestorCount)
	w.u8(uint8(c.Status))
	w.i64(c.CreatedAt)
	w.u8(0) // bump
	w.u8(0) // escrow bump
	return w.buf
}

// EncodeInvestorRecord renders an InvestorRecord account blob.
func EncodeInvestorRecord(rec *models.InvestorRecord) []byte {
	w := newWireWriter(accInvestorRecord)
	w.pubkey(rec.Investor)
	w.pubkey(rec.Campaign)
	w.u64(rec.AmountInvested)
	w.u64(rec.TokensPurchased)
	w.i64(rec.InvestedAt)
	w.boolean(rec.Refunded)
	w.boolean(rec.TokensClaimed)
	w.u8(0) // bump
	return w.buf
}

// EncodeListing renders a Listing account blob.
func EncodeListing(l *models.Listing) []byte {
	w := newWireWriter(accListing)
	w.pubkey(l.Seller)
	w.pubkey(l.TokenMint)
	w.u64(l.Amount)
	w.u64(l.PricePerToken)
	w.i64(l.CreatedAt)
	w.boolean(l.IsActive)
	w.u8(0) // bump
	return w.buf
}

// EncodeMarketplace renders the marketplace stats singleton.
func EncodeMarketplace(m *models.Marketplace) []byte {
	w := newWireWriter(accMarketplace)
	w.pubkey(m.Authority)
	w.u16(m.FeeBps)
	w.u64(m.TotalVolume)
	w.u64(m.TotalListings)
	w.u8(0) // bump
	return w.buf
}
