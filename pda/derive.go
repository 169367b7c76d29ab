// Package pda derives the protocol's program-derived addresses. Every
// entity has one canonical seed recipe; the same seed list always yields
// the same address, and seed order is part of the contract.
package pda

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Seed labels used by the three programs.
const (
	seedDividendPool   = "dividend_pool"
	seedDividendVault  = "dividend_vault"
	seedDistribution   = "distribution"
	seedClaim          = "claim"
	seedPlatformConfig = "platform_config"
	seedWhitelist      = "whitelist"
	seedCampaign       = "campaign"
	seedEscrow         = "escrow"
	seedInvestor       = "investor"
	seedMarketplace    = "marketplace"
	seedListing        = "listing"
)

// Derive computes the program-derived address for an ordered seed list.
// The only failure mode is "no valid address found", which is practically
// unreachable with standard derivation.
func Derive(seeds [][]byte, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("derive address: %w", err)
	}
	return addr, bump, nil
}

// DividendPool derives the pool address for a property mint.
func DividendPool(propertyMint, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive([][]byte{[]byte(seedDividendPool), propertyMint.Bytes()}, programID)
}

// DividendVault derives the vault holding a pool's undistributed funds.
func DividendVault(pool, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive([][]byte{[]byte(seedDividendVault), pool.Bytes()}, programID)
}

// DistributionRecord derives the record address for one pool epoch. The
// epoch is encoded as 8 little-endian bytes.
func DistributionRecord(pool solana.PublicKey, epoch uint64, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	var epochLE [8]byte
	binary.LittleEndian.PutUint64(epochLE[:], epoch)
	return Derive([][]byte{[]byte(seedDistribution), pool.Bytes(), epochLE[:]}, programID)
}

// ClaimRecord derives the claim address for (distribution, user).
func ClaimRecord(distribution, user, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive([][]byte{[]byte(seedClaim), distribution.Bytes(), user.Bytes()}, programID)
}

// PlatformConfig derives the crowdfunding platform singleton address.
func PlatformConfig(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive([][]byte{[]byte(seedPlatformConfig)}, programID)
}

// WhitelistEntry derives the whitelist entry address for a wallet.
func WhitelistEntry(wallet, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive([][]byte{[]byte(seedWhitelist), wallet.Bytes()}, programID)
}

// Campaign derives the campaign address for (property id, creator).
func Campaign(propertyID string, creator, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive([][]byte{[]byte(seedCampaign), []byte(propertyID), creator.Bytes()}, programID)
}

// EscrowVault derives the escrow vault holding a campaign's raised funds.
func EscrowVault(campaign, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive([][]byte{[]byte(seedEscrow), campaign.Bytes()}, programID)
}

// InvestorRecord derives the investor record address for
// (campaign, investor).
func InvestorRecord(campaign, investor, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive([][]byte{[]byte(seedInvestor), campaign.Bytes(), investor.Bytes()}, programID)
}

// Marketplace derives the marketplace stats singleton address.
func Marketplace(programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive([][]byte{[]byte(seedMarketplace)}, programID)
}

// Listing derives the listing address for (seller, token mint). Tying the
// address to the pair is what prevents a second concurrent listing for the
// same seller and mint.
func Listing(seller, tokenMint, programID solana.PublicKey) (solana.PublicKey, uint8, error) {
	return Derive([][]byte{[]byte(seedListing), seller.Bytes(), tokenMint.Bytes()}, programID)
}
