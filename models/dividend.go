package models

import "github.com/gagliardetto/solana-go"

// DividendPool tracks dividend accounting for one property token mint.
// Exactly one pool exists per mint: its address is derived from the mint
// alone, so two pools can never share a mint.
type DividendPool struct {
	Authority                 solana.PublicKey
	PropertyMint              solana.PublicKey
	DividendVault             solana.PublicKey
	PropertyID                string
	TotalDistributed          uint64
	CurrentEpoch              uint64
	DistributionFrequencyDays uint64
	LastDistributionTime      int64
	// TotalDepositedCurrentEpoch resets to zero the instant a new epoch's
	// distribution record is created.
	TotalDepositedCurrentEpoch uint64
}

// DistributionRecord snapshots one closed dividend epoch. Every field
// except TotalClaimed is immutable once the record exists, and
// TotalClaimed never exceeds TotalAmount.
type DistributionRecord struct {
	Pool             solana.PublicKey
	Epoch            uint64
	TotalAmount      uint64
	TotalTokenSupply uint64
	AmountPerToken   uint64
	DistributedAt    int64
	TotalClaimed     uint64
}

// PerTokenAmount returns the floor share of one token when total is split
// across supply tokens. The division remainder stays in the vault and is
// unclaimable: a full-supply sweep claims supply × PerTokenAmount, not
// total.
func PerTokenAmount(total, supply uint64) uint64 {
	if supply == 0 {
		return 0
	}
	return total / supply
}

// ClaimableBy returns the amount a holder of balance tokens can claim from
// this distribution.
func (d *DistributionRecord) ClaimableBy(balance uint64) (uint64, error) {
	return CheckedMul(balance, d.AmountPerToken)
}

// ClaimRecord marks one holder's claim against one distribution. The
// record's existence at its derived address is itself the double-claim
// guard: absence means "not yet claimed".
type ClaimRecord struct {
	User          solana.PublicKey
	Distribution  solana.PublicKey
	Epoch         uint64
	AmountClaimed uint64
	ClaimedAt     int64
	Claimed       bool
}
