package models

import "github.com/gagliardetto/solana-go"

// MaxMarketplaceFeeBps caps the marketplace fee at 10%.
const MaxMarketplaceFeeBps = 1000

// Listing is a secondary-market sell order backed by escrowed tokens. Its
// address is derived from (seller, mint), so a seller cannot hold two
// listings for the same mint at once.
type Listing struct {
	Address       solana.PublicKey
	Seller        solana.PublicKey
	TokenMint     solana.PublicKey
	Amount        uint64
	PricePerToken uint64
	CreatedAt     int64
	// IsActive tracks Amount: a listing deactivates exactly when its
	// escrow empties or the seller cancels.
	IsActive bool
}

// IsOpen reports whether the listing can still be bought from.
func (l *Listing) IsOpen() bool {
	return l.IsActive && l.Amount > 0
}

// TotalPrice returns amount × PricePerToken with overflow checking.
func (l *Listing) TotalPrice(amount uint64) (uint64, error) {
	return CheckedMul(amount, l.PricePerToken)
}

// Marketplace holds platform-wide marketplace settings and counters.
type Marketplace struct {
	Authority     solana.PublicKey
	FeeBps        uint16
	TotalVolume   uint64
	TotalListings uint64
}

// Fee returns the platform's cut of totalPrice at the configured fee rate,
// floor division.
func (m *Marketplace) Fee(totalPrice uint64) (uint64, error) {
	return MulBps(totalPrice, m.FeeBps)
}
