package models

import (
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
)

// CampaignStatus is the campaign lifecycle state as stored on chain.
type CampaignStatus uint8

const (
	CampaignStatusActive CampaignStatus = iota
	CampaignStatusFunded
	CampaignStatusCancelled
)

func (s CampaignStatus) String() string {
	switch s {
	case CampaignStatusActive:
		return "active"
	case CampaignStatusFunded:
		return "funded"
	case CampaignStatusCancelled:
		return "cancelled"
	}
	return fmt.Sprintf("unknown(%d)", uint8(s))
}

// IsTerminal reports whether the status permits no further transitions.
func (s CampaignStatus) IsTerminal() bool {
	return s == CampaignStatusFunded || s == CampaignStatusCancelled
}

// IsValid reports whether the byte decoded from an account blob is a known
// status value.
func (s CampaignStatus) IsValid() bool {
	return s <= CampaignStatusCancelled
}

// MaxPropertyIDLen is the longest property identifier the programs accept.
const MaxPropertyIDLen = 64

// MaxPlatformEquityBps caps the platform's equity share at 50%.
const MaxPlatformEquityBps = 5000

// PlatformConfig is the singleton crowdfunding platform account.
type PlatformConfig struct {
	Admin          solana.PublicKey
	PlatformWallet solana.PublicKey
	TotalCampaigns uint64
}

// WhitelistEntry gates campaign creation: only wallets with an active
// entry may create campaigns.
type WhitelistEntry struct {
	Wallet        solana.PublicKey
	WhitelistedBy solana.PublicKey
	WhitelistedAt int64
	IsActive      bool
}

// Campaign is a goal-based crowdfunding round for one tokenized property.
type Campaign struct {
	Creator           solana.PublicKey
	PropertyMint      solana.PublicKey
	EscrowVault       solana.PublicKey
	PropertyID        string
	FundingGoal       uint64
	TotalRaised       uint64
	PlatformEquityBps uint16
	FundingDeadline   int64 // unix seconds
	TokenPrice        uint64
	TotalTokens       uint64
	TokensSold        uint64
	InvestorCount     uint32
	Status            CampaignStatus
	CreatedAt         int64
}

// PlatformTokens returns floor(TotalTokens × PlatformEquityBps / 10000),
// the slice of supply reserved for the platform and never sold to
// investors.
func (c *Campaign) PlatformTokens() (uint64, error) {
	return MulBps(c.TotalTokens, c.PlatformEquityBps)
}

// AvailableTokens returns TotalTokens − PlatformTokens − TokensSold. A
// would-be negative result is an InvariantViolationError, not a clamp.
func (c *Campaign) AvailableTokens() (uint64, error) {
	platform, err := c.PlatformTokens()
	if err != nil {
		return 0, err
	}
	sellable := c.TotalTokens - platform
	if c.TokensSold > sellable {
		return 0, &InvariantViolationError{
			Entity: "campaign",
			Detail: fmt.Sprintf("tokens sold %d exceeds sellable supply %d", c.TokensSold, sellable),
		}
	}
	return sellable - c.TokensSold, nil
}

// TokensFor returns how many tokens amount buys at the campaign's token
// price, floor division.
func (c *Campaign) TokensFor(amount uint64) uint64 {
	if c.TokenPrice == 0 {
		return 0
	}
	return amount / c.TokenPrice
}

// IsFullyFunded reports whether the raised total has reached the goal.
func (c *Campaign) IsFullyFunded() bool {
	return c.TotalRaised >= c.FundingGoal
}

// IsExpired reports whether the funding deadline passed without the goal
// being met. Every expiry check in the system goes through this method so
// UI reads and automated sweeps cannot disagree.
func (c *Campaign) IsExpired(now time.Time) bool {
	return now.Unix() > c.FundingDeadline && !c.IsFullyFunded()
}

// InvestorRecord tracks one investor's position in one campaign. Refunded
// and TokensClaimed are mutually exclusive terminal outcomes: a refunded
// investor can never later claim tokens for the same record.
type InvestorRecord struct {
	Investor        solana.PublicKey
	Campaign        solana.PublicKey
	AmountInvested  uint64
	TokensPurchased uint64
	InvestedAt      int64
	Refunded        bool
	TokensClaimed   bool
}
