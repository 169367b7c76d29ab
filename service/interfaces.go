package service

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"

	"propvest/events"
	"propvest/models"
)

// ProgramAccount pairs an account address with its raw data, as returned
// by a program-account scan.
type ProgramAccount struct {
	Address solana.PublicKey
	Data    []byte
}

// LedgerGateway submits encoded instructions as atomic single-instruction
// transactions and fetches raw account bytes. It owns signing, finality
// and transport retries; the services never retry a rejected submission
// and hold no state between calls.
type LedgerGateway interface {
	// SubmitInstruction submits ix as one transaction and blocks until the
	// ledger confirms or rejects it.
	SubmitInstruction(ctx context.Context, ix solana.Instruction) (solana.Signature, error)

	// AccountData returns the raw bytes of the account at address, or
	// ErrAccountNotFound if no account exists there.
	AccountData(ctx context.Context, address solana.PublicKey) ([]byte, error)

	// ProgramAccounts returns every account owned by program whose data is
	// exactly dataSize bytes long.
	ProgramAccounts(ctx context.Context, program solana.PublicKey, dataSize uint64) ([]ProgramAccount, error)

	// TokenBalance returns the wallet's balance of mint, in base units.
	// A wallet with no token account for mint has balance zero.
	TokenBalance(ctx context.Context, wallet, mint solana.PublicKey) (uint64, error)

	// TokenSupply returns the total circulating supply of mint.
	TokenSupply(ctx context.Context, mint solana.PublicKey) (uint64, error)

	// Now returns the wall-clock time used for deadline and expiry checks.
	Now() time.Time
}

// EventPublisher broadcasts protocol events after confirmed submissions.
type EventPublisher interface {
	Publish(event events.Event)
}

// DividendService defines the interface for dividend pool operations
type DividendService interface {
	// InitializePool creates the dividend pool and vault for a property mint
	InitializePool(ctx context.Context, authority, propertyMint solana.PublicKey, propertyID string, frequencyDays uint64) (solana.Signature, error)

	// DepositDividend adds funds to the pool's still-open epoch
	DepositDividend(ctx context.Context, authority, propertyMint solana.PublicKey, amount uint64) (solana.Signature, error)

	// StartDistribution snapshots supply and opens the record for epoch,
	// which must equal the pool's current epoch counter
	StartDistribution(ctx context.Context, authority, propertyMint solana.PublicKey, epoch uint64) (solana.Signature, error)

	// ClaimDividend claims the caller's share of an epoch's distribution
	ClaimDividend(ctx context.Context, user, propertyMint solana.PublicKey, epoch uint64) (solana.Signature, error)

	// GetClaimableAmount computes holder balance × per-token amount for epoch
	GetClaimableAmount(ctx context.Context, user, propertyMint solana.PublicKey, epoch uint64) (uint64, error)

	// HasClaimedDividend reports whether a claim record already exists for
	// (distribution, user). Advisory only: the remote ledger stays the
	// sole arbiter of the claim race.
	HasClaimedDividend(ctx context.Context, user, propertyMint solana.PublicKey, epoch uint64) (bool, error)

	// UpdateAuthority transfers pool ownership
	UpdateAuthority(ctx context.Context, authority, propertyMint, newAuthority solana.PublicKey) (solana.Signature, error)

	// GetPool returns the pool for a mint, or nil if none exists yet
	GetPool(ctx context.Context, propertyMint solana.PublicKey) (*models.DividendPool, error)

	// GetDistribution returns the record for an epoch, or nil if none exists
	GetDistribution(ctx context.Context, propertyMint solana.PublicKey, epoch uint64) (*models.DistributionRecord, error)
}

// CampaignParams carries the create-campaign arguments.
type CampaignParams struct {
	PropertyID        string
	FundingGoal       uint64
	PlatformEquityBps uint16
	FundingDeadline   int64 // unix seconds
	TokenPrice        uint64
	TotalTokens       uint64
}

// CrowdfundingService defines the interface for campaign operations
type CrowdfundingService interface {
	// InitializePlatform creates the platform config singleton
	InitializePlatform(ctx context.Context, admin, platformWallet solana.PublicKey) (solana.Signature, error)

	// AddToWhitelist grants a wallet campaign-creation rights
	AddToWhitelist(ctx context.Context, admin, wallet solana.PublicKey) (solana.Signature, error)

	// RemoveFromWhitelist revokes a wallet's campaign-creation rights
	RemoveFromWhitelist(ctx context.Context, admin, wallet solana.PublicKey) (solana.Signature, error)

	// IsWhitelisted reports whether a wallet holds an active whitelist entry
	IsWhitelisted(ctx context.Context, wallet solana.PublicKey) (bool, error)

	// CreateCampaign opens a campaign for a whitelisted creator
	CreateCampaign(ctx context.Context, creator, propertyMint solana.PublicKey, params CampaignParams) (solana.Signature, error)

	// Invest buys amount ÷ tokenPrice tokens in an active campaign
	Invest(ctx context.Context, investor solana.PublicKey, propertyID string, creator solana.PublicKey, amount uint64) (solana.Signature, error)

	// FinalizeCampaign closes a campaign as Funded and splits the escrow
	FinalizeCampaign(ctx context.Context, creator solana.PublicKey, propertyID string) (solana.Signature, error)

	// CancelCampaign moves an active campaign to Cancelled, enabling refunds
	CancelCampaign(ctx context.Context, creator solana.PublicKey, propertyID string) (solana.Signature, error)

	// ClaimRefund returns an investor's full stake from a cancelled campaign
	ClaimRefund(ctx context.Context, investor solana.PublicKey, propertyID string, creator solana.PublicKey) (solana.Signature, error)

	// ClaimTokens mints an investor's purchased tokens from a funded campaign
	ClaimTokens(ctx context.Context, investor solana.PublicKey, propertyID string, creator solana.PublicKey) (solana.Signature, error)

	// UpdatePlatformWallet changes the fee-collection wallet
	UpdatePlatformWallet(ctx context.Context, admin, newWallet solana.PublicKey) (solana.Signature, error)

	// GetCampaign returns a campaign, or nil if none exists
	GetCampaign(ctx context.Context, propertyID string, creator solana.PublicKey) (*models.Campaign, error)

	// GetInvestorRecord returns an investor's record, or nil if none exists
	GetInvestorRecord(ctx context.Context, propertyID string, creator, investor solana.PublicKey) (*models.InvestorRecord, error)

	// GetPlatformConfig returns the platform singleton, or nil before init
	GetPlatformConfig(ctx context.Context) (*models.PlatformConfig, error)
}

// MarketplaceService defines the interface for secondary-market operations
type MarketplaceService interface {
	// InitializeMarketplace creates the marketplace singleton
	InitializeMarketplace(ctx context.Context, authority solana.PublicKey, feeBps uint16) (solana.Signature, error)

	// CreateListing escrows amount tokens under a new listing
	CreateListing(ctx context.Context, seller, tokenMint solana.PublicKey, amount, pricePerToken uint64) (solana.Signature, error)

	// BuyTokens fills up to the listing's escrowed amount
	BuyTokens(ctx context.Context, buyer, seller, tokenMint solana.PublicKey, amount uint64) (solana.Signature, error)

	// CancelListing returns remaining escrow to the seller and deactivates
	CancelListing(ctx context.Context, seller, tokenMint solana.PublicKey) (solana.Signature, error)

	// UpdateListingPrice changes the per-token price without touching escrow
	UpdateListingPrice(ctx context.Context, seller, tokenMint solana.PublicKey, newPricePerToken uint64) (solana.Signature, error)

	// UpdateFee changes the platform fee (authority only)
	UpdateFee(ctx context.Context, authority solana.PublicKey, newFeeBps uint16) (solana.Signature, error)

	// GetListing returns the listing for (seller, mint), or nil if none exists
	GetListing(ctx context.Context, seller, tokenMint solana.PublicKey) (*models.Listing, error)

	// GetActiveListings scans all open listings, newest first. The sort
	// order is for display only and carries no protocol meaning.
	GetActiveListings(ctx context.Context) ([]*models.Listing, error)

	// GetMarketplace returns the stats singleton, or nil before init
	GetMarketplace(ctx context.Context) (*models.Marketplace, error)
}
