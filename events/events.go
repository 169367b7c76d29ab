package events

import "github.com/gagliardetto/solana-go"

// EventType represents different types of protocol events
type EventType string

const (
	EventTypePoolInitialized     EventType = "pool_initialized"
	EventTypeDividendDeposited   EventType = "dividend_deposited"
	EventTypeDistributionStarted EventType = "distribution_started"
	EventTypeDividendClaimed     EventType = "dividend_claimed"
	EventTypeAuthorityUpdated    EventType = "authority_updated"

	EventTypePlatformInitialized   EventType = "platform_initialized"
	EventTypeWalletWhitelisted     EventType = "wallet_whitelisted"
	EventTypeWhitelistRemoved      EventType = "whitelist_removed"
	EventTypeCampaignCreated       EventType = "campaign_created"
	EventTypeInvestmentMade        EventType = "investment_made"
	EventTypeCampaignFinalized     EventType = "campaign_finalized"
	EventTypeCampaignCancelled     EventType = "campaign_cancelled"
	EventTypeRefundClaimed         EventType = "refund_claimed"
	EventTypeTokensClaimed         EventType = "tokens_claimed"
	EventTypePlatformWalletUpdated EventType = "platform_wallet_updated"

	EventTypeMarketplaceInitialized EventType = "marketplace_initialized"
	EventTypeListingCreated         EventType = "listing_created"
	EventTypeTokensPurchased        EventType = "tokens_purchased"
	EventTypeListingCancelled       EventType = "listing_cancelled"
	EventTypeListingPriceUpdated    EventType = "listing_price_updated"
	EventTypeMarketplaceFeeUpdated  EventType = "marketplace_fee_updated"
)

// Event is the base interface for all protocol events
type Event interface {
	Type() EventType
}

// PoolInitializedEvent signals a new dividend pool
type PoolInitializedEvent struct {
	Pool         solana.PublicKey
	PropertyMint solana.PublicKey
	Authority    solana.PublicKey
	PropertyID   string
}

func (e PoolInitializedEvent) Type() EventType { return EventTypePoolInitialized }

// DividendDepositedEvent signals funds added to a pool's open epoch
type DividendDepositedEvent struct {
	Pool      solana.PublicKey
	Depositor solana.PublicKey
	Amount    uint64
}

func (e DividendDepositedEvent) Type() EventType { return EventTypeDividendDeposited }

// DistributionStartedEvent signals a new distribution epoch opening
type DistributionStartedEvent struct {
	Pool           solana.PublicKey
	Distribution   solana.PublicKey
	Epoch          uint64
	TotalAmount    uint64
	AmountPerToken uint64
}

func (e DistributionStartedEvent) Type() EventType { return EventTypeDistributionStarted }

// DividendClaimedEvent signals a holder claiming their epoch share
type DividendClaimedEvent struct {
	Pool   solana.PublicKey
	User   solana.PublicKey
	Epoch  uint64
	Amount uint64
}

func (e DividendClaimedEvent) Type() EventType { return EventTypeDividendClaimed }

// AuthorityUpdatedEvent signals a pool ownership transfer
type AuthorityUpdatedEvent struct {
	Pool         solana.PublicKey
	NewAuthority solana.PublicKey
}

func (e AuthorityUpdatedEvent) Type() EventType { return EventTypeAuthorityUpdated }

// PlatformInitializedEvent signals the crowdfunding platform being set up
type PlatformInitializedEvent struct {
	Admin          solana.PublicKey
	PlatformWallet solana.PublicKey
}

func (e PlatformInitializedEvent) Type() EventType { return EventTypePlatformInitialized }

// WalletWhitelistedEvent signals a wallet gaining campaign-creation rights
type WalletWhitelistedEvent struct {
	Wallet        solana.PublicKey
	WhitelistedBy solana.PublicKey
}

func (e WalletWhitelistedEvent) Type() EventType { return EventTypeWalletWhitelisted }

// WhitelistRemovedEvent signals a wallet losing campaign-creation rights
type WhitelistRemovedEvent struct {
	Wallet solana.PublicKey
}

func (e WhitelistRemovedEvent) Type() EventType { return EventTypeWhitelistRemoved }

// CampaignCreatedEvent signals a new crowdfunding campaign
type CampaignCreatedEvent struct {
	Campaign          solana.PublicKey
	Creator           solana.PublicKey
	PropertyID        string
	FundingGoal       uint64
	PlatformEquityBps uint16
	PlatformTokens    uint64
	TokensAvailable   uint64
	Deadline          int64
}

func (e CampaignCreatedEvent) Type() EventType { return EventTypeCampaignCreated }

// InvestmentMadeEvent signals an investment into an active campaign
type InvestmentMadeEvent struct {
	Campaign        solana.PublicKey
	Investor        solana.PublicKey
	Amount          uint64
	TokensPurchased uint64
}

func (e InvestmentMadeEvent) Type() EventType { return EventTypeInvestmentMade }

// CampaignFinalizedEvent signals a campaign closing as funded
type CampaignFinalizedEvent struct {
	Campaign      solana.PublicKey
	TotalRaised   uint64
	PlatformShare uint64
	CreatorShare  uint64
	Investors     uint32
}

func (e CampaignFinalizedEvent) Type() EventType { return EventTypeCampaignFinalized }

// CampaignCancelledEvent signals a campaign closing with refunds enabled
type CampaignCancelledEvent struct {
	Campaign          solana.PublicKey
	TotalRaised       uint64
	InvestorsToRefund uint32
}

func (e CampaignCancelledEvent) Type() EventType { return EventTypeCampaignCancelled }

// RefundClaimedEvent signals an investor recovering their stake in full
type RefundClaimedEvent struct {
	Campaign solana.PublicKey
	Investor solana.PublicKey
	Amount   uint64
}

func (e RefundClaimedEvent) Type() EventType { return EventTypeRefundClaimed }

// TokensClaimedEvent signals an investor receiving their property tokens
type TokensClaimedEvent struct {
	Campaign solana.PublicKey
	Investor solana.PublicKey
	Tokens   uint64
}

func (e TokensClaimedEvent) Type() EventType { return EventTypeTokensClaimed }

// PlatformWalletUpdatedEvent signals a fee-collection wallet change
type PlatformWalletUpdatedEvent struct {
	NewWallet solana.PublicKey
}

func (e PlatformWalletUpdatedEvent) Type() EventType { return EventTypePlatformWalletUpdated }

// MarketplaceInitializedEvent signals the marketplace being set up
type MarketplaceInitializedEvent struct {
	Authority solana.PublicKey
	FeeBps    uint16
}

func (e MarketplaceInitializedEvent) Type() EventType { return EventTypeMarketplaceInitialized }

// ListingCreatedEvent signals tokens moved into listing escrow
type ListingCreatedEvent struct {
	Listing       solana.PublicKey
	Seller        solana.PublicKey
	TokenMint     solana.PublicKey
	Amount        uint64
	PricePerToken uint64
}

func (e ListingCreatedEvent) Type() EventType { return EventTypeListingCreated }

// TokensPurchasedEvent signals a fill against a listing
type TokensPurchasedEvent struct {
	Listing    solana.PublicKey
	Buyer      solana.PublicKey
	Seller     solana.PublicKey
	Amount     uint64
	TotalPrice uint64
	Fee        uint64
}

func (e TokensPurchasedEvent) Type() EventType { return EventTypeTokensPurchased }

// ListingCancelledEvent signals escrowed tokens returned to the seller
type ListingCancelledEvent struct {
	Listing        solana.PublicKey
	Seller         solana.PublicKey
	ReturnedAmount uint64
}

func (e ListingCancelledEvent) Type() EventType { return EventTypeListingCancelled }

// ListingPriceUpdatedEvent signals a price change on an open listing
type ListingPriceUpdatedEvent struct {
	Listing  solana.PublicKey
	OldPrice uint64
	NewPrice uint64
}

func (e ListingPriceUpdatedEvent) Type() EventType { return EventTypeListingPriceUpdated }

// MarketplaceFeeUpdatedEvent signals a platform fee change
type MarketplaceFeeUpdatedEvent struct {
	NewFeeBps uint16
}

func (e MarketplaceFeeUpdatedEvent) Type() EventType { return EventTypeMarketplaceFeeUpdated }
