package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"

	"propvest/codec"
	"propvest/events"
	"propvest/models"
	"propvest/pda"
)

type crowdfundingService struct {
	gateway        LedgerGateway
	eventPublisher EventPublisher
	programID      solana.PublicKey
	platformWallet solana.PublicKey
}

// NewCrowdfundingService creates a new crowdfunding service bound to one
// deployed crowdfunding program and the platform's fee-collection wallet.
func NewCrowdfundingService(gateway LedgerGateway, eventPublisher EventPublisher, programID, platformWallet solana.PublicKey) CrowdfundingService {
	return &crowdfundingService{
		gateway:        gateway,
		eventPublisher: eventPublisher,
		programID:      programID,
		platformWallet: platformWallet,
	}
}

// InitializePlatform creates the platform config singleton. Called once by
// the platform admin.
func (s *crowdfundingService) InitializePlatform(ctx context.Context, admin, platformWallet solana.PublicKey) (solana.Signature, error) {
	config, _, err := pda.PlatformConfig(s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(admin).WRITE().SIGNER(),
		solana.Meta(config).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}

	sig, err := submit(ctx, s.gateway, "initialize_platform", s.programID, accounts, codec.EncodeInitializePlatform(platformWallet))
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.PlatformInitializedEvent{
		Admin:          admin,
		PlatformWallet: platformWallet,
	})
	return sig, nil
}

// AddToWhitelist grants a wallet campaign-creation rights. Admin only.
func (s *crowdfundingService) AddToWhitelist(ctx context.Context, admin, wallet solana.PublicKey) (solana.Signature, error) {
	config, _, err := pda.PlatformConfig(s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	entry, _, err := pda.WhitelistEntry(wallet, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(admin).WRITE().SIGNER(),
		solana.Meta(config),
		solana.Meta(wallet),
		solana.Meta(entry).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}

	sig, err := submit(ctx, s.gateway, "add_to_whitelist", s.programID, accounts, codec.EncodeAddToWhitelist())
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.WalletWhitelistedEvent{
		Wallet:        wallet,
		WhitelistedBy: admin,
	})
	return sig, nil
}

// RemoveFromWhitelist revokes a wallet's campaign-creation rights.
func (s *crowdfundingService) RemoveFromWhitelist(ctx context.Context, admin, wallet solana.PublicKey) (solana.Signature, error) {
	config, _, err := pda.PlatformConfig(s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	entry, _, err := pda.WhitelistEntry(wallet, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(admin).WRITE().SIGNER(),
		solana.Meta(config),
		solana.Meta(entry).WRITE(),
	}

	sig, err := submit(ctx, s.gateway, "remove_from_whitelist", s.programID, accounts, codec.EncodeRemoveFromWhitelist())
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.WhitelistRemovedEvent{Wallet: wallet})
	return sig, nil
}

// IsWhitelisted reports whether a wallet holds an active whitelist entry.
func (s *crowdfundingService) IsWhitelisted(ctx context.Context, wallet solana.PublicKey) (bool, error) {
	entry, _, err := pda.WhitelistEntry(wallet, s.programID)
	if err != nil {
		return false, err
	}

	data, err := s.gateway.AccountData(ctx, entry)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get whitelist entry: %w", err)
	}

	record, err := codec.DecodeWhitelistEntry(data)
	if err != nil {
		return false, err
	}
	return record.IsActive, nil
}

// CreateCampaign opens a campaign for a whitelisted creator. The client
// mirrors every remote validation so a rejected submission is never the
// first signal of bad input.
func (s *crowdfundingService) CreateCampaign(ctx context.Context, creator, propertyMint solana.PublicKey, params CampaignParams) (solana.Signature, error) {
	if params.FundingGoal == 0 {
		return solana.Signature{}, fmt.Errorf("funding goal must be positive")
	}
	if params.PlatformEquityBps > models.MaxPlatformEquityBps {
		return solana.Signature{}, fmt.Errorf("platform equity %d bps exceeds maximum %d", params.PlatformEquityBps, models.MaxPlatformEquityBps)
	}
	if params.TokenPrice == 0 {
		return solana.Signature{}, fmt.Errorf("token price must be positive")
	}
	if params.TotalTokens == 0 {
		return solana.Signature{}, fmt.Errorf("total token count must be positive")
	}
	if params.FundingDeadline <= s.gateway.Now().Unix() {
		return solana.Signature{}, fmt.Errorf("funding deadline must be in the future")
	}

	whitelisted, err := s.IsWhitelisted(ctx, creator)
	if err != nil {
		return solana.Signature{}, err
	}
	if !whitelisted {
		return solana.Signature{}, ErrNotWhitelisted
	}

	config, _, err := pda.PlatformConfig(s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	entry, _, err := pda.WhitelistEntry(creator, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	campaign, _, err := pda.Campaign(params.PropertyID, creator, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	escrow, _, err := pda.EscrowVault(campaign, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	data, err := codec.EncodeCreateCampaign(params.PropertyID, params.FundingGoal, params.PlatformEquityBps, params.FundingDeadline, params.TokenPrice, params.TotalTokens)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(creator).WRITE().SIGNER(),
		solana.Meta(config).WRITE(),
		solana.Meta(entry),
		solana.Meta(campaign).WRITE(),
		solana.Meta(escrow).WRITE(),
		solana.Meta(propertyMint).WRITE(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SysVarRentPubkey),
	}

	sig, err := submit(ctx, s.gateway, "create_campaign", s.programID, accounts, data)
	if err != nil {
		return solana.Signature{}, err
	}

	platformTokens, err := models.MulBps(params.TotalTokens, params.PlatformEquityBps)
	if err != nil {
		return solana.Signature{}, err
	}
	s.eventPublisher.Publish(events.CampaignCreatedEvent{
		Campaign:          campaign,
		Creator:           creator,
		PropertyID:        params.PropertyID,
		FundingGoal:       params.FundingGoal,
		PlatformEquityBps: params.PlatformEquityBps,
		PlatformTokens:    platformTokens,
		TokensAvailable:   params.TotalTokens - platformTokens,
		Deadline:          params.FundingDeadline,
	})
	log.WithFields(log.Fields{
		"campaign":   campaign,
		"propertyId": params.PropertyID,
		"goal":       params.FundingGoal,
		"signature":  sig,
	}).Info("campaign created")
	return sig, nil
}

// Invest buys amount ÷ tokenPrice tokens (floor) in an active campaign.
func (s *crowdfundingService) Invest(ctx context.Context, investor solana.PublicKey, propertyID string, creator solana.PublicKey, amount uint64) (solana.Signature, error) {
	campaign, err := s.GetCampaign(ctx, propertyID, creator)
	if err != nil {
		return solana.Signature{}, err
	}
	if campaign == nil {
		return solana.Signature{}, fmt.Errorf("campaign not found for property %q", propertyID)
	}
	if campaign.Status != models.CampaignStatusActive {
		return solana.Signature{}, fmt.Errorf("campaign is %s, not active", campaign.Status)
	}
	if s.gateway.Now().Unix() >= campaign.FundingDeadline {
		return solana.Signature{}, fmt.Errorf("campaign funding deadline has passed")
	}
	if amount == 0 {
		return solana.Signature{}, fmt.Errorf("investment amount must be positive")
	}
	if amount < campaign.TokenPrice {
		return solana.Signature{}, fmt.Errorf("investment %d is below the token price %d", amount, campaign.TokenPrice)
	}

	tokensToBuy := campaign.TokensFor(amount)
	available, err := campaign.AvailableTokens()
	if err != nil {
		return solana.Signature{}, err
	}
	if tokensToBuy > available {
		return solana.Signature{}, fmt.Errorf("%d tokens requested, only %d available", tokensToBuy, available)
	}

	campaignAddr, _, err := pda.Campaign(propertyID, creator, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	escrow, _, err := pda.EscrowVault(campaignAddr, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	record, _, err := pda.InvestorRecord(campaignAddr, investor, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(investor).WRITE().SIGNER(),
		solana.Meta(campaignAddr).WRITE(),
		solana.Meta(escrow).WRITE(),
		solana.Meta(record).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}

	sig, err := submit(ctx, s.gateway, "invest", s.programID, accounts, codec.EncodeInvest(amount))
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.InvestmentMadeEvent{
		Campaign:        campaignAddr,
		Investor:        investor,
		Amount:          amount,
		TokensPurchased: tokensToBuy,
	})
	log.WithFields(log.Fields{
		"campaign":  campaignAddr,
		"investor":  investor,
		"amount":    amount,
		"tokens":    tokensToBuy,
		"signature": sig,
	}).Info("investment made")
	return sig, nil
}

// FinalizeCampaign closes an active campaign as Funded: allowed when fully
// funded, or after the deadline with any funds raised. The escrow split
// (platform share at equity bps, remainder to the creator) executes
// remotely; the client computes it only for the event payload.
func (s *crowdfundingService) FinalizeCampaign(ctx context.Context, creator solana.PublicKey, propertyID string) (solana.Signature, error) {
	campaign, err := s.GetCampaign(ctx, propertyID, creator)
	if err != nil {
		return solana.Signature{}, err
	}
	if campaign == nil {
		return solana.Signature{}, fmt.Errorf("campaign not found for property %q", propertyID)
	}
	if campaign.Status != models.CampaignStatusActive {
		return solana.Signature{}, fmt.Errorf("campaign is %s, not active", campaign.Status)
	}
	if creator != campaign.Creator {
		return solana.Signature{}, fmt.Errorf("only the campaign creator can finalize")
	}

	deadlinePassed := s.gateway.Now().Unix() >= campaign.FundingDeadline
	if !campaign.IsFullyFunded() && !(deadlinePassed && campaign.TotalRaised > 0) {
		return solana.Signature{}, fmt.Errorf("campaign cannot be finalized yet: goal not met and deadline not passed")
	}

	campaignAddr, _, err := pda.Campaign(propertyID, creator, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	config, _, err := pda.PlatformConfig(s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	escrow, _, err := pda.EscrowVault(campaignAddr, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(creator).WRITE().SIGNER(),
		solana.Meta(config),
		solana.Meta(campaignAddr).WRITE(),
		solana.Meta(escrow).WRITE(),
		solana.Meta(s.platformWallet).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}

	sig, err := submit(ctx, s.gateway, "finalize_campaign", s.programID, accounts, codec.EncodeFinalizeCampaign())
	if err != nil {
		return solana.Signature{}, err
	}

	platformShare, err := models.MulBps(campaign.TotalRaised, campaign.PlatformEquityBps)
	if err != nil {
		return solana.Signature{}, err
	}
	s.eventPublisher.Publish(events.CampaignFinalizedEvent{
		Campaign:      campaignAddr,
		TotalRaised:   campaign.TotalRaised,
		PlatformShare: platformShare,
		CreatorShare:  campaign.TotalRaised - platformShare,
		Investors:     campaign.InvestorCount,
	})
	return sig, nil
}

// CancelCampaign moves an active campaign to Cancelled, enabling refunds.
// Creator only; Cancelled is terminal.
func (s *crowdfundingService) CancelCampaign(ctx context.Context, creator solana.PublicKey, propertyID string) (solana.Signature, error) {
	campaign, err := s.GetCampaign(ctx, propertyID, creator)
	if err != nil {
		return solana.Signature{}, err
	}
	if campaign == nil {
		return solana.Signature{}, fmt.Errorf("campaign not found for property %q", propertyID)
	}
	if campaign.Status != models.CampaignStatusActive {
		return solana.Signature{}, fmt.Errorf("campaign is %s, not active", campaign.Status)
	}
	if creator != campaign.Creator {
		return solana.Signature{}, fmt.Errorf("only the campaign creator can cancel")
	}

	campaignAddr, _, err := pda.Campaign(propertyID, creator, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(creator).WRITE().SIGNER(),
		solana.Meta(campaignAddr).WRITE(),
	}

	sig, err := submit(ctx, s.gateway, "cancel_campaign", s.programID, accounts, codec.EncodeCancelCampaign())
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.CampaignCancelledEvent{
		Campaign:          campaignAddr,
		TotalRaised:       campaign.TotalRaised,
		InvestorsToRefund: campaign.InvestorCount,
	})
	return sig, nil
}

// ClaimRefund returns an investor's full stake from a cancelled campaign.
// No partial or fee-adjusted refunds exist.
func (s *crowdfundingService) ClaimRefund(ctx context.Context, investor solana.PublicKey, propertyID string, creator solana.PublicKey) (solana.Signature, error) {
	campaign, err := s.GetCampaign(ctx, propertyID, creator)
	if err != nil {
		return solana.Signature{}, err
	}
	if campaign == nil {
		return solana.Signature{}, fmt.Errorf("campaign not found for property %q", propertyID)
	}
	if campaign.Status != models.CampaignStatusCancelled {
		return solana.Signature{}, fmt.Errorf("campaign is %s, refunds require cancelled", campaign.Status)
	}

	record, err := s.GetInvestorRecord(ctx, propertyID, creator, investor)
	if err != nil {
		return solana.Signature{}, err
	}
	if record == nil {
		return solana.Signature{}, fmt.Errorf("no investment found for this campaign")
	}
	if record.Refunded {
		return solana.Signature{}, fmt.Errorf("investment already refunded")
	}
	if record.AmountInvested == 0 {
		return solana.Signature{}, fmt.Errorf("nothing to refund")
	}

	campaignAddr, _, err := pda.Campaign(propertyID, creator, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	escrow, _, err := pda.EscrowVault(campaignAddr, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	recordAddr, _, err := pda.InvestorRecord(campaignAddr, investor, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(investor).WRITE().SIGNER(),
		solana.Meta(campaignAddr),
		solana.Meta(escrow).WRITE(),
		solana.Meta(recordAddr).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}

	sig, err := submit(ctx, s.gateway, "claim_refund", s.programID, accounts, codec.EncodeClaimRefund())
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.RefundClaimedEvent{
		Campaign: campaignAddr,
		Investor: investor,
		Amount:   record.AmountInvested,
	})
	log.WithFields(log.Fields{
		"campaign":  campaignAddr,
		"investor":  investor,
		"amount":    record.AmountInvested,
		"signature": sig,
	}).Info("refund claimed")
	return sig, nil
}

// ClaimTokens mints an investor's purchased tokens from a funded campaign.
// Mutually exclusive with ClaimRefund for the same record.
func (s *crowdfundingService) ClaimTokens(ctx context.Context, investor solana.PublicKey, propertyID string, creator solana.PublicKey) (solana.Signature, error) {
	campaign, err := s.GetCampaign(ctx, propertyID, creator)
	if err != nil {
		return solana.Signature{}, err
	}
	if campaign == nil {
		return solana.Signature{}, fmt.Errorf("campaign not found for property %q", propertyID)
	}
	if campaign.Status != models.CampaignStatusFunded {
		return solana.Signature{}, fmt.Errorf("campaign is %s, token claims require funded", campaign.Status)
	}

	record, err := s.GetInvestorRecord(ctx, propertyID, creator, investor)
	if err != nil {
		return solana.Signature{}, err
	}
	if record == nil {
		return solana.Signature{}, fmt.Errorf("no investment found for this campaign")
	}
	if record.TokensClaimed {
		return solana.Signature{}, fmt.Errorf("tokens already claimed")
	}
	if record.Refunded {
		return solana.Signature{}, fmt.Errorf("investment was refunded, tokens cannot be claimed")
	}
	if record.TokensPurchased == 0 {
		return solana.Signature{}, fmt.Errorf("no tokens to claim")
	}

	campaignAddr, _, err := pda.Campaign(propertyID, creator, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	recordAddr, _, err := pda.InvestorRecord(campaignAddr, investor, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	investorTokenAccount, _, err := solana.FindAssociatedTokenAddress(investor, campaign.PropertyMint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("derive investor token account: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(investor).WRITE().SIGNER(),
		solana.Meta(campaignAddr),
		solana.Meta(campaign.PropertyMint).WRITE(),
		solana.Meta(investorTokenAccount).WRITE(),
		solana.Meta(recordAddr).WRITE(),
		solana.Meta(solana.TokenProgramID),
	}

	sig, err := submit(ctx, s.gateway, "claim_tokens", s.programID, accounts, codec.EncodeClaimTokens())
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.TokensClaimedEvent{
		Campaign: campaignAddr,
		Investor: investor,
		Tokens:   record.TokensPurchased,
	})
	return sig, nil
}

// UpdatePlatformWallet changes the fee-collection wallet. Admin only.
func (s *crowdfundingService) UpdatePlatformWallet(ctx context.Context, admin, newWallet solana.PublicKey) (solana.Signature, error) {
	config, _, err := pda.PlatformConfig(s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(admin).WRITE().SIGNER(),
		solana.Meta(config).WRITE(),
	}

	sig, err := submit(ctx, s.gateway, "update_platform_wallet", s.programID, accounts, codec.EncodeUpdatePlatformWallet(newWallet))
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.PlatformWalletUpdatedEvent{NewWallet: newWallet})
	return sig, nil
}

// GetCampaign returns a campaign, or nil if none exists at the derived
// address.
func (s *crowdfundingService) GetCampaign(ctx context.Context, propertyID string, creator solana.PublicKey) (*models.Campaign, error) {
	campaign, _, err := pda.Campaign(propertyID, creator, s.programID)
	if err != nil {
		return nil, err
	}

	data, err := s.gateway.AccountData(ctx, campaign)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return codec.DecodeCampaign(data)
}

// GetInvestorRecord returns an investor's record, or nil if none exists.
func (s *crowdfundingService) GetInvestorRecord(ctx context.Context, propertyID string, creator, investor solana.PublicKey) (*models.InvestorRecord, error) {
	campaign, _, err := pda.Campaign(propertyID, creator, s.programID)
	if err != nil {
		return nil, err
	}
	record, _, err := pda.InvestorRecord(campaign, investor, s.programID)
	if err != nil {
		return nil, err
	}

	data, err := s.gateway.AccountData(ctx, record)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get investor record: %w", err)
	}
	return codec.DecodeInvestorRecord(data)
}

// GetPlatformConfig returns the platform singleton, or nil before init.
func (s *crowdfundingService) GetPlatformConfig(ctx context.Context) (*models.PlatformConfig, error) {
	config, _, err := pda.PlatformConfig(s.programID)
	if err != nil {
		return nil, err
	}

	data, err := s.gateway.AccountData(ctx, config)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get platform config: %w", err)
	}
	return codec.DecodePlatformConfig(data)
}
