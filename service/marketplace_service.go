package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/gagliardetto/solana-go"
	log "github.com/sirupsen/logrus"

	"propvest/codec"
	"propvest/events"
	"propvest/models"
	"propvest/pda"
)

type marketplaceService struct {
	gateway        LedgerGateway
	eventPublisher EventPublisher
	programID      solana.PublicKey
	platformWallet solana.PublicKey
}

// NewMarketplaceService creates a new marketplace service bound to one
// deployed marketplace program and the platform's fee-collection wallet.
func NewMarketplaceService(gateway LedgerGateway, eventPublisher EventPublisher, programID, platformWallet solana.PublicKey) MarketplaceService {
	return &marketplaceService{
		gateway:        gateway,
		eventPublisher: eventPublisher,
		programID:      programID,
		platformWallet: platformWallet,
	}
}

// InitializeMarketplace creates the marketplace singleton. Called once by
// the marketplace authority.
func (s *marketplaceService) InitializeMarketplace(ctx context.Context, authority solana.PublicKey, feeBps uint16) (solana.Signature, error) {
	if feeBps > models.MaxMarketplaceFeeBps {
		return solana.Signature{}, fmt.Errorf("fee %d bps exceeds maximum %d", feeBps, models.MaxMarketplaceFeeBps)
	}

	marketplace, _, err := pda.Marketplace(s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(authority).WRITE().SIGNER(),
		solana.Meta(marketplace).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}

	sig, err := submit(ctx, s.gateway, "initialize_marketplace", s.programID, accounts, codec.EncodeInitializeMarketplace(feeBps))
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.MarketplaceInitializedEvent{
		Authority: authority,
		FeeBps:    feeBps,
	})
	return sig, nil
}

// CreateListing escrows amount tokens from the seller under a new listing.
// One listing per (seller, mint): an open listing at the derived address
// must be cancelled or fully bought out before a new one can be created.
func (s *marketplaceService) CreateListing(ctx context.Context, seller, tokenMint solana.PublicKey, amount, pricePerToken uint64) (solana.Signature, error) {
	if amount == 0 {
		return solana.Signature{}, fmt.Errorf("listing amount must be positive")
	}
	if pricePerToken == 0 {
		return solana.Signature{}, fmt.Errorf("price per token must be positive")
	}

	existing, err := s.GetListing(ctx, seller, tokenMint)
	if err != nil {
		return solana.Signature{}, err
	}
	if existing != nil && existing.IsOpen() {
		return solana.Signature{}, ErrListingExists
	}

	marketplace, _, err := pda.Marketplace(s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	listing, _, err := pda.Listing(seller, tokenMint, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	sellerTokenAccount, _, err := solana.FindAssociatedTokenAddress(seller, tokenMint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("derive seller token account: %w", err)
	}
	escrowTokenAccount, _, err := solana.FindAssociatedTokenAddress(listing, tokenMint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("derive escrow token account: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(seller).WRITE().SIGNER(),
		solana.Meta(marketplace).WRITE(),
		solana.Meta(tokenMint),
		solana.Meta(listing).WRITE(),
		solana.Meta(sellerTokenAccount).WRITE(),
		solana.Meta(escrowTokenAccount).WRITE(),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SPLAssociatedTokenAccountProgramID),
		solana.Meta(solana.SystemProgramID),
	}

	sig, err := submit(ctx, s.gateway, "create_listing", s.programID, accounts, codec.EncodeCreateListing(amount, pricePerToken))
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.ListingCreatedEvent{
		Listing:       listing,
		Seller:        seller,
		TokenMint:     tokenMint,
		Amount:        amount,
		PricePerToken: pricePerToken,
	})
	log.WithFields(log.Fields{
		"listing":   listing,
		"seller":    seller,
		"mint":      tokenMint,
		"amount":    amount,
		"price":     pricePerToken,
		"signature": sig,
	}).Info("listing created")
	return sig, nil
}

// BuyTokens fills amount tokens against an open listing. The escrow pays
// the buyer, the buyer pays the seller minus the platform fee, and the fee
// goes to the platform wallet, all within the one transaction.
func (s *marketplaceService) BuyTokens(ctx context.Context, buyer, seller, tokenMint solana.PublicKey, amount uint64) (solana.Signature, error) {
	listing, err := s.GetListing(ctx, seller, tokenMint)
	if err != nil {
		return solana.Signature{}, err
	}
	if listing == nil {
		return solana.Signature{}, fmt.Errorf("no listing found for seller %s and mint %s", seller, tokenMint)
	}
	if !listing.IsActive {
		return solana.Signature{}, fmt.Errorf("listing is not active")
	}
	if amount == 0 {
		return solana.Signature{}, fmt.Errorf("purchase amount must be positive")
	}
	if amount > listing.Amount {
		return solana.Signature{}, fmt.Errorf("%d tokens requested, listing holds %d", amount, listing.Amount)
	}

	marketplace, err := s.GetMarketplace(ctx)
	if err != nil {
		return solana.Signature{}, err
	}
	if marketplace == nil {
		return solana.Signature{}, fmt.Errorf("marketplace is not initialized")
	}

	totalPrice, err := listing.TotalPrice(amount)
	if err != nil {
		return solana.Signature{}, err
	}
	fee, err := marketplace.Fee(totalPrice)
	if err != nil {
		return solana.Signature{}, err
	}

	marketplaceAddr, _, err := pda.Marketplace(s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	listingAddr, _, err := pda.Listing(seller, tokenMint, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	escrowTokenAccount, _, err := solana.FindAssociatedTokenAddress(listingAddr, tokenMint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("derive escrow token account: %w", err)
	}
	buyerTokenAccount, _, err := solana.FindAssociatedTokenAddress(buyer, tokenMint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("derive buyer token account: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(buyer).WRITE().SIGNER(),
		solana.Meta(seller).WRITE(),
		solana.Meta(s.platformWallet).WRITE(),
		solana.Meta(marketplaceAddr).WRITE(),
		solana.Meta(tokenMint),
		solana.Meta(listingAddr).WRITE(),
		solana.Meta(escrowTokenAccount).WRITE(),
		solana.Meta(buyerTokenAccount).WRITE(),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SPLAssociatedTokenAccountProgramID),
		solana.Meta(solana.SystemProgramID),
	}

	sig, err := submit(ctx, s.gateway, "buy_tokens", s.programID, accounts, codec.EncodeBuyTokens(amount))
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.TokensPurchasedEvent{
		Listing:    listingAddr,
		Buyer:      buyer,
		Seller:     seller,
		Amount:     amount,
		TotalPrice: totalPrice,
		Fee:        fee,
	})
	log.WithFields(log.Fields{
		"listing":   listingAddr,
		"buyer":     buyer,
		"amount":    amount,
		"total":     totalPrice,
		"fee":       fee,
		"signature": sig,
	}).Info("tokens purchased")
	return sig, nil
}

// CancelListing returns the remaining escrow to the seller and deactivates
// the listing. Seller only.
func (s *marketplaceService) CancelListing(ctx context.Context, seller, tokenMint solana.PublicKey) (solana.Signature, error) {
	listing, err := s.GetListing(ctx, seller, tokenMint)
	if err != nil {
		return solana.Signature{}, err
	}
	if listing == nil {
		return solana.Signature{}, fmt.Errorf("no listing found for seller %s and mint %s", seller, tokenMint)
	}
	if !listing.IsActive {
		return solana.Signature{}, fmt.Errorf("listing is not active")
	}
	if seller != listing.Seller {
		return solana.Signature{}, fmt.Errorf("only the listing seller can cancel")
	}

	listingAddr, _, err := pda.Listing(seller, tokenMint, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	escrowTokenAccount, _, err := solana.FindAssociatedTokenAddress(listingAddr, tokenMint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("derive escrow token account: %w", err)
	}
	sellerTokenAccount, _, err := solana.FindAssociatedTokenAddress(seller, tokenMint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("derive seller token account: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(seller).WRITE().SIGNER(),
		solana.Meta(tokenMint),
		solana.Meta(listingAddr).WRITE(),
		solana.Meta(escrowTokenAccount).WRITE(),
		solana.Meta(sellerTokenAccount).WRITE(),
		solana.Meta(solana.TokenProgramID),
	}

	sig, err := submit(ctx, s.gateway, "cancel_listing", s.programID, accounts, codec.EncodeCancelListing())
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.ListingCancelledEvent{
		Listing:        listingAddr,
		Seller:         seller,
		ReturnedAmount: listing.Amount,
	})
	return sig, nil
}

// UpdateListingPrice changes the per-token price of an open listing
// without touching the escrowed tokens. Seller only.
func (s *marketplaceService) UpdateListingPrice(ctx context.Context, seller, tokenMint solana.PublicKey, newPricePerToken uint64) (solana.Signature, error) {
	if newPricePerToken == 0 {
		return solana.Signature{}, fmt.Errorf("price per token must be positive")
	}

	listing, err := s.GetListing(ctx, seller, tokenMint)
	if err != nil {
		return solana.Signature{}, err
	}
	if listing == nil {
		return solana.Signature{}, fmt.Errorf("no listing found for seller %s and mint %s", seller, tokenMint)
	}
	if !listing.IsActive {
		return solana.Signature{}, fmt.Errorf("listing is not active")
	}
	if seller != listing.Seller {
		return solana.Signature{}, fmt.Errorf("only the listing seller can update the price")
	}

	listingAddr, _, err := pda.Listing(seller, tokenMint, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(seller).WRITE().SIGNER(),
		solana.Meta(tokenMint),
		solana.Meta(listingAddr).WRITE(),
	}

	sig, err := submit(ctx, s.gateway, "update_listing_price", s.programID, accounts, codec.EncodeUpdateListingPrice(newPricePerToken))
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.ListingPriceUpdatedEvent{
		Listing:  listingAddr,
		OldPrice: listing.PricePerToken,
		NewPrice: newPricePerToken,
	})
	return sig, nil
}

// UpdateFee changes the platform fee. Authority only.
func (s *marketplaceService) UpdateFee(ctx context.Context, authority solana.PublicKey, newFeeBps uint16) (solana.Signature, error) {
	if newFeeBps > models.MaxMarketplaceFeeBps {
		return solana.Signature{}, fmt.Errorf("fee %d bps exceeds maximum %d", newFeeBps, models.MaxMarketplaceFeeBps)
	}

	marketplace, _, err := pda.Marketplace(s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(authority).WRITE().SIGNER(),
		solana.Meta(marketplace).WRITE(),
	}

	sig, err := submit(ctx, s.gateway, "update_fee", s.programID, accounts, codec.EncodeUpdateFee(newFeeBps))
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.MarketplaceFeeUpdatedEvent{NewFeeBps: newFeeBps})
	return sig, nil
}

// GetListing returns the listing for (seller, mint), or nil if none exists
// at the derived address.
func (s *marketplaceService) GetListing(ctx context.Context, seller, tokenMint solana.PublicKey) (*models.Listing, error) {
	listing, _, err := pda.Listing(seller, tokenMint, s.programID)
	if err != nil {
		return nil, err
	}

	data, err := s.gateway.AccountData(ctx, listing)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	decoded, err := codec.DecodeListing(data)
	if err != nil {
		return nil, err
	}
	decoded.Address = listing
	return decoded, nil
}

// GetActiveListings scans every listing account owned by the program and
// returns the open ones, newest first.
func (s *marketplaceService) GetActiveListings(ctx context.Context) ([]*models.Listing, error) {
	accounts, err := s.gateway.ProgramAccounts(ctx, s.programID, codec.ListingAccountSize)
	if err != nil {
		return nil, fmt.Errorf("failed to scan listings: %w", err)
	}

	listings := make([]*models.Listing, 0, len(accounts))
	for _, account := range accounts {
		listing, err := codec.DecodeListing(account.Data)
		if err != nil {
			log.WithFields(log.Fields{
				"account": account.Address,
				"error":   err,
			}).Warn("skipping undecodable listing account")
			continue
		}
		if !listing.IsOpen() {
			continue
		}
		listing.Address = account.Address
		listings = append(listings, listing)
	}

	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt > listings[j].CreatedAt
	})
	return listings, nil
}

// GetMarketplace returns the stats singleton, or nil before init.
func (s *marketplaceService) GetMarketplace(ctx context.Context) (*models.Marketplace, error) {
	marketplace, _, err := pda.Marketplace(s.programID)
	if err != nil {
		return nil, err
	}

	data, err := s.gateway.AccountData(ctx, marketplace)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get marketplace: %w", err)
	}
	return codec.DecodeMarketplace(data)
}
