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

type dividendService struct {
	gateway        LedgerGateway
	eventPublisher EventPublisher
	programID      solana.PublicKey
}

// NewDividendService creates a new dividend service bound to one deployed
// dividend program.
func NewDividendService(gateway LedgerGateway, eventPublisher EventPublisher, programID solana.PublicKey) DividendService {
	return &dividendService{
		gateway:        gateway,
		eventPublisher: eventPublisher,
		programID:      programID,
	}
}

// InitializePool creates the dividend pool and vault for a property mint.
// The pool address is fully determined by the mint; a second pool for the
// same mint is rejected remotely.
func (s *dividendService) InitializePool(ctx context.Context, authority, propertyMint solana.PublicKey, propertyID string, frequencyDays uint64) (solana.Signature, error) {
	if frequencyDays == 0 {
		return solana.Signature{}, fmt.Errorf("distribution frequency must be positive")
	}

	pool, _, err := pda.DividendPool(propertyMint, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	vault, _, err := pda.DividendVault(pool, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	data, err := codec.EncodeInitializePool(propertyID, frequencyDays)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(authority).WRITE().SIGNER(),
		solana.Meta(propertyMint),
		solana.Meta(pool).WRITE(),
		solana.Meta(vault).WRITE(),
		solana.Meta(solana.SystemProgramID),
		solana.Meta(solana.TokenProgramID),
		solana.Meta(solana.SysVarRentPubkey),
	}

	sig, err := submit(ctx, s.gateway, "initialize_pool", s.programID, accounts, data)
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.PoolInitializedEvent{
		Pool:         pool,
		PropertyMint: propertyMint,
		Authority:    authority,
		PropertyID:   propertyID,
	})
	log.WithFields(log.Fields{
		"pool":       pool,
		"propertyId": propertyID,
		"signature":  sig,
	}).Info("dividend pool initialized")
	return sig, nil
}

// DepositDividend adds a positive amount to the pool's still-open epoch.
// The pool's deposited total is mutated remotely, never locally.
func (s *dividendService) DepositDividend(ctx context.Context, authority, propertyMint solana.PublicKey, amount uint64) (solana.Signature, error) {
	if amount == 0 {
		return solana.Signature{}, fmt.Errorf("deposit amount must be positive")
	}

	pool, _, err := pda.DividendPool(propertyMint, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	vault, _, err := pda.DividendVault(pool, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(authority).WRITE().SIGNER(),
		solana.Meta(pool).WRITE(),
		solana.Meta(vault).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}

	sig, err := submit(ctx, s.gateway, "deposit_dividend", s.programID, accounts, codec.EncodeDepositDividend(amount))
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.DividendDepositedEvent{
		Pool:      pool,
		Depositor: authority,
		Amount:    amount,
	})
	return sig, nil
}

// StartDistribution snapshots the token supply and opens the distribution
// record for epoch, which must equal the pool's current epoch counter. The
// per-token amount is total ÷ supply with floor division; the remainder is
// a bounded leak that stays in the vault.
func (s *dividendService) StartDistribution(ctx context.Context, authority, propertyMint solana.PublicKey, epoch uint64) (solana.Signature, error) {
	pool, err := s.GetPool(ctx, propertyMint)
	if err != nil {
		return solana.Signature{}, err
	}
	if pool == nil {
		return solana.Signature{}, fmt.Errorf("no dividend pool exists for mint %s", propertyMint)
	}
	if pool.CurrentEpoch != epoch {
		return solana.Signature{}, fmt.Errorf("pool is at epoch %d, caller supplied %d: %w", pool.CurrentEpoch, epoch, ErrEpochMismatch)
	}
	if pool.TotalDepositedCurrentEpoch == 0 {
		return solana.Signature{}, fmt.Errorf("no dividends deposited this epoch")
	}

	supply, err := s.gateway.TokenSupply(ctx, propertyMint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to get token supply: %w", err)
	}
	if supply == 0 {
		return solana.Signature{}, fmt.Errorf("no tokens in circulation")
	}

	poolAddr, _, err := pda.DividendPool(propertyMint, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	distribution, _, err := pda.DistributionRecord(poolAddr, epoch, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(authority).WRITE().SIGNER(),
		solana.Meta(poolAddr).WRITE(),
		solana.Meta(propertyMint),
		solana.Meta(distribution).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}

	sig, err := submit(ctx, s.gateway, "start_distribution", s.programID, accounts, codec.EncodeStartDistribution())
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.DistributionStartedEvent{
		Pool:           poolAddr,
		Distribution:   distribution,
		Epoch:          epoch,
		TotalAmount:    pool.TotalDepositedCurrentEpoch,
		AmountPerToken: models.PerTokenAmount(pool.TotalDepositedCurrentEpoch, supply),
	})
	log.WithFields(log.Fields{
		"pool":      poolAddr,
		"epoch":     epoch,
		"amount":    pool.TotalDepositedCurrentEpoch,
		"signature": sig,
	}).Info("distribution started")
	return sig, nil
}

// ClaimDividend claims the user's share of an epoch's distribution. The
// existence pre-check saves a doomed round trip when the claim record is
// already there; the remote ledger remains the arbiter of the race between
// the check and the submission.
func (s *dividendService) ClaimDividend(ctx context.Context, user, propertyMint solana.PublicKey, epoch uint64) (solana.Signature, error) {
	claimed, err := s.HasClaimedDividend(ctx, user, propertyMint, epoch)
	if err != nil {
		return solana.Signature{}, err
	}
	if claimed {
		return solana.Signature{}, ErrAlreadyClaimed
	}

	pool, _, err := pda.DividendPool(propertyMint, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	distribution, _, err := pda.DistributionRecord(pool, epoch, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	vault, _, err := pda.DividendVault(pool, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	claimRecord, _, err := pda.ClaimRecord(distribution, user, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}
	userTokenAccount, _, err := solana.FindAssociatedTokenAddress(user, propertyMint)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("derive user token account: %w", err)
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(user).WRITE().SIGNER(),
		solana.Meta(pool),
		solana.Meta(distribution),
		solana.Meta(vault).WRITE(),
		solana.Meta(userTokenAccount),
		solana.Meta(claimRecord).WRITE(),
		solana.Meta(solana.SystemProgramID),
	}

	sig, err := submit(ctx, s.gateway, "claim_dividend", s.programID, accounts, codec.EncodeClaimDividend(epoch))
	if err != nil {
		return solana.Signature{}, err
	}

	amount, err := s.GetClaimableAmount(ctx, user, propertyMint, epoch)
	if err != nil {
		// The claim itself succeeded; the event amount is best effort.
		amount = 0
	}
	s.eventPublisher.Publish(events.DividendClaimedEvent{
		Pool:   pool,
		User:   user,
		Epoch:  epoch,
		Amount: amount,
	})
	return sig, nil
}

// GetClaimableAmount computes the user's claim against an epoch as
// holder balance × per-token amount. The dividend unit equals the
// currency's base unit, so no scaling divisor applies. A missing
// distribution means nothing is claimable yet.
func (s *dividendService) GetClaimableAmount(ctx context.Context, user, propertyMint solana.PublicKey, epoch uint64) (uint64, error) {
	distribution, err := s.GetDistribution(ctx, propertyMint, epoch)
	if err != nil {
		return 0, err
	}
	if distribution == nil {
		return 0, nil
	}

	balance, err := s.gateway.TokenBalance(ctx, user, propertyMint)
	if err != nil {
		return 0, fmt.Errorf("failed to get token balance: %w", err)
	}
	return distribution.ClaimableBy(balance)
}

// HasClaimedDividend reports whether a claim record exists for
// (distribution, user). Advisory only.
func (s *dividendService) HasClaimedDividend(ctx context.Context, user, propertyMint solana.PublicKey, epoch uint64) (bool, error) {
	pool, _, err := pda.DividendPool(propertyMint, s.programID)
	if err != nil {
		return false, err
	}
	distribution, _, err := pda.DistributionRecord(pool, epoch, s.programID)
	if err != nil {
		return false, err
	}
	claimAddr, _, err := pda.ClaimRecord(distribution, user, s.programID)
	if err != nil {
		return false, err
	}

	data, err := s.gateway.AccountData(ctx, claimAddr)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get claim record: %w", err)
	}

	record, err := codec.DecodeClaimRecord(data)
	if err != nil {
		return false, err
	}
	return record.Claimed, nil
}

// UpdateAuthority transfers pool ownership to a new authority.
func (s *dividendService) UpdateAuthority(ctx context.Context, authority, propertyMint, newAuthority solana.PublicKey) (solana.Signature, error) {
	pool, _, err := pda.DividendPool(propertyMint, s.programID)
	if err != nil {
		return solana.Signature{}, err
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(authority).WRITE().SIGNER(),
		solana.Meta(pool).WRITE(),
	}

	sig, err := submit(ctx, s.gateway, "update_authority", s.programID, accounts, codec.EncodeUpdateAuthority(newAuthority))
	if err != nil {
		return solana.Signature{}, err
	}

	s.eventPublisher.Publish(events.AuthorityUpdatedEvent{
		Pool:         pool,
		NewAuthority: newAuthority,
	})
	return sig, nil
}

// GetPool returns the dividend pool for a mint, or nil if none exists yet.
func (s *dividendService) GetPool(ctx context.Context, propertyMint solana.PublicKey) (*models.DividendPool, error) {
	pool, _, err := pda.DividendPool(propertyMint, s.programID)
	if err != nil {
		return nil, err
	}

	data, err := s.gateway.AccountData(ctx, pool)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pool: %w", err)
	}
	return codec.DecodeDividendPool(data)
}

// GetDistribution returns the record for an epoch, or nil if none exists.
func (s *dividendService) GetDistribution(ctx context.Context, propertyMint solana.PublicKey, epoch uint64) (*models.DistributionRecord, error) {
	pool, _, err := pda.DividendPool(propertyMint, s.programID)
	if err != nil {
		return nil, err
	}
	distribution, _, err := pda.DistributionRecord(pool, epoch, s.programID)
	if err != nil {
		return nil, err
	}

	data, err := s.gateway.AccountData(ctx, distribution)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get distribution record: %w", err)
	}
	return codec.DecodeDistributionRecord(data)
}
