package service

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"propvest/codec"
	"propvest/events"
	"propvest/models"
	"propvest/pda"
)

var (
	testDividendProgram = solana.MustPublicKeyFromBase58("TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA")
	testSignature       = solana.Signature{0x01}
)

type dividendFixture struct {
	gateway   *MockLedgerGateway
	publisher *MockEventPublisher
	service   DividendService

	authority    solana.PublicKey
	user         solana.PublicKey
	mint         solana.PublicKey
	pool         solana.PublicKey
	vault        solana.PublicKey
	distribution solana.PublicKey
	claimRecord  solana.PublicKey
}

func newDividendFixture(t *testing.T, epoch uint64) *dividendFixture {
	t.Helper()

	f := &dividendFixture{
		gateway:   new(MockLedgerGateway),
		publisher: new(MockEventPublisher),
		authority: solana.NewWallet().PublicKey(),
		user:      solana.NewWallet().PublicKey(),
		mint:      solana.NewWallet().PublicKey(),
	}
	f.service = NewDividendService(f.gateway, f.publisher, testDividendProgram)

	var err error
	f.pool, _, err = pda.DividendPool(f.mint, testDividendProgram)
	require.NoError(t, err)
	f.vault, _, err = pda.DividendVault(f.pool, testDividendProgram)
	require.NoError(t, err)
	f.distribution, _, err = pda.DistributionRecord(f.pool, epoch, testDividendProgram)
	require.NoError(t, err)
	f.claimRecord, _, err = pda.ClaimRecord(f.distribution, f.user, testDividendProgram)
	require.NoError(t, err)
	return f
}

func (f *dividendFixture) poolBlob(epoch, deposited uint64) []byte {
	return codec.EncodeDividendPool(&models.DividendPool{
		Authority:                  f.authority,
		PropertyMint:               f.mint,
		DividendVault:              f.vault,
		PropertyID:                 "PROP-1",
		CurrentEpoch:               epoch,
		DistributionFrequencyDays:  30,
		TotalDepositedCurrentEpoch: deposited,
	})
}

func TestStartDistribution(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects epoch mismatch before submitting", func(t *testing.T) {
		f := newDividendFixture(t, 2)
		f.gateway.On("AccountData", ctx, f.pool).Return(f.poolBlob(3, 1000), nil)

		_, err := f.service.StartDistribution(ctx, f.authority, f.mint, 2)

		assert.ErrorIs(t, err, ErrEpochMismatch)
		f.gateway.AssertNotCalled(t, "SubmitInstruction", mock.Anything, mock.Anything)
	})

	t.Run("rejects empty epoch", func(t *testing.T) {
		f := newDividendFixture(t, 1)
		f.gateway.On("AccountData", ctx, f.pool).Return(f.poolBlob(1, 0), nil)

		_, err := f.service.StartDistribution(ctx, f.authority, f.mint, 1)

		assert.Error(t, err)
		f.gateway.AssertNotCalled(t, "SubmitInstruction", mock.Anything, mock.Anything)
	})

	t.Run("rejects zero supply", func(t *testing.T) {
		f := newDividendFixture(t, 1)
		f.gateway.On("AccountData", ctx, f.pool).Return(f.poolBlob(1, 1000), nil)
		f.gateway.On("TokenSupply", ctx, f.mint).Return(uint64(0), nil)

		_, err := f.service.StartDistribution(ctx, f.authority, f.mint, 1)

		assert.Error(t, err)
		f.gateway.AssertNotCalled(t, "SubmitInstruction", mock.Anything, mock.Anything)
	})

	t.Run("submits and publishes floor per-token amount", func(t *testing.T) {
		f := newDividendFixture(t, 1)
		f.gateway.On("AccountData", ctx, f.pool).Return(f.poolBlob(1, 1000), nil)
		f.gateway.On("TokenSupply", ctx, f.mint).Return(uint64(3), nil)
		f.gateway.On("SubmitInstruction", ctx, mock.Anything).Return(testSignature, nil)
		f.publisher.On("Publish", mock.Anything).Return()

		sig, err := f.service.StartDistribution(ctx, f.authority, f.mint, 1)

		require.NoError(t, err)
		assert.Equal(t, testSignature, sig)
		f.publisher.AssertCalled(t, "Publish", events.DistributionStartedEvent{
			Pool:           f.pool,
			Distribution:   f.distribution,
			Epoch:          1,
			TotalAmount:    1000,
			AmountPerToken: 333,
		})
	})

	t.Run("missing pool", func(t *testing.T) {
		f := newDividendFixture(t, 1)
		f.gateway.On("AccountData", ctx, f.pool).Return(nil, ErrAccountNotFound)

		_, err := f.service.StartDistribution(ctx, f.authority, f.mint, 1)

		assert.Error(t, err)
	})
}

func TestClaimDividend(t *testing.T) {
	ctx := context.Background()

	t.Run("second claim stops before submission", func(t *testing.T) {
		f := newDividendFixture(t, 1)
		claimed := codec.EncodeClaimRecord(&models.ClaimRecord{
			User:         f.user,
			Distribution: f.distribution,
			Epoch:        1,
			Claimed:      true,
		})
		f.gateway.On("AccountData", ctx, f.claimRecord).Return(claimed, nil)

		_, err := f.service.ClaimDividend(ctx, f.user, f.mint, 1)

		assert.ErrorIs(t, err, ErrAlreadyClaimed)
		f.gateway.AssertNotCalled(t, "SubmitInstruction", mock.Anything, mock.Anything)
	})

	t.Run("first claim submits", func(t *testing.T) {
		f := newDividendFixture(t, 1)
		f.gateway.On("AccountData", ctx, f.claimRecord).Return(nil, ErrAccountNotFound)
		f.gateway.On("SubmitInstruction", ctx, mock.Anything).Return(testSignature, nil)
		distribution := codec.EncodeDistributionRecord(&models.DistributionRecord{
			Pool:           f.pool,
			Epoch:          1,
			TotalAmount:    999,
			AmountPerToken: 333,
		})
		f.gateway.On("AccountData", ctx, f.distribution).Return(distribution, nil)
		f.gateway.On("TokenBalance", ctx, f.user, f.mint).Return(uint64(3), nil)
		f.publisher.On("Publish", mock.Anything).Return()

		sig, err := f.service.ClaimDividend(ctx, f.user, f.mint, 1)

		require.NoError(t, err)
		assert.Equal(t, testSignature, sig)
		f.publisher.AssertCalled(t, "Publish", events.DividendClaimedEvent{
			Pool:   f.pool,
			User:   f.user,
			Epoch:  1,
			Amount: 999,
		})
	})

	t.Run("ledger rejection wraps the instruction name", func(t *testing.T) {
		f := newDividendFixture(t, 1)
		f.gateway.On("AccountData", ctx, f.claimRecord).Return(nil, ErrAccountNotFound)
		f.gateway.On("SubmitInstruction", ctx, mock.Anything).Return(nil, assert.AnError)

		_, err := f.service.ClaimDividend(ctx, f.user, f.mint, 1)

		var submission *SubmissionError
		require.ErrorAs(t, err, &submission)
		assert.Equal(t, "claim_dividend", submission.Instruction)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestGetClaimableAmount(t *testing.T) {
	ctx := context.Background()

	t.Run("balance times per-token amount", func(t *testing.T) {
		f := newDividendFixture(t, 1)
		distribution := codec.EncodeDistributionRecord(&models.DistributionRecord{
			Pool:           f.pool,
			Epoch:          1,
			TotalAmount:    1000,
			AmountPerToken: 333,
		})
		f.gateway.On("AccountData", ctx, f.distribution).Return(distribution, nil)
		f.gateway.On("TokenBalance", ctx, f.user, f.mint).Return(uint64(3), nil)

		amount, err := f.service.GetClaimableAmount(ctx, f.user, f.mint, 1)

		require.NoError(t, err)
		assert.Equal(t, uint64(999), amount)
	})

	t.Run("no distribution yet means zero", func(t *testing.T) {
		f := newDividendFixture(t, 1)
		f.gateway.On("AccountData", ctx, f.distribution).Return(nil, ErrAccountNotFound)

		amount, err := f.service.GetClaimableAmount(ctx, f.user, f.mint, 1)

		require.NoError(t, err)
		assert.Equal(t, uint64(0), amount)
	})
}

func TestHasClaimedDividend(t *testing.T) {
	ctx := context.Background()
	f := newDividendFixture(t, 1)
	f.gateway.On("AccountData", ctx, f.claimRecord).Return(nil, ErrAccountNotFound)

	claimed, err := f.service.HasClaimedDividend(ctx, f.user, f.mint, 1)

	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestGetPoolAbsent(t *testing.T) {
	ctx := context.Background()
	f := newDividendFixture(t, 1)
	f.gateway.On("AccountData", ctx, f.pool).Return(nil, ErrAccountNotFound)

	pool, err := f.service.GetPool(ctx, f.mint)

	require.NoError(t, err)
	assert.Nil(t, pool)
}

func TestInitializePoolValidation(t *testing.T) {
	ctx := context.Background()
	f := newDividendFixture(t, 0)

	_, err := f.service.InitializePool(ctx, f.authority, f.mint, "PROP-1", 0)

	assert.Error(t, err)
	f.gateway.AssertNotCalled(t, "SubmitInstruction", mock.Anything, mock.Anything)
}

func TestDepositDividendValidation(t *testing.T) {
	ctx := context.Background()
	f := newDividendFixture(t, 0)

	_, err := f.service.DepositDividend(ctx, f.authority, f.mint, 0)

	assert.Error(t, err)
	f.gateway.AssertNotCalled(t, "SubmitInstruction", mock.Anything, mock.Anything)
}
