package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	log "github.com/sirupsen/logrus"

	"propvest/service"
)

const (
	confirmPollInterval = 500 * time.Millisecond
	confirmTimeout      = 60 * time.Second
)

// SolanaGateway implements service.LedgerGateway against a Solana RPC node.
// It signs with a single fee-payer wallet and blocks on submission until
// the transaction is confirmed or the poll times out.
type SolanaGateway struct {
	client *rpc.Client
	wallet solana.PrivateKey
}

// NewSolanaGateway creates a gateway for the given RPC endpoint and
// fee-payer wallet.
func NewSolanaGateway(endpoint string, wallet solana.PrivateKey) *SolanaGateway {
	return &SolanaGateway{
		client: rpc.New(endpoint),
		wallet: wallet,
	}
}

// SubmitInstruction wraps ix in a single-instruction transaction signed by
// the gateway wallet and waits for confirmation.
func (g *SolanaGateway) SubmitInstruction(ctx context.Context, ix solana.Instruction) (solana.Signature, error) {
	recent, err := g.client.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to get latest blockhash: %w", err)
	}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{ix},
		recent.Value.Blockhash,
		solana.TransactionPayer(g.wallet.PublicKey()),
	)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to build transaction: %w", err)
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(g.wallet.PublicKey()) {
			return &g.wallet
		}
		return nil
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to sign transaction: %w", err)
	}

	sig, err := g.client.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: rpc.CommitmentConfirmed,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("failed to send transaction: %w", err)
	}

	if err := g.waitForConfirmation(ctx, sig); err != nil {
		return solana.Signature{}, err
	}

	log.WithField("signature", sig).Debug("transaction confirmed")
	return sig, nil
}

func (g *SolanaGateway) waitForConfirmation(ctx context.Context, sig solana.Signature) error {
	deadline := time.NewTimer(confirmTimeout)
	defer deadline.Stop()
	ticker := time.NewTicker(confirmPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return fmt.Errorf("transaction %s not confirmed within %s", sig, confirmTimeout)
		case <-ticker.C:
			statuses, err := g.client.GetSignatureStatuses(ctx, false, sig)
			if err != nil {
				return fmt.Errorf("failed to get signature status: %w", err)
			}
			if len(statuses.Value) == 0 || statuses.Value[0] == nil {
				continue
			}
			status := statuses.Value[0]
			if status.Err != nil {
				return fmt.Errorf("transaction %s failed: %v", sig, status.Err)
			}
			if status.ConfirmationStatus == rpc.ConfirmationStatusConfirmed ||
				status.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				return nil
			}
		}
	}
}

// AccountData returns the raw data of the account at address, or
// service.ErrAccountNotFound when no account exists there.
func (g *SolanaGateway) AccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	result, err := g.client.GetAccountInfo(ctx, address)
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, service.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}
	if result.Value == nil {
		return nil, service.ErrAccountNotFound
	}
	return result.Value.Data.GetBinary(), nil
}

// ProgramAccounts returns every account owned by program whose data is
// exactly dataSize bytes long.
func (g *SolanaGateway) ProgramAccounts(ctx context.Context, program solana.PublicKey, dataSize uint64) ([]service.ProgramAccount, error) {
	result, err := g.client.GetProgramAccountsWithOpts(ctx, program, &rpc.GetProgramAccountsOpts{
		Filters: []rpc.RPCFilter{
			{DataSize: dataSize},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get program accounts: %w", err)
	}

	accounts := make([]service.ProgramAccount, 0, len(result))
	for _, entry := range result {
		accounts = append(accounts, service.ProgramAccount{
			Address: entry.Pubkey,
			Data:    entry.Account.Data.GetBinary(),
		})
	}
	return accounts, nil
}

// TokenBalance returns the wallet's balance of mint in base units. A
// wallet with no token account for mint has balance zero.
func (g *SolanaGateway) TokenBalance(ctx context.Context, wallet, mint solana.PublicKey) (uint64, error) {
	tokenAccount, _, err := solana.FindAssociatedTokenAddress(wallet, mint)
	if err != nil {
		return 0, fmt.Errorf("failed to derive token account: %w", err)
	}

	result, err := g.client.GetTokenAccountBalance(ctx, tokenAccount, rpc.CommitmentConfirmed)
	if errors.Is(err, rpc.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get token balance: %w", err)
	}

	balance, err := strconv.ParseUint(result.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse token balance %q: %w", result.Value.Amount, err)
	}
	return balance, nil
}

// TokenSupply returns the total circulating supply of mint.
func (g *SolanaGateway) TokenSupply(ctx context.Context, mint solana.PublicKey) (uint64, error) {
	result, err := g.client.GetTokenSupply(ctx, mint, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, fmt.Errorf("failed to get token supply: %w", err)
	}

	supply, err := strconv.ParseUint(result.Value.Amount, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse token supply %q: %w", result.Value.Amount, err)
	}
	return supply, nil
}

// Now returns the wall clock.
func (g *SolanaGateway) Now() time.Time {
	return time.Now()
}
