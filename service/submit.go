package service

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// submit sends one encoded instruction through the gateway. A rejection is
// wrapped with the instruction name; the underlying ledger error passes
// through verbatim and is never retried here.
func submit(ctx context.Context, gw LedgerGateway, name string, programID solana.PublicKey, accounts solana.AccountMetaSlice, data []byte) (solana.Signature, error) {
	sig, err := gw.SubmitInstruction(ctx, solana.NewInstruction(programID, accounts, data))
	if err != nil {
		return solana.Signature{}, &SubmissionError{Instruction: name, Err: err}
	}
	return sig, nil
}
