package service

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/mock"

	"propvest/events"
)

// MockLedgerGateway is a mock implementation of LedgerGateway for testing
type MockLedgerGateway struct {
	mock.Mock
}

func (m *MockLedgerGateway) SubmitInstruction(ctx context.Context, ix solana.Instruction) (solana.Signature, error) {
	args := m.Called(ctx, ix)
	if args.Get(0) == nil {
		return solana.Signature{}, args.Error(1)
	}
	return args.Get(0).(solana.Signature), args.Error(1)
}

func (m *MockLedgerGateway) AccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockLedgerGateway) ProgramAccounts(ctx context.Context, program solana.PublicKey, dataSize uint64) ([]ProgramAccount, error) {
	args := m.Called(ctx, program, dataSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ProgramAccount), args.Error(1)
}

func (m *MockLedgerGateway) TokenBalance(ctx context.Context, wallet, mint solana.PublicKey) (uint64, error) {
	args := m.Called(ctx, wallet, mint)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockLedgerGateway) TokenSupply(ctx context.Context, mint solana.PublicKey) (uint64, error) {
	args := m.Called(ctx, mint)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *MockLedgerGateway) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

// MockEventPublisher is a mock implementation of EventPublisher for testing
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}
