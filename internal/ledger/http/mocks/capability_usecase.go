// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

// MockCapabilityUseCase is a mock implementation of CapabilityUseCase for testing.
type MockCapabilityUseCase struct {
	mock.Mock
}

// Mint mocks the Mint method of CapabilityUseCase.
func (m *MockCapabilityUseCase) Mint(
	ctx context.Context,
	caller ledgerDomain.Address,
	label string,
) (*ledgerDomain.MintOutput, error) {
	args := m.Called(ctx, caller, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerDomain.MintOutput), args.Error(1)
}

// DeriveSigner mocks the DeriveSigner method of CapabilityUseCase.
func (m *MockCapabilityUseCase) DeriveSigner(
	ctx context.Context,
	input *ledgerDomain.DeriveSignerInput,
) (*ledgerDomain.DeriveSignerOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerDomain.DeriveSignerOutput), args.Error(1)
}

// ListStored mocks the ListStored method of CapabilityUseCase.
func (m *MockCapabilityUseCase) ListStored(
	ctx context.Context,
	caller ledgerDomain.Address,
	offset, limit int,
) ([]*ledgerDomain.StoredCapability, error) {
	args := m.Called(ctx, caller, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledgerDomain.StoredCapability), args.Error(1)
}
