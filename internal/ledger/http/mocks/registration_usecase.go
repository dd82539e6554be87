package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

// MockRegistrationUseCase is a mock implementation of RegistrationUseCase for testing.
type MockRegistrationUseCase struct {
	mock.Mock
}

// Register mocks the Register method of RegistrationUseCase.
func (m *MockRegistrationUseCase) Register(
	ctx context.Context,
) (*ledgerDomain.RegisterObjectOutput, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerDomain.RegisterObjectOutput), args.Error(1)
}

// Deregister mocks the Deregister method of RegistrationUseCase.
func (m *MockRegistrationUseCase) Deregister(
	ctx context.Context,
	address ledgerDomain.Address,
) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}
