package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	identityDomain "github.com/allisson/delegate/internal/identity/domain"
	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

// mockCredentialRepository is a mock implementation of CredentialRepository for testing.
type mockCredentialRepository struct {
	mock.Mock
}

func (m *mockCredentialRepository) Create(
	ctx context.Context,
	credential *identityDomain.Credential,
) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

func (m *mockCredentialRepository) GetByAddress(
	ctx context.Context,
	address ledgerDomain.Address,
) (*identityDomain.Credential, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identityDomain.Credential), args.Error(1)
}

func (m *mockCredentialRepository) Deactivate(
	ctx context.Context,
	address ledgerDomain.Address,
) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

// mockSecretService is a mock implementation of SecretService for testing.
type mockSecretService struct {
	mock.Mock
}

func (m *mockSecretService) GenerateSecret() (plainSecret string, hashedSecret string, error error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockSecretService) HashSecret(plainSecret string) (hashedSecret string, error error) {
	args := m.Called(plainSecret)
	return args.String(0), args.Error(1)
}

func (m *mockSecretService) CompareSecret(plainSecret string, hashedSecret string) bool {
	args := m.Called(plainSecret, hashedSecret)
	return args.Bool(0)
}

func testAddress(t *testing.T) ledgerDomain.Address {
	t.Helper()

	addr, err := ledgerDomain.GenerateAddress()
	require.NoError(t, err)
	return addr
}

func TestCredentialUseCase_Issue(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_IssueCredential", func(t *testing.T) {
		repo := &mockCredentialRepository{}
		secrets := &mockSecretService{}
		addr := testAddress(t)

		secrets.On("GenerateSecret").Return("plain-secret", "hashed-secret", nil)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Credential")).
			Run(func(args mock.Arguments) {
				credential := args.Get(1).(*identityDomain.Credential)
				assert.Equal(t, addr, credential.Address)
				assert.Equal(t, "hashed-secret", credential.SecretHash)
				assert.True(t, credential.IsActive)
			}).
			Return(nil)

		uc := NewCredentialUseCase(repo, secrets)

		secret, err := uc.Issue(ctx, addr)
		require.NoError(t, err)
		assert.Equal(t, "plain-secret", secret)

		repo.AssertExpectations(t)
		secrets.AssertExpectations(t)
	})

	t.Run("Failure_GenerateSecretFails", func(t *testing.T) {
		repo := &mockCredentialRepository{}
		secrets := &mockSecretService{}

		secrets.On("GenerateSecret").Return("", "", errors.New("entropy exhausted"))

		uc := NewCredentialUseCase(repo, secrets)

		_, err := uc.Issue(ctx, testAddress(t))
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failure_InvalidAddress", func(t *testing.T) {
		uc := NewCredentialUseCase(&mockCredentialRepository{}, &mockSecretService{})

		_, err := uc.Issue(ctx, ledgerDomain.Address("bogus"))
		assert.ErrorIs(t, err, ledgerDomain.ErrInvalidAddress)
	})
}

func TestCredentialUseCase_Authenticate(t *testing.T) {
	ctx := context.Background()

	newCredential := func(addr ledgerDomain.Address, active bool) *identityDomain.Credential {
		return &identityDomain.Credential{
			ID:         uuid.Must(uuid.NewV7()),
			Address:    addr,
			SecretHash: "hashed-secret",
			IsActive:   active,
			CreatedAt:  time.Now().UTC(),
		}
	}

	t.Run("Success_ValidSecret", func(t *testing.T) {
		repo := &mockCredentialRepository{}
		secrets := &mockSecretService{}
		addr := testAddress(t)

		repo.On("GetByAddress", ctx, addr).Return(newCredential(addr, true), nil)
		secrets.On("CompareSecret", "plain-secret", "hashed-secret").Return(true)

		uc := NewCredentialUseCase(repo, secrets)

		caller, err := uc.Authenticate(ctx, addr, "plain-secret")
		require.NoError(t, err)
		assert.Equal(t, addr, caller)
	})

	t.Run("Failure_WrongSecret", func(t *testing.T) {
		repo := &mockCredentialRepository{}
		secrets := &mockSecretService{}
		addr := testAddress(t)

		repo.On("GetByAddress", ctx, addr).Return(newCredential(addr, true), nil)
		secrets.On("CompareSecret", "wrong-secret", "hashed-secret").Return(false)

		uc := NewCredentialUseCase(repo, secrets)

		_, err := uc.Authenticate(ctx, addr, "wrong-secret")
		assert.ErrorIs(t, err, identityDomain.ErrInvalidCredential)
	})

	t.Run("Failure_UnknownAddressIndistinguishable", func(t *testing.T) {
		repo := &mockCredentialRepository{}
		secrets := &mockSecretService{}
		addr := testAddress(t)

		repo.On("GetByAddress", ctx, addr).
			Return(nil, identityDomain.ErrCredentialNotFound)

		uc := NewCredentialUseCase(repo, secrets)

		_, err := uc.Authenticate(ctx, addr, "any-secret")
		assert.ErrorIs(t, err, identityDomain.ErrInvalidCredential)
		secrets.AssertNotCalled(t, "CompareSecret", mock.Anything, mock.Anything)
	})

	t.Run("Failure_RevokedCredential", func(t *testing.T) {
		repo := &mockCredentialRepository{}
		secrets := &mockSecretService{}
		addr := testAddress(t)

		repo.On("GetByAddress", ctx, addr).Return(newCredential(addr, false), nil)

		uc := NewCredentialUseCase(repo, secrets)

		_, err := uc.Authenticate(ctx, addr, "plain-secret")
		assert.ErrorIs(t, err, identityDomain.ErrCredentialRevoked)
	})
}

func TestCredentialUseCase_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RevokeCredential", func(t *testing.T) {
		repo := &mockCredentialRepository{}
		addr := testAddress(t)

		repo.On("Deactivate", ctx, addr).Return(nil)

		uc := NewCredentialUseCase(repo, &mockSecretService{})

		assert.NoError(t, uc.Revoke(ctx, addr))
		repo.AssertExpectations(t)
	})

	t.Run("Failure_UnknownAddress", func(t *testing.T) {
		repo := &mockCredentialRepository{}
		addr := testAddress(t)

		repo.On("Deactivate", ctx, addr).Return(identityDomain.ErrCredentialNotFound)

		uc := NewCredentialUseCase(repo, &mockSecretService{})

		assert.ErrorIs(t, uc.Revoke(ctx, addr), identityDomain.ErrCredentialNotFound)
	})
}
