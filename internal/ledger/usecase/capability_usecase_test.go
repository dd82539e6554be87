package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
	ledgerService "github.com/allisson/delegate/internal/ledger/service"
)

// mockDelegationRecordRepository is a mock implementation of DelegationRecordRepository for testing.
type mockDelegationRecordRepository struct {
	mock.Mock
}

func (m *mockDelegationRecordRepository) Create(
	ctx context.Context,
	record *ledgerDomain.DelegationRecord,
) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *mockDelegationRecordRepository) Exists(
	ctx context.Context,
	address ledgerDomain.Address,
) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

func (m *mockDelegationRecordRepository) Get(
	ctx context.Context,
	address ledgerDomain.Address,
) (*ledgerDomain.DelegationRecord, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerDomain.DelegationRecord), args.Error(1)
}

func (m *mockDelegationRecordRepository) Delete(
	ctx context.Context,
	address ledgerDomain.Address,
) error {
	args := m.Called(ctx, address)
	return args.Error(0)
}

// mockStoredCapabilityRepository is a mock implementation of StoredCapabilityRepository for testing.
type mockStoredCapabilityRepository struct {
	mock.Mock
}

func (m *mockStoredCapabilityRepository) Create(
	ctx context.Context,
	stored *ledgerDomain.StoredCapability,
) error {
	args := m.Called(ctx, stored)
	return args.Error(0)
}

func (m *mockStoredCapabilityRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*ledgerDomain.StoredCapability, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledgerDomain.StoredCapability), args.Error(1)
}

func (m *mockStoredCapabilityRepository) ListByAddress(
	ctx context.Context,
	address ledgerDomain.Address,
	offset, limit int,
) ([]*ledgerDomain.StoredCapability, error) {
	args := m.Called(ctx, address, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*ledgerDomain.StoredCapability), args.Error(1)
}

type capabilityFixture struct {
	recordRepo *mockDelegationRecordRepository
	storedRepo *mockStoredCapabilityRepository
	codec      ledgerService.CapabilityCodec
	authority  ledgerService.AuthorityService
	keeper     ledgerService.ReferenceKeeper
	useCase    CapabilityUseCase
}

func newCapabilityFixture(t *testing.T) *capabilityFixture {
	t.Helper()

	codec, err := ledgerService.NewCapabilityCodec([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	keeper, err := ledgerService.OpenReferenceKeeper(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = keeper.Close()
	})

	recordRepo := &mockDelegationRecordRepository{}
	storedRepo := &mockStoredCapabilityRepository{}
	authority := ledgerService.NewAuthorityService()

	return &capabilityFixture{
		recordRepo: recordRepo,
		storedRepo: storedRepo,
		codec:      codec,
		authority:  authority,
		keeper:     keeper,
		useCase:    NewCapabilityUseCase(recordRepo, storedRepo, codec, authority, keeper),
	}
}

// registeredRecord builds a delegation record whose extend reference is sealed
// the way the registration flow would have sealed it.
func (f *capabilityFixture) registeredRecord(t *testing.T) *ledgerDomain.DelegationRecord {
	t.Helper()

	addr, err := ledgerDomain.GenerateAddress()
	require.NoError(t, err)

	reference, err := f.authority.GenerateExtendReference()
	require.NoError(t, err)

	sealed, err := f.keeper.Seal(context.Background(), reference)
	require.NoError(t, err)

	return &ledgerDomain.DelegationRecord{
		Address:         addr,
		ExtendReference: sealed,
		CreatedAt:       time.Now().UTC(),
	}
}

func TestCapabilityUseCase_Mint(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_MintForRegisteredAddress", func(t *testing.T) {
		f := newCapabilityFixture(t)
		record := f.registeredRecord(t)

		f.recordRepo.On("Exists", ctx, record.Address).Return(true, nil)
		f.storedRepo.On("Create", ctx, mock.AnythingOfType("*domain.StoredCapability")).Return(nil)

		output, err := f.useCase.Mint(ctx, record.Address, "treasury")
		require.NoError(t, err)
		require.NotEmpty(t, output.Token)
		assert.NotEqual(t, uuid.Nil, output.StoredID)

		// The minted token opens to the caller's own address.
		capability, err := f.codec.Open(output.Token)
		require.NoError(t, err)
		assert.Equal(t, record.Address, capability.BoundAddress())

		f.recordRepo.AssertExpectations(t)
		f.storedRepo.AssertExpectations(t)
	})

	t.Run("Success_RepeatedMintsAllValid", func(t *testing.T) {
		f := newCapabilityFixture(t)
		record := f.registeredRecord(t)

		f.recordRepo.On("Exists", ctx, record.Address).Return(true, nil)
		f.storedRepo.On("Create", ctx, mock.AnythingOfType("*domain.StoredCapability")).Return(nil)

		first, err := f.useCase.Mint(ctx, record.Address, "first")
		require.NoError(t, err)
		second, err := f.useCase.Mint(ctx, record.Address, "second")
		require.NoError(t, err)

		cap1, err := f.codec.Open(first.Token)
		require.NoError(t, err)
		cap2, err := f.codec.Open(second.Token)
		require.NoError(t, err)
		assert.Equal(t, record.Address, cap1.BoundAddress())
		assert.Equal(t, record.Address, cap2.BoundAddress())
	})

	t.Run("Failure_NoDelegationRecord", func(t *testing.T) {
		f := newCapabilityFixture(t)

		addr, err := ledgerDomain.GenerateAddress()
		require.NoError(t, err)

		f.recordRepo.On("Exists", ctx, addr).Return(false, nil)

		_, err = f.useCase.Mint(ctx, addr, "")
		assert.ErrorIs(t, err, ledgerDomain.ErrDelegationRecordNotFound)
		f.storedRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Failure_InvalidAddress", func(t *testing.T) {
		f := newCapabilityFixture(t)

		_, err := f.useCase.Mint(ctx, ledgerDomain.Address("not-an-address"), "")
		assert.ErrorIs(t, err, ledgerDomain.ErrInvalidAddress)
	})
}

func TestCapabilityUseCase_DeriveSigner(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DeriveAndSign", func(t *testing.T) {
		f := newCapabilityFixture(t)
		record := f.registeredRecord(t)

		token, err := f.codec.Seal(ledgerDomain.NewSignerCapability(record.Address))
		require.NoError(t, err)

		f.recordRepo.On("Get", ctx, record.Address).Return(record, nil)

		payload := []byte("transaction-payload")
		output, err := f.useCase.DeriveSigner(ctx, &ledgerDomain.DeriveSignerInput{
			Token:   token,
			Payload: payload,
		})
		require.NoError(t, err)

		assert.Equal(t, record.Address, output.Address)
		assert.True(t, ledgerService.VerifySignature(output.PublicKey, payload, output.Signature))
	})

	t.Run("Success_DeterministicAcrossRedemptions", func(t *testing.T) {
		f := newCapabilityFixture(t)
		record := f.registeredRecord(t)

		token, err := f.codec.Seal(ledgerDomain.NewSignerCapability(record.Address))
		require.NoError(t, err)

		f.recordRepo.On("Get", ctx, record.Address).Return(record, nil)

		first, err := f.useCase.DeriveSigner(ctx, &ledgerDomain.DeriveSignerInput{Token: token})
		require.NoError(t, err)
		second, err := f.useCase.DeriveSigner(ctx, &ledgerDomain.DeriveSignerInput{Token: token})
		require.NoError(t, err)

		assert.Equal(t, first.PublicKey, second.PublicKey)
		assert.Empty(t, first.Signature)
	})

	t.Run("Failure_ForgedToken", func(t *testing.T) {
		f := newCapabilityFixture(t)

		_, err := f.useCase.DeriveSigner(ctx, &ledgerDomain.DeriveSignerInput{
			Token: "forged-token",
		})
		assert.ErrorIs(t, err, ledgerDomain.ErrInvalidCapability)

		// Forged tokens are rejected before any record lookup.
		f.recordRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Failure_RecordRemovedAfterMint", func(t *testing.T) {
		f := newCapabilityFixture(t)
		record := f.registeredRecord(t)

		token, err := f.codec.Seal(ledgerDomain.NewSignerCapability(record.Address))
		require.NoError(t, err)

		f.recordRepo.On("Get", ctx, record.Address).
			Return(nil, ledgerDomain.ErrDelegationRecordNotFound)

		_, err = f.useCase.DeriveSigner(ctx, &ledgerDomain.DeriveSignerInput{Token: token})
		assert.ErrorIs(t, err, ledgerDomain.ErrDelegationRecordNotFound)
	})

	t.Run("Failure_TokenForOtherAddressDoesNotLeakSigner", func(t *testing.T) {
		f := newCapabilityFixture(t)
		recordA := f.registeredRecord(t)
		recordB := f.registeredRecord(t)

		tokenA, err := f.codec.Seal(ledgerDomain.NewSignerCapability(recordA.Address))
		require.NoError(t, err)

		f.recordRepo.On("Get", ctx, recordA.Address).Return(recordA, nil)
		f.recordRepo.On("Get", ctx, recordB.Address).Return(recordB, nil)

		tokenB, err := f.codec.Seal(ledgerDomain.NewSignerCapability(recordB.Address))
		require.NoError(t, err)

		outputA, err := f.useCase.DeriveSigner(ctx, &ledgerDomain.DeriveSignerInput{Token: tokenA})
		require.NoError(t, err)
		outputB, err := f.useCase.DeriveSigner(ctx, &ledgerDomain.DeriveSignerInput{Token: tokenB})
		require.NoError(t, err)

		assert.Equal(t, recordA.Address, outputA.Address)
		assert.Equal(t, recordB.Address, outputB.Address)
		assert.NotEqual(t, outputA.PublicKey, outputB.PublicKey)
	})
}

func TestCapabilityUseCase_ListStored(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_ListOwnCapabilities", func(t *testing.T) {
		f := newCapabilityFixture(t)

		addr, err := ledgerDomain.GenerateAddress()
		require.NoError(t, err)

		stored := []*ledgerDomain.StoredCapability{
			{
				ID:        uuid.Must(uuid.NewV7()),
				Address:   addr,
				Token:     "token",
				Label:     "treasury",
				CreatedAt: time.Now().UTC(),
			},
		}

		f.storedRepo.On("ListByAddress", ctx, addr, 0, 50).Return(stored, nil)

		capabilities, err := f.useCase.ListStored(ctx, addr, 0, 50)
		require.NoError(t, err)
		require.Len(t, capabilities, 1)
		assert.Equal(t, addr, capabilities[0].Address)
	})

	t.Run("Failure_InvalidAddress", func(t *testing.T) {
		f := newCapabilityFixture(t)

		_, err := f.useCase.ListStored(ctx, ledgerDomain.Address("bogus"), 0, 50)
		assert.ErrorIs(t, err, ledgerDomain.ErrInvalidAddress)
	})
}
