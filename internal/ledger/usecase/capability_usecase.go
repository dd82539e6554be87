package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
	ledgerService "github.com/allisson/delegate/internal/ledger/service"
)

// capabilityUseCase implements CapabilityUseCase.
type capabilityUseCase struct {
	recordRepo DelegationRecordRepository
	storedRepo StoredCapabilityRepository
	codec      ledgerService.CapabilityCodec
	authority  ledgerService.AuthorityService
	keeper     ledgerService.ReferenceKeeper
}

// Mint creates a capability bound to the caller's address.
// The caller's identity is the whole authorization check: if a delegation
// record exists at that address, the mint succeeds, otherwise it fails with
// ErrDelegationRecordNotFound. The sealed token is persisted in the caller's
// storage slot and also returned for immediate use.
func (c *capabilityUseCase) Mint(
	ctx context.Context,
	caller ledgerDomain.Address,
	label string,
) (*ledgerDomain.MintOutput, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	exists, err := c.recordRepo.Exists(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ledgerDomain.ErrDelegationRecordNotFound
	}

	token, err := c.codec.Seal(ledgerDomain.NewSignerCapability(caller))
	if err != nil {
		return nil, err
	}

	stored := &ledgerDomain.StoredCapability{
		ID:        uuid.Must(uuid.NewV7()),
		Address:   caller,
		Token:     token,
		Label:     label,
		CreatedAt: time.Now().UTC(),
	}
	if err := c.storedRepo.Create(ctx, stored); err != nil {
		return nil, err
	}

	return &ledgerDomain.MintOutput{
		Token:    token,
		StoredID: stored.ID,
	}, nil
}

// DeriveSigner redeems a capability token for the signer of its bound address.
// The token is authenticated before any storage access, so forged values never
// reach the record lookup. A token whose record was removed after minting
// fails with ErrDelegationRecordNotFound.
func (c *capabilityUseCase) DeriveSigner(
	ctx context.Context,
	input *ledgerDomain.DeriveSignerInput,
) (*ledgerDomain.DeriveSignerOutput, error) {
	capability, err := c.codec.Open(input.Token)
	if err != nil {
		return nil, err
	}

	record, err := c.recordRepo.Get(ctx, capability.BoundAddress())
	if err != nil {
		return nil, err
	}

	reference, err := c.keeper.Unseal(ctx, record.ExtendReference)
	if err != nil {
		return nil, err
	}

	signer, err := c.authority.Derive(record.Address, reference)
	if err != nil {
		return nil, err
	}

	output := &ledgerDomain.DeriveSignerOutput{
		Address:   signer.Address(),
		PublicKey: signer.PublicKey(),
	}
	if len(input.Payload) > 0 {
		output.Signature = signer.Sign(input.Payload)
	}
	return output, nil
}

// ListStored retrieves the caller's stored capabilities ordered newest first.
func (c *capabilityUseCase) ListStored(
	ctx context.Context,
	caller ledgerDomain.Address,
	offset, limit int,
) ([]*ledgerDomain.StoredCapability, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}
	return c.storedRepo.ListByAddress(ctx, caller, offset, limit)
}

// NewCapabilityUseCase creates a new CapabilityUseCase with the provided
// dependencies.
func NewCapabilityUseCase(
	recordRepo DelegationRecordRepository,
	storedRepo StoredCapabilityRepository,
	codec ledgerService.CapabilityCodec,
	authority ledgerService.AuthorityService,
	keeper ledgerService.ReferenceKeeper,
) CapabilityUseCase {
	return &capabilityUseCase{
		recordRepo: recordRepo,
		storedRepo: storedRepo,
		codec:      codec,
		authority:  authority,
		keeper:     keeper,
	}
}
