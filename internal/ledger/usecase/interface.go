// Package usecase defines business logic interfaces for capability delegation
// operations.
package usecase

import (
	"context"

	"github.com/google/uuid"

	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

// DelegationRecordRepository defines persistence operations for delegation
// records. Implementations must support transaction-aware operations via
// context propagation.
type DelegationRecordRepository interface {
	// Create stores a new delegation record at its address.
	Create(ctx context.Context, record *ledgerDomain.DelegationRecord) error

	// Exists reports whether a delegation record exists at the address.
	Exists(ctx context.Context, address ledgerDomain.Address) (bool, error)

	// Get retrieves the delegation record at the address.
	// Returns ErrDelegationRecordNotFound if not found.
	Get(ctx context.Context, address ledgerDomain.Address) (*ledgerDomain.DelegationRecord, error)

	// Delete removes the delegation record at the address.
	// Returns ErrDelegationRecordNotFound if not found.
	Delete(ctx context.Context, address ledgerDomain.Address) error
}

// StoredCapabilityRepository defines persistence operations for capability
// storage slots. Implementations must support transaction-aware operations via
// context propagation.
type StoredCapabilityRepository interface {
	// Create stores a minted capability in the owner's storage slot.
	Create(ctx context.Context, stored *ledgerDomain.StoredCapability) error

	// Get retrieves a stored capability by ID.
	// Returns ErrStoredCapabilityNotFound if not found.
	Get(ctx context.Context, id uuid.UUID) (*ledgerDomain.StoredCapability, error)

	// ListByAddress retrieves stored capabilities owned by the address,
	// newest first, with pagination.
	ListByAddress(
		ctx context.Context,
		address ledgerDomain.Address,
		offset, limit int,
	) ([]*ledgerDomain.StoredCapability, error)
}

// CredentialIssuer manages the caller credentials tied to object addresses.
// It is implemented by the identity module and consumed during registration
// so credential lifecycle stays in step with delegation records.
type CredentialIssuer interface {
	// Issue creates an active credential for the address and returns the
	// plain secret. The plain secret is only returned once.
	Issue(ctx context.Context, address ledgerDomain.Address) (string, error)

	// Revoke deactivates the credential for the address.
	Revoke(ctx context.Context, address ledgerDomain.Address) error
}

// CapabilityUseCase defines the capability delegation operations available to
// authenticated callers.
//
// Mint is the only way a capability comes into existence and it is gated on a
// single condition: a delegation record exists at the caller's own address.
// No further authorization state is consulted, and minting is unlimited while
// the record remains.
type CapabilityUseCase interface {
	// Mint creates a capability bound to the caller's address and persists a
	// copy in the caller's storage slot under the given label.
	//
	// Returns ErrDelegationRecordNotFound when no delegation record exists at
	// the caller's address.
	Mint(
		ctx context.Context,
		caller ledgerDomain.Address,
		label string,
	) (*ledgerDomain.MintOutput, error)

	// DeriveSigner redeems a capability token for the signer of its bound
	// address, optionally signing the input payload.
	//
	// Returns ErrInvalidCapability for tokens that were not produced by Mint,
	// and ErrDelegationRecordNotFound when the bound record no longer exists.
	DeriveSigner(
		ctx context.Context,
		input *ledgerDomain.DeriveSignerInput,
	) (*ledgerDomain.DeriveSignerOutput, error)

	// ListStored retrieves the caller's stored capabilities with pagination.
	ListStored(
		ctx context.Context,
		caller ledgerDomain.Address,
		offset, limit int,
	) ([]*ledgerDomain.StoredCapability, error)
}

// RegistrationUseCase defines the object lifecycle operations performed by
// the registration collaborator, not by capability holders.
type RegistrationUseCase interface {
	// Register creates a new object: a fresh address, a delegation record
	// holding its sealed extend reference, and a caller credential. The
	// record and credential are written atomically.
	Register(ctx context.Context) (*ledgerDomain.RegisterObjectOutput, error)

	// Deregister removes the delegation record at the address and revokes
	// its credential. Capabilities already minted for the address survive as
	// values; redeeming them fails with ErrDelegationRecordNotFound.
	Deregister(ctx context.Context, address ledgerDomain.Address) error
}
