// Package usecase implements business logic for credential lifecycle and
// caller authentication.
package usecase

import (
	"context"

	identityDomain "github.com/allisson/delegate/internal/identity/domain"
	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

// CredentialRepository defines persistence operations for credentials.
// Implementations must support transaction-aware operations via context
// propagation.
type CredentialRepository interface {
	// Create stores a new credential.
	Create(ctx context.Context, credential *identityDomain.Credential) error

	// GetByAddress retrieves the credential for an object address.
	// Returns ErrCredentialNotFound if not found.
	GetByAddress(
		ctx context.Context,
		address ledgerDomain.Address,
	) (*identityDomain.Credential, error)

	// Deactivate marks the credential for the address as inactive.
	// Returns ErrCredentialNotFound if not found.
	Deactivate(ctx context.Context, address ledgerDomain.Address) error
}

// CredentialUseCase defines credential lifecycle and authentication
// operations. Issue and Revoke satisfy the registration flow's credential
// issuer contract; Authenticate backs the HTTP authentication middleware.
type CredentialUseCase interface {
	// Issue creates an active credential for the address and returns the
	// plain secret. The plain secret is only returned once.
	Issue(ctx context.Context, address ledgerDomain.Address) (string, error)

	// Revoke deactivates the credential for the address.
	Revoke(ctx context.Context, address ledgerDomain.Address) error

	// Authenticate verifies the plain secret against the credential for the
	// address and returns the caller's address on success.
	//
	// Returns ErrInvalidCredential on a secret mismatch and
	// ErrCredentialRevoked when the credential is inactive. Unknown addresses
	// also fail with ErrInvalidCredential so probing cannot distinguish
	// missing credentials from wrong secrets.
	Authenticate(
		ctx context.Context,
		address ledgerDomain.Address,
		plainSecret string,
	) (ledgerDomain.Address, error)
}
