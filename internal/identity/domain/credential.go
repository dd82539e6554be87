// Package domain defines the identity models used to authenticate callers.
//
// Every registered object address gets exactly one credential. Authenticating
// with the credential establishes the caller's address; it carries no
// permissions beyond that identity.
package domain

import (
	"time"

	"github.com/google/uuid"

	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

// Credential is the authentication secret bound to an object address.
type Credential struct {
	ID         uuid.UUID            // Unique identifier (UUIDv7)
	Address    ledgerDomain.Address // Object address this credential authenticates
	SecretHash string               //nolint:gosec // hashed secret (not plaintext)
	IsActive   bool                 // Whether the credential can authenticate
	CreatedAt  time.Time
}

// Validate checks the credential's structural invariants.
func (c *Credential) Validate() error {
	if err := c.Address.Validate(); err != nil {
		return err
	}
	if c.SecretHash == "" {
		return ErrInvalidCredential
	}
	return nil
}
