// Package service provides the cryptographic services behind capability
// delegation: signer derivation from extend references, sealing of portable
// capability tokens, and at-rest protection of extend references.
package service

import (
	"context"

	"github.com/allisson/delegate/internal/ledger/domain"
)

// AuthorityService produces signers from extend references.
//
// Derivation is deterministic: the same record always yields a signer for the
// same key pair, so every signature produced through a capability remains
// attributable to the record's address.
type AuthorityService interface {
	// GenerateExtendReference creates a new random extend reference for an
	// object being registered. The reference must be sealed before storage.
	GenerateExtendReference() ([]byte, error)

	// Derive produces a fresh signer for the address from its unsealed
	// extend reference.
	Derive(address domain.Address, extendReference []byte) (*Signer, error)
}

// CapabilityCodec seals signer capabilities into portable wire tokens and
// authenticates incoming tokens.
//
// The wire token is the only capability form that crosses the service
// boundary. Sealing binds the token to its address under a service-held MAC
// key; opening rejects anything that was not produced by Seal with
// domain.ErrInvalidCapability.
type CapabilityCodec interface {
	Seal(capability domain.SignerCapability) (string, error)
	Open(token string) (domain.SignerCapability, error)
}

// ReferenceKeeper protects extend references at rest using an envelope keeper.
type ReferenceKeeper interface {
	// Seal encrypts a plaintext extend reference for storage.
	Seal(ctx context.Context, plaintext []byte) ([]byte, error)

	// Unseal decrypts a sealed extend reference read from storage.
	Unseal(ctx context.Context, sealed []byte) ([]byte, error)

	// Close releases keeper resources.
	Close() error
}
