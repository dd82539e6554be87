package domain

import (
	"time"

	"github.com/google/uuid"
)

// SignerCapability is the value-like proof of the right to obtain the signer
// for exactly one address. It is minted only for the caller's own address
// while a delegation record exists there; the binding is immutable for the
// capability's lifetime.
//
// Copies of a capability are equally valid redemption instruments. The
// portable wire form is authenticated by the capability codec, so values that
// did not originate from a mint fail verification before any record lookup.
type SignerCapability struct {
	boundAddress Address
}

// NewSignerCapability binds a capability to an address. Callers outside the
// mint path gain nothing from constructing one directly: the wire token that
// crosses the service boundary carries a MAC only the codec can produce.
func NewSignerCapability(addr Address) SignerCapability {
	return SignerCapability{boundAddress: addr}
}

// BoundAddress returns the address whose signer this capability can produce.
func (c SignerCapability) BoundAddress() Address {
	return c.boundAddress
}

// StoredCapability is a minted capability persisted in a code unit's own
// storage slot so the authority remains reachable after the initialization
// window closes.
type StoredCapability struct {
	// ID is the unique identifier for this storage slot entry (UUIDv7).
	ID uuid.UUID
	// Address is the caller address that minted and owns the capability.
	Address Address
	// Token is the sealed wire form of the capability.
	Token string
	// Label is an optional caller-supplied name for the slot.
	Label string
	// CreatedAt is the UTC timestamp when the capability was stored.
	CreatedAt time.Time
}

// Validate checks the stored capability's structural invariants.
func (s *StoredCapability) Validate() error {
	if err := s.Address.Validate(); err != nil {
		return err
	}
	if s.Token == "" {
		return ErrInvalidCapability
	}
	return nil
}
