package domain

import (
	"time"
)

// DelegationRecord is the persistent per-address record created when an object
// is registered. It holds the sealed extend reference capable of producing the
// object's signer on demand.
//
// A record is created exactly once per address, is never mutated afterwards,
// and is only removed by the registration collaborator (never by the
// capability operations themselves).
type DelegationRecord struct {
	// Address is the object address the record is stored at. At most one
	// record exists per address.
	Address Address
	// ExtendReference is the sealed (keeper-wrapped) reference from which the
	// object's signer is derived. It never leaves storage unsealed.
	ExtendReference []byte
	// CreatedAt is the UTC timestamp when the object was registered.
	CreatedAt time.Time
}

// Validate checks the record's structural invariants.
func (r *DelegationRecord) Validate() error {
	if err := r.Address.Validate(); err != nil {
		return err
	}
	if len(r.ExtendReference) == 0 {
		return ErrInvalidExtendReference
	}
	return nil
}
