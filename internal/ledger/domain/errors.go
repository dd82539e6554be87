package domain

import (
	"github.com/allisson/delegate/internal/errors"
)

var (
	// ErrDelegationRecordNotFound indicates no delegation record exists at the target address.
	// Raised by mint when the caller's address has no record, and by signer derivation
	// when the record backing a capability has been removed.
	ErrDelegationRecordNotFound = errors.Wrap(errors.ErrNotFound, "delegation record not found")

	// ErrObjectAlreadyRegistered indicates a delegation record already exists at the address.
	// Record creation happens at most once per address.
	ErrObjectAlreadyRegistered = errors.Wrap(errors.ErrConflict, "object already registered")

	// ErrStoredCapabilityNotFound indicates the stored capability was not found.
	ErrStoredCapabilityNotFound = errors.Wrap(errors.ErrNotFound, "stored capability not found")

	// ErrInvalidCapability indicates a capability token failed authentication.
	// Tampered, truncated, or foreign-keyed tokens are rejected before any record lookup.
	ErrInvalidCapability = errors.Wrap(errors.ErrUnauthorized, "invalid capability token")

	// ErrInvalidAddress indicates an address is not in canonical form.
	ErrInvalidAddress = errors.Wrap(errors.ErrInvalidInput, "invalid object address")

	// ErrInvalidExtendReference indicates a delegation record carries an empty extend reference.
	ErrInvalidExtendReference = errors.Wrap(errors.ErrInvalidInput, "invalid extend reference")
)
