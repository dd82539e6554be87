// Package domain defines the core domain models for capability delegation.
//
// The ledger runtime associates every object with an address and a controlling
// authority. A delegation record persisted at the object's address holds the
// means to produce that authority on demand; a signer capability is the
// storable proof of the right to do so later.
package domain

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

// AddressLength is the byte length of an object address.
const AddressLength = 32

// addressRegex matches a 0x-prefixed lowercase hex object address.
var addressRegex = regexp.MustCompile(`^0x[0-9a-f]{64}$`)

// Address identifies an object in the ledger runtime.
// The canonical form is "0x" followed by 64 lowercase hex characters.
type Address string

// NewAddress parses and validates an address string.
func NewAddress(s string) (Address, error) {
	addr := Address(s)
	if err := addr.Validate(); err != nil {
		return "", err
	}
	return addr, nil
}

// GenerateAddress creates a new random object address.
// Used by the registration collaborator when an object is created.
func GenerateAddress() (Address, error) {
	raw := make([]byte, AddressLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate address: %w", err)
	}
	return Address("0x" + hex.EncodeToString(raw)), nil
}

// Validate checks that the address is in canonical form.
func (a Address) Validate() error {
	if !addressRegex.MatchString(string(a)) {
		return ErrInvalidAddress
	}
	return nil
}

// Bytes returns the raw 32-byte representation of the address.
// The address must be valid; invalid addresses return an error.
func (a Address) Bytes() ([]byte, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return hex.DecodeString(string(a)[2:])
}

// String returns the canonical string form of the address.
func (a Address) String() string {
	return string(a)
}
