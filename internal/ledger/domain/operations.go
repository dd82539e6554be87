package domain

import "github.com/google/uuid"

// RegisterObjectOutput is the result of registering a new object address.
// Secret is the plain credential for the address and is only returned once.
type RegisterObjectOutput struct {
	Address Address
	Secret  string
}

// MintOutput is the result of minting a signer capability. Token is the
// portable wire form; StoredID identifies the storage slot holding a copy.
type MintOutput struct {
	Token    string
	StoredID uuid.UUID
}

// DeriveSignerInput redeems a capability token for a signer. Payload is
// optional; when present it is signed with the derived key.
type DeriveSignerInput struct {
	Token   string
	Payload []byte
}

// DeriveSignerOutput exposes the derived signer to the caller: the address it
// acts for, its verification key, and the signature over the input payload
// when one was supplied.
type DeriveSignerOutput struct {
	Address   Address
	PublicKey []byte
	Signature []byte
}
