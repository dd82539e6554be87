package service

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	apperrors "github.com/allisson/delegate/internal/errors"
	"github.com/allisson/delegate/internal/ledger/domain"
)

// ExtendReferenceLength is the byte length of a plaintext extend reference.
const ExtendReferenceLength = 32

// signerDerivationInfo versions the key derivation so the scheme can change
// without old references becoming ambiguous.
var signerDerivationInfo = []byte("signer-derivation-v1")

// Signer is the authority handle for an object address. It is constructible
// only through AuthorityService.Derive; holders can sign payloads attributable
// to the address but cannot extract another address's authority from it.
type Signer struct {
	address    domain.Address
	privateKey ed25519.PrivateKey
}

// Address returns the address this signer acts for.
func (s *Signer) Address() domain.Address {
	return s.address
}

// PublicKey returns the verification key for signatures produced by this signer.
func (s *Signer) PublicKey() ed25519.PublicKey {
	return s.privateKey.Public().(ed25519.PublicKey)
}

// Sign signs the payload on behalf of the signer's address.
func (s *Signer) Sign(payload []byte) []byte {
	return ed25519.Sign(s.privateKey, payload)
}

// VerifySignature reports whether the signature over payload was produced by a
// signer holding the given public key.
func VerifySignature(publicKey ed25519.PublicKey, payload, signature []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize {
		return false
	}
	return ed25519.Verify(publicKey, payload, signature)
}

// authorityService implements AuthorityService using HKDF-SHA256 seed
// derivation and ed25519 signing keys.
type authorityService struct{}

// NewAuthorityService creates a new AuthorityService.
func NewAuthorityService() AuthorityService {
	return &authorityService{}
}

// GenerateExtendReference creates a new cryptographically random 32-byte
// extend reference.
func (a *authorityService) GenerateExtendReference() ([]byte, error) {
	reference := make([]byte, ExtendReferenceLength)
	if _, err := rand.Read(reference); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate extend reference")
	}
	return reference, nil
}

// Derive produces the signer for the address from its unsealed extend
// reference. The address bytes salt the derivation, so a reference can never
// yield a signer for a different address.
func (a *authorityService) Derive(
	address domain.Address,
	extendReference []byte,
) (*Signer, error) {
	if len(extendReference) != ExtendReferenceLength {
		return nil, domain.ErrInvalidExtendReference
	}

	salt, err := address.Bytes()
	if err != nil {
		return nil, err
	}

	reader := hkdf.New(sha256.New, extendReference, salt, signerDerivationInfo)
	seed := make([]byte, ed25519.SeedSize)
	if _, err := io.ReadFull(reader, seed); err != nil {
		return nil, apperrors.Wrap(err, "failed to derive signer seed")
	}

	return &Signer{
		address:    address,
		privateKey: ed25519.NewKeyFromSeed(seed),
	}, nil
}
