package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/hkdf"

	apperrors "github.com/allisson/delegate/internal/errors"
	"github.com/allisson/delegate/internal/ledger/domain"
)

const (
	// minCodecKeyLength is the minimum accepted codec key size in bytes.
	minCodecKeyLength = 16

	// capabilityTagLength is the HMAC-SHA256 tag size in bytes.
	capabilityTagLength = sha256.Size
)

// capabilityTokenInfo separates the token MAC key from any other use of the
// configured key material.
var capabilityTokenInfo = []byte("capability-token-v1")

// capabilityCodec implements CapabilityCodec with an HKDF-derived
// HMAC-SHA256 key. The wire token is base64url(address || tag).
type capabilityCodec struct {
	macKey []byte
}

// NewCapabilityCodec creates a CapabilityCodec from the configured key
// material. The key must be at least 16 bytes.
func NewCapabilityCodec(key []byte) (CapabilityCodec, error) {
	if len(key) < minCodecKeyLength {
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			"capability key must be at least 16 bytes",
		)
	}

	reader := hkdf.New(sha256.New, key, nil, capabilityTokenInfo)
	macKey := make([]byte, sha256.Size)
	if _, err := io.ReadFull(reader, macKey); err != nil {
		return nil, apperrors.Wrap(err, "failed to derive capability MAC key")
	}

	return &capabilityCodec{macKey: macKey}, nil
}

// Seal produces the portable wire token for a capability.
func (c *capabilityCodec) Seal(capability domain.SignerCapability) (string, error) {
	addrBytes, err := capability.BoundAddress().Bytes()
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, c.macKey)
	mac.Write(addrBytes)
	tag := mac.Sum(nil)

	raw := make([]byte, 0, len(addrBytes)+len(tag))
	raw = append(raw, addrBytes...)
	raw = append(raw, tag...)

	return base64.URLEncoding.EncodeToString(raw), nil
}

// Open authenticates a wire token and recovers the bound capability.
// Any token not produced by Seal under the same key fails with
// domain.ErrInvalidCapability.
func (c *capabilityCodec) Open(token string) (domain.SignerCapability, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return domain.SignerCapability{}, domain.ErrInvalidCapability
	}

	if len(raw) != domain.AddressLength+capabilityTagLength {
		return domain.SignerCapability{}, domain.ErrInvalidCapability
	}

	addrBytes := raw[:domain.AddressLength]
	tag := raw[domain.AddressLength:]

	mac := hmac.New(sha256.New, c.macKey)
	mac.Write(addrBytes)
	if !hmac.Equal(tag, mac.Sum(nil)) {
		return domain.SignerCapability{}, domain.ErrInvalidCapability
	}

	address := domain.Address("0x" + hex.EncodeToString(addrBytes))
	if err := address.Validate(); err != nil {
		return domain.SignerCapability{}, domain.ErrInvalidCapability
	}

	return domain.NewSignerCapability(address), nil
}
