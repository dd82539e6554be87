package service

import (
	"context"

	"gocloud.dev/secrets"
	"gocloud.dev/secrets/localsecrets"

	apperrors "github.com/allisson/delegate/internal/errors"

	// Register keeper drivers for the supported URL schemes.
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
)

// referenceKeeper implements ReferenceKeeper on top of gocloud.dev/secrets.
type referenceKeeper struct {
	keeper *secrets.Keeper
}

// OpenReferenceKeeper opens a keeper for the configured URI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
//
// An empty URI falls back to an in-process random keeper. Sealed references
// then survive only as long as the process, so the fallback is suitable for
// development and tests, not production.
func OpenReferenceKeeper(ctx context.Context, keeperURI string) (ReferenceKeeper, error) {
	if keeperURI == "" {
		key, err := localsecrets.NewRandomKey()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to create local keeper key")
		}
		return &referenceKeeper{keeper: localsecrets.NewKeeper(key)}, nil
	}

	keeper, err := secrets.OpenKeeper(ctx, keeperURI)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open reference keeper")
	}
	return &referenceKeeper{keeper: keeper}, nil
}

// Seal encrypts a plaintext extend reference for storage.
func (r *referenceKeeper) Seal(ctx context.Context, plaintext []byte) ([]byte, error) {
	sealed, err := r.keeper.Encrypt(ctx, plaintext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to seal extend reference")
	}
	return sealed, nil
}

// Unseal decrypts a sealed extend reference read from storage.
func (r *referenceKeeper) Unseal(ctx context.Context, sealed []byte) ([]byte, error) {
	plaintext, err := r.keeper.Decrypt(ctx, sealed)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to unseal extend reference")
	}
	return plaintext, nil
}

// Close releases keeper resources.
func (r *referenceKeeper) Close() error {
	return r.keeper.Close()
}
