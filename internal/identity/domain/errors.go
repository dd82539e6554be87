package domain

import (
	"github.com/allisson/delegate/internal/errors"
)

var (
	// ErrCredentialNotFound indicates no credential exists for the address.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "credential not found")

	// ErrInvalidCredential indicates the presented secret does not match the
	// credential for the address.
	ErrInvalidCredential = errors.Wrap(errors.ErrUnauthorized, "invalid credential")

	// ErrCredentialRevoked indicates the credential exists but has been deactivated.
	ErrCredentialRevoked = errors.Wrap(errors.ErrForbidden, "credential revoked")
)
