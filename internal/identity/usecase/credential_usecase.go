package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	identityDomain "github.com/allisson/delegate/internal/identity/domain"
	identityService "github.com/allisson/delegate/internal/identity/service"
	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

// credentialUseCase implements CredentialUseCase.
type credentialUseCase struct {
	credentialRepo CredentialRepository
	secretService  identityService.SecretService
}

// Issue generates and persists a new credential for the address.
// Returns the plain secret. The plain secret is only returned once; the
// hashed version is stored in the database.
func (c *credentialUseCase) Issue(
	ctx context.Context,
	address ledgerDomain.Address,
) (string, error) {
	if err := address.Validate(); err != nil {
		return "", err
	}

	plainSecret, hashedSecret, err := c.secretService.GenerateSecret()
	if err != nil {
		return "", err
	}

	credential := &identityDomain.Credential{
		ID:         uuid.Must(uuid.NewV7()),
		Address:    address,
		SecretHash: hashedSecret,
		IsActive:   true,
		CreatedAt:  time.Now().UTC(),
	}
	if err := c.credentialRepo.Create(ctx, credential); err != nil {
		return "", err
	}

	return plainSecret, nil
}

// Revoke deactivates the credential for the address.
func (c *credentialUseCase) Revoke(ctx context.Context, address ledgerDomain.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	return c.credentialRepo.Deactivate(ctx, address)
}

// Authenticate verifies the plain secret for the address. An unknown address
// and a wrong secret both fail with ErrInvalidCredential; only a revoked
// credential is reported distinctly.
func (c *credentialUseCase) Authenticate(
	ctx context.Context,
	address ledgerDomain.Address,
	plainSecret string,
) (ledgerDomain.Address, error) {
	if err := address.Validate(); err != nil {
		return "", err
	}

	credential, err := c.credentialRepo.GetByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, identityDomain.ErrCredentialNotFound) {
			return "", identityDomain.ErrInvalidCredential
		}
		return "", err
	}

	if !credential.IsActive {
		return "", identityDomain.ErrCredentialRevoked
	}

	if !c.secretService.CompareSecret(plainSecret, credential.SecretHash) {
		return "", identityDomain.ErrInvalidCredential
	}

	return credential.Address, nil
}

// NewCredentialUseCase creates a new CredentialUseCase with the provided
// dependencies.
func NewCredentialUseCase(
	credentialRepo CredentialRepository,
	secretService identityService.SecretService,
) CredentialUseCase {
	return &credentialUseCase{
		credentialRepo: credentialRepo,
		secretService:  secretService,
	}
}
