package usecase

import (
	"context"
	"time"

	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
	"github.com/allisson/delegate/internal/metrics"
)

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics
// instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(
	useCase CredentialUseCase,
	m metrics.BusinessMetrics,
) CredentialUseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Issue records metrics for credential issuance operations.
func (c *credentialUseCaseWithMetrics) Issue(
	ctx context.Context,
	address ledgerDomain.Address,
) (string, error) {
	start := time.Now()
	secret, err := c.next.Issue(ctx, address)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "identity", "credential_issue", status)
	c.metrics.RecordDuration(ctx, "identity", "credential_issue", time.Since(start), status)

	return secret, err
}

// Revoke records metrics for credential revocation operations.
func (c *credentialUseCaseWithMetrics) Revoke(
	ctx context.Context,
	address ledgerDomain.Address,
) error {
	start := time.Now()
	err := c.next.Revoke(ctx, address)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "identity", "credential_revoke", status)
	c.metrics.RecordDuration(ctx, "identity", "credential_revoke", time.Since(start), status)

	return err
}

// Authenticate records metrics for authentication operations.
func (c *credentialUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	address ledgerDomain.Address,
	plainSecret string,
) (ledgerDomain.Address, error) {
	start := time.Now()
	caller, err := c.next.Authenticate(ctx, address, plainSecret)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "identity", "credential_authenticate", status)
	c.metrics.RecordDuration(ctx, "identity", "credential_authenticate", time.Since(start), status)

	return caller, err
}
