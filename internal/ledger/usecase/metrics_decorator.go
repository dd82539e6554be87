package usecase

import (
	"context"
	"time"

	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
	"github.com/allisson/delegate/internal/metrics"
)

// capabilityUseCaseWithMetrics decorates CapabilityUseCase with metrics
// instrumentation.
type capabilityUseCaseWithMetrics struct {
	next    CapabilityUseCase
	metrics metrics.BusinessMetrics
}

// NewCapabilityUseCaseWithMetrics wraps a CapabilityUseCase with metrics recording.
func NewCapabilityUseCaseWithMetrics(
	useCase CapabilityUseCase,
	m metrics.BusinessMetrics,
) CapabilityUseCase {
	return &capabilityUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Mint records metrics for capability mint operations.
func (c *capabilityUseCaseWithMetrics) Mint(
	ctx context.Context,
	caller ledgerDomain.Address,
	label string,
) (*ledgerDomain.MintOutput, error) {
	start := time.Now()
	output, err := c.next.Mint(ctx, caller, label)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "ledger", "capability_mint", status)
	c.metrics.RecordDuration(ctx, "ledger", "capability_mint", time.Since(start), status)

	return output, err
}

// DeriveSigner records metrics for signer derivation operations.
func (c *capabilityUseCaseWithMetrics) DeriveSigner(
	ctx context.Context,
	input *ledgerDomain.DeriveSignerInput,
) (*ledgerDomain.DeriveSignerOutput, error) {
	start := time.Now()
	output, err := c.next.DeriveSigner(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "ledger", "signer_derive", status)
	c.metrics.RecordDuration(ctx, "ledger", "signer_derive", time.Since(start), status)

	return output, err
}

// ListStored records metrics for stored capability list operations.
func (c *capabilityUseCaseWithMetrics) ListStored(
	ctx context.Context,
	caller ledgerDomain.Address,
	offset, limit int,
) ([]*ledgerDomain.StoredCapability, error) {
	start := time.Now()
	capabilities, err := c.next.ListStored(ctx, caller, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "ledger", "capability_list", status)
	c.metrics.RecordDuration(ctx, "ledger", "capability_list", time.Since(start), status)

	return capabilities, err
}

// registrationUseCaseWithMetrics decorates RegistrationUseCase with metrics
// instrumentation.
type registrationUseCaseWithMetrics struct {
	next    RegistrationUseCase
	metrics metrics.BusinessMetrics
}

// NewRegistrationUseCaseWithMetrics wraps a RegistrationUseCase with metrics recording.
func NewRegistrationUseCaseWithMetrics(
	useCase RegistrationUseCase,
	m metrics.BusinessMetrics,
) RegistrationUseCase {
	return &registrationUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Register records metrics for object registration operations.
func (r *registrationUseCaseWithMetrics) Register(
	ctx context.Context,
) (*ledgerDomain.RegisterObjectOutput, error) {
	start := time.Now()
	output, err := r.next.Register(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "ledger", "object_register", status)
	r.metrics.RecordDuration(ctx, "ledger", "object_register", time.Since(start), status)

	return output, err
}

// Deregister records metrics for object deregistration operations.
func (r *registrationUseCaseWithMetrics) Deregister(
	ctx context.Context,
	address ledgerDomain.Address,
) error {
	start := time.Now()
	err := r.next.Deregister(ctx, address)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "ledger", "object_deregister", status)
	r.metrics.RecordDuration(ctx, "ledger", "object_deregister", time.Since(start), status)

	return err
}
