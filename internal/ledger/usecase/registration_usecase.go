package usecase

import (
	"context"
	"time"

	"github.com/allisson/delegate/internal/database"
	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
	ledgerService "github.com/allisson/delegate/internal/ledger/service"
)

// registrationUseCase implements RegistrationUseCase.
type registrationUseCase struct {
	txManager   database.TxManager
	recordRepo  DelegationRecordRepository
	authority   ledgerService.AuthorityService
	keeper      ledgerService.ReferenceKeeper
	credentials CredentialIssuer
}

// Register creates a new object address with its delegation record and caller
// credential. The extend reference never touches storage in plaintext: it is
// generated, sealed by the keeper, and only the sealed form is persisted.
func (r *registrationUseCase) Register(
	ctx context.Context,
) (*ledgerDomain.RegisterObjectOutput, error) {
	address, err := ledgerDomain.GenerateAddress()
	if err != nil {
		return nil, err
	}

	exists, err := r.recordRepo.Exists(ctx, address)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ledgerDomain.ErrObjectAlreadyRegistered
	}

	reference, err := r.authority.GenerateExtendReference()
	if err != nil {
		return nil, err
	}

	sealed, err := r.keeper.Seal(ctx, reference)
	if err != nil {
		return nil, err
	}

	record := &ledgerDomain.DelegationRecord{
		Address:         address,
		ExtendReference: sealed,
		CreatedAt:       time.Now().UTC(),
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}

	var secret string
	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := r.recordRepo.Create(ctx, record); err != nil {
			return err
		}

		secret, err = r.credentials.Issue(ctx, address)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &ledgerDomain.RegisterObjectOutput{
		Address: address,
		Secret:  secret,
	}, nil
}

// Deregister removes the delegation record at the address and revokes its
// credential atomically. Outstanding capability tokens are not tracked here;
// they simply stop being redeemable once the record is gone.
func (r *registrationUseCase) Deregister(
	ctx context.Context,
	address ledgerDomain.Address,
) error {
	if err := address.Validate(); err != nil {
		return err
	}

	return r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := r.recordRepo.Delete(ctx, address); err != nil {
			return err
		}
		return r.credentials.Revoke(ctx, address)
	})
}

// NewRegistrationUseCase creates a new RegistrationUseCase with the provided
// dependencies.
func NewRegistrationUseCase(
	txManager database.TxManager,
	recordRepo DelegationRecordRepository,
	authority ledgerService.AuthorityService,
	keeper ledgerService.ReferenceKeeper,
	credentials CredentialIssuer,
) RegistrationUseCase {
	return &registrationUseCase{
		txManager:   txManager,
		recordRepo:  recordRepo,
		authority:   authority,
		keeper:      keeper,
		credentials: credentials,
	}
}
