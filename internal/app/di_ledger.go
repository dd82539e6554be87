package app

import (
	"fmt"

	ledgerRepository "github.com/allisson/delegate/internal/ledger/repository"
	ledgerUseCase "github.com/allisson/delegate/internal/ledger/usecase"
)

// initDelegationRecordRepository creates the delegation record repository
// based on the configured database driver.
func (c *Container) initDelegationRecordRepository() (ledgerUseCase.DelegationRecordRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for delegation record repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return ledgerRepository.NewPostgreSQLDelegationRecordRepository(db), nil
	case "mysql":
		return ledgerRepository.NewMySQLDelegationRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initStoredCapabilityRepository creates the stored capability repository
// based on the configured database driver.
func (c *Container) initStoredCapabilityRepository() (ledgerUseCase.StoredCapabilityRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for stored capability repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return ledgerRepository.NewPostgreSQLStoredCapabilityRepository(db), nil
	case "mysql":
		return ledgerRepository.NewMySQLStoredCapabilityRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCapabilityUseCase creates the capability use case with its dependencies.
func (c *Container) initCapabilityUseCase() (ledgerUseCase.CapabilityUseCase, error) {
	recordRepo, err := c.DelegationRecordRepository()
	if err != nil {
		return nil, err
	}

	storedRepo, err := c.StoredCapabilityRepository()
	if err != nil {
		return nil, err
	}

	codec, err := c.CapabilityCodec()
	if err != nil {
		return nil, err
	}

	keeper, err := c.ReferenceKeeper()
	if err != nil {
		return nil, err
	}

	useCase := ledgerUseCase.NewCapabilityUseCase(
		recordRepo,
		storedRepo,
		codec,
		c.AuthorityService(),
		keeper,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}
		useCase = ledgerUseCase.NewCapabilityUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}

// initRegistrationUseCase creates the registration use case with its dependencies.
func (c *Container) initRegistrationUseCase() (ledgerUseCase.RegistrationUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, err
	}

	recordRepo, err := c.DelegationRecordRepository()
	if err != nil {
		return nil, err
	}

	keeper, err := c.ReferenceKeeper()
	if err != nil {
		return nil, err
	}

	credentialUseCase, err := c.CredentialUseCase()
	if err != nil {
		return nil, err
	}

	useCase := ledgerUseCase.NewRegistrationUseCase(
		txManager,
		recordRepo,
		c.AuthorityService(),
		keeper,
		credentialUseCase,
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}
		useCase = ledgerUseCase.NewRegistrationUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}
