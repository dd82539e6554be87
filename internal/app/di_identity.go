package app

import (
	"fmt"

	identityRepository "github.com/allisson/delegate/internal/identity/repository"
	identityUseCase "github.com/allisson/delegate/internal/identity/usecase"
)

// initCredentialRepository creates the credential repository based on the
// configured database driver.
func (c *Container) initCredentialRepository() (identityUseCase.CredentialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for credential repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return identityRepository.NewPostgreSQLCredentialRepository(db), nil
	case "mysql":
		return identityRepository.NewMySQLCredentialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initCredentialUseCase creates the credential use case with its dependencies.
func (c *Container) initCredentialUseCase() (identityUseCase.CredentialUseCase, error) {
	credentialRepo, err := c.CredentialRepository()
	if err != nil {
		return nil, err
	}

	useCase := identityUseCase.NewCredentialUseCase(credentialRepo, c.SecretService())

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, err
		}
		useCase = identityUseCase.NewCredentialUseCaseWithMetrics(useCase, businessMetrics)
	}

	return useCase, nil
}
