// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/delegate/internal/config"
	"github.com/allisson/delegate/internal/database"
	"github.com/allisson/delegate/internal/http"
	identityService "github.com/allisson/delegate/internal/identity/service"
	identityUseCase "github.com/allisson/delegate/internal/identity/usecase"
	ledgerService "github.com/allisson/delegate/internal/ledger/service"
	ledgerUseCase "github.com/allisson/delegate/internal/ledger/usecase"
	"github.com/allisson/delegate/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager

	// Observability
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Services
	keeper        ledgerService.ReferenceKeeper
	codec         ledgerService.CapabilityCodec
	authority     ledgerService.AuthorityService
	secretService identityService.SecretService

	// Repositories
	recordRepo     ledgerUseCase.DelegationRecordRepository
	storedRepo     ledgerUseCase.StoredCapabilityRepository
	credentialRepo identityUseCase.CredentialRepository

	// Use Cases
	credentialUseCase   identityUseCase.CredentialUseCase
	capabilityUseCase   ledgerUseCase.CapabilityUseCase
	registrationUseCase ledgerUseCase.RegistrationUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                      sync.Mutex
	loggerInit              sync.Once
	dbInit                  sync.Once
	txManagerInit           sync.Once
	metricsProviderInit     sync.Once
	businessMetricsInit     sync.Once
	keeperInit              sync.Once
	codecInit               sync.Once
	authorityInit           sync.Once
	secretServiceInit       sync.Once
	recordRepoInit          sync.Once
	storedRepoInit          sync.Once
	credentialRepoInit      sync.Once
	credentialUseCaseInit   sync.Once
	capabilityUseCaseInit   sync.Once
	registrationUseCaseInit sync.Once
	httpServerInit          sync.Once
	metricsServerInit       sync.Once
	initErrors              map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider instance.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
// Returns a no-op implementation when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		if !c.config.MetricsEnabled {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}

		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}

		businessMetrics, err := metrics.NewBusinessMetrics(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.businessMetrics = businessMetrics
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// ReferenceKeeper returns the keeper protecting extend references at rest.
func (c *Container) ReferenceKeeper() (ledgerService.ReferenceKeeper, error) {
	c.keeperInit.Do(func() {
		keeper, err := ledgerService.OpenReferenceKeeper(context.Background(), c.config.KeeperURI)
		if err != nil {
			c.initErrors["keeper"] = fmt.Errorf("failed to open reference keeper: %w", err)
			return
		}
		c.keeper = keeper
	})
	if storedErr, exists := c.initErrors["keeper"]; exists {
		return nil, storedErr
	}
	return c.keeper, nil
}

// CapabilityCodec returns the codec sealing capability tokens.
func (c *Container) CapabilityCodec() (ledgerService.CapabilityCodec, error) {
	c.codecInit.Do(func() {
		if c.config.CapabilityKey == "" {
			c.initErrors["codec"] = fmt.Errorf("CAPABILITY_KEY must be set")
			return
		}

		key, err := base64.StdEncoding.DecodeString(c.config.CapabilityKey)
		if err != nil {
			c.initErrors["codec"] = fmt.Errorf("CAPABILITY_KEY must be base64-encoded: %w", err)
			return
		}

		codec, err := ledgerService.NewCapabilityCodec(key)
		if err != nil {
			c.initErrors["codec"] = fmt.Errorf("failed to create capability codec: %w", err)
			return
		}
		c.codec = codec
	})
	if storedErr, exists := c.initErrors["codec"]; exists {
		return nil, storedErr
	}
	return c.codec, nil
}

// AuthorityService returns the signer derivation service.
func (c *Container) AuthorityService() ledgerService.AuthorityService {
	c.authorityInit.Do(func() {
		c.authority = ledgerService.NewAuthorityService()
	})
	return c.authority
}

// SecretService returns the credential secret service.
func (c *Container) SecretService() identityService.SecretService {
	c.secretServiceInit.Do(func() {
		c.secretService = identityService.NewSecretService()
	})
	return c.secretService
}

// DelegationRecordRepository returns the delegation record repository instance.
func (c *Container) DelegationRecordRepository() (ledgerUseCase.DelegationRecordRepository, error) {
	c.recordRepoInit.Do(func() {
		repo, err := c.initDelegationRecordRepository()
		if err != nil {
			c.initErrors["recordRepo"] = err
			return
		}
		c.recordRepo = repo
	})
	if storedErr, exists := c.initErrors["recordRepo"]; exists {
		return nil, storedErr
	}
	return c.recordRepo, nil
}

// StoredCapabilityRepository returns the stored capability repository instance.
func (c *Container) StoredCapabilityRepository() (ledgerUseCase.StoredCapabilityRepository, error) {
	c.storedRepoInit.Do(func() {
		repo, err := c.initStoredCapabilityRepository()
		if err != nil {
			c.initErrors["storedRepo"] = err
			return
		}
		c.storedRepo = repo
	})
	if storedErr, exists := c.initErrors["storedRepo"]; exists {
		return nil, storedErr
	}
	return c.storedRepo, nil
}

// CredentialRepository returns the credential repository instance.
func (c *Container) CredentialRepository() (identityUseCase.CredentialRepository, error) {
	c.credentialRepoInit.Do(func() {
		repo, err := c.initCredentialRepository()
		if err != nil {
			c.initErrors["credentialRepo"] = err
			return
		}
		c.credentialRepo = repo
	})
	if storedErr, exists := c.initErrors["credentialRepo"]; exists {
		return nil, storedErr
	}
	return c.credentialRepo, nil
}

// CredentialUseCase returns the credential use case instance.
func (c *Container) CredentialUseCase() (identityUseCase.CredentialUseCase, error) {
	c.credentialUseCaseInit.Do(func() {
		useCase, err := c.initCredentialUseCase()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
			return
		}
		c.credentialUseCase = useCase
	})
	if storedErr, exists := c.initErrors["credentialUseCase"]; exists {
		return nil, storedErr
	}
	return c.credentialUseCase, nil
}

// CapabilityUseCase returns the capability use case instance.
func (c *Container) CapabilityUseCase() (ledgerUseCase.CapabilityUseCase, error) {
	c.capabilityUseCaseInit.Do(func() {
		useCase, err := c.initCapabilityUseCase()
		if err != nil {
			c.initErrors["capabilityUseCase"] = err
			return
		}
		c.capabilityUseCase = useCase
	})
	if storedErr, exists := c.initErrors["capabilityUseCase"]; exists {
		return nil, storedErr
	}
	return c.capabilityUseCase, nil
}

// RegistrationUseCase returns the registration use case instance.
func (c *Container) RegistrationUseCase() (ledgerUseCase.RegistrationUseCase, error) {
	c.registrationUseCaseInit.Do(func() {
		useCase, err := c.initRegistrationUseCase()
		if err != nil {
			c.initErrors["registrationUseCase"] = err
			return
		}
		c.registrationUseCase = useCase
	})
	if storedErr, exists := c.initErrors["registrationUseCase"]; exists {
		return nil, storedErr
	}
	return c.registrationUseCase, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}

		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.keeper != nil {
		if err := c.keeper.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("reference keeper close: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}
