package app

import (
	"github.com/gin-gonic/gin"

	"github.com/allisson/delegate/internal/http"
	identityHttp "github.com/allisson/delegate/internal/identity/http"
	ledgerHttp "github.com/allisson/delegate/internal/ledger/http"
	"github.com/allisson/delegate/internal/metrics"
)

// initHTTPServer creates the HTTP server with all routes and middleware wired.
func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, err
	}

	credentialUseCase, err := c.CredentialUseCase()
	if err != nil {
		return nil, err
	}

	capabilityUseCase, err := c.CapabilityUseCase()
	if err != nil {
		return nil, err
	}

	logger := c.Logger()

	var metricsMiddleware gin.HandlerFunc
	if c.config.MetricsEnabled {
		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, err
		}
		metricsMiddleware = metrics.HTTPMetricsMiddleware(
			provider.MeterProvider(),
			c.config.MetricsNamespace,
		)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)

	capabilityHandler := ledgerHttp.NewCapabilityHandler(capabilityUseCase, logger)

	server.SetupRouter(http.RouterConfig{
		CORSEnabled:       c.config.CORSEnabled,
		CORSAllowOrigins:  c.config.CORSAllowOrigins,
		MetricsMiddleware: metricsMiddleware,
	}, func(group *gin.RouterGroup) {
		group.Use(identityHttp.AuthenticationMiddleware(credentialUseCase, logger))
		if c.config.RateLimitEnabled {
			group.Use(identityHttp.RateLimitMiddleware(
				c.config.RateLimitRequestsPerSec,
				c.config.RateLimitBurst,
				logger,
			))
		}
		capabilityHandler.RegisterRoutes(group)
	})

	return server, nil
}
