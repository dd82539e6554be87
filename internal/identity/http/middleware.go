package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/delegate/internal/errors"
	identityDomain "github.com/allisson/delegate/internal/identity/domain"
	identityUseCase "github.com/allisson/delegate/internal/identity/usecase"
	"github.com/allisson/delegate/internal/httputil"
	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

// AuthenticationMiddleware authenticates callers via Bearer credentials in the
// Authorization header.
//
// The credential format is "<address>.<secret>": the 0x-prefixed object
// address joined to its plain secret with a dot. The middleware:
//  1. Extracts the Bearer credential from the Authorization header (case-insensitive)
//  2. Splits it into address and secret
//  3. Validates the pair using credentialUseCase.Authenticate()
//  4. Stores the caller address in the request context for handlers via
//     GetCallerAddress()
//
// Error handling:
//   - Missing or malformed Authorization header → 401 Unauthorized
//   - Unknown address or wrong secret → 401 Unauthorized
//   - Revoked credential → 403 Forbidden
func AuthenticationMiddleware(
	credentialUseCase identityUseCase.CredentialUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		credential := authHeader[len(bearerPrefix):]
		addressPart, secret, found := strings.Cut(credential, ".")
		if !found || addressPart == "" || secret == "" {
			logger.Debug("authentication failed: malformed bearer credential")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		address, err := ledgerDomain.NewAddress(addressPart)
		if err != nil {
			logger.Debug("authentication failed: invalid address in credential")
			httputil.HandleErrorGin(c, identityDomain.ErrInvalidCredential, logger)
			c.Abort()
			return
		}

		caller, err := credentialUseCase.Authenticate(c.Request.Context(), address, secret)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		ctx := WithCallerAddress(c.Request.Context(), caller)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("caller_address", caller.String()))

		c.Next()
	}
}
