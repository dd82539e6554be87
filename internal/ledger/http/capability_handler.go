// Package http provides HTTP handlers for capability delegation operations.
package http

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/delegate/internal/errors"
	"github.com/allisson/delegate/internal/httputil"
	identityHttp "github.com/allisson/delegate/internal/identity/http"
	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
	"github.com/allisson/delegate/internal/ledger/http/dto"
	ledgerUseCase "github.com/allisson/delegate/internal/ledger/usecase"
	customValidation "github.com/allisson/delegate/internal/validation"
)

// CapabilityHandler handles HTTP requests for capability operations.
// It coordinates minting, listing, and signer derivation with the
// CapabilityUseCase.
type CapabilityHandler struct {
	capabilityUseCase ledgerUseCase.CapabilityUseCase
	logger            *slog.Logger
}

// NewCapabilityHandler creates a new capability handler with required dependencies.
func NewCapabilityHandler(
	capabilityUseCase ledgerUseCase.CapabilityUseCase,
	logger *slog.Logger,
) *CapabilityHandler {
	return &CapabilityHandler{
		capabilityUseCase: capabilityUseCase,
		logger:            logger,
	}
}

// MintCapabilityHandler mints a capability for the authenticated caller's address.
// POST /v1/capabilities - Requires authentication.
// Returns 201 Created with the sealed token, or 404 when no delegation record
// exists at the caller's address.
func (h *CapabilityHandler) MintCapabilityHandler(c *gin.Context) {
	caller, ok := identityHttp.GetCallerAddress(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.MintCapabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.capabilityUseCase.Mint(c.Request.Context(), caller, req.Label)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := dto.MintCapabilityResponse{
		ID:      output.StoredID.String(),
		Address: caller.String(),
		Token:   output.Token,
		Label:   req.Label,
	}

	c.JSON(http.StatusCreated, response)
}

// ListCapabilitiesHandler lists the authenticated caller's stored capabilities.
// GET /v1/capabilities - Requires authentication.
// Supports offset/limit pagination query parameters.
func (h *CapabilityHandler) ListCapabilitiesHandler(c *gin.Context) {
	caller, ok := identityHttp.GetCallerAddress(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	capabilities, err := h.capabilityUseCase.ListStored(c.Request.Context(), caller, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStoredCapabilitiesToListResponse(capabilities))
}

// DeriveSignerHandler redeems a capability token for a signer.
// POST /v1/signers - Requires authentication.
// Returns 200 OK with the signer's address and public key, 401 for tokens
// that fail authentication, and 404 when the bound delegation record no
// longer exists.
func (h *CapabilityHandler) DeriveSignerHandler(c *gin.Context) {
	if _, ok := identityHttp.GetCallerAddress(c.Request.Context()); !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.DeriveSignerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var payload []byte
	if req.Payload != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.Payload)
		if err != nil {
			httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
			return
		}
		payload = decoded
	}

	input := &ledgerDomain.DeriveSignerInput{
		Token:   req.Token,
		Payload: payload,
	}

	output, err := h.capabilityUseCase.DeriveSigner(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapDeriveSignerToResponse(output))
}

// RegisterRoutes registers the capability routes on the router group.
// The group must already carry the authentication middleware.
func (h *CapabilityHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/capabilities", h.MintCapabilityHandler)
	group.GET("/capabilities", h.ListCapabilitiesHandler)
	group.POST("/signers", h.DeriveSignerHandler)
}
