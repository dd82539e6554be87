package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	identityHttp "github.com/allisson/delegate/internal/identity/http"
	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
	"github.com/allisson/delegate/internal/ledger/http/mocks"
)

func newHandlerTestRouter(
	uc *mocks.MockCapabilityUseCase,
	caller ledgerDomain.Address,
	authenticated bool,
) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewCapabilityHandler(uc, logger)

	router := gin.New()
	if authenticated {
		router.Use(func(c *gin.Context) {
			ctx := identityHttp.WithCallerAddress(c.Request.Context(), caller)
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
	handler.RegisterRoutes(router.Group("/v1"))
	return router
}

func TestCapabilityHandler_MintCapabilityHandler(t *testing.T) {
	addr, err := ledgerDomain.GenerateAddress()
	require.NoError(t, err)

	t.Run("Success_Mint", func(t *testing.T) {
		uc := &mocks.MockCapabilityUseCase{}
		output := &ledgerDomain.MintOutput{
			Token:    "sealed-token",
			StoredID: uuid.Must(uuid.NewV7()),
		}
		uc.On("Mint", mock.Anything, addr, "treasury").Return(output, nil)

		router := newHandlerTestRouter(uc, addr, true)

		body := bytes.NewBufferString(`{"label":"treasury"}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/capabilities", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "sealed-token", response["token"])
		assert.Equal(t, addr.String(), response["address"])
		assert.Equal(t, "treasury", response["label"])
	})

	t.Run("Failure_NoDelegationRecord", func(t *testing.T) {
		uc := &mocks.MockCapabilityUseCase{}
		uc.On("Mint", mock.Anything, addr, "").
			Return(nil, ledgerDomain.ErrDelegationRecordNotFound)

		router := newHandlerTestRouter(uc, addr, true)

		body := bytes.NewBufferString(`{}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/capabilities", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failure_Unauthenticated", func(t *testing.T) {
		uc := &mocks.MockCapabilityUseCase{}
		router := newHandlerTestRouter(uc, addr, false)

		body := bytes.NewBufferString(`{}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/capabilities", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		uc.AssertNotCalled(t, "Mint", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCapabilityHandler_ListCapabilitiesHandler(t *testing.T) {
	addr, err := ledgerDomain.GenerateAddress()
	require.NoError(t, err)

	t.Run("Success_List", func(t *testing.T) {
		uc := &mocks.MockCapabilityUseCase{}
		stored := []*ledgerDomain.StoredCapability{
			{
				ID:        uuid.Must(uuid.NewV7()),
				Address:   addr,
				Token:     "sealed-token",
				Label:     "treasury",
				CreatedAt: time.Now().UTC(),
			},
		}
		uc.On("ListStored", mock.Anything, addr, 0, 50).Return(stored, nil)

		router := newHandlerTestRouter(uc, addr, true)

		req := httptest.NewRequest(http.MethodGet, "/v1/capabilities", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Data []map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Data, 1)
		assert.Equal(t, addr.String(), response.Data[0]["address"])
	})

	t.Run("Failure_InvalidPagination", func(t *testing.T) {
		uc := &mocks.MockCapabilityUseCase{}
		router := newHandlerTestRouter(uc, addr, true)

		req := httptest.NewRequest(http.MethodGet, "/v1/capabilities?limit=9999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCapabilityHandler_DeriveSignerHandler(t *testing.T) {
	addr, err := ledgerDomain.GenerateAddress()
	require.NoError(t, err)

	t.Run("Success_DeriveWithPayload", func(t *testing.T) {
		uc := &mocks.MockCapabilityUseCase{}
		payload := []byte("transaction-payload")
		output := &ledgerDomain.DeriveSignerOutput{
			Address:   addr,
			PublicKey: []byte("public-key"),
			Signature: []byte("signature"),
		}
		uc.On("DeriveSigner", mock.Anything, &ledgerDomain.DeriveSignerInput{
			Token:   "sealed-token",
			Payload: payload,
		}).Return(output, nil)

		router := newHandlerTestRouter(uc, addr, true)

		body, err := json.Marshal(map[string]string{
			"token":   "sealed-token",
			"payload": base64.StdEncoding.EncodeToString(payload),
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/v1/signers", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var response map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, addr.String(), response["address"])
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("public-key")), response["public_key"])
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("signature")), response["signature"])
	})

	t.Run("Failure_InvalidToken", func(t *testing.T) {
		uc := &mocks.MockCapabilityUseCase{}
		uc.On("DeriveSigner", mock.Anything, mock.AnythingOfType("*domain.DeriveSignerInput")).
			Return(nil, ledgerDomain.ErrInvalidCapability)

		router := newHandlerTestRouter(uc, addr, true)

		body := bytes.NewBufferString(`{"token":"forged"}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/signers", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failure_RecordRemoved", func(t *testing.T) {
		uc := &mocks.MockCapabilityUseCase{}
		uc.On("DeriveSigner", mock.Anything, mock.AnythingOfType("*domain.DeriveSignerInput")).
			Return(nil, ledgerDomain.ErrDelegationRecordNotFound)

		router := newHandlerTestRouter(uc, addr, true)

		body := bytes.NewBufferString(`{"token":"sealed-token"}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/signers", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failure_MissingToken", func(t *testing.T) {
		uc := &mocks.MockCapabilityUseCase{}
		router := newHandlerTestRouter(uc, addr, true)

		body := bytes.NewBufferString(`{}`)
		req := httptest.NewRequest(http.MethodPost, "/v1/signers", body)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "DeriveSigner", mock.Anything, mock.Anything)
	})
}
