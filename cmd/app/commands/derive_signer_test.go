package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
	ledgerMocks "github.com/allisson/delegate/internal/ledger/http/mocks"
)

func TestRunDeriveSigner(t *testing.T) {
	ctx := context.Background()
	logger := testLogger()
	address := ledgerDomain.Address("0x" + strings.Repeat("ef", 32))
	token := "sealed-token"
	publicKey := []byte("public-key-bytes")

	t.Run("without-payload", func(t *testing.T) {
		mockUseCase := &ledgerMocks.MockCapabilityUseCase{}
		mockUseCase.On("DeriveSigner", ctx, &ledgerDomain.DeriveSignerInput{
			Token: token,
		}).Return(&ledgerDomain.DeriveSignerOutput{
			Address:   address,
			PublicKey: publicKey,
		}, nil)

		var out bytes.Buffer
		err := RunDeriveSigner(ctx, mockUseCase, logger, &out, token, "", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), address.String())
		require.Contains(t, out.String(), hex.EncodeToString(publicKey))
		require.NotContains(t, out.String(), "Signature")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("with-payload", func(t *testing.T) {
		payload := []byte("message to sign")
		signature := []byte("signature-bytes")

		mockUseCase := &ledgerMocks.MockCapabilityUseCase{}
		mockUseCase.On("DeriveSigner", ctx, &ledgerDomain.DeriveSignerInput{
			Token:   token,
			Payload: payload,
		}).Return(&ledgerDomain.DeriveSignerOutput{
			Address:   address,
			PublicKey: publicKey,
			Signature: signature,
		}, nil)

		var out bytes.Buffer
		err := RunDeriveSigner(
			ctx,
			mockUseCase,
			logger,
			&out,
			token,
			base64.StdEncoding.EncodeToString(payload),
			"json",
		)

		require.NoError(t, err)
		require.Contains(t, out.String(), address.String())
		require.Contains(t, out.String(), base64.StdEncoding.EncodeToString(signature))
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-payload-encoding", func(t *testing.T) {
		mockUseCase := &ledgerMocks.MockCapabilityUseCase{}

		var out bytes.Buffer
		err := RunDeriveSigner(ctx, mockUseCase, logger, &out, token, "not-base64!!!", "text")

		require.Error(t, err)
		mockUseCase.AssertNotCalled(t, "DeriveSigner")
	})

	t.Run("invalid-token", func(t *testing.T) {
		mockUseCase := &ledgerMocks.MockCapabilityUseCase{}
		mockUseCase.On("DeriveSigner", ctx, &ledgerDomain.DeriveSignerInput{
			Token: token,
		}).Return(nil, ledgerDomain.ErrInvalidCapability)

		var out bytes.Buffer
		err := RunDeriveSigner(ctx, mockUseCase, logger, &out, token, "", "text")

		require.Error(t, err)
		mockUseCase.AssertExpectations(t)
	})
}
