package commands

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
	ledgerUseCase "github.com/allisson/delegate/internal/ledger/usecase"
)

// RunDeriveSigner redeems a capability token for its signer authority. When a
// base64-encoded payload is provided it is signed with the derived key and the
// signature is included in the output.
func RunDeriveSigner(
	ctx context.Context,
	capabilityUseCase ledgerUseCase.CapabilityUseCase,
	logger *slog.Logger,
	writer io.Writer,
	token string,
	payloadB64 string,
	format string,
) error {
	logger.Info("deriving signer from capability token")

	var payload []byte
	if payloadB64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(payloadB64)
		if err != nil {
			return fmt.Errorf("failed to decode payload: %w", err)
		}
		payload = decoded
	}

	output, err := capabilityUseCase.DeriveSigner(ctx, &ledgerDomain.DeriveSignerInput{
		Token:   token,
		Payload: payload,
	})
	if err != nil {
		return fmt.Errorf("failed to derive signer: %w", err)
	}

	publicKey := hex.EncodeToString(output.PublicKey)
	signature := ""
	if len(output.Signature) > 0 {
		signature = base64.StdEncoding.EncodeToString(output.Signature)
	}

	if format == "json" {
		result := map[string]string{
			"address":    output.Address.String(),
			"public_key": publicKey,
		}
		if signature != "" {
			result["signature"] = signature
		}
		writeJSON(result, writer)
	} else {
		_, _ = fmt.Fprintln(writer, "\nSigner derived successfully!")
		_, _ = fmt.Fprintf(writer, "Address: %s\n", output.Address.String())
		_, _ = fmt.Fprintf(writer, "Public Key: %s\n", publicKey)
		if signature != "" {
			_, _ = fmt.Fprintf(writer, "Signature: %s\n", signature)
		}
	}

	logger.Info("signer derived successfully",
		slog.String("address", output.Address.String()),
	)

	return nil
}
