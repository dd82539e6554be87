package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	ledgerUseCase "github.com/allisson/delegate/internal/ledger/usecase"
)

// RunMintCapability mints a signer capability for a registered object address
// and outputs the sealed token in either text or JSON format.
//
// Requirements: The address must hold a delegation record.
func RunMintCapability(
	ctx context.Context,
	capabilityUseCase ledgerUseCase.CapabilityUseCase,
	logger *slog.Logger,
	writer io.Writer,
	addressStr string,
	label string,
	format string,
) error {
	logger.Info("minting capability", slog.String("address", addressStr))

	address, err := parseAddress(addressStr)
	if err != nil {
		return err
	}

	output, err := capabilityUseCase.Mint(ctx, address, label)
	if err != nil {
		return fmt.Errorf("failed to mint capability: %w", err)
	}

	if format == "json" {
		writeJSON(map[string]string{
			"id":      output.StoredID.String(),
			"address": address.String(),
			"token":   output.Token,
		}, writer)
	} else {
		_, _ = fmt.Fprintln(writer, "\nCapability minted successfully!")
		_, _ = fmt.Fprintf(writer, "ID: %s\n", output.StoredID.String())
		_, _ = fmt.Fprintf(writer, "Address: %s\n", address.String())
		_, _ = fmt.Fprintf(writer, "Token: %s\n", output.Token)
	}

	logger.Info("capability minted successfully",
		slog.String("address", address.String()),
		slog.String("stored_id", output.StoredID.String()),
	)

	return nil
}
