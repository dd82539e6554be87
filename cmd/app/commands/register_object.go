package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	ledgerUseCase "github.com/allisson/delegate/internal/ledger/usecase"
)

// RunRegisterObject registers a new object address: it creates a delegation
// record with a fresh extend reference and issues the caller credential.
// Outputs the address and plain secret in either text or JSON format.
//
// Requirements: Database must be migrated and accessible.
func RunRegisterObject(
	ctx context.Context,
	registrationUseCase ledgerUseCase.RegistrationUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	logger.Info("registering new object")

	output, err := registrationUseCase.Register(ctx)
	if err != nil {
		return fmt.Errorf("failed to register object: %w", err)
	}

	if format == "json" {
		writeJSON(map[string]string{
			"address": output.Address.String(),
			"secret":  output.Secret,
		}, writer)
	} else {
		_, _ = fmt.Fprintln(writer, "\nObject registered successfully!")
		_, _ = fmt.Fprintf(writer, "Address: %s\n", output.Address.String())
		_, _ = fmt.Fprintf(writer, "Secret: %s\n", output.Secret)
		_, _ = fmt.Fprintln(writer, "\nIMPORTANT: The secret is shown only once. Store it securely.")
	}

	logger.Info("object registered successfully",
		slog.String("address", output.Address.String()),
	)

	return nil
}

// RunDeregisterObject removes an object's delegation record and revokes its
// credential. Capabilities minted for the address stop being redeemable.
func RunDeregisterObject(
	ctx context.Context,
	registrationUseCase ledgerUseCase.RegistrationUseCase,
	logger *slog.Logger,
	writer io.Writer,
	addressStr string,
) error {
	logger.Info("deregistering object", slog.String("address", addressStr))

	address, err := parseAddress(addressStr)
	if err != nil {
		return err
	}

	if err := registrationUseCase.Deregister(ctx, address); err != nil {
		return fmt.Errorf("failed to deregister object: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Object %s deregistered\n", address.String())

	logger.Info("object deregistered successfully",
		slog.String("address", address.String()),
	)

	return nil
}
