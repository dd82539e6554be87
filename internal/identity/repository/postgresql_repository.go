// Package repository implements credential persistence with dual database
// support (PostgreSQL and MySQL).
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/delegate/internal/database"
	apperrors "github.com/allisson/delegate/internal/errors"
	identityDomain "github.com/allisson/delegate/internal/identity/domain"
	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

// PostgreSQLCredentialRepository implements credential persistence for PostgreSQL.
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQL credential repository.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db}
}

// Create inserts a new credential. The address unique constraint enforces one
// credential per object address.
func (p *PostgreSQLCredentialRepository) Create(
	ctx context.Context,
	credential *identityDomain.Credential,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO credentials (id, address, secret_hash, is_active, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		credential.ID,
		credential.Address.String(),
		credential.SecretHash,
		credential.IsActive,
		credential.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create credential")
	}
	return nil
}

// GetByAddress retrieves the credential for an object address.
func (p *PostgreSQLCredentialRepository) GetByAddress(
	ctx context.Context,
	address ledgerDomain.Address,
) (*identityDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, address, secret_hash, is_active, created_at
			  FROM credentials
			  WHERE address = $1`

	var credential identityDomain.Credential
	var addr string

	err := querier.QueryRowContext(ctx, query, address.String()).Scan(
		&credential.ID,
		&addr,
		&credential.SecretHash,
		&credential.IsActive,
		&credential.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, identityDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential")
	}

	credential.Address = ledgerDomain.Address(addr)
	return &credential, nil
}

// Deactivate marks the credential for the address as inactive.
func (p *PostgreSQLCredentialRepository) Deactivate(
	ctx context.Context,
	address ledgerDomain.Address,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE credentials SET is_active = false WHERE address = $1`

	result, err := querier.ExecContext(ctx, query, address.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to deactivate credential")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return identityDomain.ErrCredentialNotFound
	}
	return nil
}
