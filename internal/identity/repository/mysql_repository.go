package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/delegate/internal/database"
	apperrors "github.com/allisson/delegate/internal/errors"
	identityDomain "github.com/allisson/delegate/internal/identity/domain"
	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

// MySQLCredentialRepository implements credential persistence for MySQL.
type MySQLCredentialRepository struct {
	db *sql.DB
}

// NewMySQLCredentialRepository creates a new MySQL credential repository.
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db}
}

// Create inserts a new credential. The address unique constraint enforces one
// credential per object address.
func (m *MySQLCredentialRepository) Create(
	ctx context.Context,
	credential *identityDomain.Credential,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO credentials (id, address, secret_hash, is_active, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		credential.ID.String(),
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
func (m *MySQLCredentialRepository) GetByAddress(
	ctx context.Context,
	address ledgerDomain.Address,
) (*identityDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, address, secret_hash, is_active, created_at
			  FROM credentials
			  WHERE address = ?`

	var credential identityDomain.Credential
	var idStr string
	var addr string

	err := querier.QueryRowContext(ctx, query, address.String()).Scan(
		&idStr,
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

	parsedID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse credential id")
	}

	credential.ID = parsedID
	credential.Address = ledgerDomain.Address(addr)
	return &credential, nil
}

// Deactivate marks the credential for the address as inactive.
func (m *MySQLCredentialRepository) Deactivate(
	ctx context.Context,
	address ledgerDomain.Address,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE credentials SET is_active = false WHERE address = ?`

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
