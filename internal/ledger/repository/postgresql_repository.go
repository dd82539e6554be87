// Package repository implements persistence for delegation records and stored
// capabilities with dual database support (PostgreSQL and MySQL).
//
// Delegation records are written once at registration and only read
// afterwards; stored capabilities are append-only slots owned by the minting
// address.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/delegate/internal/database"
	apperrors "github.com/allisson/delegate/internal/errors"
	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

// PostgreSQLDelegationRecordRepository implements delegation record persistence for PostgreSQL.
type PostgreSQLDelegationRecordRepository struct {
	db *sql.DB
}

// NewPostgreSQLDelegationRecordRepository creates a new PostgreSQL delegation record repository.
func NewPostgreSQLDelegationRecordRepository(db *sql.DB) *PostgreSQLDelegationRecordRepository {
	return &PostgreSQLDelegationRecordRepository{db: db}
}

// Create inserts a new delegation record. The address primary key enforces
// the at-most-once creation guarantee.
func (p *PostgreSQLDelegationRecordRepository) Create(
	ctx context.Context,
	record *ledgerDomain.DelegationRecord,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO delegation_records (address, extend_reference, created_at)
			  VALUES ($1, $2, $3)`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.Address.String(),
		record.ExtendReference,
		record.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create delegation record")
	}
	return nil
}

// Exists reports whether a delegation record exists at the address.
func (p *PostgreSQLDelegationRecordRepository) Exists(
	ctx context.Context,
	address ledgerDomain.Address,
) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS(SELECT 1 FROM delegation_records WHERE address = $1)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, address.String()).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check delegation record existence")
	}
	return exists, nil
}

// Get retrieves the delegation record at the address.
func (p *PostgreSQLDelegationRecordRepository) Get(
	ctx context.Context,
	address ledgerDomain.Address,
) (*ledgerDomain.DelegationRecord, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT address, extend_reference, created_at
			  FROM delegation_records
			  WHERE address = $1`

	var record ledgerDomain.DelegationRecord
	var addr string

	err := querier.QueryRowContext(ctx, query, address.String()).Scan(
		&addr,
		&record.ExtendReference,
		&record.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerDomain.ErrDelegationRecordNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get delegation record")
	}

	record.Address = ledgerDomain.Address(addr)
	return &record, nil
}

// Delete removes the delegation record at the address. This is the
// registration collaborator's removal path; capability operations never
// call it.
func (p *PostgreSQLDelegationRecordRepository) Delete(
	ctx context.Context,
	address ledgerDomain.Address,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM delegation_records WHERE address = $1`

	result, err := querier.ExecContext(ctx, query, address.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to delete delegation record")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to read affected rows")
	}
	if affected == 0 {
		return ledgerDomain.ErrDelegationRecordNotFound
	}
	return nil
}

// PostgreSQLStoredCapabilityRepository implements stored capability persistence for PostgreSQL.
type PostgreSQLStoredCapabilityRepository struct {
	db *sql.DB
}

// NewPostgreSQLStoredCapabilityRepository creates a new PostgreSQL stored capability repository.
func NewPostgreSQLStoredCapabilityRepository(db *sql.DB) *PostgreSQLStoredCapabilityRepository {
	return &PostgreSQLStoredCapabilityRepository{db: db}
}

// Create inserts a stored capability into the owning address's storage slot.
func (p *PostgreSQLStoredCapabilityRepository) Create(
	ctx context.Context,
	stored *ledgerDomain.StoredCapability,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO stored_capabilities (id, address, token, label, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		stored.ID,
		stored.Address.String(),
		stored.Token,
		stored.Label,
		stored.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create stored capability")
	}
	return nil
}

// Get retrieves a stored capability by its ID.
func (p *PostgreSQLStoredCapabilityRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*ledgerDomain.StoredCapability, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, address, token, label, created_at
			  FROM stored_capabilities
			  WHERE id = $1`

	var stored ledgerDomain.StoredCapability
	var addr string

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&stored.ID,
		&addr,
		&stored.Token,
		&stored.Label,
		&stored.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerDomain.ErrStoredCapabilityNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get stored capability")
	}

	stored.Address = ledgerDomain.Address(addr)
	return &stored, nil
}

// ListByAddress retrieves stored capabilities owned by the address, newest
// first, with pagination.
func (p *PostgreSQLStoredCapabilityRepository) ListByAddress(
	ctx context.Context,
	address ledgerDomain.Address,
	offset, limit int,
) ([]*ledgerDomain.StoredCapability, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, address, token, label, created_at
			  FROM stored_capabilities
			  WHERE address = $1
			  ORDER BY created_at DESC
			  OFFSET $2 LIMIT $3`

	rows, err := querier.QueryContext(ctx, query, address.String(), offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list stored capabilities")
	}
	defer func() { _ = rows.Close() }()

	var capabilities []*ledgerDomain.StoredCapability
	for rows.Next() {
		var stored ledgerDomain.StoredCapability
		var addr string

		if err := rows.Scan(
			&stored.ID,
			&addr,
			&stored.Token,
			&stored.Label,
			&stored.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan stored capability")
		}

		stored.Address = ledgerDomain.Address(addr)
		capabilities = append(capabilities, &stored)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate stored capabilities")
	}
	return capabilities, nil
}
