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

// MySQLDelegationRecordRepository implements delegation record persistence for MySQL.
type MySQLDelegationRecordRepository struct {
	db *sql.DB
}

// NewMySQLDelegationRecordRepository creates a new MySQL delegation record repository.
func NewMySQLDelegationRecordRepository(db *sql.DB) *MySQLDelegationRecordRepository {
	return &MySQLDelegationRecordRepository{db: db}
}

// Create inserts a new delegation record. The address primary key enforces
// the at-most-once creation guarantee.
func (m *MySQLDelegationRecordRepository) Create(
	ctx context.Context,
	record *ledgerDomain.DelegationRecord,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO delegation_records (address, extend_reference, created_at)
			  VALUES (?, ?, ?)`

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
func (m *MySQLDelegationRecordRepository) Exists(
	ctx context.Context,
	address ledgerDomain.Address,
) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS(SELECT 1 FROM delegation_records WHERE address = ?)`

	var exists bool
	if err := querier.QueryRowContext(ctx, query, address.String()).Scan(&exists); err != nil {
		return false, apperrors.Wrap(err, "failed to check delegation record existence")
	}
	return exists, nil
}

// Get retrieves the delegation record at the address.
func (m *MySQLDelegationRecordRepository) Get(
	ctx context.Context,
	address ledgerDomain.Address,
) (*ledgerDomain.DelegationRecord, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT address, extend_reference, created_at
			  FROM delegation_records
			  WHERE address = ?`

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

// Delete removes the delegation record at the address.
func (m *MySQLDelegationRecordRepository) Delete(
	ctx context.Context,
	address ledgerDomain.Address,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM delegation_records WHERE address = ?`

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

// MySQLStoredCapabilityRepository implements stored capability persistence for MySQL.
type MySQLStoredCapabilityRepository struct {
	db *sql.DB
}

// NewMySQLStoredCapabilityRepository creates a new MySQL stored capability repository.
func NewMySQLStoredCapabilityRepository(db *sql.DB) *MySQLStoredCapabilityRepository {
	return &MySQLStoredCapabilityRepository{db: db}
}

// Create inserts a stored capability into the owning address's storage slot.
func (m *MySQLStoredCapabilityRepository) Create(
	ctx context.Context,
	stored *ledgerDomain.StoredCapability,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO stored_capabilities (id, address, token, label, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		stored.ID.String(),
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
func (m *MySQLStoredCapabilityRepository) Get(
	ctx context.Context,
	id uuid.UUID,
) (*ledgerDomain.StoredCapability, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, address, token, label, created_at
			  FROM stored_capabilities
			  WHERE id = ?`

	var stored ledgerDomain.StoredCapability
	var idStr string
	var addr string

	err := querier.QueryRowContext(ctx, query, id.String()).Scan(
		&idStr,
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

	parsedID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to parse stored capability id")
	}

	stored.ID = parsedID
	stored.Address = ledgerDomain.Address(addr)
	return &stored, nil
}

// ListByAddress retrieves stored capabilities owned by the address, newest
// first, with pagination.
func (m *MySQLStoredCapabilityRepository) ListByAddress(
	ctx context.Context,
	address ledgerDomain.Address,
	offset, limit int,
) ([]*ledgerDomain.StoredCapability, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, address, token, label, created_at
			  FROM stored_capabilities
			  WHERE address = ?
			  ORDER BY created_at DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, address.String(), limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list stored capabilities")
	}
	defer func() { _ = rows.Close() }()

	var capabilities []*ledgerDomain.StoredCapability
	for rows.Next() {
		var stored ledgerDomain.StoredCapability
		var idStr string
		var addr string

		if err := rows.Scan(
			&idStr,
			&addr,
			&stored.Token,
			&stored.Label,
			&stored.CreatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan stored capability")
		}

		parsedID, err := uuid.Parse(idStr)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse stored capability id")
		}

		stored.ID = parsedID
		stored.Address = ledgerDomain.Address(addr)
		capabilities = append(capabilities, &stored)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate stored capabilities")
	}
	return capabilities, nil
}
