package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ledgerDomain "github.com/allisson/delegate/internal/ledger/domain"
)

func TestMySQLDelegationRecordRepository_CreateAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLDelegationRecordRepository(db)
	record := newTestRecord(t)

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO delegation_records (address, extend_reference, created_at)`,
	)).
		WithArgs(record.Address.String(), record.ExtendReference, record.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(context.Background(), record)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"address", "extend_reference", "created_at"}).
		AddRow(record.Address.String(), record.ExtendReference, record.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT address, extend_reference, created_at`)).
		WithArgs(record.Address.String()).
		WillReturnRows(rows)

	got, err := repo.Get(context.Background(), record.Address)
	require.NoError(t, err)
	assert.Equal(t, record.Address, got.Address)
	assert.Equal(t, record.ExtendReference, got.ExtendReference)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLDelegationRecordRepository_Delete_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLDelegationRecordRepository(db)
	record := newTestRecord(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM delegation_records WHERE address = ?`)).
		WithArgs(record.Address.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), record.Address)
	assert.ErrorIs(t, err, ledgerDomain.ErrDelegationRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLStoredCapabilityRepository_ListByAddress(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewMySQLStoredCapabilityRepository(db)

	addr, err := ledgerDomain.GenerateAddress()
	require.NoError(t, err)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "address", "token", "label", "created_at"}).
		AddRow(uuid.Must(uuid.NewV7()).String(), addr.String(), "token-1", "first", now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, address, token, label, created_at`)).
		WithArgs(addr.String(), 10, 0).
		WillReturnRows(rows)

	capabilities, err := repo.ListByAddress(context.Background(), addr, 0, 10)
	require.NoError(t, err)
	require.Len(t, capabilities, 1)
	assert.Equal(t, "token-1", capabilities[0].Token)
	assert.Equal(t, addr, capabilities[0].Address)

	assert.NoError(t, mock.ExpectationsWereMet())
}
