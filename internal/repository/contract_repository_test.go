package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signQuery = "UPDATE contracts SET status='active', signed_at=?, updated_at=NOW() WHERE id=? AND status='draft'"

var contractCols = []string{
	"id", "contract_number", "student_id", "room_id", "start_date", "end_date",
	"monthly_rent", "deposit", "electricity_rate", "water_rate", "status", "terms",
	"signed_at", "created_by", "created_at", "updated_at",
}

func contractRow(id uint64, status string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(contractCols).
		AddRow(id, "CT-20260101-AAAAAAAA", 1, 1, now, now.AddDate(1, 0, 0),
			450.0, 900.0, 0.3, 0.1, status, "", nil, nil, now, now)
}

func TestContractSign(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	signedAt := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta(signQuery)).
		WithArgs(signedAt, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewContractRepo(db).Sign(context.Background(), 5, signedAt)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Signing an already-active contract affects zero rows; the follow-up read
// distinguishes a state conflict from a missing contract.
func TestContractSignNonDraftConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	signedAt := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta(signQuery)).
		WithArgs(signedAt, uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM contracts WHERE id=\\?").
		WithArgs(uint64(5)).
		WillReturnRows(contractRow(5, "active"))

	err = NewContractRepo(db).Sign(context.Background(), 5, signedAt)

	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContractSignMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	signedAt := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta(signQuery)).
		WithArgs(signedAt, uint64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM contracts WHERE id=\\?").
		WithArgs(uint64(404)).
		WillReturnRows(sqlmock.NewRows(contractCols))

	err = NewContractRepo(db).Sign(context.Background(), 404, signedAt)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
