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

const confirmQuery = "UPDATE payments SET status='paid', payment_method=?, paid_date=?, updated_at=NOW() WHERE id=? AND status IN ('pending','overdue')"

func TestPaymentConfirm(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	paidAt := time.Now().UTC()
	mock.ExpectExec(regexp.QuoteMeta(confirmQuery)).
		WithArgs("transfer", paidAt, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = NewPaymentRepo(db).Confirm(context.Background(), 3, "transfer", paidAt)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A cancelled or already-paid payment cannot be confirmed again.
func TestPaymentConfirmWrongStateConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	paidAt := now
	mock.ExpectExec(regexp.QuoteMeta(confirmQuery)).
		WithArgs("cash", paidAt, uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT .+ FROM payments WHERE id=\\?").
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "contract_id", "student_id", "payment_type", "amount", "due_date",
			"paid_date", "payment_method", "status", "invoice_number", "note",
			"created_at", "updated_at",
		}).AddRow(3, 1, 1, "rent", 450.0, now, now, "cash", "paid", "INV-20260101-AAAAAAAA", "", now, now))

	err = NewPaymentRepo(db).Confirm(context.Background(), 3, "cash", paidAt)

	assert.ErrorIs(t, err, ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}
