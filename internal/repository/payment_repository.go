package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/dorm-management/internal/model"
)

type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

const paymentColumns = "id,contract_id,student_id,payment_type,amount,due_date,paid_date,payment_method,status,invoice_number,note,created_at,updated_at"

func scanPayment(sc interface{ Scan(...any) error }) (model.Payment, error) {
	var (
		p        model.Payment
		paidDate sql.NullTime
	)
	err := sc.Scan(&p.ID, &p.ContractID, &p.StudentID, &p.PaymentType,
		&p.Amount, &p.DueDate, &paidDate, &p.PaymentMethod, &p.Status,
		&p.InvoiceNumber, &p.Note, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrNotFound
	}
	if err != nil {
		return p, err
	}
	if paidDate.Valid {
		t := paidDate.Time
		p.PaidDate = &t
	}
	return p, nil
}

func (r *PaymentRepo) queryList(ctx context.Context, q string, args ...any) ([]model.Payment, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Create inserts a payment and returns its ID.
func (r *PaymentRepo) Create(ctx context.Context, p model.Payment) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO payments (contract_id, student_id, payment_type, amount, due_date, payment_method, status, invoice_number, note) VALUES (?,?,?,?,?,?,?,?,?)",
		p.ContractID, p.StudentID, p.PaymentType, p.Amount, p.DueDate,
		p.PaymentMethod, p.Status, p.InvoiceNumber, p.Note)
	if err != nil {
		if isDuplicateErr(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// List returns all payments, newest due date first.
func (r *PaymentRepo) List(ctx context.Context) ([]model.Payment, error) {
	return r.queryList(ctx, "SELECT "+paymentColumns+" FROM payments ORDER BY due_date DESC")
}

// ListByContract returns the payments attached to one contract.
func (r *PaymentRepo) ListByContract(ctx context.Context, contractID uint64) ([]model.Payment, error) {
	return r.queryList(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE contract_id=? ORDER BY due_date", contractID)
}

// ListOverdue returns payments that are overdue, or still pending past
// their due date.
func (r *PaymentRepo) ListOverdue(ctx context.Context) ([]model.Payment, error) {
	return r.queryList(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE status='overdue' OR (status='pending' AND due_date < NOW()) ORDER BY due_date")
}

// GetByID fetches a payment by id.
func (r *PaymentRepo) GetByID(ctx context.Context, id uint64) (model.Payment, error) {
	return scanPayment(r.DB.QueryRowContext(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE id=? LIMIT 1", id))
}

// Update replaces the mutable fields of a payment.
func (r *PaymentRepo) Update(ctx context.Context, id uint64, p model.Payment) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE payments SET payment_type=?, amount=?, due_date=?, payment_method=?, status=?, note=?, updated_at=NOW() WHERE id=?",
		p.PaymentType, p.Amount, p.DueDate, p.PaymentMethod, p.Status, p.Note, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// Confirm marks a pending or overdue payment as paid, recording the method
// and paid date. Confirming a paid or cancelled payment is a conflict.
func (r *PaymentRepo) Confirm(ctx context.Context, id uint64, method string, paidAt time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE payments SET status='paid', payment_method=?, paid_date=?, updated_at=NOW() WHERE id=? AND status IN ('pending','overdue')",
		method, paidAt, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

// Delete removes a payment row.
func (r *PaymentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM payments WHERE id=?", id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}
