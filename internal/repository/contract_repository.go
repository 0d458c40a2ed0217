package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/dorm-management/internal/model"
)

type ContractRepo struct{ DB *sql.DB }

func NewContractRepo(db *sql.DB) *ContractRepo { return &ContractRepo{DB: db} }

const contractColumns = "id,contract_number,student_id,room_id,start_date,end_date,monthly_rent,deposit,electricity_rate,water_rate,status,terms,signed_at,created_by,created_at,updated_at"

func scanContract(sc interface{ Scan(...any) error }) (model.Contract, error) {
	var (
		c         model.Contract
		signedAt  sql.NullTime
		createdBy sql.NullInt64
	)
	err := sc.Scan(&c.ID, &c.ContractNumber, &c.StudentID, &c.RoomID,
		&c.StartDate, &c.EndDate, &c.MonthlyRent, &c.Deposit,
		&c.ElectricityRate, &c.WaterRate, &c.Status, &c.Terms,
		&signedAt, &createdBy, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrNotFound
	}
	if err != nil {
		return c, err
	}
	if signedAt.Valid {
		t := signedAt.Time
		c.SignedAt = &t
	}
	if createdBy.Valid {
		id := uint64(createdBy.Int64)
		c.CreatedBy = &id
	}
	return c, nil
}

// Create inserts a contract in draft status and returns its ID.
func (r *ContractRepo) Create(ctx context.Context, c model.Contract) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO contracts (contract_number, student_id, room_id, start_date, end_date, monthly_rent, deposit, electricity_rate, water_rate, status, terms, created_by) VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
		c.ContractNumber, c.StudentID, c.RoomID, c.StartDate, c.EndDate,
		c.MonthlyRent, c.Deposit, c.ElectricityRate, c.WaterRate,
		c.Status, c.Terms, nullableID(c.CreatedBy))
	if err != nil {
		if isDuplicateErr(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// List returns all contracts, newest first.
func (r *ContractRepo) List(ctx context.Context) ([]model.Contract, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+contractColumns+" FROM contracts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID fetches a contract by id.
func (r *ContractRepo) GetByID(ctx context.Context, id uint64) (model.Contract, error) {
	return scanContract(r.DB.QueryRowContext(ctx,
		"SELECT "+contractColumns+" FROM contracts WHERE id=? LIMIT 1", id))
}

// Update replaces the mutable fields of a contract.
func (r *ContractRepo) Update(ctx context.Context, id uint64, c model.Contract) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE contracts SET start_date=?, end_date=?, monthly_rent=?, deposit=?, electricity_rate=?, water_rate=?, status=?, terms=?, updated_at=NOW() WHERE id=?",
		c.StartDate, c.EndDate, c.MonthlyRent, c.Deposit,
		c.ElectricityRate, c.WaterRate, c.Status, c.Terms, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// Sign moves a draft contract to active and stamps signed_at. Only drafts
// can be signed; anything else is a state conflict.
func (r *ContractRepo) Sign(ctx context.Context, id uint64, signedAt time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE contracts SET status='active', signed_at=?, updated_at=NOW() WHERE id=? AND status='draft'",
		signedAt, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Distinguish missing from non-draft.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

// Delete removes a contract row.
func (r *ContractRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM contracts WHERE id=?", id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}
