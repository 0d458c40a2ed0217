package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/dorm-management/internal/model"
)

type RequestRepo struct{ DB *sql.DB }

func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{DB: db} }

const requestColumns = "id,request_number,student_id,room_id,type,title,description,priority,status,assigned_to,resolved_at,created_at,updated_at"

func scanRequest(sc interface{ Scan(...any) error }) (model.Request, error) {
	var (
		req        model.Request
		room       sql.NullInt64
		assignedTo sql.NullInt64
		resolvedAt sql.NullTime
	)
	err := sc.Scan(&req.ID, &req.RequestNumber, &req.StudentID, &room,
		&req.Type, &req.Title, &req.Description, &req.Priority, &req.Status,
		&assignedTo, &resolvedAt, &req.CreatedAt, &req.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return req, ErrNotFound
	}
	if err != nil {
		return req, err
	}
	if room.Valid {
		id := uint64(room.Int64)
		req.RoomID = &id
	}
	if assignedTo.Valid {
		id := uint64(assignedTo.Int64)
		req.AssignedTo = &id
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		req.ResolvedAt = &t
	}
	return req, nil
}

// Create inserts a request and returns its ID.
func (r *RequestRepo) Create(ctx context.Context, req model.Request) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO requests (request_number, student_id, room_id, type, title, description, priority, status) VALUES (?,?,?,?,?,?,?,?)",
		req.RequestNumber, req.StudentID, nullableID(req.RoomID),
		req.Type, req.Title, req.Description, req.Priority, req.Status)
	if err != nil {
		if isDuplicateErr(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// List returns all requests, newest first.
func (r *RequestRepo) List(ctx context.Context) ([]model.Request, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+requestColumns+" FROM requests ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// GetByID fetches a request by id.
func (r *RequestRepo) GetByID(ctx context.Context, id uint64) (model.Request, error) {
	return scanRequest(r.DB.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM requests WHERE id=? LIMIT 1", id))
}

// Update replaces the fields a requester may change while the request is
// still open.
func (r *RequestRepo) Update(ctx context.Context, id uint64, req model.Request) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE requests SET type=?, title=?, description=?, priority=?, status=?, updated_at=NOW() WHERE id=?",
		req.Type, req.Title, req.Description, req.Priority, req.Status, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// Assign hands an open request to a staff user and moves it to in_progress.
func (r *RequestRepo) Assign(ctx context.Context, id, staffID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE requests SET assigned_to=?, status='in_progress', updated_at=NOW() WHERE id=? AND status IN ('pending','in_progress')",
		staffID, id)
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

// Resolve closes an in-progress or pending request.
func (r *RequestRepo) Resolve(ctx context.Context, id uint64, resolvedAt time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE requests SET status='resolved', resolved_at=?, updated_at=NOW() WHERE id=? AND status IN ('pending','in_progress')",
		resolvedAt, id)
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

// Delete removes a request row.
func (r *RequestRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM requests WHERE id=?", id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}
