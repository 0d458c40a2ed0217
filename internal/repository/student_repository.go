package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/dorm-management/internal/model"
)

type StudentRepo struct{ DB *sql.DB }

func NewStudentRepo(db *sql.DB) *StudentRepo { return &StudentRepo{DB: db} }

const studentColumns = "id,user_id,student_code,full_name,date_of_birth,gender,status,room_id,created_at,updated_at"

func scanStudent(sc interface{ Scan(...any) error }) (model.Student, error) {
	var (
		s    model.Student
		dob  sql.NullTime
		room sql.NullInt64
	)
	err := sc.Scan(&s.ID, &s.UserID, &s.StudentCode, &s.FullName, &dob,
		&s.Gender, &s.Status, &room, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return s, ErrNotFound
	}
	if err != nil {
		return s, err
	}
	if dob.Valid {
		t := dob.Time
		s.DateOfBirth = &t
	}
	if room.Valid {
		id := uint64(room.Int64)
		s.RoomID = &id
	}
	return s, nil
}

// Create inserts a student profile and returns its ID.
func (r *StudentRepo) Create(ctx context.Context, s model.Student) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO students (user_id, student_code, full_name, date_of_birth, gender, status, room_id) VALUES (?,?,?,?,?,?,?)",
		s.UserID, s.StudentCode, s.FullName, s.DateOfBirth, s.Gender, s.Status, nullableID(s.RoomID))
	if err != nil {
		if isDuplicateErr(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// List returns all students.
func (r *StudentRepo) List(ctx context.Context) ([]model.Student, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+studentColumns+" FROM students ORDER BY full_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Student
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches a student by id.
func (r *StudentRepo) GetByID(ctx context.Context, id uint64) (model.Student, error) {
	return scanStudent(r.DB.QueryRowContext(ctx,
		"SELECT "+studentColumns+" FROM students WHERE id=? LIMIT 1", id))
}

// GetByUserID fetches the student profile attached to a user account.
func (r *StudentRepo) GetByUserID(ctx context.Context, userID uint64) (model.Student, error) {
	return scanStudent(r.DB.QueryRowContext(ctx,
		"SELECT "+studentColumns+" FROM students WHERE user_id=? LIMIT 1", userID))
}

// Update replaces the mutable fields of a student profile.
func (r *StudentRepo) Update(ctx context.Context, id uint64, s model.Student) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE students SET full_name=?, date_of_birth=?, gender=?, status=?, room_id=?, updated_at=NOW() WHERE id=?",
		s.FullName, s.DateOfBirth, s.Gender, s.Status, nullableID(s.RoomID), id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// Delete removes a student row.
func (r *StudentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM students WHERE id=?", id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}
