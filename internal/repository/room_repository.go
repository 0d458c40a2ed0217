package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/dorm-management/internal/model"
)

type RoomRepo struct{ DB *sql.DB }

func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{DB: db} }

const roomColumns = "id,room_number,building_id,room_type,capacity,current_occupancy,status,created_at,updated_at"

func scanRoom(sc interface{ Scan(...any) error }) (model.Room, error) {
	var rm model.Room
	err := sc.Scan(&rm.ID, &rm.RoomNumber, &rm.BuildingID, &rm.RoomType,
		&rm.Capacity, &rm.CurrentOccupancy, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return rm, ErrNotFound
	}
	return rm, err
}

// Create inserts a room and returns its ID.
func (r *RoomRepo) Create(ctx context.Context, rm model.Room) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO rooms (room_number, building_id, room_type, capacity, current_occupancy, status) VALUES (?,?,?,?,?,?)",
		rm.RoomNumber, rm.BuildingID, rm.RoomType, rm.Capacity, rm.CurrentOccupancy, rm.Status)
	if err != nil {
		if isDuplicateErr(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// List returns all rooms, optionally filtered by building.
func (r *RoomRepo) List(ctx context.Context, buildingID uint64) ([]model.Room, error) {
	q := "SELECT " + roomColumns + " FROM rooms"
	args := []any{}
	if buildingID != 0 {
		q += " WHERE building_id=?"
		args = append(args, buildingID)
	}
	q += " ORDER BY room_number"

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Room
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// GetByID fetches a room by id.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (model.Room, error) {
	return scanRoom(r.DB.QueryRowContext(ctx,
		"SELECT "+roomColumns+" FROM rooms WHERE id=? LIMIT 1", id))
}

// Update replaces the mutable fields of a room.
func (r *RoomRepo) Update(ctx context.Context, id uint64, rm model.Room) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE rooms SET room_number=?, building_id=?, room_type=?, capacity=?, current_occupancy=?, status=?, updated_at=NOW() WHERE id=?",
		rm.RoomNumber, rm.BuildingID, rm.RoomType, rm.Capacity, rm.CurrentOccupancy, rm.Status, id)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicate
		}
		return err
	}
	return mustAffect(res)
}

// Delete removes a room row.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM rooms WHERE id=?", id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}
