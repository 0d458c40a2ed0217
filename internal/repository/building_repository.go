package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/dorm-management/internal/model"
)

type BuildingRepo struct{ DB *sql.DB }

func NewBuildingRepo(db *sql.DB) *BuildingRepo { return &BuildingRepo{DB: db} }

const buildingColumns = "id,name,code,address,description,total_floors,total_rooms,manager_id,status,created_at,updated_at"

func scanBuilding(sc interface{ Scan(...any) error }) (model.Building, error) {
	var (
		b       model.Building
		manager sql.NullInt64
	)
	err := sc.Scan(&b.ID, &b.Name, &b.Code, &b.Address, &b.Description,
		&b.TotalFloors, &b.TotalRooms, &manager, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrNotFound
	}
	if err != nil {
		return b, err
	}
	if manager.Valid {
		id := uint64(manager.Int64)
		b.ManagerID = &id
	}
	return b, nil
}

// Create inserts a building and returns its ID.
func (r *BuildingRepo) Create(ctx context.Context, b model.Building) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO buildings (name, code, address, description, total_floors, total_rooms, manager_id, status) VALUES (?,?,?,?,?,?,?,?)",
		b.Name, b.Code, b.Address, b.Description, b.TotalFloors, b.TotalRooms, nullableID(b.ManagerID), b.Status)
	if err != nil {
		if isDuplicateErr(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// List returns all buildings.
func (r *BuildingRepo) List(ctx context.Context) ([]model.Building, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+buildingColumns+" FROM buildings ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Building
	for rows.Next() {
		b, err := scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID fetches a building by id.
func (r *BuildingRepo) GetByID(ctx context.Context, id uint64) (model.Building, error) {
	return scanBuilding(r.DB.QueryRowContext(ctx,
		"SELECT "+buildingColumns+" FROM buildings WHERE id=? LIMIT 1", id))
}

// Update replaces the mutable fields of a building.
func (r *BuildingRepo) Update(ctx context.Context, id uint64, b model.Building) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE buildings SET name=?, code=?, address=?, description=?, total_floors=?, total_rooms=?, manager_id=?, status=?, updated_at=NOW() WHERE id=?",
		b.Name, b.Code, b.Address, b.Description, b.TotalFloors, b.TotalRooms, nullableID(b.ManagerID), b.Status, id)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicate
		}
		return err
	}
	return mustAffect(res)
}

// Delete removes a building row.
func (r *BuildingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM buildings WHERE id=?", id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

// nullableID converts an optional FK into a driver-friendly value.
func nullableID(id *uint64) any {
	if id == nil {
		return nil
	}
	return *id
}
