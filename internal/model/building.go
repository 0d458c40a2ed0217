package model

import "time"

// Building mirrors the `buildings` table.
type Building struct {
	ID          uint64    // buildings.id
	Name        string    // buildings.name (unique)
	Code        string    // buildings.code (unique short code, e.g. "B1")
	Address     string    // buildings.address
	Description string    // buildings.description
	TotalFloors int       // buildings.total_floors
	TotalRooms  int       // buildings.total_rooms
	ManagerID   *uint64   // buildings.manager_id (FK users.id, nullable)
	Status      string    // buildings.status (active | maintenance | closed)
	CreatedAt   time.Time // buildings.created_at
	UpdatedAt   time.Time // buildings.updated_at
}
