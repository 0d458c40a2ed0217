package model

import "time"

// Room mirrors the `rooms` table.
type Room struct {
	ID               uint64    // rooms.id
	RoomNumber       string    // rooms.room_number (unique within building)
	BuildingID       uint64    // rooms.building_id (FK buildings.id)
	RoomType         string    // rooms.room_type (standard | double | quad | service)
	Capacity         int       // rooms.capacity
	CurrentOccupancy int       // rooms.current_occupancy
	Status           string    // rooms.status (Available | Occupied | Maintenance)
	CreatedAt        time.Time // rooms.created_at
	UpdatedAt        time.Time // rooms.updated_at
}
