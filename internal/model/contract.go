package model

import "time"

// Contract mirrors the `contracts` table. A contract binds a student to a
// room for a period and carries the agreed rates. Status moves
// draft -> active (on sign) -> expired/terminated.
type Contract struct {
	ID              uint64     // contracts.id
	ContractNumber  string     // contracts.contract_number (unique)
	StudentID       uint64     // contracts.student_id (FK students.id)
	RoomID          uint64     // contracts.room_id (FK rooms.id)
	StartDate       time.Time  // contracts.start_date
	EndDate         time.Time  // contracts.end_date
	MonthlyRent     float64    // contracts.monthly_rent
	Deposit         float64    // contracts.deposit
	ElectricityRate float64    // contracts.electricity_rate
	WaterRate       float64    // contracts.water_rate
	Status          string     // contracts.status (draft | active | expired | terminated)
	Terms           string     // contracts.terms
	SignedAt        *time.Time // contracts.signed_at (nullable until signed)
	CreatedBy       *uint64    // contracts.created_by (FK users.id, nullable)
	CreatedAt       time.Time  // contracts.created_at
	UpdatedAt       time.Time  // contracts.updated_at
}
