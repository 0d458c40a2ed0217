package model

import "time"

// Request mirrors the `requests` table: maintenance and service requests
// raised by students and worked by staff.
type Request struct {
	ID            uint64     // requests.id
	RequestNumber string     // requests.request_number (unique)
	StudentID     uint64     // requests.student_id (FK students.id)
	RoomID        *uint64    // requests.room_id (FK rooms.id, nullable)
	Type          string     // requests.type (maintenance | room_change | complaint | other)
	Title         string     // requests.title
	Description   string     // requests.description
	Priority      string     // requests.priority (low | medium | high | urgent)
	Status        string     // requests.status (pending | in_progress | resolved | rejected)
	AssignedTo    *uint64    // requests.assigned_to (FK users.id, nullable)
	ResolvedAt    *time.Time // requests.resolved_at (nullable)
	CreatedAt     time.Time  // requests.created_at
	UpdatedAt     time.Time  // requests.updated_at
}
