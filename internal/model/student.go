package model

import "time"

// Student mirrors the `students` table. A student is linked to the user
// account used for login and, once housed, to a room.
type Student struct {
	ID          uint64     // students.id
	UserID      uint64     // students.user_id (FK users.id)
	StudentCode string     // students.student_code (institutional id, unique)
	FullName    string     // students.full_name
	DateOfBirth *time.Time // students.date_of_birth (nullable)
	Gender      string     // students.gender (Male | Female | Other)
	Status      string     // students.status (active | inactive | graduated)
	RoomID      *uint64    // students.room_id (nullable until housed)
	CreatedAt   time.Time  // students.created_at
	UpdatedAt   time.Time  // students.updated_at
}
