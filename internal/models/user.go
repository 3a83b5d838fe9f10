package models

import "time"

// Role values accepted at registration.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// User represents an account that can own classrooms (teacher) or hold
// enrollments (student). The password column stores a bcrypt hash and is
// never serialized.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	Role      string    `gorm:"size:20;not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsTeacher reports whether the user may own classrooms. Admins are treated
// as teachers throughout the API surface.
func (u User) IsTeacher() bool {
	return u.Role == RoleTeacher || u.Role == RoleAdmin
}
