package service

import "github.com/noah-isme/classroom-api/internal/models"

// Identity is the decoded request identity carried from the JWT middleware
// into every service call.
type Identity struct {
	ID   uint
	Role string
}

// IsTeacher reports whether the identity may act as a classroom owner.
// Admins pass every role gate a teacher passes.
func (i Identity) IsTeacher() bool {
	return i.Role == models.RoleTeacher || i.Role == models.RoleAdmin
}

// IsStudent reports whether the identity is a student.
func (i Identity) IsStudent() bool {
	return i.Role == models.RoleStudent
}

// IsAdmin reports whether the identity is an administrator.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}
