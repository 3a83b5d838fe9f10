package models

import "time"

// Classroom is owned by exactly one teacher and joined by students through
// enrollments. The invite code is generated once at creation.
type Classroom struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Subject     string    `gorm:"size:100" json:"subject"`
	InviteCode  string    `gorm:"size:10;uniqueIndex;not null" json:"invite_code"`
	TeacherID   uint      `gorm:"not null;index" json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Teacher     User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
