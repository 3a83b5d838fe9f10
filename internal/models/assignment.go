package models

import "time"

// Assignment status values. Students only ever see published assignments.
const (
	AssignmentStatusDraft     = "draft"
	AssignmentStatusPublished = "published"
)

// Assignment belongs to exactly one classroom and is mutable only by the
// teacher owning that classroom.
type Assignment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ClassroomID uint       `gorm:"not null;index" json:"classroom_id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	MaxScore    int        `gorm:"not null;default:100" json:"max_score"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `gorm:"size:20;not null;default:draft" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Classroom   Classroom  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsPublished reports whether students may see and submit to the assignment.
func (a Assignment) IsPublished() bool {
	return a.Status == AssignmentStatusPublished
}
