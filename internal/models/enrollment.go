package models

import "time"

// Enrollment joins a student to a classroom. The composite unique index
// guarantees a student enrolls in a given classroom at most once; the
// database rejecting the second insert is the only race guard.
type Enrollment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StudentID   uint      `gorm:"not null;index;uniqueIndex:idx_enrollment_pair" json:"student_id"`
	ClassroomID uint      `gorm:"not null;index;uniqueIndex:idx_enrollment_pair" json:"classroom_id"`
	EnrolledAt  time.Time `gorm:"autoCreateTime" json:"enrolled_at"`
	Student     User      `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Classroom   Classroom `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
