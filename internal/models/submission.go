package models

import "time"

// Submission status values.
const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

// Submission holds a student's answer for an assignment. The composite
// unique index enforces one submission per student per assignment; repeat
// submits upsert onto the same row.
type Submission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssignmentID uint       `gorm:"not null;index;uniqueIndex:idx_submission_pair" json:"assignment_id"`
	StudentID    uint       `gorm:"not null;index;uniqueIndex:idx_submission_pair" json:"student_id"`
	Content      string     `gorm:"type:text" json:"content"`
	FileName     string     `gorm:"size:255" json:"file_name"`
	FilePath     string     `gorm:"size:500" json:"file_path"`
	FileSize     *int64     `json:"file_size"`
	Status       string     `gorm:"size:20;not null;default:submitted" json:"status"`
	Score        *int       `json:"score"`
	Feedback     string     `gorm:"type:text" json:"feedback"`
	SubmittedAt  time.Time  `gorm:"autoCreateTime" json:"submitted_at"`
	GradedAt     *time.Time `json:"graded_at"`
	Assignment   Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Student      User       `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsGraded reports whether a teacher has graded the submission.
func (s Submission) IsGraded() bool {
	return s.Status == SubmissionStatusGraded
}
