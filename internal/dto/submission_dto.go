package dto

import (
	"time"

	"github.com/noah-isme/classroom-api/internal/models"
)

// SubmissionCreateRequest describes a student submission. Submitting twice
// for the same assignment overwrites the earlier submission.
type SubmissionCreateRequest struct {
	AssignmentID uint   `json:"assignment_id" validate:"required"`
	Content      string `json:"content"`
	FileName     string `json:"file_name"`
	FilePath     string `json:"file_path"`
	FileSize     *int64 `json:"file_size" validate:"omitempty,min=0"`
}

// GradeRequest describes a grading action. The score upper bound depends on
// the parent assignment and is enforced by the service.
type GradeRequest struct {
	Score    *int    `json:"score"`
	Feedback *string `json:"feedback"`
}

// SubmissionListRequest describes the teacher-facing listing of submissions
// for one assignment.
type SubmissionListRequest struct {
	AssignmentID uint
	Page         int
	Limit        int
}

// MySubmissionsRequest describes a student's listing of their own submissions.
type MySubmissionsRequest struct {
	Status string `validate:"omitempty,oneof=submitted graded"`
	Page   int
	Limit  int
}

// SubmissionResponse is the serialized representation of a submission.
// Joined fields are populated only when the related rows were preloaded.
type SubmissionResponse struct {
	ID              uint       `json:"id"`
	AssignmentID    uint       `json:"assignment_id"`
	StudentID       uint       `json:"student_id"`
	Content         string     `json:"content"`
	FileName        string     `json:"file_name,omitempty"`
	FilePath        string     `json:"file_path,omitempty"`
	FileSize        *int64     `json:"file_size,omitempty"`
	Status          string     `json:"status"`
	Score           *int       `json:"score"`
	Feedback        string     `json:"feedback,omitempty"`
	SubmittedAt     time.Time  `json:"submitted_at"`
	GradedAt        *time.Time `json:"graded_at"`
	StudentName     string     `json:"student_name,omitempty"`
	StudentEmail    string     `json:"student_email,omitempty"`
	AssignmentTitle string     `json:"assignment_title,omitempty"`
	MaxScore        *int       `json:"max_score,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	ClassroomName   string     `json:"classroom_name,omitempty"`
}

// SubmissionListResponse is the paginated submission listing envelope used
// by the teacher branch.
type SubmissionListResponse struct {
	Submissions []SubmissionResponse `json:"submissions"`
	Pagination  Pagination           `json:"pagination"`
}

// NewSubmissionResponse converts a model into a DTO.
func NewSubmissionResponse(model models.Submission) SubmissionResponse {
	response := SubmissionResponse{
		ID:           model.ID,
		AssignmentID: model.AssignmentID,
		StudentID:    model.StudentID,
		Content:      model.Content,
		FileName:     model.FileName,
		FilePath:     model.FilePath,
		FileSize:     model.FileSize,
		Status:       model.Status,
		Score:        model.Score,
		Feedback:     model.Feedback,
		SubmittedAt:  model.SubmittedAt,
		GradedAt:     model.GradedAt,
	}

	if model.Student.ID != 0 {
		response.StudentName = model.Student.FullName
		response.StudentEmail = model.Student.Email
	}

	if model.Assignment.ID != 0 {
		response.AssignmentTitle = model.Assignment.Title
		maxScore := model.Assignment.MaxScore
		response.MaxScore = &maxScore
		response.DueDate = model.Assignment.DueDate
	}

	if model.Assignment.Classroom.ID != 0 {
		response.ClassroomName = model.Assignment.Classroom.Name
	}

	return response
}

// NewSubmissionResponseSlice converts a slice of models into DTOs.
func NewSubmissionResponseSlice(submissions []models.Submission) []SubmissionResponse {
	responses := make([]SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, NewSubmissionResponse(submission))
	}

	return responses
}
