package dto

import (
	"time"

	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/repository"
)

// ClassroomCreateRequest describes the payload for creating a classroom.
type ClassroomCreateRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
	Subject     string `json:"subject"`
}

// ClassroomUpdateRequest describes a partial classroom update; absent fields
// keep their prior value.
type ClassroomUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Subject     *string `json:"subject"`
}

// EnrollRequest describes an invite-code redemption.
type EnrollRequest struct {
	InviteCode string `json:"invite_code" validate:"required"`
}

// ClassroomListRequest describes list filters and pagination.
type ClassroomListRequest struct {
	Subject string
	Page    int
	Limit   int
}

// ClassroomResponse is the serialized representation of a classroom.
type ClassroomResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Subject     string    `json:"subject"`
	InviteCode  string    `json:"invite_code"`
	TeacherID   uint      `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClassroomDetailResponse augments a classroom with the owning teacher's name
// and the computed enrollment count.
type ClassroomDetailResponse struct {
	ClassroomResponse
	TeacherName  string `json:"teacher_name"`
	StudentCount int64  `json:"student_count"`
}

// ClassroomListResponse is the paginated classroom listing envelope.
type ClassroomListResponse struct {
	Classrooms []ClassroomDetailResponse `json:"classrooms"`
	Pagination Pagination                `json:"pagination"`
}

// StudentResponse is one roster entry of an enrolled student.
type StudentResponse struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// NewClassroomResponse converts a model into a DTO.
func NewClassroomResponse(model models.Classroom) ClassroomResponse {
	return ClassroomResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Subject:     model.Subject,
		InviteCode:  model.InviteCode,
		TeacherID:   model.TeacherID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewClassroomDetailResponse converts an augmented repository row into a DTO.
func NewClassroomDetailResponse(row repository.ClassroomWithStats) ClassroomDetailResponse {
	return ClassroomDetailResponse{
		ClassroomResponse: NewClassroomResponse(row.Classroom),
		TeacherName:       row.TeacherName,
		StudentCount:      row.StudentCount,
	}
}

// NewClassroomDetailResponseSlice converts a slice of augmented rows into DTOs.
func NewClassroomDetailResponseSlice(rows []repository.ClassroomWithStats) []ClassroomDetailResponse {
	responses := make([]ClassroomDetailResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, NewClassroomDetailResponse(row))
	}

	return responses
}

// NewStudentResponse converts an enrollment with its preloaded student.
func NewStudentResponse(enrollment models.Enrollment) StudentResponse {
	return StudentResponse{
		ID:         enrollment.Student.ID,
		Email:      enrollment.Student.Email,
		FullName:   enrollment.Student.FullName,
		EnrolledAt: enrollment.EnrolledAt,
	}
}

// NewStudentResponseSlice converts a slice of enrollments into roster entries.
func NewStudentResponseSlice(enrollments []models.Enrollment) []StudentResponse {
	responses := make([]StudentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, NewStudentResponse(enrollment))
	}

	return responses
}
