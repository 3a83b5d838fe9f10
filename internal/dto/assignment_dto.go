package dto

import (
	"time"

	"github.com/noah-isme/classroom-api/internal/models"
)

// AssignmentCreateRequest describes the payload for creating an assignment.
type AssignmentCreateRequest struct {
	ClassroomID uint       `json:"classroom_id" validate:"required"`
	Title       string     `json:"title" validate:"required,min=1"`
	Description string     `json:"description"`
	MaxScore    *int       `json:"max_score" validate:"omitempty,min=1"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status" validate:"omitempty,oneof=draft published"`
}

// AssignmentUpdateRequest describes a partial assignment update.
type AssignmentUpdateRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Description *string    `json:"description"`
	MaxScore    *int       `json:"max_score" validate:"omitempty,min=1"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status" validate:"omitempty,oneof=draft published"`
}

// AssignmentListRequest describes list filters and pagination. ClassroomID
// is mandatory; listing assignments across classrooms is not supported.
type AssignmentListRequest struct {
	ClassroomID uint
	Status      string `validate:"omitempty,oneof=draft published"`
	Page        int
	Limit       int
}

// AssignmentResponse is the serialized representation of an assignment.
// ClassroomName is populated only when the classroom was joined.
type AssignmentResponse struct {
	ID            uint       `json:"id"`
	ClassroomID   uint       `json:"classroom_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	MaxScore      int        `json:"max_score"`
	DueDate       *time.Time `json:"due_date"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	ClassroomName string     `json:"classroom_name,omitempty"`
}

// AssignmentListResponse is the paginated assignment listing envelope.
type AssignmentListResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	Pagination  Pagination           `json:"pagination"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	response := AssignmentResponse{
		ID:          model.ID,
		ClassroomID: model.ClassroomID,
		Title:       model.Title,
		Description: model.Description,
		MaxScore:    model.MaxScore,
		DueDate:     model.DueDate,
		Status:      model.Status,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}

	if model.Classroom.ID != 0 {
		response.ClassroomName = model.Classroom.Name
	}

	return response
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}
