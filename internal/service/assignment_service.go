package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/repository"
)

// ErrAssignmentNotFound covers a missing assignment, one in a classroom the
// requester may not access, and a draft hidden from students.
var ErrAssignmentNotFound = errors.New("assignment not found")

// ErrClassroomRequired indicates an assignment listing without a classroom.
var ErrClassroomRequired = errors.New("classroom_id is required")

// AssignmentService orchestrates assignment workflows within a classroom.
type AssignmentService interface {
	Create(ctx context.Context, teacherID uint, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	List(ctx context.Context, viewer Identity, payload dto.AssignmentListRequest) (dto.AssignmentListResponse, error)
	Get(ctx context.Context, id uint, viewer Identity) (dto.AssignmentResponse, error)
	Update(ctx context.Context, id, teacherID uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error)
	Delete(ctx context.Context, id, teacherID uint) error
}

type assignmentService struct {
	assignments repository.AssignmentRepository
	access      *AccessPolicy
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(assignments repository.AssignmentRepository, access *AccessPolicy, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		assignments: assignments,
		access:      access,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) Create(ctx context.Context, teacherID uint, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	owns, err := s.access.OwnsClassroom(ctx, teacherID, payload.ClassroomID)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}
	if !owns {
		return dto.AssignmentResponse{}, ErrClassroomNotFound
	}

	maxScore := 100
	if payload.MaxScore != nil {
		maxScore = *payload.MaxScore
	}

	status := payload.Status
	if status == "" {
		status = models.AssignmentStatusDraft
	}

	assignment := models.Assignment{
		ClassroomID: payload.ClassroomID,
		Title:       payload.Title,
		Description: payload.Description,
		MaxScore:    maxScore,
		DueDate:     payload.DueDate,
		Status:      status,
	}

	if err := s.assignments.Create(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Uint("classroom_id", assignment.ClassroomID).Msg("assignment created")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) List(ctx context.Context, viewer Identity, payload dto.AssignmentListRequest) (dto.AssignmentListResponse, error) {
	if payload.ClassroomID == 0 {
		return dto.AssignmentListResponse{}, ErrClassroomRequired
	}

	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentListResponse{}, err
	}

	if err := s.checkClassroomAccess(ctx, viewer, payload.ClassroomID); err != nil {
		return dto.AssignmentListResponse{}, err
	}

	page, limit := normalizePageLimit(payload.Page, payload.Limit)

	status := payload.Status
	// Students only ever see published assignments, whatever they filter by.
	if viewer.IsStudent() {
		status = models.AssignmentStatusPublished
	}

	assignments, total, err := s.assignments.ListByClassroom(ctx, repository.AssignmentFilter{
		ClassroomID: payload.ClassroomID,
		Status:      status,
		Page:        page,
		PageSize:    limit,
	})
	if err != nil {
		return dto.AssignmentListResponse{}, err
	}

	return dto.AssignmentListResponse{
		Assignments: dto.NewAssignmentResponseSlice(assignments),
		Pagination:  dto.NewPagination(total, page, limit),
	}, nil
}

func (s *assignmentService) Get(ctx context.Context, id uint, viewer Identity) (dto.AssignmentResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	visible, err := s.access.CanViewAssignment(ctx, assignment, viewer)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}
	if !visible {
		return dto.AssignmentResponse{}, ErrAssignmentNotFound
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Update(ctx context.Context, id, teacherID uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.assignments.GetOwned(ctx, id, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}

	if payload.Title != nil {
		assignment.Title = *payload.Title
	}
	if payload.Description != nil {
		assignment.Description = *payload.Description
	}
	if payload.MaxScore != nil {
		assignment.MaxScore = *payload.MaxScore
	}
	if payload.DueDate != nil {
		assignment.DueDate = payload.DueDate
	}
	if payload.Status != nil {
		assignment.Status = *payload.Status
	}

	if err := s.assignments.Update(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	s.logger.Info().Uint("assignment_id", assignment.ID).Msg("assignment updated")

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *assignmentService) Delete(ctx context.Context, id, teacherID uint) error {
	if err := s.assignments.DeleteOwned(ctx, id, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}

	s.logger.Info().Uint("assignment_id", id).Msg("assignment deleted")

	return nil
}

func (s *assignmentService) checkClassroomAccess(ctx context.Context, viewer Identity, classroomID uint) error {
	switch {
	case viewer.IsAdmin():
		return nil
	case viewer.Role == models.RoleTeacher:
		owns, err := s.access.OwnsClassroom(ctx, viewer.ID, classroomID)
		if err != nil {
			return err
		}
		if !owns {
			return ErrClassroomNotFound
		}
	case viewer.IsStudent():
		enrolled, err := s.access.IsEnrolled(ctx, viewer.ID, classroomID)
		if err != nil {
			return err
		}
		if !enrolled {
			return ErrClassroomNotFound
		}
	default:
		return ErrClassroomNotFound
	}

	return nil
}
