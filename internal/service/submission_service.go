package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/repository"
)

// ErrSubmissionNotFound covers a missing submission and one the requester
// may not access.
var ErrSubmissionNotFound = errors.New("submission not found")

// ErrAssignmentRequired indicates a submission listing without an assignment.
var ErrAssignmentRequired = errors.New("assignment_id is required")

// ErrAccessDenied indicates the requester's role has no branch for the
// operation at all.
var ErrAccessDenied = errors.New("access denied")

// ScoreOutOfRangeError reports a grade outside the parent assignment's
// score bounds.
type ScoreOutOfRangeError struct {
	Max int
}

func (e ScoreOutOfRangeError) Error() string {
	return fmt.Sprintf("score must be between 0 and %d", e.Max)
}

// SubmissionService orchestrates submission and grading workflows.
type SubmissionService interface {
	Submit(ctx context.Context, studentID uint, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error)
	List(ctx context.Context, viewer Identity, payload dto.SubmissionListRequest) ([]dto.SubmissionResponse, *dto.Pagination, error)
	Get(ctx context.Context, id uint, viewer Identity) (dto.SubmissionResponse, error)
	Grade(ctx context.Context, id, teacherID uint, payload dto.GradeRequest) (dto.SubmissionResponse, error)
	ListMine(ctx context.Context, studentID uint, payload dto.MySubmissionsRequest) (dto.SubmissionListResponse, error)
}

type submissionService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	access      *AccessPolicy
	validator   *validator.Validate
	logger      zerolog.Logger
	now         func() time.Time
}

// NewSubmissionService constructs a SubmissionService instance.
func NewSubmissionService(submissions repository.SubmissionRepository, assignments repository.AssignmentRepository, access *AccessPolicy, validate *validator.Validate, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		submissions: submissions,
		assignments: assignments,
		access:      access,
		validator:   validate,
		logger:      logger.With().Str("component", "submission_service").Logger(),
		now:         time.Now,
	}
}

func (s *submissionService) Submit(ctx context.Context, studentID uint, payload dto.SubmissionCreateRequest) (dto.SubmissionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionResponse{}, err
	}

	assignment, err := s.assignments.GetByID(ctx, payload.AssignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrAssignmentNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	// A draft assignment is as good as absent for students.
	if !assignment.IsPublished() {
		return dto.SubmissionResponse{}, ErrAssignmentNotFound
	}

	enrolled, err := s.access.IsEnrolled(ctx, studentID, assignment.ClassroomID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}
	if !enrolled {
		return dto.SubmissionResponse{}, ErrAssignmentNotFound
	}

	submission := models.Submission{
		AssignmentID: payload.AssignmentID,
		StudentID:    studentID,
		Content:      payload.Content,
		FileName:     payload.FileName,
		FilePath:     payload.FilePath,
		FileSize:     payload.FileSize,
		Status:       models.SubmissionStatusSubmitted,
	}

	if err := s.submissions.Upsert(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	// Reload so the response reflects the upserted row, not the insert attempt.
	stored, err := s.submissions.GetByAssignmentAndStudent(ctx, payload.AssignmentID, studentID)
	if err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Uint("submission_id", stored.ID).Uint("assignment_id", payload.AssignmentID).Msg("assignment submitted")

	return dto.NewSubmissionResponse(stored), nil
}

func (s *submissionService) List(ctx context.Context, viewer Identity, payload dto.SubmissionListRequest) ([]dto.SubmissionResponse, *dto.Pagination, error) {
	if payload.AssignmentID == 0 {
		return nil, nil, ErrAssignmentRequired
	}

	page, limit := normalizePageLimit(payload.Page, payload.Limit)

	switch {
	case viewer.Role == models.RoleTeacher:
		if _, err := s.assignments.GetOwned(ctx, payload.AssignmentID, viewer.ID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrAssignmentNotFound
			}
			return nil, nil, err
		}

		submissions, total, err := s.submissions.ListByAssignment(ctx, payload.AssignmentID, page, limit)
		if err != nil {
			return nil, nil, err
		}

		pagination := dto.NewPagination(total, page, limit)
		return dto.NewSubmissionResponseSlice(submissions), &pagination, nil

	case viewer.IsStudent():
		// Students get their own submission without a pagination envelope.
		submission, err := s.submissions.GetByAssignmentAndStudent(ctx, payload.AssignmentID, viewer.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []dto.SubmissionResponse{}, nil, nil
			}
			return nil, nil, err
		}

		return []dto.SubmissionResponse{dto.NewSubmissionResponse(submission)}, nil, nil

	default:
		return nil, nil, ErrAccessDenied
	}
}

func (s *submissionService) Get(ctx context.Context, id uint, viewer Identity) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	switch {
	case viewer.IsAdmin():
	case viewer.Role == models.RoleTeacher:
		if submission.Assignment.Classroom.TeacherID != viewer.ID {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
	case viewer.IsStudent():
		if submission.StudentID != viewer.ID {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
	default:
		return dto.SubmissionResponse{}, ErrSubmissionNotFound
	}

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) Grade(ctx context.Context, id, teacherID uint, payload dto.GradeRequest) (dto.SubmissionResponse, error) {
	submission, err := s.submissions.GetOwned(ctx, id, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	maxScore := submission.Assignment.MaxScore
	if payload.Score != nil && (*payload.Score < 0 || *payload.Score > maxScore) {
		return dto.SubmissionResponse{}, ScoreOutOfRangeError{Max: maxScore}
	}

	submission.Score = payload.Score
	if payload.Feedback != nil {
		submission.Feedback = *payload.Feedback
	}
	submission.Status = models.SubmissionStatusGraded
	gradedAt := s.now()
	submission.GradedAt = &gradedAt

	if err := s.submissions.Update(ctx, &submission); err != nil {
		return dto.SubmissionResponse{}, err
	}

	s.logger.Info().Uint("submission_id", submission.ID).Msg("submission graded")

	return dto.NewSubmissionResponse(submission), nil
}

func (s *submissionService) ListMine(ctx context.Context, studentID uint, payload dto.MySubmissionsRequest) (dto.SubmissionListResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.SubmissionListResponse{}, err
	}

	page, limit := normalizePageLimit(payload.Page, payload.Limit)

	submissions, total, err := s.submissions.ListByStudent(ctx, repository.MySubmissionFilter{
		StudentID: studentID,
		Status:    payload.Status,
		Page:      page,
		PageSize:  limit,
	})
	if err != nil {
		return dto.SubmissionListResponse{}, err
	}

	return dto.SubmissionListResponse{
		Submissions: dto.NewSubmissionResponseSlice(submissions),
		Pagination:  dto.NewPagination(total, page, limit),
	}, nil
}
