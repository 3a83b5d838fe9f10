package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/repository"
)

// ErrClassroomNotFound covers both a genuinely missing classroom and one the
// requester may not access; callers cannot tell the two apart.
var ErrClassroomNotFound = errors.New("classroom not found")

// ErrInviteCodeInvalid indicates an enrollment attempt with an unknown code.
var ErrInviteCodeInvalid = errors.New("invalid invite code")

// ErrAlreadyEnrolled indicates a second enrollment for the same pair.
var ErrAlreadyEnrolled = errors.New("already enrolled in this classroom")

// ErrInviteCodeTaken indicates a generated invite code collided with an
// existing one. There is no retry loop; the caller may simply try again.
var ErrInviteCodeTaken = errors.New("invite code already exists")

const (
	inviteCodeLength  = 6
	inviteCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ClassroomService orchestrates classroom lifecycle and enrollment workflows.
type ClassroomService interface {
	Create(ctx context.Context, teacherID uint, payload dto.ClassroomCreateRequest) (dto.ClassroomResponse, error)
	List(ctx context.Context, viewer Identity, payload dto.ClassroomListRequest) (dto.ClassroomListResponse, error)
	Get(ctx context.Context, id uint, viewer Identity) (dto.ClassroomDetailResponse, error)
	Update(ctx context.Context, id, teacherID uint, payload dto.ClassroomUpdateRequest) (dto.ClassroomResponse, error)
	Delete(ctx context.Context, id, teacherID uint) error
	Enroll(ctx context.Context, studentID uint, payload dto.EnrollRequest) (dto.ClassroomResponse, error)
	ListStudents(ctx context.Context, classroomID, teacherID uint) ([]dto.StudentResponse, error)
}

type classroomService struct {
	classrooms  repository.ClassroomRepository
	enrollments repository.EnrollmentRepository
	access      *AccessPolicy
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewClassroomService constructs a ClassroomService instance.
func NewClassroomService(classrooms repository.ClassroomRepository, enrollments repository.EnrollmentRepository, access *AccessPolicy, validate *validator.Validate, logger zerolog.Logger) ClassroomService {
	return &classroomService{
		classrooms:  classrooms,
		enrollments: enrollments,
		access:      access,
		validator:   validate,
		logger:      logger.With().Str("component", "classroom_service").Logger(),
	}
}

func (s *classroomService) Create(ctx context.Context, teacherID uint, payload dto.ClassroomCreateRequest) (dto.ClassroomResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassroomResponse{}, err
	}

	code, err := generateInviteCode()
	if err != nil {
		return dto.ClassroomResponse{}, fmt.Errorf("failed to generate invite code: %w", err)
	}

	classroom := models.Classroom{
		Name:        strings.TrimSpace(payload.Name),
		Description: payload.Description,
		Subject:     payload.Subject,
		InviteCode:  code,
		TeacherID:   teacherID,
	}

	if err := s.classrooms.Create(ctx, &classroom); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.ClassroomResponse{}, ErrInviteCodeTaken
		}
		return dto.ClassroomResponse{}, err
	}

	s.logger.Info().Uint("classroom_id", classroom.ID).Uint("teacher_id", teacherID).Msg("classroom created")

	return dto.NewClassroomResponse(classroom), nil
}

func (s *classroomService) List(ctx context.Context, viewer Identity, payload dto.ClassroomListRequest) (dto.ClassroomListResponse, error) {
	page, limit := normalizePageLimit(payload.Page, payload.Limit)

	filter := repository.ClassroomFilter{
		Subject:  payload.Subject,
		Page:     page,
		PageSize: limit,
	}

	// Teachers see owned classrooms, students enrolled ones, admins all.
	switch viewer.Role {
	case models.RoleTeacher:
		teacherID := viewer.ID
		filter.TeacherID = &teacherID
	case models.RoleStudent:
		studentID := viewer.ID
		filter.StudentID = &studentID
	}

	rows, total, err := s.classrooms.ListWithFilter(ctx, filter)
	if err != nil {
		return dto.ClassroomListResponse{}, err
	}

	return dto.ClassroomListResponse{
		Classrooms: dto.NewClassroomDetailResponseSlice(rows),
		Pagination: dto.NewPagination(total, page, limit),
	}, nil
}

func (s *classroomService) Get(ctx context.Context, id uint, viewer Identity) (dto.ClassroomDetailResponse, error) {
	row, err := s.classrooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassroomDetailResponse{}, ErrClassroomNotFound
		}
		return dto.ClassroomDetailResponse{}, err
	}

	switch viewer.Role {
	case models.RoleTeacher:
		if row.TeacherID != viewer.ID {
			return dto.ClassroomDetailResponse{}, ErrClassroomNotFound
		}
	case models.RoleStudent:
		enrolled, err := s.access.IsEnrolled(ctx, viewer.ID, id)
		if err != nil {
			return dto.ClassroomDetailResponse{}, err
		}
		if !enrolled {
			return dto.ClassroomDetailResponse{}, ErrClassroomNotFound
		}
	}

	return dto.NewClassroomDetailResponse(row), nil
}

func (s *classroomService) Update(ctx context.Context, id, teacherID uint, payload dto.ClassroomUpdateRequest) (dto.ClassroomResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassroomResponse{}, err
	}

	classroom, err := s.classrooms.GetOwned(ctx, id, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassroomResponse{}, ErrClassroomNotFound
		}
		return dto.ClassroomResponse{}, err
	}

	if payload.Name != nil {
		classroom.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Description != nil {
		classroom.Description = *payload.Description
	}
	if payload.Subject != nil {
		classroom.Subject = *payload.Subject
	}

	if err := s.classrooms.Update(ctx, &classroom); err != nil {
		return dto.ClassroomResponse{}, err
	}

	s.logger.Info().Uint("classroom_id", classroom.ID).Msg("classroom updated")

	return dto.NewClassroomResponse(classroom), nil
}

func (s *classroomService) Delete(ctx context.Context, id, teacherID uint) error {
	if err := s.classrooms.DeleteOwned(ctx, id, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassroomNotFound
		}
		return err
	}

	s.logger.Info().Uint("classroom_id", id).Msg("classroom deleted")

	return nil
}

func (s *classroomService) Enroll(ctx context.Context, studentID uint, payload dto.EnrollRequest) (dto.ClassroomResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ClassroomResponse{}, err
	}

	classroom, err := s.classrooms.GetByInviteCode(ctx, strings.ToUpper(strings.TrimSpace(payload.InviteCode)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ClassroomResponse{}, ErrInviteCodeInvalid
		}
		return dto.ClassroomResponse{}, err
	}

	enrollment := models.Enrollment{
		StudentID:   studentID,
		ClassroomID: classroom.ID,
	}

	if err := s.enrollments.Create(ctx, &enrollment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.ClassroomResponse{}, ErrAlreadyEnrolled
		}
		return dto.ClassroomResponse{}, err
	}

	s.logger.Info().Uint("classroom_id", classroom.ID).Uint("student_id", studentID).Msg("student enrolled")

	return dto.NewClassroomResponse(classroom), nil
}

func (s *classroomService) ListStudents(ctx context.Context, classroomID, teacherID uint) ([]dto.StudentResponse, error) {
	owns, err := s.access.OwnsClassroom(ctx, teacherID, classroomID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, ErrClassroomNotFound
	}

	enrollments, err := s.classrooms.ListStudents(ctx, classroomID)
	if err != nil {
		return nil, err
	}

	return dto.NewStudentResponseSlice(enrollments), nil
}

// generateInviteCode returns a 6-character uppercase base-36 code from a
// cryptographic random source. Uniqueness is enforced by the database, not
// checked here.
func generateInviteCode() (string, error) {
	buf := make([]byte, inviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	code := make([]byte, inviteCodeLength)
	for i, b := range buf {
		code[i] = inviteCodeCharset[int(b)%len(inviteCodeCharset)]
	}

	return string(code), nil
}

func normalizePageLimit(page, limit int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	return page, limit
}
