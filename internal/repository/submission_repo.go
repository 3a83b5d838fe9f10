package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/classroom-api/internal/models"
)

// MySubmissionFilter narrows a student's own submission listing.
type MySubmissionFilter struct {
	StudentID uint
	Status    string
	Page      int
	PageSize  int
}

// SubmissionRepository defines persistence operations for submissions.
type SubmissionRepository interface {
	Upsert(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uint) (models.Submission, error)
	GetOwned(ctx context.Context, id, teacherID uint) (models.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID uint, page, pageSize int) ([]models.Submission, int64, error)
	ListByStudent(ctx context.Context, filter MySubmissionFilter) ([]models.Submission, int64, error)
	Update(ctx context.Context, submission *models.Submission) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates a GORM-backed repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

// Upsert inserts the submission or, when the (assignment, student) pair
// already exists, overwrites content and file fields, forces the status back
// to submitted and refreshes the submission timestamp. Score and feedback
// survive until the teacher re-grades.
func (r *submissionRepository) Upsert(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "assignment_id"}, {Name: "student_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"content":      submission.Content,
			"file_name":    submission.FileName,
			"file_path":    submission.FilePath,
			"file_size":    submission.FileSize,
			"status":       models.SubmissionStatusSubmitted,
			"submitted_at": time.Now(),
		}),
	}).Create(submission).Error
}

func (r *submissionRepository) GetByID(ctx context.Context, id uint) (models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Assignment").
		Preload("Assignment.Classroom").
		First(&submission, id).Error
	if err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) GetOwned(ctx context.Context, id, teacherID uint) (models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).
		Select("submissions.*").
		Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
		Joins("JOIN classrooms ON classrooms.id = assignments.classroom_id").
		Where("submissions.id = ? AND classrooms.teacher_id = ?", id, teacherID).
		Preload("Assignment").
		First(&submission).Error
	if err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) GetByAssignmentAndStudent(ctx context.Context, assignmentID, studentID uint) (models.Submission, error) {
	var submission models.Submission
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if err != nil {
		return models.Submission{}, err
	}

	return submission, nil
}

func (r *submissionRepository) ListByAssignment(ctx context.Context, assignmentID uint, page, pageSize int) ([]models.Submission, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("assignment_id = ?", assignmentID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if pageSize > 0 {
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * pageSize).Limit(pageSize)
	}

	var submissions []models.Submission
	err := query.
		Preload("Student").
		Order("submitted_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (r *submissionRepository) ListByStudent(ctx context.Context, filter MySubmissionFilter) ([]models.Submission, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Submission{}).
		Where("student_id = ?", filter.StudentID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var submissions []models.Submission
	err := query.
		Preload("Assignment").
		Preload("Assignment.Classroom").
		Order("submitted_at DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

func (r *submissionRepository) Update(ctx context.Context, submission *models.Submission) error {
	return r.db.WithContext(ctx).Save(submission).Error
}
