package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/classroom-api/internal/models"
)

// AssignmentFilter describes status filtering and pagination for assignment
// listings within one classroom.
type AssignmentFilter struct {
	ClassroomID uint
	Status      string
	Page        int
	PageSize    int
}

// AssignmentRepository defines persistence operations for assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	ListByClassroom(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, int64, error)
	GetByID(ctx context.Context, id uint) (models.Assignment, error)
	GetOwned(ctx context.Context, id, teacherID uint) (models.Assignment, error)
	Update(ctx context.Context, assignment *models.Assignment) error
	DeleteOwned(ctx context.Context, id, teacherID uint) error
}

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository instantiates a GORM-backed repository.
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepository) ListByClassroom(ctx context.Context, filter AssignmentFilter) ([]models.Assignment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Where("classroom_id = ?", filter.ClassroomID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var assignments []models.Assignment
	if err := query.Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	return assignments, total, nil
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).Preload("Classroom").First(&assignment, id).Error; err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) GetOwned(ctx context.Context, id, teacherID uint) (models.Assignment, error) {
	var assignment models.Assignment
	err := r.db.WithContext(ctx).
		Select("assignments.*").
		Joins("JOIN classrooms ON classrooms.id = assignments.classroom_id").
		Where("assignments.id = ? AND classrooms.teacher_id = ?", id, teacherID).
		First(&assignment).Error
	if err != nil {
		return models.Assignment{}, err
	}

	return assignment, nil
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *assignmentRepository) DeleteOwned(ctx context.Context, id, teacherID uint) error {
	owned := r.db.Model(&models.Classroom{}).
		Select("id").
		Where("teacher_id = ?", teacherID)

	result := r.db.WithContext(ctx).
		Where("id = ? AND classroom_id IN (?)", id, owned).
		Delete(&models.Assignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
