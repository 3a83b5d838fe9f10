package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/classroom-api/internal/models"
)

// EnrollmentRepository defines persistence operations for enrollments.
// Duplicate pairs are rejected by the composite unique index, not checked
// up front.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Exists(ctx context.Context, studentID, classroomID uint) (bool, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository instantiates a GORM-backed repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Create(enrollment).Error
}

func (r *enrollmentRepository) Exists(ctx context.Context, studentID, classroomID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("student_id = ? AND classroom_id = ?", studentID, classroomID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
