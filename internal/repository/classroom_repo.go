package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/noah-isme/classroom-api/internal/models"
)

// ClassroomFilter describes role scoping, subject filtering and pagination
// for classroom listings.
type ClassroomFilter struct {
	TeacherID *uint
	StudentID *uint
	Subject   string
	Page      int
	PageSize  int
}

// ClassroomWithStats is a classroom row augmented with the owning teacher's
// name and the computed enrollment count.
type ClassroomWithStats struct {
	models.Classroom
	TeacherName  string `json:"teacher_name"`
	StudentCount int64  `json:"student_count"`
}

// ClassroomRepository defines persistence operations for classrooms.
type ClassroomRepository interface {
	Create(ctx context.Context, classroom *models.Classroom) error
	ListWithFilter(ctx context.Context, filter ClassroomFilter) ([]ClassroomWithStats, int64, error)
	GetByID(ctx context.Context, id uint) (ClassroomWithStats, error)
	GetOwned(ctx context.Context, id, teacherID uint) (models.Classroom, error)
	GetByInviteCode(ctx context.Context, code string) (models.Classroom, error)
	Update(ctx context.Context, classroom *models.Classroom) error
	DeleteOwned(ctx context.Context, id, teacherID uint) error
	ListStudents(ctx context.Context, classroomID uint) ([]models.Enrollment, error)
}

type classroomRepository struct {
	db *gorm.DB
}

// NewClassroomRepository instantiates a GORM-backed repository.
func NewClassroomRepository(db *gorm.DB) ClassroomRepository {
	return &classroomRepository{db: db}
}

const classroomStatsSelect = "classrooms.*, users.full_name AS teacher_name, " +
	"(SELECT COUNT(*) FROM enrollments WHERE enrollments.classroom_id = classrooms.id) AS student_count"

func (r *classroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	return r.db.WithContext(ctx).Create(classroom).Error
}

func (r *classroomRepository) ListWithFilter(ctx context.Context, filter ClassroomFilter) ([]ClassroomWithStats, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Classroom{}).
		Joins("JOIN users ON users.id = classrooms.teacher_id")

	if filter.TeacherID != nil {
		query = query.Where("classrooms.teacher_id = ?", *filter.TeacherID)
	}

	if filter.StudentID != nil {
		enrolled := r.db.Model(&models.Enrollment{}).
			Select("classroom_id").
			Where("student_id = ?", *filter.StudentID)
		query = query.Where("classrooms.id IN (?)", enrolled)
	}

	if filter.Subject != "" {
		query = query.Where("classrooms.subject = ?", filter.Subject)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Select(classroomStatsSelect).Order("classrooms.created_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var classrooms []ClassroomWithStats
	if err := query.Find(&classrooms).Error; err != nil {
		return nil, 0, err
	}

	return classrooms, total, nil
}

func (r *classroomRepository) GetByID(ctx context.Context, id uint) (ClassroomWithStats, error) {
	var classroom ClassroomWithStats
	err := r.db.WithContext(ctx).Model(&models.Classroom{}).
		Select(classroomStatsSelect).
		Joins("JOIN users ON users.id = classrooms.teacher_id").
		Where("classrooms.id = ?", id).
		First(&classroom).Error
	if err != nil {
		return ClassroomWithStats{}, err
	}

	return classroom, nil
}

func (r *classroomRepository) GetOwned(ctx context.Context, id, teacherID uint) (models.Classroom, error) {
	var classroom models.Classroom
	err := r.db.WithContext(ctx).
		Where("id = ? AND teacher_id = ?", id, teacherID).
		First(&classroom).Error
	if err != nil {
		return models.Classroom{}, err
	}

	return classroom, nil
}

func (r *classroomRepository) GetByInviteCode(ctx context.Context, code string) (models.Classroom, error) {
	var classroom models.Classroom
	err := r.db.WithContext(ctx).
		Where("invite_code = ?", code).
		First(&classroom).Error
	if err != nil {
		return models.Classroom{}, err
	}

	return classroom, nil
}

func (r *classroomRepository) Update(ctx context.Context, classroom *models.Classroom) error {
	return r.db.WithContext(ctx).Save(classroom).Error
}

func (r *classroomRepository) DeleteOwned(ctx context.Context, id, teacherID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND teacher_id = ?", id, teacherID).
		Delete(&models.Classroom{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *classroomRepository) ListStudents(ctx context.Context, classroomID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("classroom_id = ?", classroomID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, err
	}

	return enrollments, nil
}
