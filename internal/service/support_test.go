package service_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/classroom-api/internal/database"
	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/repository"
	"github.com/noah-isme/classroom-api/internal/service"
)

// testEnv wires every service against one in-memory database so scenarios
// can cross service boundaries the way real requests do.
type testEnv struct {
	db          *gorm.DB
	auth        service.AuthService
	classrooms  service.ClassroomService
	assignments service.AssignmentService
	submissions service.SubmissionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	userRepo := repository.NewUserRepository(db)
	classroomRepo := repository.NewClassroomRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)

	access := service.NewAccessPolicy(classroomRepo, enrollmentRepo)

	return &testEnv{
		db:          db,
		auth:        service.NewAuthService(userRepo, validate, "test-secret", time.Hour, logger),
		classrooms:  service.NewClassroomService(classroomRepo, enrollmentRepo, access, validate, logger),
		assignments: service.NewAssignmentService(assignmentRepo, access, validate, logger),
		submissions: service.NewSubmissionService(submissionRepo, assignmentRepo, access, validate, logger),
	}
}

func (e *testEnv) createUser(t *testing.T, email, role string) models.User {
	t.Helper()

	user := models.User{
		Email:    email,
		Password: "hash",
		FullName: "Test " + role,
		Role:     role,
	}
	require.NoError(t, e.db.Create(&user).Error)

	return user
}

func (e *testEnv) createClassroom(t *testing.T, teacherID uint, code string) models.Classroom {
	t.Helper()

	classroom := models.Classroom{
		Name:       "Algebra I",
		Subject:    "math",
		InviteCode: code,
		TeacherID:  teacherID,
	}
	require.NoError(t, e.db.Create(&classroom).Error)

	return classroom
}

func (e *testEnv) createAssignment(t *testing.T, classroomID uint, status string) models.Assignment {
	t.Helper()

	assignment := models.Assignment{
		ClassroomID: classroomID,
		Title:       "Homework 1",
		MaxScore:    100,
		Status:      status,
	}
	require.NoError(t, e.db.Create(&assignment).Error)

	return assignment
}

func (e *testEnv) enroll(t *testing.T, studentID, classroomID uint) {
	t.Helper()

	require.NoError(t, e.db.Create(&models.Enrollment{StudentID: studentID, ClassroomID: classroomID}).Error)
}

func teacherIdentity(id uint) service.Identity {
	return service.Identity{ID: id, Role: models.RoleTeacher}
}

func studentIdentity(id uint) service.Identity {
	return service.Identity{ID: id, Role: models.RoleStudent}
}

func adminIdentity(id uint) service.Identity {
	return service.Identity{ID: id, Role: models.RoleAdmin}
}

var testCtx = context.Background()
