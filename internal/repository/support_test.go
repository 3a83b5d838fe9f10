package repository_test

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/classroom-api/internal/database"
	"github.com/noah-isme/classroom-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()

	user := models.User{
		Email:    email,
		Password: "hash",
		FullName: "Test " + role,
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func seedClassroom(t *testing.T, db *gorm.DB, teacherID uint, code string) models.Classroom {
	t.Helper()

	classroom := models.Classroom{
		Name:       "Algebra I",
		Subject:    "math",
		InviteCode: code,
		TeacherID:  teacherID,
	}
	require.NoError(t, db.Create(&classroom).Error)

	return classroom
}

func seedAssignment(t *testing.T, db *gorm.DB, classroomID uint, status string) models.Assignment {
	t.Helper()

	assignment := models.Assignment{
		ClassroomID: classroomID,
		Title:       "Homework 1",
		MaxScore:    100,
		Status:      status,
	}
	require.NoError(t, db.Create(&assignment).Error)

	return assignment
}

func seedEnrollment(t *testing.T, db *gorm.DB, studentID, classroomID uint) models.Enrollment {
	t.Helper()

	enrollment := models.Enrollment{StudentID: studentID, ClassroomID: classroomID}
	require.NoError(t, db.Create(&enrollment).Error)

	return enrollment
}
