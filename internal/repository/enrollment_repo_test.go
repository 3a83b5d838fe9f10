package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/repository"
)

func TestEnrollmentCreateRejectsDuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewEnrollmentRepository(db)
	ctx := context.Background()

	teacher := seedUser(t, db, "teacher@example.com", models.RoleTeacher)
	student := seedUser(t, db, "student@example.com", models.RoleStudent)
	classroom := seedClassroom(t, db, teacher.ID, "ABC123")

	require.NoError(t, repo.Create(ctx, &models.Enrollment{StudentID: student.ID, ClassroomID: classroom.ID}))

	err := repo.Create(ctx, &models.Enrollment{StudentID: student.ID, ClassroomID: classroom.ID})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestEnrollmentExists(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewEnrollmentRepository(db)
	ctx := context.Background()

	teacher := seedUser(t, db, "teacher@example.com", models.RoleTeacher)
	student := seedUser(t, db, "student@example.com", models.RoleStudent)
	classroom := seedClassroom(t, db, teacher.ID, "ABC123")

	exists, err := repo.Exists(ctx, student.ID, classroom.ID)
	require.NoError(t, err)
	require.False(t, exists)

	seedEnrollment(t, db, student.ID, classroom.ID)

	exists, err = repo.Exists(ctx, student.ID, classroom.ID)
	require.NoError(t, err)
	require.True(t, exists)
}
