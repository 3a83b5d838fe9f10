package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/repository"
)

func TestClassroomListWithFilterScopesByRole(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewClassroomRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice@example.com", models.RoleTeacher)
	bob := seedUser(t, db, "bob@example.com", models.RoleTeacher)
	student := seedUser(t, db, "student@example.com", models.RoleStudent)

	mine := seedClassroom(t, db, alice.ID, "AAAAAA")
	other := seedClassroom(t, db, bob.ID, "BBBBBB")
	seedEnrollment(t, db, student.ID, other.ID)

	owned, total, err := repo.ListWithFilter(ctx, repository.ClassroomFilter{TeacherID: &alice.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, owned, 1)
	require.Equal(t, mine.ID, owned[0].ID)
	require.Equal(t, alice.FullName, owned[0].TeacherName)

	enrolled, total, err := repo.ListWithFilter(ctx, repository.ClassroomFilter{StudentID: &student.ID, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, enrolled, 1)
	require.Equal(t, other.ID, enrolled[0].ID)
	require.Equal(t, int64(1), enrolled[0].StudentCount)

	all, total, err := repo.ListWithFilter(ctx, repository.ClassroomFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, all, 2)
}

func TestClassroomListWithFilterBySubject(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewClassroomRepository(db)
	ctx := context.Background()

	teacher := seedUser(t, db, "teacher@example.com", models.RoleTeacher)
	seedClassroom(t, db, teacher.ID, "AAAAAA")

	science := models.Classroom{Name: "Biology", Subject: "science", InviteCode: "CCCCCC", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&science).Error)

	rows, total, err := repo.ListWithFilter(ctx, repository.ClassroomFilter{Subject: "science", Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	require.Equal(t, science.ID, rows[0].ID)
}

func TestClassroomDeleteOwnedRequiresOwnership(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewClassroomRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com", models.RoleTeacher)
	other := seedUser(t, db, "other@example.com", models.RoleTeacher)
	classroom := seedClassroom(t, db, owner.ID, "ABC123")

	require.ErrorIs(t, repo.DeleteOwned(ctx, classroom.ID, other.ID), gorm.ErrRecordNotFound)
	require.NoError(t, repo.DeleteOwned(ctx, classroom.ID, owner.ID))

	_, err := repo.GetByID(ctx, classroom.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClassroomGetByInviteCode(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewClassroomRepository(db)
	ctx := context.Background()

	teacher := seedUser(t, db, "teacher@example.com", models.RoleTeacher)
	classroom := seedClassroom(t, db, teacher.ID, "XYZ789")

	found, err := repo.GetByInviteCode(ctx, "XYZ789")
	require.NoError(t, err)
	require.Equal(t, classroom.ID, found.ID)

	_, err = repo.GetByInviteCode(ctx, "NOPE00")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestClassroomListStudentsPreloadsRoster(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewClassroomRepository(db)
	ctx := context.Background()

	teacher := seedUser(t, db, "teacher@example.com", models.RoleTeacher)
	first := seedUser(t, db, "first@example.com", models.RoleStudent)
	second := seedUser(t, db, "second@example.com", models.RoleStudent)
	classroom := seedClassroom(t, db, teacher.ID, "ABC123")

	seedEnrollment(t, db, first.ID, classroom.ID)
	seedEnrollment(t, db, second.ID, classroom.ID)

	roster, err := repo.ListStudents(ctx, classroom.ID)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	for _, enrollment := range roster {
		require.NotZero(t, enrollment.Student.ID)
		require.NotEmpty(t, enrollment.Student.Email)
	}
}
