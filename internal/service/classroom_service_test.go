package service_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/service"
)

var inviteCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestClassroomCreateGeneratesInviteCode(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher@example.com", models.RoleTeacher)

	classroom, err := env.classrooms.Create(testCtx, teacher.ID, dto.ClassroomCreateRequest{
		Name:    "  Algebra I  ",
		Subject: "math",
	})
	require.NoError(t, err)
	require.Equal(t, "Algebra I", classroom.Name)
	require.Equal(t, teacher.ID, classroom.TeacherID)
	require.Regexp(t, inviteCodePattern, classroom.InviteCode)
}

func TestClassroomListScopesByRole(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice@example.com", models.RoleTeacher)
	bob := env.createUser(t, "bob@example.com", models.RoleTeacher)
	student := env.createUser(t, "student@example.com", models.RoleStudent)
	admin := env.createUser(t, "admin@example.com", models.RoleAdmin)

	mine := env.createClassroom(t, alice.ID, "AAAAAA")
	other := env.createClassroom(t, bob.ID, "BBBBBB")
	env.enroll(t, student.ID, other.ID)

	asTeacher, err := env.classrooms.List(testCtx, teacherIdentity(alice.ID), dto.ClassroomListRequest{})
	require.NoError(t, err)
	require.Len(t, asTeacher.Classrooms, 1)
	require.Equal(t, mine.ID, asTeacher.Classrooms[0].ID)

	asStudent, err := env.classrooms.List(testCtx, studentIdentity(student.ID), dto.ClassroomListRequest{})
	require.NoError(t, err)
	require.Len(t, asStudent.Classrooms, 1)
	require.Equal(t, other.ID, asStudent.Classrooms[0].ID)
	require.Equal(t, int64(1), asStudent.Classrooms[0].StudentCount)

	asAdmin, err := env.classrooms.List(testCtx, adminIdentity(admin.ID), dto.ClassroomListRequest{})
	require.NoError(t, err)
	require.Len(t, asAdmin.Classrooms, 2)
	require.Equal(t, int64(2), asAdmin.Pagination.Total)
}

func TestClassroomGetHidesForeignClassrooms(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", models.RoleTeacher)
	other := env.createUser(t, "other@example.com", models.RoleTeacher)
	enrolled := env.createUser(t, "enrolled@example.com", models.RoleStudent)
	outsider := env.createUser(t, "outsider@example.com", models.RoleStudent)

	classroom := env.createClassroom(t, owner.ID, "ABC123")
	env.enroll(t, enrolled.ID, classroom.ID)

	got, err := env.classrooms.Get(testCtx, classroom.ID, teacherIdentity(owner.ID))
	require.NoError(t, err)
	require.Equal(t, classroom.ID, got.ID)
	require.Equal(t, int64(1), got.StudentCount)

	_, err = env.classrooms.Get(testCtx, classroom.ID, teacherIdentity(other.ID))
	require.ErrorIs(t, err, service.ErrClassroomNotFound)

	_, err = env.classrooms.Get(testCtx, classroom.ID, studentIdentity(outsider.ID))
	require.ErrorIs(t, err, service.ErrClassroomNotFound)

	asEnrolled, err := env.classrooms.Get(testCtx, classroom.ID, studentIdentity(enrolled.ID))
	require.NoError(t, err)
	require.Equal(t, classroom.ID, asEnrolled.ID)
}

func TestClassroomUpdateKeepsAbsentFields(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher@example.com", models.RoleTeacher)
	classroom := env.createClassroom(t, teacher.ID, "ABC123")

	name := "Algebra II"
	updated, err := env.classrooms.Update(testCtx, classroom.ID, teacher.ID, dto.ClassroomUpdateRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Algebra II", updated.Name)
	require.Equal(t, classroom.Subject, updated.Subject)
	require.Equal(t, classroom.InviteCode, updated.InviteCode)
}

func TestClassroomUpdateByNonOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", models.RoleTeacher)
	other := env.createUser(t, "other@example.com", models.RoleTeacher)
	classroom := env.createClassroom(t, owner.ID, "ABC123")

	name := "Hijacked"
	_, err := env.classrooms.Update(testCtx, classroom.ID, other.ID, dto.ClassroomUpdateRequest{Name: &name})
	require.ErrorIs(t, err, service.ErrClassroomNotFound)
}

func TestClassroomDelete(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", models.RoleTeacher)
	other := env.createUser(t, "other@example.com", models.RoleTeacher)
	classroom := env.createClassroom(t, owner.ID, "ABC123")

	require.ErrorIs(t, env.classrooms.Delete(testCtx, classroom.ID, other.ID), service.ErrClassroomNotFound)
	require.NoError(t, env.classrooms.Delete(testCtx, classroom.ID, owner.ID))
	require.ErrorIs(t, env.classrooms.Delete(testCtx, classroom.ID, owner.ID), service.ErrClassroomNotFound)
}

func TestClassroomEnroll(t *testing.T) {
	env := newTestEnv(t)
	teacher := env.createUser(t, "teacher@example.com", models.RoleTeacher)
	student := env.createUser(t, "student@example.com", models.RoleStudent)
	classroom := env.createClassroom(t, teacher.ID, "ABC123")

	joined, err := env.classrooms.Enroll(testCtx, student.ID, dto.EnrollRequest{InviteCode: " abc123 "})
	require.NoError(t, err)
	require.Equal(t, classroom.ID, joined.ID)

	_, err = env.classrooms.Enroll(testCtx, student.ID, dto.EnrollRequest{InviteCode: "ABC123"})
	require.ErrorIs(t, err, service.ErrAlreadyEnrolled)

	_, err = env.classrooms.Enroll(testCtx, student.ID, dto.EnrollRequest{InviteCode: "NOPE00"})
	require.ErrorIs(t, err, service.ErrInviteCodeInvalid)
}

func TestClassroomListStudents(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", models.RoleTeacher)
	other := env.createUser(t, "other@example.com", models.RoleTeacher)
	student := env.createUser(t, "student@example.com", models.RoleStudent)
	classroom := env.createClassroom(t, owner.ID, "ABC123")
	env.enroll(t, student.ID, classroom.ID)

	roster, err := env.classrooms.ListStudents(testCtx, classroom.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	require.Equal(t, student.ID, roster[0].ID)
	require.Equal(t, student.Email, roster[0].Email)

	_, err = env.classrooms.ListStudents(testCtx, classroom.ID, other.ID)
	require.ErrorIs(t, err, service.ErrClassroomNotFound)
}
