package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/repository"
)

// AccessPolicy centralises the ownership, enrollment and visibility checks
// every mutating or sensitive read operation performs. Denied access is
// reported the same way as a missing resource so existence never leaks to
// unauthorized callers.
type AccessPolicy struct {
	classrooms  repository.ClassroomRepository
	enrollments repository.EnrollmentRepository
}

// NewAccessPolicy constructs an AccessPolicy instance.
func NewAccessPolicy(classrooms repository.ClassroomRepository, enrollments repository.EnrollmentRepository) *AccessPolicy {
	return &AccessPolicy{classrooms: classrooms, enrollments: enrollments}
}

// OwnsClassroom reports whether the teacher owns the classroom.
func (p *AccessPolicy) OwnsClassroom(ctx context.Context, teacherID, classroomID uint) (bool, error) {
	if _, err := p.classrooms.GetOwned(ctx, classroomID, teacherID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// IsEnrolled reports whether the student holds an enrollment in the classroom.
func (p *AccessPolicy) IsEnrolled(ctx context.Context, studentID, classroomID uint) (bool, error) {
	return p.enrollments.Exists(ctx, studentID, classroomID)
}

// CanViewAssignment reports whether the viewer may see the assignment: the
// owning teacher always, an enrolled student only once it is published, an
// admin unconditionally.
func (p *AccessPolicy) CanViewAssignment(ctx context.Context, assignment models.Assignment, viewer Identity) (bool, error) {
	if viewer.IsAdmin() {
		return true, nil
	}

	if viewer.Role == models.RoleTeacher {
		return assignment.Classroom.TeacherID == viewer.ID, nil
	}

	if !assignment.IsPublished() {
		return false, nil
	}

	return p.IsEnrolled(ctx, viewer.ID, assignment.ClassroomID)
}
