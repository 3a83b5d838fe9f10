package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/classroom-api/internal/dto"
	"github.com/noah-isme/classroom-api/internal/middleware"
	"github.com/noah-isme/classroom-api/internal/models"
	"github.com/noah-isme/classroom-api/internal/service"
	"github.com/noah-isme/classroom-api/internal/utils"
)

// ClassroomHandler manages classroom and enrollment endpoints.
type ClassroomHandler struct {
	service service.ClassroomService
	logger  zerolog.Logger
}

// NewClassroomHandler builds a classroom handler instance.
func NewClassroomHandler(service service.ClassroomService, logger zerolog.Logger) *ClassroomHandler {
	return &ClassroomHandler{
		service: service,
		logger:  logger.With().Str("component", "classroom_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. The group is
// expected to already carry the JWT middleware.
func (h *ClassroomHandler) Register(router fiber.Router) {
	teacherOnly := middleware.RequireRole(models.RoleTeacher, models.RoleAdmin)
	studentOnly := middleware.RequireRole(models.RoleStudent)

	router.Post("", teacherOnly, h.create)
	router.Get("", h.list)
	router.Post("/enroll", studentOnly, h.enroll)
	router.Get("/:id", h.get)
	router.Put("/:id", teacherOnly, h.update)
	router.Delete("/:id", teacherOnly, h.delete)
	router.Get("/:id/students", teacherOnly, h.listStudents)
}

func (h *ClassroomHandler) create(c *fiber.Ctx) error {
	var payload dto.ClassroomCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	classroom, err := h.service.Create(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "Classroom created successfully", classroom)
}

func (h *ClassroomHandler) list(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	result, err := h.service.List(c.Context(), identityFromContext(c), dto.ClassroomListRequest{
		Subject: c.Query("subject"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "classrooms retrieved", result)
}

func (h *ClassroomHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	classroom, err := h.service.Get(c.Context(), id, identityFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "classroom retrieved", classroom)
}

func (h *ClassroomHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ClassroomUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	classroom, err := h.service.Update(c.Context(), id, userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Classroom updated successfully", classroom)
}

func (h *ClassroomHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.Context(), id, userIDFromContext(c)); err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Classroom deleted successfully", nil)
}

func (h *ClassroomHandler) enroll(c *fiber.Ctx) error {
	var payload dto.EnrollRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	classroom, err := h.service.Enroll(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "Enrolled successfully", classroom)
}

func (h *ClassroomHandler) listStudents(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	students, err := h.service.ListStudents(c.Context(), id, userIDFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *ClassroomHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrClassroomNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Classroom not found")
	case errors.Is(err, service.ErrInviteCodeInvalid):
		return utils.SendError(c, fiber.StatusNotFound, "Invalid invite code")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		return utils.SendError(c, fiber.StatusConflict, "Already enrolled in this classroom")
	case errors.Is(err, service.ErrInviteCodeTaken):
		return utils.SendError(c, fiber.StatusConflict, "Invite code already exists")
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
