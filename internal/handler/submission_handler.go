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

// SubmissionHandler manages submission and grading endpoints.
type SubmissionHandler struct {
	service service.SubmissionService
	logger  zerolog.Logger
}

// NewSubmissionHandler builds a submission handler instance.
func NewSubmissionHandler(service service.SubmissionService, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		service: service,
		logger:  logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group. The static
// my-submissions route must come before the :id wildcard.
func (h *SubmissionHandler) Register(router fiber.Router) {
	teacherOnly := middleware.RequireRole(models.RoleTeacher, models.RoleAdmin)
	studentOnly := middleware.RequireRole(models.RoleStudent)

	router.Post("", studentOnly, h.submit)
	router.Get("", h.list)
	router.Get("/my-submissions", studentOnly, h.listMine)
	router.Get("/:id", h.get)
	router.Post("/:id/grade", teacherOnly, h.grade)
}

func (h *SubmissionHandler) submit(c *fiber.Ctx) error {
	var payload dto.SubmissionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.Submit(c.Context(), userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendCreated(c, "Assignment submitted successfully", submission)
}

func (h *SubmissionHandler) list(c *fiber.Ctx) error {
	assignmentID, err := parseQueryUint(c, "assignment_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	page, limit := parsePagination(c)

	submissions, pagination, err := h.service.List(c.Context(), identityFromContext(c), dto.SubmissionListRequest{
		AssignmentID: assignmentID,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return h.handleError(c, err)
	}

	// Students get a bare list; the paginated envelope is teacher-facing.
	if pagination == nil {
		return utils.SendSuccess(c, "submissions retrieved", fiber.Map{"submissions": submissions})
	}

	return utils.SendSuccess(c, "submissions retrieved", dto.SubmissionListResponse{
		Submissions: submissions,
		Pagination:  *pagination,
	})
}

func (h *SubmissionHandler) listMine(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	result, err := h.service.ListMine(c.Context(), userIDFromContext(c), dto.MySubmissionsRequest{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", result)
}

func (h *SubmissionHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submission, err := h.service.Get(c.Context(), id, identityFromContext(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission retrieved", submission)
}

func (h *SubmissionHandler) grade(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.GradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	submission, err := h.service.Grade(c.Context(), id, userIDFromContext(c), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "Submission graded successfully", submission)
}

func (h *SubmissionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	var scoreErr service.ScoreOutOfRangeError
	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Submission not found")
	case errors.Is(err, service.ErrAssignmentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Assignment not found")
	case errors.Is(err, service.ErrAssignmentRequired):
		return utils.SendError(c, fiber.StatusBadRequest, "assignment_id is required")
	case errors.Is(err, service.ErrAccessDenied):
		return utils.SendError(c, fiber.StatusForbidden, "access denied")
	case errors.As(err, &scoreErr):
		return utils.SendError(c, fiber.StatusBadRequest, scoreErr.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
