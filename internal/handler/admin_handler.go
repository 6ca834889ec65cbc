package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pranav-ms/uni-records-api/internal/service"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
	"github.com/pranav-ms/uni-records-api/pkg/response"
)

// AdminHandler exposes the admin endpoints: account provisioning, catalog
// management and re-evaluation decisions.
type AdminHandler struct {
	users         *service.UserService
	catalog       *service.CatalogService
	reevaluations *service.ReevaluationService
}

// NewAdminHandler creates a new handler.
func NewAdminHandler(users *service.UserService, catalog *service.CatalogService, reevaluations *service.ReevaluationService) *AdminHandler {
	return &AdminHandler{users: users, catalog: catalog, reevaluations: reevaluations}
}

// CreateUser godoc
// @Summary Provision an account
// @Description Create a student, faculty, admin or parent account; parents must name their student
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.CreateUserRequest true "User payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid user payload"))
		return
	}

	user, err := h.users.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// CreateCourse godoc
// @Summary Add a course
// @Description Add a course to the catalog; course codes are unique
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/courses [post]
func (h *AdminHandler) CreateCourse(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course payload"))
		return
	}

	course, err := h.catalog.CreateCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// OpenClass godoc
// @Summary Open a class
// @Description Open a class of a course with a faculty member, slot and seat count
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.OpenClassRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/classes [post]
func (h *AdminHandler) OpenClass(c *gin.Context) {
	var req service.OpenClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid class payload"))
		return
	}

	class, err := h.catalog.OpenClass(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// PendingReevaluations godoc
// @Summary List pending re-evaluation requests
// @Description Requests awaiting a decision, oldest first
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/reevaluations [get]
func (h *AdminHandler) PendingReevaluations(c *gin.Context) {
	requests, err := h.reevaluations.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests)
}

// DecideReevaluation godoc
// @Summary Decide a re-evaluation request
// @Description Approve or reject a pending request; decided requests are terminal
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.DecideReevaluationRequest true "Decision payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /admin/reevaluations/decide [post]
func (h *AdminHandler) DecideReevaluation(c *gin.Context) {
	var req service.DecideReevaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid decision payload"))
		return
	}

	if err := h.reevaluations.Decide(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "request decided")
}
