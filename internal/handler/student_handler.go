package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pranav-ms/uni-records-api/internal/middleware"
	"github.com/pranav-ms/uni-records-api/internal/service"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
	"github.com/pranav-ms/uni-records-api/pkg/response"
)

// StudentHandler exposes the student-facing endpoints: class registration,
// timetable, academic records, materials and re-evaluation requests.
type StudentHandler struct {
	registrations *service.RegistrationService
	timetables    *service.TimetableService
	records       *service.RecordsService
	reevaluations *service.ReevaluationService
	catalog       *service.CatalogService
	materials     *service.MaterialService
}

// NewStudentHandler creates a new handler.
func NewStudentHandler(
	registrations *service.RegistrationService,
	timetables *service.TimetableService,
	records *service.RecordsService,
	reevaluations *service.ReevaluationService,
	catalog *service.CatalogService,
	materials *service.MaterialService,
) *StudentHandler {
	return &StudentHandler{
		registrations: registrations,
		timetables:    timetables,
		records:       records,
		reevaluations: reevaluations,
		catalog:       catalog,
		materials:     materials,
	}
}

// Register godoc
// @Summary Register for a class
// @Description Enroll the authenticated student into a class if all eligibility checks pass
// @Tags Student
// @Accept json
// @Produce json
// @Param payload body service.RegisterRequest true "Registration payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /student/register [post]
func (h *StudentHandler) Register(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	if err := h.registrations.Register(c.Request.Context(), claims.UserID, req.ClassID); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusCreated, "registered")
}

// Classes godoc
// @Summary List open classes
// @Description List the class catalog with live seat availability
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/classes [get]
func (h *StudentHandler) Classes(c *gin.Context) {
	classes, err := h.catalog.ListClasses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Timetable godoc
// @Summary Get weekly timetable
// @Description Compose the authenticated student's weekly timetable from their enrollments
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/timetable [get]
func (h *StudentHandler) Timetable(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	timetable, err := h.timetables.ForStudent(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable)
}

// Records godoc
// @Summary Get academic records
// @Description Marks, grades and attendance for all of the student's enrollments
// @Tags Student
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/records [get]
func (h *StudentHandler) Records(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	records, err := h.records.AcademicRecords(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// SubmitReevaluation godoc
// @Summary Request a grade re-evaluation
// @Description File a pending re-evaluation request against a graded enrollment
// @Tags Student
// @Accept json
// @Produce json
// @Param payload body service.SubmitReevaluationRequest true "Request payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /student/reevaluations [post]
func (h *StudentHandler) SubmitReevaluation(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SubmitReevaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid re-evaluation payload"))
		return
	}

	request, err := h.reevaluations.Submit(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, request)
}

// Materials godoc
// @Summary List course materials
// @Description Materials shared for a course, newest first
// @Tags Student
// @Produce json
// @Param code path string true "Course code"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /student/courses/{code}/materials [get]
func (h *StudentHandler) Materials(c *gin.Context) {
	materials, err := h.materials.ListByCourse(c.Request.Context(), c.Param("code"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, materials)
}
