package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pranav-ms/uni-records-api/internal/middleware"
	"github.com/pranav-ms/uni-records-api/internal/service"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
	"github.com/pranav-ms/uni-records-api/pkg/response"
)

// FacultyHandler exposes the faculty-facing endpoints: marks upload, batch
// attendance, rosters and course materials.
type FacultyHandler struct {
	grading   *service.GradingService
	records   *service.RecordsService
	materials *service.MaterialService
}

// NewFacultyHandler creates a new handler.
func NewFacultyHandler(grading *service.GradingService, records *service.RecordsService, materials *service.MaterialService) *FacultyHandler {
	return &FacultyHandler{grading: grading, records: records, materials: materials}
}

// WriteMarks godoc
// @Summary Upload marks for a student
// @Description Record marks and derive the letter grade; overwriting a set grade requires an approved re-evaluation request
// @Tags Faculty
// @Accept json
// @Produce json
// @Param payload body service.WriteMarksRequest true "Marks payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /faculty/marks [post]
func (h *FacultyHandler) WriteMarks(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.WriteMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid marks payload"))
		return
	}

	grade, err := h.grading.WriteMarks(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"grade": grade})
}

// RecordAttendance godoc
// @Summary Record an attendance session
// @Description Count one held session for the whole roster and one attended session for everyone not listed absent
// @Tags Faculty
// @Accept json
// @Produce json
// @Param payload body service.RecordAttendanceRequest true "Attendance payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /faculty/attendance [post]
func (h *FacultyHandler) RecordAttendance(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}

	if err := h.grading.RecordAttendance(c.Request.Context(), claims.UserID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "attendance recorded")
}

// Roster godoc
// @Summary Get a class roster
// @Description Enrolled students with marks, grades and attendance for a class the faculty teaches
// @Tags Faculty
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /faculty/classes/{id}/roster [get]
func (h *FacultyHandler) Roster(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	roster, err := h.grading.Roster(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster)
}

// ExportRoster godoc
// @Summary Export a class roster
// @Description Download the roster as CSV or PDF
// @Tags Faculty
// @Produce text/csv
// @Produce application/pdf
// @Param id path string true "Class ID"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} byte
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Security BearerAuth
// @Router /faculty/classes/{id}/roster/export [get]
func (h *FacultyHandler) ExportRoster(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	classID := c.Param("id")
	roster, err := h.grading.Roster(c.Request.Context(), claims.UserID, classID)
	if err != nil {
		response.Error(c, err)
		return
	}

	format := service.ExportFormat(c.DefaultQuery("format", string(service.ExportCSV)))
	result, err := h.records.ExportRoster(classID, roster, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// UploadMaterial godoc
// @Summary Share a course material
// @Description Upload a file for a course; the file lands on local storage and its metadata in the database
// @Tags Faculty
// @Accept multipart/form-data
// @Produce json
// @Param code path string true "Course code"
// @Param title formData string true "Material title"
// @Param file formData file true "File to share"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /faculty/courses/{code}/materials [post]
func (h *FacultyHandler) UploadMaterial(c *gin.Context) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	material, err := h.materials.Upload(c.Request.Context(), claims.UserID, service.UploadMaterialRequest{
		CourseCode: c.Param("code"),
		Title:      c.PostForm("title"),
		Filename:   fileHeader.Filename,
		Size:       fileHeader.Size,
	}, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, material)
}
