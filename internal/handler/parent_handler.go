package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pranav-ms/uni-records-api/internal/middleware"
	"github.com/pranav-ms/uni-records-api/internal/service"
	appErrors "github.com/pranav-ms/uni-records-api/pkg/errors"
	"github.com/pranav-ms/uni-records-api/pkg/response"
)

// ParentHandler exposes the read-only view a parent gets of their linked
// student's records and timetable.
type ParentHandler struct {
	users      *service.UserService
	records    *service.RecordsService
	timetables *service.TimetableService
}

// NewParentHandler creates a new handler.
func NewParentHandler(users *service.UserService, records *service.RecordsService, timetables *service.TimetableService) *ParentHandler {
	return &ParentHandler{users: users, records: records, timetables: timetables}
}

// ChildRecords godoc
// @Summary Get the linked student's academic records
// @Tags Parent
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /parent/records [get]
func (h *ParentHandler) ChildRecords(c *gin.Context) {
	studentID, ok := h.resolveChild(c)
	if !ok {
		return
	}

	records, err := h.records.AcademicRecords(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records)
}

// ChildTimetable godoc
// @Summary Get the linked student's weekly timetable
// @Tags Parent
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /parent/timetable [get]
func (h *ParentHandler) ChildTimetable(c *gin.Context) {
	studentID, ok := h.resolveChild(c)
	if !ok {
		return
	}

	timetable, err := h.timetables.ForStudent(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetable)
}

func (h *ParentHandler) resolveChild(c *gin.Context) (string, bool) {
	claims, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return "", false
	}

	studentID, err := h.users.ChildOf(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return "", false
	}
	return studentID, true
}
