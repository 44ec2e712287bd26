package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Dashulik10/Hostel-Organization/internal/dto"
	"github.com/Dashulik10/Hostel-Organization/internal/service"
	"github.com/Dashulik10/Hostel-Organization/pkg/response"
)

// SuwHandler serves the volunteer-hour accounting endpoints.
type SuwHandler struct {
	suwSvc service.SuwService
}

// NewSuwHandler creates the SuwHandler.
func NewSuwHandler(suwSvc service.SuwService) *SuwHandler {
	return &SuwHandler{suwSvc: suwSvc}
}

// Participants returns the event's participants with their balances.
// GET /api/:slug/mark-suw/
func (h *SuwHandler) Participants(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	slug := c.Param("slug")
	resp, err := h.suwSvc.ParticipantsForEvent(c.Request.Context(), slug, p)
	if err != nil {
		h.handleSuwError(c, err)
		return
	}

	response.OK(c, resp)
}

// MarkSuw bulk-adds hours to participants. A single unknown student id
// rejects the whole request.
// POST /api/:slug/mark-suw/
func (h *SuwHandler) MarkSuw(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	slug := c.Param("slug")
	var req dto.MarkSuwRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	resp, err := h.suwSvc.MarkSuwForEvent(c.Request.Context(), slug, req.StudentsHours, p)
	if err != nil {
		h.handleSuwError(c, err)
		return
	}

	response.OK(c, resp)
}

// SearchStudents matches students by name or block number.
// GET /api/manage-student-suw/?q=
func (h *SuwHandler) SearchStudents(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	query := c.Query("q")
	if query == "" {
		// older clients send ?search=
		query = c.Query("search")
	}
	students, err := h.suwSvc.SearchStudents(c.Request.Context(), query, p)
	if err != nil {
		h.handleSuwError(c, err)
		return
	}

	response.OK(c, gin.H{"list": students})
}

// AdjustSuw increments or decrements one student's balance; decrements
// clamp at zero.
// POST /api/manage-student-suw/
func (h *SuwHandler) AdjustSuw(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.ManageSuwRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	student, err := h.suwSvc.AdjustStudentSuw(c.Request.Context(), &req, p)
	if err != nil {
		h.handleSuwError(c, err)
		return
	}

	response.OK(c, student)
}

func (h *SuwHandler) handleSuwError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 11001, "event not found")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12004, "student not found")
	case errors.Is(err, service.ErrStudentsMissing):
		response.BadRequest(c, 13001, "one or more students not found")
	case errors.Is(err, service.ErrNegativeSuw):
		response.BadRequest(c, 13002, "suw hours must be non-negative")
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 10003, "insufficient permissions")
	default:
		response.InternalError(c)
	}
}
