package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Dashulik10/Hostel-Organization/internal/dto"
	"github.com/Dashulik10/Hostel-Organization/internal/service"
	"github.com/Dashulik10/Hostel-Organization/pkg/response"
)

// EnrollmentHandler serves the enrollment ledger endpoints.
type EnrollmentHandler struct {
	enrollSvc service.EnrollmentService
}

// NewEnrollmentHandler creates the EnrollmentHandler.
func NewEnrollmentHandler(enrollSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollSvc: enrollSvc}
}

// Enroll enrolls the calling student into the event.
// POST /api/:slug/enroll/
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, 10001, "event slug is required")
		return
	}

	if err := h.enrollSvc.EnrollSelf(c.Request.Context(), slug, p); err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "enrolled"})
}

// ListAvailableStudents returns the bulk-add candidate pool.
// GET /api/event/:slug/add-students/
func (h *EnrollmentHandler) ListAvailableStudents(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	slug := c.Param("slug")
	students, err := h.enrollSvc.ListAvailableStudents(c.Request.Context(), slug, p)
	if err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": students})
}

// AddStudents bulk-enrolls students in input order. The first student
// without a free slot aborts the call; earlier additions are kept.
// POST /api/event/:slug/add-students/
func (h *EnrollmentHandler) AddStudents(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	slug := c.Param("slug")
	var req dto.AddStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	added, err := h.enrollSvc.BulkAddStudents(c.Request.Context(), slug, req.Students, p)
	if err != nil {
		if errors.Is(err, service.ErrNoAvailableSlots) {
			// Earlier additions are kept even when the call aborts.
			response.BadRequest(c, 12002, "no available slots")
			return
		}
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, gin.H{"added": added})
}

// MarkAttendance toggles a participant's attended flag.
// POST /api/event/:slug/attendance/
func (h *EnrollmentHandler) MarkAttendance(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	slug := c.Param("slug")
	var req dto.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.enrollSvc.MarkAttendance(c.Request.Context(), slug, req.StudentID, *req.Attended, p); err != nil {
		h.handleEnrollmentError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "attendance updated"})
}

func (h *EnrollmentHandler) handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 11001, "event not found")
	case errors.Is(err, service.ErrAlreadyEnrolled):
		response.BadRequest(c, 12001, "already enrolled")
	case errors.Is(err, service.ErrNoAvailableSlots):
		response.BadRequest(c, 12002, "no available slots")
	case errors.Is(err, service.ErrSelfEnrollmentOnly):
		response.Forbidden(c, 12003, "students may only enroll themselves")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12004, "student not found")
	case errors.Is(err, service.ErrNoStudentsFound):
		response.NotFound(c, 12005, "no valid students found")
	case errors.Is(err, service.ErrEnrollmentNotFound):
		response.NotFound(c, 12006, "student is not enrolled in this event")
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 10003, "insufficient permissions")
	default:
		response.InternalError(c)
	}
}
