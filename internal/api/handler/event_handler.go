package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Dashulik10/Hostel-Organization/internal/dto"
	"github.com/Dashulik10/Hostel-Organization/internal/service"
	"github.com/Dashulik10/Hostel-Organization/pkg/response"
)

// EventHandler serves the event catalog endpoints.
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler creates the EventHandler.
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// ListEvents returns the filtered event catalog.
// GET /api/
func (h *EventHandler) ListEvents(c *gin.Context) {
	var req dto.EventListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	events, err := h.eventSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, gin.H{"list": events})
}

// GetEvent returns one event with its participants.
// GET /api/event/:slug
func (h *EventHandler) GetEvent(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, 10001, "event slug is required")
		return
	}

	event, err := h.eventSvc.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// CreateEvent creates an event authored by the calling worker.
// POST /api/add-event/
func (h *EventHandler) CreateEvent(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), &req, p)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.Created(c, event)
}

// UpdateEvent partially updates an event; the slug never changes.
// PATCH /api/edit-event/:slug  (PUT accepted as well)
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, 10001, "event slug is required")
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	event, err := h.eventSvc.Update(c.Request.Context(), slug, &req, p)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, event)
}

// DeleteEvent removes an event and its enrollments.
// DELETE /api/delete-event/:slug
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	p, ok := MustGetPrincipal(c)
	if !ok {
		return
	}

	slug := c.Param("slug")
	if slug == "" {
		response.BadRequest(c, 10001, "event slug is required")
		return
	}

	if err := h.eventSvc.Delete(c.Request.Context(), slug, p); err != nil {
		h.handleEventError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "event deleted"})
}

func (h *EventHandler) handleEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 11001, "event not found")
	case errors.Is(err, service.ErrEventSlugTaken):
		response.BadRequest(c, 11002, "an event with this name and date already exists")
	case errors.Is(err, service.ErrInvalidStartDate):
		response.BadRequest(c, 11003, "start_date must be YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidSuwHours):
		response.BadRequest(c, 11004, "number_of_suw_hours must be one of 0, 2, 4, 6, 8, 10, 12")
	case errors.Is(err, service.ErrNegativeCapacity):
		response.BadRequest(c, 11005, "number_of_places must be non-negative")
	case errors.Is(err, service.ErrAuthorNotWorker):
		response.Forbidden(c, 11006, "only workers manage events")
	case errors.Is(err, service.ErrPermissionDenied):
		response.Forbidden(c, 10003, "insufficient permissions")
	default:
		response.InternalError(c)
	}
}
