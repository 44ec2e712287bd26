package handler

import "github.com/Dashulik10/Hostel-Organization/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth       *AuthHandler
	Event      *EventHandler
	Enrollment *EnrollmentHandler
	Suw        *SuwHandler
	Block      *BlockHandler
	Export     *ExportHandler
}

// NewHandler creates the Handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Event:      NewEventHandler(svc.Event),
		Enrollment: NewEnrollmentHandler(svc.Enrollment),
		Suw:        NewSuwHandler(svc.Suw),
		Block:      NewBlockHandler(svc.Block),
		Export:     NewExportHandler(svc.Export),
	}
}
