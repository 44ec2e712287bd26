package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Dashulik10/Hostel-Organization/internal/dto"
	"github.com/Dashulik10/Hostel-Organization/internal/model"
	"github.com/Dashulik10/Hostel-Organization/internal/policy"
	"github.com/Dashulik10/Hostel-Organization/internal/repository"
	"github.com/Dashulik10/Hostel-Organization/pkg/slug"
)

// ── event module errors ──

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrEventSlugTaken   = errors.New("event slug already exists")
	ErrInvalidStartDate = errors.New("start_date must be YYYY-MM-DD")
	ErrAuthorNotWorker  = errors.New("author has no worker profile")
	ErrInvalidSuwHours  = errors.New("number_of_suw_hours must be one of 0, 2, 4, 6, 8, 10, 12")
	ErrNegativeCapacity = errors.New("number_of_places must not be negative")
)

// EventService is the event catalog.
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest, actor *policy.Principal) (*dto.EventDetailResponse, error)
	// Update applies a partial update; the slug is never recomputed.
	Update(ctx context.Context, eventSlug string, req *dto.UpdateEventRequest, actor *policy.Principal) (*dto.EventDetailResponse, error)
	// Delete removes the event and, by cascade, its enrollments.
	Delete(ctx context.Context, eventSlug string, actor *policy.Principal) error
	GetBySlug(ctx context.Context, eventSlug string) (*dto.EventDetailResponse, error)
	List(ctx context.Context, req *dto.EventListRequest) ([]dto.EventResponse, error)
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewEventService creates the EventService.
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest, actor *policy.Principal) (*dto.EventDetailResponse, error) {
	if !policy.IsWorker(actor) {
		return nil, ErrPermissionDenied
	}
	if req.NumberOfPlaces < 0 {
		return nil, ErrNegativeCapacity
	}
	if !model.ValidSUWHours(req.NumberOfSuwHours) {
		return nil, ErrInvalidSuwHours
	}

	author, err := s.repo.Worker.GetByUserID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthorNotWorker
		}
		s.logger.Error("lookup worker failed", zap.Error(err))
		return nil, err
	}

	// The slug is derived once from name plus start day/month and is an
	// immutable external key from here on.
	eventSlug := slug.ForEvent(req.Name, req.StartDate)
	taken, err := s.repo.Event.SlugExists(ctx, eventSlug)
	if err != nil {
		s.logger.Error("check slug failed", zap.Error(err))
		return nil, err
	}
	if taken {
		return nil, ErrEventSlugTaken
	}

	event := &model.Event{
		Name:             req.Name,
		StartDate:        req.StartDate,
		Description:      req.Description,
		Slug:             eventSlug,
		NumberOfPlaces:   req.NumberOfPlaces,
		NumberOfSuwHours: req.NumberOfSuwHours,
		AuthorID:         author.ID,
	}
	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("create event failed", zap.Error(err))
		return nil, err
	}

	return s.toEventDetail(ctx, event)
}

// ────────────────────── Update ──────────────────────

func (s *eventService) Update(ctx context.Context, eventSlug string, req *dto.UpdateEventRequest, actor *policy.Principal) (*dto.EventDetailResponse, error) {
	if !policy.IsWorker(actor) {
		return nil, ErrPermissionDenied
	}

	event, err := s.getEvent(ctx, eventSlug)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.NumberOfPlaces != nil {
		if *req.NumberOfPlaces < 0 {
			return nil, ErrNegativeCapacity
		}
		event.NumberOfPlaces = *req.NumberOfPlaces
	}
	if req.NumberOfSuwHours != nil {
		if !model.ValidSUWHours(*req.NumberOfSuwHours) {
			return nil, ErrInvalidSuwHours
		}
		event.NumberOfSuwHours = *req.NumberOfSuwHours
	}

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.logger.Error("update event failed", zap.String("slug", eventSlug), zap.Error(err))
		return nil, err
	}

	return s.toEventDetail(ctx, event)
}

// ────────────────────── Delete ──────────────────────

func (s *eventService) Delete(ctx context.Context, eventSlug string, actor *policy.Principal) error {
	if !policy.IsWorker(actor) {
		return ErrPermissionDenied
	}

	event, err := s.getEvent(ctx, eventSlug)
	if err != nil {
		return err
	}

	if err := s.repo.Event.Delete(ctx, event.ID); err != nil {
		s.logger.Error("delete event failed", zap.String("slug", eventSlug), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── GetBySlug ──────────────────────

func (s *eventService) GetBySlug(ctx context.Context, eventSlug string) (*dto.EventDetailResponse, error) {
	event, err := s.getEvent(ctx, eventSlug)
	if err != nil {
		return nil, err
	}
	return s.toEventDetail(ctx, event)
}

// ────────────────────── List ──────────────────────

func (s *eventService) List(ctx context.Context, req *dto.EventListRequest) ([]dto.EventResponse, error) {
	filters := &repository.EventListFilters{}
	if req != nil {
		filters.Search = req.Search
		filters.Ordering = req.Ordering
		filters.ActiveOnly = req.Active
		if req.StartDate != "" {
			day, err := time.Parse("2006-01-02", req.StartDate)
			if err != nil {
				return nil, ErrInvalidStartDate
			}
			filters.StartDate = &day
		}
	}

	events, err := s.repo.Event.List(ctx, filters)
	if err != nil {
		s.logger.Error("list events failed", zap.Error(err))
		return nil, err
	}

	eventIDs := make([]uint, 0, len(events))
	for i := range events {
		eventIDs = append(eventIDs, events[i].ID)
	}
	counts, err := s.repo.Event.BatchCountParticipants(ctx, eventIDs)
	if err != nil {
		s.logger.Warn("batch count participants failed", zap.Error(err))
		counts = make(map[uint]int64)
	}

	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, toEventResponse(&events[i], counts[events[i].ID]))
	}
	return result, nil
}

// ── helpers ──

func (s *eventService) getEvent(ctx context.Context, eventSlug string) (*model.Event, error) {
	event, err := s.repo.Event.GetBySlug(ctx, eventSlug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("lookup event failed", zap.String("slug", eventSlug), zap.Error(err))
		return nil, err
	}
	return event, nil
}

func toEventResponse(event *model.Event, participantCount int64) dto.EventResponse {
	return dto.EventResponse{
		ID:                event.ID,
		Name:              event.Name,
		StartDate:         event.StartDate.Format(time.RFC3339),
		Description:       event.Description,
		Slug:              event.Slug,
		NumberOfPlaces:    event.NumberOfPlaces,
		NumberOfSuwHours:  event.NumberOfSuwHours,
		ParticipantCount:  participantCount,
		HasAvailableSlots: participantCount < int64(event.NumberOfPlaces),
	}
}

func (s *eventService) toEventDetail(ctx context.Context, event *model.Event) (*dto.EventDetailResponse, error) {
	attendances, err := s.repo.Enrollment.ListByEvent(ctx, event.ID)
	if err != nil {
		s.logger.Error("list attendances failed", zap.Uint("event_id", event.ID), zap.Error(err))
		return nil, err
	}

	participants := make([]dto.EventParticipantResponse, 0, len(attendances))
	for i := range attendances {
		a := &attendances[i]
		p := dto.EventParticipantResponse{
			StudentID: a.StudentID,
			Attended:  a.Attended,
		}
		if a.Student != nil {
			p.Name = studentFullName(a.Student)
			if a.Student.Block != nil {
				p.Block = blockLabel(a.Student.Block)
			}
		}
		participants = append(participants, p)
	}

	detail := &dto.EventDetailResponse{
		EventResponse: toEventResponse(event, int64(len(attendances))),
		AuthorID:      event.AuthorID,
		Participants:  participants,
	}
	if event.Author != nil && event.Author.User != nil {
		detail.AuthorName = event.Author.User.FirstName + " " + event.Author.User.LastName
	}
	return detail, nil
}
