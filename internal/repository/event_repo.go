package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Dashulik10/Hostel-Organization/internal/model"
)

// EventListFilters narrows and orders the event list query.
type EventListFilters struct {
	Search     string     // case-insensitive substring over name
	StartDate  *time.Time // exact start-day filter
	Ordering   string     // "start_date" | "-start_date"
	ActiveOnly bool       // only events with free places left
}

// EventRepository is the event data access interface.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, event *model.Event) error
	// Delete removes the event; attendance rows go with it (FK cascade).
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, filters *EventListFilters) ([]model.Event, error)
	// CountParticipants returns the live enrollment count for the event.
	CountParticipants(ctx context.Context, eventID uint) (int64, error)
	// BatchCountParticipants counts enrollments for many events at once
	// to avoid per-row queries when listing.
	BatchCountParticipants(ctx context.Context, eventIDs []uint) (map[uint]int64, error)
}

type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo creates the GORM-backed EventRepository.
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Author.User").
		Where("slug = ?", slug).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Delete(&model.Event{}, id).Error
}

func (r *eventRepo) List(ctx context.Context, filters *EventListFilters) ([]model.Event, error) {
	db := r.db.WithContext(ctx).Model(&model.Event{})

	if filters != nil {
		if filters.Search != "" {
			db = db.Where("name ILIKE ?", "%"+filters.Search+"%")
		}
		if filters.StartDate != nil {
			day := filters.StartDate.Truncate(24 * time.Hour)
			db = db.Where("start_date >= ? AND start_date < ?", day, day.Add(24*time.Hour))
		}
		if filters.ActiveOnly {
			// Recomputed against live counts on every query, never cached.
			db = db.Where("number_of_places > (?)",
				r.db.Model(&model.EventAttendance{}).
					Select("COUNT(*)").
					Where("event_attendances.event_id = events.id"),
			)
		}
	}

	ordering := "start_date DESC"
	if filters != nil && filters.Ordering == "start_date" {
		ordering = "start_date ASC"
	}

	var events []model.Event
	err := db.Order(ordering).Find(&events).Error
	return events, err
}

func (r *eventRepo) CountParticipants(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.EventAttendance{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *eventRepo) BatchCountParticipants(ctx context.Context, eventIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	type row struct {
		EventID uint
		Count   int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.EventAttendance{}).
		Select("event_id, COUNT(*) AS count").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rw := range rows {
		counts[rw.EventID] = rw.Count
	}
	return counts, nil
}
