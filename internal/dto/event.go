package dto

import "time"

// ── event module DTOs ──

// CreateEventRequest creates an event. Field names follow the public API
// contract (number_of_places, number_of_suw_hours).
type CreateEventRequest struct {
	Name             string    `json:"name"                binding:"required,max=100"`
	StartDate        time.Time `json:"start_date"          binding:"required"`
	Description      string    `json:"description"         binding:"omitempty"`
	NumberOfPlaces   int       `json:"number_of_places"    binding:"omitempty,gte=0"`
	NumberOfSuwHours int       `json:"number_of_suw_hours" binding:"omitempty,oneof=0 2 4 6 8 10 12"`
}

// UpdateEventRequest partially updates an event. The slug is never
// recomputed, whatever fields change.
type UpdateEventRequest struct {
	Name             *string    `json:"name"                binding:"omitempty,max=100"`
	StartDate        *time.Time `json:"start_date"`
	Description      *string    `json:"description"`
	NumberOfPlaces   *int       `json:"number_of_places"    binding:"omitempty,gte=0"`
	NumberOfSuwHours *int       `json:"number_of_suw_hours" binding:"omitempty,oneof=0 2 4 6 8 10 12"`
}

// EventListRequest narrows the event list.
type EventListRequest struct {
	Search    string `form:"search"     binding:"omitempty,max=100"`
	StartDate string `form:"start_date" binding:"omitempty"` // YYYY-MM-DD
	Ordering  string `form:"ordering"   binding:"omitempty,oneof=start_date -start_date"`
	Active    bool   `form:"active"`
}

// EventResponse is the list view of an event.
type EventResponse struct {
	ID                uint   `json:"id"`
	Name              string `json:"name"`
	StartDate         string `json:"start_date"`
	Description       string `json:"description,omitempty"`
	Slug              string `json:"slug"`
	NumberOfPlaces    int    `json:"number_of_places"`
	NumberOfSuwHours  int    `json:"number_of_suw_hours"`
	ParticipantCount  int64  `json:"participant_count"`
	HasAvailableSlots bool   `json:"has_available_slots"`
}

// EventParticipantResponse is one enrolled student inside the detail view.
type EventParticipantResponse struct {
	StudentID uint   `json:"student_id"`
	Name      string `json:"name"`
	Block     string `json:"block,omitempty"`
	Attended  bool   `json:"attended"`
}

// EventDetailResponse is the full view of an event.
type EventDetailResponse struct {
	EventResponse
	AuthorID     uint                       `json:"author_id"`
	AuthorName   string                     `json:"author_name,omitempty"`
	Participants []EventParticipantResponse `json:"participants"`
}
