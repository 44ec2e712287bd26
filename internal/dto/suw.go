package dto

// ── SUW accounting DTOs ──

// MarkSuwRequest bulk-adds SUW hours to event participants.
// Keys are student ids (JSON object keys are strings), values are
// non-negative hours to add. Every key must resolve to an existing
// student or the whole request is rejected.
type MarkSuwRequest struct {
	StudentsHours map[string]int `json:"students_hours" binding:"required,min=1"`
}

// ManageSuwRequest adjusts one student's SUW counter.
type ManageSuwRequest struct {
	StudentID uint   `json:"student_id" binding:"required"`
	Operation string `json:"operation"  binding:"required,oneof=+ -"`
	SuwHours  *int   `json:"suw_hours"  binding:"required,gte=0"`
}

// StudentSuwResponse is a student with their accumulated SUW hours.
type StudentSuwResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Block string `json:"block,omitempty"`
	Suw   int    `json:"suw"`
}

// MarkSuwResponse is the bulk-update reply.
type MarkSuwResponse struct {
	Event    EventRef             `json:"event"`
	Students []StudentSuwResponse `json:"students"`
}

// EventRef is a minimal event reference.
type EventRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
