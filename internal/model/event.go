package model

import "time"

// SUWHourChoices is the fixed enumeration of SUW-hour values an event may
// award.
var SUWHourChoices = []int{0, 2, 4, 6, 8, 10, 12}

// ValidSUWHours reports whether h is one of the allowed SUW-hour values.
func ValidSUWHours(h int) bool {
	for _, v := range SUWHourChoices {
		if v == h {
			return true
		}
	}
	return false
}

// Event is an extracurricular activity students enroll into.
// The slug is derived from name and start day/month at creation and is
// immutable afterwards; updates never recompute it.
type Event struct {
	ID               uint      `gorm:"primaryKey"                         json:"id"`
	Name             string    `gorm:"type:varchar(100);not null"         json:"name"`
	StartDate        time.Time `gorm:"not null"                           json:"start_date"`
	Description      string    `gorm:"type:text;not null;default:''"      json:"description"`
	Slug             string    `gorm:"type:varchar(100);not null;unique"  json:"slug"`
	NumberOfPlaces   int       `gorm:"not null;default:0"                 json:"number_of_places"`
	NumberOfSuwHours int       `gorm:"not null;default:0"                 json:"number_of_suw_hours"`
	AuthorID         uint      `gorm:"not null"                           json:"author_id"`
	BaseModel

	Author      *Worker           `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	Attendances []EventAttendance `gorm:"foreignKey:EventID"                json:"attendances,omitempty"`
}

// TableName sets the table name.
func (Event) TableName() string { return "events" }

// EventAttendance links a student to an event they have joined.
// The (student, event) pair is unique; attended is a free two-way toggle.
type EventAttendance struct {
	ID        uint `gorm:"primaryKey"                                        json:"id"`
	StudentID uint `gorm:"not null;uniqueIndex:uq_event_attendances_student_event" json:"student_id"`
	EventID   uint `gorm:"not null;uniqueIndex:uq_event_attendances_student_event" json:"event_id"`
	Attended  bool `gorm:"not null;default:false"                            json:"attended"`

	Student *Student `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Event   *Event   `gorm:"foreignKey:EventID;references:ID"   json:"event,omitempty"`
}

// TableName sets the table name.
func (EventAttendance) TableName() string { return "event_attendances" }
