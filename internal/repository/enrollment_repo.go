package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Dashulik10/Hostel-Organization/internal/model"
)

// Enrollment outcomes the capacity-guarded insert can fail with.
var (
	// ErrEventFull means the event has no free places left.
	ErrEventFull = errors.New("event has no available slots")
	// ErrDuplicateEnrollment means the student is already enrolled.
	ErrDuplicateEnrollment = errors.New("student already enrolled in event")
)

// EnrollmentRepository is the enrollment data access interface.
type EnrollmentRepository interface {
	// Enroll inserts an attendance row if and only if the live participant
	// count is still below the event's capacity. The count check and the
	// insert run in one transaction holding a row lock on the event, so
	// concurrent enrollments cannot overshoot the capacity.
	Enroll(ctx context.Context, eventID, studentID uint) error
	Get(ctx context.Context, eventID, studentID uint) (*model.EventAttendance, error)
	Exists(ctx context.Context, eventID, studentID uint) (bool, error)
	SetAttended(ctx context.Context, eventID, studentID uint, attended bool) error
	// ListByEvent returns all attendance rows for the event with student
	// and account data preloaded.
	ListByEvent(ctx context.Context, eventID uint) ([]model.EventAttendance, error)
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo creates the GORM-backed EnrollmentRepository.
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) Enroll(ctx context.Context, eventID, studentID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the event row so no concurrent transaction can pass the
		// capacity check at the same time (SELECT ... FOR UPDATE).
		var event model.Event
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", eventID).
			First(&event).Error; err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&model.EventAttendance{}).
			Where("event_id = ? AND student_id = ?", eventID, studentID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateEnrollment
		}

		var count int64
		if err := tx.Model(&model.EventAttendance{}).
			Where("event_id = ?", eventID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(event.NumberOfPlaces) {
			return ErrEventFull
		}

		return tx.Create(&model.EventAttendance{
			EventID:   eventID,
			StudentID: studentID,
			Attended:  false,
		}).Error
	})
}

func (r *enrollmentRepo) Get(ctx context.Context, eventID, studentID uint) (*model.EventAttendance, error) {
	var attendance model.EventAttendance
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND student_id = ?", eventID, studentID).
		First(&attendance).Error
	if err != nil {
		return nil, err
	}
	return &attendance, nil
}

func (r *enrollmentRepo) Exists(ctx context.Context, eventID, studentID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.EventAttendance{}).
		Where("event_id = ? AND student_id = ?", eventID, studentID).
		Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepo) SetAttended(ctx context.Context, eventID, studentID uint, attended bool) error {
	result := r.db.WithContext(ctx).
		Model(&model.EventAttendance{}).
		Where("event_id = ? AND student_id = ?", eventID, studentID).
		Update("attended", attended)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *enrollmentRepo) ListByEvent(ctx context.Context, eventID uint) ([]model.EventAttendance, error) {
	var attendances []model.EventAttendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Student.User").
		Preload("Student.Block").
		Where("event_id = ?", eventID).
		Order("student_id ASC").
		Find(&attendances).Error
	return attendances, err
}
