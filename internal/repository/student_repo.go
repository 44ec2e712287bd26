package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dashulik10/Hostel-Organization/internal/model"
)

// StudentRepository is the student-profile data access interface.
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id uint) (*model.Student, error)
	GetByUserID(ctx context.Context, userID uint) (*model.Student, error)
	ListByIDs(ctx context.Context, ids []uint) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	// Search matches first name, last name or block number,
	// case-insensitive substring. Empty query returns all students.
	Search(ctx context.Context, query string) ([]model.Student, error)
	// ListAvailableForEvent returns students not yet enrolled in the event.
	ListAvailableForEvent(ctx context.Context, eventID uint) ([]model.Student, error)
	// ListParticipants returns students enrolled in the event.
	ListParticipants(ctx context.Context, eventID uint) ([]model.Student, error)
}

type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo creates the GORM-backed StudentRepository.
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id uint) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Block").
		Where("id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByUserID(ctx context.Context, userID uint) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Block").
		Where("user_id = ?", userID).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) ListByIDs(ctx context.Context, ids []uint) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Block").
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) Search(ctx context.Context, query string) ([]model.Student, error) {
	db := r.db.WithContext(ctx).
		Preload("User").
		Preload("Block").
		Joins("JOIN users ON users.id = students.user_id").
		Joins("LEFT JOIN blocks ON blocks.id = students.block_id")

	if query != "" {
		like := "%" + query + "%"
		db = db.Where(
			"users.first_name ILIKE ? OR users.last_name ILIKE ? OR CAST(blocks.number AS TEXT) LIKE ?",
			like, like, like,
		)
	}

	var students []model.Student
	err := db.Order("users.last_name ASC, users.first_name ASC").Find(&students).Error
	return students, err
}

func (r *studentRepo) ListAvailableForEvent(ctx context.Context, eventID uint) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Block").
		Where("id NOT IN (?)",
			r.db.Model(&model.EventAttendance{}).
				Select("student_id").
				Where("event_id = ?", eventID),
		).
		Order("id ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) ListParticipants(ctx context.Context, eventID uint) ([]model.Student, error) {
	var students []model.Student
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Block").
		Joins("JOIN event_attendances ON event_attendances.student_id = students.id").
		Where("event_attendances.event_id = ?", eventID).
		Order("students.id ASC").
		Find(&students).Error
	return students, err
}
