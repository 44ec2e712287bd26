package repository

import "gorm.io/gorm"

// Repository aggregates every repository interface.
type Repository struct {
	User       UserRepository
	Student    StudentRepository
	Worker     WorkerRepository
	Block      BlockRepository
	Event      EventRepository
	Enrollment EnrollmentRepository
}

// NewRepository builds the aggregate over a single gorm.DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Student:    NewStudentRepo(db),
		Worker:     NewWorkerRepo(db),
		Block:      NewBlockRepo(db),
		Event:      NewEventRepo(db),
		Enrollment: NewEnrollmentRepo(db),
	}
}
