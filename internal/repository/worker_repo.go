package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dashulik10/Hostel-Organization/internal/model"
)

// WorkerRepository is the worker-profile data access interface.
type WorkerRepository interface {
	Create(ctx context.Context, worker *model.Worker) error
	GetByID(ctx context.Context, id uint) (*model.Worker, error)
	GetByUserID(ctx context.Context, userID uint) (*model.Worker, error)
}

type workerRepo struct {
	db *gorm.DB
}

// NewWorkerRepo creates the GORM-backed WorkerRepository.
func NewWorkerRepo(db *gorm.DB) WorkerRepository {
	return &workerRepo{db: db}
}

func (r *workerRepo) Create(ctx context.Context, worker *model.Worker) error {
	return r.db.WithContext(ctx).Create(worker).Error
}

func (r *workerRepo) GetByID(ctx context.Context, id uint) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&worker).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}

func (r *workerRepo) GetByUserID(ctx context.Context, userID uint) (*model.Worker, error) {
	var worker model.Worker
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&worker).Error
	if err != nil {
		return nil, err
	}
	return &worker, nil
}
