package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dashulik10/Hostel-Organization/internal/model"
)

// BlockRepository is the dormitory-block data access interface.
type BlockRepository interface {
	Create(ctx context.Context, block *model.Block) error
	GetByID(ctx context.Context, id uint) (*model.Block, error)
	GetByNumber(ctx context.Context, number int) (*model.Block, error)
	List(ctx context.Context) ([]model.Block, error)
}

type blockRepo struct {
	db *gorm.DB
}

// NewBlockRepo creates the GORM-backed BlockRepository.
func NewBlockRepo(db *gorm.DB) BlockRepository {
	return &blockRepo{db: db}
}

func (r *blockRepo) Create(ctx context.Context, block *model.Block) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *blockRepo) GetByID(ctx context.Context, id uint) (*model.Block, error) {
	var block model.Block
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&block).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *blockRepo) GetByNumber(ctx context.Context, number int) (*model.Block, error) {
	var block model.Block
	err := r.db.WithContext(ctx).
		Where("number = ?", number).
		First(&block).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *blockRepo) List(ctx context.Context) ([]model.Block, error) {
	var blocks []model.Block
	err := r.db.WithContext(ctx).
		Order("number ASC").
		Find(&blocks).Error
	return blocks, err
}
