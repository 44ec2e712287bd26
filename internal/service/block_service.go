package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Dashulik10/Hostel-Organization/internal/dto"
	"github.com/Dashulik10/Hostel-Organization/internal/model"
	"github.com/Dashulik10/Hostel-Organization/internal/policy"
	"github.com/Dashulik10/Hostel-Organization/internal/repository"
	"github.com/Dashulik10/Hostel-Organization/pkg/slug"
)

// ErrBlockExists is returned when a block with the same number already exists.
var ErrBlockExists = errors.New("block already exists")

// BlockService manages dormitory blocks.
type BlockService interface {
	Create(ctx context.Context, req *dto.CreateBlockRequest, actor *policy.Principal) (*dto.BlockResponse, error)
	List(ctx context.Context) ([]dto.BlockResponse, error)
}

type blockService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBlockService creates the BlockService.
func NewBlockService(repo *repository.Repository, logger *zap.Logger) BlockService {
	return &blockService{repo: repo, logger: logger}
}

func (s *blockService) Create(ctx context.Context, req *dto.CreateBlockRequest, actor *policy.Principal) (*dto.BlockResponse, error) {
	if !policy.IsWorker(actor) {
		return nil, ErrPermissionDenied
	}

	existing, err := s.repo.Block.GetByNumber(ctx, req.Number)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("lookup block failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrBlockExists
	}

	block := &model.Block{
		Number: req.Number,
		Slug:   slug.ForBlock(req.Number),
	}
	if err := s.repo.Block.Create(ctx, block); err != nil {
		s.logger.Error("create block failed", zap.Error(err))
		return nil, err
	}

	return toBlockResponse(block), nil
}

func (s *blockService) List(ctx context.Context) ([]dto.BlockResponse, error) {
	blocks, err := s.repo.Block.List(ctx)
	if err != nil {
		s.logger.Error("list blocks failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.BlockResponse, 0, len(blocks))
	for i := range blocks {
		result = append(result, *toBlockResponse(&blocks[i]))
	}
	return result, nil
}

func toBlockResponse(block *model.Block) *dto.BlockResponse {
	return &dto.BlockResponse{
		ID:     block.ID,
		Number: block.Number,
		Slug:   block.Slug,
	}
}
