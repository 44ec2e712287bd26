package service

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Dashulik10/Hostel-Organization/config"
	"github.com/Dashulik10/Hostel-Organization/internal/repository"
	"github.com/Dashulik10/Hostel-Organization/pkg/jwt"
	"github.com/Dashulik10/Hostel-Organization/pkg/redis"
)

// ErrPermissionDenied is returned whenever the access policy rejects
// the caller for a mutating operation.
var ErrPermissionDenied = errors.New("permission denied")

// Service aggregates every business service.
type Service struct {
	Auth       AuthService
	Block      BlockService
	Event      EventService
	Enrollment EnrollmentService
	Suw        SuwService
	Export     ExportService
}

// NewService wires the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Block:      NewBlockService(repo, logger),
		Event:      NewEventService(repo, logger),
		Enrollment: NewEnrollmentService(repo, logger),
		Suw:        NewSuwService(repo, logger),
		Export:     NewExportService(repo, logger),
	}
}
