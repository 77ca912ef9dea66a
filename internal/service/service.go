package service

import (
	"go.uber.org/zap"

	"vtufest/backend/config"
	"vtufest/backend/internal/catalog"
	"vtufest/backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Assignment     AssignmentService
	Lock           LockService
	Event          EventService
	Manager        ManagerService
	ManagerProfile ManagerProfileService
	Export         ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	cat *catalog.Catalog,
	mailer Mailer,
	storage BlobStorage,
	logger *zap.Logger,
) *Service {
	return &Service{
		Assignment:     NewAssignmentService(repo, cat, logger),
		Lock:           NewLockService(repo, logger),
		Event:          NewEventService(repo, cat, logger),
		Manager:        NewManagerService(repo, mailer, cfg.Manager.DefaultPassword, cfg.Server.LoginRedirectURL, logger),
		ManagerProfile: NewManagerProfileService(repo, storage, cfg.Manager.SessionTTL, logger),
		Export:         NewExportService(repo, cat, logger),
	}
}
