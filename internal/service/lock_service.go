package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"vtufest/backend/internal/dto"
	"vtufest/backend/internal/repository"
)

// LockService 学院锁定（最终审批）与缴费状态查询
// 写操作的锁定闸门见 ensureUnlocked
type LockService interface {
	GetStatus(ctx context.Context, collegeID int64) (*dto.LockStatusResponse, error)
}

type lockService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewLockService 创建 LockService 实例
func NewLockService(repo *repository.Repository, logger *zap.Logger) LockService {
	return &lockService{repo: repo, logger: logger}
}

func (s *lockService) GetStatus(ctx context.Context, collegeID int64) (*dto.LockStatusResponse, error) {
	c, err := s.repo.College.GetWithPayment(ctx, collegeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCollegeNotFound
		}
		s.logger.Error("查询学院状态失败", zap.Int64("college_id", collegeID), zap.Error(err))
		return nil, err
	}

	return &dto.LockStatusResponse{
		IsLocked:          c.IsFinalApproved,
		FinalApprovedAt:   formatTime(c.FinalApprovedAt),
		CollegeCode:       c.CollegeCode,
		CollegeName:       c.CollegeName,
		PaymentStatus:     c.PaymentStatus,
		PaymentUploadedAt: formatTime(c.PaymentUploadedAt),
		PaymentRemarks:    c.PaymentRemarks,
	}, nil
}

// ensureUnlocked 锁定闸门，名单的增删都经过这里。
// 每次都读库（不缓存），传入事务内的仓储时读到的是事务视图。
// 学院不存在返回 ErrCollegeNotFound，已锁定返回 ErrCollegeLocked
func ensureUnlocked(ctx context.Context, colleges repository.CollegeRepository, collegeID int64) error {
	locked, err := colleges.IsFinalApproved(ctx, collegeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrCollegeNotFound
		}
		return err
	}
	if locked {
		return ErrCollegeLocked
	}
	return nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
