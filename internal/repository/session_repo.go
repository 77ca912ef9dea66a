package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"vtufest/backend/internal/model"
)

// SessionRepository 领队资料补全会话数据访问接口
type SessionRepository interface {
	Create(ctx context.Context, session *model.AccompanistSession) error
	GetForCollege(ctx context.Context, sessionID string, collegeID int64) (*model.AccompanistSession, error)
	Delete(ctx context.Context, sessionID string) error
	// DeleteExpired 删除 before 之前过期的会话，返回删除条数
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// sessionRepo SessionRepository 的 GORM 实现
type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, session *model.AccompanistSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetForCollege(ctx context.Context, sessionID string, collegeID int64) (*model.AccompanistSession, error) {
	var session model.AccompanistSession
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND college_id = ?", sessionID, collegeID).
		Take(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) Delete(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&model.AccompanistSession{}).Error
}

func (r *sessionRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", before).
		Delete(&model.AccompanistSession{})
	return result.RowsAffected, result.Error
}
