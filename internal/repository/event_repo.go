package repository

import (
	"context"

	"gorm.io/gorm"

	"vtufest/backend/internal/model"
)

// EventRepository 赛项配置数据访问接口
type EventRepository interface {
	ListActive(ctx context.Context) ([]model.Event, error)
}

// eventRepo EventRepository 的 GORM 实现
type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo 创建 EventRepository 实例
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) ListActive(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("event_name ASC").
		Find(&events).Error
	return events, err
}
