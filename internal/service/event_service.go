package service

import (
	"context"

	"go.uber.org/zap"

	"vtufest/backend/internal/catalog"
	"vtufest/backend/internal/dto"
	"vtufest/backend/internal/repository"
)

// EventService 赛项列表及本学院已用名额
type EventService interface {
	List(ctx context.Context, collegeID int64) ([]dto.EventResponse, error)
}

type eventService struct {
	repo    *repository.Repository
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, cat *catalog.Catalog, logger *zap.Logger) EventService {
	return &eventService{repo: repo, catalog: cat, logger: logger}
}

func (s *eventService) List(ctx context.Context, collegeID int64) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.ListActive(ctx)
	if err != nil {
		s.logger.Error("查询赛项列表失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		item := dto.EventResponse{
			EventID:                   e.EventID,
			EventCode:                 e.EventCode,
			EventName:                 e.EventName,
			EventType:                 e.EventType,
			MaxGroupsPerCollege:       e.MaxGroupsPerCollege,
			MaxParticipantsPerCollege: e.MaxParticipantsPerCollege,
			MaxAccompanistsPerCollege: e.MaxAccompanistsPerCollege,
		}

		// 不在目录中的赛项没有名单表，用量记 0
		if ce, ok := s.catalog.Lookup(e.EventCode); ok {
			item.Category = string(ce.Category)
			p, a, err := s.repo.Roster.CountByRole(ctx, ce.Table, collegeID)
			if err != nil {
				s.logger.Error("统计赛项名额失败", zap.String("event", e.EventCode), zap.Error(err))
				return nil, err
			}
			item.CurrentParticipants = p
			item.CurrentAccompanists = a
		}
		out = append(out, item)
	}
	return out, nil
}
