package repository

import (
	"context"

	"gorm.io/gorm"

	"vtufest/backend/internal/model"
)

// AccompanistRepository 随队人员数据访问接口
type AccompanistRepository interface {
	Create(ctx context.Context, acc *model.Accompanist) error
	GetForCollege(ctx context.Context, accompanistID, collegeID int64) (*model.Accompanist, error)
	HasTeamManager(ctx context.Context, collegeID int64) (bool, error)
}

// accompanistRepo AccompanistRepository 的 GORM 实现
type accompanistRepo struct {
	db *gorm.DB
}

// NewAccompanistRepo 创建 AccompanistRepository 实例
func NewAccompanistRepo(db *gorm.DB) AccompanistRepository {
	return &accompanistRepo{db: db}
}

func (r *accompanistRepo) Create(ctx context.Context, acc *model.Accompanist) error {
	return r.db.WithContext(ctx).Create(acc).Error
}

func (r *accompanistRepo) GetForCollege(ctx context.Context, accompanistID, collegeID int64) (*model.Accompanist, error) {
	var acc model.Accompanist
	err := r.db.WithContext(ctx).
		Where("accompanist_id = ? AND college_id = ?", accompanistID, collegeID).
		Take(&acc).Error
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *accompanistRepo) HasTeamManager(ctx context.Context, collegeID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Accompanist{}).
		Where("college_id = ? AND is_team_manager = ?", collegeID, true).
		Count(&count).Error
	return count > 0, err
}
