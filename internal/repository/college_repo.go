package repository

import (
	"context"

	"gorm.io/gorm"

	"vtufest/backend/internal/model"
)

// CollegeRepository 学院数据访问接口
type CollegeRepository interface {
	GetByID(ctx context.Context, id int64) (*model.College, error)
	// IsFinalApproved 只读取锁定标志，每次都查库
	IsFinalApproved(ctx context.Context, id int64) (bool, error)
	GetWithPayment(ctx context.Context, id int64) (*model.CollegeWithPayment, error)
}

// collegeRepo CollegeRepository 的 GORM 实现
type collegeRepo struct {
	db *gorm.DB
}

// NewCollegeRepo 创建 CollegeRepository 实例
func NewCollegeRepo(db *gorm.DB) CollegeRepository {
	return &collegeRepo{db: db}
}

func (r *collegeRepo) GetByID(ctx context.Context, id int64) (*model.College, error) {
	var college model.College
	err := r.db.WithContext(ctx).
		Where("college_id = ?", id).
		Take(&college).Error
	if err != nil {
		return nil, err
	}
	return &college, nil
}

func (r *collegeRepo) IsFinalApproved(ctx context.Context, id int64) (bool, error) {
	var flags []bool
	err := r.db.WithContext(ctx).
		Model(&model.College{}).
		Where("college_id = ?", id).
		Limit(1).
		Pluck("is_final_approved", &flags).Error
	if err != nil {
		return false, err
	}
	if len(flags) == 0 {
		return false, gorm.ErrRecordNotFound
	}
	return flags[0], nil
}

func (r *collegeRepo) GetWithPayment(ctx context.Context, id int64) (*model.CollegeWithPayment, error) {
	var row model.CollegeWithPayment
	err := r.db.WithContext(ctx).
		Table("colleges").
		Select("colleges.*, pr.status AS payment_status, pr.uploaded_at AS payment_uploaded_at, pr.admin_remarks AS payment_remarks").
		Joins("LEFT JOIN payment_receipts pr ON pr.college_id = colleges.college_id").
		Where("colleges.college_id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
