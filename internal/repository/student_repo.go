package repository

import (
	"context"

	"gorm.io/gorm"

	"vtufest/backend/internal/model"
)

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	// GetForCollege 按 ID 查学生并限定学院，同时带出报名状态。
	// 没有报名记录的学生视为不存在（ErrRecordNotFound）
	GetForCollege(ctx context.Context, studentID, collegeID int64) (*model.StudentWithStatus, error)
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) GetForCollege(ctx context.Context, studentID, collegeID int64) (*model.StudentWithStatus, error) {
	var row model.StudentWithStatus
	err := r.db.WithContext(ctx).
		Table("students").
		Select("students.*, sa.status AS status").
		Joins("JOIN student_applications sa ON sa.student_id = students.student_id").
		Where("students.student_id = ? AND students.college_id = ?", studentID, collegeID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
