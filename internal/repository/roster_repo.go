package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"vtufest/backend/internal/model"
)

// RosterRepository 赛项名单数据访问接口。
// 所有赛项共用同一套操作，table 由赛项目录解析得到，不接受外部输入。
type RosterRepository interface {
	// ListByRole 学院在该赛项中指定角色的名单，按姓名升序
	ListByRole(ctx context.Context, table string, collegeID int64, role string) ([]model.RosterEntry, error)
	// ListByCollege 学院在该赛项中的全部名单，参赛者在前
	ListByCollege(ctx context.Context, table string, collegeID int64) ([]model.RosterEntry, error)
	// ListAvailableStudents 已审核通过且未以学生身份出现在名单中的学生
	ListAvailableStudents(ctx context.Context, table string, collegeID int64) ([]model.Student, error)
	// ListAvailableAccompanists 未以随队人员身份出现在名单中的随队人员
	ListAvailableAccompanists(ctx context.Context, table string, collegeID int64) ([]model.Accompanist, error)
	Exists(ctx context.Context, table string, collegeID int64, personType string, personID int64) (bool, error)
	Create(ctx context.Context, table string, entry *model.RosterEntry) error
	// Delete 返回受影响行数，0 表示不存在
	Delete(ctx context.Context, table string, collegeID int64, personType string, personID int64) (int64, error)
	CountByRole(ctx context.Context, table string, collegeID int64) (participants, accompanists int64, err error)
}

// rosterRepo RosterRepository 的 GORM 实现
type rosterRepo struct {
	db *gorm.DB
}

// NewRosterRepo 创建 RosterRepository 实例
func NewRosterRepo(db *gorm.DB) RosterRepository {
	return &rosterRepo{db: db}
}

func (r *rosterRepo) ListByRole(ctx context.Context, table string, collegeID int64, role string) ([]model.RosterEntry, error) {
	entries := make([]model.RosterEntry, 0)
	err := r.db.WithContext(ctx).
		Table(table).
		Where("college_id = ? AND role = ?", collegeID, role).
		Order("full_name ASC").
		Find(&entries).Error
	return entries, err
}

func (r *rosterRepo) ListByCollege(ctx context.Context, table string, collegeID int64) ([]model.RosterEntry, error) {
	entries := make([]model.RosterEntry, 0)
	err := r.db.WithContext(ctx).
		Table(table).
		Where("college_id = ?", collegeID).
		Order("role DESC, full_name ASC"). // participant 排在 accompanist 之前
		Find(&entries).Error
	return entries, err
}

func (r *rosterRepo) ListAvailableStudents(ctx context.Context, table string, collegeID int64) ([]model.Student, error) {
	students := make([]model.Student, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Select("students.*").
		Joins("JOIN student_applications sa ON sa.student_id = students.student_id").
		Where("students.college_id = ? AND sa.status = ?", collegeID, model.ApplicationApproved).
		Where("NOT EXISTS (SELECT 1 FROM ? ev WHERE ev.college_id = students.college_id AND ev.person_type = ? AND ev.person_id = students.student_id)",
			clause.Table{Name: table}, model.PersonStudent).
		Order("students.full_name ASC").
		Find(&students).Error
	return students, err
}

func (r *rosterRepo) ListAvailableAccompanists(ctx context.Context, table string, collegeID int64) ([]model.Accompanist, error) {
	accs := make([]model.Accompanist, 0)
	err := r.db.WithContext(ctx).
		Model(&model.Accompanist{}).
		Where("accompanists.college_id = ?", collegeID).
		Where("NOT EXISTS (SELECT 1 FROM ? ev WHERE ev.college_id = accompanists.college_id AND ev.person_type = ? AND ev.person_id = accompanists.accompanist_id)",
			clause.Table{Name: table}, model.PersonAccompanist).
		Order("accompanists.full_name ASC").
		Find(&accs).Error
	return accs, err
}

func (r *rosterRepo) Exists(ctx context.Context, table string, collegeID int64, personType string, personID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table(table).
		Where("college_id = ? AND person_type = ? AND person_id = ?", collegeID, personType, personID).
		Count(&count).Error
	return count > 0, err
}

func (r *rosterRepo) Create(ctx context.Context, table string, entry *model.RosterEntry) error {
	return r.db.WithContext(ctx).Table(table).Create(entry).Error
}

func (r *rosterRepo) Delete(ctx context.Context, table string, collegeID int64, personType string, personID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Table(table).
		Where("college_id = ? AND person_type = ? AND person_id = ?", collegeID, personType, personID).
		Delete(&model.RosterEntry{})
	return result.RowsAffected, result.Error
}

func (r *rosterRepo) CountByRole(ctx context.Context, table string, collegeID int64) (int64, int64, error) {
	var rows []struct {
		Role  string
		Total int64
	}
	err := r.db.WithContext(ctx).
		Table(table).
		Select("role, COUNT(*) AS total").
		Where("college_id = ?", collegeID).
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, err
	}

	var participants, accompanists int64
	for _, row := range rows {
		switch row.Role {
		case model.RosterParticipant:
			participants = row.Total
		case model.RosterAccompanist:
			accompanists = row.Total
		}
	}
	return participants, accompanists, nil
}
