package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"vtufest/backend/internal/catalog"
	"vtufest/backend/internal/dto"
	"vtufest/backend/internal/model"
	"vtufest/backend/internal/repository"
)

// AssignmentService 赛项分配业务接口
//
// 说明：
//   - 名单按赛项分表，表名只由赛项目录解析，不接受外部输入
//   - ADD 的全部数据库检查与插入在同一事务内完成，任一步失败整体回滚
//   - 并发重复插入由名单表唯一约束兜底，冲突统一报 ErrAssignmentExists
type AssignmentService interface {
	// Fetch 当前参赛者、随队人员，以及可分配的学生与随队人员
	Fetch(ctx context.Context, collegeID int64, eventSlug string) (*dto.EventRosterResponse, error)
	// Add 将一人分配到赛项，返回成功提示
	Add(ctx context.Context, auth *dto.AuthContext, req *dto.AssignmentRequest) (string, error)
	// Remove 从赛项名单移除一人
	Remove(ctx context.Context, auth *dto.AuthContext, req *dto.AssignmentRequest) error
}

type assignmentService struct {
	repo    *repository.Repository
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, cat *catalog.Catalog, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, catalog: cat, logger: logger}
}

// ────────────────────── Fetch ──────────────────────

func (s *assignmentService) Fetch(ctx context.Context, collegeID int64, eventSlug string) (*dto.EventRosterResponse, error) {
	event, err := s.catalog.Resolve(eventSlug)
	if err != nil {
		return nil, err
	}

	// 四个集合读同一快照
	tx, err := s.repo.BeginReadTx(ctx)
	if err != nil {
		s.logger.Error("开启只读事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if tx != nil {
			tx.Rollback()
		}
	}()
	roster := s.repo.WithTx(tx).Roster

	participants, err := roster.ListByRole(ctx, event.Table, collegeID, model.RosterParticipant)
	if err != nil {
		s.logger.Error("查询参赛者失败", zap.String("event", event.Slug), zap.Error(err))
		return nil, err
	}
	accompanists, err := roster.ListByRole(ctx, event.Table, collegeID, model.RosterAccompanist)
	if err != nil {
		s.logger.Error("查询随队人员名单失败", zap.String("event", event.Slug), zap.Error(err))
		return nil, err
	}
	students, err := roster.ListAvailableStudents(ctx, event.Table, collegeID)
	if err != nil {
		s.logger.Error("查询可分配学生失败", zap.String("event", event.Slug), zap.Error(err))
		return nil, err
	}
	accs, err := roster.ListAvailableAccompanists(ctx, event.Table, collegeID)
	if err != nil {
		s.logger.Error("查询可分配随队人员失败", zap.String("event", event.Slug), zap.Error(err))
		return nil, err
	}

	resp := &dto.EventRosterResponse{
		EventSlug:             event.Slug,
		Participants:          toRosterPersons(participants),
		Accompanists:          toRosterPersons(accompanists),
		AvailableStudents:     make([]dto.AvailableStudent, 0, len(students)),
		AvailableAccompanists: make([]dto.AvailableAccompanist, 0, len(accs)),
	}
	for _, st := range students {
		resp.AvailableStudents = append(resp.AvailableStudents, dto.AvailableStudent{
			StudentID: st.StudentID,
			FullName:  st.FullName,
			USN:       st.USN,
			Email:     st.Email,
			Phone:     st.Phone,
		})
	}
	for _, a := range accs {
		resp.AvailableAccompanists = append(resp.AvailableAccompanists, dto.AvailableAccompanist{
			AccompanistID:   a.AccompanistID,
			FullName:        a.FullName,
			Phone:           a.Phone,
			Email:           a.Email,
			AccompanistType: a.AccompanistType,
		})
	}
	return resp, nil
}

// ────────────────────── Add ──────────────────────
//
// 检查顺序（遇到第一个失败即返回）：
//  1. 赛项存在
//  2. 必填字段与枚举值
//  3. 随队人员不能作为参赛者
//  4. 学院未锁定
//  5. 学生属于本学院且报名已审核通过
//  6. 随队人员属于本学院
//  7. 名单中尚无此人

func (s *assignmentService) Add(ctx context.Context, auth *dto.AuthContext, req *dto.AssignmentRequest) (string, error) {
	event, err := s.catalog.Resolve(req.EventSlug)
	if err != nil {
		return "", err
	}
	if req.PersonID <= 0 || req.PersonType == "" || req.EventType == "" {
		return "", ErrAddFieldsRequired
	}
	if req.PersonType != model.PersonStudent && req.PersonType != model.PersonAccompanist {
		return "", ErrInvalidPersonType
	}
	role, ok := rosterRoleFor(req.EventType)
	if !ok {
		return "", ErrInvalidEventType
	}
	if req.PersonType == model.PersonAccompanist && role == model.RosterParticipant {
		return "", ErrAccompanistAsParticipant
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return "", err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()
	rollback := func() {
		if tx != nil {
			tx.Rollback()
		}
	}

	txRepo := s.repo.WithTx(tx)

	if err := ensureUnlocked(ctx, txRepo.College, auth.CollegeID); err != nil {
		rollback()
		if _, typed := asAppError(err); !typed {
			s.logger.Error("查询学院锁定状态失败", zap.Int64("college_id", auth.CollegeID), zap.Error(err))
		}
		return "", err
	}

	entry := &model.RosterEntry{
		CollegeID:        auth.CollegeID,
		PersonType:       req.PersonType,
		PersonID:         req.PersonID,
		Role:             role,
		AssignedByUserID: &auth.UserID,
	}

	switch req.PersonType {
	case model.PersonStudent:
		student, err := txRepo.Student.GetForCollege(ctx, req.PersonID, auth.CollegeID)
		if err != nil {
			rollback()
			if repository.IsNotFound(err) {
				return "", ErrStudentNotFound
			}
			s.logger.Error("查询学生失败", zap.Int64("student_id", req.PersonID), zap.Error(err))
			return "", err
		}
		if student.Status != model.ApplicationApproved {
			rollback()
			return "", ErrStudentNotApproved
		}
		usn := student.USN
		entry.FullName = student.FullName
		entry.USN = &usn
		entry.Phone = student.Phone
		entry.Email = student.Email
		entry.PhotoURL = student.PhotoURL

	case model.PersonAccompanist:
		acc, err := txRepo.Accompanist.GetForCollege(ctx, req.PersonID, auth.CollegeID)
		if err != nil {
			rollback()
			if repository.IsNotFound(err) {
				return "", ErrAccompanistNotFound
			}
			s.logger.Error("查询随队人员失败", zap.Int64("accompanist_id", req.PersonID), zap.Error(err))
			return "", err
		}
		entry.FullName = acc.FullName
		entry.Phone = acc.Phone
		entry.Email = acc.Email
		entry.PhotoURL = acc.PassportPhotoURL
	}

	exists, err := txRepo.Roster.Exists(ctx, event.Table, auth.CollegeID, req.PersonType, req.PersonID)
	if err != nil {
		rollback()
		s.logger.Error("检查重复分配失败", zap.String("event", event.Slug), zap.Error(err))
		return "", err
	}
	if exists {
		rollback()
		return "", ErrAssignmentExists
	}

	college, err := txRepo.College.GetByID(ctx, auth.CollegeID)
	if err != nil {
		rollback()
		if repository.IsNotFound(err) {
			return "", ErrCollegeNotFound
		}
		s.logger.Error("查询学院失败", zap.Int64("college_id", auth.CollegeID), zap.Error(err))
		return "", err
	}
	entry.CollegeName = college.CollegeName

	if err := txRepo.Roster.Create(ctx, event.Table, entry); err != nil {
		rollback()
		if repository.IsUniqueViolation(err) {
			return "", ErrAssignmentExists
		}
		s.logger.Error("写入名单失败", zap.String("event", event.Slug), zap.Error(err))
		return "", err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			if repository.IsUniqueViolation(err) {
				return "", ErrAssignmentExists
			}
			return "", err
		}
	}

	s.logger.Info("赛项分配成功",
		zap.String("event", event.Slug),
		zap.Int64("college_id", auth.CollegeID),
		zap.String("person_type", req.PersonType),
		zap.Int64("person_id", req.PersonID),
		zap.String("role", role),
	)

	who := "Student"
	if req.PersonType == model.PersonAccompanist {
		who = "Accompanist"
	}
	return fmt.Sprintf("%s assigned as %s successfully", who, req.EventType), nil
}

// ────────────────────── Remove ──────────────────────

func (s *assignmentService) Remove(ctx context.Context, auth *dto.AuthContext, req *dto.AssignmentRequest) error {
	event, err := s.catalog.Resolve(req.EventSlug)
	if err != nil {
		return err
	}
	if req.PersonID <= 0 || req.PersonType == "" {
		return ErrRemoveFieldsRequired
	}
	if req.PersonType != model.PersonStudent && req.PersonType != model.PersonAccompanist {
		return ErrInvalidPersonType
	}

	if err := ensureUnlocked(ctx, s.repo.College, auth.CollegeID); err != nil {
		if _, typed := asAppError(err); !typed {
			s.logger.Error("查询学院锁定状态失败", zap.Int64("college_id", auth.CollegeID), zap.Error(err))
		}
		return err
	}

	affected, err := s.repo.Roster.Delete(ctx, event.Table, auth.CollegeID, req.PersonType, req.PersonID)
	if err != nil {
		s.logger.Error("删除名单失败", zap.String("event", event.Slug), zap.Error(err))
		return err
	}
	if affected == 0 {
		return ErrAssignmentNotFound
	}

	s.logger.Info("移除赛项分配",
		zap.String("event", event.Slug),
		zap.Int64("college_id", auth.CollegeID),
		zap.String("person_type", req.PersonType),
		zap.Int64("person_id", req.PersonID),
	)
	return nil
}

// ── 内部辅助方法 ──

// rosterRoleFor participating → participant，accompanying → accompanist
func rosterRoleFor(eventType string) (string, bool) {
	switch eventType {
	case dto.EventTypeParticipating:
		return model.RosterParticipant, true
	case dto.EventTypeAccompanying:
		return model.RosterAccompanist, true
	}
	return "", false
}

func toRosterPersons(entries []model.RosterEntry) []dto.RosterPerson {
	out := make([]dto.RosterPerson, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.RosterPerson{
			PersonID:   e.PersonID,
			PersonType: e.PersonType,
			FullName:   e.FullName,
			Phone:      e.Phone,
			Email:      e.Email,
		})
	}
	return out
}
