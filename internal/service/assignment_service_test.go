package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"vtufest/backend/internal/catalog"
	"vtufest/backend/internal/dto"
	"vtufest/backend/internal/model"
	apperrors "vtufest/backend/pkg/errors"
)

// ── 测试辅助 ──

const testCollege int64 = 101

func setupTestAssignmentService() (AssignmentService, *mockRepos) {
	repo, m := newMockRepository()
	m.college.colleges[testCollege] = &model.College{CollegeID: testCollege, CollegeCode: "C101", CollegeName: "Test College"}
	m.college.colleges[202] = &model.College{CollegeID: 202, CollegeCode: "C202", CollegeName: "Other College"}

	m.student.add(testCollege, 55, "S55", model.ApplicationApproved)
	m.student.add(testCollege, 56, "Pending", model.ApplicationPending)
	m.student.add(202, 77, "Outsider", model.ApplicationApproved)
	m.accompanist.accs[9] = &model.Accompanist{AccompanistID: 9, CollegeID: testCollege, FullName: "Tabla", AccompanistType: "professional"}

	svc := NewAssignmentService(repo, catalog.Default(), zap.NewNop())
	return svc, m
}

func testAuth() *dto.AuthContext {
	return &dto.AuthContext{UserID: 1, CollegeID: testCollege, Role: model.RoleManager}
}

func addReq(slug string, personID int64, personType, eventType string) *dto.AssignmentRequest {
	return &dto.AssignmentRequest{
		Action:     dto.ActionAdd,
		EventSlug:  slug,
		PersonID:   personID,
		PersonType: personType,
		EventType:  eventType,
	}
}

// ── Add 测试 ──

func TestAssignmentService_Add_StudentThenFetch(t *testing.T) {
	svc, m := setupTestAssignmentService()
	ctx := context.Background()

	msg, err := svc.Add(ctx, testAuth(), addReq("quiz", 55, "student", "participating"))
	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}
	if msg != "Student assigned as participating successfully" {
		t.Errorf("提示文案不符: %s", msg)
	}

	rows := m.roster.tables["event_quiz"]
	if len(rows) != 1 {
		t.Fatalf("期望 event_quiz 中 1 行，实际 %d", len(rows))
	}
	if rows[0].CollegeName != "Test College" || rows[0].Role != model.RosterParticipant {
		t.Errorf("名单快照不符: %+v", rows[0])
	}
	if rows[0].AssignedByUserID == nil || *rows[0].AssignedByUserID != 1 {
		t.Error("应记录分配人")
	}

	roster, err := svc.Fetch(ctx, testCollege, "quiz")
	if err != nil {
		t.Fatalf("Fetch 应成功: %v", err)
	}
	if len(roster.Participants) != 1 || roster.Participants[0].PersonID != 55 {
		t.Errorf("S55 应出现在参赛者中: %+v", roster.Participants)
	}
	for _, s := range roster.AvailableStudents {
		if s.StudentID == 55 {
			t.Error("S55 不应再出现在可分配学生中")
		}
	}
}

func TestAssignmentService_Add_Duplicate(t *testing.T) {
	svc, m := setupTestAssignmentService()
	ctx := context.Background()

	if _, err := svc.Add(ctx, testAuth(), addReq("quiz", 55, "student", "participating")); err != nil {
		t.Fatalf("首次 Add 应成功: %v", err)
	}
	_, err := svc.Add(ctx, testAuth(), addReq("quiz", 55, "student", "participating"))
	if !errors.Is(err, ErrAssignmentExists) {
		t.Errorf("期望 ErrAssignmentExists，实际: %v", err)
	}
	if n := len(m.roster.tables["event_quiz"]); n != 1 {
		t.Errorf("名单行数应保持 1，实际 %d", n)
	}
}

// 并发场景下应用层检查通过但插入撞上唯一约束
func TestAssignmentService_Add_UniqueViolationIsConflict(t *testing.T) {
	svc, m := setupTestAssignmentService()
	m.roster.createErr = fmt.Errorf("insert event_quiz: %w", gorm.ErrDuplicatedKey)

	_, err := svc.Add(context.Background(), testAuth(), addReq("quiz", 55, "student", "participating"))
	if !errors.Is(err, ErrAssignmentExists) {
		t.Errorf("期望 ErrAssignmentExists，实际: %v", err)
	}
}

func TestAssignmentService_Add_Locked(t *testing.T) {
	svc, m := setupTestAssignmentService()
	m.college.colleges[testCollege].IsFinalApproved = true

	_, err := svc.Add(context.Background(), testAuth(), addReq("quiz", 55, "student", "participating"))
	if !errors.Is(err, ErrCollegeLocked) {
		t.Fatalf("期望 ErrCollegeLocked，实际: %v", err)
	}
	if apperrors.KindOf(err) != apperrors.KindLocked {
		t.Error("锁定错误应可与校验错误区分")
	}
	if len(m.roster.tables["event_quiz"]) != 0 || m.roster.createCalls != 0 {
		t.Error("锁定时不应写入名单")
	}
}

func TestAssignmentService_Add_AccompanistAsParticipant(t *testing.T) {
	svc, m := setupTestAssignmentService()
	// 学院已锁定时仍先报组合非法
	m.college.colleges[testCollege].IsFinalApproved = true

	_, err := svc.Add(context.Background(), testAuth(), addReq("quiz", 9, "accompanist", "participating"))
	if !errors.Is(err, ErrAccompanistAsParticipant) {
		t.Errorf("期望 ErrAccompanistAsParticipant，实际: %v", err)
	}
	if m.college.lockReads != 0 {
		t.Error("组合校验应在读取锁定状态之前")
	}
}

func TestAssignmentService_Add_ValidationOrder(t *testing.T) {
	svc, _ := setupTestAssignmentService()
	ctx := context.Background()

	cases := []struct {
		name string
		req  *dto.AssignmentRequest
		want error
	}{
		{"未知赛项", addReq("hackathon", 55, "student", "participating"), catalog.ErrUnknownEvent},
		{"缺少赛项", addReq("", 55, "student", "participating"), catalog.ErrUnknownEvent},
		{"缺少 person_id", addReq("quiz", 0, "student", "participating"), ErrAddFieldsRequired},
		{"缺少 event_type", addReq("quiz", 55, "student", ""), ErrAddFieldsRequired},
		{"非法 person_type", addReq("quiz", 55, "judge", "participating"), ErrInvalidPersonType},
		{"非法 event_type", addReq("quiz", 55, "student", "judging"), ErrInvalidEventType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(ctx, testAuth(), tc.req)
			if !errors.Is(err, tc.want) {
				t.Errorf("期望 %v，实际: %v", tc.want, err)
			}
			if apperrors.KindOf(err) != apperrors.KindValidation {
				t.Errorf("期望校验失败，实际 kind=%s", apperrors.KindOf(err))
			}
		})
	}
}

func TestAssignmentService_Add_StudentChecks(t *testing.T) {
	svc, _ := setupTestAssignmentService()
	ctx := context.Background()

	_, err := svc.Add(ctx, testAuth(), addReq("quiz", 999, "student", "participating"))
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("不存在的学生期望 ErrStudentNotFound，实际: %v", err)
	}

	_, err = svc.Add(ctx, testAuth(), addReq("quiz", 77, "student", "participating"))
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("其他学院的学生期望 ErrStudentNotFound，实际: %v", err)
	}

	_, err = svc.Add(ctx, testAuth(), addReq("quiz", 56, "student", "participating"))
	if !errors.Is(err, ErrStudentNotApproved) {
		t.Errorf("未审核学生期望 ErrStudentNotApproved，实际: %v", err)
	}
	if apperrors.KindOf(err) != apperrors.KindAuthorization {
		t.Error("未审核学生应为 403 类错误")
	}
}

func TestAssignmentService_Add_Accompanist(t *testing.T) {
	svc, m := setupTestAssignmentService()
	ctx := context.Background()

	_, err := svc.Add(ctx, testAuth(), addReq("folk_tribal_dance", 404, "accompanist", "accompanying"))
	if !errors.Is(err, ErrAccompanistNotFound) {
		t.Errorf("期望 ErrAccompanistNotFound，实际: %v", err)
	}

	msg, err := svc.Add(ctx, testAuth(), addReq("folk_tribal_dance", 9, "accompanist", "accompanying"))
	if err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}
	if msg != "Accompanist assigned as accompanying successfully" {
		t.Errorf("提示文案不符: %s", msg)
	}
	rows := m.roster.tables["event_folk_dance"]
	if len(rows) != 1 || rows[0].Role != model.RosterAccompanist {
		t.Errorf("应写入 event_folk_dance 且角色为 accompanist: %+v", rows)
	}
}

func TestAssignmentService_Add_StudentAsAccompanist(t *testing.T) {
	svc, m := setupTestAssignmentService()

	if _, err := svc.Add(context.Background(), testAuth(), addReq("group_song_indian", 55, "student", "accompanying")); err != nil {
		t.Fatalf("学生可作为随队人员: %v", err)
	}
	rows := m.roster.tables["event_group_song_indian"]
	if len(rows) != 1 || rows[0].PersonType != model.PersonStudent || rows[0].Role != model.RosterAccompanist {
		t.Errorf("名单行不符: %+v", rows)
	}
}

func TestAssignmentService_Add_CollegeMissing(t *testing.T) {
	svc, _ := setupTestAssignmentService()
	auth := &dto.AuthContext{UserID: 1, CollegeID: 999, Role: model.RoleManager}

	_, err := svc.Add(context.Background(), auth, addReq("quiz", 55, "student", "participating"))
	if !errors.Is(err, ErrCollegeNotFound) {
		t.Errorf("期望 ErrCollegeNotFound，实际: %v", err)
	}
}

func TestAssignmentService_Add_StorageErrorIsInternal(t *testing.T) {
	svc, m := setupTestAssignmentService()
	m.roster.createErr = errStorage

	_, err := svc.Add(context.Background(), testAuth(), addReq("quiz", 55, "student", "participating"))
	if !errors.Is(err, errStorage) {
		t.Errorf("期望透传存储错误，实际: %v", err)
	}
	if apperrors.KindOf(err) != apperrors.KindInternal {
		t.Error("存储错误应归为 Internal")
	}
}

// ── Remove 测试 ──

func TestAssignmentService_Remove_Twice(t *testing.T) {
	svc, _ := setupTestAssignmentService()
	ctx := context.Background()

	if _, err := svc.Add(ctx, testAuth(), addReq("quiz", 55, "student", "participating")); err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}

	req := &dto.AssignmentRequest{Action: dto.ActionRemove, EventSlug: "quiz", PersonID: 55, PersonType: "student"}
	if err := svc.Remove(ctx, testAuth(), req); err != nil {
		t.Fatalf("首次 Remove 应成功: %v", err)
	}
	if err := svc.Remove(ctx, testAuth(), req); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("第二次 Remove 期望 ErrAssignmentNotFound，实际: %v", err)
	}
}

func TestAssignmentService_Remove_NeverAssigned(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	req := &dto.AssignmentRequest{EventSlug: "debate", PersonID: 55, PersonType: "student"}
	if err := svc.Remove(context.Background(), testAuth(), req); !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("期望 ErrAssignmentNotFound，实际: %v", err)
	}
}

func TestAssignmentService_Remove_Validation(t *testing.T) {
	svc, _ := setupTestAssignmentService()
	ctx := context.Background()

	if err := svc.Remove(ctx, testAuth(), &dto.AssignmentRequest{EventSlug: "nope", PersonID: 55, PersonType: "student"}); !errors.Is(err, catalog.ErrUnknownEvent) {
		t.Errorf("期望 ErrUnknownEvent，实际: %v", err)
	}
	if err := svc.Remove(ctx, testAuth(), &dto.AssignmentRequest{EventSlug: "quiz", PersonType: "student"}); !errors.Is(err, ErrRemoveFieldsRequired) {
		t.Errorf("期望 ErrRemoveFieldsRequired，实际: %v", err)
	}
}

func TestAssignmentService_Remove_Locked(t *testing.T) {
	svc, m := setupTestAssignmentService()
	ctx := context.Background()

	if _, err := svc.Add(ctx, testAuth(), addReq("quiz", 55, "student", "participating")); err != nil {
		t.Fatalf("Add 应成功: %v", err)
	}
	m.college.colleges[testCollege].IsFinalApproved = true

	req := &dto.AssignmentRequest{EventSlug: "quiz", PersonID: 55, PersonType: "student"}
	if err := svc.Remove(ctx, testAuth(), req); !errors.Is(err, ErrCollegeLocked) {
		t.Errorf("期望 ErrCollegeLocked，实际: %v", err)
	}
	if len(m.roster.tables["event_quiz"]) != 1 {
		t.Error("锁定时不应删除名单")
	}
}

// ── Fetch 测试 ──

func TestAssignmentService_Fetch_SetsAreDisjoint(t *testing.T) {
	svc, m := setupTestAssignmentService()
	ctx := context.Background()
	m.student.add(testCollege, 57, "Asha", model.ApplicationApproved)
	m.accompanist.accs[10] = &model.Accompanist{AccompanistID: 10, CollegeID: testCollege, FullName: "Harmonium"}

	if _, err := svc.Add(ctx, testAuth(), addReq("mime", 55, "student", "participating")); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(ctx, testAuth(), addReq("mime", 9, "accompanist", "accompanying")); err != nil {
		t.Fatal(err)
	}

	r, err := svc.Fetch(ctx, testCollege, "mime")
	if err != nil {
		t.Fatalf("Fetch 应成功: %v", err)
	}

	current := map[int64]bool{}
	for _, p := range r.Participants {
		current[p.PersonID] = true
	}
	for _, s := range r.AvailableStudents {
		if current[s.StudentID] {
			t.Errorf("学生 %d 同时出现在参赛者与可分配列表", s.StudentID)
		}
	}
	currentAcc := map[int64]bool{}
	for _, a := range r.Accompanists {
		currentAcc[a.PersonID] = true
	}
	for _, a := range r.AvailableAccompanists {
		if currentAcc[a.AccompanistID] {
			t.Errorf("随队人员 %d 同时出现在名单与可分配列表", a.AccompanistID)
		}
	}

	if len(r.AvailableStudents) != 1 || r.AvailableStudents[0].FullName != "Asha" {
		t.Errorf("可分配学生应只有 Asha（未审核与外校学生不可见）: %+v", r.AvailableStudents)
	}
	if len(r.AvailableAccompanists) != 1 || r.AvailableAccompanists[0].AccompanistID != 10 {
		t.Errorf("可分配随队人员不符: %+v", r.AvailableAccompanists)
	}
}

func TestAssignmentService_Fetch_UnknownEvent(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	_, err := svc.Fetch(context.Background(), testCollege, "event_quiz")
	if !errors.Is(err, catalog.ErrUnknownEvent) {
		t.Errorf("期望 ErrUnknownEvent，实际: %v", err)
	}
}

func TestAssignmentService_Fetch_EmptyListsNotNil(t *testing.T) {
	svc, _ := setupTestAssignmentService()

	r, err := svc.Fetch(context.Background(), 202, "rangoli")
	if err != nil {
		t.Fatalf("Fetch 应成功: %v", err)
	}
	if r.Participants == nil || r.Accompanists == nil {
		t.Error("空名单应序列化为 []")
	}
}
