package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"vtufest/backend/internal/model"
	"vtufest/backend/internal/repository"
)

// ── Mock CollegeRepository ──

type mockCollegeRepo struct {
	colleges  map[int64]*model.College
	receipts  map[int64]*model.PaymentReceipt
	lockReads int
	lockErr   error
}

func newMockCollegeRepo() *mockCollegeRepo {
	return &mockCollegeRepo{
		colleges: make(map[int64]*model.College),
		receipts: make(map[int64]*model.PaymentReceipt),
	}
}

func (m *mockCollegeRepo) GetByID(_ context.Context, id int64) (*model.College, error) {
	if c, ok := m.colleges[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCollegeRepo) IsFinalApproved(_ context.Context, id int64) (bool, error) {
	m.lockReads++
	if m.lockErr != nil {
		return false, m.lockErr
	}
	if c, ok := m.colleges[id]; ok {
		return c.IsFinalApproved, nil
	}
	return false, gorm.ErrRecordNotFound
}

func (m *mockCollegeRepo) GetWithPayment(_ context.Context, id int64) (*model.CollegeWithPayment, error) {
	c, ok := m.colleges[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	row := &model.CollegeWithPayment{College: *c}
	if r, ok := m.receipts[id]; ok {
		status := r.Status
		row.PaymentStatus = &status
		row.PaymentUploadedAt = r.UploadedAt
		row.PaymentRemarks = r.AdminRemarks
	}
	return row, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
	// beforeCreate 在唯一性检查前执行，用于模拟并发写入
	beforeCreate func()
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.beforeCreate != nil {
		hook := m.beforeCreate
		m.beforeCreate = nil
		hook()
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
		// uq_users_active_manager
		if isActiveManager(u) && isActiveManager(user) && *u.CollegeID == *user.CollegeID {
			return gorm.ErrDuplicatedKey
		}
	}
	user.UserID = m.nextID
	m.nextID++
	m.users[user.UserID] = user
	return nil
}

func isActiveManager(u *model.User) bool {
	return u.Role == model.RoleManager && u.IsActive && u.CollegeID != nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetActiveManager(_ context.Context, collegeID int64) (*model.User, error) {
	for _, u := range m.users {
		if u.Role == model.RoleManager && u.IsActive && u.CollegeID != nil && *u.CollegeID == collegeID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students map[int64]*model.StudentWithStatus
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[int64]*model.StudentWithStatus)}
}

func (m *mockStudentRepo) add(collegeID, studentID int64, name, status string) {
	m.students[studentID] = &model.StudentWithStatus{
		Student: model.Student{
			StudentID: studentID,
			CollegeID: collegeID,
			FullName:  name,
			USN:       "USN" + name,
			Email:     name + "@example.edu",
			Phone:     "9000000000",
		},
		Status: status,
	}
}

func (m *mockStudentRepo) GetForCollege(_ context.Context, studentID, collegeID int64) (*model.StudentWithStatus, error) {
	if s, ok := m.students[studentID]; ok && s.CollegeID == collegeID {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock AccompanistRepository ──

type mockAccompanistRepo struct {
	accs   map[int64]*model.Accompanist
	nextID int64
}

func newMockAccompanistRepo() *mockAccompanistRepo {
	return &mockAccompanistRepo{accs: make(map[int64]*model.Accompanist), nextID: 1000}
}

func (m *mockAccompanistRepo) Create(_ context.Context, acc *model.Accompanist) error {
	if acc.IsTeamManager {
		for _, a := range m.accs {
			if a.CollegeID == acc.CollegeID && a.IsTeamManager {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	if acc.AccompanistID == 0 {
		acc.AccompanistID = m.nextID
		m.nextID++
	}
	m.accs[acc.AccompanistID] = acc
	return nil
}

func (m *mockAccompanistRepo) GetForCollege(_ context.Context, accompanistID, collegeID int64) (*model.Accompanist, error) {
	if a, ok := m.accs[accompanistID]; ok && a.CollegeID == collegeID {
		cp := *a
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccompanistRepo) HasTeamManager(_ context.Context, collegeID int64) (bool, error) {
	for _, a := range m.accs {
		if a.CollegeID == collegeID && a.IsTeamManager {
			return true, nil
		}
	}
	return false, nil
}

// ── Mock RosterRepository ──
// 以 table 为键保存名单；Create 模拟唯一约束

type mockRosterRepo struct {
	tables      map[string][]model.RosterEntry
	students    *mockStudentRepo
	accs        *mockAccompanistRepo
	createErr   error
	createCalls int
}

func newMockRosterRepo(students *mockStudentRepo, accs *mockAccompanistRepo) *mockRosterRepo {
	return &mockRosterRepo{
		tables:   make(map[string][]model.RosterEntry),
		students: students,
		accs:     accs,
	}
}

func (m *mockRosterRepo) find(table string, collegeID int64, personType string, personID int64) int {
	for i, e := range m.tables[table] {
		if e.CollegeID == collegeID && e.PersonType == personType && e.PersonID == personID {
			return i
		}
	}
	return -1
}

func (m *mockRosterRepo) ListByRole(_ context.Context, table string, collegeID int64, role string) ([]model.RosterEntry, error) {
	out := make([]model.RosterEntry, 0)
	for _, e := range m.tables[table] {
		if e.CollegeID == collegeID && e.Role == role {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (m *mockRosterRepo) ListByCollege(_ context.Context, table string, collegeID int64) ([]model.RosterEntry, error) {
	out := make([]model.RosterEntry, 0)
	for _, e := range m.tables[table] {
		if e.CollegeID == collegeID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Role != out[j].Role {
			return out[i].Role == model.RosterParticipant
		}
		return out[i].FullName < out[j].FullName
	})
	return out, nil
}

func (m *mockRosterRepo) ListAvailableStudents(_ context.Context, table string, collegeID int64) ([]model.Student, error) {
	out := make([]model.Student, 0)
	for _, s := range m.students.students {
		if s.CollegeID != collegeID || s.Status != model.ApplicationApproved {
			continue
		}
		if m.find(table, collegeID, model.PersonStudent, s.StudentID) >= 0 {
			continue
		}
		out = append(out, s.Student)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (m *mockRosterRepo) ListAvailableAccompanists(_ context.Context, table string, collegeID int64) ([]model.Accompanist, error) {
	out := make([]model.Accompanist, 0)
	for _, a := range m.accs.accs {
		if a.CollegeID != collegeID {
			continue
		}
		if m.find(table, collegeID, model.PersonAccompanist, a.AccompanistID) >= 0 {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (m *mockRosterRepo) Exists(_ context.Context, table string, collegeID int64, personType string, personID int64) (bool, error) {
	return m.find(table, collegeID, personType, personID) >= 0, nil
}

func (m *mockRosterRepo) Create(_ context.Context, table string, entry *model.RosterEntry) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	if m.find(table, entry.CollegeID, entry.PersonType, entry.PersonID) >= 0 {
		return gorm.ErrDuplicatedKey
	}
	entry.EntryID = int64(len(m.tables[table]) + 1)
	m.tables[table] = append(m.tables[table], *entry)
	return nil
}

func (m *mockRosterRepo) Delete(_ context.Context, table string, collegeID int64, personType string, personID int64) (int64, error) {
	i := m.find(table, collegeID, personType, personID)
	if i < 0 {
		return 0, nil
	}
	rows := m.tables[table]
	m.tables[table] = append(rows[:i], rows[i+1:]...)
	return 1, nil
}

func (m *mockRosterRepo) CountByRole(_ context.Context, table string, collegeID int64) (int64, int64, error) {
	var p, a int64
	for _, e := range m.tables[table] {
		if e.CollegeID != collegeID {
			continue
		}
		if e.Role == model.RosterParticipant {
			p++
		} else {
			a++
		}
	}
	return p, a, nil
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions map[string]*model.AccompanistSession
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*model.AccompanistSession)}
}

func (m *mockSessionRepo) Create(_ context.Context, s *model.AccompanistSession) error {
	m.sessions[s.SessionID] = s
	return nil
}

func (m *mockSessionRepo) GetForCollege(_ context.Context, id string, collegeID int64) (*model.AccompanistSession, error) {
	if s, ok := m.sessions[id]; ok && s.CollegeID == collegeID {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionRepo) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for id, s := range m.sessions {
		if s.ExpiresAt.Before(before) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	events []model.Event
	err    error
}

func (m *mockEventRepo) ListActive(_ context.Context) ([]model.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

// ── 聚合 ──

type mockRepos struct {
	college     *mockCollegeRepo
	user        *mockUserRepo
	student     *mockStudentRepo
	accompanist *mockAccompanistRepo
	roster      *mockRosterRepo
	session     *mockSessionRepo
	event       *mockEventRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	students := newMockStudentRepo()
	accs := newMockAccompanistRepo()
	m := &mockRepos{
		college:     newMockCollegeRepo(),
		user:        newMockUserRepo(),
		student:     students,
		accompanist: accs,
		roster:      newMockRosterRepo(students, accs),
		session:     newMockSessionRepo(),
		event:       &mockEventRepo{},
	}
	repo := &repository.Repository{
		College:     m.college,
		User:        m.user,
		Student:     m.student,
		Accompanist: m.accompanist,
		Roster:      m.roster,
		Session:     m.session,
		Event:       m.event,
	}
	return repo, m
}

var errStorage = errors.New("connection reset by peer")
