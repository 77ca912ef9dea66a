package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"vtufest/backend/internal/dto"
	"vtufest/backend/internal/model"
	"vtufest/backend/internal/repository"
)

// users 表唯一约束名，见 migrations/000001_init.up.sql
const (
	constraintUsersEmail    = "users_email_key"
	constraintActiveManager = "uq_users_active_manager"
)

// Mailer 邮件发送（由 pkg/mailer 实现）
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ManagerService 领队账号分配
type ManagerService interface {
	// Assign 由校长为本学院创建领队账号并发送初始凭据
	Assign(ctx context.Context, auth *dto.AuthContext, req *dto.AssignManagerRequest) (*dto.AssignManagerResponse, error)
}

type managerService struct {
	repo            *repository.Repository
	mailer          Mailer
	defaultPassword string
	loginURL        string
	hashCost        int
	logger          *zap.Logger
}

// NewManagerService 创建 ManagerService 实例
func NewManagerService(
	repo *repository.Repository,
	mailer Mailer,
	defaultPassword string,
	loginURL string,
	logger *zap.Logger,
) ManagerService {
	return &managerService{
		repo:            repo,
		mailer:          mailer,
		defaultPassword: defaultPassword,
		loginURL:        loginURL,
		hashCost:        12,
		logger:          logger,
	}
}

func (s *managerService) Assign(ctx context.Context, auth *dto.AuthContext, req *dto.AssignManagerRequest) (*dto.AssignManagerResponse, error) {
	name := strings.TrimSpace(req.ManagerName)
	email := strings.TrimSpace(req.ManagerEmail)
	phone := strings.TrimSpace(req.ManagerPhone)
	if name == "" || email == "" || phone == "" {
		return nil, ErrManagerFieldsRequired
	}

	// 1. 每个学院只能有一名在职领队
	if _, err := s.repo.User.GetActiveManager(ctx, auth.CollegeID); err == nil {
		return nil, ErrManagerExists
	} else if !repository.IsNotFound(err) {
		s.logger.Error("查询领队失败", zap.Int64("college_id", auth.CollegeID), zap.Error(err))
		return nil, err
	}

	// 2. 邮箱未被注册
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailRegistered
	} else if !repository.IsNotFound(err) {
		s.logger.Error("查询邮箱失败", zap.Error(err))
		return nil, err
	}

	// 3. 创建账号
	hash, err := bcrypt.GenerateFromPassword([]byte(s.defaultPassword), s.hashCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	collegeID := auth.CollegeID
	user := &model.User{
		FullName:     name,
		Email:        email,
		Phone:        &phone,
		PasswordHash: string(hash),
		Role:         model.RoleManager,
		CollegeID:    &collegeID,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		// 并发分配时由唯一索引兜底
		if repository.IsUniqueViolation(err) {
			return nil, s.uniqueConflict(ctx, err, email)
		}
		s.logger.Error("创建领队账号失败", zap.Error(err))
		return nil, err
	}

	// 4. 发送凭据邮件，失败不影响结果
	if err := s.mailer.Send(ctx, email, "You have been assigned as Team Manager - VTU Fest 2026", s.credentialsMail(name, email)); err != nil {
		s.logger.Warn("领队凭据邮件发送失败", zap.String("email", email), zap.Error(err))
	}

	s.logger.Info("领队分配成功",
		zap.Int64("college_id", auth.CollegeID),
		zap.Int64("user_id", user.UserID),
		zap.Int64("assigned_by", auth.UserID),
	)

	return &dto.AssignManagerResponse{
		UserID:   user.UserID,
		FullName: user.FullName,
		Email:    user.Email,
	}, nil
}

// uniqueConflict 区分两个唯一约束：邮箱已注册，或学院已有在职领队。
// 约束名不可得时（驱动已转换为 ErrDuplicatedKey，或 SQLite）按邮箱回查
func (s *managerService) uniqueConflict(ctx context.Context, err error, email string) error {
	switch repository.ViolatedConstraint(err) {
	case constraintUsersEmail:
		return ErrEmailRegistered
	case constraintActiveManager:
		return ErrManagerExists
	}
	if _, lookupErr := s.repo.User.GetByEmail(ctx, email); lookupErr == nil {
		return ErrEmailRegistered
	}
	return ErrManagerExists
}

func (s *managerService) credentialsMail(name, email string) string {
	var b strings.Builder
	b.WriteString("<h2>Welcome to VTU Fest 2026!</h2>")
	fmt.Fprintf(&b, "<p>Dear %s,</p>", html.EscapeString(name))
	b.WriteString("<p>You have been assigned as <strong>Team Manager</strong> for your college.</p>")
	b.WriteString("<h3>Your Login Credentials:</h3><ul>")
	fmt.Fprintf(&b, "<li><strong>Email:</strong> %s</li>", html.EscapeString(email))
	fmt.Fprintf(&b, "<li><strong>Password:</strong> %s</li></ul>", html.EscapeString(s.defaultPassword))
	fmt.Fprintf(&b, `<p><a href="%s">Login here</a></p>`, html.EscapeString(s.loginURL))
	b.WriteString("<p><strong>IMPORTANT:</strong> You must change your password on first login.</p>")
	b.WriteString("<p>Best regards,<br>VTU Fest Team</p>")
	return b.String()
}
