package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"vtufest/backend/internal/dto"
	"vtufest/backend/internal/model"
	"vtufest/backend/internal/repository"
)

// BlobStorage 对象存储（由 pkg/storage 实现）
type BlobStorage interface {
	PresignUpload(ctx context.Context, key string) (string, error)
	ObjectURL(key string) string
}

// 领队证件对象名
const (
	docPassportPhoto = "passport_photo"
	docCollegeIDCard = "college_id_card"
	docAadhaarCard   = "aadhaar_card"
)

// ManagerProfileService 领队资料补全：领队完成后计入学院随队名额
type ManagerProfileService interface {
	Status(ctx context.Context, auth *dto.AuthContext) (*dto.ProfileStatusResponse, error)
	Init(ctx context.Context, auth *dto.AuthContext) (*dto.InitProfileResponse, error)
	Finalize(ctx context.Context, auth *dto.AuthContext, sessionID string) (*dto.FinalizeProfileResponse, error)
}

type managerProfileService struct {
	repo       *repository.Repository
	storage    BlobStorage
	sessionTTL time.Duration
	now        func() time.Time
	logger     *zap.Logger
}

// NewManagerProfileService 创建 ManagerProfileService 实例
func NewManagerProfileService(
	repo *repository.Repository,
	storage BlobStorage,
	sessionTTL time.Duration,
	logger *zap.Logger,
) ManagerProfileService {
	return &managerProfileService{
		repo:       repo,
		storage:    storage,
		sessionTTL: sessionTTL,
		now:        time.Now,
		logger:     logger,
	}
}

// ────────────────────── Status ──────────────────────

func (s *managerProfileService) Status(ctx context.Context, auth *dto.AuthContext) (*dto.ProfileStatusResponse, error) {
	done, err := s.repo.Accompanist.HasTeamManager(ctx, auth.CollegeID)
	if err != nil {
		s.logger.Error("查询领队资料状态失败", zap.Int64("college_id", auth.CollegeID), zap.Error(err))
		return nil, err
	}
	return &dto.ProfileStatusResponse{ProfileCompleted: done}, nil
}

// ────────────────────── Init ──────────────────────

func (s *managerProfileService) Init(ctx context.Context, auth *dto.AuthContext) (*dto.InitProfileResponse, error) {
	done, err := s.repo.Accompanist.HasTeamManager(ctx, auth.CollegeID)
	if err != nil {
		s.logger.Error("查询领队资料状态失败", zap.Int64("college_id", auth.CollegeID), zap.Error(err))
		return nil, err
	}
	if done {
		return nil, ErrProfileCompleted
	}

	college, err := s.repo.College.GetByID(ctx, auth.CollegeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCollegeNotFound
		}
		s.logger.Error("查询学院失败", zap.Int64("college_id", auth.CollegeID), zap.Error(err))
		return nil, err
	}

	fullName, err := s.managerName(ctx, auth)
	if err != nil {
		return nil, err
	}

	sessionID, err := newSessionID()
	if err != nil {
		s.logger.Error("生成会话 ID 失败", zap.Error(err))
		return nil, err
	}
	expiresAt := s.now().Add(s.sessionTTL)

	session := &model.AccompanistSession{
		SessionID:       sessionID,
		CollegeID:       auth.CollegeID,
		FullName:        fullName,
		Phone:           "PENDING",
		Email:           "PENDING",
		AccompanistType: model.AccompanistFaculty,
		AssignedEvents:  "[]",
		ExpiresAt:       expiresAt,
	}
	if err := s.repo.Session.Create(ctx, session); err != nil {
		s.logger.Error("创建资料补全会话失败", zap.Error(err))
		return nil, err
	}

	base := blobBasePath(college.CollegeCode, fullName)
	var urls dto.UploadURLs
	for _, doc := range []struct {
		name string
		dst  *string
	}{
		{docPassportPhoto, &urls.PassportPhoto},
		{docCollegeIDCard, &urls.CollegeIDCard},
		{docAadhaarCard, &urls.AadhaarCard},
	} {
		u, err := s.storage.PresignUpload(ctx, base+"/"+doc.name)
		if err != nil {
			s.logger.Error("生成上传地址失败", zap.String("doc", doc.name), zap.Error(err))
			return nil, err
		}
		*doc.dst = u
	}

	return &dto.InitProfileResponse{
		SessionID:  sessionID,
		UploadURLs: urls,
		ExpiresAt:  expiresAt.UTC().Format(time.RFC3339),
	}, nil
}

// ────────────────────── Finalize ──────────────────────

func (s *managerProfileService) Finalize(ctx context.Context, auth *dto.AuthContext, sessionID string) (*dto.FinalizeProfileResponse, error) {
	if sessionID == "" {
		return nil, ErrSessionIDRequired
	}

	session, err := s.repo.Session.GetForCollege(ctx, sessionID, auth.CollegeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrSessionInvalid
		}
		s.logger.Error("查询资料补全会话失败", zap.Error(err))
		return nil, err
	}
	if s.now().After(session.ExpiresAt) {
		return nil, ErrSessionExpired
	}

	college, err := s.repo.College.GetByID(ctx, auth.CollegeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrCollegeNotFound
		}
		s.logger.Error("查询学院失败", zap.Int64("college_id", auth.CollegeID), zap.Error(err))
		return nil, err
	}
	user, err := s.repo.User.GetByID(ctx, auth.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询账号失败", zap.Int64("user_id", auth.UserID), zap.Error(err))
		return nil, err
	}

	fullName := auth.FullName
	if fullName == "" {
		fullName = user.FullName
	}
	phone := "N/A"
	if user.Phone != nil && *user.Phone != "" {
		phone = *user.Phone
	}
	base := blobBasePath(college.CollegeCode, fullName)
	photoURL := s.storage.ObjectURL(base + "/" + docPassportPhoto)
	idProofURL := s.storage.ObjectURL(base + "/" + docAadhaarCard)

	acc := &model.Accompanist{
		CollegeID:        auth.CollegeID,
		FullName:         fullName,
		Phone:            phone,
		Email:            user.Email,
		AccompanistType:  model.AccompanistFaculty,
		PassportPhotoURL: &photoURL,
		IDProofURL:       &idProofURL,
		IsTeamManager:    true,
	}

	// 写入随队人员与删除会话在同一事务内
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Accompanist.Create(ctx, acc); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		if repository.IsUniqueViolation(err) {
			return nil, ErrProfileCompleted
		}
		s.logger.Error("写入领队随队人员失败", zap.Error(err))
		return nil, err
	}
	if err := txRepo.Session.Delete(ctx, sessionID); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("删除资料补全会话失败", zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	s.logger.Info("领队资料补全完成",
		zap.Int64("college_id", auth.CollegeID),
		zap.Int64("accompanist_id", acc.AccompanistID),
	)
	return &dto.FinalizeProfileResponse{AccompanistID: acc.AccompanistID}, nil
}

// ── 内部辅助方法 ──

// managerName 令牌中的姓名优先，缺失时回查账号
func (s *managerProfileService) managerName(ctx context.Context, auth *dto.AuthContext) (string, error) {
	if auth.FullName != "" {
		return auth.FullName, nil
	}
	user, err := s.repo.User.GetByID(ctx, auth.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", ErrUserNotFound
		}
		s.logger.Error("查询账号失败", zap.Int64("user_id", auth.UserID), zap.Error(err))
		return "", err
	}
	return user.FullName, nil
}

// blobBasePath <college_code>/manager-<slug(name)>
func blobBasePath(collegeCode, fullName string) string {
	return fmt.Sprintf("%s/manager-%s", collegeCode, slug.Make(fullName))
}

// newSessionID 32 字节随机数的十六进制表示
func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
