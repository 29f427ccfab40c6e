package user

import (
	"context"
	"errors"
	"regexp"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// Service 用户领域服务
// 设计说明：
// 1. Service包含不属于单个实体的业务逻辑（密码加密、用户名唯一）
// 2. Service依赖Repository接口，不依赖具体实现（依赖倒置）
// 3. Service不处理HTTP请求，只处理业务逻辑
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, params RegisterParams) (*User, error)

	// Login 用户登录
	Login(ctx context.Context, username, password string) (*User, error)

	// GetByUsername 按用户名查询
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Update 部分更新，新用户名必须未被占用
	Update(ctx context.Context, username string, patch Patch) (*User, error)

	// Delete 删除用户
	Delete(ctx context.Context, username string) error

	// AddCreditCard 为用户绑定信用卡
	AddCreditCard(ctx context.Context, username string, card *CreditCard) (*CreditCard, error)

	// ListCreditCards 用户的信用卡列表
	ListCreditCards(ctx context.Context, username string) ([]*CreditCard, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error
}

// RegisterParams 注册参数
type RegisterParams struct {
	Username    string
	Password    string
	Name        string
	Email       string
	HomeAddress string
}

// bcryptCost 加密成本，测试中调低以加快速度
var bcryptCost = 12

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService 创建用户服务
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// Register 用户注册
// 业务规则：
// 1. 资料校验（用户名格式、邮箱格式）
// 2. 密码强度校验（8-20位，包含字母和数字）
// 3. 用户名唯一（先查询，数据库唯一索引兜底）
func (s *service) Register(ctx context.Context, p RegisterParams) (*User, error) {
	u := NewUser(p.Username, "", p.Name, p.Email, p.HomeAddress)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := validatePasswordStrength(p.Password); err != nil {
		return nil, err
	}
	if err := s.ensureUsernameFree(ctx, p.Username); err != nil {
		return nil, err
	}

	hashed, err := hashPassword(p.Password)
	if err != nil {
		return nil, err
	}
	u.Password = hashed

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err // Repository已转换为业务错误
	}
	return u, nil
}

// Login 用户名或密码错误时统一返回ErrInvalidPassword，避免暴露用户是否存在
func (s *service) Login(ctx context.Context, username, password string) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := s.ValidatePassword(u.Password, password); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.FindByUsername(ctx, username)
}

func (s *service) Update(ctx context.Context, username string, patch Patch) (*User, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	u.Apply(patch)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if u.Username != username {
		if err := s.ensureUsernameFree(ctx, u.Username); err != nil {
			return nil, err
		}
	}

	if patch.Password != nil {
		if err := validatePasswordStrength(*patch.Password); err != nil {
			return nil, err
		}
		hashed, err := hashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hashed
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, username string) error {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, u.ID); err != nil {
		return err
	}
	s.logger.Info("用户已删除", zap.Uint("user_id", u.ID), zap.String("username", username))
	return nil
}

func (s *service) AddCreditCard(ctx context.Context, username string, card *CreditCard) (*CreditCard, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := card.Validate(); err != nil {
		return nil, err
	}

	card.UserID = u.ID
	if err := s.repo.AddCreditCard(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *service) ListCreditCards(ctx context.Context, username string) ([]*CreditCard, error) {
	u, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return s.repo.FindCreditCards(ctx, u.ID)
}

// ValidatePassword 验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

func (s *service) ensureUsernameFree(ctx context.Context, username string) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return err
	}
	return nil
}

// =========================================
// 辅助函数：业务规则校验
// =========================================

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

var (
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// validatePasswordStrength 密码强度校验
// 规则：8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}
