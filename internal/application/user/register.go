package user

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// RegisterUseCase 用户注册用例
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{userService: userService}
}

// Execute 执行注册
// 返回应用层DTO,不含密码
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*UserInfo, error) {
	u, err := uc.userService.Register(ctx, user.RegisterParams{
		Username:    req.Username,
		Password:    req.Password,
		Name:        req.Name,
		Email:       req.Email,
		HomeAddress: req.HomeAddress,
	})
	if err != nil {
		return nil, err
	}
	return ToUserInfo(u), nil
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username    string
	Password    string
	Name        string
	Email       string
	HomeAddress string
}

// UserInfo 用户信息
type UserInfo struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	HomeAddress string `json:"home_address"`
}

// ToUserInfo 领域实体 → 应用层DTO
func ToUserInfo(u *user.User) *UserInfo {
	return &UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Email:       u.Email,
		HomeAddress: u.HomeAddress,
	}
}
