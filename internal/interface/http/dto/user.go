package dto

import (
	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// RegisterRequest HTTP层注册请求
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50" example:"ada"`
	Password    string `json:"password" binding:"required,min=8,max=20" example:"lovelace1815"`
	Name        string `json:"name" binding:"max=100" example:"Ada Lovelace"`
	Email       string `json:"email" binding:"omitempty,email" example:"ada@example.com"`
	HomeAddress string `json:"home_address" binding:"max=255"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest 部分更新用户
type UpdateUserRequest struct {
	Username    *string `json:"username" binding:"omitempty,min=3,max=50"`
	Password    *string `json:"password" binding:"omitempty,min=8,max=20"`
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Email       *string `json:"email" binding:"omitempty,email"`
	HomeAddress *string `json:"home_address" binding:"omitempty,max=255"`
}

// ToPatch 转换为领域层的部分更新
func (r *UpdateUserRequest) ToPatch() user.Patch {
	return user.Patch{
		Username:    r.Username,
		Password:    r.Password,
		Name:        r.Name,
		Email:       r.Email,
		HomeAddress: r.HomeAddress,
	}
}

// UserResponse 用户响应(不包含密码)
type UserResponse struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	HomeAddress string `json:"home_address"`
}

// ToUserResponse 领域实体 → HTTP响应
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Email:       u.Email,
		HomeAddress: u.HomeAddress,
	}
}

// LoginResponse 登录响应
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int64        `json:"expires_in"`
}

// CreditCardRequest 绑定信用卡
type CreditCardRequest struct {
	CardNumber     string `json:"card_number" binding:"required" example:"4111111111111111"`
	ExpirationDate string `json:"expiration_date" binding:"required" example:"12/27"`
	CVV            string `json:"cvv" binding:"required" example:"123"`
}

// CreditCardResponse 信用卡只返回后四位
type CreditCardResponse struct {
	ID             uint   `json:"id"`
	LastFour       string `json:"last_four" example:"1111"`
	ExpirationDate string `json:"expiration_date" example:"12/27"`
}

// ToCreditCardResponse 领域实体 → HTTP响应
func ToCreditCardResponse(c *user.CreditCard) CreditCardResponse {
	return CreditCardResponse{ID: c.ID, LastFour: c.LastFour(), ExpirationDate: c.ExpirationDate}
}
