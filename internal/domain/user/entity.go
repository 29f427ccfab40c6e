package user

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. Username是登录名，全局唯一
// 2. 密码已加密存储（bcrypt），实体中只保存哈希值
// 3. 购物车、信用卡属于用户聚合，删除用户时一并删除
type User struct {
	ID          uint
	Username    string
	Password    string // bcrypt哈希值
	Name        string
	Email       string
	HomeAddress string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, hashedPassword, name, email, homeAddress string) *User {
	now := time.Now()
	return &User{
		Username:    username,
		Password:    hashedPassword,
		Name:        name,
		Email:       email,
		HomeAddress: homeAddress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate 资料校验（不含密码，密码强度在Service中校验明文）
func (u *User) Validate() error {
	return apperrors.Invalid(validation.ValidateStruct(u,
		validation.Field(&u.Username, validation.Required, validation.Length(3, 50), validation.Match(usernamePattern)),
		validation.Field(&u.Email, is.EmailFormat),
		validation.Field(&u.Name, validation.Length(0, 100)),
		validation.Field(&u.HomeAddress, validation.Length(0, 255)),
	))
}

// Patch 部分更新，nil字段保持不变
type Patch struct {
	Username    *string
	Password    *string // 明文，Service负责加密
	Name        *string
	Email       *string
	HomeAddress *string
}

// Apply 应用资料更新（密码由Service单独处理）
func (u *User) Apply(p Patch) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.HomeAddress != nil {
		u.HomeAddress = *p.HomeAddress
	}
	u.UpdatedAt = time.Now()
}

// CreditCard 用户绑定的信用卡
type CreditCard struct {
	ID             uint
	UserID         uint
	CardNumber     string
	ExpirationDate string // MM/YY
	CVV            string
	CreatedAt      time.Time
}

var (
	cardNumberPattern = regexp.MustCompile(`^[0-9]{13,19}$`)
	expirationPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
	cvvPattern        = regexp.MustCompile(`^[0-9]{3,4}$`)
)

// Validate 卡号13-19位数字，有效期MM/YY，CVV 3-4位
func (c *CreditCard) Validate() error {
	return apperrors.Invalid(validation.ValidateStruct(c,
		validation.Field(&c.CardNumber, validation.Required, validation.Match(cardNumberPattern)),
		validation.Field(&c.ExpirationDate, validation.Required, validation.Match(expirationPattern)),
		validation.Field(&c.CVV, validation.Required, validation.Match(cvvPattern)),
	))
}

// LastFour 卡号后四位，对外展示只返回这部分
func (c *CreditCard) LastFour() string {
	if len(c.CardNumber) <= 4 {
		return c.CardNumber
	}
	return c.CardNumber[len(c.CardNumber)-4:]
}
