package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/user"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// userRepository 用户仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/user/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误（如用户名重复），转换为业务错误
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
// 注意：返回的是domain层的接口类型，不是具体类型（依赖倒置）
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
// 用户名唯一性最终由数据库UNIQUE索引保证，冲突时转换为ErrUsernameTaken
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrUsernameTaken
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	// 回填自增ID（GORM自动填充）
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找用户
func (r *userRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	var model UserModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, user.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

// FindByUsername 根据用户名查找用户
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var model UserModel
	if err := r.getDB(ctx).Where("username = ?", username).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, user.NotFoundByUsername(username)
		}
		return nil, apperrors.Wrap(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.getDB(ctx).Model(&UserModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询用户失败")
	}
	return count > 0, nil
}

// Update 更新用户信息
func (r *userRepository) Update(ctx context.Context, u *user.User) error {
	model := toUserModel(u)
	if err := r.getDB(ctx).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrUsernameTaken
		}
		return apperrors.Wrap(err, "更新用户失败")
	}
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 删除用户，购物车和信用卡属于用户聚合，一并删除
func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var cartIDs []uint
		if err := tx.Model(&ShoppingCartModel{}).Where("user_id = ?", id).Pluck("id", &cartIDs).Error; err != nil {
			return apperrors.Wrap(err, "查询购物车失败")
		}
		if len(cartIDs) > 0 {
			if err := tx.Where("cart_id IN ?", cartIDs).Delete(&CartBookModel{}).Error; err != nil {
				return apperrors.Wrap(err, "删除购物车图书失败")
			}
			if err := tx.Where("id IN ?", cartIDs).Delete(&ShoppingCartModel{}).Error; err != nil {
				return apperrors.Wrap(err, "删除购物车失败")
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&CreditCardModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除信用卡失败")
		}

		result := tx.Delete(&UserModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除用户失败")
		}
		if result.RowsAffected == 0 {
			return user.NotFound(id)
		}
		return nil
	})
}

func (r *userRepository) AddCreditCard(ctx context.Context, c *user.CreditCard) error {
	model := &CreditCardModel{
		UserID:         c.UserID,
		CardNumber:     c.CardNumber,
		ExpirationDate: c.ExpirationDate,
		CVV:            c.CVV,
	}
	if err := r.getDB(ctx).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "保存信用卡失败")
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	return nil
}

func (r *userRepository) FindCreditCards(ctx context.Context, userID uint) ([]*user.CreditCard, error) {
	var models []CreditCardModel
	if err := r.getDB(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询信用卡失败")
	}
	cards := make([]*user.CreditCard, len(models))
	for i, m := range models {
		cards[i] = &user.CreditCard{
			ID:             m.ID,
			UserID:         m.UserID,
			CardNumber:     m.CardNumber,
			ExpirationDate: m.ExpirationDate,
			CVV:            m.CVV,
			CreatedAt:      m.CreatedAt,
		}
	}
	return cards, nil
}

// =========================================
// 辅助函数：模型转换
// =========================================

func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		ID:          u.ID,
		Username:    u.Username,
		Password:    u.Password,
		Name:        u.Name,
		Email:       u.Email,
		HomeAddress: u.HomeAddress,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// toUserEntity GORM模型 → 领域实体
func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:          model.ID,
		Username:    model.Username,
		Password:    model.Password,
		Name:        model.Name,
		Email:       model.Email,
		HomeAddress: model.HomeAddress,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func (r *userRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}
