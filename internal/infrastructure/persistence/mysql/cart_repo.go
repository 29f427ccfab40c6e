package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/cart"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// cartRepository 购物车仓储实现
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	db := r.getDB(ctx)

	var model ShoppingCartModel
	if err := db.Where("user_id = ?", userID).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, cart.NotFoundForUser(userID)
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	var bookIDs []uint
	if err := db.Model(&CartBookModel{}).Where("cart_id = ?", model.ID).Order("id ASC").Pluck("book_id", &bookIDs).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询购物车图书失败")
	}
	if bookIDs == nil {
		bookIDs = []uint{}
	}

	return &cart.ShoppingCart{
		ID:        model.ID,
		UserID:    model.UserID,
		BookIDs:   bookIDs,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

func (r *cartRepository) Create(ctx context.Context, c *cart.ShoppingCart) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		model := &ShoppingCartModel{UserID: c.UserID}
		if err := tx.Create(model).Error; err != nil {
			if isDuplicateError(err) {
				return cart.ErrCartExists
			}
			return apperrors.Wrap(err, "创建购物车失败")
		}
		c.ID = model.ID
		c.CreatedAt = model.CreatedAt
		c.UpdatedAt = model.UpdatedAt
		return insertMembers(tx, c.BookIDs, func(bookID uint) interface{} {
			return &CartBookModel{CartID: c.ID, BookID: bookID}
		})
	})
}

// AddMember 已在购物车中时返回false,不报错
func (r *cartRepository) AddMember(ctx context.Context, cartID, bookID uint) (bool, error) {
	var added bool
	err := r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		added, err = addMember(tx, &CartBookModel{CartID: cartID, BookID: bookID})
		if err != nil || !added {
			return err
		}
		return touch(tx, &ShoppingCartModel{}, cartID)
	})
	return added, err
}

func (r *cartRepository) RemoveMember(ctx context.Context, cartID, bookID uint) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		removed, err := removeMember(tx, &CartBookModel{}, "cart_id", cartID, bookID)
		if err != nil {
			return err
		}
		if !removed {
			return cart.ErrNotMember
		}
		return touch(tx, &ShoppingCartModel{}, cartID)
	})
}

func (r *cartRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}
