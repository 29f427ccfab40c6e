package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/wishlist"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

// wishlistRepository 心愿单仓储实现
// 图书集合保存在wishlist_books关联表中,读取时按关联表主键排序还原加入顺序
type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓储
func NewWishlistRepository(db *gorm.DB) wishlist.Repository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(ctx context.Context, w *wishlist.Wishlist) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		model := &WishlistModel{UserID: w.UserID, Name: w.Name}
		if err := tx.Create(model).Error; err != nil {
			if isDuplicateError(err) {
				return wishlist.ErrNameTaken
			}
			return apperrors.Wrap(err, "创建心愿单失败")
		}
		w.ID = model.ID
		w.CreatedAt = model.CreatedAt
		w.UpdatedAt = model.UpdatedAt
		return insertMembers(tx, w.BookIDs, func(bookID uint) interface{} {
			return &WishlistBookModel{WishlistID: w.ID, BookID: bookID}
		})
	})
}

func (r *wishlistRepository) FindByID(ctx context.Context, id uint) (*wishlist.Wishlist, error) {
	var model WishlistModel
	if err := r.getDB(ctx).First(&model, id).Error; err != nil {
		if isNotFound(err) {
			return nil, wishlist.NotFound(id)
		}
		return nil, apperrors.Wrap(err, "查询心愿单失败")
	}
	return r.load(ctx, &model)
}

func (r *wishlistRepository) FindByNameAndUserID(ctx context.Context, name string, userID uint) (*wishlist.Wishlist, error) {
	var model WishlistModel
	if err := r.getDB(ctx).Where("user_id = ? AND name = ?", userID, name).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, wishlist.NotFoundByName(name)
		}
		return nil, apperrors.Wrap(err, "查询心愿单失败")
	}
	return r.load(ctx, &model)
}

func (r *wishlistRepository) FindByUserID(ctx context.Context, userID uint) ([]*wishlist.Wishlist, error) {
	var models []WishlistModel
	if err := r.getDB(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询心愿单失败")
	}
	out := make([]*wishlist.Wishlist, 0, len(models))
	for i := range models {
		w, err := r.load(ctx, &models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func (r *wishlistRepository) AddMember(ctx context.Context, wishlistID, bookID uint) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		added, err := addMember(tx, &WishlistBookModel{WishlistID: wishlistID, BookID: bookID})
		if err != nil {
			return err
		}
		if !added {
			return wishlist.ErrAlreadyMember
		}
		return touch(tx, &WishlistModel{}, wishlistID)
	})
}

func (r *wishlistRepository) RemoveMember(ctx context.Context, wishlistID, bookID uint) error {
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		removed, err := removeMember(tx, &WishlistBookModel{}, "wishlist_id", wishlistID, bookID)
		if err != nil {
			return err
		}
		if !removed {
			return wishlist.ErrNotMember
		}
		return touch(tx, &WishlistModel{}, wishlistID)
	})
}

func (r *wishlistRepository) load(ctx context.Context, m *WishlistModel) (*wishlist.Wishlist, error) {
	var bookIDs []uint
	err := r.getDB(ctx).Model(&WishlistBookModel{}).
		Where("wishlist_id = ?", m.ID).Order("id ASC").Pluck("book_id", &bookIDs).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询心愿单图书失败")
	}
	if bookIDs == nil {
		bookIDs = []uint{}
	}
	return &wishlist.Wishlist{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		BookIDs:   bookIDs,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}

func (r *wishlistRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// insertMembers 按顺序插入关联行,心愿单和购物车创建时共用
func insertMembers(tx *gorm.DB, bookIDs []uint, row func(bookID uint) interface{}) error {
	for _, id := range bookIDs {
		if err := tx.Create(row(id)).Error; err != nil {
			return apperrors.Wrapf(err, "保存关联图书%d失败", id)
		}
	}
	return nil
}

// addMember 插入一行关联,(owner, book)唯一索引冲突时不插入并返回false
// 只写这一行,并发的其他成员变更不会被覆盖
func addMember(tx *gorm.DB, row interface{}) (bool, error) {
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, "保存关联图书失败")
	}
	return result.RowsAffected > 0, nil
}

// removeMember 删除一行关联,行不存在时返回false
// 两个事务删除同一行时,后者等待前者提交后影响0行
func removeMember(tx *gorm.DB, model interface{}, ownerColumn string, ownerID, bookID uint) (bool, error) {
	result := tx.Where(ownerColumn+" = ? AND book_id = ?", ownerID, bookID).Delete(model)
	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, "移除关联图书失败")
	}
	return result.RowsAffected > 0, nil
}

// touch 刷新父记录的updated_at
func touch(tx *gorm.DB, model interface{}, id uint) error {
	if err := tx.Model(model).Where("id = ?", id).Update("updated_at", time.Now()).Error; err != nil {
		return apperrors.Wrap(err, "更新时间戳失败")
	}
	return nil
}
