package mysql

import (
	"time"
)

// 设计说明：
// 1. 这里是infrastructure层的数据模型，包含GORM tag
// 2. domain层的实体不依赖GORM，Repository负责两者之间的转换
// 3. 使用物理删除，关联数据由Repository在同一事务中清理

// UserModel GORM用户模型
type UserModel struct {
	ID          uint      `gorm:"primaryKey"`
	Username    string    `gorm:"uniqueIndex;size:50;not null;comment:用户名"`
	Password    string    `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name        string    `gorm:"size:100;comment:姓名"`
	Email       string    `gorm:"size:100;comment:邮箱"`
	HomeAddress string    `gorm:"size:255;comment:家庭住址"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

func (UserModel) TableName() string { return "users" }

// CreditCardModel 信用卡
type CreditCardModel struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"index;not null;comment:用户ID"`
	CardNumber     string    `gorm:"size:19;not null;comment:卡号"`
	ExpirationDate string    `gorm:"size:5;not null;comment:有效期MM/YY"`
	CVV            string    `gorm:"column:cvv;size:4;not null"`
	CreatedAt      time.Time `gorm:"comment:创建时间"`
}

func (CreditCardModel) TableName() string { return "credit_cards" }

// AuthorModel 作者
// idx_author_key对应去重键，非唯一（去重由批处理完成）
type AuthorModel struct {
	ID        uint      `gorm:"primaryKey"`
	FirstName string    `gorm:"index:idx_author_key;size:100;not null;comment:名"`
	LastName  string    `gorm:"index:idx_author_key;size:100;not null;comment:姓"`
	Biography string    `gorm:"type:text;comment:简介"`
	Publisher string    `gorm:"index:idx_author_key;size:100;comment:出版社"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (AuthorModel) TableName() string { return "authors" }

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位
// 2. ISBN普通索引,唯一性由登记流程检查,历史重复数据由去重任务清理
// 3. publisher/genre/copies_sold/rating索引服务于调价、分类、畅销、评分查询
type BookModel struct {
	ID            uint      `gorm:"primaryKey"`
	ISBN          string    `gorm:"column:isbn;index;size:13;not null;comment:ISBN号"`
	Title         string    `gorm:"size:200;not null;comment:书名"`
	Description   string    `gorm:"type:text;comment:图书描述"`
	Price         int64     `gorm:"not null;default:0;comment:价格(分)"`
	AuthorID      *uint     `gorm:"index;comment:作者ID"`
	Genre         string    `gorm:"index;size:50;comment:类型"`
	Publisher     string    `gorm:"index;size:100;comment:出版社"`
	YearPublished int       `gorm:"comment:出版年份"`
	CopiesSold    int       `gorm:"index;default:0;comment:销量"`
	Rating        float64   `gorm:"index;default:0;comment:平均分"`
	CreatedAt     time.Time `gorm:"comment:创建时间"`
	UpdatedAt     time.Time `gorm:"comment:更新时间"`
}

func (BookModel) TableName() string { return "books" }

// RatingModel 评分明细
type RatingModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"index;not null;comment:图书ID"`
	UserID    uint      `gorm:"index;not null;comment:用户ID"`
	Score     int       `gorm:"type:tinyint;not null;comment:评分1-5"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (RatingModel) TableName() string { return "ratings" }

// CommentModel 评论
type CommentModel struct {
	ID        uint      `gorm:"primaryKey"`
	BookID    uint      `gorm:"index;not null;comment:图书ID"`
	UserID    uint      `gorm:"index;not null;comment:用户ID"`
	Content   string    `gorm:"type:text;not null;comment:评论内容"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

func (CommentModel) TableName() string { return "comments" }

// WishlistModel 心愿单，同一用户下名称唯一
type WishlistModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_wishlist_user_name;not null;comment:用户ID"`
	Name      string    `gorm:"uniqueIndex:idx_wishlist_user_name;size:100;not null;comment:名称"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (WishlistModel) TableName() string { return "wishlists" }

// WishlistBookModel 心愿单-图书关联，主键顺序即加入顺序
type WishlistBookModel struct {
	ID         uint `gorm:"primaryKey"`
	WishlistID uint `gorm:"uniqueIndex:idx_wishlist_book;not null"`
	BookID     uint `gorm:"uniqueIndex:idx_wishlist_book;index;not null"`
}

func (WishlistBookModel) TableName() string { return "wishlist_books" }

// ShoppingCartModel 购物车，每个用户一个
type ShoppingCartModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex;not null;comment:用户ID"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (ShoppingCartModel) TableName() string { return "shopping_carts" }

// CartBookModel 购物车-图书关联
type CartBookModel struct {
	ID     uint `gorm:"primaryKey"`
	CartID uint `gorm:"uniqueIndex:idx_cart_book;not null"`
	BookID uint `gorm:"uniqueIndex:idx_cart_book;index;not null"`
}

func (CartBookModel) TableName() string { return "cart_books" }
