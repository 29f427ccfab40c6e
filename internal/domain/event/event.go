// Package event 目录领域事件
//
// 事件在业务事务提交之后发布,发布失败只记录日志,不影响已完成的业务操作。
package event

import (
	"context"
	"time"
)

// 路由键
const (
	BookRegistered      = "catalog.book.registered"
	PriceDiscounted     = "catalog.price.discounted"
	RatingRecorded      = "catalog.rating.recorded"
	DuplicatesRemoved   = "catalog.duplicates.removed"
	WishlistMovedToCart = "catalog.wishlist.moved_to_cart"
)

// Event 领域事件
type Event struct {
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// New 创建事件
func New(name string, payload any) Event {
	return Event{Name: name, OccurredAt: time.Now(), Payload: payload}
}

// Publisher 事件发布接口
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// NopPublisher 未启用消息队列时使用
type NopPublisher struct{}

// Publish 丢弃事件
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// 事件载荷

type BookRegisteredPayload struct {
	BookIDs []uint `json:"book_ids"`
}

type PriceDiscountedPayload struct {
	Publisher string  `json:"publisher"`
	Percent   float64 `json:"percent"`
	BookIDs   []uint  `json:"book_ids"`
}

type RatingRecordedPayload struct {
	BookID  uint    `json:"book_id"`
	UserID  uint    `json:"user_id"`
	Score   int     `json:"score"`
	Average float64 `json:"average"`
}

type DuplicatesRemovedPayload struct {
	Kind       string `json:"kind"` // book 或 author
	RemovedIDs []uint `json:"removed_ids"`
}

type WishlistMovedToCartPayload struct {
	WishlistID uint `json:"wishlist_id"`
	CartID     uint `json:"cart_id"`
	BookID     uint `json:"book_id"`
	UserID     uint `json:"user_id"`
}
