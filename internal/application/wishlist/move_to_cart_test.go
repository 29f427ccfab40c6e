package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/cart"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/domain/wishlist"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/sqlitetest"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

type capturePublisher struct {
	events []event.Event
}

func (p *capturePublisher) Publish(_ context.Context, e event.Event) error {
	p.events = append(p.events, e)
	return nil
}

// failingCarts 写入购物车图书时失败,用于验证回滚
type failingCarts struct {
	cart.Repository
}

func (failingCarts) AddMember(context.Context, uint, uint) (bool, error) {
	return false, errors.New("disk full")
}

// interleavingWishlists 读取心愿单后执行一次hook,模拟另一请求在读与写之间提交
type interleavingWishlists struct {
	wishlist.Repository
	hook func(ctx context.Context)
}

func (r *interleavingWishlists) FindByID(ctx context.Context, id uint) (*wishlist.Wishlist, error) {
	w, err := r.Repository.FindByID(ctx, id)
	if err == nil && r.hook != nil {
		hook := r.hook
		r.hook = nil
		hook(ctx)
	}
	return w, err
}

// interleavingCarts 读取购物车后在同一ctx中执行一次hook
type interleavingCarts struct {
	cart.Repository
	hook func(ctx context.Context)
}

func (r *interleavingCarts) FindByUserID(ctx context.Context, userID uint) (*cart.ShoppingCart, error) {
	c, err := r.Repository.FindByUserID(ctx, userID)
	if err == nil && r.hook != nil {
		hook := r.hook
		r.hook = nil
		hook(ctx)
	}
	return c, err
}

type fixture struct {
	db        *gorm.DB
	wishlists wishlist.Repository
	carts     cart.Repository
	publisher *capturePublisher
	userID    uint
	bookIDs   []uint
	list      *wishlist.Wishlist
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := sqlitetest.Open(t)

	users := mysql.NewUserRepository(db)
	books := mysql.NewBookRepository(db)
	wishlists := mysql.NewWishlistRepository(db)

	u := user.NewUser("ada", "hash", "", "", "")
	require.NoError(t, users.Create(ctx, u))

	var ids []uint
	for _, isbn := range []string{"9780306406157", "0306406152"} {
		b := &book.Book{ISBN: isbn, Title: "t-" + isbn, Price: 1000}
		require.NoError(t, books.Create(ctx, b))
		ids = append(ids, b.ID)
	}

	w, err := wishlist.NewWishlist(u.ID, "summer")
	require.NoError(t, err)
	require.NoError(t, w.AddBook(ids[0]))
	require.NoError(t, wishlists.Create(ctx, w))

	return &fixture{
		db:        db,
		wishlists: wishlists,
		carts:     mysql.NewCartRepository(db),
		publisher: &capturePublisher{},
		userID:    u.ID,
		bookIDs:   ids,
		list:      w,
	}
}

func (f *fixture) useCase(carts cart.Repository) *MoveToCartUseCase {
	users := mysql.NewUserRepository(f.db)
	books := mysql.NewBookRepository(f.db)
	return NewMoveToCartUseCase(
		mysql.NewTxManager(f.db),
		f.wishlists,
		books,
		carts,
		cart.NewService(carts, users, books),
		f.publisher,
		zap.NewNop(),
	)
}

func TestMoveToCart_MovesBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.useCase(f.carts)

	resp, err := uc.Execute(ctx, MoveToCartRequest{WishlistID: f.list.ID, BookID: f.bookIDs[0], RequesterID: f.userID})
	require.NoError(t, err)
	assert.NotZero(t, resp.CartID)

	w, err := f.wishlists.FindByID(ctx, f.list.ID)
	require.NoError(t, err)
	assert.False(t, w.Contains(f.bookIDs[0]))

	c, err := f.carts.FindByUserID(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.bookIDs[0]}, c.BookIDs)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, event.WishlistMovedToCart, f.publisher.events[0].Name)

	// 再次移动同一本书
	_, err = uc.Execute(ctx, MoveToCartRequest{WishlistID: f.list.ID, BookID: f.bookIDs[0]})
	assert.ErrorIs(t, err, wishlist.ErrNotMember)
}

func TestMoveToCart_BookAlreadyInCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c := cart.NewShoppingCart(f.userID)
	c.AddBook(f.bookIDs[0])
	require.NoError(t, f.carts.Create(ctx, c))

	_, err := f.useCase(f.carts).Execute(ctx, MoveToCartRequest{WishlistID: f.list.ID, BookID: f.bookIDs[0]})
	require.NoError(t, err)

	got, err := f.carts.FindByUserID(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.bookIDs[0]}, got.BookIDs)
}

func TestMoveToCart_CheckOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.useCase(f.carts)

	// 心愿单和图书都不存在时先报心愿单
	_, err := uc.Execute(ctx, MoveToCartRequest{WishlistID: 999, BookID: 999})
	assert.ErrorIs(t, err, wishlist.ErrWishlistNotFound)

	// 图书不存在
	_, err = uc.Execute(ctx, MoveToCartRequest{WishlistID: f.list.ID, BookID: 999})
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	// 图书存在但不在心愿单中
	_, err = uc.Execute(ctx, MoveToCartRequest{WishlistID: f.list.ID, BookID: f.bookIDs[1]})
	assert.ErrorIs(t, err, wishlist.ErrNotMember)

	// 非所有者
	_, err = uc.Execute(ctx, MoveToCartRequest{WishlistID: f.list.ID, BookID: f.bookIDs[0], RequesterID: f.userID + 1})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	assert.Empty(t, f.publisher.events)
}

func TestMoveToCart_RollsBackOnCartFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.useCase(failingCarts{f.carts}).Execute(ctx, MoveToCartRequest{WishlistID: f.list.ID, BookID: f.bookIDs[0]})
	require.Error(t, err)

	w, err := f.wishlists.FindByID(ctx, f.list.ID)
	require.NoError(t, err)
	assert.True(t, w.Contains(f.bookIDs[0]), "心愿单的移除应当回滚")

	_, err = f.carts.FindByUserID(ctx, f.userID)
	assert.ErrorIs(t, err, cart.ErrCartNotFound, "购物车的创建应当回滚")
	assert.Empty(t, f.publisher.events)
}

func TestAddBook_DoesNotRestoreMovedBook(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := f.useCase(f.carts)

	wishlists := &interleavingWishlists{Repository: f.wishlists}
	wishlists.hook = func(ctx context.Context) {
		_, err := uc.Execute(ctx, MoveToCartRequest{WishlistID: f.list.ID, BookID: f.bookIDs[0]})
		require.NoError(t, err)
	}
	svc := wishlist.NewService(wishlists, mysql.NewUserRepository(f.db), mysql.NewBookRepository(f.db))

	require.NoError(t, svc.AddBook(ctx, f.list.ID, f.bookIDs[1]))

	w, err := f.wishlists.FindByID(ctx, f.list.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.bookIDs[1]}, w.BookIDs)

	c, err := f.carts.FindByUserID(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.bookIDs[0]}, c.BookIDs)
}

func TestMoveToCart_InterleavedMovesKeepBothBooks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.wishlists.AddMember(ctx, f.list.ID, f.bookIDs[1]))
	require.NoError(t, f.carts.Create(ctx, cart.NewShoppingCart(f.userID)))

	carts := &interleavingCarts{Repository: f.carts}
	uc := f.useCase(carts)
	carts.hook = func(ctx context.Context) {
		_, err := uc.Execute(ctx, MoveToCartRequest{WishlistID: f.list.ID, BookID: f.bookIDs[1]})
		require.NoError(t, err)
	}

	_, err := uc.Execute(ctx, MoveToCartRequest{WishlistID: f.list.ID, BookID: f.bookIDs[0]})
	require.NoError(t, err)

	w, err := f.wishlists.FindByID(ctx, f.list.ID)
	require.NoError(t, err)
	assert.Empty(t, w.BookIDs)

	c, err := f.carts.FindByUserID(ctx, f.userID)
	require.NoError(t, err)
	assert.ElementsMatch(t, f.bookIDs, c.BookIDs)
}

func TestMoveToCart_BookRemovedFromCartAfterRead(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c := cart.NewShoppingCart(f.userID)
	c.AddBook(f.bookIDs[0])
	require.NoError(t, f.carts.Create(ctx, c))

	carts := &interleavingCarts{Repository: f.carts}
	carts.hook = func(ctx context.Context) {
		require.NoError(t, f.carts.RemoveMember(ctx, c.ID, f.bookIDs[0]))
	}

	_, err := f.useCase(carts).Execute(ctx, MoveToCartRequest{WishlistID: f.list.ID, BookID: f.bookIDs[0]})
	require.NoError(t, err)

	got, err := f.carts.FindByUserID(ctx, f.userID)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.bookIDs[0]}, got.BookIDs)
}

func TestMoveToCart_ConcurrentRemovalRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	wishlists := &interleavingWishlists{Repository: f.wishlists}
	wishlists.hook = func(ctx context.Context) {
		require.NoError(t, f.wishlists.RemoveMember(ctx, f.list.ID, f.bookIDs[0]))
	}
	uc := NewMoveToCartUseCase(
		mysql.NewTxManager(f.db),
		wishlists,
		mysql.NewBookRepository(f.db),
		f.carts,
		cart.NewService(f.carts, mysql.NewUserRepository(f.db), mysql.NewBookRepository(f.db)),
		f.publisher,
		zap.NewNop(),
	)

	_, err := uc.Execute(ctx, MoveToCartRequest{WishlistID: f.list.ID, BookID: f.bookIDs[0]})
	assert.ErrorIs(t, err, wishlist.ErrNotMember)

	_, err = f.carts.FindByUserID(ctx, f.userID)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
	assert.Empty(t, f.publisher.events)
}
