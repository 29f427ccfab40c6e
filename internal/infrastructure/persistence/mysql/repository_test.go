package mysql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/cart"
	"github.com/xiebiao/bookcatalog/internal/domain/comment"
	"github.com/xiebiao/bookcatalog/internal/domain/rating"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/domain/wishlist"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/sqlitetest"
)

type repos struct {
	books     book.Repository
	authors   author.Repository
	users     user.Repository
	ratings   rating.Repository
	comments  comment.Repository
	wishlists wishlist.Repository
	carts     cart.Repository
	tx        *mysql.TxManager
}

func setup(t *testing.T) repos {
	db := sqlitetest.Open(t)
	return repos{
		books:     mysql.NewBookRepository(db),
		authors:   mysql.NewAuthorRepository(db),
		users:     mysql.NewUserRepository(db),
		ratings:   mysql.NewRatingRepository(db),
		comments:  mysql.NewCommentRepository(db),
		wishlists: mysql.NewWishlistRepository(db),
		carts:     mysql.NewCartRepository(db),
		tx:        mysql.NewTxManager(db),
	}
}

func mustBook(t *testing.T, r repos, b *book.Book) *book.Book {
	t.Helper()
	if b.Title == "" {
		b.Title = "title-" + b.ISBN
	}
	require.NoError(t, r.books.Create(context.Background(), b))
	return b
}

func mustUser(t *testing.T, r repos, username string) *user.User {
	t.Helper()
	u := user.NewUser(username, "hash", "", "", "")
	require.NoError(t, r.users.Create(context.Background(), u))
	return u
}

func TestBookRepository_Queries(t *testing.T) {
	ctx := context.Background()
	r := setup(t)

	a := author.NewAuthor("Ada", "Lovelace", "", "Plenum")
	require.NoError(t, r.authors.Create(ctx, a))

	b1 := mustBook(t, r, &book.Book{ISBN: "9780306406157", Publisher: "Plenum", Genre: "数学", CopiesSold: 5, Price: 1000, AuthorID: &a.ID})
	b2 := mustBook(t, r, &book.Book{ISBN: "0306406152", Publisher: "plenum", Genre: "数学", CopiesSold: 50, Price: 2000})
	b3 := mustBook(t, r, &book.Book{ISBN: "9780306406157", Publisher: "Plenum", Genre: "诗歌", CopiesSold: 20, Price: 3000})

	got, err := r.books.FindByISBN(ctx, "9780306406157")
	require.NoError(t, err)
	assert.Equal(t, b1.ID, got.ID, "重复ISBN时返回最早的一本")

	_, err = r.books.FindByID(ctx, 999)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	all, err := r.books.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{b1.ID, b2.ID, b3.ID}, []uint{all[0].ID, all[1].ID, all[2].ID})

	byPub, err := r.books.FindByPublisher(ctx, "Plenum")
	require.NoError(t, err)
	assert.Len(t, byPub, 2)

	byGenre, err := r.books.FindByGenre(ctx, "数学")
	require.NoError(t, err)
	assert.Len(t, byGenre, 2)

	byAuthor, err := r.books.FindByAuthorID(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, b1.ID, byAuthor[0].ID)

	top, err := r.books.TopSellers(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{b2.ID, b3.ID}, []uint{top[0].ID, top[1].ID})

	require.NoError(t, r.books.UpdateRating(ctx, b3.ID, 4.5))
	rated, err := r.books.FindByRatingAtLeast(ctx, 4)
	require.NoError(t, err)
	require.Len(t, rated, 1)
	assert.Equal(t, b3.ID, rated[0].ID)

	page, total, err := r.books.List(ctx, book.ListParams{Page: 1, PageSize: 2, SortBy: "price_desc"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, b3.ID, page[0].ID)
}

func TestBookRepository_UpdatePricesRollsBack(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	b := mustBook(t, r, &book.Book{ISBN: "9780306406157", Price: 1000})

	b.Price = 800
	require.NoError(t, r.books.UpdatePrices(ctx, []*book.Book{b}))
	got, _ := r.books.FindByID(ctx, b.ID)
	assert.Equal(t, int64(800), got.Price)

	boom := errors.New("boom")
	err := r.tx.Transaction(ctx, func(ctx context.Context) error {
		b.Price = 1
		if err := r.books.UpdatePrices(ctx, []*book.Book{b}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, _ = r.books.FindByID(ctx, b.ID)
	assert.Equal(t, int64(800), got.Price)
}

func TestBookRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	u := mustUser(t, r, "ada")
	b := mustBook(t, r, &book.Book{ISBN: "9780306406157"})

	require.NoError(t, r.ratings.Create(ctx, &rating.Rating{BookID: b.ID, UserID: u.ID, Score: 5}))
	require.NoError(t, r.comments.Create(ctx, &comment.Comment{BookID: b.ID, UserID: u.ID, Content: "好"}))
	w, _ := wishlist.NewWishlist(u.ID, "稍后")
	w.BookIDs = []uint{b.ID}
	require.NoError(t, r.wishlists.Create(ctx, w))

	require.NoError(t, r.books.Delete(ctx, b.ID))

	ratings, _ := r.ratings.FindByBookID(ctx, b.ID)
	assert.Empty(t, ratings)
	comments, _ := r.comments.FindByBookID(ctx, b.ID)
	assert.Empty(t, comments)
	w, _ = r.wishlists.FindByID(ctx, w.ID)
	assert.Empty(t, w.BookIDs)

	assert.ErrorIs(t, r.books.Delete(ctx, b.ID), book.ErrBookNotFound)
}

func TestBookRepository_LockByIDInTransaction(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	b := mustBook(t, r, &book.Book{ISBN: "9780306406157"})

	err := r.tx.Transaction(ctx, func(ctx context.Context) error {
		locked, err := r.books.LockByID(ctx, b.ID)
		if err != nil {
			return err
		}
		return r.books.UpdateRating(ctx, locked.ID, 3)
	})
	require.NoError(t, err)

	_, err = r.books.LockByID(ctx, 404)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestAuthorRepository_DeleteRemovesBooks(t *testing.T) {
	ctx := context.Background()
	r := setup(t)

	a := author.NewAuthor("Ada", "Lovelace", "", "")
	require.NoError(t, r.authors.Create(ctx, a))
	b := mustBook(t, r, &book.Book{ISBN: "9780306406157", AuthorID: &a.ID})
	other := mustBook(t, r, &book.Book{ISBN: "0306406152"})

	require.NoError(t, r.authors.Delete(ctx, a.ID))

	ok, _ := r.books.Exists(ctx, b.ID)
	assert.False(t, ok)
	ok, _ = r.books.Exists(ctx, other.ID)
	assert.True(t, ok)
	ok, _ = r.authors.Exists(ctx, a.ID)
	assert.False(t, ok)

	assert.ErrorIs(t, r.authors.Delete(ctx, a.ID), author.ErrAuthorNotFound)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	u := mustUser(t, r, "ada")

	err := r.users.Create(ctx, user.NewUser("ada", "hash", "", "", ""))
	assert.ErrorIs(t, err, user.ErrUsernameTaken)

	got, err := r.users.FindByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	require.NoError(t, r.users.AddCreditCard(ctx, &user.CreditCard{UserID: u.ID, CardNumber: "4111111111111111", ExpirationDate: "12/29", CVV: "123"}))
	c := cart.NewShoppingCart(u.ID)
	c.BookIDs = []uint{mustBook(t, r, &book.Book{ISBN: "9780306406157"}).ID}
	require.NoError(t, r.carts.Create(ctx, c))

	require.NoError(t, r.users.Delete(ctx, u.ID))

	_, err = r.users.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	_, err = r.carts.FindByUserID(ctx, u.ID)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
	cards, _ := r.users.FindCreditCards(ctx, u.ID)
	assert.Empty(t, cards)
}

func TestWishlistRepository(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	u := mustUser(t, r, "ada")
	b1 := mustBook(t, r, &book.Book{ISBN: "9780306406157"})
	b2 := mustBook(t, r, &book.Book{ISBN: "0306406152"})

	w, _ := wishlist.NewWishlist(u.ID, "生日")
	require.NoError(t, r.wishlists.Create(ctx, w))

	dup, _ := wishlist.NewWishlist(u.ID, "生日")
	assert.ErrorIs(t, r.wishlists.Create(ctx, dup), wishlist.ErrNameTaken)

	require.NoError(t, r.wishlists.AddMember(ctx, w.ID, b2.ID))
	require.NoError(t, r.wishlists.AddMember(ctx, w.ID, b1.ID))
	assert.ErrorIs(t, r.wishlists.AddMember(ctx, w.ID, b1.ID), wishlist.ErrAlreadyMember)

	got, err := r.wishlists.FindByNameAndUserID(ctx, "生日", u.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{b2.ID, b1.ID}, got.BookIDs)

	require.NoError(t, r.wishlists.RemoveMember(ctx, w.ID, b2.ID))
	assert.ErrorIs(t, r.wishlists.RemoveMember(ctx, w.ID, b2.ID), wishlist.ErrNotMember)
	got, err = r.wishlists.FindByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{b1.ID}, got.BookIDs)

	_, err = r.wishlists.FindByNameAndUserID(ctx, "圣诞", u.ID)
	assert.ErrorIs(t, err, wishlist.ErrWishlistNotFound)
	assert.Equal(t, wishlist.NotFoundByName("圣诞").Error(), err.Error())

	lists, err := r.wishlists.FindByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, lists, 1)
}

func TestCartRepository(t *testing.T) {
	ctx := context.Background()
	r := setup(t)
	u := mustUser(t, r, "ada")
	b := mustBook(t, r, &book.Book{ISBN: "9780306406157"})

	_, err := r.carts.FindByUserID(ctx, u.ID)
	assert.ErrorIs(t, err, cart.ErrCartNotFound)

	c := cart.NewShoppingCart(u.ID)
	require.NoError(t, r.carts.Create(ctx, c))
	assert.ErrorIs(t, r.carts.Create(ctx, cart.NewShoppingCart(u.ID)), cart.ErrCartExists)

	added, err := r.carts.AddMember(ctx, c.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, added)
	added, err = r.carts.AddMember(ctx, c.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, added)

	got, err := r.carts.FindByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID}, got.BookIDs)

	require.NoError(t, r.carts.RemoveMember(ctx, c.ID, b.ID))
	assert.ErrorIs(t, r.carts.RemoveMember(ctx, c.ID, b.ID), cart.ErrNotMember)
}
