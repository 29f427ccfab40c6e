package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/sqlitetest"
)

type capturePublisher struct {
	events []event.Event
}

func (p *capturePublisher) Publish(_ context.Context, e event.Event) error {
	p.events = append(p.events, e)
	return nil
}

type fixture struct {
	tx        *mysql.TxManager
	repo      book.Repository
	service   book.Service
	publisher *capturePublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := sqlitetest.Open(t)
	repo := mysql.NewBookRepository(db)
	return &fixture{
		tx:        mysql.NewTxManager(db),
		repo:      repo,
		service:   book.NewService(repo, mysql.NewAuthorRepository(db), zap.NewNop()),
		publisher: &capturePublisher{},
	}
}

func TestRegisterBooks_FailFast(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewRegisterBooksUseCase(f.service, f.publisher, zap.NewNop())

	saved, err := uc.Execute(ctx, []*book.Book{
		{ISBN: "9780306406157", Title: "ok", Price: 100},
		{ISBN: "9780306406158", Title: "bad checksum", Price: 100},
		{ISBN: "0306406152", Title: "never reached", Price: 100},
	})
	require.Error(t, err)
	require.Len(t, saved, 1)

	all, err := f.repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.Len(t, f.publisher.events, 1)
	payload := f.publisher.events[0].Payload.(event.BookRegisteredPayload)
	assert.Equal(t, []uint{saved[0].ID}, payload.BookIDs)
}

func TestApplyDiscount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewApplyDiscountUseCase(f.tx, f.service, f.publisher, zap.NewNop())

	acme := &book.Book{ISBN: "9780306406157", Title: "a", Price: 100, Publisher: "Acme"}
	other := &book.Book{ISBN: "0306406152", Title: "b", Price: 100, Publisher: "Other"}
	require.NoError(t, f.repo.Create(ctx, acme))
	require.NoError(t, f.repo.Create(ctx, other))

	resp, err := uc.Execute(ctx, ApplyDiscountRequest{Publisher: "Acme", Percent: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Updated)

	got, err := f.repo.FindByID(ctx, acme.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 90, got.Price)

	got, err = f.repo.FindByID(ctx, other.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 100, got.Price)

	_, err = uc.Execute(ctx, ApplyDiscountRequest{Publisher: "Nobody", Percent: 10})
	assert.ErrorIs(t, err, book.ErrNoMatchingRecords)

	_, err = uc.Execute(ctx, ApplyDiscountRequest{Publisher: "Acme", Percent: 150})
	assert.ErrorIs(t, err, book.ErrInvalidDiscount)

	assert.Len(t, f.publisher.events, 1)
}

func TestRemoveDuplicates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewRemoveDuplicatesUseCase(f.tx, f.service, f.publisher, zap.NewNop())

	var ids []uint
	for _, isbn := range []string{"9780306406157", "0306406152", "9780306406157"} {
		b := &book.Book{ISBN: isbn, Title: isbn}
		require.NoError(t, f.repo.Create(ctx, b))
		ids = append(ids, b.ID)
	}

	result, err := uc.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, result.Removed, 1)
	assert.Equal(t, ids[2], result.Removed[0].ID)

	_, err = f.repo.FindByID(ctx, ids[2])
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	result, err = uc.Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Removed)
}

func TestListBooks_Defaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	require.NoError(t, f.repo.Create(ctx, &book.Book{ISBN: "9780306406157", Title: "Go"}))

	resp, err := NewListBooksUseCase(f.service).Execute(ctx, ListBooksRequest{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 100, resp.PageSize)
	assert.EqualValues(t, 1, resp.Total)
}

type interleavingBooks struct {
	book.Repository
	hook func()
}

func (r *interleavingBooks) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	b, err := r.Repository.LockByID(ctx, id)
	if err == nil && r.hook != nil {
		hook := r.hook
		r.hook = nil
		hook()
	}
	return b, err
}

func TestUpdateBook_WritesOnlyPatchedFields(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := &book.Book{ISBN: "9780306406157", Title: "Go", Price: 100, Publisher: "Acme"}
	require.NoError(t, f.repo.Create(ctx, b))
	require.NoError(t, f.repo.UpdateRating(ctx, b.ID, 4.5))

	title := "Go 2"
	got, err := NewUpdateBookUseCase(f.tx, f.service).Execute(ctx, b.ID, book.Patch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Go 2", got.Title)

	stored, err := f.repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go 2", stored.Title)
	assert.Equal(t, 4.5, stored.Rating)
	assert.EqualValues(t, 100, stored.Price)

	_, err = NewUpdateBookUseCase(f.tx, f.service).Execute(ctx, 999, book.Patch{Title: &title})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestUpdateBook_KeepsConcurrentDiscount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	b := &book.Book{ISBN: "9780306406157", Title: "Go", Price: 100, Publisher: "Acme"}
	require.NoError(t, f.repo.Create(ctx, b))

	discount := NewApplyDiscountUseCase(f.tx, f.service, f.publisher, zap.NewNop())
	repo := &interleavingBooks{Repository: f.repo}
	repo.hook = func() {
		_, err := discount.Execute(ctx, ApplyDiscountRequest{Publisher: "Acme", Percent: 10})
		require.NoError(t, err)
	}
	svc := book.NewService(repo, nil, zap.NewNop())

	genre := "Programming"
	_, err := svc.Update(ctx, b.ID, book.Patch{Genre: &genre})
	require.NoError(t, err)

	stored, err := f.repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Programming", stored.Genre)
	assert.EqualValues(t, 90, stored.Price)
}
