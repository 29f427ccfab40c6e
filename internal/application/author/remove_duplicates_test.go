package author

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
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

func TestRemoveDuplicates_KeepsFirstAndCascadesBooks(t *testing.T) {
	ctx := context.Background()
	db := sqlitetest.Open(t)
	authors := mysql.NewAuthorRepository(db)
	books := mysql.NewBookRepository(db)
	pub := &capturePublisher{}
	uc := NewRemoveDuplicatesUseCase(mysql.NewTxManager(db), author.NewService(authors, zap.NewNop()), pub, zap.NewNop())

	var ids []uint
	for _, a := range []*author.Author{
		author.NewAuthor("Ursula", "Le Guin", "", "Ace"),
		author.NewAuthor("Ted", "Chiang", "", "Knopf"),
		author.NewAuthor("Ursula", "Le Guin", "", "Ace"),
		author.NewAuthor("Ursula", "Le Guin", "", "Harper"),
	} {
		require.NoError(t, authors.Create(ctx, a))
		ids = append(ids, a.ID)
	}
	dupID := ids[2]
	require.NoError(t, books.Create(ctx, &book.Book{ISBN: "9780306406157", Title: "dup", AuthorID: &dupID}))

	result, err := uc.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, result.Removed, 1)
	assert.Equal(t, ids[2], result.Removed[0].ID)
	assert.Len(t, result.Survivors, 3)

	_, err = books.FindByISBN(ctx, "9780306406157")
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	require.Len(t, pub.events, 1)
	assert.Equal(t, event.DuplicatesRemoved, pub.events[0].Name)

	// 第二次清理没有可删除的记录
	result, err = uc.Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Removed)
	assert.Len(t, pub.events, 1)
}
