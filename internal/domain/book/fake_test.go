package book

import (
	"context"
	"sort"

	"github.com/xiebiao/bookcatalog/internal/domain/author"
)

// memRepo 内存版图书仓储,只用于领域服务测试
type memRepo struct {
	books      map[uint]*Book
	nextID     uint
	priceSaves int
	locks      int
	updates    []Patch
}

func newMemRepo() *memRepo {
	return &memRepo{books: map[uint]*Book{}, nextID: 1}
}

func (r *memRepo) sorted(keep func(*Book) bool) []*Book {
	out := make([]*Book, 0)
	for _, b := range r.books {
		if keep(b) {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *memRepo) Create(_ context.Context, b *Book) error {
	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uint) (*Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, NotFound(id)
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) FindByISBN(_ context.Context, isbn string) (*Book, error) {
	found := r.sorted(func(b *Book) bool { return b.ISBN == isbn })
	if len(found) == 0 {
		return nil, NotFoundByISBN(isbn)
	}
	return found[0], nil
}

func (r *memRepo) FindAll(context.Context) ([]*Book, error) {
	return r.sorted(func(*Book) bool { return true }), nil
}

func (r *memRepo) FindByPublisher(_ context.Context, publisher string) ([]*Book, error) {
	return r.sorted(func(b *Book) bool { return b.Publisher == publisher }), nil
}

func (r *memRepo) FindByGenre(_ context.Context, genre string) ([]*Book, error) {
	return r.sorted(func(b *Book) bool { return b.Genre == genre }), nil
}

func (r *memRepo) FindByAuthorID(_ context.Context, authorID uint) ([]*Book, error) {
	return r.sorted(func(b *Book) bool { return b.AuthorID != nil && *b.AuthorID == authorID }), nil
}

func (r *memRepo) FindByRatingAtLeast(_ context.Context, min float64) ([]*Book, error) {
	return r.sorted(func(b *Book) bool { return b.Rating >= min }), nil
}

func (r *memRepo) TopSellers(_ context.Context, limit int) ([]*Book, error) {
	all := r.sorted(func(*Book) bool { return true })
	sort.SliceStable(all, func(i, j int) bool { return all[i].CopiesSold > all[j].CopiesSold })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *memRepo) List(ctx context.Context, _ ListParams) ([]*Book, int64, error) {
	all, _ := r.FindAll(ctx)
	return all, int64(len(all)), nil
}

func (r *memRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := r.books[id]
	return ok, nil
}

func (r *memRepo) Update(_ context.Context, b *Book, patch Patch) error {
	r.updates = append(r.updates, patch)
	stored := r.books[b.ID]
	stored.Apply(patch)
	return nil
}

func (r *memRepo) UpdatePrices(_ context.Context, books []*Book) error {
	r.priceSaves++
	for _, b := range books {
		r.books[b.ID].Price = b.Price
	}
	return nil
}

func (r *memRepo) UpdateRating(_ context.Context, id uint, rating float64) error {
	r.books[id].Rating = rating
	return nil
}

func (r *memRepo) LockByID(ctx context.Context, id uint) (*Book, error) {
	r.locks++
	return r.FindByID(ctx, id)
}

func (r *memRepo) LockByPublisher(ctx context.Context, publisher string) ([]*Book, error) {
	r.locks++
	return r.FindByPublisher(ctx, publisher)
}

func (r *memRepo) Delete(_ context.Context, id uint) error {
	delete(r.books, id)
	return nil
}

// memAuthors 只实现Exists,其余方法不会被图书服务调用
type memAuthors struct {
	author.Repository
	ids map[uint]bool
}

func (a memAuthors) Exists(_ context.Context, id uint) (bool, error) {
	return a.ids[id], nil
}
