// Package memstore is an in-memory implementation of the catalog
// repositories, used by service and router tests instead of MongoDB.
package memstore

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/domains/author"
	"locallibrary/internal/domains/book"
	"locallibrary/internal/domains/bookinstance"
	"locallibrary/internal/domains/genre"
	"locallibrary/internal/shared"
)

type Store struct {
	mu        sync.RWMutex
	authors   map[primitive.ObjectID]author.Author
	genres    map[primitive.ObjectID]genre.Genre
	books     map[primitive.ObjectID]book.Book
	instances map[primitive.ObjectID]bookinstance.BookInstance
}

func New() *Store {
	return &Store{
		authors:   map[primitive.ObjectID]author.Author{},
		genres:    map[primitive.ObjectID]genre.Genre{},
		books:     map[primitive.ObjectID]book.Book{},
		instances: map[primitive.ObjectID]bookinstance.BookInstance{},
	}
}

func (s *Store) Authors() author.Repository             { return authorRepo{s} }
func (s *Store) Genres() genre.Repository               { return genreRepo{s} }
func (s *Store) Books() book.Repository                 { return bookRepo{s} }
func (s *Store) BookInstances() bookinstance.Repository { return instanceRepo{s} }

func assignID(id *primitive.ObjectID) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
}

func lessID(a, b primitive.ObjectID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}

// ========== AUTHORS ==========

type authorRepo struct{ s *Store }

func (r authorRepo) Create(_ context.Context, a *author.Author) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	assignID(&a.ID)
	r.s.authors[a.ID] = *a
	return nil
}

func (r authorRepo) FindByID(_ context.Context, id primitive.ObjectID) (*author.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	return &a, nil
}

func (r authorRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]author.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := map[primitive.ObjectID]bool{}
	var out []author.Author
	for _, id := range ids {
		if a, ok := r.s.authors[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, a)
		}
	}
	sortAuthors(out)
	return out, nil
}

func (r authorRepo) List(_ context.Context) ([]author.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]author.Author, 0, len(r.s.authors))
	for _, a := range r.s.authors {
		out = append(out, a)
	}
	sortAuthors(out)
	return out, nil
}

func sortAuthors(authors []author.Author) {
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].FamilyName != authors[j].FamilyName {
			return authors[i].FamilyName < authors[j].FamilyName
		}
		return authors[i].FirstName < authors[j].FirstName
	})
}

func (r authorRepo) Update(_ context.Context, a *author.Author) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.authors[a.ID]; !ok {
		return author.ErrAuthorNotFound
	}
	r.s.authors[a.ID] = *a
	return nil
}

func (r authorRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.authors, id)
	return nil
}

func (r authorRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.authors)), nil
}

func (r authorRepo) FindBooks(_ context.Context, id primitive.ObjectID) ([]shared.BookSummary, error) {
	return r.s.bookSummaries(func(b book.Book) bool { return b.Author == id }), nil
}

// ========== GENRES ==========

type genreRepo struct{ s *Store }

func (r genreRepo) Create(_ context.Context, g *genre.Genre) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	assignID(&g.ID)
	r.s.genres[g.ID] = *g
	return nil
}

func (r genreRepo) FindByID(_ context.Context, id primitive.ObjectID) (*genre.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	g, ok := r.s.genres[id]
	if !ok {
		return nil, genre.ErrGenreNotFound
	}
	return &g, nil
}

func (r genreRepo) FindByName(_ context.Context, name string) (*genre.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	// Trả về genre tạo sớm nhất nếu có nhiều bản trùng
	var found *genre.Genre
	for _, g := range r.s.genres {
		if strings.EqualFold(g.Name, name) && (found == nil || lessID(g.ID, found.ID)) {
			g := g
			found = &g
		}
	}
	if found == nil {
		return nil, genre.ErrGenreNotFound
	}
	return found, nil
}

func (r genreRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]genre.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := map[primitive.ObjectID]bool{}
	var out []genre.Genre
	for _, id := range ids {
		if g, ok := r.s.genres[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, g)
		}
	}
	sortGenres(out)
	return out, nil
}

func (r genreRepo) List(_ context.Context) ([]genre.Genre, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]genre.Genre, 0, len(r.s.genres))
	for _, g := range r.s.genres {
		out = append(out, g)
	}
	sortGenres(out)
	return out, nil
}

func sortGenres(genres []genre.Genre) {
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
}

func (r genreRepo) Update(_ context.Context, g *genre.Genre) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.genres[g.ID]; !ok {
		return genre.ErrGenreNotFound
	}
	r.s.genres[g.ID] = *g
	return nil
}

func (r genreRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.genres, id)
	return nil
}

func (r genreRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.genres)), nil
}

func (r genreRepo) FindBooks(_ context.Context, id primitive.ObjectID) ([]shared.BookSummary, error) {
	return r.s.bookSummaries(func(b book.Book) bool { return b.HasGenre(id) }), nil
}

// ========== BOOKS ==========

type bookRepo struct{ s *Store }

func (r bookRepo) Create(_ context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	assignID(&b.ID)
	r.s.books[b.ID] = cloneBook(*b)
	return nil
}

func (r bookRepo) FindByID(_ context.Context, id primitive.ObjectID) (*book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	b = cloneBook(b)
	return &b, nil
}

func (r bookRepo) Exists(_ context.Context, id primitive.ObjectID) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.books[id]
	return ok, nil
}

func (r bookRepo) List(_ context.Context) ([]book.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]book.Book, 0, len(r.s.books))
	for _, b := range r.s.books {
		out = append(out, cloneBook(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r bookRepo) ListSummaries(_ context.Context) ([]shared.BookSummary, error) {
	summaries := r.s.bookSummaries(func(book.Book) bool { return true })
	for i := range summaries {
		summaries[i].Summary = ""
	}
	return summaries, nil
}

func (r bookRepo) Update(_ context.Context, b *book.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	r.s.books[b.ID] = cloneBook(*b)
	return nil
}

func (r bookRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.books, id)
	return nil
}

func (r bookRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.books)), nil
}

func (r bookRepo) FindCopies(_ context.Context, id primitive.ObjectID) ([]shared.CopySummary, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []shared.CopySummary
	for _, bi := range r.s.instances {
		if bi.Book == id {
			out = append(out, shared.CopySummary{
				ID:      bi.ID,
				Imprint: bi.Imprint,
				Status:  bi.Status,
				DueBack: bi.DueBack,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return lessID(out[i].ID, out[j].ID) })
	return out, nil
}

func (s *Store) bookSummaries(match func(book.Book) bool) []shared.BookSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []shared.BookSummary
	for _, b := range s.books {
		if match(b) {
			out = append(out, shared.BookSummary{ID: b.ID, Title: b.Title, Summary: b.Summary})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func cloneBook(b book.Book) book.Book {
	b.Genre = append([]primitive.ObjectID{}, b.Genre...)
	return b
}

// ========== BOOK INSTANCES ==========

type instanceRepo struct{ s *Store }

func (r instanceRepo) Create(_ context.Context, bi *bookinstance.BookInstance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	assignID(&bi.ID)
	r.s.instances[bi.ID] = *bi
	return nil
}

func (r instanceRepo) view(bi bookinstance.BookInstance) bookinstance.View {
	v := bookinstance.View{BookInstance: bi}
	if b, ok := r.s.books[bi.Book]; ok {
		v.BookRef = &shared.BookSummary{ID: b.ID, Title: b.Title}
	}
	return v
}

func (r instanceRepo) FindByID(_ context.Context, id primitive.ObjectID) (*bookinstance.View, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	bi, ok := r.s.instances[id]
	if !ok {
		return nil, bookinstance.ErrBookInstanceNotFound
	}
	v := r.view(bi)
	return &v, nil
}

func (r instanceRepo) List(_ context.Context) ([]bookinstance.View, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]bookinstance.View, 0, len(r.s.instances))
	for _, bi := range r.s.instances {
		out = append(out, r.view(bi))
	}
	sort.Slice(out, func(i, j int) bool { return lessID(out[i].ID, out[j].ID) })
	return out, nil
}

func (r instanceRepo) Update(_ context.Context, bi *bookinstance.BookInstance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.instances[bi.ID]; !ok {
		return bookinstance.ErrBookInstanceNotFound
	}
	r.s.instances[bi.ID] = *bi
	return nil
}

func (r instanceRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.instances, id)
	return nil
}

func (r instanceRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.instances)), nil
}

func (r instanceRepo) CountByStatus(_ context.Context, status string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var n int64
	for _, bi := range r.s.instances {
		if bi.Status == status {
			n++
		}
	}
	return n, nil
}
