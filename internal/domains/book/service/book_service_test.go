package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/domains/author"
	"locallibrary/internal/domains/book"
	"locallibrary/internal/domains/book/service"
	"locallibrary/internal/domains/bookinstance"
	"locallibrary/internal/domains/genre"
	"locallibrary/internal/testutil/memstore"
)

type fixture struct {
	store   *memstore.Store
	svc     book.Service
	author  *author.Author
	fantasy *genre.Genre
	poetry  *genre.Genre
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	f := &fixture{
		store:   store,
		svc:     service.NewBookService(store.Books(), store.Authors(), store.Genres()),
		author:  &author.Author{FirstName: "Patrick", FamilyName: "Rothfuss"},
		fantasy: &genre.Genre{Name: "Fantasy"},
		poetry:  &genre.Genre{Name: "Poetry"},
	}
	require.NoError(t, store.Authors().Create(ctx, f.author))
	require.NoError(t, store.Genres().Create(ctx, f.fantasy))
	require.NoError(t, store.Genres().Create(ctx, f.poetry))
	return f
}

func (f *fixture) form() *book.BookForm {
	return &book.BookForm{
		Title:   "The Name of the Wind",
		Author:  f.author.ID.Hex(),
		Summary: "A story.",
		ISBN:    "9781473211896",
		Genre:   []string{f.fantasy.ID.Hex()},
	}
}

func TestBookService_Create(t *testing.T) {
	f := newFixture(t)

	b, problems, err := f.svc.Create(context.Background(), f.form())
	require.NoError(t, err)
	require.Empty(t, problems)
	assert.False(t, b.ID.IsZero())
	assert.Equal(t, f.author.ID, b.Author)
	assert.Equal(t, []primitive.ObjectID{f.fantasy.ID}, b.Genre)
	assert.True(t, b.HasGenre(f.fantasy.ID))
	assert.False(t, b.HasGenre(f.poetry.ID))
}

func TestBookService_Create_MissingFields(t *testing.T) {
	f := newFixture(t)

	_, problems, err := f.svc.Create(context.Background(), &book.BookForm{Genre: []string{"", " "}})
	require.NoError(t, err)

	fields := make([]string, 0, len(problems))
	for _, p := range problems {
		fields = append(fields, p.Field)
	}
	assert.Equal(t, []string{"title", "author", "summary", "isbn"}, fields)

	count, _ := f.store.Books().Count(context.Background())
	assert.Zero(t, count)
}

func TestBookService_Create_UnknownReferences(t *testing.T) {
	f := newFixture(t)

	form := f.form()
	form.Author = primitive.NewObjectID().Hex()
	form.Genre = []string{f.fantasy.ID.Hex(), primitive.NewObjectID().Hex()}

	draft, problems, err := f.svc.Create(context.Background(), form)
	require.NoError(t, err)
	require.Len(t, problems, 2)
	assert.Equal(t, "author", problems[0].Field)
	assert.Equal(t, "genre", problems[1].Field)
	assert.Equal(t, "The Name of the Wind", draft.Title)

	count, _ := f.store.Books().Count(context.Background())
	assert.Zero(t, count)
}

func TestBookService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.svc.Create(ctx, f.form())
	require.NoError(t, err)
	require.NoError(t, f.store.Books().Create(ctx, &book.Book{Title: "Anonymous", Author: primitive.NewObjectID()}))

	items, err := f.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Anonymous", items[0].Book.Title)
	assert.Nil(t, items[0].Author)
	assert.Equal(t, "Rothfuss, Patrick", items[1].Author.Name())
}

func TestBookService_GetDetail(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	form := f.form()
	form.Genre = append(form.Genre, f.poetry.ID.Hex())
	b, _, err := f.svc.Create(ctx, form)
	require.NoError(t, err)
	require.NoError(t, f.store.BookInstances().Create(ctx, &bookinstance.BookInstance{
		Book: b.ID, Imprint: "Gollancz, 2007", Status: bookinstance.StatusAvailable,
	}))

	detail, err := f.svc.GetDetail(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, detail.Book.ID)
	assert.Equal(t, f.author.ID, detail.Author.ID)
	require.Len(t, detail.Genres, 2)
	assert.Equal(t, "Fantasy", detail.Genres[0].Name)
	require.Len(t, detail.Copies, 1)
	assert.Equal(t, "Gollancz, 2007", detail.Copies[0].Imprint)

	_, err = f.svc.GetDetail(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookService_Update(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	b, _, err := f.svc.Create(ctx, f.form())
	require.NoError(t, err)

	form := f.form()
	form.Title = "The Wise Man's Fear"
	form.Genre = nil
	updated, problems, err := f.svc.Update(ctx, b.ID, form)
	require.NoError(t, err)
	require.Empty(t, problems)
	assert.Equal(t, b.ID, updated.ID)

	stored, err := f.store.Books().FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "The Wise Man&#39;s Fear", stored.Title)
	assert.Empty(t, stored.Genre)

	_, _, err = f.svc.Update(ctx, primitive.NewObjectID(), f.form())
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	_, problems, err = f.svc.Update(ctx, primitive.NewObjectID(), &book.BookForm{})
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.Empty(t, problems)
}

func TestBookService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked while copies exist", func(t *testing.T) {
		f := newFixture(t)
		b, _, err := f.svc.Create(ctx, f.form())
		require.NoError(t, err)
		require.NoError(t, f.store.BookInstances().Create(ctx, &bookinstance.BookInstance{
			Book: b.ID, Imprint: "First edition", Status: bookinstance.StatusLoaned,
		}))

		result, err := f.svc.Delete(ctx, b.ID)
		require.NoError(t, err)
		assert.True(t, result.Blocked)
		assert.Len(t, result.Detail.Copies, 1)

		exists, _ := f.store.Books().Exists(ctx, b.ID)
		assert.True(t, exists)
	})

	t.Run("removes a book without copies", func(t *testing.T) {
		f := newFixture(t)
		b, _, err := f.svc.Create(ctx, f.form())
		require.NoError(t, err)

		result, err := f.svc.Delete(ctx, b.ID)
		require.NoError(t, err)
		assert.False(t, result.Blocked)

		exists, _ := f.store.Books().Exists(ctx, b.ID)
		assert.False(t, exists)
	})
}

func TestBookService_FormOptions(t *testing.T) {
	f := newFixture(t)

	opts, err := f.svc.FormOptions(context.Background())
	require.NoError(t, err)
	assert.Len(t, opts.Authors, 1)
	require.Len(t, opts.Genres, 2)
	assert.Equal(t, "Fantasy", opts.Genres[0].Name)
}
