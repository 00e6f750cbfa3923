package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/domains/book"
	"locallibrary/internal/domains/genre"
	"locallibrary/internal/domains/genre/service"
	"locallibrary/internal/testutil/memstore"
)

func TestGenreService_Create(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := service.NewGenreService(store.Genres())

	g, problems, err := svc.Create(ctx, &genre.GenreForm{Name: "  Fantasy "})
	require.NoError(t, err)
	require.Empty(t, problems)
	assert.False(t, g.ID.IsZero())
	assert.Equal(t, "Fantasy", g.Name)

	count, _ := store.Genres().Count(ctx)
	assert.Equal(t, int64(1), count)
}

func TestGenreService_Create_DuplicateNameIgnoresCase(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := service.NewGenreService(store.Genres())

	first, _, err := svc.Create(ctx, &genre.GenreForm{Name: "Fantasy"})
	require.NoError(t, err)

	again, problems, err := svc.Create(ctx, &genre.GenreForm{Name: "fantasy"})
	require.NoError(t, err)
	assert.Empty(t, problems)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, first.URL(), again.URL())

	count, _ := store.Genres().Count(ctx)
	assert.Equal(t, int64(1), count)
}

func TestGenreService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"empty", "   ", "Genre name must contain at least 3 characters"},
		{"too short", "ab", "Genre name must contain between 3 and 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := memstore.New()
			svc := service.NewGenreService(store.Genres())

			draft, problems, err := svc.Create(ctx, &genre.GenreForm{Name: tt.input})
			require.NoError(t, err)
			require.Len(t, problems, 1)
			assert.Equal(t, "name", problems[0].Field)
			assert.Equal(t, tt.message, problems[0].Message)
			assert.True(t, draft.ID.IsZero())

			count, _ := store.Genres().Count(ctx)
			assert.Zero(t, count)
		})
	}
}

func TestGenreService_Create_EscapesName(t *testing.T) {
	svc := service.NewGenreService(memstore.New().Genres())

	g, _, err := svc.Create(context.Background(), &genre.GenreForm{Name: "<b>Horror</b>"})
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;Horror&lt;/b&gt;", g.Name)
}

func TestGenreService_GetDetail(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := service.NewGenreService(store.Genres())

	g := &genre.Genre{Name: "Poetry"}
	require.NoError(t, store.Genres().Create(ctx, g))
	require.NoError(t, store.Books().Create(ctx, &book.Book{Title: "Odes", Genre: []primitive.ObjectID{g.ID}}))
	require.NoError(t, store.Books().Create(ctx, &book.Book{Title: "Novel"}))

	detail, err := svc.GetDetail(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "Poetry", detail.Genre.Name)
	require.Len(t, detail.Books, 1)
	assert.Equal(t, "Odes", detail.Books[0].Title)

	_, err = svc.GetDetail(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, genre.ErrGenreNotFound)
}

func TestGenreService_Update(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	svc := service.NewGenreService(store.Genres())

	g := &genre.Genre{Name: "Scifi"}
	require.NoError(t, store.Genres().Create(ctx, g))

	updated, problems, err := svc.Update(ctx, g.ID, &genre.GenreForm{Name: "Science Fiction"})
	require.NoError(t, err)
	require.Empty(t, problems)
	assert.Equal(t, g.ID, updated.ID)

	stored, _ := store.Genres().FindByID(ctx, g.ID)
	assert.Equal(t, "Science Fiction", stored.Name)

	_, _, err = svc.Update(ctx, primitive.NewObjectID(), &genre.GenreForm{Name: "Missing"})
	assert.ErrorIs(t, err, genre.ErrGenreNotFound)

	// Existence được check trước validation
	_, problems, err = svc.Update(ctx, primitive.NewObjectID(), &genre.GenreForm{Name: ""})
	assert.ErrorIs(t, err, genre.ErrGenreNotFound)
	assert.Empty(t, problems)
}

func TestGenreService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("blocked while books reference the genre", func(t *testing.T) {
		store := memstore.New()
		svc := service.NewGenreService(store.Genres())

		g := &genre.Genre{Name: "Poetry"}
		require.NoError(t, store.Genres().Create(ctx, g))
		require.NoError(t, store.Books().Create(ctx, &book.Book{Title: "Odes", Genre: []primitive.ObjectID{g.ID}}))

		result, err := svc.Delete(ctx, g.ID)
		require.NoError(t, err)
		assert.True(t, result.Blocked)
		require.Len(t, result.Detail.Books, 1)

		_, err = store.Genres().FindByID(ctx, g.ID)
		assert.NoError(t, err)
	})

	t.Run("removes an unreferenced genre", func(t *testing.T) {
		store := memstore.New()
		svc := service.NewGenreService(store.Genres())

		g := &genre.Genre{Name: "Poetry"}
		require.NoError(t, store.Genres().Create(ctx, g))

		result, err := svc.Delete(ctx, g.ID)
		require.NoError(t, err)
		assert.False(t, result.Blocked)

		_, err = store.Genres().FindByID(ctx, g.ID)
		assert.ErrorIs(t, err, genre.ErrGenreNotFound)
	})

	t.Run("missing genre is a no-op", func(t *testing.T) {
		svc := service.NewGenreService(memstore.New().Genres())

		result, err := svc.Delete(ctx, primitive.NewObjectID())
		require.NoError(t, err)
		assert.False(t, result.Blocked)
	})
}
