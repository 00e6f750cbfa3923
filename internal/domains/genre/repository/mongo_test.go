package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"locallibrary/internal/domains/genre"
	"locallibrary/internal/infrastructure/database"
)

// testDatabase trả về một database tạm, bị drop khi test xong.
// Test bị skip nếu MONGO_TEST_URL không được set.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	url := os.Getenv("MONGO_TEST_URL")
	if url == "" {
		t.Skip("MONGO_TEST_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	require.NoError(t, err)

	db := client.Database("locallibrary_test_" + primitive.NewObjectID().Hex())
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

func TestMongoRepository_FindByNameIgnoresCase(t *testing.T) {
	db := testDatabase(t)
	repo := NewMongoRepository(db)
	ctx := context.Background()

	g := &genre.Genre{Name: "Fantasy"}
	require.NoError(t, repo.Create(ctx, g))

	found, err := repo.FindByName(ctx, "FANTASY")
	require.NoError(t, err)
	assert.Equal(t, g.ID, found.ID)

	_, err = repo.FindByName(ctx, "Fantasia")
	assert.ErrorIs(t, err, genre.ErrGenreNotFound)
}

func TestMongoRepository_FindBooks(t *testing.T) {
	db := testDatabase(t)
	repo := NewMongoRepository(db)
	ctx := context.Background()

	g := &genre.Genre{Name: "Poetry"}
	require.NoError(t, repo.Create(ctx, g))

	books := db.Collection(database.CollectionBooks)
	_, err := books.InsertMany(ctx, []interface{}{
		map[string]interface{}{"title": "Odes", "summary": "s", "genre": []primitive.ObjectID{g.ID}},
		map[string]interface{}{"title": "Novel", "summary": "s", "genre": []primitive.ObjectID{}},
	})
	require.NoError(t, err)

	found, err := repo.FindBooks(ctx, g.ID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Odes", found[0].Title)
}

func TestMongoRepository_UpdateAndDelete(t *testing.T) {
	db := testDatabase(t)
	repo := NewMongoRepository(db)
	ctx := context.Background()

	g := &genre.Genre{Name: "Scifi"}
	require.NoError(t, repo.Create(ctx, g))

	g.Name = "Science Fiction"
	require.NoError(t, repo.Update(ctx, g))

	err := repo.Update(ctx, &genre.Genre{ID: primitive.NewObjectID(), Name: "x"})
	assert.ErrorIs(t, err, genre.ErrGenreNotFound)

	require.NoError(t, repo.Delete(ctx, g.ID))
	require.NoError(t, repo.Delete(ctx, g.ID))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
