package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"locallibrary/internal/domains/bookinstance"
	"locallibrary/internal/infrastructure/database"
)

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

func TestMongoRepository_PopulatesBook(t *testing.T) {
	db := testDatabase(t)
	repo := NewMongoRepository(db)
	ctx := context.Background()

	bookID := primitive.NewObjectID()
	_, err := db.Collection(database.CollectionBooks).InsertOne(ctx, bson.D{
		{Key: "_id", Value: bookID},
		{Key: "title", Value: "Dune"},
	})
	require.NoError(t, err)

	withBook := &bookinstance.BookInstance{Book: bookID, Imprint: "Chilton", Status: bookinstance.StatusAvailable}
	orphan := &bookinstance.BookInstance{Book: primitive.NewObjectID(), Imprint: "Ace", Status: bookinstance.StatusLoaned}
	require.NoError(t, repo.Create(ctx, withBook))
	require.NoError(t, repo.Create(ctx, orphan))

	view, err := repo.FindByID(ctx, withBook.ID)
	require.NoError(t, err)
	require.NotNil(t, view.BookRef)
	assert.Equal(t, "Dune", view.BookRef.Title)
	assert.Nil(t, view.DueBack)

	views, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Nil(t, views[1].BookRef)

	available, err := repo.CountByStatus(ctx, bookinstance.StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, int64(1), available)

	_, err = repo.FindByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, bookinstance.ErrBookInstanceNotFound)
}
