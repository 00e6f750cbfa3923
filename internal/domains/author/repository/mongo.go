package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"locallibrary/internal/domains/author"
	"locallibrary/internal/infrastructure/database"
	"locallibrary/internal/shared"
)

type mongoRepository struct {
	authors *mongo.Collection
	books   *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) author.Repository {
	return &mongoRepository{
		authors: db.Collection(database.CollectionAuthors),
		books:   db.Collection(database.CollectionBooks),
	}
}

func (r *mongoRepository) Create(ctx context.Context, a *author.Author) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if _, err := r.authors.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert author: %w", err)
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*author.Author, error) {
	var a author.Author
	if err := r.authors.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&a); err != nil {
		if database.IsNoDocuments(err) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}
	return &a, nil
}

func (r *mongoRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]author.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
}

func (r *mongoRepository) List(ctx context.Context) ([]author.Author, error) {
	return r.find(ctx, bson.D{})
}

func (r *mongoRepository) find(ctx context.Context, filter bson.D) ([]author.Author, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "family_name", Value: 1},
		{Key: "first_name", Value: 1},
	})

	cursor, err := r.authors.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find authors: %w", err)
	}

	var authors []author.Author
	if err := cursor.All(ctx, &authors); err != nil {
		return nil, fmt.Errorf("decode authors: %w", err)
	}
	return authors, nil
}

func (r *mongoRepository) Update(ctx context.Context, a *author.Author) error {
	result, err := r.authors.ReplaceOne(ctx, bson.D{{Key: "_id", Value: a.ID}}, a)
	if err != nil {
		return fmt.Errorf("replace author: %w", err)
	}
	if result.MatchedCount == 0 {
		return author.ErrAuthorNotFound
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.authors.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("delete author: %w", err)
	}
	return nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	return r.authors.CountDocuments(ctx, bson.D{})
}

func (r *mongoRepository) FindBooks(ctx context.Context, id primitive.ObjectID) ([]shared.BookSummary, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "title", Value: 1}, {Key: "summary", Value: 1}}).
		SetSort(bson.D{{Key: "title", Value: 1}})

	cursor, err := r.books.Find(ctx, bson.D{{Key: "author", Value: id}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find books by author: %w", err)
	}

	var books []shared.BookSummary
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}
