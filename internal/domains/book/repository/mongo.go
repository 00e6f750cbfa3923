package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"locallibrary/internal/domains/book"
	"locallibrary/internal/infrastructure/database"
	"locallibrary/internal/shared"
)

type mongoRepository struct {
	books     *mongo.Collection
	instances *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) book.Repository {
	return &mongoRepository{
		books:     db.Collection(database.CollectionBooks),
		instances: db.Collection(database.CollectionBookInstances),
	}
}

func (r *mongoRepository) Create(ctx context.Context, b *book.Book) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if _, err := r.books.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*book.Book, error) {
	var b book.Book
	if err := r.books.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&b); err != nil {
		if database.IsNoDocuments(err) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return &b, nil
}

func (r *mongoRepository) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	n, err := r.books.CountDocuments(ctx, bson.D{{Key: "_id", Value: id}}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count book: %w", err)
	}
	return n > 0, nil
}

func (r *mongoRepository) List(ctx context.Context) ([]book.Book, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})

	cursor, err := r.books.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find books: %w", err)
	}

	var books []book.Book
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}

func (r *mongoRepository) ListSummaries(ctx context.Context) ([]shared.BookSummary, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "title", Value: 1}}).
		SetSort(bson.D{{Key: "title", Value: 1}})

	cursor, err := r.books.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find book titles: %w", err)
	}

	var books []shared.BookSummary
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode book titles: %w", err)
	}
	return books, nil
}

func (r *mongoRepository) Update(ctx context.Context, b *book.Book) error {
	result, err := r.books.ReplaceOne(ctx, bson.D{{Key: "_id", Value: b.ID}}, b)
	if err != nil {
		return fmt.Errorf("replace book: %w", err)
	}
	if result.MatchedCount == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.books.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	return r.books.CountDocuments(ctx, bson.D{})
}

func (r *mongoRepository) FindCopies(ctx context.Context, id primitive.ObjectID) ([]shared.CopySummary, error) {
	opts := options.Find().SetProjection(bson.D{
		{Key: "imprint", Value: 1},
		{Key: "status", Value: 1},
		{Key: "due_back", Value: 1},
	})

	cursor, err := r.instances.Find(ctx, bson.D{{Key: "book", Value: id}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find book copies: %w", err)
	}

	var copies []shared.CopySummary
	if err := cursor.All(ctx, &copies); err != nil {
		return nil, fmt.Errorf("decode book copies: %w", err)
	}
	return copies, nil
}
