package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"locallibrary/internal/domains/genre"
	"locallibrary/internal/infrastructure/database"
	"locallibrary/internal/shared"
)

type mongoRepository struct {
	genres *mongo.Collection
	books  *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) genre.Repository {
	return &mongoRepository{
		genres: db.Collection(database.CollectionGenres),
		books:  db.Collection(database.CollectionBooks),
	}
}

func (r *mongoRepository) Create(ctx context.Context, g *genre.Genre) error {
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	if _, err := r.genres.InsertOne(ctx, g); err != nil {
		return fmt.Errorf("insert genre: %w", err)
	}
	return nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*genre.Genre, error) {
	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (r *mongoRepository) FindByName(ctx context.Context, name string) (*genre.Genre, error) {
	opts := options.FindOne().SetCollation(database.CaseInsensitive())
	return r.findOne(ctx, bson.D{{Key: "name", Value: name}}, opts)
}

func (r *mongoRepository) findOne(ctx context.Context, filter bson.D, opts ...*options.FindOneOptions) (*genre.Genre, error) {
	var g genre.Genre
	if err := r.genres.FindOne(ctx, filter, opts...).Decode(&g); err != nil {
		if database.IsNoDocuments(err) {
			return nil, genre.ErrGenreNotFound
		}
		return nil, fmt.Errorf("find genre: %w", err)
	}
	return &g, nil
}

func (r *mongoRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]genre.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	return r.find(ctx, filter)
}

func (r *mongoRepository) List(ctx context.Context) ([]genre.Genre, error) {
	return r.find(ctx, bson.D{})
}

func (r *mongoRepository) find(ctx context.Context, filter bson.D) ([]genre.Genre, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.genres.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find genres: %w", err)
	}

	var genres []genre.Genre
	if err := cursor.All(ctx, &genres); err != nil {
		return nil, fmt.Errorf("decode genres: %w", err)
	}
	return genres, nil
}

func (r *mongoRepository) Update(ctx context.Context, g *genre.Genre) error {
	result, err := r.genres.ReplaceOne(ctx, bson.D{{Key: "_id", Value: g.ID}}, g)
	if err != nil {
		return fmt.Errorf("replace genre: %w", err)
	}
	if result.MatchedCount == 0 {
		return genre.ErrGenreNotFound
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.genres.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("delete genre: %w", err)
	}
	return nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	return r.genres.CountDocuments(ctx, bson.D{})
}

// FindBooks: books.genre là array, filter {genre: id} match khi array chứa id
func (r *mongoRepository) FindBooks(ctx context.Context, id primitive.ObjectID) ([]shared.BookSummary, error) {
	opts := options.Find().
		SetProjection(bson.D{{Key: "title", Value: 1}, {Key: "summary", Value: 1}}).
		SetSort(bson.D{{Key: "title", Value: 1}})

	cursor, err := r.books.Find(ctx, bson.D{{Key: "genre", Value: id}}, opts)
	if err != nil {
		return nil, fmt.Errorf("find books by genre: %w", err)
	}

	var books []shared.BookSummary
	if err := cursor.All(ctx, &books); err != nil {
		return nil, fmt.Errorf("decode books: %w", err)
	}
	return books, nil
}
