package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"locallibrary/internal/domains/bookinstance"
	"locallibrary/internal/infrastructure/database"
)

type mongoRepository struct {
	instances *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) bookinstance.Repository {
	return &mongoRepository{
		instances: db.Collection(database.CollectionBookInstances),
	}
}

func (r *mongoRepository) Create(ctx context.Context, bi *bookinstance.BookInstance) error {
	if bi.ID.IsZero() {
		bi.ID = primitive.NewObjectID()
	}
	if _, err := r.instances.InsertOne(ctx, bi); err != nil {
		return fmt.Errorf("insert book instance: %w", err)
	}
	return nil
}

// populateBook: $lookup book vào field book_ref.
// Book không tồn tại => book_ref bị bỏ trống (preserveNullAndEmptyArrays).
func populateBook() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.CollectionBooks},
			{Key: "localField", Value: "book"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "book_ref"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$book_ref"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func (r *mongoRepository) aggregate(ctx context.Context, match bson.D) ([]bookinstance.View, error) {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}
	pipeline = append(pipeline, populateBook()...)
	pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}})

	cursor, err := r.instances.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate book instances: %w", err)
	}

	var views []bookinstance.View
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("decode book instances: %w", err)
	}
	return views, nil
}

func (r *mongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*bookinstance.View, error) {
	views, err := r.aggregate(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, bookinstance.ErrBookInstanceNotFound
	}
	return &views[0], nil
}

func (r *mongoRepository) List(ctx context.Context) ([]bookinstance.View, error) {
	return r.aggregate(ctx, bson.D{})
}

func (r *mongoRepository) Update(ctx context.Context, bi *bookinstance.BookInstance) error {
	result, err := r.instances.ReplaceOne(ctx, bson.D{{Key: "_id", Value: bi.ID}}, bi)
	if err != nil {
		return fmt.Errorf("replace book instance: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookinstance.ErrBookInstanceNotFound
	}
	return nil
}

func (r *mongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.instances.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		return fmt.Errorf("delete book instance: %w", err)
	}
	return nil
}

func (r *mongoRepository) Count(ctx context.Context) (int64, error) {
	return r.instances.CountDocuments(ctx, bson.D{})
}

func (r *mongoRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	return r.instances.CountDocuments(ctx, bson.D{{Key: "status", Value: status}})
}
