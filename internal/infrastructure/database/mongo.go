package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names dùng chung cho repositories
const (
	CollectionAuthors       = "authors"
	CollectionGenres        = "genres"
	CollectionBooks         = "books"
	CollectionBookInstances = "bookinstances"
)

// DBConfig chứa các thông tin cấu hình để kết nối MongoDB
type DBConfig struct {
	URL      string // Connection string, vd: mongodb://localhost:27017/local_library
	Database string // Tên database

	// Retry Configuration
	MaxRetries     int           // Số lần retry tối đa khi kết nối thất bại
	RetryDelay     time.Duration // Delay ban đầu giữa các lần retry
	ConnectTimeout time.Duration // Timeout cho mỗi lần thử kết nối
}

// MongoDB là wrapper quản lý client và lifecycle của database
type MongoDB struct {
	Client *mongo.Client
	DB     *mongo.Database
	Config *DBConfig
}

// NewMongoDB tạo instance mới, Client sẽ được set khi Connect() được gọi
func NewMongoDB(config *DBConfig) *MongoDB {
	return &MongoDB{Config: config}
}

// connectWithRetry thử kết nối nhiều lần với exponential backoff.
// Chỉ áp dụng lúc startup, request handlers không retry.
func (db *MongoDB) connectWithRetry(ctx context.Context, opts *options.ClientOptions) (*mongo.Client, error) {
	var lastErr error

	for attempt := 1; attempt <= db.Config.MaxRetries; attempt++ {
		log.Printf("[DATABASE] Connection attempt %d/%d", attempt, db.Config.MaxRetries)

		connectCtx, cancel := context.WithTimeout(ctx, db.Config.ConnectTimeout)
		client, err := mongo.Connect(connectCtx, opts)
		if err == nil {
			// mongo.Connect không thực sự dial, phải ping để verify
			err = client.Ping(connectCtx, readpref.Primary())
			if err == nil {
				cancel()
				log.Printf("[DATABASE] Successfully connected on attempt %d", attempt)
				return client, nil
			}
			_ = client.Disconnect(context.Background())
		}
		cancel()

		lastErr = err
		log.Printf("[DATABASE] Attempt %d failed: %v", attempt, lastErr)

		if attempt < db.Config.MaxRetries {
			// delay = base_delay * 2^(attempt-1)
			delay := db.Config.RetryDelay * time.Duration(1<<uint(attempt-1))
			log.Printf("[DATABASE] Retrying in %v...", delay)

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("failed to connect after %d attempts: %w", db.Config.MaxRetries, lastErr)
}

// Connect là entry point chính để establish database connection
func (db *MongoDB) Connect(ctx context.Context) error {
	log.Println("[DATABASE] Initializing MongoDB connection...")

	opts := options.Client().
		ApplyURI(db.Config.URL).
		SetConnectTimeout(db.Config.ConnectTimeout)

	client, err := db.connectWithRetry(ctx, opts)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}

	db.Client = client
	db.DB = client.Database(db.Config.Database)

	log.Printf("[DATABASE] MongoDB connection established (database: %s)", db.Config.Database)
	return nil
}

// HealthCheck verify database connectivity, dùng cho /health endpoint
func (db *MongoDB) HealthCheck(ctx context.Context) error {
	if db.Client == nil {
		return fmt.Errorf("database client is not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.Client.Ping(healthCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Collection trả về handle của collection trong database đã chọn
func (db *MongoDB) Collection(name string) *mongo.Collection {
	return db.DB.Collection(name)
}

// EnsureIndexes tạo các index cho lookup theo reference và
// case-insensitive lookup theo tên genre. Idempotent.
func (db *MongoDB) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionGenres: {{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetCollation(CaseInsensitive()),
		}},
		CollectionBooks: {
			{Keys: bson.D{{Key: "author", Value: 1}}},
			{Keys: bson.D{{Key: "genre", Value: 1}}},
			{Keys: bson.D{{Key: "title", Value: 1}}},
		},
		CollectionBookInstances: {
			{Keys: bson.D{{Key: "book", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}

	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}

// Close ngắt kết nối, safe to call multiple times
func (db *MongoDB) Close(ctx context.Context) error {
	if db.Client == nil {
		log.Println("[DATABASE] Client is already closed or was never initialized")
		return nil
	}

	log.Println("[DATABASE] Closing MongoDB connection...")
	if err := db.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	db.Client = nil
	log.Println("[DATABASE] MongoDB connection closed")
	return nil
}
