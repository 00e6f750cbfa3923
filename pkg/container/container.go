package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"locallibrary/internal/config"
	infraCache "locallibrary/internal/infrastructure/cache"
	"locallibrary/internal/infrastructure/database"
	"locallibrary/internal/shared/ratelimit"
	"locallibrary/internal/web"
	"locallibrary/pkg/cache"

	"locallibrary/internal/domains/author"
	authorHandler "locallibrary/internal/domains/author/handler"
	authorRepo "locallibrary/internal/domains/author/repository"
	authorService "locallibrary/internal/domains/author/service"

	"locallibrary/internal/domains/genre"
	genreHandler "locallibrary/internal/domains/genre/handler"
	genreRepo "locallibrary/internal/domains/genre/repository"
	genreService "locallibrary/internal/domains/genre/service"

	"locallibrary/internal/domains/book"
	bookHandler "locallibrary/internal/domains/book/handler"
	bookRepo "locallibrary/internal/domains/book/repository"
	bookService "locallibrary/internal/domains/book/service"

	"locallibrary/internal/domains/bookinstance"
	bookInstanceHandler "locallibrary/internal/domains/bookinstance/handler"
	bookInstanceRepo "locallibrary/internal/domains/bookinstance/repository"
	bookInstanceService "locallibrary/internal/domains/bookinstance/service"

	"locallibrary/internal/domains/catalog"
	catalogHandler "locallibrary/internal/domains/catalog/handler"
	catalogService "locallibrary/internal/domains/catalog/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Pattern: Service Locator + Dependency Injection
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config   *config.Config
	DB       *database.MongoDB // nil khi chạy với repositories in-memory (tests)
	Cache    cache.Cache       // nil = Redis disabled
	Limiter  ratelimit.Limiter // nil = rate limiting disabled
	Renderer *web.Renderer

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	Repositories

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	AuthorService       author.Service
	GenreService        genre.Service
	BookService         book.Service
	BookInstanceService bookinstance.Service
	CatalogService      catalog.Service

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	AuthorHandler       *authorHandler.AuthorHandler
	GenreHandler        *genreHandler.GenreHandler
	BookHandler         *bookHandler.BookHandler
	BookInstanceHandler *bookInstanceHandler.BookInstanceHandler
	CatalogHandler      *catalogHandler.CatalogHandler
}

// Repositories gom data access của 4 collections
type Repositories struct {
	AuthorRepo       author.Repository
	GenreRepo        genre.Repository
	BookRepo         book.Repository
	BookInstanceRepo bookinstance.Repository
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// Thứ tự initialization:
// 1. Config
// 2. Infrastructure (MongoDB, Redis)
// 3. Repositories
// 4. Services, Handlers, Renderer (NewWithRepositories)
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: CONNECT MONGODB
	// ========================================
	// Retry chỉ áp dụng lúc startup, hết retry => không start
	log.Println("🗄️  Connecting to MongoDB...")

	db := database.NewMongoDB(&database.DBConfig{
		URL:            cfg.Mongo.URL,
		Database:       cfg.Mongo.Database,
		MaxRetries:     cfg.Mongo.MaxRetries,
		RetryDelay:     cfg.Mongo.RetryDelay,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("✅ Database connected")

	if err := db.EnsureIndexes(ctx); err != nil {
		_ = db.Close(context.Background())
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	// ========================================
	// STEP 3: CONNECT REDIS (OPTIONAL)
	// ========================================
	var appCache cache.Cache
	if cfg.Redis.Enabled() {
		redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
		if err := redisCache.Connect(ctx); err != nil {
			// Redis failure không critical - log warning và continue
			log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
			_ = redisCache.Close()
		} else {
			appCache = redisCache
		}
	}

	// ========================================
	// STEP 4: REPOSITORIES
	// ========================================
	repos := Repositories{
		AuthorRepo:       authorRepo.NewMongoRepository(db.DB),
		GenreRepo:        genreRepo.NewMongoRepository(db.DB),
		BookRepo:         bookRepo.NewMongoRepository(db.DB),
		BookInstanceRepo: bookInstanceRepo.NewMongoRepository(db.DB),
	}

	c, err := NewWithRepositories(cfg, repos, appCache)
	if err != nil {
		_ = db.Close(context.Background())
		return nil, err
	}
	c.DB = db

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// NewWithRepositories build phần còn lại của graph trên repositories có sẵn.
// appCache = nil => rate limit in-memory, không cache số liệu catalog.
func NewWithRepositories(cfg *config.Config, repos Repositories, appCache cache.Cache) (*Container, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	c := &Container{
		Config:       cfg,
		Cache:        appCache,
		Renderer:     renderer,
		Repositories: repos,
	}

	c.initLimiter()
	c.initServices()
	c.initHandlers()

	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initLimiter() {
	rl := c.Config.RateLimit
	if rl.Requests <= 0 {
		return
	}

	// Có Redis => limit dùng chung giữa các instance
	if c.Cache != nil {
		c.Limiter = ratelimit.NewRedisLimiter(c.Cache, rl.Requests, rl.Window)
		return
	}
	c.Limiter = ratelimit.NewLocalLimiter(rl.Requests, rl.Window)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.GenreService = genreService.NewGenreService(c.GenreRepo)

	// Cross-domain: book cần author + genre để resolve và check references
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, c.GenreRepo)
	c.BookInstanceService = bookInstanceService.NewBookInstanceService(c.BookInstanceRepo, c.BookRepo)

	c.CatalogService = catalogService.NewCatalogService(c.BookRepo, c.BookInstanceRepo, c.AuthorRepo, c.GenreRepo)
	if c.Cache != nil {
		c.CatalogService = catalogService.NewCachedCatalogService(c.CatalogService, c.Cache, c.Config.Redis.CountsTTL)
	}
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.GenreHandler = genreHandler.NewGenreHandler(c.GenreService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.BookInstanceHandler = bookInstanceHandler.NewBookInstanceHandler(c.BookInstanceService)
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
}

// ========================================
// HEALTH
// ========================================

// HealthCheck ping MongoDB và Redis (nếu có). Key = component, value = "ok" hoặc lỗi.
func (c *Container) HealthCheck(ctx context.Context) (map[string]string, bool) {
	status := map[string]string{}
	healthy := true

	if c.DB != nil {
		if err := c.DB.HealthCheck(ctx); err != nil {
			status["database"] = err.Error()
			healthy = false
		} else {
			status["database"] = "ok"
		}
	}

	// Redis không critical: lỗi chỉ được báo cáo
	if c.Cache != nil {
		if err := c.Cache.Ping(ctx); err != nil {
			status["cache"] = err.Error()
		} else {
			status["cache"] = "ok"
		}
	}

	return status, healthy
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if local, ok := c.Limiter.(*ratelimit.LocalLimiter); ok {
		local.Stop()
	}

	if c.DB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.DB.Close(ctx); err != nil {
			log.Printf("⚠️  Failed to close MongoDB: %v", err)
		} else {
			log.Println("✅ Database connections closed")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis: %v", err)
		} else {
			log.Println("✅ Redis connections closed")
		}
	}

	log.Println("✅ Container cleanup completed")
}
