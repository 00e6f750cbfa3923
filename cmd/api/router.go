package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/shared/middleware"
	"locallibrary/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()
	router.HTMLRender = c.Renderer

	showDetail := c.Config.IsDevelopment()

	// Global middlewares. ErrorHandler phải đứng trước RateLimit
	// để render được lỗi 429.
	global := []gin.HandlerFunc{
		middleware.Recovery(showDetail),
		middleware.RequestID(),
		middleware.ClientIP(c.Config.App.TrustProxy),
		middleware.Logger(),
		middleware.SecurityHeaders(),
		middleware.ErrorHandler(showDetail),
	}
	if c.Limiter != nil {
		global = append(global, middleware.RateLimit(c.Limiter))
	}
	router.Use(global...)

	router.NoRoute(middleware.NotFound())

	router.GET("/health", healthCheckHandler(c))
	router.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(http.StatusFound, "/catalog")
	})

	catalog := router.Group("/catalog")
	{
		catalog.GET("", c.CatalogHandler.Index)

		setupBookRoutes(catalog, c)
		setupBookInstanceRoutes(catalog, c)
		setupAuthorRoutes(catalog, c)
		setupGenreRoutes(catalog, c)
	}

	return router
}

// ========================================
// BOOK ROUTES
// ========================================
func setupBookRoutes(catalog *gin.RouterGroup, c *container.Container) {
	h := c.BookHandler

	catalog.GET("/books", h.List)
	book := catalog.Group("/book")
	{
		// create phải đăng ký trước :id
		book.GET("/create", h.CreateForm)
		book.POST("/create", h.Create)
		book.GET("/:id", h.Detail)
		book.GET("/:id/delete", h.DeleteForm)
		book.POST("/:id/delete", h.Delete)
		book.GET("/:id/update", h.UpdateForm)
		book.POST("/:id/update", h.Update)
	}
}

// ========================================
// BOOK INSTANCE ROUTES
// ========================================
func setupBookInstanceRoutes(catalog *gin.RouterGroup, c *container.Container) {
	h := c.BookInstanceHandler

	catalog.GET("/bookinstances", h.List)
	instance := catalog.Group("/bookinstance")
	{
		instance.GET("/create", h.CreateForm)
		instance.POST("/create", h.Create)
		instance.GET("/:id", h.Detail)
		instance.GET("/:id/delete", h.DeleteForm)
		instance.POST("/:id/delete", h.Delete)
		instance.GET("/:id/update", h.UpdateForm)
		instance.POST("/:id/update", h.Update)
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(catalog *gin.RouterGroup, c *container.Container) {
	h := c.AuthorHandler

	catalog.GET("/authors", h.List)
	author := catalog.Group("/author")
	{
		author.GET("/create", h.CreateForm)
		author.POST("/create", h.Create)
		author.GET("/:id", h.Detail)
		author.GET("/:id/delete", h.DeleteForm)
		author.POST("/:id/delete", h.Delete)
		author.GET("/:id/update", h.UpdateForm)
		author.POST("/:id/update", h.Update)
	}
}

// ========================================
// GENRE ROUTES
// ========================================
func setupGenreRoutes(catalog *gin.RouterGroup, c *container.Container) {
	h := c.GenreHandler

	catalog.GET("/genres", h.List)
	genre := catalog.Group("/genre")
	{
		genre.GET("/create", h.CreateForm)
		genre.POST("/create", h.Create)
		genre.GET("/:id", h.Detail)
		genre.GET("/:id/delete", h.DeleteForm)
		genre.POST("/:id/delete", h.Delete)
		genre.GET("/:id/update", h.UpdateForm)
		genre.POST("/:id/update", h.Update)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		components, healthy := c.HealthCheck(ctx.Request.Context())

		status := http.StatusOK
		state := "healthy"
		if !healthy {
			status = http.StatusServiceUnavailable
			state = "unhealthy"
		}

		ctx.JSON(status, gin.H{
			"status":     state,
			"service":    c.Config.App.Name,
			"components": components,
			"time":       time.Now().UTC().Format(time.RFC3339),
		})
	}
}
