package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locallibrary/internal/shared/response"
)

// statusOnly render chỉ ghi status và message, đủ để test middleware
type statusOnly struct{}

func (statusOnly) Instance(_ string, data any) render.Render {
	return render.Data{ContentType: "text/plain", Data: []byte(data.(gin.H)["message"].(string))}
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HTMLRender = statusOnly{}
	r.Use(handlers...)
	return r
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, w.Body.String())

	// Giữ lại id hợp lệ từ upstream
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "6f1c1f8e-2d7a-4c9b-9a63-0b7e7f2f1d11")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "6f1c1f8e-2d7a-4c9b-9a63-0b7e7f2f1d11", w.Header().Get(RequestIDHeader))

	// Id không hợp lệ bị thay thế
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestErrorHandler_UsesStatusFromError(t *testing.T) {
	r := newEngine(ErrorHandler(false))
	r.GET("/missing", func(c *gin.Context) { _ = c.Error(response.NotFound("Genre not found")) })
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("mongo: connection reset")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Genre not found", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecovery(t *testing.T) {
	r := newEngine(Recovery(false))
	r.GET("/", func(c *gin.Context) { panic("unexpected") })

	w := httptest.NewRecorder()
	require.NotPanics(t, func() {
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestClientIP(t *testing.T) {
	r := newEngine(ClientIP(false))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ClientIPKey)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:52100"
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "203.0.113.7", w.Body.String())
}

func TestErrorHandler_HidesInternalMessage(t *testing.T) {
	r := newEngine(ErrorHandler(false))
	r.GET("/", func(c *gin.Context) { _ = c.Error(errors.New("mongo: connection reset")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "Internal Server Error", w.Body.String())

	r = newEngine(ErrorHandler(true))
	r.GET("/", func(c *gin.Context) { _ = c.Error(errors.New("mongo: connection reset")) })

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "mongo: connection reset", w.Body.String())
}
