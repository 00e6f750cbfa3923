package web

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"locallibrary/internal/domains/genre"
	"locallibrary/internal/shared"
)

func renderPage(t *testing.T, r *Renderer, name string, data gin.H) string {
	t.Helper()
	w := httptest.NewRecorder()
	require.NoError(t, r.Instance(name, data).Render(w))
	return w.Body.String()
}

func TestNewRenderer_ParsesEveryPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	assert.Len(t, r.pages, len(Pages))
}

func TestRenderer_EmptyFormsRender(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	// Create form được render không có entity
	for _, page := range []string{"genre_form", "author_form", "book_form", "bookinstance_form"} {
		t.Run(page, func(t *testing.T) {
			body := renderPage(t, r, page, gin.H{"title": "Create"})
			assert.Contains(t, body, "<form method=\"POST\">")
		})
	}
}

func TestRenderer_EscapesOnce(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	// Giá trị lưu trong DB đã được escape một lần
	g := &genre.Genre{ID: primitive.NewObjectID(), Name: "Tom &amp; Jerry &lt;3"}
	body := renderPage(t, r, "genre_detail", gin.H{"title": "Genre Detail", "genre": g})

	assert.Contains(t, body, "Genre: Tom &amp; Jerry &lt;3")
	assert.NotContains(t, body, "&amp;amp;")
}

func TestRenderer_FormErrors(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	body := renderPage(t, r, "genre_form", gin.H{
		"title":  "Create Genre",
		"errors": []shared.FieldError{{Field: "name", Message: "Genre name must contain at least 3 characters"}},
	})
	assert.Contains(t, body, "Genre name must contain at least 3 characters")
}

func TestRenderer_MissingPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	assert.Error(t, r.Instance("nope", nil).Render(w))
}

func TestFuncs(t *testing.T) {
	assert.Equal(t, "<b>", Display("&lt;b&gt;"))
	assert.Equal(t, "text-success", StatusClass("Available"))
	assert.Equal(t, "text-danger", StatusClass("Maintenance"))
	assert.Equal(t, "text-warning", StatusClass("Loaned"))
}
