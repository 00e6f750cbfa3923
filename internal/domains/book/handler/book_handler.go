package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/domains/book"
	"locallibrary/internal/shared"
	"locallibrary/internal/shared/response"
	"locallibrary/internal/shared/utils"
)

const listPath = "/catalog/books"

type BookHandler struct {
	service book.Service
}

func NewBookHandler(svc book.Service) *BookHandler {
	return &BookHandler{
		service: svc,
	}
}

// ========== LIST: GET /catalog/books ==========
func (h *BookHandler) List(c *gin.Context) {
	books, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, "book_list", "Book List", gin.H{"books": books})
}

// ========== DETAIL: GET /catalog/book/:id ==========
func (h *BookHandler) Detail(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		_ = c.Error(book.ErrBookNotFound)
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, "book_detail", detail.Book.Title, detailData(detail))
}

// ========== CREATE FORM: GET /catalog/book/create ==========
func (h *BookHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, "Create Book", nil, nil)
}

// ========== CREATE: POST /catalog/book/create ==========
func (h *BookHandler) Create(c *gin.Context) {
	var form book.BookForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(response.NewStatusError(http.StatusBadRequest, err.Error()))
		return
	}

	b, problems, err := h.service.Create(c.Request.Context(), &form)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if len(problems) > 0 {
		h.renderForm(c, "Create Book", b, problems)
		return
	}

	response.Redirect(c, b.URL())
}

// ========== DELETE FORM: GET /catalog/book/:id/delete ==========
func (h *BookHandler) DeleteForm(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		response.Redirect(c, listPath)
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			response.Redirect(c, listPath)
			return
		}
		_ = c.Error(err)
		return
	}

	response.Page(c, "book_delete", "Delete Book", detailData(detail))
}

// ========== DELETE: POST /catalog/book/:id/delete ==========
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		response.Redirect(c, listPath)
		return
	}

	result, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// Còn copies => hiển thị lại trang confirm
	if result.Blocked {
		response.Page(c, "book_delete", "Delete Book", detailData(result.Detail))
		return
	}

	response.Redirect(c, listPath)
}

// ========== UPDATE FORM: GET /catalog/book/:id/update ==========
func (h *BookHandler) UpdateForm(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		_ = c.Error(book.ErrBookNotFound)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.renderForm(c, "Update Book", b, nil)
}

// ========== UPDATE: POST /catalog/book/:id/update ==========
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		_ = c.Error(book.ErrBookNotFound)
		return
	}

	var form book.BookForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(response.NewStatusError(http.StatusBadRequest, err.Error()))
		return
	}

	b, problems, err := h.service.Update(c.Request.Context(), id, &form)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if len(problems) > 0 {
		h.renderForm(c, "Update Book", b, problems)
		return
	}

	response.Redirect(c, b.URL())
}

// renderForm load authors + genres cho select/checkbox rồi render form
func (h *BookHandler) renderForm(c *gin.Context, title string, b *book.Book, problems []shared.FieldError) {
	opts, err := h.service.FormOptions(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, "book_form", title, gin.H{
		"book":    b,
		"authors": opts.Authors,
		"genres":  opts.Genres,
		"errors":  problems,
	})
}

func detailData(detail *book.Detail) gin.H {
	return gin.H{
		"book":   detail.Book,
		"author": detail.Author,
		"genres": detail.Genres,
		"copies": detail.Copies,
	}
}
