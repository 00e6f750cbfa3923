package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/domains/genre"
	"locallibrary/internal/shared/response"
	"locallibrary/internal/shared/utils"
)

const listPath = "/catalog/genres"

type GenreHandler struct {
	service genre.Service
}

func NewGenreHandler(svc genre.Service) *GenreHandler {
	return &GenreHandler{
		service: svc,
	}
}

// ========== LIST: GET /catalog/genres ==========
func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, "genre_list", "Genre List", gin.H{"genres": genres})
}

// ========== DETAIL: GET /catalog/genre/:id ==========
func (h *GenreHandler) Detail(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		_ = c.Error(genre.ErrGenreNotFound)
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, "genre_detail", "Genre Detail", gin.H{
		"genre": detail.Genre,
		"books": detail.Books,
	})
}

// ========== CREATE FORM: GET /catalog/genre/create ==========
func (h *GenreHandler) CreateForm(c *gin.Context) {
	response.Page(c, "genre_form", "Create Genre", nil)
}

// ========== CREATE: POST /catalog/genre/create ==========
func (h *GenreHandler) Create(c *gin.Context) {
	var form genre.GenreForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(response.NewStatusError(http.StatusBadRequest, err.Error()))
		return
	}

	g, problems, err := h.service.Create(c.Request.Context(), &form)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// Validation failed => render lại form với giá trị đã nhập
	if len(problems) > 0 {
		response.Page(c, "genre_form", "Create Genre", gin.H{
			"genre":  g,
			"errors": problems,
		})
		return
	}

	// Genre mới hoặc genre đã tồn tại cùng tên
	response.Redirect(c, g.URL())
}

// ========== DELETE FORM: GET /catalog/genre/:id/delete ==========
func (h *GenreHandler) DeleteForm(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		response.Redirect(c, listPath)
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		// Không có gì để xóa => quay về list
		if errors.Is(err, genre.ErrGenreNotFound) {
			response.Redirect(c, listPath)
			return
		}
		_ = c.Error(err)
		return
	}

	response.Page(c, "genre_delete", "Delete Genre", gin.H{
		"genre": detail.Genre,
		"books": detail.Books,
	})
}

// ========== DELETE: POST /catalog/genre/:id/delete ==========
func (h *GenreHandler) Delete(c *gin.Context) {
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

	// Còn books tham chiếu => hiển thị lại trang confirm kèm danh sách
	if result.Blocked {
		response.Page(c, "genre_delete", "Delete Genre", gin.H{
			"genre": result.Detail.Genre,
			"books": result.Detail.Books,
		})
		return
	}

	response.Redirect(c, listPath)
}

// ========== UPDATE FORM: GET /catalog/genre/:id/update ==========
func (h *GenreHandler) UpdateForm(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		_ = c.Error(genre.ErrGenreNotFound)
		return
	}

	g, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, "genre_form", "Update Genre", gin.H{"genre": g})
}

// ========== UPDATE: POST /catalog/genre/:id/update ==========
func (h *GenreHandler) Update(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		_ = c.Error(genre.ErrGenreNotFound)
		return
	}

	var form genre.GenreForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(response.NewStatusError(http.StatusBadRequest, err.Error()))
		return
	}

	g, problems, err := h.service.Update(c.Request.Context(), id, &form)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if len(problems) > 0 {
		response.Page(c, "genre_form", "Update Genre", gin.H{
			"genre":  g,
			"errors": problems,
		})
		return
	}

	response.Redirect(c, g.URL())
}
