package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/domains/author"
	"locallibrary/internal/shared/response"
	"locallibrary/internal/shared/utils"
)

const listPath = "/catalog/authors"

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ========== LIST: GET /catalog/authors ==========
func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, "author_list", "Author List", gin.H{"authors": authors})
}

// ========== DETAIL: GET /catalog/author/:id ==========
func (h *AuthorHandler) Detail(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		_ = c.Error(author.ErrAuthorNotFound)
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, "author_detail", "Author Detail", gin.H{
		"author": detail.Author,
		"books":  detail.Books,
	})
}

// ========== CREATE FORM: GET /catalog/author/create ==========
func (h *AuthorHandler) CreateForm(c *gin.Context) {
	response.Page(c, "author_form", "Create Author", nil)
}

// ========== CREATE: POST /catalog/author/create ==========
func (h *AuthorHandler) Create(c *gin.Context) {
	var form author.AuthorForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(response.NewStatusError(http.StatusBadRequest, err.Error()))
		return
	}

	a, problems, err := h.service.Create(c.Request.Context(), &form)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if len(problems) > 0 {
		response.Page(c, "author_form", "Create Author", gin.H{
			"author": a,
			"form":   &form,
			"errors": problems,
		})
		return
	}

	response.Redirect(c, a.URL())
}

// ========== DELETE FORM: GET /catalog/author/:id/delete ==========
func (h *AuthorHandler) DeleteForm(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		response.Redirect(c, listPath)
		return
	}

	detail, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			response.Redirect(c, listPath)
			return
		}
		_ = c.Error(err)
		return
	}

	response.Page(c, "author_delete", "Delete Author", gin.H{
		"author": detail.Author,
		"books":  detail.Books,
	})
}

// ========== DELETE: POST /catalog/author/:id/delete ==========
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		response.Redirect(c, listPath)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	response.Redirect(c, listPath)
}

// ========== UPDATE FORM: GET /catalog/author/:id/update ==========
func (h *AuthorHandler) UpdateForm(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		_ = c.Error(author.ErrAuthorNotFound)
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, "author_form", "Update Author", gin.H{"author": a})
}

// ========== UPDATE: POST /catalog/author/:id/update ==========
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		_ = c.Error(author.ErrAuthorNotFound)
		return
	}

	var form author.AuthorForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(response.NewStatusError(http.StatusBadRequest, err.Error()))
		return
	}

	a, problems, err := h.service.Update(c.Request.Context(), id, &form)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if len(problems) > 0 {
		response.Page(c, "author_form", "Update Author", gin.H{
			"author": a,
			"form":   &form,
			"errors": problems,
		})
		return
	}

	response.Redirect(c, a.URL())
}
