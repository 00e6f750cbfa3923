package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"locallibrary/internal/domains/bookinstance"
	"locallibrary/internal/shared"
	"locallibrary/internal/shared/response"
	"locallibrary/internal/shared/utils"
)

const listPath = "/catalog/bookinstances"

type BookInstanceHandler struct {
	service bookinstance.Service
}

func NewBookInstanceHandler(svc bookinstance.Service) *BookInstanceHandler {
	return &BookInstanceHandler{
		service: svc,
	}
}

// ========== LIST: GET /catalog/bookinstances ==========
func (h *BookInstanceHandler) List(c *gin.Context) {
	instances, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, "bookinstance_list", "Book Instance List", gin.H{"bookinstances": instances})
}

// ========== DETAIL: GET /catalog/bookinstance/:id ==========
func (h *BookInstanceHandler) Detail(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		_ = c.Error(bookinstance.ErrBookInstanceNotFound)
		return
	}

	view, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, "bookinstance_detail", "Book", gin.H{"bookinstance": view})
}

// ========== CREATE FORM: GET /catalog/bookinstance/create ==========
func (h *BookInstanceHandler) CreateForm(c *gin.Context) {
	h.renderForm(c, "Create BookInstance", nil, nil, nil)
}

// ========== CREATE: POST /catalog/bookinstance/create ==========
func (h *BookInstanceHandler) Create(c *gin.Context) {
	var form bookinstance.BookInstanceForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(response.NewStatusError(http.StatusBadRequest, err.Error()))
		return
	}

	bi, problems, err := h.service.Create(c.Request.Context(), &form)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// Form lỗi => render lại, selected book được giữ nguyên
	if len(problems) > 0 {
		h.renderForm(c, "Create BookInstance", bi, &form, problems)
		return
	}

	response.Redirect(c, bi.URL())
}

// ========== DELETE FORM: GET /catalog/bookinstance/:id/delete ==========
func (h *BookInstanceHandler) DeleteForm(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		response.Redirect(c, listPath)
		return
	}

	view, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, bookinstance.ErrBookInstanceNotFound) {
			response.Redirect(c, listPath)
			return
		}
		_ = c.Error(err)
		return
	}

	response.Page(c, "bookinstance_delete", "Delete BookInstance", gin.H{"bookinstance": view})
}

// ========== DELETE: POST /catalog/bookinstance/:id/delete ==========
func (h *BookInstanceHandler) Delete(c *gin.Context) {
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

// ========== UPDATE FORM: GET /catalog/bookinstance/:id/update ==========
func (h *BookInstanceHandler) UpdateForm(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		_ = c.Error(bookinstance.ErrBookInstanceNotFound)
		return
	}

	view, err := h.service.GetDetail(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.renderForm(c, "Update BookInstance", &view.BookInstance, nil, nil)
}

// ========== UPDATE: POST /catalog/bookinstance/:id/update ==========
func (h *BookInstanceHandler) Update(c *gin.Context) {
	id, ok := utils.ParseObjectID(c.Param("id"))
	if !ok {
		_ = c.Error(bookinstance.ErrBookInstanceNotFound)
		return
	}

	var form bookinstance.BookInstanceForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(response.NewStatusError(http.StatusBadRequest, err.Error()))
		return
	}

	bi, problems, err := h.service.Update(c.Request.Context(), id, &form)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if len(problems) > 0 {
		h.renderForm(c, "Update BookInstance", bi, &form, problems)
		return
	}

	response.Redirect(c, bi.URL())
}

// renderForm: form != nil khi render lại sau validation lỗi, để giữ giá trị user đã nhập (vd due_back sai format)
func (h *BookInstanceHandler) renderForm(c *gin.Context, title string, bi *bookinstance.BookInstance, form *bookinstance.BookInstanceForm, problems []shared.FieldError) {
	books, err := h.service.FormOptions(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, "bookinstance_form", title, gin.H{
		"bookinstance": bi,
		"form":         form,
		"books":        books,
		"statuses":     bookinstance.Statuses,
		"errors":       problems,
	})
}
