package handler

import (
	"github.com/gin-gonic/gin"

	"locallibrary/internal/domains/catalog"
	"locallibrary/internal/shared/response"
)

type CatalogHandler struct {
	service catalog.Service
}

func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// Index - GET /catalog
func (h *CatalogHandler) Index(c *gin.Context) {
	counts, err := h.service.Counts(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Page(c, "index", "Local Library Home", gin.H{"counts": counts})
}
