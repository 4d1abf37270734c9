package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/aquademy/coachcore-backend/internal/http/response"
	"github.com/aquademy/coachcore-backend/internal/scoring"
)

// CatalogHandler exposes the closed scoring vocabulary so clients never
// hard-code categories or dimension labels.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler { return &CatalogHandler{} }

// GET /api/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	response.RespondOK(c, gin.H{"categories": scoring.Categories()})
}

// GET /api/categories/:category/dimensions
func (h *CatalogHandler) ListDimensions(c *gin.Context) {
	category, err := scoring.ParseCategory(c.Param("category"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	labels, err := scoring.DimensionLabels(category)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	dims := make([]gin.H, 0, scoring.DimensionCount)
	for i, label := range labels {
		dims = append(dims, gin.H{"index": i + 1, "label": label})
	}
	response.RespondOK(c, gin.H{
		"category":   category,
		"dimensions": dims,
	})
}
