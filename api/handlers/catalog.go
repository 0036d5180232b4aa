package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prestaforge/content-engine/internal/catalog"
)

// CatalogHandler serves the static theme and slide template catalogs.
type CatalogHandler struct{}

func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

func (h *CatalogHandler) ListThemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"themes": catalog.Themes()})
}

func (h *CatalogHandler) GetTheme(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.ThemeByName(c.Param("name")))
}

func (h *CatalogHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"templates": catalog.SlideTemplates()})
}

func (h *CatalogHandler) GetTemplate(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.TemplateByName(c.Param("name")))
}
