// internal/interfaces/http/handlers/storefront.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lojamaq/storefront/internal/config"
	"github.com/lojamaq/storefront/internal/storefront"
)

// StorefrontHandler serves the server-rendered catalog pages
type StorefrontHandler struct {
	loader *storefront.Loader
	config *config.Config
	log    *logrus.Logger
}

// NewStorefrontHandler creates a new storefront handler
func NewStorefrontHandler(loader *storefront.Loader, cfg *config.Config, log *logrus.Logger) *StorefrontHandler {
	return &StorefrontHandler{
		loader: loader,
		config: cfg,
		log:    log,
	}
}

// Index handles GET /: the full catalog page with the current filters
// applied. Loading never fails the page; worst case the fallback catalog is
// rendered.
func (h *StorefrontHandler) Index(c *gin.Context) {
	catalog := h.loader.Load(c.Request.Context())
	view := h.viewFromQuery(c, catalog)

	data := storefront.PageData{
		Title:      h.config.App.Name,
		Search:     view.Search,
		Category:   view.Category,
		Categories: storefront.Categories(),
		Products:   view.Visible(),
		Fallback:   catalog.Fallback,
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := storefront.RenderPage(c.Writer, data); err != nil {
		h.log.WithError(err).Error("storefront page render failed")
	}
}

// Grid handles GET /catalogo/grid: the product grid fragment re-filtered
// against the already-loaded catalog, without a new backend fetch when the
// snapshot is warm
func (h *StorefrontHandler) Grid(c *gin.Context) {
	catalog := h.loader.Load(c.Request.Context())
	view := h.viewFromQuery(c, catalog)

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := storefront.RenderGrid(c.Writer, view.Visible()); err != nil {
		h.log.WithError(err).Error("storefront grid render failed")
	}
}

func (h *StorefrontHandler) viewFromQuery(c *gin.Context, catalog storefront.Catalog) storefront.View {
	return storefront.View{
		Products: catalog.Products,
		Search:   c.Query("busca"),
		Category: c.DefaultQuery("categoria", storefront.CategoryAll),
	}
}
