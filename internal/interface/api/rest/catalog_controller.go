package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hospital-admin-api/internal/application/ports"
	"hospital-admin-api/internal/domain/catalog"
	"hospital-admin-api/internal/interface/api/rest/middleware"
)

// CatalogController serves reference data to any authenticated caller.
type CatalogController struct {
	provider catalog.Provider
}

func NewCatalogController(r *gin.Engine, provider catalog.Provider, tokens ports.TokenValidator) *CatalogController {
	cc := &CatalogController{provider: provider}

	r.GET(RouteCatalog, middleware.AuthMiddleware(tokens), cc.GetCatalogHandler)

	return cc
}

func (cc *CatalogController) GetCatalogHandler(c *gin.Context) {
	kind := catalog.Kind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(
			http.StatusNotFound,
			gin.H{"error": "unknown catalog"},
		)
		return
	}

	entries := cc.provider.Entries(kind)
	if entries == nil {
		entries = catalog.Entries{}
	}

	c.JSON(http.StatusOK, gin.H{
		"version": cc.provider.Version(),
		"data":    entries,
	})
}
