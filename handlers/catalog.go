package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"festivo/middleware"
	"festivo/models"
	"festivo/services/catalog"
)

// CatalogHandler exposes listing CRUD for all service variants. The variant
// comes from the :type path segment, so one handler serves halls, caterings,
// cars and decorations.
type CatalogHandler struct {
	Svc catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Svc: svc}
}

// Create handles POST /api/:type/create.
func (h *CatalogHandler) Create(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Svc.Create(c.Request.Context(), models.ServiceType(c.Param("type")), c.GetString(middleware.CtxVendorID), &svc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Get handles GET /api/:type/:id.
func (h *CatalogHandler) Get(c *gin.Context) {
	svc, err := h.Svc.Get(c.Request.Context(), models.ServiceType(c.Param("type")), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, svc)
}

// List handles GET /api/:type.
func (h *CatalogHandler) List(c *gin.Context) {
	services, err := h.Svc.List(c.Request.Context(), models.ServiceType(c.Param("type")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListForVendor handles GET /api/vendor/services.
func (h *CatalogHandler) ListForVendor(c *gin.Context) {
	services, err := h.Svc.ListForVendor(c.Request.Context(), c.GetString(middleware.CtxVendorID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

// Update handles PUT /api/:type/:id.
func (h *CatalogHandler) Update(c *gin.Context) {
	var svc models.Service
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), models.ServiceType(c.Param("type")), c.Param("id"), c.GetString(middleware.CtxVendorID), &svc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/:type/:id.
func (h *CatalogHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), models.ServiceType(c.Param("type")), c.Param("id"), c.GetString(middleware.CtxVendorID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Service deleted successfully"})
}
