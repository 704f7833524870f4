package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zenbill/internal/core/apperror"
	"zenbill/internal/metadata"
)

// MetadataHandler serves entity definitions for form and grid builders.
type MetadataHandler struct {
	*BaseHandler
	registry *metadata.Registry
}

// NewMetadataHandler creates a new metadata handler.
func NewMetadataHandler(base *BaseHandler, registry *metadata.Registry) *MetadataHandler {
	return &MetadataHandler{
		BaseHandler: base,
		registry:    registry,
	}
}

// List handles GET /meta/entities
func (h *MetadataHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entities": h.registry.List()})
}

// Get handles GET /meta/entities/:name
func (h *MetadataHandler) Get(c *gin.Context) {
	name := c.Param("name")
	def, ok := h.registry.Get(name)
	if !ok {
		h.Error(c, apperror.NewNotFound("entity", name))
		return
	}
	c.JSON(http.StatusOK, def)
}
