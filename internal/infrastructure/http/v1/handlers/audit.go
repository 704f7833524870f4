package handlers

import (
	"github.com/gin-gonic/gin"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/domain/audit"
)

// AuditHandler serves document change history.
type AuditHandler struct {
	*BaseHandler
	service *audit.Service
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, service *audit.Service) *AuditHandler {
	return &AuditHandler{BaseHandler: base, service: service}
}

// History handles GET /audit/:entityType/:id - change history for one
// entity, newest first.
func (h *AuditHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)

	entries, err := h.service.History(ctx, c.Param("entityType"), entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"items": entries, "totalCount": len(entries)})
}
