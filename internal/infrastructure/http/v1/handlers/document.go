package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
	"zenbill/internal/domain"
	"zenbill/internal/domain/documents"
	"zenbill/internal/infrastructure/http/v1/dto"
)

// DocumentService is the interface document services expose to the
// generic handler. Concrete services satisfy it through the embedded
// generic document service.
type DocumentService[T documents.Doc] interface {
	List(ctx context.Context, filter documents.ListFilter) (domain.ListResult[T], error)
	GetByID(ctx context.Context, docID id.ID) (T, error)
	Create(ctx context.Context, doc T) error
	Update(ctx context.Context, doc T) error
	Delete(ctx context.Context, docID id.ID) error
	Issue(ctx context.Context, docID id.ID) (T, error)
	Cancel(ctx context.Context, docID id.ID) (T, error)
	Copy(ctx context.Context, docID id.ID) (T, error)
}

// DocumentHandler provides generic HTTP handlers for document types:
// CRUD plus the draft -> issued -> cancelled lifecycle.
type DocumentHandler[T documents.Doc, CreateDTO any, UpdateDTO any] struct {
	*BaseHandler
	service    DocumentService[T]
	entityName string

	mapCreateDTO func(dto CreateDTO) T
	mapUpdateDTO func(dto UpdateDTO, existing T) T
}

// DocumentHandlerConfig configures the document handler.
type DocumentHandlerConfig[T documents.Doc, CreateDTO any, UpdateDTO any] struct {
	Service      DocumentService[T]
	EntityName   string
	MapCreateDTO func(dto CreateDTO) T
	MapUpdateDTO func(dto UpdateDTO, existing T) T
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler[T documents.Doc, CreateDTO any, UpdateDTO any](
	base *BaseHandler,
	cfg DocumentHandlerConfig[T, CreateDTO, UpdateDTO],
) *DocumentHandler[T, CreateDTO, UpdateDTO] {
	return &DocumentHandler[T, CreateDTO, UpdateDTO]{
		BaseHandler:  base,
		service:      cfg.Service,
		entityName:   cfg.EntityName,
		mapCreateDTO: cfg.MapCreateDTO,
		mapUpdateDTO: cfg.MapUpdateDTO,
	}
}

// List handles GET /{entity} - list with filtering and pagination.
func (h *DocumentHandler[T, CreateDTO, UpdateDTO]) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := documents.ListFilter{ListFilter: domain.DefaultListFilter()}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")
	filter.IncludeDeleted = c.Query("includeDeleted") == "true"

	if status := c.Query("status"); status != "" {
		s := entity.Status(status)
		filter.Status = &s
	}
	if partyStr := c.Query("partyId"); partyStr != "" {
		partyID, err := id.Parse(partyStr)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid partyId format"))
			return
		}
		filter.PartyID = &partyID
	}
	var ok bool
	if filter.DateFrom, ok = h.parseDateQuery(c, "dateFrom"); !ok {
		return
	}
	if filter.DateTo, ok = h.parseDateQuery(c, "dateTo"); !ok {
		return
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /{entity}/:id
func (h *DocumentHandler[T, CreateDTO, UpdateDTO]) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Create handles POST /{entity}
func (h *DocumentHandler[T, CreateDTO, UpdateDTO]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	doc := h.mapCreateDTO(req)

	if err := h.service.Create(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, doc)
}

// Update handles PUT /{entity}/:id
func (h *DocumentHandler[T, CreateDTO, UpdateDTO]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req UpdateDTO
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	doc = h.mapUpdateDTO(req, doc)

	if err := h.service.Update(ctx, doc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Delete handles DELETE /{entity}/:id
func (h *DocumentHandler[T, CreateDTO, UpdateDTO]) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Issue handles POST /{entity}/:id/issue
func (h *DocumentHandler[T, CreateDTO, UpdateDTO]) Issue(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.Issue(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Cancel handles POST /{entity}/:id/cancel
func (h *DocumentHandler[T, CreateDTO, UpdateDTO]) Cancel(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.Cancel(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, doc)
}

// Copy handles POST /{entity}/:id/copy - new draft from an existing
// document.
func (h *DocumentHandler[T, CreateDTO, UpdateDTO]) Copy(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	doc, err := h.service.Copy(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, doc)
}

// parseDateQuery parses an RFC 3339 or YYYY-MM-DD date query parameter.
// The bool result is false when the value was present but malformed.
func (h *DocumentHandler[T, CreateDTO, UpdateDTO]) parseDateQuery(c *gin.Context, key string) (*time.Time, bool) {
	val := c.Query(key)
	if val == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return &t, true
	}
	if t, err := time.Parse("2006-01-02", val); err == nil {
		return &t, true
	}
	h.Error(c, apperror.NewValidation("invalid date format").WithDetail("field", key))
	return nil, false
}
