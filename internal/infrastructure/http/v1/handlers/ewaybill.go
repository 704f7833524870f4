package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/internal/domain"
	"zenbill/internal/domain/ewaybill"
	"zenbill/internal/infrastructure/http/v1/dto"
)

// EWayBillHandler handles e-way bill endpoints.
type EWayBillHandler struct {
	*BaseHandler
	service *ewaybill.Service
}

// NewEWayBillHandler creates a new e-way bill handler.
func NewEWayBillHandler(base *BaseHandler, service *ewaybill.Service) *EWayBillHandler {
	return &EWayBillHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Check handles POST /eway-bills/check - evaluates the requirement rule
// without generating anything.
func (h *EWayBillHandler) Check(c *gin.Context) {
	var req dto.CheckEWayBillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	required, err := h.service.Required(ewaybill.GenerateRequest{
		GrandTotal: types.NewMoney(req.GrandTotal),
		InterState: req.InterState,
		DistanceKm: req.DistanceKm,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CheckEWayBillResponse{Required: required})
}

// Generate handles POST /eway-bills
func (h *EWayBillHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.GenerateEWayBillRequest
	if !h.BindJSON(c, &req) {
		return
	}

	bill, err := h.service.Generate(ctx, req.ToGenerateRequest())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, bill)
}

// Get handles GET /eway-bills/:id
func (h *EWayBillHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	billID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	bill, err := h.service.GetByID(ctx, billID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, bill)
}

// List handles GET /eway-bills
func (h *EWayBillHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.DefaultListFilter()
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-created_at")

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
