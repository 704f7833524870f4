package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/domain/registers/outstanding"
)

// OutstandingHandler exposes the receivable/payable register: per-party
// balances and dated statements derived from posted movements.
type OutstandingHandler struct {
	*BaseHandler
	service *outstanding.Service
}

// NewOutstandingHandler creates a new outstanding register handler.
func NewOutstandingHandler(base *BaseHandler, service *outstanding.Service) *OutstandingHandler {
	return &OutstandingHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Balances handles GET /outstanding/balances?kind=customer|vendor
func (h *OutstandingHandler) Balances(c *gin.Context) {
	ctx := c.Request.Context()

	kind := outstanding.PartyKind(c.DefaultQuery("kind", string(outstanding.KindCustomer)))
	limit := h.ParseIntQuery(c, "limit", 50)
	offset := h.ParseIntQuery(c, "offset", 0)

	balances, err := h.service.GetBalances(ctx, kind, limit, offset)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

// Balance handles GET /outstanding/:partyId/balance
func (h *OutstandingHandler) Balance(c *gin.Context) {
	ctx := c.Request.Context()

	partyID, err := id.Parse(c.Param("partyId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid partyId format"))
		return
	}

	balance, err := h.service.GetBalance(ctx, partyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"partyId": partyID,
		"balance": balance,
	})
}

// Statement handles GET /outstanding/:partyId/statement?from=...&to=...
func (h *OutstandingHandler) Statement(c *gin.Context) {
	ctx := c.Request.Context()

	partyID, err := id.Parse(c.Param("partyId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid partyId format"))
		return
	}

	from, ok := h.requireDate(c, "from")
	if !ok {
		return
	}
	to, ok := h.requireDate(c, "to")
	if !ok {
		return
	}

	statement, err := h.service.GetStatement(ctx, partyID, from, to)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, statement)
}

func (h *OutstandingHandler) requireDate(c *gin.Context, key string) (time.Time, bool) {
	val := c.Query(key)
	if val == "" {
		h.Error(c, apperror.NewValidation("missing required date parameter").WithDetail("field", key))
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", val); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, val); err == nil {
		return t, true
	}
	h.Error(c, apperror.NewValidation("invalid date format").WithDetail("field", key))
	return time.Time{}, false
}
