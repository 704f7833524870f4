package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/domain/documents/quote"
	"zenbill/internal/domain/documents/salesorder"
	"zenbill/internal/infrastructure/http/v1/dto"
)

// QuoteHandler handles quote endpoints, including one-shot conversion
// into a sales order.
type QuoteHandler struct {
	*DocumentHandler[*quote.Quote, dto.CreateQuoteRequest, dto.UpdateQuoteRequest]
	salesOrders *salesorder.Service
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(base *BaseHandler, service *quote.Service, salesOrders *salesorder.Service) *QuoteHandler {
	return &QuoteHandler{
		DocumentHandler: NewDocumentHandler(base, DocumentHandlerConfig[*quote.Quote, dto.CreateQuoteRequest, dto.UpdateQuoteRequest]{
			Service:    service,
			EntityName: "quote",
			MapCreateDTO: func(req dto.CreateQuoteRequest) *quote.Quote {
				return req.ToQuote()
			},
			MapUpdateDTO: func(req dto.UpdateQuoteRequest, existing *quote.Quote) *quote.Quote {
				return req.ApplyTo(existing)
			},
		}),
		salesOrders: salesOrders,
	}
}

// Convert handles POST /quotes/:id/convert - creates a sales order from
// an issued quote and returns the new order.
func (h *QuoteHandler) Convert(c *gin.Context) {
	ctx := c.Request.Context()

	quoteID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	order, err := h.salesOrders.CreateFromQuote(ctx, quoteID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.CompleteIdempotency(c, http.StatusCreated, "application/json", order)
	c.JSON(http.StatusCreated, order)
}
