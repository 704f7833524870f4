package handlers

import (
	"github.com/gin-gonic/gin"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/domain/documents/payment"
	"zenbill/internal/infrastructure/http/v1/dto"
)

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	*DocumentHandler[*payment.Payment, dto.CreatePaymentRequest, dto.UpdatePaymentRequest]
	service *payment.Service
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(base *BaseHandler, service *payment.Service) *PaymentHandler {
	return &PaymentHandler{
		DocumentHandler: NewDocumentHandler(base, DocumentHandlerConfig[*payment.Payment, dto.CreatePaymentRequest, dto.UpdatePaymentRequest]{
			Service:    service,
			EntityName: "payment",
			MapCreateDTO: func(req dto.CreatePaymentRequest) *payment.Payment {
				return req.ToPayment()
			},
			MapUpdateDTO: func(req dto.UpdatePaymentRequest, existing *payment.Payment) *payment.Payment {
				return req.ApplyTo(existing)
			},
		}),
		service: service,
	}
}

// Allocate handles POST /payments/:id/allocate - applies part of an
// issued payment against an open document.
func (h *PaymentHandler) Allocate(c *gin.Context) {
	ctx := c.Request.Context()

	paymentID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.AllocatePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.Allocate(ctx, paymentID, req.DocumentID, req.DocumentType, req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, p)
}
