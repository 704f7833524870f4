package handlers

import (
	"github.com/gin-gonic/gin"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/domain/documents/vendorcredit"
	"zenbill/internal/infrastructure/http/v1/dto"
)

// VendorCreditHandler handles vendor credit endpoints.
type VendorCreditHandler struct {
	*DocumentHandler[*vendorcredit.VendorCredit, dto.CreateVendorCreditRequest, dto.UpdateVendorCreditRequest]
	service *vendorcredit.Service
}

// NewVendorCreditHandler creates a new vendor credit handler.
func NewVendorCreditHandler(base *BaseHandler, service *vendorcredit.Service) *VendorCreditHandler {
	return &VendorCreditHandler{
		DocumentHandler: NewDocumentHandler(base, DocumentHandlerConfig[*vendorcredit.VendorCredit, dto.CreateVendorCreditRequest, dto.UpdateVendorCreditRequest]{
			Service:    service,
			EntityName: "vendor_credit",
			MapCreateDTO: func(req dto.CreateVendorCreditRequest) *vendorcredit.VendorCredit {
				return req.ToVendorCredit()
			},
			MapUpdateDTO: func(req dto.UpdateVendorCreditRequest, existing *vendorcredit.VendorCredit) *vendorcredit.VendorCredit {
				return req.ApplyTo(existing)
			},
		}),
		service: service,
	}
}

// Apply handles POST /vendor-credits/:id/apply - consumes part of an
// issued credit against vendor payables.
func (h *VendorCreditHandler) Apply(c *gin.Context) {
	ctx := c.Request.Context()

	creditID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.ApplyCreditRequest
	if !h.BindJSON(c, &req) {
		return
	}

	credit, err := h.service.ApplyCredit(ctx, creditID, req.Amount)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, credit)
}
