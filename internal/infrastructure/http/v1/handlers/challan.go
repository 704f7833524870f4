package handlers

import (
	"zenbill/internal/domain/documents/challan"
	"zenbill/internal/infrastructure/http/v1/dto"
)

// ChallanHandler handles delivery challan endpoints.
type ChallanHandler struct {
	*DocumentHandler[*challan.DeliveryChallan, dto.CreateChallanRequest, dto.UpdateChallanRequest]
}

// NewChallanHandler creates a new delivery challan handler.
func NewChallanHandler(base *BaseHandler, service *challan.Service) *ChallanHandler {
	return &ChallanHandler{
		DocumentHandler: NewDocumentHandler(base, DocumentHandlerConfig[*challan.DeliveryChallan, dto.CreateChallanRequest, dto.UpdateChallanRequest]{
			Service:    service,
			EntityName: "delivery_challan",
			MapCreateDTO: func(req dto.CreateChallanRequest) *challan.DeliveryChallan {
				return req.ToChallan()
			},
			MapUpdateDTO: func(req dto.UpdateChallanRequest, existing *challan.DeliveryChallan) *challan.DeliveryChallan {
				return req.ApplyTo(existing)
			},
		}),
	}
}
