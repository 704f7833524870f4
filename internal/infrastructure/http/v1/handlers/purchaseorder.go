package handlers

import (
	"zenbill/internal/domain/documents/purchaseorder"
	"zenbill/internal/infrastructure/http/v1/dto"
)

// PurchaseOrderHandler handles purchase order endpoints.
type PurchaseOrderHandler struct {
	*DocumentHandler[*purchaseorder.PurchaseOrder, dto.CreatePurchaseOrderRequest, dto.UpdatePurchaseOrderRequest]
}

// NewPurchaseOrderHandler creates a new purchase order handler.
func NewPurchaseOrderHandler(base *BaseHandler, service *purchaseorder.Service) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{
		DocumentHandler: NewDocumentHandler(base, DocumentHandlerConfig[*purchaseorder.PurchaseOrder, dto.CreatePurchaseOrderRequest, dto.UpdatePurchaseOrderRequest]{
			Service:    service,
			EntityName: "purchase_order",
			MapCreateDTO: func(req dto.CreatePurchaseOrderRequest) *purchaseorder.PurchaseOrder {
				return req.ToPurchaseOrder()
			},
			MapUpdateDTO: func(req dto.UpdatePurchaseOrderRequest, existing *purchaseorder.PurchaseOrder) *purchaseorder.PurchaseOrder {
				return req.ApplyTo(existing)
			},
		}),
	}
}
