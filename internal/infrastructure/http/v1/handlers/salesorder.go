package handlers

import (
	"zenbill/internal/domain/documents/salesorder"
	"zenbill/internal/infrastructure/http/v1/dto"
)

// SalesOrderHandler handles sales order endpoints.
type SalesOrderHandler struct {
	*DocumentHandler[*salesorder.SalesOrder, dto.CreateSalesOrderRequest, dto.UpdateSalesOrderRequest]
}

// NewSalesOrderHandler creates a new sales order handler.
func NewSalesOrderHandler(base *BaseHandler, service *salesorder.Service) *SalesOrderHandler {
	return &SalesOrderHandler{
		DocumentHandler: NewDocumentHandler(base, DocumentHandlerConfig[*salesorder.SalesOrder, dto.CreateSalesOrderRequest, dto.UpdateSalesOrderRequest]{
			Service:    service,
			EntityName: "sales_order",
			MapCreateDTO: func(req dto.CreateSalesOrderRequest) *salesorder.SalesOrder {
				return req.ToSalesOrder()
			},
			MapUpdateDTO: func(req dto.UpdateSalesOrderRequest, existing *salesorder.SalesOrder) *salesorder.SalesOrder {
				return req.ApplyTo(existing)
			},
		}),
	}
}
