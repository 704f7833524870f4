package handlers

import (
	"zenbill/internal/domain/catalogs/item"
	"zenbill/internal/infrastructure/http/v1/dto"
)

// ItemHandler handles item catalog endpoints.
type ItemHandler struct {
	*CatalogHandler[*item.Item, dto.CreateItemRequest, dto.UpdateItemRequest]
}

// NewItemHandler creates a new item handler.
func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHandler {
	return &ItemHandler{
		CatalogHandler: NewCatalogHandler(base, CatalogHandlerConfig[*item.Item, dto.CreateItemRequest, dto.UpdateItemRequest]{
			Service:    service.CatalogService,
			EntityName: "item",
			MapCreateDTO: func(req dto.CreateItemRequest) *item.Item {
				return req.ToItem()
			},
			MapUpdateDTO: func(req dto.UpdateItemRequest, existing *item.Item) *item.Item {
				return req.ApplyTo(existing)
			},
		}),
	}
}
