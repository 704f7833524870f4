package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zenbill/internal/domain/catalogs/customer"
	"zenbill/internal/infrastructure/http/v1/dto"
)

// CustomerHandler handles customer catalog endpoints.
type CustomerHandler struct {
	*CatalogHandler[*customer.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]
	service *customer.Service
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, service *customer.Service) *CustomerHandler {
	return &CustomerHandler{
		CatalogHandler: NewCatalogHandler(base, CatalogHandlerConfig[*customer.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]{
			Service:    service.CatalogService,
			EntityName: "customer",
			MapCreateDTO: func(req dto.CreateCustomerRequest) *customer.Customer {
				return req.ToCustomer()
			},
			MapUpdateDTO: func(req dto.UpdateCustomerRequest, existing *customer.Customer) *customer.Customer {
				return req.ApplyTo(existing)
			},
		}),
		service: service,
	}
}

// GetByGSTIN handles GET /customers/by-gstin/:gstin
func (h *CustomerHandler) GetByGSTIN(c *gin.Context) {
	result, err := h.service.FindByGSTIN(c.Request.Context(), c.Param("gstin"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
