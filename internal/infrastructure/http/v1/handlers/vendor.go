package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zenbill/internal/domain/catalogs/vendor"
	"zenbill/internal/infrastructure/http/v1/dto"
)

// VendorHandler handles vendor catalog endpoints.
type VendorHandler struct {
	*CatalogHandler[*vendor.Vendor, dto.CreateVendorRequest, dto.UpdateVendorRequest]
	service *vendor.Service
}

// NewVendorHandler creates a new vendor handler.
func NewVendorHandler(base *BaseHandler, service *vendor.Service) *VendorHandler {
	return &VendorHandler{
		CatalogHandler: NewCatalogHandler(base, CatalogHandlerConfig[*vendor.Vendor, dto.CreateVendorRequest, dto.UpdateVendorRequest]{
			Service:    service.CatalogService,
			EntityName: "vendor",
			MapCreateDTO: func(req dto.CreateVendorRequest) *vendor.Vendor {
				return req.ToVendor()
			},
			MapUpdateDTO: func(req dto.UpdateVendorRequest, existing *vendor.Vendor) *vendor.Vendor {
				return req.ApplyTo(existing)
			},
		}),
		service: service,
	}
}

// GetByGSTIN handles GET /vendors/by-gstin/:gstin
func (h *VendorHandler) GetByGSTIN(c *gin.Context) {
	result, err := h.service.FindByGSTIN(c.Request.Context(), c.Param("gstin"))
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
