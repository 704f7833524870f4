package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"zenbill/internal/domain/catalogs/organization"
	"zenbill/internal/infrastructure/http/v1/dto"
)

// OrganizationHandler handles organization catalog endpoints.
type OrganizationHandler struct {
	*CatalogHandler[*organization.Organization, dto.CreateOrganizationRequest, dto.UpdateOrganizationRequest]
	service *organization.Service
}

// NewOrganizationHandler creates a new organization handler.
func NewOrganizationHandler(base *BaseHandler, service *organization.Service) *OrganizationHandler {
	return &OrganizationHandler{
		CatalogHandler: NewCatalogHandler(base, CatalogHandlerConfig[*organization.Organization, dto.CreateOrganizationRequest, dto.UpdateOrganizationRequest]{
			Service:    service.CatalogService,
			EntityName: "organization",
			MapCreateDTO: func(req dto.CreateOrganizationRequest) *organization.Organization {
				return req.ToOrganization()
			},
			MapUpdateDTO: func(req dto.UpdateOrganizationRequest, existing *organization.Organization) *organization.Organization {
				return req.ApplyTo(existing)
			},
		}),
		service: service,
	}
}

// GetDefault handles GET /organizations/default
func (h *OrganizationHandler) GetDefault(c *gin.Context) {
	result, err := h.service.GetDefault(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
