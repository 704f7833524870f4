package dto

import (
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/ewaybill"
)

// GenerateEWayBillRequest for POST /eway-bills.
type GenerateEWayBillRequest struct {
	OrganizationID     string  `json:"organizationId" binding:"required"`
	SourceDocumentID   id.ID   `json:"sourceDocumentId" binding:"required"`
	SourceDocumentType string  `json:"sourceDocumentType" binding:"required"`
	SourceNumber       string  `json:"sourceNumber"`
	GrandTotal         float64 `json:"grandTotal" binding:"required,gt=0"`
	InterState         bool    `json:"interState"`
	VehicleNumber      string  `json:"vehicleNumber" binding:"required"`
	TransporterName    string  `json:"transporterName"`
	TransporterGSTIN   string  `json:"transporterGstin"`
	DistanceKm         float64 `json:"distanceKm"`
}

// ToGenerateRequest converts the request to the domain shape.
func (r GenerateEWayBillRequest) ToGenerateRequest() ewaybill.GenerateRequest {
	return ewaybill.GenerateRequest{
		OrganizationID:     r.OrganizationID,
		SourceDocumentID:   r.SourceDocumentID,
		SourceDocumentType: r.SourceDocumentType,
		SourceNumber:       r.SourceNumber,
		GrandTotal:         types.NewMoney(r.GrandTotal),
		InterState:         r.InterState,
		VehicleNumber:      r.VehicleNumber,
		TransporterName:    r.TransporterName,
		TransporterGSTIN:   r.TransporterGSTIN,
		DistanceKm:         r.DistanceKm,
	}
}

// CheckEWayBillRequest for POST /eway-bills/check. Same inputs as
// generation, but the vehicle is not required just to evaluate the rule.
type CheckEWayBillRequest struct {
	GrandTotal float64 `json:"grandTotal" binding:"required,gt=0"`
	InterState bool    `json:"interState"`
	DistanceKm float64 `json:"distanceKm"`
}

// CheckEWayBillResponse reports whether a bill is required.
type CheckEWayBillResponse struct {
	Required bool `json:"required"`
}
