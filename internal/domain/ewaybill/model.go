package ewaybill

import (
	"context"
	"time"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
)

// EWayBill accompanies a goods consignment above the statutory
// threshold. It snapshots the source document's value at generation
// time.
type EWayBill struct {
	entity.Document

	// Source document reference
	SourceDocumentID   id.ID  `db:"source_document_id" json:"sourceDocumentId"`
	SourceDocumentType string `db:"source_document_type" json:"sourceDocumentType"`
	SourceNumber       string `db:"source_number" json:"sourceNumber,omitempty"`

	// Consignment value snapshot
	GrandTotal types.Money `db:"grand_total" json:"grandTotal"`

	// Transport details
	VehicleNumber   string  `db:"vehicle_number" json:"vehicleNumber"`
	TransporterName string  `db:"transporter_name" json:"transporterName,omitempty"`
	TransporterGSTIN string `db:"transporter_gstin" json:"transporterGstin,omitempty"`
	DistanceKm      float64 `db:"distance_km" json:"distanceKm"`

	// ValidUntil is derived from distance at generation time
	ValidUntil time.Time `db:"valid_until" json:"validUntil"`
}

// New creates a draft e-way bill for a source document.
func New(organizationID string, sourceID id.ID, sourceType, sourceNumber string, grandTotal types.Money) *EWayBill {
	return &EWayBill{
		Document:           entity.NewDocument(organizationID),
		SourceDocumentID:   sourceID,
		SourceDocumentType: sourceType,
		SourceNumber:       sourceNumber,
		GrandTotal:         grandTotal,
	}
}

// Validity is one day per started 200 km, minimum one day.
func Validity(from time.Time, distanceKm float64) time.Time {
	days := int(distanceKm/200) + 1
	return from.Add(time.Duration(days) * 24 * time.Hour)
}

// Validate implements entity.Validatable.
func (e *EWayBill) Validate(ctx context.Context) error {
	if err := e.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(e.SourceDocumentID) {
		return apperror.NewValidation("source document is required").
			WithDetail("field", "sourceDocumentId")
	}

	if e.VehicleNumber == "" {
		return apperror.NewValidation("vehicle number is required").
			WithDetail("field", "vehicleNumber")
	}

	if e.DistanceKm < 0 {
		return apperror.NewValidation("distance cannot be negative").
			WithDetail("field", "distanceKm")
	}

	return nil
}

// IsExpired reports whether the bill's validity window has passed.
func (e *EWayBill) IsExpired(now time.Time) bool {
	return now.After(e.ValidUntil)
}
