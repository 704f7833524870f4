// Package challan provides the DeliveryChallan document.
// A delivery challan accompanies a movement of goods without a sale
// (job work, supply on approval, transfers) and still carries the full
// tax computation for the goods value declared on it.
package challan

import (
	"context"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/tax"
)

// ChallanType classifies the reason for movement.
type ChallanType string

const (
	TypeJobWork          ChallanType = "job_work"
	TypeSupplyOnApproval ChallanType = "supply_on_approval"
	TypeLiquidGas        ChallanType = "liquid_gas"
	TypeOthers           ChallanType = "others"
)

// DeliveryChallan represents a goods movement document.
type DeliveryChallan struct {
	documents.TradeDocument

	// Customer reference and denormalized display name
	CustomerID   id.ID  `db:"customer_id" json:"customerId"`
	CustomerName string `db:"customer_name" json:"customerName,omitempty"`

	// Type is the reason for movement
	Type ChallanType `db:"challan_type" json:"challanType"`

	// VehicleNumber of the transporting vehicle
	VehicleNumber string `db:"vehicle_number" json:"vehicleNumber,omitempty"`

	// PlaceOfSupply printed on the challan
	PlaceOfSupply string `db:"place_of_supply" json:"placeOfSupply,omitempty"`
}

// New creates a draft delivery challan.
func New(organizationID string, customerID id.ID, challanType ChallanType, sourceState, destinationState string) *DeliveryChallan {
	return &DeliveryChallan{
		TradeDocument: documents.NewTradeDocument(organizationID, sourceState, destinationState),
		CustomerID:    customerID,
		Type:          challanType,
	}
}

// Clone returns a copy with fresh line IDs.
func (c *DeliveryChallan) Clone() *DeliveryChallan {
	cp := *c
	cp.Lines = documents.CloneLines(c.Lines)
	return &cp
}

// Base implements documents.Doc.
func (c *DeliveryChallan) Base() *entity.Document {
	return &c.Document
}

// Recalc implements documents.Doc. Challans carry no TDS/TCS.
func (c *DeliveryChallan) Recalc() {
	c.Recalculate(tax.DefaultOptions(), types.Zero(), types.Zero())
}

// Validate implements entity.Validatable.
func (c *DeliveryChallan) Validate(ctx context.Context) error {
	if err := c.TradeDocument.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(c.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	switch c.Type {
	case TypeJobWork, TypeSupplyOnApproval, TypeLiquidGas, TypeOthers:
	default:
		return apperror.NewValidation("invalid challan type").
			WithDetail("field", "challanType").
			WithDetail("value", string(c.Type))
	}

	return nil
}
