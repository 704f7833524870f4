// Package purchaseorder provides the PurchaseOrder document.
// Purchase orders are vendor-side: the vendor's state is the supply
// source and the document may carry TDS or TCS charges.
package purchaseorder

import (
	"context"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/tax"
)

// PurchaseOrder represents an order placed with a vendor.
type PurchaseOrder struct {
	documents.TradeDocument

	// Vendor reference and denormalized display name
	VendorID   id.ID  `db:"vendor_id" json:"vendorId"`
	VendorName string `db:"vendor_name" json:"vendorName,omitempty"`

	// DeliveryAddress where goods are to be delivered
	DeliveryAddress entity.Attributes `db:"delivery_address" json:"deliveryAddress,omitempty"`

	// TDS and TCS charges, each either a flat amount or a percentage of
	// the post-discount subtotal. At most one of the two applies.
	TDSMode  tax.ChargeMode `db:"tds_mode" json:"tdsMode,omitempty"`
	TDSValue float64        `db:"tds_value" json:"tdsValue"`
	TDSLabel string         `db:"tds_label" json:"tdsLabel,omitempty"`
	TCSMode  tax.ChargeMode `db:"tcs_mode" json:"tcsMode,omitempty"`
	TCSValue float64        `db:"tcs_value" json:"tcsValue"`
	TCSLabel string         `db:"tcs_label" json:"tcsLabel,omitempty"`
}

// New creates a draft purchase order. Source state is the vendor's,
// destination is the organization's.
func New(organizationID string, vendorID id.ID, sourceState, destinationState string) *PurchaseOrder {
	return &PurchaseOrder{
		TradeDocument: documents.NewTradeDocument(organizationID, sourceState, destinationState),
		VendorID:      vendorID,
	}
}

// Clone returns a copy with fresh line IDs.
func (p *PurchaseOrder) Clone() *PurchaseOrder {
	cp := *p
	cp.Lines = documents.CloneLines(p.Lines)
	return &cp
}

// Base implements documents.Doc.
func (p *PurchaseOrder) Base() *entity.Document {
	return &p.Document
}

// Recalc implements documents.Doc. Rate-mode TDS/TCS resolves against
// the post-discount subtotal, so lines aggregate first and the flat
// charges feed a second totals pass.
func (p *PurchaseOrder) Recalc() {
	p.Recalculate(tax.DefaultOptions(), types.Zero(), types.Zero())

	tcs := tax.ResolveCharge(chargeMode(p.TCSMode), p.TCSValue, p.Totals.SubTotal)
	tds := tax.ResolveCharge(chargeMode(p.TDSMode), p.TDSValue, p.Totals.SubTotal)

	p.Recalculate(tax.DefaultOptions(), tcs, tds)
}

func chargeMode(m tax.ChargeMode) tax.ChargeMode {
	if m == "" {
		return tax.ChargeFlat
	}
	return m
}

// Validate implements entity.Validatable.
func (p *PurchaseOrder) Validate(ctx context.Context) error {
	if err := p.TradeDocument.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(p.VendorID) {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}

	if p.TDSValue < 0 || p.TCSValue < 0 {
		return apperror.NewValidation("TDS/TCS values cannot be negative")
	}

	if p.TDSValue > 0 && p.TCSValue > 0 {
		return apperror.NewValidation("a document carries either TDS or TCS, not both").
			WithDetail("field", "tdsValue")
	}

	return nil
}
