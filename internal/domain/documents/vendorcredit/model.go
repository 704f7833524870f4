// Package vendorcredit provides the VendorCredit document.
// A vendor credit records value owed back by a vendor (returns, price
// corrections). It is vendor-side and may carry TDS or TCS like a
// purchase order; the credit's balance decreases as it is applied
// against bills or refunded.
package vendorcredit

import (
	"context"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/tax"
)

// VendorCredit represents credit owed back by a vendor.
type VendorCredit struct {
	documents.TradeDocument

	// Vendor reference and denormalized display name
	VendorID   id.ID  `db:"vendor_id" json:"vendorId"`
	VendorName string `db:"vendor_name" json:"vendorName,omitempty"`

	// Reason for the credit (returned goods, pricing error, ...)
	Reason string `db:"reason" json:"reason,omitempty"`

	// TDS and TCS charges, each either a flat amount or a percentage of
	// the post-discount subtotal. At most one of the two applies.
	TDSMode  tax.ChargeMode `db:"tds_mode" json:"tdsMode,omitempty"`
	TDSValue float64        `db:"tds_value" json:"tdsValue"`
	TDSLabel string         `db:"tds_label" json:"tdsLabel,omitempty"`
	TCSMode  tax.ChargeMode `db:"tcs_mode" json:"tcsMode,omitempty"`
	TCSValue float64        `db:"tcs_value" json:"tcsValue"`
	TCSLabel string         `db:"tcs_label" json:"tcsLabel,omitempty"`

	// AmountApplied is the portion of the credit already used
	AmountApplied types.Money `db:"amount_applied" json:"amountApplied"`
}

// New creates a draft vendor credit. Source state is the vendor's,
// destination is the organization's.
func New(organizationID string, vendorID id.ID, sourceState, destinationState string) *VendorCredit {
	return &VendorCredit{
		TradeDocument: documents.NewTradeDocument(organizationID, sourceState, destinationState),
		VendorID:      vendorID,
	}
}

// Clone returns a copy with fresh line IDs and nothing applied yet.
func (v *VendorCredit) Clone() *VendorCredit {
	cp := *v
	cp.Lines = documents.CloneLines(v.Lines)
	cp.AmountApplied = types.Zero()
	return &cp
}

// Base implements documents.Doc.
func (v *VendorCredit) Base() *entity.Document {
	return &v.Document
}

// Recalc implements documents.Doc. Same two-pass charge resolution as
// purchase orders.
func (v *VendorCredit) Recalc() {
	v.Recalculate(tax.DefaultOptions(), types.Zero(), types.Zero())

	tcs := tax.ResolveCharge(chargeMode(v.TCSMode), v.TCSValue, v.Totals.SubTotal)
	tds := tax.ResolveCharge(chargeMode(v.TDSMode), v.TDSValue, v.Totals.SubTotal)

	v.Recalculate(tax.DefaultOptions(), tcs, tds)
}

func chargeMode(m tax.ChargeMode) tax.ChargeMode {
	if m == "" {
		return tax.ChargeFlat
	}
	return m
}

// Balance returns the unapplied portion of the credit.
func (v *VendorCredit) Balance() types.Money {
	return v.Totals.BalanceDue.Sub(v.AmountApplied)
}

// Apply consumes part of the credit. The applied amount can never
// exceed the remaining balance.
func (v *VendorCredit) Apply(amount types.Money) error {
	if amount.Sign() <= 0 {
		return apperror.NewValidation("applied amount must be positive").
			WithDetail("field", "amount")
	}
	if amount.GreaterThan(v.Balance()) {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Applied amount exceeds the remaining credit balance",
		).WithDetail("balance", v.Balance().String()).
			WithDetail("amount", amount.String())
	}
	v.AmountApplied = v.AmountApplied.Add(amount)
	v.Touch()
	return nil
}

// Validate implements entity.Validatable.
func (v *VendorCredit) Validate(ctx context.Context) error {
	if err := v.TradeDocument.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(v.VendorID) {
		return apperror.NewValidation("vendor is required").
			WithDetail("field", "vendorId")
	}

	if v.TDSValue < 0 || v.TCSValue < 0 {
		return apperror.NewValidation("TDS/TCS values cannot be negative")
	}

	if v.TDSValue > 0 && v.TCSValue > 0 {
		return apperror.NewValidation("a document carries either TDS or TCS, not both").
			WithDetail("field", "tdsValue")
	}

	if v.AmountApplied.Sign() < 0 {
		return apperror.NewValidation("applied amount cannot be negative").
			WithDetail("field", "amountApplied")
	}

	return nil
}
