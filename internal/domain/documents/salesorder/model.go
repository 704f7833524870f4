// Package salesorder provides the SalesOrder document.
package salesorder

import (
	"context"
	"time"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/documents/quote"
	"zenbill/internal/domain/tax"
)

// SalesOrder represents a confirmed customer order.
type SalesOrder struct {
	documents.TradeDocument

	// Customer reference and denormalized display name
	CustomerID   id.ID  `db:"customer_id" json:"customerId"`
	CustomerName string `db:"customer_name" json:"customerName,omitempty"`

	// QuoteID references the quote this order was converted from
	QuoteID *id.ID `db:"quote_id" json:"quoteId,omitempty"`

	// ExpectedShipmentDate for fulfilment planning
	ExpectedShipmentDate *time.Time `db:"expected_shipment_date" json:"expectedShipmentDate,omitempty"`
}

// New creates a draft sales order.
func New(organizationID string, customerID id.ID, sourceState, destinationState string) *SalesOrder {
	return &SalesOrder{
		TradeDocument: documents.NewTradeDocument(organizationID, sourceState, destinationState),
		CustomerID:    customerID,
	}
}

// FromQuote builds a sales order from a quote: lines, supply states and
// document-level charges carry over; the order gets a fresh identity,
// number and draft status.
func FromQuote(q *quote.Quote) *SalesOrder {
	so := New(q.OrganizationID, q.CustomerID, q.SourceState, q.DestinationState)
	so.CustomerName = q.CustomerName
	so.ShippingCharges = q.ShippingCharges
	so.Adjustment = q.Adjustment
	so.AdjustmentReason = q.AdjustmentReason
	so.Notes = q.Notes

	qid := q.ID
	so.QuoteID = &qid

	so.Lines = documents.CloneLines(q.Lines)

	so.Recalc()
	return so
}

// Clone returns a copy with fresh line IDs. The copy stands on its own,
// detached from any source quote.
func (o *SalesOrder) Clone() *SalesOrder {
	cp := *o
	cp.Lines = documents.CloneLines(o.Lines)
	cp.QuoteID = nil
	return &cp
}

// Base implements documents.Doc.
func (o *SalesOrder) Base() *entity.Document {
	return &o.Document
}

// Recalc implements documents.Doc. Sales orders carry no TDS/TCS.
func (o *SalesOrder) Recalc() {
	o.Recalculate(tax.DefaultOptions(), types.Zero(), types.Zero())
}

// Validate implements entity.Validatable.
func (o *SalesOrder) Validate(ctx context.Context) error {
	if err := o.TradeDocument.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(o.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	return nil
}
