// Package quote provides the Quote document.
// A quote is a priced offer to a customer; it can be converted into a
// sales order exactly once.
package quote

import (
	"context"
	"time"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/tax"
)

// Quote represents a priced offer to a customer.
type Quote struct {
	documents.TradeDocument

	// Customer reference and denormalized display name
	CustomerID   id.ID  `db:"customer_id" json:"customerId"`
	CustomerName string `db:"customer_name" json:"customerName,omitempty"`

	// ExpiryDate after which the quote is no longer valid
	ExpiryDate *time.Time `db:"expiry_date" json:"expiryDate,omitempty"`

	// ConvertedToID references the sales order created from this quote
	ConvertedToID *id.ID `db:"converted_to_id" json:"convertedToId,omitempty"`
}

// New creates a draft quote. Source state is the organization's,
// destination is the customer's billing state.
func New(organizationID string, customerID id.ID, sourceState, destinationState string) *Quote {
	return &Quote{
		TradeDocument: documents.NewTradeDocument(organizationID, sourceState, destinationState),
		CustomerID:    customerID,
	}
}

// Base implements documents.Doc.
func (q *Quote) Base() *entity.Document {
	return &q.Document
}

// Recalc implements documents.Doc. Quotes carry no TDS/TCS.
func (q *Quote) Recalc() {
	q.Recalculate(tax.DefaultOptions(), types.Zero(), types.Zero())
}

// Clone returns a copy with fresh line IDs. The copy is never converted
// regardless of the source.
func (q *Quote) Clone() *Quote {
	cp := *q
	cp.Lines = documents.CloneLines(q.Lines)
	cp.ConvertedToID = nil
	return &cp
}

// IsConverted returns true once a sales order was created from this quote.
func (q *Quote) IsConverted() bool {
	return q.ConvertedToID != nil
}

// MarkConverted records the sales order created from this quote.
// Converting twice is an error.
func (q *Quote) MarkConverted(salesOrderID id.ID) error {
	if q.IsConverted() {
		return apperror.NewDocumentConverted("quote", q.ID.String())
	}
	if q.IsCancelled() {
		return apperror.NewDocumentCancelled("quote", q.ID.String())
	}
	q.ConvertedToID = &salesOrderID
	q.Touch()
	return nil
}

// IsExpired returns true when the quote has an expiry date in the past.
func (q *Quote) IsExpired() bool {
	return q.ExpiryDate != nil && q.ExpiryDate.Before(time.Now().UTC())
}

// Validate implements entity.Validatable.
func (q *Quote) Validate(ctx context.Context) error {
	if err := q.TradeDocument.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(q.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if q.ExpiryDate != nil && q.ExpiryDate.Before(q.Date) {
		return apperror.NewValidation("expiry date cannot be before the quote date").
			WithDetail("field", "expiryDate")
	}

	return nil
}
