package entity

import (
	"context"
	"time"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
)

// Status is the lifecycle state of a billing document.
type Status string

const (
	// StatusDraft documents can be freely edited and recalculated.
	StatusDraft Status = "draft"

	// StatusIssued documents are sent to the counterparty; line edits
	// still trigger recalculation but the number is frozen.
	StatusIssued Status = "issued"

	// StatusCancelled documents are immutable.
	StatusCancelled Status = "cancelled"
)

// Document is the base type for billing transactions.
// Examples: Quote, SalesOrder, DeliveryChallan, PurchaseOrder, VendorCredit, Payment.
type Document struct {
	BaseDocument

	// Number is the document number (auto-generated, unique within type+year)
	Number string `db:"number" json:"number"`

	// Date is the business date of the document
	Date time.Time `db:"date" json:"date"`

	// Status is the lifecycle state (draft, issued, cancelled)
	Status Status `db:"status" json:"status"`

	// OrganizationID is the issuing organization
	OrganizationID string `db:"organization_id" json:"organizationId"`

	// Notes is an optional user comment printed on the document
	Notes string `db:"notes" json:"notes,omitempty"`
}

// NewDocument creates a new draft Document with generated ID.
func NewDocument(organizationID string) Document {
	return Document{
		BaseDocument:   NewBaseDocument(),
		Date:           time.Now().UTC(),
		Status:         StatusDraft,
		OrganizationID: organizationID,
	}
}

// Validate implements Validatable interface.
func (d *Document) Validate(ctx context.Context) error {
	if d.OrganizationID == "" {
		return apperror.NewValidation("organization is required").
			WithDetail("field", "organizationId")
	}

	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}

// ResetAsCopy rewinds the header for a copied document: fresh identity
// and timestamps, no number yet, today's date, draft status. Body
// fields (organization, notes) survive the copy.
func (d *Document) ResetAsCopy() {
	d.BaseDocument = NewBaseDocument()
	d.Number = ""
	d.Date = time.Now().UTC()
	d.Status = StatusDraft
}

// CanModify checks if document can be modified.
// Cancelled documents are immutable.
func (d *Document) CanModify() error {
	if d.Status == StatusCancelled {
		return apperror.NewDocumentCancelled("document", d.ID.String())
	}
	return nil
}

// Issue transitions a draft document to issued.
func (d *Document) Issue() error {
	switch d.Status {
	case StatusCancelled:
		return apperror.NewDocumentCancelled("document", d.ID.String())
	case StatusIssued:
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Document is already issued",
		).WithDetail("document_id", d.ID.String())
	}
	d.Status = StatusIssued
	d.Touch()
	return nil
}

// Cancel transitions a document to cancelled. Cancelling twice is an error.
func (d *Document) Cancel() error {
	if d.Status == StatusCancelled {
		return apperror.NewDocumentCancelled("document", d.ID.String())
	}
	d.Status = StatusCancelled
	d.Touch()
	return nil
}

// IsCancelled returns true for cancelled documents.
func (d *Document) IsCancelled() bool {
	return d.Status == StatusCancelled
}

// IsBackdated checks if document date is in the past.
func (d *Document) IsBackdated() bool {
	return d.Date.Before(time.Now().UTC().Truncate(24 * time.Hour))
}

// GetID returns the document ID.
func (d *Document) GetID() id.ID {
	return d.ID
}
