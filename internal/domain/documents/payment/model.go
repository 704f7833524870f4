// Package payment provides the Payment document.
// A payment records money received from a customer or paid to a vendor
// and its allocation across open documents.
package payment

import (
	"context"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
)

// Kind is the direction of a payment.
type Kind string

const (
	KindReceived Kind = "received" // from a customer
	KindMade     Kind = "made"     // to a vendor
)

// Mode is the payment instrument.
type Mode string

const (
	ModeCash         Mode = "cash"
	ModeCheque       Mode = "cheque"
	ModeBankTransfer Mode = "bank_transfer"
	ModeUPI          Mode = "upi"
	ModeCard         Mode = "card"
)

// Allocation applies part of a payment against one document.
type Allocation struct {
	DocumentID   id.ID       `db:"document_id" json:"documentId"`
	DocumentType string      `db:"document_type" json:"documentType"`
	Amount       types.Money `db:"amount" json:"amount"`
}

// Payment records money received or paid and its allocations.
type Payment struct {
	entity.Document

	// Kind is received or made
	Kind Kind `db:"kind" json:"kind"`

	// Party is the customer (received) or vendor (made)
	PartyID   id.ID  `db:"party_id" json:"partyId"`
	PartyName string `db:"party_name" json:"partyName,omitempty"`

	// Amount is the full payment amount
	Amount types.Money `db:"amount" json:"amount"`

	// Mode and bank reference
	Mode      Mode   `db:"mode" json:"mode"`
	Reference string `db:"reference" json:"reference,omitempty"`

	// Allocations applied against open documents, stored as JSONB
	Allocations []Allocation `db:"allocations" json:"allocations,omitempty"`

	// UnusedAmount is the unallocated remainder, derived
	UnusedAmount types.Money `db:"unused_amount" json:"unusedAmount"`
}

// New creates a draft payment.
func New(organizationID string, kind Kind, partyID id.ID, amount float64) *Payment {
	return &Payment{
		Document: entity.NewDocument(organizationID),
		Kind:     kind,
		PartyID:  partyID,
		Amount:   types.NewMoney(amount),
		Mode:     ModeBankTransfer,
	}
}

// Clone returns a copy with no allocations; the full amount is
// available again.
func (p *Payment) Clone() *Payment {
	cp := *p
	cp.Allocations = nil
	cp.UnusedAmount = p.Amount
	return &cp
}

// Base implements documents.Doc.
func (p *Payment) Base() *entity.Document {
	return &p.Document
}

// Recalc implements documents.Doc: re-derives the unused remainder from
// the allocations.
func (p *Payment) Recalc() {
	allocated := types.Zero()
	for _, a := range p.Allocations {
		allocated = allocated.Add(a.Amount)
	}
	p.UnusedAmount = p.Amount.Sub(allocated)
}

// Allocate applies part of the payment against a document.
func (p *Payment) Allocate(documentID id.ID, documentType string, amount types.Money) error {
	if amount.Sign() <= 0 {
		return apperror.NewValidation("allocation amount must be positive").
			WithDetail("field", "amount")
	}
	p.Recalc()
	if amount.GreaterThan(p.UnusedAmount) {
		return apperror.NewBusinessRule(
			apperror.CodeBusinessRule,
			"Allocation exceeds the unallocated payment amount",
		).WithDetail("unused", p.UnusedAmount.String()).
			WithDetail("amount", amount.String())
	}
	p.Allocations = append(p.Allocations, Allocation{
		DocumentID:   documentID,
		DocumentType: documentType,
		Amount:       amount,
	})
	p.Recalc()
	p.Touch()
	return nil
}

// Validate implements entity.Validatable.
func (p *Payment) Validate(ctx context.Context) error {
	if err := p.Document.Validate(ctx); err != nil {
		return err
	}

	if p.Kind != KindReceived && p.Kind != KindMade {
		return apperror.NewValidation("invalid payment kind").
			WithDetail("field", "kind").
			WithDetail("value", string(p.Kind))
	}

	if id.IsNil(p.PartyID) {
		return apperror.NewValidation("party is required").
			WithDetail("field", "partyId")
	}

	if p.Amount.Sign() <= 0 {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}

	allocated := types.Zero()
	for i, a := range p.Allocations {
		if a.Amount.Sign() <= 0 {
			return apperror.NewValidation("allocation amount must be positive").
				WithDetail("field", "allocations").
				WithDetail("index", i)
		}
		allocated = allocated.Add(a.Amount)
	}
	if allocated.GreaterThan(p.Amount) {
		return apperror.NewValidation("allocations exceed the payment amount").
			WithDetail("allocated", allocated.String()).
			WithDetail("amount", p.Amount.String())
	}

	return nil
}
