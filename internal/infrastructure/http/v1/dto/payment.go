package dto

import (
	"time"

	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/documents/payment"
)

// CreatePaymentRequest for recording payments.
type CreatePaymentRequest struct {
	OrganizationID string     `json:"organizationId" binding:"required"`
	Kind           string     `json:"kind" binding:"required"`
	PartyID        id.ID      `json:"partyId" binding:"required"`
	PartyName      string     `json:"partyName"`
	Amount         float64    `json:"amount" binding:"required,gt=0"`
	Mode           string     `json:"mode"`
	Reference      string     `json:"reference"`
	Date           *time.Time `json:"date"`
	Notes          string     `json:"notes"`
}

// ToPayment maps the request to a new draft payment.
func (r CreatePaymentRequest) ToPayment() *payment.Payment {
	p := payment.New(r.OrganizationID, payment.Kind(r.Kind), r.PartyID, r.Amount)
	p.PartyName = r.PartyName
	if r.Mode != "" {
		p.Mode = payment.Mode(r.Mode)
	}
	p.Reference = r.Reference
	if r.Date != nil {
		p.Date = *r.Date
	}
	p.Notes = r.Notes
	return p
}

// UpdatePaymentRequest for updating draft payments.
type UpdatePaymentRequest struct {
	PartyID   *id.ID     `json:"partyId"`
	PartyName *string    `json:"partyName"`
	Amount    *float64   `json:"amount"`
	Mode      *string    `json:"mode"`
	Reference *string    `json:"reference"`
	Date      *time.Time `json:"date"`
	Notes     *string    `json:"notes"`
	Version   int        `json:"version" binding:"required,min=1"`
}

// ApplyTo merges the request onto an existing payment.
func (r UpdatePaymentRequest) ApplyTo(p *payment.Payment) *payment.Payment {
	if r.PartyID != nil {
		p.PartyID = *r.PartyID
	}
	if r.PartyName != nil {
		p.PartyName = *r.PartyName
	}
	if r.Amount != nil {
		p.Amount = types.NewMoney(*r.Amount)
	}
	if r.Mode != nil {
		p.Mode = payment.Mode(*r.Mode)
	}
	if r.Reference != nil {
		p.Reference = *r.Reference
	}
	if r.Date != nil {
		p.Date = *r.Date
	}
	if r.Notes != nil {
		p.Notes = *r.Notes
	}
	p.Version = r.Version
	return p
}

// AllocatePaymentRequest applies part of a payment against a document.
type AllocatePaymentRequest struct {
	DocumentID   id.ID   `json:"documentId" binding:"required"`
	DocumentType string  `json:"documentType" binding:"required"`
	Amount       float64 `json:"amount" binding:"required,gt=0"`
}
