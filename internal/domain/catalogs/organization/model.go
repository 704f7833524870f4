// Package organization provides the Organization catalog.
// The organization is the issuing party on every document; its state is
// the supply source for sales documents and the destination for
// purchases.
package organization

import (
	"context"
	"regexp"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
)

var gstinRE = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// Organization represents the issuing legal entity.
type Organization struct {
	entity.Catalog

	// LegalName is the registered name printed on documents
	LegalName *string `db:"legal_name" json:"legalName,omitempty"`

	// GSTIN of the organization
	GSTIN *string `db:"gstin" json:"gstin,omitempty"`

	// State is the organization's place of business; the source state
	// for sales supplies and destination for purchases
	State string `db:"state" json:"state"`

	// Address is stored as JSONB
	Address entity.Attributes `db:"address" json:"address,omitempty"`

	// Phone and Email are printed on documents
	Phone *string `db:"phone" json:"phone,omitempty"`
	Email *string `db:"email" json:"email,omitempty"`

	// IsDefault marks the organization preselected on new documents
	IsDefault bool `db:"is_default" json:"isDefault"`
}

// NewOrganization creates a new Organization with required fields.
func NewOrganization(code, name, state string) *Organization {
	return &Organization{
		Catalog: entity.NewCatalog(code, name),
		State:   state,
	}
}

// Validate implements entity.Validatable interface.
func (o *Organization) Validate(ctx context.Context) error {
	if err := o.Catalog.Validate(ctx); err != nil {
		return err
	}

	if o.State == "" {
		return apperror.NewValidation("state is required").
			WithDetail("field", "state")
	}

	if o.GSTIN != nil && *o.GSTIN != "" && !gstinRE.MatchString(*o.GSTIN) {
		return apperror.NewValidation("invalid GSTIN format").
			WithDetail("field", "gstin").
			WithDetail("value", *o.GSTIN)
	}

	return nil
}
