// Package customer provides the Customer catalog.
// Customers are the buying counterparties on quotes, sales orders and
// delivery challans; their state decides the GST regime of a document.
package customer

import (
	"context"
	"regexp"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
)

// Pre-compiled regex patterns for validation
var (
	gstinRE = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// GSTTreatment classifies the customer for GST purposes.
type GSTTreatment string

const (
	TreatmentRegistered   GSTTreatment = "registered"   // registered business with GSTIN
	TreatmentUnregistered GSTTreatment = "unregistered" // business without GSTIN
	TreatmentConsumer     GSTTreatment = "consumer"     // end consumer
	TreatmentOverseas     GSTTreatment = "overseas"     // export customer
)

// Address is a postal address; State feeds the GST split decision.
type Address struct {
	Line1   string `db:"-" json:"line1,omitempty"`
	Line2   string `db:"-" json:"line2,omitempty"`
	City    string `db:"-" json:"city,omitempty"`
	State   string `db:"-" json:"state"`
	Pincode string `db:"-" json:"pincode,omitempty"`
	Country string `db:"-" json:"country,omitempty"`
}

// Customer represents a buying counterparty.
type Customer struct {
	entity.Catalog

	// Treatment defines GST classification
	Treatment GSTTreatment `db:"treatment" json:"treatment"`

	// GSTIN is the 15-character GST registration number
	GSTIN *string `db:"gstin" json:"gstin,omitempty"`

	// BillingState is the customer's place of supply; compared against
	// the organization state to pick intra- vs inter-state GST
	BillingState string `db:"billing_state" json:"billingState"`

	// BillingAddress and ShippingAddress are stored as JSONB
	BillingAddress  entity.Attributes `db:"billing_address" json:"billingAddress,omitempty"`
	ShippingAddress entity.Attributes `db:"shipping_address" json:"shippingAddress,omitempty"`

	// Phone is the primary contact phone
	Phone *string `db:"phone" json:"phone,omitempty"`

	// Email is the primary contact email
	Email *string `db:"email" json:"email,omitempty"`

	// ContactPerson is the primary contact name
	ContactPerson *string `db:"contact_person" json:"contactPerson,omitempty"`

	// Comment is a free-form note
	Comment *string `db:"comment" json:"comment,omitempty"`
}

// NewCustomer creates a new Customer with required fields.
func NewCustomer(code, name string, treatment GSTTreatment) *Customer {
	return &Customer{
		Catalog:   entity.NewCatalog(code, name),
		Treatment: treatment,
	}
}

// Validate implements entity.Validatable interface.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidTreatment(c.Treatment) {
		return apperror.NewValidation("invalid GST treatment").
			WithDetail("field", "treatment").
			WithDetail("value", string(c.Treatment))
	}

	// Registered customers must carry a valid GSTIN
	if c.Treatment == TreatmentRegistered {
		if c.GSTIN == nil || *c.GSTIN == "" {
			return apperror.NewValidation("GSTIN is required for registered customers").
				WithDetail("field", "gstin")
		}
	}

	if c.GSTIN != nil && *c.GSTIN != "" && !IsValidGSTIN(*c.GSTIN) {
		return apperror.NewValidation("invalid GSTIN format").
			WithDetail("field", "gstin").
			WithDetail("value", *c.GSTIN)
	}

	if c.Email != nil && *c.Email != "" && !emailRE.MatchString(*c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}

	return nil
}

// State returns the state used as the supply destination.
func (c *Customer) State() string {
	return c.BillingState
}

func isValidTreatment(t GSTTreatment) bool {
	switch t {
	case TreatmentRegistered, TreatmentUnregistered, TreatmentConsumer, TreatmentOverseas:
		return true
	}
	return false
}

// IsValidGSTIN checks the 15-character GSTIN structure:
// 2-digit state code, 10-character PAN, entity code, 'Z', checksum.
func IsValidGSTIN(gstin string) bool {
	return gstinRE.MatchString(gstin)
}
