// Package item provides the Item catalog (goods and services sold or
// purchased). An item carries the default rate and tax slab that seed
// new document lines; user edits on the line override them.
package item

import (
	"context"
	"regexp"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
	"zenbill/internal/core/types"
)

// HSN/SAC codes are 4 to 8 digits
var hsnRE = regexp.MustCompile(`^\d{4,8}$`)

// Kind distinguishes goods from services.
type Kind string

const (
	KindGoods   Kind = "goods"
	KindService Kind = "service"
)

// Item represents a sellable or purchasable good or service.
type Item struct {
	entity.Catalog

	// Kind is goods or service
	Kind Kind `db:"kind" json:"kind"`

	// Unit is the unit of measure label (pcs, kg, hrs, ...)
	Unit string `db:"unit" json:"unit,omitempty"`

	// HSN is the HSN (goods) or SAC (services) classification code
	HSN *string `db:"hsn" json:"hsn,omitempty"`

	// SellingRate is the default unit price on sales documents
	SellingRate types.Money `db:"selling_rate" json:"sellingRate"`

	// PurchaseRate is the default unit price on purchase documents
	PurchaseRate types.Money `db:"purchase_rate" json:"purchaseRate"`

	// TaxRate is the GST slab percentage (0/5/12/18/28). Ignored when
	// NonTaxable is set.
	TaxRate float64 `db:"tax_rate" json:"taxRate"`

	// TaxName is the display label for the slab ("GST18", "GST5", ...)
	TaxName string `db:"tax_name" json:"taxName,omitempty"`

	// NonTaxable marks the item as GST-exempt (distinct from 0% rate)
	NonTaxable bool `db:"non_taxable" json:"nonTaxable"`

	// Description is printed on document lines
	Description *string `db:"description" json:"description,omitempty"`
}

// NewItem creates a new Item with required fields.
func NewItem(code, name string, kind Kind) *Item {
	return &Item{
		Catalog: entity.NewCatalog(code, name),
		Kind:    kind,
	}
}

// Validate implements entity.Validatable interface.
func (i *Item) Validate(ctx context.Context) error {
	if err := i.Catalog.Validate(ctx); err != nil {
		return err
	}

	if i.Kind != KindGoods && i.Kind != KindService {
		return apperror.NewValidation("invalid item kind").
			WithDetail("field", "kind").
			WithDetail("value", string(i.Kind))
	}

	if i.SellingRate.Sign() < 0 {
		return apperror.NewValidation("selling rate cannot be negative").
			WithDetail("field", "sellingRate")
	}

	if i.PurchaseRate.Sign() < 0 {
		return apperror.NewValidation("purchase rate cannot be negative").
			WithDetail("field", "purchaseRate")
	}

	if i.TaxRate < 0 {
		return apperror.NewValidation("tax rate cannot be negative").
			WithDetail("field", "taxRate")
	}

	if i.HSN != nil && *i.HSN != "" && !hsnRE.MatchString(*i.HSN) {
		return apperror.NewValidation("invalid HSN/SAC code (must be 4-8 digits)").
			WithDetail("field", "hsn")
	}

	return nil
}
