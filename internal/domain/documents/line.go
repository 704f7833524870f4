// Package documents provides the shared building blocks for all
// transactional document types: the line item value object, the trade
// document base with its single recalculation path, and a generic
// service for document CRUD and lifecycle.
package documents

import (
	"zenbill/internal/core/id"
	"zenbill/internal/domain/tax"
)

// Line is one row of a document's item table. Input fields come from the
// item master merged with user edits; derived amounts are recomputed on
// every edit and are never independent truth.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	// Item reference and denormalized display fields
	ItemID      id.ID  `db:"item_id" json:"itemId"`
	ItemName    string `db:"item_name" json:"itemName"`
	Description string `db:"description" json:"description,omitempty"`
	HSN         string `db:"hsn" json:"hsn,omitempty"`
	Unit        string `db:"unit" json:"unit,omitempty"`

	// Calculation inputs
	Quantity      float64          `db:"quantity" json:"quantity"`
	Rate          float64          `db:"rate" json:"rate"`
	DiscountValue float64          `db:"discount_value" json:"discountValue"`
	DiscountType  tax.DiscountType `db:"discount_type" json:"discountType"`
	TaxRate       float64          `db:"tax_rate" json:"taxRate"`
	TaxName       string           `db:"tax_name" json:"taxName,omitempty"`
	NonTaxable    bool             `db:"non_taxable" json:"nonTaxable"`

	// Derived amounts, recomputed via Recalculate
	tax.LineResult
}

// Input converts the line to the calculation engine's input shape.
func (l *Line) Input() tax.LineInput {
	return tax.LineInput{
		Quantity:      l.Quantity,
		Rate:          l.Rate,
		DiscountValue: l.DiscountValue,
		DiscountType:  l.DiscountType,
		TaxRate:       l.TaxRate,
		NonTaxable:    l.NonTaxable,
	}
}

// NewLine creates a line with a generated ID.
func NewLine(itemID id.ID, name string, quantity, rate, taxRate float64) Line {
	return Line{
		LineID:   id.New(),
		ItemID:   itemID,
		ItemName: name,
		Quantity: quantity,
		Rate:     rate,
		TaxRate:  taxRate,
	}
}

// CloneLines copies a table part for a copied document. Every line gets
// a fresh line ID so the copy and the original never share identifiers.
func CloneLines(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	for i := range out {
		out[i].LineID = id.New()
	}
	return out
}
