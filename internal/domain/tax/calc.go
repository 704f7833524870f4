// Package tax implements the line-item tax and totals calculation engine
// shared by every transactional document type (quotes, sales orders,
// delivery challans, purchase orders, vendor credits).
//
// All functions are pure: they never fail, never mutate their inputs, and
// coerce non-finite numeric inputs to zero so that a single bad field
// cannot corrupt a document total. Arithmetic runs on decimals end to end;
// rounding happens only at the display boundary (see format.go).
package tax

import (
	"github.com/shopspring/decimal"

	"zenbill/internal/core/types"
)

// DiscountType selects how a line discount is interpreted.
type DiscountType string

const (
	// DiscountPercentage applies discountValue as a percentage of the
	// base amount, clamped to 100.
	DiscountPercentage DiscountType = "percentage"

	// DiscountFlat applies discountValue as a currency amount.
	DiscountFlat DiscountType = "flat"
)

var hundred = decimal.NewFromInt(100)

// LineInput is a single document line before calculation.
// Numeric fields are raw user/caller input and may be NaN or infinite;
// ComputeLine coerces them before use.
type LineInput struct {
	Quantity      float64
	Rate          float64
	DiscountValue float64
	DiscountType  DiscountType

	// TaxRate is a percentage (0/5/12/18/28, ...). Ignored when
	// NonTaxable is set.
	TaxRate float64

	// NonTaxable marks the line as exempt. Distinct from a 0% rate:
	// a 0% line still participates in rate-wise breakups.
	NonTaxable bool
}

// LineResult holds the derived amounts for one line.
// TaxRate is carried through for rate-wise grouping.
type LineResult struct {
	BaseAmount     types.Money `json:"baseAmount"`
	DiscountAmount types.Money `json:"discountAmount"`
	TaxableAmount  types.Money `json:"taxableAmount"`
	TaxAmount      types.Money `json:"taxAmount"`
	LineTotal      types.Money `json:"lineTotal"`
	TaxRate        types.Money `json:"taxRate"`
	NonTaxable     bool        `json:"nonTaxable"`
}

// Options parameterizes the dimensions that legitimately differ between
// document flows.
type Options struct {
	// AllowZeroQuantity keeps a zero quantity as entered. When false,
	// a zero, negative or non-finite quantity defaults to 1.
	AllowZeroQuantity bool
}

// DefaultOptions is the sales-flow policy: quantity defaults to 1.
func DefaultOptions() Options {
	return Options{}
}

// ComputeLine derives the monetary amounts for one line.
//
// Steps: base = quantity * rate; discount per type (percentage clamped at
// 100); discount clamped to base; taxable = max(0, base - discount);
// tax = taxable * rate / 100 unless the line is non-taxable or the rate
// is not positive; total = taxable + tax.
func ComputeLine(in LineInput, opts Options) LineResult {
	quantity := types.NewMoney(types.SafeFloat(in.Quantity))
	if quantity.Sign() <= 0 {
		if opts.AllowZeroQuantity {
			quantity = decimal.Zero
		} else {
			quantity = decimal.NewFromInt(1)
		}
	}

	rate := types.NewMoney(types.SafeFloat(in.Rate))
	if rate.Sign() < 0 {
		rate = decimal.Zero
	}

	base := quantity.Mul(rate)

	discountValue := types.NewMoney(types.SafeFloat(in.DiscountValue))
	if discountValue.Sign() < 0 {
		discountValue = decimal.Zero
	}

	var discount decimal.Decimal
	if in.DiscountType == DiscountPercentage {
		if discountValue.GreaterThan(hundred) {
			discountValue = hundred
		}
		discount = base.Mul(discountValue).Div(hundred)
	} else {
		discount = discountValue
	}

	// Discount can never exceed the line's base amount.
	if discount.GreaterThan(base) {
		discount = base
	}

	taxable := base.Sub(discount)
	if taxable.Sign() < 0 {
		taxable = decimal.Zero
	}

	taxRate := types.NewMoney(types.SafeFloat(in.TaxRate))
	var taxAmount decimal.Decimal
	if !in.NonTaxable && taxRate.Sign() > 0 {
		taxAmount = taxable.Mul(taxRate).Div(hundred)
	} else {
		taxAmount = decimal.Zero
	}

	return LineResult{
		BaseAmount:     base,
		DiscountAmount: discount,
		TaxableAmount:  taxable,
		TaxAmount:      taxAmount,
		LineTotal:      taxable.Add(taxAmount),
		TaxRate:        taxRate,
		NonTaxable:     in.NonTaxable,
	}
}

// ComputeLines runs ComputeLine over a slice, preserving order.
func ComputeLines(in []LineInput, opts Options) []LineResult {
	out := make([]LineResult, len(in))
	for i, line := range in {
		out[i] = ComputeLine(line, opts)
	}
	return out
}
