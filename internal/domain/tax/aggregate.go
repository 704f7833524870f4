package tax

import (
	"sort"

	"github.com/shopspring/decimal"

	"zenbill/internal/core/types"
)

var two = decimal.NewFromInt(2)

// Summary is the document-level aggregate over computed lines.
type Summary struct {
	// SubTotal is the post-discount, pre-tax sum of all lines.
	SubTotal types.Money `json:"subTotal"`

	// TotalTax is the sum of all line tax amounts.
	TotalTax types.Money `json:"totalTax"`
}

// Aggregate sums computed lines into the document summary.
func Aggregate(lines []LineResult) Summary {
	subTotal := decimal.Zero
	totalTax := decimal.Zero
	for _, l := range lines {
		subTotal = subTotal.Add(l.TaxableAmount)
		totalTax = totalTax.Add(l.TaxAmount)
	}
	return Summary{SubTotal: subTotal, TotalTax: totalTax}
}

// Split is the GST component breakdown. Exactly one of {CGST, SGST} or
// {IGST} is non-zero for a taxed document, never both.
type Split struct {
	CGST types.Money `json:"cgst"`
	SGST types.Money `json:"sgst"`
	IGST types.Money `json:"igst"`
}

// SplitTax distributes the aggregated document tax across GST components.
//
// The split is computed once per document from the aggregated total, not
// by summing per-line splits, to keep rounding behavior consistent.
func SplitTax(totalTax types.Money, regime Regime) Split {
	if regime == RegimeIntraState {
		half := totalTax.Div(two)
		return Split{CGST: half, SGST: half, IGST: decimal.Zero}
	}
	return Split{CGST: decimal.Zero, SGST: decimal.Zero, IGST: totalTax}
}

// RateBreakup is one row of the rate-wise tax summary shown on printed
// documents ("CGST 9% + SGST 9%", "IGST 18%", ...).
type RateBreakup struct {
	TaxRate       types.Money `json:"taxRate"`
	TaxableAmount types.Money `json:"taxableAmount"`
	Split
}

// BreakupByRate groups taxed lines by tax rate, sums each group's tax,
// then splits per group. Non-taxable lines and groups with zero tax are
// excluded. Never mix this granularity with the document-level SplitTax
// result within one rendering.
func BreakupByRate(lines []LineResult, regime Regime) []RateBreakup {
	type group struct {
		taxable decimal.Decimal
		tax     decimal.Decimal
	}
	groups := make(map[string]*group)
	rates := make(map[string]types.Money)

	for _, l := range lines {
		if l.NonTaxable || l.TaxRate.Sign() <= 0 {
			continue
		}
		key := l.TaxRate.String()
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			rates[key] = l.TaxRate
		}
		g.taxable = g.taxable.Add(l.TaxableAmount)
		g.tax = g.tax.Add(l.TaxAmount)
	}

	out := make([]RateBreakup, 0, len(groups))
	for key, g := range groups {
		if g.tax.Sign() == 0 {
			continue
		}
		out = append(out, RateBreakup{
			TaxRate:       rates[key],
			TaxableAmount: g.taxable,
			Split:         SplitTax(g.tax, regime),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].TaxRate.LessThan(out[j].TaxRate)
	})
	return out
}

// TotalsInput carries the document-level adjustments. Shipping and
// adjustment are raw caller input and are coerced before use. TCS and
// TDS must arrive as pre-resolved flat amounts (see ResolveCharge), so
// they stay decimal all the way through.
type TotalsInput struct {
	ShippingCharges float64
	Adjustment      float64
	TCS             types.Money
	TDS             types.Money
}

// Totals is the final document money summary.
type Totals struct {
	SubTotal types.Money `json:"subTotal"`
	TotalTax types.Money `json:"totalTax"`
	Split

	ShippingCharges types.Money `json:"shippingCharges"`
	Adjustment      types.Money `json:"adjustment"`
	TCS             types.Money `json:"tcs"`
	TDS             types.Money `json:"tds"`

	// GrandTotal = subTotal + totalTax + shipping + adjustment + tcs.
	GrandTotal types.Money `json:"grandTotal"`

	// BalanceDue = grandTotal - tds. TDS reduces the payable amount
	// but never the grand total itself.
	BalanceDue types.Money `json:"balanceDue"`

	// Display carries the headline amounts preformatted for UI and
	// print, Indian digit grouping with the rupee symbol.
	Display TotalsDisplay `json:"display"`
}

// TotalsDisplay holds formatted strings only; the decimal fields stay
// authoritative.
type TotalsDisplay struct {
	SubTotal   string `json:"subTotal"`
	TotalTax   string `json:"totalTax"`
	GrandTotal string `json:"grandTotal"`
	BalanceDue string `json:"balanceDue"`
}

// Equal reports whether two totals carry the same amounts. Values are
// compared as decimals, so "90" and "90.00" match.
func (t Totals) Equal(other Totals) bool {
	return t.SubTotal.Equal(other.SubTotal) &&
		t.TotalTax.Equal(other.TotalTax) &&
		t.CGST.Equal(other.CGST) &&
		t.SGST.Equal(other.SGST) &&
		t.IGST.Equal(other.IGST) &&
		t.ShippingCharges.Equal(other.ShippingCharges) &&
		t.Adjustment.Equal(other.Adjustment) &&
		t.TCS.Equal(other.TCS) &&
		t.TDS.Equal(other.TDS) &&
		t.GrandTotal.Equal(other.GrandTotal) &&
		t.BalanceDue.Equal(other.BalanceDue)
}

// ComputeTotals builds the document totals from the aggregated summary,
// the regime split and the document-level adjustments.
//
// Shipping and adjustment are untaxed and additive; adjustment may be
// negative. Shipping and TCS are clamped non-negative, TDS likewise.
func ComputeTotals(summary Summary, regime Regime, in TotalsInput) Totals {
	shipping := types.NewMoney(types.SafeFloat(in.ShippingCharges))
	if shipping.Sign() < 0 {
		shipping = decimal.Zero
	}
	adjustment := types.NewMoney(types.SafeFloat(in.Adjustment))
	tcs := in.TCS
	if tcs.Sign() < 0 {
		tcs = decimal.Zero
	}
	tds := in.TDS
	if tds.Sign() < 0 {
		tds = decimal.Zero
	}

	grand := summary.SubTotal.
		Add(summary.TotalTax).
		Add(shipping).
		Add(adjustment).
		Add(tcs)

	balance := grand.Sub(tds)

	return Totals{
		SubTotal:        summary.SubTotal,
		TotalTax:        summary.TotalTax,
		Split:           SplitTax(summary.TotalTax, regime),
		ShippingCharges: shipping,
		Adjustment:      adjustment,
		TCS:             tcs,
		TDS:             tds,
		GrandTotal:      grand,
		BalanceDue:      balance,
		Display: TotalsDisplay{
			SubTotal:   FormatINR(summary.SubTotal),
			TotalTax:   FormatINR(summary.TotalTax),
			GrandTotal: FormatINR(grand),
			BalanceDue: FormatINR(balance),
		},
	}
}

// ChargeMode selects how a TDS/TCS charge value is interpreted.
type ChargeMode string

const (
	// ChargeFlat uses the value as a currency amount.
	ChargeFlat ChargeMode = "flat"

	// ChargeRate applies the value as a percentage of the base.
	ChargeRate ChargeMode = "rate"
)

// ResolveCharge converts a flat-or-rate TDS/TCS charge into the flat
// amount ComputeTotals expects. Rate charges apply against the
// post-discount subtotal. The result is never negative.
func ResolveCharge(mode ChargeMode, value float64, base types.Money) types.Money {
	v := types.NewMoney(types.SafeFloat(value))
	if v.Sign() < 0 {
		return decimal.Zero
	}
	if mode == ChargeRate {
		return base.Mul(v).Div(hundred)
	}
	return v
}
