package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenbill/internal/core/types"
)

// twoLineDoc builds the reference document used by several tests:
// line 1: 10 x 100 @ 10% discount, 18% GST (taxable 900, tax 162)
// line 2: 1 x 500, 18% GST (taxable 500, tax 90)
func twoLineDoc(t *testing.T) []LineResult {
	t.Helper()
	lines := ComputeLines([]LineInput{
		{Quantity: 10, Rate: 100, DiscountValue: 10, DiscountType: DiscountPercentage, TaxRate: 18},
		{Quantity: 1, Rate: 500, TaxRate: 18},
	}, DefaultOptions())
	require.Len(t, lines, 2)
	return lines
}

func TestAggregate(t *testing.T) {
	summary := Aggregate(twoLineDoc(t))

	assert.Equal(t, "1400", summary.SubTotal.String())
	assert.Equal(t, "252", summary.TotalTax.String())
}

func TestAggregate_MatchesLineSums(t *testing.T) {
	lines := ComputeLines([]LineInput{
		{Quantity: 3, Rate: 33.33, TaxRate: 5},
		{Quantity: 2, Rate: 149.99, DiscountValue: 7, DiscountType: DiscountPercentage, TaxRate: 12},
		{Quantity: 1, Rate: 80, NonTaxable: true},
	}, DefaultOptions())

	summary := Aggregate(lines)

	sub := types.Zero()
	tax := types.Zero()
	for _, l := range lines {
		sub = sub.Add(l.TaxableAmount)
		tax = tax.Add(l.TaxAmount)
	}
	assert.True(t, summary.SubTotal.Equal(sub))
	assert.True(t, summary.TotalTax.Equal(tax))
}

func TestSplitTax_IntraState(t *testing.T) {
	split := SplitTax(types.NewMoney(252), RegimeIntraState)

	assert.Equal(t, "126", split.CGST.String())
	assert.Equal(t, "126", split.SGST.String())
	assert.True(t, split.IGST.IsZero())
	assert.True(t, split.CGST.Equal(split.SGST))
}

func TestSplitTax_InterState(t *testing.T) {
	split := SplitTax(types.NewMoney(252), RegimeInterState)

	assert.True(t, split.CGST.IsZero())
	assert.True(t, split.SGST.IsZero())
	assert.Equal(t, "252", split.IGST.String())
}

func TestSplitTax_Additivity(t *testing.T) {
	for _, tax := range []float64{0, 252, 99.99, 0.01, 1234567.89} {
		for _, regime := range []Regime{RegimeIntraState, RegimeInterState} {
			total := types.NewMoney(tax)
			split := SplitTax(total, regime)
			sum := split.CGST.Add(split.SGST).Add(split.IGST)
			assert.True(t, sum.Equal(total), "tax %v regime %s: %s != %s", tax, regime, sum, total)
		}
	}
}

func TestResolveRegime(t *testing.T) {
	cases := []struct {
		source, dest string
		want         Regime
	}{
		{"Maharashtra", "Maharashtra", RegimeIntraState},
		{"maharashtra", "MAHARASHTRA", RegimeIntraState},
		{"  Tamil  Nadu ", "tamil nadu", RegimeIntraState},
		{"Maharashtra", "Karnataka", RegimeInterState},
		{"", "Karnataka", RegimeInterState},
		{"", "", RegimeIntraState},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveRegime(tc.source, tc.dest), "%q vs %q", tc.source, tc.dest)
	}
}

func TestComputeTotals_IntraState(t *testing.T) {
	summary := Aggregate(twoLineDoc(t))

	totals := ComputeTotals(summary, RegimeIntraState, TotalsInput{
		ShippingCharges: 50,
		Adjustment:      -10,
	})

	assert.Equal(t, "126", totals.CGST.String())
	assert.Equal(t, "126", totals.SGST.String())
	assert.True(t, totals.IGST.IsZero())
	assert.Equal(t, "1692", totals.GrandTotal.String())
	assert.Equal(t, "1692", totals.BalanceDue.String())
	assert.Equal(t, "₹1,692.00", totals.Display.GrandTotal)
	assert.Equal(t, "₹1,400.00", totals.Display.SubTotal)
}

func TestComputeTotals_InterState(t *testing.T) {
	summary := Aggregate(twoLineDoc(t))

	totals := ComputeTotals(summary, RegimeInterState, TotalsInput{
		ShippingCharges: 50,
		Adjustment:      -10,
	})

	assert.True(t, totals.CGST.IsZero())
	assert.True(t, totals.SGST.IsZero())
	assert.Equal(t, "252", totals.IGST.String())
	assert.Equal(t, "1692", totals.GrandTotal.String())
}

func TestComputeTotals_TDSReducesBalanceNotGrandTotal(t *testing.T) {
	summary := Aggregate(twoLineDoc(t))

	with := ComputeTotals(summary, RegimeIntraState, TotalsInput{TDS: types.NewMoney(50)})
	without := ComputeTotals(summary, RegimeIntraState, TotalsInput{})

	assert.True(t, with.GrandTotal.Equal(without.GrandTotal))
	assert.True(t, with.BalanceDue.Equal(with.GrandTotal.Sub(types.NewMoney(50))))
}

func TestComputeTotals_TCSAddsToGrandTotal(t *testing.T) {
	summary := Aggregate(twoLineDoc(t))

	with := ComputeTotals(summary, RegimeIntraState, TotalsInput{TCS: types.NewMoney(25)})
	without := ComputeTotals(summary, RegimeIntraState, TotalsInput{})

	assert.True(t, with.GrandTotal.Equal(without.GrandTotal.Add(types.NewMoney(25))))
	assert.True(t, with.BalanceDue.Equal(with.GrandTotal))
}

func TestComputeTotals_NegativeChargesClamped(t *testing.T) {
	summary := Aggregate(twoLineDoc(t))

	totals := ComputeTotals(summary, RegimeIntraState, TotalsInput{
		ShippingCharges: -50,
		TCS:             types.NewMoney(-10),
		TDS:             types.NewMoney(-5),
	})

	assert.True(t, totals.ShippingCharges.IsZero())
	assert.True(t, totals.TCS.IsZero())
	assert.True(t, totals.TDS.IsZero())
	assert.True(t, totals.GrandTotal.Equal(totals.BalanceDue))
}

func TestBreakupByRate(t *testing.T) {
	lines := ComputeLines([]LineInput{
		{Quantity: 1, Rate: 1000, TaxRate: 18},
		{Quantity: 1, Rate: 500, TaxRate: 18},
		{Quantity: 1, Rate: 200, TaxRate: 5},
		{Quantity: 1, Rate: 100, NonTaxable: true},
		{Quantity: 1, Rate: 100, TaxRate: 0},
	}, DefaultOptions())

	breakup := BreakupByRate(lines, RegimeIntraState)
	require.Len(t, breakup, 2)

	// sorted ascending by rate
	assert.Equal(t, "5", breakup[0].TaxRate.String())
	assert.Equal(t, "200", breakup[0].TaxableAmount.String())
	assert.Equal(t, "5", breakup[0].CGST.String())
	assert.Equal(t, "5", breakup[0].SGST.String())

	assert.Equal(t, "18", breakup[1].TaxRate.String())
	assert.Equal(t, "1500", breakup[1].TaxableAmount.String())
	assert.Equal(t, "135", breakup[1].CGST.String())
	assert.Equal(t, "135", breakup[1].SGST.String())
	assert.True(t, breakup[1].IGST.IsZero())
}

func TestBreakupByRate_InterState(t *testing.T) {
	lines := ComputeLines([]LineInput{
		{Quantity: 1, Rate: 1000, TaxRate: 18},
		{Quantity: 1, Rate: 200, TaxRate: 5},
	}, DefaultOptions())

	breakup := BreakupByRate(lines, RegimeInterState)
	require.Len(t, breakup, 2)

	for _, row := range breakup {
		assert.True(t, row.CGST.IsZero())
		assert.True(t, row.SGST.IsZero())
		assert.True(t, row.IGST.Sign() > 0)
	}
}

func TestBreakupByRate_SumMatchesDocumentSplit(t *testing.T) {
	lines := ComputeLines([]LineInput{
		{Quantity: 2, Rate: 450, TaxRate: 18},
		{Quantity: 1, Rate: 330, TaxRate: 12},
		{Quantity: 4, Rate: 75, TaxRate: 5},
	}, DefaultOptions())

	summary := Aggregate(lines)
	doc := SplitTax(summary.TotalTax, RegimeIntraState)

	sum := types.Zero()
	for _, row := range BreakupByRate(lines, RegimeIntraState) {
		sum = sum.Add(row.CGST).Add(row.SGST).Add(row.IGST)
	}
	assert.True(t, sum.Equal(doc.CGST.Add(doc.SGST).Add(doc.IGST)))
}

func TestResolveCharge(t *testing.T) {
	base := types.NewMoney(10000)

	assert.Equal(t, "150", ResolveCharge(ChargeFlat, 150, base).String())
	assert.Equal(t, "100", ResolveCharge(ChargeRate, 1, base).String())
	assert.True(t, ResolveCharge(ChargeFlat, -20, base).IsZero())
	assert.True(t, ResolveCharge(ChargeRate, 0, base).IsZero())
}
