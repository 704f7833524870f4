package documents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/tax"
)

func sampleDoc() TradeDocument {
	d := NewTradeDocument("org-1", "Maharashtra", "Maharashtra")
	d.AddLine(Line{
		LineID:        id.New(),
		ItemID:        id.New(),
		ItemName:      "Widget",
		Quantity:      10,
		Rate:          100,
		DiscountValue: 10,
		DiscountType:  tax.DiscountPercentage,
		TaxRate:       18,
	})
	d.AddLine(Line{
		LineID:   id.New(),
		ItemID:   id.New(),
		ItemName: "Gadget",
		Quantity: 1,
		Rate:     500,
		TaxRate:  18,
	})
	return d
}

func TestRecalculate_IntraState(t *testing.T) {
	d := sampleDoc()
	d.ShippingCharges = 50
	d.Adjustment = -10

	d.Recalculate(tax.DefaultOptions(), types.Zero(), types.Zero())

	assert.Equal(t, "1400", d.Totals.SubTotal.String())
	assert.Equal(t, "252", d.Totals.TotalTax.String())
	assert.Equal(t, "126", d.Totals.CGST.String())
	assert.Equal(t, "126", d.Totals.SGST.String())
	assert.True(t, d.Totals.IGST.IsZero())
	assert.Equal(t, "1692", d.Totals.GrandTotal.String())

	// per-line derived amounts were written back
	assert.Equal(t, "900", d.Lines[0].TaxableAmount.String())
	assert.Equal(t, "162", d.Lines[0].TaxAmount.String())
	assert.Equal(t, 1, d.Lines[0].LineNo)
	assert.Equal(t, 2, d.Lines[1].LineNo)
}

func TestRecalculate_InterState(t *testing.T) {
	d := sampleDoc()
	d.DestinationState = "Karnataka"
	d.ShippingCharges = 50
	d.Adjustment = -10

	d.Recalculate(tax.DefaultOptions(), types.Zero(), types.Zero())

	assert.True(t, d.Totals.CGST.IsZero())
	assert.True(t, d.Totals.SGST.IsZero())
	assert.Equal(t, "252", d.Totals.IGST.String())
	assert.Equal(t, "1692", d.Totals.GrandTotal.String())
}

func TestRecalculate_Idempotent(t *testing.T) {
	d := sampleDoc()

	d.Recalculate(tax.DefaultOptions(), types.Zero(), types.Zero())
	first := d.Totals
	d.Recalculate(tax.DefaultOptions(), types.Zero(), types.Zero())

	assert.True(t, first.GrandTotal.Equal(d.Totals.GrandTotal))
	assert.True(t, first.SubTotal.Equal(d.Totals.SubTotal))
	assert.True(t, first.TotalTax.Equal(d.Totals.TotalTax))
}

func TestRecalculate_EditThenRecompute(t *testing.T) {
	d := sampleDoc()
	d.Recalculate(tax.DefaultOptions(), types.Zero(), types.Zero())
	before := d.Totals.GrandTotal

	// editing an input invalidates the snapshot until recalculation
	d.Lines[1].Rate = 1000
	d.Recalculate(tax.DefaultOptions(), types.Zero(), types.Zero())

	assert.False(t, before.Equal(d.Totals.GrandTotal))
	assert.Equal(t, "1900", d.Totals.SubTotal.String())
}

func TestTaxBreakup(t *testing.T) {
	d := NewTradeDocument("org-1", "Maharashtra", "Maharashtra")
	d.AddLine(Line{ItemID: id.New(), ItemName: "A", Quantity: 1, Rate: 1000, TaxRate: 18})
	d.AddLine(Line{ItemID: id.New(), ItemName: "B", Quantity: 1, Rate: 200, TaxRate: 5})
	d.Recalculate(tax.DefaultOptions(), types.Zero(), types.Zero())

	breakup := d.TaxBreakup()
	require.Len(t, breakup, 2)
	assert.Equal(t, "5", breakup[0].TaxRate.String())
	assert.Equal(t, "18", breakup[1].TaxRate.String())
}

func TestTradeDocument_Validate(t *testing.T) {
	d := NewTradeDocument("org-1", "Maharashtra", "Karnataka")
	err := d.Validate(context.Background())
	require.Error(t, err, "empty lines must be rejected")

	d.AddLine(Line{ItemID: id.New(), ItemName: "A", Quantity: 1, Rate: -5})
	err = d.Validate(context.Background())
	require.Error(t, err, "negative rate must be rejected")

	d.Lines[0].Rate = 5
	assert.NoError(t, d.Validate(context.Background()))
}

func TestAddLine_AssignsIdentity(t *testing.T) {
	d := NewTradeDocument("org-1", "A", "B")
	d.AddLine(Line{ItemID: id.New(), ItemName: "X", Quantity: 1, Rate: 10})

	assert.False(t, id.IsNil(d.Lines[0].LineID))
	assert.Equal(t, 1, d.Lines[0].LineNo)
}
