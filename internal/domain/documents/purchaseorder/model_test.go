package purchaseorder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/tax"
)

func newTestPO() *PurchaseOrder {
	// vendor in Gujarat supplying an organization in Gujarat
	po := New("org-1", id.New(), "Gujarat", "Gujarat")
	po.AddLine(documents.Line{
		ItemID:   id.New(),
		ItemName: "Raw material",
		Quantity: 100,
		Rate:     90,
		TaxRate:  18,
	})
	return po
}

func TestPurchaseOrder_Recalc_FlatTDS(t *testing.T) {
	po := newTestPO()
	po.TDSMode = tax.ChargeFlat
	po.TDSValue = 50
	po.Recalc()

	// 9000 taxable + 1620 tax
	assert.Equal(t, "9000", po.Totals.SubTotal.String())
	assert.Equal(t, "10620", po.Totals.GrandTotal.String())
	// TDS reduces only the balance due
	assert.Equal(t, "10570", po.Totals.BalanceDue.String())
}

func TestPurchaseOrder_Recalc_RateTDS(t *testing.T) {
	po := newTestPO()
	po.TDSMode = tax.ChargeRate
	po.TDSValue = 2 // 2% of the 9000 post-discount subtotal
	po.Recalc()

	assert.Equal(t, "180", po.Totals.TDS.String())
	assert.Equal(t, "10620", po.Totals.GrandTotal.String())
	assert.Equal(t, "10440", po.Totals.BalanceDue.String())
}

func TestPurchaseOrder_Recalc_RateTDSStaysExact(t *testing.T) {
	// 0.1% of a subtotal with paise must resolve without binary float
	// rounding in the charge amount
	po := New("org-1", id.New(), "Gujarat", "Gujarat")
	po.AddLine(documents.Line{
		ItemID:   id.New(),
		ItemName: "Raw material",
		Quantity: 1,
		Rate:     1234.56,
		TaxRate:  18,
	})
	po.TDSMode = tax.ChargeRate
	po.TDSValue = 0.1
	po.Recalc()

	want := po.Totals.SubTotal.Mul(types.NewMoney(0.1)).Div(types.NewMoney(100))
	assert.True(t, po.Totals.TDS.Equal(want), "got %s want %s", po.Totals.TDS, want)
	assert.True(t, po.Totals.BalanceDue.Equal(po.Totals.GrandTotal.Sub(want)))
}

func TestPurchaseOrder_Recalc_TCSAddsToGrandTotal(t *testing.T) {
	po := newTestPO()
	po.TCSMode = tax.ChargeRate
	po.TCSValue = 1 // 1% of 9000
	po.Recalc()

	assert.Equal(t, "90", po.Totals.TCS.String())
	assert.Equal(t, "10710", po.Totals.GrandTotal.String())
	assert.True(t, po.Totals.BalanceDue.Equal(po.Totals.GrandTotal))
}

func TestPurchaseOrder_IntraStateSplit(t *testing.T) {
	po := newTestPO()
	po.Recalc()

	assert.Equal(t, "810", po.Totals.CGST.String())
	assert.Equal(t, "810", po.Totals.SGST.String())
	assert.True(t, po.Totals.IGST.IsZero())
}

func TestPurchaseOrder_Validate(t *testing.T) {
	po := newTestPO()
	po.Recalc()
	require.NoError(t, po.Validate(context.Background()))

	po.TDSValue = 50
	po.TCSValue = 25
	assert.Error(t, po.Validate(context.Background()), "TDS and TCS are mutually exclusive")

	po.TCSValue = 0
	po.VendorID = id.Nil()
	assert.Error(t, po.Validate(context.Background()))
}
