package salesorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/documents/quote"
	"zenbill/internal/domain/tax"
)

func TestFromQuote(t *testing.T) {
	q := quote.New("org-1", id.New(), "Maharashtra", "Karnataka")
	q.CustomerName = "Acme Traders"
	q.ShippingCharges = 50
	q.Adjustment = -10
	q.AddLine(documents.Line{
		ItemID:        id.New(),
		ItemName:      "Widget",
		Quantity:      10,
		Rate:          100,
		DiscountValue: 10,
		DiscountType:  tax.DiscountPercentage,
		TaxRate:       18,
	})
	q.AddLine(documents.Line{
		ItemID:   id.New(),
		ItemName: "Gadget",
		Quantity: 1,
		Rate:     500,
		TaxRate:  18,
	})
	q.Recalc()

	so := FromQuote(q)

	require.Len(t, so.Lines, 2)
	assert.Equal(t, q.CustomerID, so.CustomerID)
	assert.Equal(t, "Acme Traders", so.CustomerName)
	assert.Equal(t, q.ID, *so.QuoteID)
	assert.Equal(t, entity.StatusDraft, so.Status)
	assert.NotEqual(t, q.ID, so.ID)
	assert.NotEqual(t, q.Lines[0].LineID, so.Lines[0].LineID, "lines get fresh identity")

	// the same calculation path produces identical totals
	assert.True(t, so.Totals.GrandTotal.Equal(q.Totals.GrandTotal))
	assert.True(t, so.Totals.IGST.Equal(q.Totals.IGST))
	assert.Equal(t, "1692", so.Totals.GrandTotal.String())
}

func TestFromQuote_LinesAreIndependent(t *testing.T) {
	q := quote.New("org-1", id.New(), "A", "A")
	q.AddLine(documents.Line{ItemID: id.New(), ItemName: "X", Quantity: 1, Rate: 100, TaxRate: 18})
	q.Recalc()

	so := FromQuote(q)
	so.Lines[0].Rate = 999
	so.Recalc()

	assert.Equal(t, float64(100), q.Lines[0].Rate)
	assert.False(t, so.Totals.GrandTotal.Equal(q.Totals.GrandTotal))
}
