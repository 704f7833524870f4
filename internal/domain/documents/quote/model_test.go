package quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/tax"
)

func newTestQuote() *Quote {
	q := New("org-1", id.New(), "Maharashtra", "Maharashtra")
	q.AddLine(documents.Line{
		ItemID:        id.New(),
		ItemName:      "Widget",
		Quantity:      10,
		Rate:          100,
		DiscountValue: 10,
		DiscountType:  tax.DiscountPercentage,
		TaxRate:       18,
	})
	q.Recalc()
	return q
}

func TestQuote_Recalc(t *testing.T) {
	q := newTestQuote()

	assert.Equal(t, "900", q.Totals.SubTotal.String())
	assert.Equal(t, "162", q.Totals.TotalTax.String())
	assert.Equal(t, "1062", q.Totals.GrandTotal.String())
	// sales-side documents never carry TDS/TCS
	assert.True(t, q.Totals.TDS.IsZero())
	assert.True(t, q.Totals.TCS.IsZero())
	assert.True(t, q.Totals.BalanceDue.Equal(q.Totals.GrandTotal))
}

func TestQuote_MarkConverted(t *testing.T) {
	q := newTestQuote()
	soID := id.New()

	require.NoError(t, q.MarkConverted(soID))
	assert.True(t, q.IsConverted())
	assert.Equal(t, soID, *q.ConvertedToID)

	// second conversion is rejected
	err := q.MarkConverted(id.New())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDocumentConverted, appErr.Code)
}

func TestQuote_MarkConverted_Cancelled(t *testing.T) {
	q := newTestQuote()
	require.NoError(t, q.Cancel())

	err := q.MarkConverted(id.New())
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDocumentCancelled, appErr.Code)
}

func TestQuote_Validate(t *testing.T) {
	q := newTestQuote()
	assert.NoError(t, q.Validate(context.Background()))

	q.CustomerID = id.Nil()
	assert.Error(t, q.Validate(context.Background()))
}

func TestQuote_ExpiryBeforeDateRejected(t *testing.T) {
	q := newTestQuote()
	past := q.Date.Add(-24 * time.Hour)
	q.ExpiryDate = &past

	assert.Error(t, q.Validate(context.Background()))
	assert.True(t, q.IsExpired())
}

func TestQuote_Clone(t *testing.T) {
	q := newTestQuote()
	require.NoError(t, q.MarkConverted(id.New()))

	cp := q.Clone()
	cp.Base().ResetAsCopy()
	cp.Recalc()

	assert.NotEqual(t, q.ID, cp.ID)
	assert.Empty(t, cp.Number)
	assert.False(t, cp.IsConverted())
	require.Len(t, cp.Lines, 1)
	assert.NotEqual(t, q.Lines[0].LineID, cp.Lines[0].LineID)
	assert.Equal(t, q.Lines[0].ItemID, cp.Lines[0].ItemID)
	assert.True(t, cp.Totals.GrandTotal.Equal(q.Totals.GrandTotal))
}
