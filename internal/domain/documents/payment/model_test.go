package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
)

func TestPayment_AllocateAndRecalc(t *testing.T) {
	p := New("org-1", KindReceived, id.New(), 1000)
	p.Recalc()
	assert.Equal(t, "1000", p.UnusedAmount.String())

	require.NoError(t, p.Allocate(id.New(), "sales_order", types.NewMoney(600)))
	assert.Equal(t, "400", p.UnusedAmount.String())

	require.NoError(t, p.Allocate(id.New(), "sales_order", types.NewMoney(400)))
	assert.True(t, p.UnusedAmount.IsZero())

	// over-allocation is rejected
	err := p.Allocate(id.New(), "sales_order", types.NewMoney(1))
	assert.Error(t, err)
}

func TestPayment_Validate(t *testing.T) {
	p := New("org-1", KindMade, id.New(), 500)
	require.NoError(t, p.Validate(context.Background()))

	p.Amount = types.NewMoney(0)
	assert.Error(t, p.Validate(context.Background()))

	p.Amount = types.NewMoney(500)
	p.Kind = "refund"
	assert.Error(t, p.Validate(context.Background()))
}

func TestPayment_AllocationsCannotExceedAmount(t *testing.T) {
	p := New("org-1", KindReceived, id.New(), 100)
	p.Allocations = []Allocation{
		{DocumentID: id.New(), DocumentType: "sales_order", Amount: types.NewMoney(80)},
		{DocumentID: id.New(), DocumentType: "sales_order", Amount: types.NewMoney(40)},
	}
	assert.Error(t, p.Validate(context.Background()))
}
