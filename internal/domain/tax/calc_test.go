package tax

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeLine_Basic(t *testing.T) {
	// 10 x 100, 10% discount, 18% GST
	res := ComputeLine(LineInput{
		Quantity:      10,
		Rate:          100,
		DiscountValue: 10,
		DiscountType:  DiscountPercentage,
		TaxRate:       18,
	}, DefaultOptions())

	assert.Equal(t, "1000", res.BaseAmount.String())
	assert.Equal(t, "100", res.DiscountAmount.String())
	assert.Equal(t, "900", res.TaxableAmount.String())
	assert.Equal(t, "162", res.TaxAmount.String())
	assert.Equal(t, "1062", res.LineTotal.String())
}

func TestComputeLine_PercentageClampedAt100(t *testing.T) {
	over := ComputeLine(LineInput{
		Quantity:      10,
		Rate:          100,
		DiscountValue: 200,
		DiscountType:  DiscountPercentage,
		TaxRate:       18,
	}, DefaultOptions())

	full := ComputeLine(LineInput{
		Quantity:      10,
		Rate:          100,
		DiscountValue: 100,
		DiscountType:  DiscountPercentage,
		TaxRate:       18,
	}, DefaultOptions())

	assert.True(t, over.DiscountAmount.Equal(full.DiscountAmount))
	assert.True(t, over.TaxableAmount.IsZero())
	assert.True(t, over.TaxAmount.IsZero())
	assert.True(t, over.LineTotal.IsZero())
}

func TestComputeLine_FlatDiscountClampedToBase(t *testing.T) {
	res := ComputeLine(LineInput{
		Quantity:      2,
		Rate:          50,
		DiscountValue: 500,
		DiscountType:  DiscountFlat,
		TaxRate:       18,
	}, DefaultOptions())

	assert.Equal(t, "100", res.DiscountAmount.String())
	assert.True(t, res.TaxableAmount.IsZero())
	assert.True(t, res.LineTotal.IsZero())
}

func TestComputeLine_NonTaxableSentinel(t *testing.T) {
	res := ComputeLine(LineInput{
		Quantity:   1,
		Rate:       100,
		TaxRate:    18,
		NonTaxable: true,
	}, DefaultOptions())

	assert.True(t, res.TaxAmount.IsZero())
	assert.True(t, res.LineTotal.Equal(res.TaxableAmount))
}

func TestComputeLine_ZeroAndNegativeTaxRate(t *testing.T) {
	for _, rate := range []float64{0, -5} {
		res := ComputeLine(LineInput{Quantity: 1, Rate: 100, TaxRate: rate}, DefaultOptions())
		assert.True(t, res.TaxAmount.IsZero(), "rate %v", rate)
	}
}

func TestComputeLine_QuantityPolicy(t *testing.T) {
	// Default policy: zero/invalid quantity coerced to 1.
	res := ComputeLine(LineInput{Quantity: 0, Rate: 250}, DefaultOptions())
	assert.Equal(t, "250", res.BaseAmount.String())

	res = ComputeLine(LineInput{Quantity: -3, Rate: 250}, DefaultOptions())
	assert.Equal(t, "250", res.BaseAmount.String())

	// Zero-quantity policy: zero stands as entered.
	res = ComputeLine(LineInput{Quantity: 0, Rate: 250}, Options{AllowZeroQuantity: true})
	assert.True(t, res.BaseAmount.IsZero())
}

func TestComputeLine_NonFiniteInputsCoercedToZero(t *testing.T) {
	inputs := []LineInput{
		{Quantity: math.NaN(), Rate: 100, TaxRate: 18},
		{Quantity: 1, Rate: math.Inf(1), TaxRate: 18},
		{Quantity: 1, Rate: 100, DiscountValue: math.NaN(), DiscountType: DiscountFlat, TaxRate: 18},
		{Quantity: 1, Rate: 100, TaxRate: math.Inf(-1)},
	}
	for i, in := range inputs {
		assert.NotPanics(t, func() {
			res := ComputeLine(in, DefaultOptions())
			assert.True(t, res.BaseAmount.Sign() >= 0, "case %d", i)
			assert.True(t, res.TaxableAmount.Sign() >= 0, "case %d", i)
			assert.True(t, res.TaxAmount.Sign() >= 0, "case %d", i)
		}, "case %d", i)
	}
}

func TestComputeLine_NonNegativity(t *testing.T) {
	cases := []LineInput{
		{Quantity: 10, Rate: 100, DiscountValue: 10, DiscountType: DiscountPercentage, TaxRate: 18},
		{Quantity: 0, Rate: 0},
		{Quantity: 1, Rate: 100, DiscountValue: 1000, DiscountType: DiscountFlat, TaxRate: 28},
		{Quantity: 5, Rate: -20, TaxRate: 5},
		{Quantity: 3, Rate: 99.99, DiscountValue: -5, DiscountType: DiscountPercentage, TaxRate: 12},
	}
	for i, in := range cases {
		res := ComputeLine(in, DefaultOptions())
		assert.True(t, res.DiscountAmount.LessThanOrEqual(res.BaseAmount), "case %d: discount <= base", i)
		assert.True(t, res.TaxableAmount.Sign() >= 0, "case %d: taxable >= 0", i)
		assert.True(t, res.TaxAmount.Sign() >= 0, "case %d: tax >= 0", i)
		assert.True(t, res.LineTotal.GreaterThanOrEqual(res.TaxableAmount), "case %d: total >= taxable", i)
	}
}

func TestComputeLine_Idempotence(t *testing.T) {
	in := LineInput{Quantity: 7, Rate: 123.45, DiscountValue: 12.5, DiscountType: DiscountPercentage, TaxRate: 18}
	a := ComputeLine(in, DefaultOptions())
	b := ComputeLine(in, DefaultOptions())
	assert.Equal(t, a, b)
}
