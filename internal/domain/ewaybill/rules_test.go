package ewaybill

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleEngine_DefaultThreshold(t *testing.T) {
	engine := MustNewRuleEngine(DefaultRule)

	cases := []struct {
		grandTotal float64
		want       bool
	}{
		{49999.99, false},
		{50000, true},
		{150000, true},
		{0, false},
	}
	for _, tc := range cases {
		got, err := engine.Required(RuleInput{GrandTotal: tc.grandTotal})
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "grandTotal %v", tc.grandTotal)
	}
}

func TestRuleEngine_CustomExpression(t *testing.T) {
	// stricter rule: any inter-state movement, or intra-state above threshold
	engine := MustNewRuleEngine(`interState || grandTotal >= 50000.0`)

	got, err := engine.Required(RuleInput{GrandTotal: 100, InterState: true})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = engine.Required(RuleInput{GrandTotal: 100, InterState: false})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestRuleEngine_DocTypeAndDistance(t *testing.T) {
	engine := MustNewRuleEngine(`docType == "delivery_challan" && distanceKm > 10.0`)

	got, err := engine.Required(RuleInput{DocType: "delivery_challan", DistanceKm: 50})
	require.NoError(t, err)
	assert.True(t, got)

	got, err = engine.Required(RuleInput{DocType: "quote", DistanceKm: 50})
	require.NoError(t, err)
	assert.False(t, got)
}

func TestNewRuleEngine_RejectsNonBoolean(t *testing.T) {
	_, err := NewRuleEngine(`grandTotal + 1.0`)
	assert.Error(t, err)
}

func TestNewRuleEngine_RejectsInvalidSyntax(t *testing.T) {
	_, err := NewRuleEngine(`grandTotal >=`)
	assert.Error(t, err)
}

func TestValidity(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, from.Add(24*time.Hour), Validity(from, 0))
	assert.Equal(t, from.Add(24*time.Hour), Validity(from, 199))
	assert.Equal(t, from.Add(48*time.Hour), Validity(from, 200))
	assert.Equal(t, from.Add(72*time.Hour), Validity(from, 450))
}
