package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"zenbill/internal/core/types"
)

func TestFormatAmount_IndianGrouping(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999, "999.00"},
		{1000, "1,000.00"},
		{12345, "12,345.00"},
		{123456, "1,23,456.00"},
		{1234567.891, "12,34,567.89"},
		{12345678, "1,23,45,678.00"},
		{-123456.5, "-1,23,456.50"},
		{1692, "1,692.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatAmount(types.NewMoney(tc.in)), "input %v", tc.in)
	}
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹1,23,456.00", FormatINR(types.NewMoney(123456)))
}
