package tax

import (
	"strings"

	"zenbill/internal/core/types"
)

// FormatAmount renders a monetary value with Indian digit grouping and
// fixed 2-decimal precision: 1234567.891 -> "12,34,567.89".
//
// Display-only: callers keep the unrounded decimal for further arithmetic
// and format at the output boundary.
func FormatAmount(m types.Money) string {
	s := m.StringFixed(2)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	intPart, fracPart, _ := strings.Cut(s, ".")
	grouped := groupIndian(intPart)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(grouped)
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatINR prepends the rupee symbol.
func FormatINR(m types.Money) string {
	return "₹" + FormatAmount(m)
}

// groupIndian inserts separators in the lakh/crore pattern: the last
// three digits form one group, the rest pair off in twos.
func groupIndian(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	head := digits[:n-3]
	tail := digits[n-3:]

	// Leading group of one or two digits, then pairs.
	lead := len(head) % 2
	if lead == 0 {
		lead = 2
	}
	b.WriteString(head[:lead])
	for i := lead; i < len(head); i += 2 {
		b.WriteByte(',')
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}
