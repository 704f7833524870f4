package tax

import "strings"

// Regime decides how the aggregated GST is split across components.
type Regime string

const (
	// RegimeIntraState supplies within one state: CGST + SGST.
	RegimeIntraState Regime = "intra-state"

	// RegimeInterState supplies across states: IGST.
	RegimeInterState Regime = "inter-state"
)

// ResolveRegime compares the supply states case-insensitively with
// whitespace normalization. Same state means intra-state supply.
func ResolveRegime(sourceState, destinationState string) Regime {
	if normalizeState(sourceState) == normalizeState(destinationState) {
		return RegimeIntraState
	}
	return RegimeInterState
}

func normalizeState(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
