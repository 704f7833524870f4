package documents

import (
	"context"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/entity"
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/tax"
)

// TradeDocument is the common base for every document that carries line
// items: quotes, sales orders, delivery challans, purchase orders and
// vendor credits. It owns the one recalculation path all flows share.
type TradeDocument struct {
	entity.Document

	// SourceState and DestinationState decide the GST regime. For sales
	// documents the source is the organization state; for purchases the
	// source is the vendor state.
	SourceState      string `db:"source_state" json:"sourceState"`
	DestinationState string `db:"destination_state" json:"destinationState"`

	// ShippingCharges is untaxed and additive (clamped non-negative)
	ShippingCharges float64 `db:"shipping_charges" json:"shippingCharges"`

	// Adjustment is untaxed, additive and may be negative
	Adjustment       float64 `db:"adjustment" json:"adjustment"`
	AdjustmentReason string  `db:"adjustment_reason" json:"adjustmentReason,omitempty"`

	// Lines is the item table, stored as JSONB
	Lines []Line `db:"lines" json:"lines"`

	// Totals is the computed money snapshot. It is recomputed on every
	// edit and serialized at save time; the persisted copy is a snapshot
	// that goes stale if lines change without recalculation.
	Totals tax.Totals `db:"totals" json:"totals"`
}

// NewTradeDocument creates an empty draft document base.
func NewTradeDocument(organizationID, sourceState, destinationState string) TradeDocument {
	return TradeDocument{
		Document:         entity.NewDocument(organizationID),
		SourceState:      sourceState,
		DestinationState: destinationState,
		Lines:            make([]Line, 0),
	}
}

// Regime resolves the GST regime from the document's supply states.
func (d *TradeDocument) Regime() tax.Regime {
	return tax.ResolveRegime(d.SourceState, d.DestinationState)
}

// Recalculate recomputes every derived amount from the current inputs:
// per-line amounts, the document summary, the GST split and the final
// totals. tcs and tds arrive as pre-resolved flat amounts; sales-side
// documents pass zero for both.
func (d *TradeDocument) Recalculate(opts tax.Options, tcs, tds types.Money) {
	for i := range d.Lines {
		d.Lines[i].LineNo = i + 1
		d.Lines[i].LineResult = tax.ComputeLine(d.Lines[i].Input(), opts)
	}

	results := make([]tax.LineResult, len(d.Lines))
	for i := range d.Lines {
		results[i] = d.Lines[i].LineResult
	}

	summary := tax.Aggregate(results)
	d.Totals = tax.ComputeTotals(summary, d.Regime(), tax.TotalsInput{
		ShippingCharges: d.ShippingCharges,
		Adjustment:      d.Adjustment,
		TCS:             tcs,
		TDS:             tds,
	})
}

// TotalsSnapshot returns the persisted money summary.
func (d *TradeDocument) TotalsSnapshot() tax.Totals {
	return d.Totals
}

// TaxBreakup returns the rate-wise GST summary for printing.
func (d *TradeDocument) TaxBreakup() []tax.RateBreakup {
	results := make([]tax.LineResult, len(d.Lines))
	for i := range d.Lines {
		results[i] = d.Lines[i].LineResult
	}
	return tax.BreakupByRate(results, d.Regime())
}

// AddLine appends a line. The caller recalculates afterwards.
func (d *TradeDocument) AddLine(line Line) {
	if id.IsNil(line.LineID) {
		line.LineID = id.New()
	}
	line.LineNo = len(d.Lines) + 1
	d.Lines = append(d.Lines, line)
}

// Validate implements entity.Validatable.
func (d *TradeDocument) Validate(ctx context.Context) error {
	if err := d.Document.Validate(ctx); err != nil {
		return err
	}

	if len(d.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range d.Lines {
		if id.IsNil(line.ItemID) && line.ItemName == "" {
			return apperror.NewValidation("item is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity < 0 {
			return apperror.NewValidation("quantity cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Rate < 0 {
			return apperror.NewValidation("rate cannot be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}
