package report_repo

import (
	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
)

// salesSummaryRow is the raw scan target for the sales summary query.
// CustomerID is nil when grouping by period.
type salesSummaryRow struct {
	Period        string      `db:"period"`
	CustomerID    *id.ID      `db:"customer_id"`
	CustomerName  string      `db:"customer_name"`
	DocumentCount int64       `db:"document_count"`
	SubTotal      types.Money `db:"sub_total"`
	TotalTax      types.Money `db:"total_tax"`
	GrandTotal    types.Money `db:"grand_total"`
}

// taxSummaryRow is the raw scan target for the GST liability query.
type taxSummaryRow struct {
	TaxRate       types.Money `db:"tax_rate"`
	TaxableAmount types.Money `db:"taxable_amount"`
	CGST          types.Money `db:"cgst"`
	SGST          types.Money `db:"sgst"`
	IGST          types.Money `db:"igst"`
}
