// Package reports provides report generation services.
package reports

import (
	"time"

	"zenbill/internal/core/id"
	"zenbill/internal/core/types"
)

// --- Sales Summary Report ---

// SalesSummaryFilter defines filter for the sales summary report.
type SalesSummaryFilter struct {
	FromDate time.Time
	ToDate   time.Time

	// Filters
	CustomerIDs []id.ID

	// GroupByCustomer aggregates rows per customer instead of per day
	GroupByCustomer bool

	// Pagination
	Limit  int
	Offset int
}

// SalesSummaryRow is a single row in the sales summary report.
type SalesSummaryRow struct {
	Period        string      `json:"period,omitempty"`
	CustomerID    id.ID       `json:"customerId,omitempty"`
	CustomerName  string      `json:"customerName,omitempty"`
	DocumentCount int64       `json:"documentCount"`
	SubTotal      types.Money `json:"subTotal"`
	TotalTax      types.Money `json:"totalTax"`
	GrandTotal    types.Money `json:"grandTotal"`
}

// SalesSummaryReport is the full report payload.
type SalesSummaryReport struct {
	FromDate time.Time         `json:"fromDate"`
	ToDate   time.Time         `json:"toDate"`
	Rows     []SalesSummaryRow `json:"rows"`

	// Grand totals across all rows
	SubTotal   types.Money `json:"subTotal"`
	TotalTax   types.Money `json:"totalTax"`
	GrandTotal types.Money `json:"grandTotal"`
}

// --- GST Liability Report ---

// TaxSummaryFilter defines filter for the GST liability report.
type TaxSummaryFilter struct {
	FromDate time.Time
	ToDate   time.Time
}

// TaxSummaryRow aggregates collected GST per rate.
type TaxSummaryRow struct {
	TaxRate       float64     `json:"taxRate"`
	TaxableAmount types.Money `json:"taxableAmount"`
	CGST          types.Money `json:"cgst"`
	SGST          types.Money `json:"sgst"`
	IGST          types.Money `json:"igst"`
}

// TaxSummaryReport is the GST liability payload for a period.
type TaxSummaryReport struct {
	FromDate time.Time       `json:"fromDate"`
	ToDate   time.Time       `json:"toDate"`
	Rows     []TaxSummaryRow `json:"rows"`

	TotalCGST types.Money `json:"totalCgst"`
	TotalSGST types.Money `json:"totalSgst"`
	TotalIGST types.Money `json:"totalIgst"`
}

// --- Document Journal ---

// DocumentJournalFilter defines filter for the cross-type document list.
type DocumentJournalFilter struct {
	FromDate *time.Time
	ToDate   *time.Time

	// DocTypes limits the journal ("quote", "sales_order", ...)
	DocTypes []string

	// Statuses limits by lifecycle state
	Statuses []string

	// Search matches document number and party name
	Search string

	SortBy    string // date, number, grand_total
	SortOrder string // asc, desc

	Limit  int
	Offset int
}

// DocumentJournalEntry is one row of the journal.
type DocumentJournalEntry struct {
	ID         id.ID       `json:"id"`
	DocType    string      `json:"docType"`
	Number     string      `json:"number"`
	Date       time.Time   `json:"date"`
	PartyName  string      `json:"partyName,omitempty"`
	Status     string      `json:"status"`
	GrandTotal types.Money `json:"grandTotal"`
	BalanceDue types.Money `json:"balanceDue"`
}

// DocumentTypeSummary aggregates the journal per document type.
type DocumentTypeSummary struct {
	DocType    string      `json:"docType"`
	Count      int64       `json:"count"`
	GrandTotal types.Money `json:"grandTotal"`
}

// DocumentJournal is the journal payload.
type DocumentJournal struct {
	Entries    []DocumentJournalEntry `json:"entries"`
	TotalCount int64                  `json:"totalCount"`
	Summary    []DocumentTypeSummary  `json:"summary,omitempty"`
}
