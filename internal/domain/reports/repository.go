package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	// Sales reports
	GetSalesSummary(ctx context.Context, filter SalesSummaryFilter) (*SalesSummaryReport, error)

	// GST liability
	GetTaxSummary(ctx context.Context, filter TaxSummaryFilter) (*TaxSummaryReport, error)

	// Document journal
	GetDocumentJournal(ctx context.Context, filter DocumentJournalFilter) (*DocumentJournal, error)
	GetDocumentTypeSummary(ctx context.Context, filter DocumentJournalFilter) ([]DocumentTypeSummary, error)
}
