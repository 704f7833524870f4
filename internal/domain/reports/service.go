package reports

import (
	"context"
	"fmt"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetSalesSummary generates the sales summary report.
func (s *Service) GetSalesSummary(ctx context.Context, filter SalesSummaryFilter) (*SalesSummaryReport, error) {
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, fmt.Errorf("fromDate and toDate are required")
	}
	if filter.FromDate.After(filter.ToDate) {
		return nil, fmt.Errorf("fromDate must be before toDate")
	}

	// Set default pagination
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetSalesSummary(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get sales summary: %w", err)
	}

	return report, nil
}

// GetTaxSummary generates the GST liability report for a period.
func (s *Service) GetTaxSummary(ctx context.Context, filter TaxSummaryFilter) (*TaxSummaryReport, error) {
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, fmt.Errorf("fromDate and toDate are required")
	}
	if filter.FromDate.After(filter.ToDate) {
		return nil, fmt.Errorf("fromDate must be before toDate")
	}

	report, err := s.repo.GetTaxSummary(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get tax summary: %w", err)
	}

	return report, nil
}

// GetDocumentJournal returns the cross-type document journal.
func (s *Service) GetDocumentJournal(ctx context.Context, filter DocumentJournalFilter) (*DocumentJournal, error) {
	// Set default pagination
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	// Default sort
	if filter.SortBy == "" {
		filter.SortBy = "date"
	}
	if filter.SortOrder == "" {
		filter.SortOrder = "desc"
	}

	journal, err := s.repo.GetDocumentJournal(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get document journal: %w", err)
	}

	// Attach the per-type summary on the first page only
	if filter.Offset == 0 {
		summary, err := s.repo.GetDocumentTypeSummary(ctx, filter)
		if err == nil {
			journal.Summary = summary
		}
	}

	return journal, nil
}
