// Package report_repo provides PostgreSQL implementations for report
// repositories. Reports aggregate directly over the persisted totals
// and lines JSONB snapshots, so they always reflect what documents
// actually showed at save time.
package report_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"zenbill/internal/domain/reports"
	"zenbill/internal/infrastructure/storage/postgres"
)

// Ensure interface compliance
var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txManager *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txManager *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txManager: txManager}
}

// GetSalesSummary aggregates issued sales orders per day or per customer.
func (r *ReportRepo) GetSalesSummary(ctx context.Context, filter reports.SalesSummaryFilter) (*reports.SalesSummaryReport, error) {
	groupCols := "to_char(date, 'YYYY-MM-DD') AS period"
	groupBy := "GROUP BY period"
	orderBy := "ORDER BY period"
	if filter.GroupByCustomer {
		groupCols = "customer_id, customer_name"
		groupBy = "GROUP BY customer_id, customer_name"
		orderBy = "ORDER BY customer_name"
	}

	query := fmt.Sprintf(`
		SELECT
			%s,
			COUNT(*) AS document_count,
			COALESCE(SUM((totals->>'subTotal')::numeric), 0) AS sub_total,
			COALESCE(SUM((totals->>'totalTax')::numeric), 0) AS total_tax,
			COALESCE(SUM((totals->>'grandTotal')::numeric), 0) AS grand_total
		FROM doc_sales_orders
		WHERE deletion_mark = false
		  AND status = 'issued'
		  AND date >= $1 AND date < $2
	`, groupCols)

	args := []any{filter.FromDate, filter.ToDate}
	argIndex := 3

	if len(filter.CustomerIDs) > 0 {
		placeholders := make([]string, len(filter.CustomerIDs))
		for i, custID := range filter.CustomerIDs {
			placeholders[i] = fmt.Sprintf("$%d", argIndex)
			args = append(args, custID)
			argIndex++
		}
		query += fmt.Sprintf(" AND customer_id IN (%s)", strings.Join(placeholders, ","))
	}

	query += " " + groupBy + " " + orderBy

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	querier := r.txManager.GetQuerier(ctx)

	var rows []salesSummaryRow
	if err := pgxscan.Select(ctx, querier, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("sales summary: %w", err)
	}

	report := &reports.SalesSummaryReport{
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
		Rows:       make([]reports.SalesSummaryRow, 0, len(rows)),
		SubTotal:   decimal.Zero,
		TotalTax:   decimal.Zero,
		GrandTotal: decimal.Zero,
	}

	for _, row := range rows {
		out := reports.SalesSummaryRow{
			Period:        row.Period,
			DocumentCount: row.DocumentCount,
			SubTotal:      row.SubTotal,
			TotalTax:      row.TotalTax,
			GrandTotal:    row.GrandTotal,
		}
		if row.CustomerID != nil {
			out.CustomerID = *row.CustomerID
			out.CustomerName = row.CustomerName
		}
		report.Rows = append(report.Rows, out)

		report.SubTotal = report.SubTotal.Add(row.SubTotal)
		report.TotalTax = report.TotalTax.Add(row.TotalTax)
		report.GrandTotal = report.GrandTotal.Add(row.GrandTotal)
	}

	return report, nil
}

// GetTaxSummary builds the GST liability report for a period. It expands
// the line snapshots of issued sales orders and groups collected tax per
// rate, splitting each group CGST/SGST or IGST by the document's supply
// states.
func (r *ReportRepo) GetTaxSummary(ctx context.Context, filter reports.TaxSummaryFilter) (*reports.TaxSummaryReport, error) {
	query := `
		WITH expanded AS (
			SELECT
				(line->>'taxRate')::numeric AS tax_rate,
				(line->>'taxableAmount')::numeric AS taxable_amount,
				(line->>'taxAmount')::numeric AS tax_amount,
				d.source_state = d.destination_state AS intra_state
			FROM doc_sales_orders d,
			     jsonb_array_elements(d.lines) AS line
			WHERE d.deletion_mark = false
			  AND d.status = 'issued'
			  AND d.date >= $1 AND d.date < $2
			  AND COALESCE((line->>'nonTaxable')::boolean, false) = false
			  AND (line->>'taxRate')::numeric > 0
		)
		SELECT
			tax_rate,
			COALESCE(SUM(taxable_amount), 0) AS taxable_amount,
			COALESCE(SUM(tax_amount) FILTER (WHERE intra_state), 0) / 2 AS cgst,
			COALESCE(SUM(tax_amount) FILTER (WHERE intra_state), 0) / 2 AS sgst,
			COALESCE(SUM(tax_amount) FILTER (WHERE NOT intra_state), 0) AS igst
		FROM expanded
		GROUP BY tax_rate
		HAVING SUM(tax_amount) <> 0
		ORDER BY tax_rate
	`

	querier := r.txManager.GetQuerier(ctx)

	var rows []taxSummaryRow
	if err := pgxscan.Select(ctx, querier, &rows, query, filter.FromDate, filter.ToDate); err != nil {
		return nil, fmt.Errorf("tax summary: %w", err)
	}

	report := &reports.TaxSummaryReport{
		FromDate:  filter.FromDate,
		ToDate:    filter.ToDate,
		Rows:      make([]reports.TaxSummaryRow, 0, len(rows)),
		TotalCGST: decimal.Zero,
		TotalSGST: decimal.Zero,
		TotalIGST: decimal.Zero,
	}

	for _, row := range rows {
		rate, _ := row.TaxRate.Float64()
		report.Rows = append(report.Rows, reports.TaxSummaryRow{
			TaxRate:       rate,
			TaxableAmount: row.TaxableAmount,
			CGST:          row.CGST,
			SGST:          row.SGST,
			IGST:          row.IGST,
		})

		report.TotalCGST = report.TotalCGST.Add(row.CGST)
		report.TotalSGST = report.TotalSGST.Add(row.SGST)
		report.TotalIGST = report.TotalIGST.Add(row.IGST)
	}

	return report, nil
}

// journalSources maps doc type keys to their table and party name column.
var journalSources = []journalSource{
	{docType: "quote", table: "doc_quotes", partyName: "customer_name"},
	{docType: "sales_order", table: "doc_sales_orders", partyName: "customer_name"},
	{docType: "delivery_challan", table: "doc_delivery_challans", partyName: "customer_name"},
	{docType: "purchase_order", table: "doc_purchase_orders", partyName: "vendor_name"},
	{docType: "vendor_credit", table: "doc_vendor_credits", partyName: "vendor_name"},
	{docType: "payment", table: "doc_payments", partyName: "party_name"},
}

type journalSource struct {
	docType   string
	table     string
	partyName string
}

func selectedSources(docTypes []string) []journalSource {
	if len(docTypes) == 0 {
		return journalSources
	}
	wanted := make(map[string]bool, len(docTypes))
	for _, t := range docTypes {
		wanted[t] = true
	}
	var out []journalSource
	for _, src := range journalSources {
		if wanted[src.docType] {
			out = append(out, src)
		}
	}
	return out
}

// totalColumns returns the grand total and balance due expressions for a
// source. Payments carry a flat amount instead of a totals snapshot.
func (src journalSource) totalColumns() (grandTotal, balanceDue string) {
	if src.docType == "payment" {
		return "amount", "unused_amount"
	}
	return "COALESCE((totals->>'grandTotal')::numeric, 0)",
		"COALESCE((totals->>'balanceDue')::numeric, 0)"
}

// GetDocumentJournal retrieves documents of every selected type as one
// ordered list.
func (r *ReportRepo) GetDocumentJournal(ctx context.Context, filter reports.DocumentJournalFilter) (*reports.DocumentJournal, error) {
	sources := selectedSources(filter.DocTypes)
	if len(sources) == 0 {
		return &reports.DocumentJournal{Entries: []reports.DocumentJournalEntry{}}, nil
	}

	var unions []string
	var args []any
	argIndex := 1

	for _, src := range sources {
		grandTotal, balanceDue := src.totalColumns()
		q := fmt.Sprintf(`
			SELECT
				id, '%s' AS doc_type, number, date,
				COALESCE(%s, '') AS party_name, status,
				%s AS grand_total,
				%s AS balance_due
			FROM %s
			WHERE deletion_mark = false
		`, src.docType, src.partyName, grandTotal, balanceDue, src.table)

		if filter.FromDate != nil {
			q += fmt.Sprintf(" AND date >= $%d", argIndex)
			args = append(args, *filter.FromDate)
			argIndex++
		}
		if filter.ToDate != nil {
			q += fmt.Sprintf(" AND date < $%d", argIndex)
			args = append(args, *filter.ToDate)
			argIndex++
		}
		if len(filter.Statuses) > 0 {
			placeholders := make([]string, len(filter.Statuses))
			for i, status := range filter.Statuses {
				placeholders[i] = fmt.Sprintf("$%d", argIndex)
				args = append(args, status)
				argIndex++
			}
			q += fmt.Sprintf(" AND status IN (%s)", strings.Join(placeholders, ","))
		}
		if filter.Search != "" {
			pattern := "%" + filter.Search + "%"
			q += fmt.Sprintf(" AND (number ILIKE $%d OR COALESCE(%s, '') ILIKE $%d)",
				argIndex, src.partyName, argIndex+1)
			args = append(args, pattern, pattern)
			argIndex += 2
		}

		unions = append(unions, q)
	}

	base := strings.Join(unions, " UNION ALL ")

	querier := r.txManager.GetQuerier(ctx)

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM (" + base + ") j"
	if err := querier.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, fmt.Errorf("document journal count: %w", err)
	}

	query := base + " ORDER BY " + journalOrderBy(filter.SortBy, filter.SortOrder)
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	var entries []reports.DocumentJournalEntry
	if err := pgxscan.Select(ctx, querier, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("document journal: %w", err)
	}

	if entries == nil {
		entries = []reports.DocumentJournalEntry{}
	}

	return &reports.DocumentJournal{
		Entries:    entries,
		TotalCount: totalCount,
	}, nil
}

// GetDocumentTypeSummary returns counts and grand totals per document type.
func (r *ReportRepo) GetDocumentTypeSummary(ctx context.Context, filter reports.DocumentJournalFilter) ([]reports.DocumentTypeSummary, error) {
	sources := selectedSources(filter.DocTypes)
	querier := r.txManager.GetQuerier(ctx)

	result := make([]reports.DocumentTypeSummary, 0, len(sources))
	for _, src := range sources {
		grandTotal, _ := src.totalColumns()

		query := fmt.Sprintf(`
			SELECT COUNT(*), COALESCE(SUM(%s), 0)
			FROM %s
			WHERE deletion_mark = false
		`, grandTotal, src.table)

		var args []any
		argIndex := 1

		if filter.FromDate != nil {
			query += fmt.Sprintf(" AND date >= $%d", argIndex)
			args = append(args, *filter.FromDate)
			argIndex++
		}
		if filter.ToDate != nil {
			query += fmt.Sprintf(" AND date < $%d", argIndex)
			args = append(args, *filter.ToDate)
			argIndex++
		}
		if len(filter.Statuses) > 0 {
			placeholders := make([]string, len(filter.Statuses))
			for i, status := range filter.Statuses {
				placeholders[i] = fmt.Sprintf("$%d", argIndex)
				args = append(args, status)
				argIndex++
			}
			query += fmt.Sprintf(" AND status IN (%s)", strings.Join(placeholders, ","))
		}

		summary := reports.DocumentTypeSummary{DocType: src.docType}
		if err := querier.QueryRow(ctx, query, args...).Scan(&summary.Count, &summary.GrandTotal); err != nil {
			return nil, fmt.Errorf("document type summary for %s: %w", src.docType, err)
		}

		result = append(result, summary)
	}

	return result, nil
}

// journalOrderBy builds a whitelisted ORDER BY clause for the journal.
func journalOrderBy(sortBy, sortOrder string) string {
	column := "date"
	switch sortBy {
	case "number":
		column = "number"
	case "grand_total":
		column = "grand_total"
	case "date", "":
	}

	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}

	if column == "date" {
		return "date " + direction + ", number " + direction
	}
	return column + " " + direction
}
