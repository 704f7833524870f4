package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/domain"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/ewaybill"
	"zenbill/internal/infrastructure/storage/postgres"
)

const eWayBillsTable = "doc_eway_bills"

// Compile-time check.
var _ ewaybill.Repository = (*EWayBillRepo)(nil)

// EWayBillRepo implements ewaybill.Repository.
type EWayBillRepo struct {
	*BaseDocumentRepo[*ewaybill.EWayBill]
	txManager *postgres.TxManager
}

// NewEWayBillRepo creates a new e-way bill repository.
func NewEWayBillRepo(txManager *postgres.TxManager) *EWayBillRepo {
	return &EWayBillRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*ewaybill.EWayBill](
			txManager,
			eWayBillsTable,
			"",
			postgres.ExtractDBColumns[ewaybill.EWayBill](),
			func() *ewaybill.EWayBill { return &ewaybill.EWayBill{} },
		),
		txManager: txManager,
	}
}

// GetBySourceDocument retrieves the bill generated for a source document.
func (r *EWayBillRepo) GetBySourceDocument(ctx context.Context, sourceID id.ID) (*ewaybill.EWayBill, error) {
	bill := &ewaybill.EWayBill{}

	q := r.baseSelect().
		Where(squirrel.Eq{"source_document_id": sourceID}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, bill, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(eWayBillsTable, sourceID.String())
		}
		return nil, fmt.Errorf("get by source document: %w", err)
	}

	return bill, nil
}

// List retrieves bills with common filtering.
func (r *EWayBillRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*ewaybill.EWayBill], error) {
	return r.BaseDocumentRepo.List(ctx, documents.ListFilter{ListFilter: filter})
}
