package document_repo

import (
	"zenbill/internal/domain/documents/salesorder"
	"zenbill/internal/infrastructure/storage/postgres"
)

const salesOrdersTable = "doc_sales_orders"

// SalesOrderRepo implements documents.Repository for sales orders.
type SalesOrderRepo struct {
	*BaseDocumentRepo[*salesorder.SalesOrder]
}

// NewSalesOrderRepo creates a new sales order repository.
func NewSalesOrderRepo(txManager *postgres.TxManager) *SalesOrderRepo {
	return &SalesOrderRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*salesorder.SalesOrder](
			txManager,
			salesOrdersTable,
			"customer_id",
			postgres.ExtractDBColumns[salesorder.SalesOrder](),
			func() *salesorder.SalesOrder { return &salesorder.SalesOrder{} },
		),
	}
}
