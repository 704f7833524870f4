package document_repo

import (
	"zenbill/internal/domain/documents/quote"
	"zenbill/internal/infrastructure/storage/postgres"
)

const quotesTable = "doc_quotes"

// QuoteRepo implements documents.Repository for quotes.
type QuoteRepo struct {
	*BaseDocumentRepo[*quote.Quote]
}

// NewQuoteRepo creates a new quote repository.
func NewQuoteRepo(txManager *postgres.TxManager) *QuoteRepo {
	return &QuoteRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*quote.Quote](
			txManager,
			quotesTable,
			"customer_id",
			postgres.ExtractDBColumns[quote.Quote](),
			func() *quote.Quote { return &quote.Quote{} },
		),
	}
}
