package salesorder

import (
	"context"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/core/tx"
	"zenbill/internal/domain/documents"
	"zenbill/internal/domain/documents/quote"
	"zenbill/pkg/logger"
	"zenbill/pkg/numerator"
)

// Repository persists sales orders.
type Repository interface {
	documents.Repository[*SalesOrder]
}

// Service provides business operations for sales orders.
type Service struct {
	*documents.Service[*SalesOrder]
	repo      Repository
	quotes    *quote.Service
	txManager tx.Manager
}

// NewService creates a new sales order service.
func NewService(repo Repository, quotes *quote.Service, txManager tx.Manager, num *numerator.Service) *Service {
	base := documents.NewService(documents.ServiceConfig[*SalesOrder]{
		Repo:           repo,
		TxManager:      txManager,
		Numerator:      num,
		DocType:        "sales_order",
		NumberPrefix:   "SO",
		NumberStrategy: numerator.StrategyStrict,
		CloneFn:        (*SalesOrder).Clone,
	})
	return &Service{
		Service:   base,
		repo:      repo,
		quotes:    quotes,
		txManager: txManager,
	}
}

// CreateFromQuote converts a quote into a sales order. The quote must
// not be cancelled or already converted; on success it is marked with
// the new order's ID. The row lock, the order insert and the conversion
// flag all run in one transaction, so a failed flag rolls the order
// back and concurrent conversions of the same quote serialize on the
// lock instead of both passing an unlocked pre-check.
func (s *Service) CreateFromQuote(ctx context.Context, quoteID id.ID) (*SalesOrder, error) {
	var so *SalesOrder
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		q, err := s.quotes.LockForConversion(ctx, quoteID)
		if err != nil {
			return err
		}

		if q.IsConverted() {
			return apperror.NewDocumentConverted("quote", quoteID.String())
		}
		if q.IsCancelled() {
			return apperror.NewDocumentCancelled("quote", quoteID.String())
		}

		so = FromQuote(q)

		if err := s.Create(ctx, so); err != nil {
			return err
		}

		return s.quotes.MarkConverted(ctx, quoteID, so.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "quote converted to sales order",
		"quote_id", quoteID,
		"sales_order_id", so.ID,
		"number", so.Number)

	return so, nil
}
