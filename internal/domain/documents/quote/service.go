package quote

import (
	"context"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/core/tx"
	"zenbill/internal/domain/documents"
	"zenbill/pkg/numerator"
)

// Repository persists quotes.
type Repository interface {
	documents.Repository[*Quote]
}

// Service provides business operations for quotes.
type Service struct {
	*documents.Service[*Quote]
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new quote service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := documents.NewService(documents.ServiceConfig[*Quote]{
		Repo:           repo,
		TxManager:      txManager,
		Numerator:      num,
		DocType:        "quote",
		NumberPrefix:   "QT",
		NumberStrategy: numerator.StrategyStrict,
		CloneFn:        (*Quote).Clone,
	})
	return &Service{
		Service:   base,
		repo:      repo,
		txManager: txManager,
	}
}

// LockForConversion retrieves a quote with a row lock so concurrent
// conversions serialize on it. Must run inside a transaction.
func (s *Service) LockForConversion(ctx context.Context, quoteID id.ID) (*Quote, error) {
	q, err := s.repo.GetForUpdate(ctx, quoteID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("quote", quoteID.String())
		}
		return nil, err
	}
	return q, nil
}

// MarkConverted records the sales order created from a quote. Called by
// the sales order flow inside its conversion transaction.
func (s *Service) MarkConverted(ctx context.Context, quoteID, salesOrderID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		q, err := s.LockForConversion(ctx, quoteID)
		if err != nil {
			return err
		}

		if err := q.MarkConverted(salesOrderID); err != nil {
			return err
		}

		return s.repo.Update(ctx, q)
	})
}
