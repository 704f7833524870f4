package payment

import (
	"context"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/core/tx"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/documents"
	"zenbill/pkg/numerator"
)

// Repository persists payments.
type Repository interface {
	documents.Repository[*Payment]
}

// Service provides business operations for payments.
type Service struct {
	*documents.Service[*Payment]
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new payment service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := documents.NewService(documents.ServiceConfig[*Payment]{
		Repo:           repo,
		TxManager:      txManager,
		Numerator:      num,
		DocType:        "payment",
		NumberPrefix:   "PAY",
		NumberStrategy: numerator.StrategyCached,
		CloneFn:        (*Payment).Clone,
	})
	return &Service{
		Service:   base,
		repo:      repo,
		txManager: txManager,
	}
}

// Allocate applies part of a payment against a document.
func (s *Service) Allocate(ctx context.Context, paymentID, documentID id.ID, documentType string, amount float64) (*Payment, error) {
	var p *Payment
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.repo.GetForUpdate(ctx, paymentID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("payment", paymentID.String())
			}
			return err
		}

		if err := p.Allocate(documentID, documentType, types.NewMoney(amount)); err != nil {
			return err
		}

		return s.repo.Update(ctx, p)
	})
	return p, err
}
