package vendorcredit

import (
	"context"

	"zenbill/internal/core/apperror"
	"zenbill/internal/core/id"
	"zenbill/internal/core/tx"
	"zenbill/internal/core/types"
	"zenbill/internal/domain/documents"
	"zenbill/pkg/numerator"
)

// Repository persists vendor credits.
type Repository interface {
	documents.Repository[*VendorCredit]
}

// Service provides business operations for vendor credits.
type Service struct {
	*documents.Service[*VendorCredit]
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new vendor credit service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := documents.NewService(documents.ServiceConfig[*VendorCredit]{
		Repo:           repo,
		TxManager:      txManager,
		Numerator:      num,
		DocType:        "vendor_credit",
		NumberPrefix:   "VC",
		NumberStrategy: numerator.StrategyStrict,
		CloneFn:        (*VendorCredit).Clone,
	})
	return &Service{
		Service:   base,
		repo:      repo,
		txManager: txManager,
	}
}

// ApplyCredit consumes part of a credit against a bill or refund.
func (s *Service) ApplyCredit(ctx context.Context, creditID id.ID, amount float64) (*VendorCredit, error) {
	var vc *VendorCredit
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		vc, err = s.repo.GetForUpdate(ctx, creditID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("vendor_credit", creditID.String())
			}
			return err
		}

		if err := vc.Apply(types.NewMoney(amount)); err != nil {
			return err
		}

		return s.repo.Update(ctx, vc)
	})
	return vc, err
}
