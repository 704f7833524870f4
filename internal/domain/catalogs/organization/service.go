package organization

import (
	"context"
	"fmt"
	"time"

	"zenbill/internal/core/tx"
	"zenbill/internal/domain"
	"zenbill/pkg/numerator"
)

// Service provides business logic for the Organization catalog.
type Service struct {
	*domain.CatalogService[*Organization]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Organization service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Organization]{
		Repo:       repo,
		TxManager:  txManager,
		Numerator:  num,
		EntityName: "organization",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, o *Organization) error {
	if o.Code == "" {
		cfg := numerator.DefaultConfig("ORG")
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		o.Code = code
	}
	return nil
}

// GetDefault retrieves the default organization.
func (s *Service) GetDefault(ctx context.Context) (*Organization, error) {
	return s.repo.GetDefault(ctx)
}
