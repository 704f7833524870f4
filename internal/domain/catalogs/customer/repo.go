package customer

import (
	"context"

	"zenbill/internal/domain"
)

// Repository defines the interface for Customer persistence.
type Repository interface {
	domain.CatalogRepository[*Customer]

	// FindByGSTIN retrieves customer by GSTIN (unique).
	FindByGSTIN(ctx context.Context, gstin string) (*Customer, error)
}
