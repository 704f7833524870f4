package organization

import (
	"context"

	"zenbill/internal/domain"
)

// Repository defines the interface for Organization persistence.
type Repository interface {
	domain.CatalogRepository[*Organization]

	// GetDefault retrieves the organization preselected on new documents.
	GetDefault(ctx context.Context) (*Organization, error)
}
