package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"zenbill/internal/core/apperror"
	"zenbill/internal/domain/catalogs/organization"
	"zenbill/internal/infrastructure/storage/postgres"
)

const organizationTable = "cat_organizations"

// OrganizationRepo implements organization.Repository.
type OrganizationRepo struct {
	*BaseCatalogRepo[*organization.Organization]
	txManager *postgres.TxManager
}

// NewOrganizationRepo creates a new organization repository.
func NewOrganizationRepo(txManager *postgres.TxManager) *OrganizationRepo {
	return &OrganizationRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*organization.Organization](
			txManager,
			organizationTable,
			postgres.ExtractDBColumns[organization.Organization](),
			func() *organization.Organization { return &organization.Organization{} },
		),
		txManager: txManager,
	}
}

// GetDefault retrieves the organization preselected on new documents.
func (r *OrganizationRepo) GetDefault(ctx context.Context) (*organization.Organization, error) {
	org := &organization.Organization{}

	q := r.baseSelect().
		Where(squirrel.Eq{"is_default": true, "deletion_mark": false}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, org, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(organizationTable, "default")
		}
		return nil, fmt.Errorf("get default organization: %w", err)
	}

	return org, nil
}
