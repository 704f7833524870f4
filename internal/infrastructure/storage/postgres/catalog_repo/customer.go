package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"zenbill/internal/core/apperror"
	"zenbill/internal/domain/catalogs/customer"
	"zenbill/internal/infrastructure/storage/postgres"
)

const customerTable = "cat_customers"

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*customer.Customer](
			txManager,
			customerTable,
			postgres.ExtractDBColumns[customer.Customer](),
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}

// FindByGSTIN retrieves customer by GSTIN.
func (r *CustomerRepo) FindByGSTIN(ctx context.Context, gstin string) (*customer.Customer, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"gstin": gstin}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	c, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("customer", gstin)
		}
		return nil, err
	}
	return c, nil
}
