// Package repository is the thin facade consumed by the presentation
// layer: it forwards to the stores and exposes each "all rows" query as a
// standing observable collection built once per repository.
package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/invoiceapp/invoicedb/internal/models"
	"github.com/invoiceapp/invoicedb/internal/store"
	"github.com/invoiceapp/invoicedb/internal/watch"
)

// CustomerRepository forwards customer operations to the store.
type CustomerRepository struct {
	customers *store.CustomerStore
	hub       *watch.Hub
	log       zerolog.Logger

	all *watch.Collection[models.Customer]
}

// NewCustomerRepository creates the repository and its standing
// all-customers collection.
func NewCustomerRepository(customers *store.CustomerStore, hub *watch.Hub, log zerolog.Logger) *CustomerRepository {
	r := &CustomerRepository{customers: customers, hub: hub, log: log}
	r.all = watch.NewCollection(hub, log, customers.List, watch.TableCustomers)
	return r
}

// All is the observable list of every customer, ordered by name.
func (r *CustomerRepository) All() *watch.Collection[models.Customer] {
	return r.all
}

// SearchWatch returns an observable result for one search query.
func (r *CustomerRepository) SearchWatch(query string) *watch.Collection[models.Customer] {
	return watch.NewCollection(r.hub, r.log, func(ctx context.Context) ([]models.Customer, error) {
		return r.customers.Search(ctx, query)
	}, watch.TableCustomers)
}

// Insert stores a customer and returns its assigned id.
func (r *CustomerRepository) Insert(ctx context.Context, c *models.Customer) (int64, error) {
	return r.customers.Insert(ctx, c)
}

// Update replaces the stored row.
func (r *CustomerRepository) Update(ctx context.Context, c *models.Customer) error {
	return r.customers.Update(ctx, c)
}

// Delete removes the customer and, by cascade, its invoices.
func (r *CustomerRepository) Delete(ctx context.Context, c *models.Customer) error {
	return r.customers.Delete(ctx, c)
}

// DeleteByID removes the customer with the given id.
func (r *CustomerRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.customers.DeleteByID(ctx, id)
}

// GetByID returns the customer or nil when absent.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	return r.customers.GetByID(ctx, id)
}

// Search runs a one-shot substring search over name and email.
func (r *CustomerRepository) Search(ctx context.Context, query string) ([]models.Customer, error) {
	return r.customers.Search(ctx, query)
}
