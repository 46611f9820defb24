// Package store is the data-access layer: one typed accessor per table,
// wrapping the GORM queries and signalling the watch hub after every
// successful write. Point lookups return (nil, nil) when the row is
// absent; absence is not an error.
package store

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/invoiceapp/invoicedb/internal/models"
	"github.com/invoiceapp/invoicedb/internal/watch"
)

// CustomerStore provides access to the customers table.
type CustomerStore struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewCustomerStore creates a customer store.
func NewCustomerStore(db *gorm.DB, hub *watch.Hub) *CustomerStore {
	return &CustomerStore{db: db, hub: hub}
}

// List returns all customers ordered by name.
func (s *CustomerStore) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.WithContext(ctx).Order("name ASC").Find(&customers).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}
	return customers, nil
}

// GetByID returns the customer with the given id, or nil when absent.
func (s *CustomerStore) GetByID(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).First(&customer, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get customer by id")
	}
	return &customer, nil
}

// Search matches the query as an unanchored substring of name or email.
// An empty query matches every row.
func (s *CustomerStore) Search(ctx context.Context, query string) ([]models.Customer, error) {
	like := "%" + query + "%"
	var customers []models.Customer
	err := s.db.WithContext(ctx).
		Where("name LIKE ? OR email LIKE ?", like, like).
		Order("name ASC").
		Find(&customers).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search customers")
	}
	return customers, nil
}

// Insert stores a customer and returns its assigned id. On an id
// collision the existing row is fully replaced.
func (s *CustomerStore) Insert(ctx context.Context, c *models.Customer) (int64, error) {
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(c).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert customer")
	}
	s.hub.Notify(watch.TableCustomers)
	return c.ID, nil
}

// Update replaces every column of the row with c's id. Updating a missing
// id affects no rows and is not an error.
func (s *CustomerStore) Update(ctx context.Context, c *models.Customer) error {
	err := s.db.WithContext(ctx).
		Model(&models.Customer{ID: c.ID}).
		Omit(clause.Associations).
		Select("*").
		Updates(c).Error
	if err != nil {
		return errors.Wrap(err, "failed to update customer")
	}
	s.hub.Notify(watch.TableCustomers)
	return nil
}

// Delete removes the customer row. Invoices owned by the customer, and
// their line items, go with it through the cascade.
func (s *CustomerStore) Delete(ctx context.Context, c *models.Customer) error {
	return s.DeleteByID(ctx, c.ID)
}

// DeleteByID removes the customer with the given id.
func (s *CustomerStore) DeleteByID(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Delete(&models.Customer{}, id).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete customer")
	}
	s.hub.Notify(watch.TableCustomers, watch.TableInvoices, watch.TableInvoiceItems)
	return nil
}
