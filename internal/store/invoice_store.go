package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/invoiceapp/invoicedb/internal/models"
	"github.com/invoiceapp/invoicedb/internal/watch"
)

// NumberPrefix is the fixed prefix every generated invoice number carries.
// The sequence query extracts the numeric suffix that follows it.
const NumberPrefix = "INV-"

// InvoiceStore provides access to the invoices table.
type InvoiceStore struct {
	db  *gorm.DB
	hub *watch.Hub
}

// NewInvoiceStore creates an invoice store.
func NewInvoiceStore(db *gorm.DB, hub *watch.Hub) *InvoiceStore {
	return &InvoiceStore{db: db, hub: hub}
}

// List returns all invoices, newest first.
func (s *InvoiceStore) List(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&invoices).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list invoices")
	}
	return invoices, nil
}

// ListByCustomer returns one customer's invoices, newest first.
func (s *InvoiceStore) ListByCustomer(ctx context.Context, customerID int64) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list invoices by customer")
	}
	return invoices, nil
}

// GetByID returns the invoice with the given id, or nil when absent.
func (s *InvoiceStore) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get invoice by id")
	}
	return &invoice, nil
}

// GetWithDetails returns the invoice joined with its customer and ordered
// line items, or nil when the invoice does not exist.
func (s *InvoiceStore) GetWithDetails(ctx context.Context, id int64) (*models.InvoiceWithDetails, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&invoice, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get invoice with details")
	}

	details := &models.InvoiceWithDetails{
		Invoice: invoice,
		Items:   invoice.Items,
	}
	if invoice.Customer != nil {
		details.Customer = *invoice.Customer
	}
	details.Invoice.Customer = nil
	details.Invoice.Items = nil
	return details, nil
}

// Search matches the query as an unanchored substring of the invoice
// number or status. An empty query matches every row.
func (s *InvoiceStore) Search(ctx context.Context, query string) ([]models.Invoice, error) {
	like := "%" + query + "%"
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).
		Where("invoice_number LIKE ? OR status LIKE ?", like, like).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search invoices")
	}
	return invoices, nil
}

// LastSequenceNumber returns the highest numeric suffix among invoice
// numbers carrying NumberPrefix. ok is false when no such invoice exists.
func (s *InvoiceStore) LastSequenceNumber(ctx context.Context) (n int, ok bool, err error) {
	var max sql.NullInt64
	err = s.db.WithContext(ctx).
		Raw(
			"SELECT MAX(CAST(SUBSTR(invoice_number, ?) AS INTEGER)) FROM invoices WHERE invoice_number LIKE ?",
			len(NumberPrefix)+1, NumberPrefix+"%",
		).
		Scan(&max).Error
	if err != nil {
		return 0, false, errors.Wrap(err, "failed to read last invoice sequence number")
	}
	if !max.Valid {
		return 0, false, nil
	}
	return int(max.Int64), true, nil
}

// Insert stores an invoice and returns its assigned id, replacing the
// existing row on an id collision. Line items are managed separately by
// the InvoiceItemStore.
func (s *InvoiceStore) Insert(ctx context.Context, inv *models.Invoice) (int64, error) {
	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(inv).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to insert invoice")
	}
	s.hub.Notify(watch.TableInvoices)
	return inv.ID, nil
}

// Update replaces every column of the row with inv's id. Updating a
// missing id affects no rows and is not an error.
func (s *InvoiceStore) Update(ctx context.Context, inv *models.Invoice) error {
	err := s.db.WithContext(ctx).
		Model(&models.Invoice{ID: inv.ID}).
		Omit(clause.Associations).
		Select("*").
		Updates(inv).Error
	if err != nil {
		return errors.Wrap(err, "failed to update invoice")
	}
	s.hub.Notify(watch.TableInvoices)
	return nil
}

// Delete removes the invoice row and its line items through the cascade.
func (s *InvoiceStore) Delete(ctx context.Context, inv *models.Invoice) error {
	return s.DeleteByID(ctx, inv.ID)
}

// DeleteByID removes the invoice with the given id.
func (s *InvoiceStore) DeleteByID(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Delete(&models.Invoice{}, id).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete invoice")
	}
	s.hub.Notify(watch.TableInvoices, watch.TableInvoiceItems)
	return nil
}
