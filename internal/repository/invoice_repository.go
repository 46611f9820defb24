package repository

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/invoiceapp/invoicedb/internal/models"
	"github.com/invoiceapp/invoicedb/internal/store"
	"github.com/invoiceapp/invoicedb/internal/watch"
)

// InvoiceRepository forwards invoice operations to the stores and owns
// the one multi-step write in the layer: creating an invoice together
// with its line items in a single transaction.
type InvoiceRepository struct {
	db       *gorm.DB
	invoices *store.InvoiceStore
	lines    *store.InvoiceItemStore
	hub      *watch.Hub
	log      zerolog.Logger

	all *watch.Collection[models.Invoice]
}

// NewInvoiceRepository creates the repository and its standing
// all-invoices collection (newest first).
func NewInvoiceRepository(db *gorm.DB, invoices *store.InvoiceStore, lines *store.InvoiceItemStore, hub *watch.Hub, log zerolog.Logger) *InvoiceRepository {
	r := &InvoiceRepository{db: db, invoices: invoices, lines: lines, hub: hub, log: log}
	r.all = watch.NewCollection(hub, log, invoices.List, watch.TableInvoices, watch.TableInvoiceItems)
	return r
}

// All is the observable list of every invoice.
func (r *InvoiceRepository) All() *watch.Collection[models.Invoice] {
	return r.all
}

// ByCustomer returns an observable list of one customer's invoices.
func (r *InvoiceRepository) ByCustomer(customerID int64) *watch.Collection[models.Invoice] {
	return watch.NewCollection(r.hub, r.log, func(ctx context.Context) ([]models.Invoice, error) {
		return r.invoices.ListByCustomer(ctx, customerID)
	}, watch.TableInvoices)
}

// SearchWatch returns an observable result for one search query.
func (r *InvoiceRepository) SearchWatch(query string) *watch.Collection[models.Invoice] {
	return watch.NewCollection(r.hub, r.log, func(ctx context.Context) ([]models.Invoice, error) {
		return r.invoices.Search(ctx, query)
	}, watch.TableInvoices)
}

// Create inserts the invoice and its line items atomically: the invoice
// row is inserted, its assigned id is stamped onto every line, and the
// lines are bulk-inserted. If any step fails the whole write rolls back
// and neither table keeps a row. Returns the invoice id.
func (r *InvoiceRepository) Create(ctx context.Context, inv *models.Invoice, items []models.InvoiceItem) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(inv).Error; err != nil {
			return errors.Wrap(err, "failed to insert invoice")
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].InvoiceID = inv.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return errors.Wrap(err, "failed to insert invoice items")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	r.hub.Notify(watch.TableInvoices, watch.TableInvoiceItems)
	return inv.ID, nil
}

// GenerateInvoiceNumber formats the next number in the sequence: the
// highest existing numeric suffix (0 when the table is empty) plus one,
// zero-padded to six digits behind the fixed prefix. The read and the
// eventual insert are not one atomic reservation, so two concurrent
// callers can draw the same number; the unique index on invoice_number
// then rejects the second insert instead of storing a duplicate.
func (r *InvoiceRepository) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	last, ok, err := r.invoices.LastSequenceNumber(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		last = 0
	}
	return fmt.Sprintf("%s%06d", store.NumberPrefix, last+1), nil
}

// ReplaceItems swaps an invoice's lines for a new set in one transaction.
func (r *InvoiceRepository) ReplaceItems(ctx context.Context, invoiceID int64, items []models.InvoiceItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", invoiceID).Delete(&models.InvoiceItem{}).Error; err != nil {
			return errors.Wrap(err, "failed to clear invoice items")
		}
		if len(items) == 0 {
			return nil
		}
		for i := range items {
			items[i].InvoiceID = invoiceID
		}
		if err := tx.Create(&items).Error; err != nil {
			return errors.Wrap(err, "failed to insert replacement items")
		}
		return nil
	})
	if err != nil {
		return err
	}
	r.hub.Notify(watch.TableInvoiceItems)
	return nil
}

// Update replaces the stored invoice row. This is also how an external
// PDF generator records the path it wrote.
func (r *InvoiceRepository) Update(ctx context.Context, inv *models.Invoice) error {
	return r.invoices.Update(ctx, inv)
}

// Delete removes the invoice and its lines.
func (r *InvoiceRepository) Delete(ctx context.Context, inv *models.Invoice) error {
	return r.invoices.Delete(ctx, inv)
}

// DeleteByID removes the invoice with the given id.
func (r *InvoiceRepository) DeleteByID(ctx context.Context, id int64) error {
	return r.invoices.DeleteByID(ctx, id)
}

// GetByID returns the invoice or nil when absent.
func (r *InvoiceRepository) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	return r.invoices.GetByID(ctx, id)
}

// GetWithDetails returns the invoice joined with its customer and lines,
// or nil when absent.
func (r *InvoiceRepository) GetWithDetails(ctx context.Context, id int64) (*models.InvoiceWithDetails, error) {
	return r.invoices.GetWithDetails(ctx, id)
}

// Items returns one invoice's lines in insertion order.
func (r *InvoiceRepository) Items(ctx context.Context, invoiceID int64) ([]models.InvoiceItem, error) {
	return r.lines.ListByInvoice(ctx, invoiceID)
}

// Search runs a one-shot substring search over number and status.
func (r *InvoiceRepository) Search(ctx context.Context, query string) ([]models.Invoice, error) {
	return r.invoices.Search(ctx, query)
}
