package store

import (
	"context"
	"testing"
	"time"

	"github.com/invoiceapp/invoicedb/internal/models"
)

func TestCustomerStore_InsertAndGetByID(t *testing.T) {
	d := setupTestDB(t)
	s := NewCustomerStore(d.Gorm, d.Hub)
	ctx := context.Background()

	taxID := "TAX-42"
	in := &models.Customer{
		Name:    "Acme Corporation",
		Email:   "contact@acmecorp.com",
		Phone:   "+1 (555) 123-4567",
		Address: "123 Business Street",
		TaxID:   &taxID,
	}
	id, err := s.Insert(ctx, in)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == 0 {
		t.Fatal("expected assigned id")
	}

	got, err := s.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected customer, got nil")
	}
	if got.Name != in.Name || got.Email != in.Email || got.Phone != in.Phone || got.Address != in.Address {
		t.Errorf("fields differ: got %+v want %+v", got, in)
	}
	if got.TaxID == nil || *got.TaxID != taxID {
		t.Errorf("TaxID = %v, want %q", got.TaxID, taxID)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}
}

func TestCustomerStore_GetByIDAbsent(t *testing.T) {
	d := setupTestDB(t)
	s := NewCustomerStore(d.Gorm, d.Hub)

	got, err := s.GetByID(context.Background(), 12345)
	if err != nil {
		t.Fatalf("absent lookup must not error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestCustomerStore_ListOrderedByName(t *testing.T) {
	d := setupTestDB(t)
	s := NewCustomerStore(d.Gorm, d.Hub)
	ctx := context.Background()

	mustInsertCustomer(t, d, "Zenith Ltd", "z@zenith.test")
	mustInsertCustomer(t, d, "Acme Corporation", "a@acme.test")
	mustInsertCustomer(t, d, "Midway Co", "m@midway.test")

	customers, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(customers) != 3 {
		t.Fatalf("expected 3 customers, got %d", len(customers))
	}
	for i, want := range []string{"Acme Corporation", "Midway Co", "Zenith Ltd"} {
		if customers[i].Name != want {
			t.Errorf("customers[%d].Name = %q, want %q", i, customers[i].Name, want)
		}
	}
}

func TestCustomerStore_Search(t *testing.T) {
	d := setupTestDB(t)
	s := NewCustomerStore(d.Gorm, d.Hub)
	ctx := context.Background()

	mustInsertCustomer(t, d, "Acme Corporation", "contact@acmecorp.com")
	mustInsertCustomer(t, d, "Other Co", "info@other.test")

	got, err := s.Search(ctx, "acme")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Acme Corporation" {
		t.Fatalf("search(acme) = %+v, want only Acme Corporation", got)
	}

	// Matches on email as well.
	byEmail, err := s.Search(ctx, "info@other")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(byEmail) != 1 || byEmail[0].Name != "Other Co" {
		t.Fatalf("search by email = %+v, want only Other Co", byEmail)
	}

	// Empty query matches all rows.
	all, err := s.Search(ctx, "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("search(\"\") returned %d rows, want 2", len(all))
	}
}

func TestCustomerStore_InsertReplacesOnIDCollision(t *testing.T) {
	d := setupTestDB(t)
	s := NewCustomerStore(d.Gorm, d.Hub)
	ctx := context.Background()

	id := mustInsertCustomer(t, d, "Original", "original@test")

	replacement := newTestCustomer("Replacement", "replacement@test")
	replacement.ID = id
	gotID, err := s.Insert(ctx, replacement)
	if err != nil {
		t.Fatalf("replacing insert: %v", err)
	}
	if gotID != id {
		t.Fatalf("expected id %d, got %d", id, gotID)
	}

	if n := countRows(t, d, &models.Customer{}); n != 1 {
		t.Fatalf("expected 1 row after replace, got %d", n)
	}
	got, err := s.GetByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("get after replace: %v %v", got, err)
	}
	if got.Name != "Replacement" || got.Email != "replacement@test" {
		t.Errorf("row not fully replaced: %+v", got)
	}
}

func TestCustomerStore_UpdateMissingIsNoOp(t *testing.T) {
	d := setupTestDB(t)
	s := NewCustomerStore(d.Gorm, d.Hub)

	ghost := newTestCustomer("Ghost", "ghost@test")
	ghost.ID = 404
	if err := s.Update(context.Background(), ghost); err != nil {
		t.Fatalf("update of missing row must not error: %v", err)
	}
	if n := countRows(t, d, &models.Customer{}); n != 0 {
		t.Fatalf("update must not insert, got %d rows", n)
	}
}

func TestCustomerStore_Update(t *testing.T) {
	d := setupTestDB(t)
	s := NewCustomerStore(d.Gorm, d.Hub)
	ctx := context.Background()

	id := mustInsertCustomer(t, d, "Before", "before@test")
	got, err := s.GetByID(ctx, id)
	if err != nil || got == nil {
		t.Fatalf("get: %v", err)
	}

	got.Name = "After"
	got.Phone = ""
	if err := s.Update(ctx, got); err != nil {
		t.Fatalf("update: %v", err)
	}

	updated, err := s.GetByID(ctx, id)
	if err != nil || updated == nil {
		t.Fatalf("get after update: %v", err)
	}
	if updated.Name != "After" {
		t.Errorf("Name = %q, want After", updated.Name)
	}
	// Full-row replace writes zero values too.
	if updated.Phone != "" {
		t.Errorf("Phone = %q, want empty after full-row update", updated.Phone)
	}
}

func TestCustomerStore_DeleteCascadesToInvoices(t *testing.T) {
	d := setupTestDB(t)
	s := NewCustomerStore(d.Gorm, d.Hub)
	lines := NewInvoiceItemStore(d.Gorm, d.Hub)
	ctx := context.Background()

	customerID := mustInsertCustomer(t, d, "Doomed Corp", "doomed@test")
	keptID := mustInsertCustomer(t, d, "Kept Corp", "kept@test")
	itemID := mustInsertItem(t, d, "Consulting", 150)

	inv1 := mustInsertInvoice(t, d, "INV-000001", customerID)
	inv2 := mustInsertInvoice(t, d, "INV-000002", customerID)
	keptInv := mustInsertInvoice(t, d, "INV-000003", keptID)

	for _, invoiceID := range []int64{inv1, inv2, keptInv} {
		err := lines.InsertMany(ctx, []models.InvoiceItem{
			{InvoiceID: invoiceID, ItemID: itemID, ItemName: "Consulting", Quantity: 1, UnitPrice: 150, Total: 150},
			{InvoiceID: invoiceID, ItemID: itemID, ItemName: "Consulting", Quantity: 2, UnitPrice: 150, Total: 300},
		})
		if err != nil {
			t.Fatalf("insert lines: %v", err)
		}
	}
	if n := countRows(t, d, &models.Invoice{}); n != 3 {
		t.Fatalf("precondition: expected 3 invoices, got %d", n)
	}
	if n := countRows(t, d, &models.InvoiceItem{}); n != 6 {
		t.Fatalf("precondition: expected 6 lines, got %d", n)
	}

	if err := s.DeleteByID(ctx, customerID); err != nil {
		t.Fatalf("delete customer: %v", err)
	}

	if n := countRows(t, d, &models.Customer{}); n != 1 {
		t.Errorf("expected 1 customer left, got %d", n)
	}
	if n := countRows(t, d, &models.Invoice{}); n != 1 {
		t.Errorf("expected cascade to leave 1 invoice, got %d", n)
	}
	if n := countRows(t, d, &models.InvoiceItem{}); n != 2 {
		t.Errorf("expected cascade to leave 2 lines, got %d", n)
	}
}

func TestCustomerStore_CreatedAtStamped(t *testing.T) {
	d := setupTestDB(t)
	s := NewCustomerStore(d.Gorm, d.Hub)

	before := time.Now().Add(-time.Second)
	id := mustInsertCustomer(t, d, "Timed", "timed@test")
	got, err := s.GetByID(context.Background(), id)
	if err != nil || got == nil {
		t.Fatalf("get: %v", err)
	}
	if got.CreatedAt.Before(before) {
		t.Errorf("CreatedAt = %v, want >= %v", got.CreatedAt, before)
	}
}
