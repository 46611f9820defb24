package models

// InvoiceWithDetails is the read-only composite of an invoice, its owning
// customer and its line items. It is assembled by the invoice store from a
// join query and never written back.
type InvoiceWithDetails struct {
	Invoice  Invoice       `json:"invoice"`
	Customer Customer      `json:"customer"`
	Items    []InvoiceItem `json:"items"`
}

// All lists every persisted model in migration order. Parents come first
// so foreign keys exist by the time dependent tables are created.
func All() []interface{} {
	return []interface{}{
		&Customer{},
		&Item{},
		&Invoice{},
		&InvoiceItem{},
	}
}
