package models

import "time"

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid  InvoiceStatus = "UNPAID"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

// Valid reports whether s is one of the known statuses.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// TemplateType selects the layout used when the invoice is rendered.
// Rendering itself happens outside this layer; only the choice is stored.
type TemplateType string

const (
	TemplateClassic TemplateType = "CLASSIC"
	TemplateModern  TemplateType = "MODERN"
	TemplateMinimal TemplateType = "MINIMAL"
)

// Valid reports whether t is one of the known templates.
func (t TemplateType) Valid() bool {
	switch t {
	case TemplateClassic, TemplateModern, TemplateMinimal:
		return true
	}
	return false
}

// Invoice is a bill issued to one customer. Totals are computed by the
// producer before insert: Total = Subtotal + TaxAmount. The invoice number
// is unique and never changes once assigned.
type Invoice struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	InvoiceNumber string `gorm:"size:50;not null;uniqueIndex" json:"invoice_number"`

	CustomerID int64     `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	IssueDate time.Time `gorm:"not null" json:"issue_date"`
	DueDate   time.Time `gorm:"not null" json:"due_date"`

	Subtotal  float64 `gorm:"not null" json:"subtotal"`
	TaxRate   float64 `gorm:"not null;default:0" json:"tax_rate"`
	TaxAmount float64 `gorm:"not null;default:0" json:"tax_amount"`
	Total     float64 `gorm:"not null" json:"total"`

	Notes        *string       `gorm:"type:text" json:"notes,omitempty"`
	PaymentTerms string        `gorm:"size:100;not null;default:'Net 30'" json:"payment_terms"`
	Status       InvoiceStatus `gorm:"size:20;not null;default:'UNPAID'" json:"status"`
	TemplateType TemplateType  `gorm:"size:20;not null;default:'CLASSIC'" json:"template_type"`

	CreatedAt time.Time `json:"created_at"`
	PDFPath   *string   `gorm:"size:500" json:"pdf_path,omitempty"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// IsPaid returns true once the invoice has been settled.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// IsOverdueAt reports whether the invoice is unpaid past its due date at t.
func (i *Invoice) IsOverdueAt(t time.Time) bool {
	return i.Status != InvoiceStatusPaid && t.After(i.DueDate)
}

// ItemsTotal sums the stored line totals.
func (i *Invoice) ItemsTotal() float64 {
	var total float64
	for _, it := range i.Items {
		total += it.Total
	}
	return total
}
