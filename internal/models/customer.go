package models

import "time"

// Customer is a billable party. Deleting a customer removes all of its
// invoices (and their line items) through the cascade on Invoices.
type Customer struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null;index" json:"name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Address   string    `gorm:"type:text" json:"address"`
	TaxID     *string   `gorm:"size:100" json:"tax_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Invoices []Invoice `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
}

// HasTaxID reports whether a tax identifier was captured for this customer.
func (c *Customer) HasTaxID() bool {
	return c.TaxID != nil && *c.TaxID != ""
}
