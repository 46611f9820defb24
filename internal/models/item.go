package models

import "time"

// Item is a catalog entry. Invoice lines copy its name, description and
// price at creation time, so editing an item never rewrites history.
type Item struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Unit        string    `gorm:"size:50;not null;default:'unit'" json:"unit"`
	CreatedAt   time.Time `json:"created_at"`

	InvoiceItems []InvoiceItem `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE" json:"-"`
}
