package models

// InvoiceItem is one line on an invoice. ItemName, Description and
// UnitPrice are copied from the catalog item when the line is created;
// later edits to the item leave existing lines untouched. Total is the
// producer-computed Quantity times UnitPrice.
type InvoiceItem struct {
	ID        int64 `gorm:"primaryKey" json:"id"`
	InvoiceID int64 `gorm:"not null;index" json:"invoice_id"`
	ItemID    int64 `gorm:"not null;index" json:"item_id"`

	ItemName    string `gorm:"size:255;not null" json:"item_name"`
	Description string `gorm:"type:text" json:"description"`

	Quantity  float64 `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
	Total     float64 `gorm:"not null" json:"total"`
}

// LineTotal recomputes quantity times unit price. Callers fill Total with
// this before insert; the stored column is what reads return.
func (it *InvoiceItem) LineTotal() float64 {
	return it.Quantity * it.UnitPrice
}

// SnapshotFrom copies the display fields and price from a catalog item.
func (it *InvoiceItem) SnapshotFrom(item *Item) {
	it.ItemID = item.ID
	it.ItemName = item.Name
	it.Description = item.Description
	it.UnitPrice = item.Price
	it.Total = it.LineTotal()
}
