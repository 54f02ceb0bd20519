package db_models

import (
	"github.com/google/uuid"
)

// Cart is a mutable pre-purchase basket owned by a user or an anonymous
// session. Its total price is always a projection over current items.
type Cart struct {
	BaseModel
	CreatedByID  *uuid.UUID `gorm:"index"`
	SessionToken string     `gorm:"size:64;uniqueIndex"`

	Items []CartItem `gorm:"foreignKey:CartID"`
}

// TotalPriceMinor sums the item price snapshots. The currency is taken from
// any item; all items share the currency in a given deployment.
func (c *Cart) TotalPriceMinor() (int64, string) {
	var total int64
	currency := ""
	for _, item := range c.Items {
		total += item.PriceMinor
		if currency == "" {
			currency = item.Currency
		}
	}
	return total, currency
}

// CartItem holds one (product, variant) line. At most one row exists per
// (cart, product, variant) tuple; amount changes merge into the existing row.
type CartItem struct {
	BaseModel
	CartID    uuid.UUID  `gorm:"index;not null"`
	ProductID uuid.UUID  `gorm:"index;not null"`
	VariantID *uuid.UUID `gorm:"index"`

	Amount int64
	// PriceMinor = product unit price * amount at the time of the last save.
	PriceMinor int64
	Currency   string `gorm:"size:3"`

	Product Product
	Variant *ProductVariant `gorm:"foreignKey:VariantID"`
}
