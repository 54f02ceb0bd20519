package db_models

// Slugs of the billing types the checkout flow depends on.
const (
	BillingTypeCardOnline = "card-online"
	BillingTypeCash       = "cash"
)

// BillingType stores a single payment method available at the checkout.
type BillingType struct {
	BaseModel
	DisplayName string `gorm:"size:255"`
	Name        string `gorm:"size:255;uniqueIndex"`

	IsActive bool
	Ordering int `gorm:"default:0"`
}

func (b *BillingType) IsOnline() bool {
	return b.Name == BillingTypeCardOnline
}
