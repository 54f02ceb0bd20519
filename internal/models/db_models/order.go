package db_models

import (
	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	CreatedByID *uuid.UUID `gorm:"index"`

	OrderNumber string `gorm:"size:25;uniqueIndex"`

	// Derived from order items, never authored directly.
	TotalPriceMinor int64
	Currency        string `gorm:"size:3;default:'CZK'"`

	BillingAddressID  *uuid.UUID
	ShippingAddressID *uuid.UUID
	BillingTypeID     *uuid.UUID

	NewsletterSubscribe bool
	IsPaid              bool `gorm:"index"`

	InternalNotificationSent bool
	ConfirmationEmailSent    bool
	// Guards the new-order automation so it fires at most once per order.
	PostSaveTriggered bool

	GopayPaymentID *uuid.UUID `gorm:"index"`

	ShippingType  string `gorm:"size:300"`
	PickupPointID string `gorm:"size:64"`

	BillingAddress  *Address `gorm:"foreignKey:BillingAddressID"`
	ShippingAddress *Address `gorm:"foreignKey:ShippingAddressID"`
	BillingType     *BillingType
	GopayPayment    *GopayPayment
	Packet          *Packet     `gorm:"foreignKey:OrderID"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"`
}

func (o *Order) FullName() string {
	if o.BillingAddress != nil {
		return o.BillingAddress.FullName()
	}
	return ""
}

// RemainingBalanceMinor is what is still owed on the order. Used as the COD
// amount when a packet is created.
func (o *Order) RemainingBalanceMinor() int64 {
	if o.IsPaid {
		return 0
	}
	return o.TotalPriceMinor
}

// OrderItem snapshots the product price at the time of checkout.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID  `gorm:"index;not null"`
	ProductID uuid.UUID  `gorm:"index;not null"`
	VariantID *uuid.UUID `gorm:"index"`

	Quantity        int64
	TotalPriceMinor int64
	Currency        string `gorm:"size:3"`

	Product Product
	Variant *ProductVariant `gorm:"foreignKey:VariantID"`
}

// OrderSequence holds the per-month order number counter. Period is "YYMM".
// The counter is bumped with an upsert so sequence assignment is atomic.
type OrderSequence struct {
	Period  string `gorm:"size:4;primaryKey"`
	Counter int64
}
