package db_models

import (
	"fmt"

	"github.com/google/uuid"
)

type AddressKind string

const (
	AddressKindBilling  AddressKind = "billing"
	AddressKindShipping AddressKind = "shipping"
)

// Address is an immutable-after-use snapshot of contact and postal data tied
// to an order. Exact-field duplicates are reused instead of inserted again.
type Address struct {
	BaseModel
	CreatedByID *uuid.UUID  `gorm:"index"`
	Kind        AddressKind `gorm:"size:16;index"`

	FirstName string `gorm:"size:1024"`
	LastName  string `gorm:"size:1024"`
	Email     string
	Phone     string `gorm:"size:32"`
	Company   string `gorm:"size:200"`

	Address1 string `gorm:"size:1024"`
	ZipCode  string `gorm:"size:12"`
	City     string `gorm:"size:1024"`
	Country  string `gorm:"size:2"`
}

func (a *Address) FullName() string {
	return fmt.Sprintf("%s %s", a.FirstName, a.LastName)
}

func (a *Address) String() string {
	return fmt.Sprintf("%s, %s %s", a.Address1, a.ZipCode, a.City)
}
