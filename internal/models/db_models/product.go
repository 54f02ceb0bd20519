package db_models

import (
	"github.com/google/uuid"
)

type Category struct {
	BaseModel
	Name     string `gorm:"size:128"`
	IsActive bool   `gorm:"default:true"`
}

type ProductType struct {
	BaseModel
	Name     string `gorm:"size:128"`
	IsActive bool   `gorm:"default:true"`
}

type Product struct {
	BaseModel
	Name string `gorm:"size:128"`

	ProductTypeID *uuid.UUID `gorm:"index"`
	CategoryID    *uuid.UUID `gorm:"index"`

	Description      string
	ShortDescription string `gorm:"size:256"`
	ExternalURL      string

	// Price in minor units (e.g. 10000 = 100.00 CZK)
	PriceMinor int64
	Currency   string `gorm:"size:3;default:'CZK'"`

	// Some products (typically digital ones) cannot be paid on delivery.
	MustBePaidOnline bool

	IsActive bool `gorm:"default:true;index"`
	Ordering int  `gorm:"default:0"`

	ProductType *ProductType
	Category    *Category
	Variants    []ProductVariant `gorm:"foreignKey:ProductID"`
}

// HasVariants reports whether the product is only purchasable through a
// specific variant.
func (p *Product) HasVariants() bool {
	return len(p.Variants) > 0
}

// ProductVariant is a stock-tracked sub-SKU of a Product (e.g. a size).
type ProductVariant struct {
	BaseModel
	ProductID uuid.UUID `gorm:"index;not null"`
	Name      string    `gorm:"size:128"`

	PcsInStock int64
	Ordering   int `gorm:"default:0"`
}
