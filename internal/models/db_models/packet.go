package db_models

import (
	"github.com/google/uuid"
)

// Packet is a carrier shipment created for a pickup-point order.
type Packet struct {
	BaseModel
	OrderID *uuid.UUID `gorm:"index"`

	PacketID    string `gorm:"size:25"`
	Barcode     string `gorm:"size:25"`
	BarcodeText string `gorm:"size:25"`

	StatusCode        *int
	StatusName        string `gorm:"size:255"`
	StatusDisplayName string `gorm:"size:255"`
}
