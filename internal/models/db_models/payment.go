package db_models

import (
	"gorm.io/datatypes"
)

const PaymentStatusPaid = "PAID"

// GopayPayment mirrors an external gateway transaction. Rows are only written
// by the reconciliation flow (webhook or sweep), never hand-edited.
type GopayPayment struct {
	BaseModel
	// Gateway payment id; the upsert key under concurrent webhook delivery.
	PaymentID     string `gorm:"size:128;uniqueIndex"`
	PaymentStatus string `gorm:"size:64"`
	// Full raw gateway payload, kept for traceability.
	PaymentData datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	IsPaid      bool
}

// RecomputePaid derives the paid flag from the raw gateway status.
func (p *GopayPayment) RecomputePaid() {
	p.IsPaid = p.PaymentStatus == PaymentStatusPaid
}
