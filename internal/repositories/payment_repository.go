package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storengine/internal/models/db_models"
)

type IPaymentRepository interface {
	// Upsert inserts or refreshes a payment mirror row keyed by the gateway
	// payment id. Safe under concurrent webhook delivery.
	Upsert(ctx context.Context, payment *db_models.GopayPayment) error
	GetByPaymentID(ctx context.Context, paymentID string) (*db_models.GopayPayment, error)
}

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) IPaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Upsert(ctx context.Context, payment *db_models.GopayPayment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "payment_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"payment_status", "payment_data", "is_paid", "updated_at",
			}),
		}).
		Create(payment).Error
}

func (r *PaymentRepository) GetByPaymentID(ctx context.Context, paymentID string) (*db_models.GopayPayment, error) {
	var payment db_models.GopayPayment
	err := r.db.WithContext(ctx).First(&payment, "payment_id = ?", paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}
