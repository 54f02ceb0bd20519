package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storengine/internal/models/db_models"
)

type IOrderRepository interface {
	Create(ctx context.Context, order *db_models.Order) error
	Save(ctx context.Context, order *db_models.Order) error
	CreateItems(ctx context.Context, items []db_models.OrderItem) error

	GetByID(ctx context.Context, id uuid.UUID) (*db_models.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*db_models.Order, error)
	ListByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]db_models.Order, error)
	// ListUnpaidOnline returns unpaid card-online orders created after the
	// cutoff; the reconciliation sweep re-polls these.
	ListUnpaidOnline(ctx context.Context, createdAfter time.Time) ([]db_models.Order, error)

	GetBillingTypeByName(ctx context.Context, name string) (*db_models.BillingType, error)

	// NextSequence atomically bumps and returns the per-period order counter.
	NextSequence(ctx context.Context, period string) (int64, error)
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) IOrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *db_models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) Save(ctx context.Context, order *db_models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *OrderRepository) CreateItems(ctx context.Context, items []db_models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	// Items carry loaded Product/Variant snapshots for the caller; only the
	// item rows themselves are inserted here.
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&items).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*db_models.Order, error) {
	return r.getOne(ctx, "id = ?", id)
}

func (r *OrderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*db_models.Order, error) {
	return r.getOne(ctx, "order_number = ?", orderNumber)
}

func (r *OrderRepository) getOne(ctx context.Context, query string, arg interface{}) (*db_models.Order, error) {
	var order db_models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("BillingAddress").
		Preload("ShippingAddress").
		Preload("BillingType").
		Preload("GopayPayment").
		First(&order, query, arg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListByPaymentID(ctx context.Context, paymentID uuid.UUID) ([]db_models.Order, error) {
	var orders []db_models.Order
	err := r.db.WithContext(ctx).
		Preload("BillingAddress").
		Where("gopay_payment_id = ?", paymentID).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) ListUnpaidOnline(ctx context.Context, createdAfter time.Time) ([]db_models.Order, error) {
	var orders []db_models.Order
	err := r.db.WithContext(ctx).
		Joins("JOIN billing_types ON billing_types.id = orders.billing_type_id").
		Preload("GopayPayment").
		Where("billing_types.name = ?", db_models.BillingTypeCardOnline).
		Where("orders.is_paid = ?", false).
		Where("orders.created_at > ?", createdAfter.Unix()).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) GetBillingTypeByName(ctx context.Context, name string) (*db_models.BillingType, error) {
	var bt db_models.BillingType
	err := r.db.WithContext(ctx).First(&bt, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bt, nil
}

func (r *OrderRepository) NextSequence(ctx context.Context, period string) (int64, error) {
	var seq int64
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO order_sequences (period, counter) VALUES (?, 1)
		 ON CONFLICT (period) DO UPDATE SET counter = order_sequences.counter + 1
		 RETURNING counter`,
		period,
	).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}
