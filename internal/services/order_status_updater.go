package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"storengine/internal/repositories"
)

// OrderStatusUpdater is the reconciliation sweep: it re-polls the gateway for
// recent unpaid card-online orders so a lost webhook never leaves an order
// unpaid forever.
type OrderStatusUpdater struct {
	orders   repositories.IOrderRepository
	payments IPaymentService

	// Lookback bounds how far back the sweep polls. Older unpaid orders are
	// assumed abandoned.
	Lookback time.Duration
}

func NewOrderStatusUpdater(orders repositories.IOrderRepository, payments IPaymentService) *OrderStatusUpdater {
	return &OrderStatusUpdater{
		orders:   orders,
		payments: payments,
		Lookback: 48 * time.Hour,
	}
}

// RunOnce polls every candidate order once. Per-order failures are logged and
// skipped so one gateway hiccup does not stall the rest of the sweep.
func (u *OrderStatusUpdater) RunOnce(ctx context.Context) {
	cutoff := time.Now().Add(-u.Lookback)
	orders, err := u.orders.ListUnpaidOnline(ctx, cutoff)
	if err != nil {
		log.Printf("Order status sweep: listing unpaid orders failed: %v", err)
		return
	}

	for i := range orders {
		order := &orders[i]
		if order.GopayPayment == nil || order.GopayPayment.PaymentID == "" {
			continue
		}
		paymentID := order.GopayPayment.PaymentID

		payload, err := u.payments.GetPaymentDetails(ctx, paymentID)
		if err != nil {
			log.Printf("Order status sweep: status fetch for payment %s failed: %v", paymentID, err)
			continue
		}
		if _, err := u.payments.CreateOrUpdatePayment(ctx, paymentID, payload); err != nil {
			log.Printf("Order status sweep: updating payment %s failed: %v", paymentID, err)
		}
	}
}

// Schedule registers the sweep on the given cron runner.
func (u *OrderStatusUpdater) Schedule(c *cron.Cron, spec string) error {
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		u.RunOnce(ctx)
	})
	return err
}
