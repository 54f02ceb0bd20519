package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"storengine/internal/models/db_models"
)

func TestRunOncePollsUnpaidOnlineOrders(t *testing.T) {
	orders := new(mockOrderRepo)
	payments := new(mockPaymentService)
	updater := NewOrderStatusUpdater(orders, payments)

	payment := &db_models.GopayPayment{PaymentID: "3001", PaymentStatus: "CREATED"}
	payment.ID = uuid.New()

	order := db_models.Order{OrderNumber: "240100060", GopayPayment: payment}
	order.ID = uuid.New()

	payload := map[string]interface{}{"state": "PAID"}

	orders.On("ListUnpaidOnline", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
		return time.Since(cutoff) > 47*time.Hour && time.Since(cutoff) < 49*time.Hour
	})).Return([]db_models.Order{order}, nil)
	payments.On("GetPaymentDetails", mock.Anything, "3001").Return(payload, nil)
	payments.On("CreateOrUpdatePayment", mock.Anything, "3001", payload).
		Return(&db_models.GopayPayment{}, nil)

	updater.RunOnce(context.Background())

	orders.AssertExpectations(t)
	payments.AssertExpectations(t)
}

func TestRunOnceSkipsOrdersWithoutPaymentSession(t *testing.T) {
	orders := new(mockOrderRepo)
	payments := new(mockPaymentService)
	updater := NewOrderStatusUpdater(orders, payments)

	order := db_models.Order{OrderNumber: "240100061"}
	order.ID = uuid.New()

	orders.On("ListUnpaidOnline", mock.Anything, mock.Anything).Return([]db_models.Order{order}, nil)

	updater.RunOnce(context.Background())

	payments.AssertNotCalled(t, "GetPaymentDetails", mock.Anything, mock.Anything)
}

func TestRunOnceContinuesPastGatewayFailures(t *testing.T) {
	orders := new(mockOrderRepo)
	payments := new(mockPaymentService)
	updater := NewOrderStatusUpdater(orders, payments)

	first := &db_models.GopayPayment{PaymentID: "3001"}
	first.ID = uuid.New()
	second := &db_models.GopayPayment{PaymentID: "3002"}
	second.ID = uuid.New()

	orderA := db_models.Order{OrderNumber: "240100062", GopayPayment: first}
	orderA.ID = uuid.New()
	orderB := db_models.Order{OrderNumber: "240100063", GopayPayment: second}
	orderB.ID = uuid.New()

	payload := map[string]interface{}{"state": "PAID"}

	orders.On("ListUnpaidOnline", mock.Anything, mock.Anything).Return([]db_models.Order{orderA, orderB}, nil)
	payments.On("GetPaymentDetails", mock.Anything, "3001").Return(nil, context.DeadlineExceeded)
	payments.On("GetPaymentDetails", mock.Anything, "3002").Return(payload, nil)
	payments.On("CreateOrUpdatePayment", mock.Anything, "3002", payload).
		Return(&db_models.GopayPayment{}, nil)

	updater.RunOnce(context.Background())

	payments.AssertExpectations(t)
	payments.AssertNotCalled(t, "CreateOrUpdatePayment", mock.Anything, "3001", mock.Anything)
}
