package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storengine/internal/infra/gopay"
	"storengine/internal/models/db_models"
	"storengine/pkg/utils"
)

type paymentFixture struct {
	gateway  *mockGateway
	payments *mockPaymentRepo
	orders   *mockOrderRepo
	mail     *mockMailService
	svc      IPaymentService
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		gateway:  new(mockGateway),
		payments: new(mockPaymentRepo),
		orders:   new(mockOrderRepo),
		mail:     new(mockMailService),
	}
	f.svc = NewPaymentService(f.gateway, f.payments, f.orders, f.mail)
	return f
}

func storedPayment(paymentID, status string) *db_models.GopayPayment {
	p := &db_models.GopayPayment{PaymentID: paymentID, PaymentStatus: status}
	p.ID = uuid.New()
	p.RecomputePaid()
	return p
}

func TestCreateOrUpdatePaymentPropagatesPaidFlag(t *testing.T) {
	f := newPaymentFixture()

	persisted := storedPayment("3001", "PAID")
	order := db_models.Order{
		OrderNumber:    "240100001",
		BillingAddress: &db_models.Address{Email: "jana@example.com"},
	}
	order.ID = uuid.New()

	f.payments.On("Upsert", mock.Anything, mock.MatchedBy(func(p *db_models.GopayPayment) bool {
		return p.PaymentID == "3001" && p.IsPaid
	})).Return(nil)
	f.payments.On("GetByPaymentID", mock.Anything, "3001").Return(persisted, nil)
	f.orders.On("ListByPaymentID", mock.Anything, persisted.ID).Return([]db_models.Order{order}, nil)
	f.orders.On("Save", mock.Anything, mock.MatchedBy(func(o *db_models.Order) bool {
		return o.IsPaid && o.ConfirmationEmailSent
	})).Return(nil)
	f.mail.On("SendNotification", mock.Anything, mock.AnythingOfType("*db_models.Email"), []string{"jana@example.com"}).Return(nil)

	payment, err := f.svc.CreateOrUpdatePayment(context.Background(), "3001", map[string]interface{}{"state": "PAID"})

	assert.NoError(t, err)
	assert.True(t, payment.IsPaid)
	f.mail.AssertExpectations(t)
}

func TestCreateOrUpdatePaymentDoesNotResendConfirmation(t *testing.T) {
	f := newPaymentFixture()

	persisted := storedPayment("3001", "PAID")
	order := db_models.Order{
		OrderNumber:           "240100001",
		ConfirmationEmailSent: true,
		BillingAddress:        &db_models.Address{Email: "jana@example.com"},
	}
	order.ID = uuid.New()

	f.payments.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.payments.On("GetByPaymentID", mock.Anything, "3001").Return(persisted, nil)
	f.orders.On("ListByPaymentID", mock.Anything, persisted.ID).Return([]db_models.Order{order}, nil)
	f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.CreateOrUpdatePayment(context.Background(), "3001", map[string]interface{}{"state": "PAID"})

	assert.NoError(t, err)
	f.mail.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrUpdatePaymentUnpaidState(t *testing.T) {
	f := newPaymentFixture()

	persisted := storedPayment("3002", "CANCELED")

	f.payments.On("Upsert", mock.Anything, mock.MatchedBy(func(p *db_models.GopayPayment) bool {
		return !p.IsPaid
	})).Return(nil)
	f.payments.On("GetByPaymentID", mock.Anything, "3002").Return(persisted, nil)
	f.orders.On("ListByPaymentID", mock.Anything, persisted.ID).Return([]db_models.Order{}, nil)

	payment, err := f.svc.CreateOrUpdatePayment(context.Background(), "3002", map[string]interface{}{"state": "CANCELED"})

	assert.NoError(t, err)
	assert.False(t, payment.IsPaid)
}

func TestNotifyRejectsMissingPaymentID(t *testing.T) {
	f := newPaymentFixture()

	err := f.svc.Notify(context.Background(), "")

	assert.ErrorIs(t, err, utils.ErrMissingPaymentID)
	f.gateway.AssertNotCalled(t, "GetStatus", mock.Anything, mock.Anything)
}

func TestNotifyFetchesStatusAndStores(t *testing.T) {
	f := newPaymentFixture()

	persisted := storedPayment("3003", "PAID")

	f.gateway.On("GetStatus", mock.Anything, "3003").Return(map[string]interface{}{"state": "PAID"}, nil)
	f.payments.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.payments.On("GetByPaymentID", mock.Anything, "3003").Return(persisted, nil)
	f.orders.On("ListByPaymentID", mock.Anything, persisted.ID).Return([]db_models.Order{}, nil)

	err := f.svc.Notify(context.Background(), "3003")

	assert.NoError(t, err)
	f.gateway.AssertExpectations(t)
}

func TestCreatePaymentSessionLinksOrder(t *testing.T) {
	f := newPaymentFixture()

	order := &db_models.Order{
		OrderNumber:     "240100009",
		TotalPriceMinor: 50000,
		Currency:        "CZK",
		BillingAddress:  &db_models.Address{FirstName: "Jana", LastName: "Nova", Email: "jana@example.com"},
		Items: []db_models.OrderItem{{
			Quantity:        1,
			TotalPriceMinor: 50000,
			Product:         db_models.Product{Name: "Course"},
		}},
	}
	order.ID = uuid.New()

	persisted := storedPayment("4001", "CREATED")
	persisted.PaymentID = "4001"

	f.gateway.On("CreatePayment", mock.Anything, mock.MatchedBy(func(r gopay.CreatePaymentRequest) bool {
		return r.OrderNumber == "240100009" && r.AmountMinor == 50000 && len(r.Items) == 1
	})).Return(&gopay.PaymentSession{PaymentID: "4001", GatewayURL: "https://gw/pay/4001"}, nil)
	f.payments.On("Upsert", mock.Anything, mock.MatchedBy(func(p *db_models.GopayPayment) bool {
		return p.PaymentID == "4001" && p.PaymentStatus == "CREATED" && !p.IsPaid
	})).Return(nil)
	f.payments.On("GetByPaymentID", mock.Anything, "4001").Return(persisted, nil)
	f.orders.On("Save", mock.Anything, mock.MatchedBy(func(o *db_models.Order) bool {
		return o.GopayPaymentID != nil && *o.GopayPaymentID == persisted.ID
	})).Return(nil)

	url, err := f.svc.CreatePaymentSession(context.Background(), order)

	assert.NoError(t, err)
	assert.Equal(t, "https://gw/pay/4001", url)
	f.orders.AssertExpectations(t)
}

func TestCreatePaymentSessionGatewayFailure(t *testing.T) {
	f := newPaymentFixture()

	order := &db_models.Order{
		OrderNumber:    "240100010",
		BillingAddress: &db_models.Address{Email: "jana@example.com"},
	}
	order.ID = uuid.New()

	f.gateway.On("CreatePayment", mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	_, err := f.svc.CreatePaymentSession(context.Background(), order)

	assert.ErrorIs(t, err, utils.ErrGatewayUnavailable)
	f.payments.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCreatePaymentSessionMissingMirrorFailsCleanly(t *testing.T) {
	f := newPaymentFixture()

	order := &db_models.Order{
		OrderNumber:    "240100010",
		BillingAddress: &db_models.Address{Email: "jana@example.com"},
	}
	order.ID = uuid.New()

	f.gateway.On("CreatePayment", mock.Anything, mock.Anything).
		Return(&gopay.PaymentSession{PaymentID: "4002", GatewayURL: "https://gw/pay/4002"}, nil)
	f.payments.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	// The re-read coming back empty must surface as an error, not a crash.
	f.payments.On("GetByPaymentID", mock.Anything, "4002").Return(nil, nil)

	_, err := f.svc.CreatePaymentSession(context.Background(), order)

	assert.Error(t, err)
	f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCallbackResolvesOrderState(t *testing.T) {
	f := newPaymentFixture()

	persisted := storedPayment("5001", "PAID")
	order := &db_models.Order{OrderNumber: "240100011"}
	order.ID = uuid.New()

	f.orders.On("GetByOrderNumber", mock.Anything, "240100011").Return(order, nil)
	f.gateway.On("GetStatus", mock.Anything, "5001").Return(map[string]interface{}{"state": "PAID"}, nil)
	f.payments.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	f.payments.On("GetByPaymentID", mock.Anything, "5001").Return(persisted, nil)
	f.orders.On("ListByPaymentID", mock.Anything, persisted.ID).Return([]db_models.Order{}, nil)
	f.orders.On("Save", mock.Anything, mock.MatchedBy(func(o *db_models.Order) bool {
		return o.IsPaid && o.GopayPaymentID != nil && *o.GopayPaymentID == persisted.ID
	})).Return(nil)

	resolved, err := f.svc.Callback(context.Background(), "240100011", "5001")

	assert.NoError(t, err)
	assert.True(t, resolved.IsPaid)
}

func TestCallbackUnknownOrder(t *testing.T) {
	f := newPaymentFixture()

	f.orders.On("GetByOrderNumber", mock.Anything, "nope").Return(nil, nil)

	_, err := f.svc.Callback(context.Background(), "nope", "5001")

	assert.ErrorIs(t, err, utils.ErrOrderNotFound)
}
