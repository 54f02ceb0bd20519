package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"storengine/internal/infra/gopay"
	"storengine/internal/models/db_models"
	"storengine/internal/repositories"
	"storengine/pkg/utils"
)

// PaymentGateway is the narrow surface of the external processor the shop
// depends on. Satisfied by *gopay.Client.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, r gopay.CreatePaymentRequest) (*gopay.PaymentSession, error)
	GetStatus(ctx context.Context, paymentID string) (map[string]interface{}, error)
}

// IPaymentService is the single source of truth for "is this order paid".
type IPaymentService interface {
	GetPaymentDetails(ctx context.Context, paymentID string) (map[string]interface{}, error)

	// CreateOrUpdatePayment idempotently mirrors a gateway payload and
	// propagates the paid flag to every order referencing the payment.
	// Replaying an identical payload is a no-op.
	CreateOrUpdatePayment(ctx context.Context, paymentID string, payload map[string]interface{}) (*db_models.GopayPayment, error)

	// CreatePaymentSession opens a gateway session for the order, records a
	// pending payment mirror and returns the redirect URL.
	CreatePaymentSession(ctx context.Context, order *db_models.Order) (string, error)

	// Notify handles the gateway's fire-and-forget webhook.
	Notify(ctx context.Context, paymentID string) error

	// Callback resolves the post-payment return: re-fetches status (the
	// webhook may have raced the page load), links the payment to the
	// order and reports whether it is paid.
	Callback(ctx context.Context, orderNumber, paymentID string) (*db_models.Order, error)
}

type PaymentService struct {
	gateway  PaymentGateway
	payments repositories.IPaymentRepository
	orders   repositories.IOrderRepository
	mail     IMailService
}

func NewPaymentService(
	gateway PaymentGateway,
	payments repositories.IPaymentRepository,
	orders repositories.IOrderRepository,
	mail IMailService,
) IPaymentService {
	return &PaymentService{
		gateway:  gateway,
		payments: payments,
		orders:   orders,
		mail:     mail,
	}
}

func (p *PaymentService) GetPaymentDetails(ctx context.Context, paymentID string) (map[string]interface{}, error) {
	return p.gateway.GetStatus(ctx, paymentID)
}

func (p *PaymentService) CreateOrUpdatePayment(ctx context.Context, paymentID string, payload map[string]interface{}) (*db_models.GopayPayment, error) {
	if paymentID == "" {
		return nil, utils.ErrMissingPaymentID
	}

	state, _ := payload["state"].(string)
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	payment := &db_models.GopayPayment{
		PaymentID:     paymentID,
		PaymentStatus: state,
		PaymentData:   raw,
	}
	payment.RecomputePaid()

	if err := p.payments.Upsert(ctx, payment); err != nil {
		return nil, err
	}
	// Re-read so we hold the persisted row (the upsert keeps the original
	// primary key on conflict).
	persisted, err := p.payments.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if persisted == nil {
		return nil, fmt.Errorf("payment %s vanished after upsert", paymentID)
	}

	if err := p.propagateToOrders(ctx, persisted); err != nil {
		return nil, err
	}
	return persisted, nil
}

// propagateToOrders mirrors the payment's paid flag onto every referencing
// order. The confirmation email is guarded by a sent flag so webhook replays
// never notify twice.
func (p *PaymentService) propagateToOrders(ctx context.Context, payment *db_models.GopayPayment) error {
	orders, err := p.orders.ListByPaymentID(ctx, payment.ID)
	if err != nil {
		return err
	}
	for i := range orders {
		order := &orders[i]
		order.IsPaid = payment.IsPaid
		sendConfirmation := payment.IsPaid && !order.ConfirmationEmailSent
		if sendConfirmation {
			order.ConfirmationEmailSent = true
		}
		if err := p.orders.Save(ctx, order); err != nil {
			return err
		}
		if sendConfirmation {
			p.sendPaidConfirmation(ctx, order)
		}
	}
	return nil
}

func (p *PaymentService) sendPaidConfirmation(ctx context.Context, order *db_models.Order) {
	if order.BillingAddress == nil || order.BillingAddress.Email == "" {
		return
	}
	confirmation := db_models.Email{
		Subject: fmt.Sprintf("Payment received for order %s", order.OrderNumber),
		Body: fmt.Sprintf(
			"<p>We have received your payment of %s for order %s. Thank you!</p>",
			utils.FormatAmountMinor(order.TotalPriceMinor, order.Currency),
			order.OrderNumber,
		),
	}
	_ = p.mail.SendNotification(ctx, &confirmation, []string{order.BillingAddress.Email})
}

func (p *PaymentService) CreatePaymentSession(ctx context.Context, order *db_models.Order) (string, error) {
	if order.BillingAddress == nil {
		return "", utils.ErrInvalidRequest
	}

	items := make([]gopay.Item, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, gopay.Item{
			Name:        item.Product.Name,
			AmountMinor: item.TotalPriceMinor,
		})
	}

	session, err := p.gateway.CreatePayment(ctx, gopay.CreatePaymentRequest{
		Contact: gopay.Contact{
			FirstName:   order.BillingAddress.FirstName,
			LastName:    order.BillingAddress.LastName,
			Email:       order.BillingAddress.Email,
			PhoneNumber: order.BillingAddress.Phone,
			City:        order.BillingAddress.City,
			Street:      order.BillingAddress.Address1,
			PostalCode:  order.BillingAddress.ZipCode,
			CountryCode: order.BillingAddress.Country,
		},
		AmountMinor: order.TotalPriceMinor,
		Currency:    order.Currency,
		OrderNumber: order.OrderNumber,
		Items:       items,
	})
	if err != nil {
		log.Printf("GoPay payment creation failed for order %s: %v", order.OrderNumber, err)
		return "", utils.ErrGatewayUnavailable
	}

	// Record the pending mirror up front so the reconciliation sweep can
	// poll this order even if neither webhook nor callback ever arrives.
	payment := &db_models.GopayPayment{
		PaymentID:     session.PaymentID,
		PaymentStatus: "CREATED",
	}
	payment.RecomputePaid()
	if err := p.payments.Upsert(ctx, payment); err != nil {
		return "", err
	}
	persisted, err := p.payments.GetByPaymentID(ctx, session.PaymentID)
	if err != nil {
		return "", err
	}
	if persisted == nil {
		return "", fmt.Errorf("payment %s vanished after upsert", session.PaymentID)
	}
	order.GopayPaymentID = &persisted.ID
	if err := p.orders.Save(ctx, order); err != nil {
		return "", err
	}

	return session.GatewayURL, nil
}

func (p *PaymentService) Notify(ctx context.Context, paymentID string) error {
	if paymentID == "" {
		return utils.ErrMissingPaymentID
	}
	payload, err := p.gateway.GetStatus(ctx, paymentID)
	if err != nil {
		log.Printf("GoPay status fetch failed for payment %s: %v", paymentID, err)
		return utils.ErrGatewayUnavailable
	}
	_, err = p.CreateOrUpdatePayment(ctx, paymentID, payload)
	return err
}

func (p *PaymentService) Callback(ctx context.Context, orderNumber, paymentID string) (*db_models.Order, error) {
	if paymentID == "" {
		return nil, utils.ErrMissingPaymentID
	}
	order, err := p.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, utils.ErrOrderNotFound
	}

	payload, err := p.gateway.GetStatus(ctx, paymentID)
	if err != nil {
		log.Printf("GoPay status fetch failed for payment %s: %v", paymentID, err)
		return nil, utils.ErrGatewayUnavailable
	}

	payment, err := p.CreateOrUpdatePayment(ctx, paymentID, payload)
	if err != nil {
		return nil, err
	}

	if order.GopayPaymentID == nil || *order.GopayPaymentID != payment.ID {
		order.GopayPaymentID = &payment.ID
	}
	order.IsPaid = payment.IsPaid
	if err := p.orders.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
