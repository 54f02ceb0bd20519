package services

import (
	"context"
	"log"
	"time"

	"storengine/internal/models/db_models"
	"storengine/internal/models/request_models"
	"storengine/internal/models/response_models"
	"storengine/internal/repositories"
	"storengine/pkg/utils"
)

// CheckoutConfig carries the environment-dependent checkout knobs.
type CheckoutConfig struct {
	// Env is prefixed to order numbers outside production.
	Env string
	// InvoiceDueDays is added to the order date to compute the invoice due
	// date.
	InvoiceDueDays int
}

type ICheckoutService interface {
	// Checkout turns the session's cart into an order: snapshots addresses
	// and prices, assigns the order number, decrements stock, creates the
	// invoice and deletes the cart, all in one transaction. Post-commit it
	// fires automations, opens the payment session for online orders and
	// registers the carrier shipment for pickup-point orders.
	Checkout(ctx context.Context, sessionToken string, req request_models.CheckoutRequest) (*response_models.CheckoutResponse, error)
}

type CheckoutService struct {
	cfg         CheckoutConfig
	tx          repositories.ITxManager
	orders      repositories.IOrderRepository
	payments    IPaymentService
	shipping    IShippingService
	automations IAutomationService
}

func NewCheckoutService(
	cfg CheckoutConfig,
	tx repositories.ITxManager,
	orders repositories.IOrderRepository,
	payments IPaymentService,
	shipping IShippingService,
	automations IAutomationService,
) ICheckoutService {
	return &CheckoutService{
		cfg:         cfg,
		tx:          tx,
		orders:      orders,
		payments:    payments,
		shipping:    shipping,
		automations: automations,
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, sessionToken string, req request_models.CheckoutRequest) (*response_models.CheckoutResponse, error) {
	now := time.Now()
	var order *db_models.Order

	err := s.tx.WithinTx(ctx, func(r repositories.TxRepos) error {
		cart, err := r.Carts().GetByToken(ctx, sessionToken)
		if err != nil {
			return err
		}
		if cart == nil || len(cart.Items) == 0 {
			return utils.ErrCartEmpty
		}

		billingTypeName := db_models.BillingTypeCash
		if req.PaymentIntent == "pay_now" {
			billingTypeName = db_models.BillingTypeCardOnline
		}
		if billingTypeName != db_models.BillingTypeCardOnline {
			for _, item := range cart.Items {
				if item.Product.MustBePaidOnline {
					return utils.ErrMustBePaidOnline
				}
			}
		}
		billingType, err := r.Orders().GetBillingTypeByName(ctx, billingTypeName)
		if err != nil {
			return err
		}
		if billingType == nil || !billingType.IsActive {
			return utils.ErrInvalidRequest
		}

		billing, err := resolveAddress(ctx, r.Addresses(), db_models.AddressKindBilling, req.BillingAddress)
		if err != nil {
			return err
		}
		shippingPayload := req.BillingAddress
		if req.ShippingAddress != nil {
			shippingPayload = *req.ShippingAddress
		}
		shipping, err := resolveAddress(ctx, r.Addresses(), db_models.AddressKindShipping, shippingPayload)
		if err != nil {
			return err
		}

		seq, err := r.Orders().NextSequence(ctx, utils.OrderPeriod(now))
		if err != nil {
			return err
		}

		order = &db_models.Order{
			OrderNumber:         utils.FormatOrderNumber(s.cfg.Env, now, seq),
			BillingAddressID:    &billing.ID,
			ShippingAddressID:   &shipping.ID,
			BillingTypeID:       &billingType.ID,
			NewsletterSubscribe: req.NewsletterSubscribe,
			PickupPointID:       req.PickupPointID,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			return err
		}

		items, total, currency, err := buildOrderItems(ctx, r.Products(), order, cart.Items)
		if err != nil {
			return err
		}
		if err := r.Orders().CreateItems(ctx, items); err != nil {
			return err
		}

		order.TotalPriceMinor = total
		if currency != "" {
			order.Currency = currency
		}
		if err := r.Orders().Save(ctx, order); err != nil {
			return err
		}

		invoice := &db_models.Invoice{
			OrderID: order.ID,
			DueDate: now.AddDate(0, 0, s.cfg.InvoiceDueDays),
		}
		if err := r.Invoices().Create(ctx, invoice); err != nil {
			return err
		}

		order.Items = items
		order.BillingAddress = billing
		order.ShippingAddress = shipping
		order.BillingType = billingType

		return r.Carts().Delete(ctx, cart.ID)
	})
	if err != nil {
		return nil, err
	}

	s.automations.OnOrderCreated(ctx, order)

	resp := &response_models.CheckoutResponse{
		OrderNumber: order.OrderNumber,
		ThankYou:    true,
	}

	if order.BillingType.IsOnline() {
		gatewayURL, err := s.payments.CreatePaymentSession(ctx, order)
		if err != nil {
			// The order stands; the customer can still pay via the
			// reconciliation path or a retry.
			return nil, err
		}
		resp.GatewayURL = gatewayURL
		resp.ThankYou = false
	}

	if order.PickupPointID != "" {
		s.shipping.CreatePacketForOrder(ctx, order)
	}

	return resp, nil
}

// resolveAddress reuses an identical stored address or creates a new one.
func resolveAddress(ctx context.Context, repo repositories.IAddressRepository, kind db_models.AddressKind, payload request_models.AddressPayload) (*db_models.Address, error) {
	addr := &db_models.Address{
		Kind:      kind,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Phone:     payload.Phone,
		Company:   payload.Company,
		Address1:  payload.Address1,
		ZipCode:   payload.ZipCode,
		City:      payload.City,
		Country:   payload.Country,
	}
	existing, err := repo.FindDuplicate(ctx, addr)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}
	if err := repo.Create(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// buildOrderItems snapshots cart lines into order items and decrements stock.
// When a variant no longer has the full requested amount the line is clamped
// to what remains; a line clamped to zero is dropped.
func buildOrderItems(ctx context.Context, products repositories.IProductRepository, order *db_models.Order, cartItems []db_models.CartItem) ([]db_models.OrderItem, int64, string, error) {
	items := make([]db_models.OrderItem, 0, len(cartItems))
	var total int64
	currency := ""

	for _, line := range cartItems {
		quantity := line.Amount

		if line.VariantID != nil {
			ok, err := products.DecrementStockIfEnough(ctx, *line.VariantID, quantity)
			if err != nil {
				return nil, 0, "", err
			}
			if !ok {
				variant, err := products.GetVariantForUpdate(ctx, *line.VariantID)
				if err != nil {
					return nil, 0, "", err
				}
				if variant == nil || variant.PcsInStock <= 0 {
					log.Printf("Order %s: variant %s sold out, dropping line", order.OrderNumber, line.VariantID)
					continue
				}
				log.Printf("Order %s: variant %s has %d pcs left, clamping requested %d",
					order.OrderNumber, line.VariantID, variant.PcsInStock, quantity)
				quantity = variant.PcsInStock
				if err := products.SetVariantStock(ctx, *line.VariantID, 0); err != nil {
					return nil, 0, "", err
				}
			}
		}

		item := db_models.OrderItem{
			OrderID:         order.ID,
			ProductID:       line.ProductID,
			VariantID:       line.VariantID,
			Quantity:        quantity,
			TotalPriceMinor: line.Product.PriceMinor * quantity,
			Currency:        line.Product.Currency,
		}
		item.Product = line.Product
		items = append(items, item)

		total += item.TotalPriceMinor
		if currency == "" {
			currency = item.Currency
		}
	}

	if len(items) == 0 {
		return nil, 0, "", utils.ErrOutOfStock
	}
	return items, total, currency, nil
}
