package checkoutfx

import (
	"os"
	"strconv"

	"go.uber.org/fx"

	"storengine/internal/api/controllers"
	"storengine/internal/repositories"
	"storengine/internal/services"
)

var Module = fx.Provide(
	provideCheckoutService,
	controllers.NewCheckoutController,
)

func provideCheckoutService(
	tx repositories.ITxManager,
	orders repositories.IOrderRepository,
	payments services.IPaymentService,
	shipping services.IShippingService,
	automations services.IAutomationService,
) services.ICheckoutService {
	dueDays, err := strconv.Atoi(os.Getenv("INVOICE_DUE_DAYS"))
	if err != nil || dueDays <= 0 {
		dueDays = 14
	}

	cfg := services.CheckoutConfig{
		Env:            os.Getenv("ENV"),
		InvoiceDueDays: dueDays,
	}
	return services.NewCheckoutService(cfg, tx, orders, payments, shipping, automations)
}
