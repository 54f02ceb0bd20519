package paymentfx

import (
	"os"

	"go.uber.org/fx"

	"storengine/internal/api/controllers"
	"storengine/internal/infra/gopay"
	"storengine/internal/repositories"
	"storengine/internal/services"
)

var Module = fx.Provide(
	provideGateway,
	providePaymentService,
	controllers.NewPaymentController,
)

func provideGateway() services.PaymentGateway {
	return gopay.NewClient(gopay.Config{
		GoID:         os.Getenv("GOPAY_GOID"),
		ClientID:     os.Getenv("GOPAY_CLIENT_ID"),
		ClientSecret: os.Getenv("GOPAY_CLIENT_SECRET"),
		GatewayURL:   os.Getenv("GOPAY_GATEWAY_URL"),
		ReturnURL:    os.Getenv("GOPAY_RETURN_URL"),
		NotifyURL:    os.Getenv("GOPAY_NOTIFY_URL"),
	})
}

func providePaymentService(
	gateway services.PaymentGateway,
	payments repositories.IPaymentRepository,
	orders repositories.IOrderRepository,
	mail services.IMailService,
) services.IPaymentService {
	return services.NewPaymentService(gateway, payments, orders, mail)
}
