package shippingfx

import (
	"os"

	"go.uber.org/fx"

	"storengine/internal/api/controllers"
	"storengine/internal/infra/packeta"
	"storengine/internal/repositories"
	"storengine/internal/services"
)

var Module = fx.Provide(
	provideCarrier,
	provideShippingService,
	controllers.NewShippingController,
)

func provideCarrier() services.PacketaCarrier {
	return packeta.NewClient(packeta.Config{
		BaseURL:     os.Getenv("PACKETA_API_URL"),
		APIPassword: os.Getenv("PACKETA_API_PASSWORD"),
		Eshop:       os.Getenv("PACKETA_ESHOP"),
	})
}

func provideShippingService(carrier services.PacketaCarrier, packets repositories.IPacketRepository) services.IShippingService {
	return services.NewShippingService(carrier, packets)
}
