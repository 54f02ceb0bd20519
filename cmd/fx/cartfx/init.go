package cartfx

import (
	"go.uber.org/fx"

	"storengine/internal/api/controllers"
	"storengine/internal/services"
)

var Module = fx.Provide(
	services.NewCartService,
	controllers.NewCartController,
)
