package accountfx

import (
	"go.uber.org/fx"

	"storengine/internal/api/controllers"
	"storengine/internal/services"
)

var Module = fx.Provide(
	services.NewAccountService,
	controllers.NewAccountController,
)
