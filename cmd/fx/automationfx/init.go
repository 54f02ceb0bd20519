package automationfx

import (
	"go.uber.org/fx"

	"storengine/internal/services"
)

var Module = fx.Provide(services.NewAutomationService)
