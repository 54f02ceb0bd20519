package sweepfx

import (
	"context"
	"log"
	"os"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"

	"storengine/internal/services"
)

var Module = fx.Options(
	fx.Provide(services.NewOrderStatusUpdater),
	fx.Invoke(startSweep),
)

// startSweep schedules the payment reconciliation sweep for the app's
// lifetime. Default cadence is every 15 minutes.
func startSweep(lc fx.Lifecycle, updater *services.OrderStatusUpdater) {
	spec := os.Getenv("PAYMENT_SWEEP_CRON")
	if spec == "" {
		spec = "*/15 * * * *"
	}

	runner := cron.New()
	if err := updater.Schedule(runner, spec); err != nil {
		log.Fatalf("Invalid payment sweep schedule %q: %v", spec, err)
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			runner.Start()
			log.Printf("Payment reconciliation sweep scheduled: %s", spec)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			<-runner.Stop().Done()
			return nil
		},
	})
}
