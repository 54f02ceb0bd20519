package dbfx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"storengine/internal/infra"
	"storengine/internal/repositories"
)

var Module = fx.Provide(
	provideDB,
	repositories.NewTxManager,
	repositories.NewProductRepository,
	repositories.NewCartRepository,
	repositories.NewAddressRepository,
	repositories.NewOrderRepository,
	repositories.NewInvoiceRepository,
	repositories.NewPaymentRepository,
	repositories.NewPacketRepository,
	repositories.NewAutomationRepository,
	repositories.NewUserRepository,
)

func provideDB() *gorm.DB {
	return infra.InitPostgresql()
}
