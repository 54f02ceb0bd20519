package infra

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storengine/internal/models/db_models"
)

func InitPostgresql() *gorm.DB {

	dsn := os.Getenv("POSTGRES_URL")

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		log.Printf("Error connecting to database: %v", err)
		log.Fatal("Error connecting to database")
	}

	if err := connectionPool.AutoMigrate(
		&db_models.Category{},
		&db_models.ProductType{},
		&db_models.Product{},
		&db_models.ProductVariant{},
		&db_models.Cart{},
		&db_models.CartItem{},
		&db_models.Address{},
		&db_models.BillingType{},
		&db_models.Order{},
		&db_models.OrderItem{},
		&db_models.OrderSequence{},
		&db_models.Invoice{},
		&db_models.GopayPayment{},
		&db_models.Packet{},
		&db_models.Trigger{},
		&db_models.Automation{},
		&db_models.Action{},
		&db_models.Email{},
		&db_models.EmailAttachment{},
		&db_models.ShopUser{},
		&db_models.QuizRecord{},
	); err != nil {
		log.Fatalf("Error migrating database schema: %v", err)
	}

	return connectionPool
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting database instance: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("PostgreSQL database connection closed successfully")
	}
}
