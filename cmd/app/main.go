package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"storengine/cmd/fx/accountfx"
	"storengine/cmd/fx/automationfx"
	"storengine/cmd/fx/cartfx"
	"storengine/cmd/fx/catalogfx"
	"storengine/cmd/fx/checkoutfx"
	"storengine/cmd/fx/dbfx"
	"storengine/cmd/fx/mailfx"
	"storengine/cmd/fx/paymentfx"
	"storengine/cmd/fx/shippingfx"
	"storengine/cmd/fx/sweepfx"
	"storengine/internal/api/controllers"
	"storengine/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	app := fx.New(
		dbfx.Module,
		mailfx.Module,
		automationfx.Module,
		paymentfx.Module,
		shippingfx.Module,
		cartfx.Module,
		checkoutfx.Module,
		catalogfx.Module,
		accountfx.Module,
		sweepfx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	checkoutController *controllers.CheckoutController,
	paymentController *controllers.PaymentController,
	shippingController *controllers.ShippingController,
	accountController *controllers.AccountController,
) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CartSessionMiddleware())

	RegisterRoutes(r,
		productController,
		cartController,
		checkoutController,
		paymentController,
		shippingController,
		accountController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	checkoutController *controllers.CheckoutController,
	paymentController *controllers.PaymentController,
	shippingController *controllers.ShippingController,
	accountController *controllers.AccountController) {

	productsGroup := r.Group("/products")
	productsGroup.GET("", productController.ListProducts)
	productsGroup.GET("/:id", productController.GetProduct)

	cartGroup := r.Group("/cart")
	cartGroup.GET("", cartController.GetCart)
	cartGroup.POST("/items", cartController.AddToCart)

	r.POST("/checkout", checkoutController.Checkout)

	r.GET("/gopay-notify", paymentController.Notify)
	r.GET("/order/:order_number/callback", paymentController.Callback)

	packetsGroup := r.Group("/packets")
	packetsGroup.POST("/:id/status", shippingController.RefreshPacketStatus)
	packetsGroup.GET("/:id/label", shippingController.PacketLabel)

	accountsGroup := r.Group("/accounts")
	accountsGroup.POST("/register", accountController.SignUp)

	r.POST("/quiz-records", accountController.SubmitQuiz)
}
