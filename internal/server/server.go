package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farellandr/linkpay/config"
	"github.com/farellandr/linkpay/internal/handlers"
	"github.com/farellandr/linkpay/internal/middleware"
	"github.com/farellandr/linkpay/internal/payments"
	"github.com/farellandr/linkpay/internal/telemetry"
	"github.com/farellandr/linkpay/internal/toss"
)

func Start() error {
	if err := telemetry.InitTelemetry("linkpay"); err != nil {
		return fmt.Errorf("failed to initialize telemetry: %v", err)
	}
	defer telemetry.Shutdown()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	tossCfg, err := config.LoadTossConfig()
	if err != nil {
		return fmt.Errorf("failed to load toss config: %v", err)
	}

	authCfg, err := config.LoadAuthConfig()
	if err != nil {
		return fmt.Errorf("failed to load auth config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	tossClient, err := config.InitTossClient(tossCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize toss client: %v", err)
	}

	service := payments.NewService(payments.NewGormRepository(db), tossClient)

	r := gin.Default()

	setupRoutes(r, service, tossClient, authCfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, service *payments.Service, tossClient *toss.Client, authCfg *config.AuthConfig) {
	r.Use(middleware.PaymentServiceMiddleware(service))
	r.Use(middleware.TossMiddleware(tossClient))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(authCfg)

	public := r.Group("/v1")
	{
		public.POST("/auth/login", authHandler.Login)

		paymentPublic := public.Group("/payments")
		{
			paymentPublic.GET("/client-key", handlers.GetClientKey)
			paymentPublic.GET("/:id", handlers.GetPayment)
			paymentPublic.GET("/:id/qr", handlers.GetPaymentQR)
			paymentPublic.POST("/:id/confirm", handlers.ConfirmPayment)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware(authCfg.JWTSecret))
	{
		protected.GET("/auth/verify", authHandler.Verify)

		paymentProtected := protected.Group("/payments")
		{
			paymentProtected.POST("", handlers.CreatePaymentLink)
			paymentProtected.GET("", handlers.ListPayments)
			paymentProtected.GET("/export", handlers.ExportPayments)
			paymentProtected.POST("/delete-all", handlers.DeleteAllPayments)
			paymentProtected.POST("/:id/cancel", handlers.CancelPayment)
			paymentProtected.POST("/:id/refund", handlers.RefundPayment)
			paymentProtected.DELETE("/:id", handlers.DeletePayment)
		}
	}
}
