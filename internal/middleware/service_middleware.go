package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/farellandr/linkpay/internal/payments"
)

func PaymentServiceMiddleware(service *payments.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("payment_service", service)
		c.Next()
	}
}

func GetPaymentService(c *gin.Context) *payments.Service {
	service, exists := c.Get("payment_service")
	if !exists {
		return nil
	}
	return service.(*payments.Service)
}
