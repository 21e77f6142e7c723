package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/farellandr/linkpay/internal/toss"
)

func TossMiddleware(tossClient *toss.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("toss_client", tossClient)
		c.Next()
	}
}

func GetTossClient(c *gin.Context) *toss.Client {
	client, exists := c.Get("toss_client")
	if !exists {
		return nil
	}
	return client.(*toss.Client)
}
