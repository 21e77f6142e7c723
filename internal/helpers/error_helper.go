package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/linkpay/internal/payments"
	"github.com/farellandr/linkpay/internal/toss"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithDomainError maps payment lifecycle errors to HTTP statuses.
func RespondWithDomainError(c *gin.Context, err error) {
	var validationErr *payments.ValidationError
	var gatewayErr *toss.GatewayError

	switch {
	case errors.Is(err, payments.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, "Payment not found.")
	case errors.As(err, &validationErr):
		RespondWithError(c, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, payments.ErrInvalidState),
		errors.Is(err, payments.ErrAmountMismatch),
		errors.Is(err, payments.ErrMissingPaymentKey):
		RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.As(err, &gatewayErr):
		RespondWithError(c, http.StatusBadRequest, gatewayErr.Message)
	default:
		RespondWithError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
	}
}
