package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/farellandr/linkpay/config"
	"github.com/farellandr/linkpay/internal/helpers"
	"github.com/farellandr/linkpay/internal/middleware"
	"github.com/farellandr/linkpay/internal/models"
	"github.com/farellandr/linkpay/internal/payments"
)

type PaymentItemRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Price    int    `json:"price" binding:"required,min=1"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type CreatePaymentRequest struct {
	Title       string               `json:"title" binding:"required,max=255"`
	Amount      int                  `json:"amount" binding:"required,min=100"`
	Description string               `json:"description" binding:"omitempty,max=255"`
	Items       []PaymentItemRequest `json:"items" binding:"omitempty,dive"`
}

// ConfirmPaymentRequest carries the gateway redirect parameters. The amount
// arrives as a string because it comes off the payer's query string.
type ConfirmPaymentRequest struct {
	PaymentKey string `json:"paymentKey" binding:"required"`
	OrderID    string `json:"orderId" binding:"required"`
	Amount     string `json:"amount" binding:"required"`
}

func CreatePaymentLink(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	service := middleware.GetPaymentService(c)
	if service == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment service not found.")
		return
	}

	var items models.PaymentItems
	for _, item := range req.Items {
		items = append(items, models.PaymentItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	payment, err := service.Create(c.Request.Context(), payments.CreateInput{
		Title:       req.Title,
		Amount:      req.Amount,
		Description: req.Description,
		Items:       items,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Payment link created successfully.",
		"payment_id":  payment.ID,
		"payment_url": "/pay/" + payment.ID.String(),
	})
}

func GetPayment(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID.")
		return
	}

	service := middleware.GetPaymentService(c)
	if service == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment service not found.")
		return
	}

	payment, err := service.Get(c.Request.Context(), paymentID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment": payment,
	})
}

func ListPayments(c *gin.Context) {
	service := middleware.GetPaymentService(c)
	if service == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment service not found.")
		return
	}

	paymentList, err := service.List(c.Request.Context())
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payments": paymentList,
		"total":    len(paymentList),
	})
}

func ConfirmPayment(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID.")
		return
	}

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	amount, err := helpers.StringToInt(req.Amount)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid amount format.")
		return
	}

	service := middleware.GetPaymentService(c)
	if service == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment service not found.")
		return
	}

	payment, err := service.Confirm(c.Request.Context(), paymentID, payments.ConfirmInput{
		PaymentKey: req.PaymentKey,
		OrderID:    req.OrderID,
		Amount:     amount,
	})
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment completed successfully.",
		"payment": payment,
	})
}

func CancelPayment(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID.")
		return
	}

	service := middleware.GetPaymentService(c)
	if service == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment service not found.")
		return
	}

	payment, err := service.Cancel(c.Request.Context(), paymentID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment cancelled successfully.",
		"payment": payment,
	})
}

func RefundPayment(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID.")
		return
	}

	service := middleware.GetPaymentService(c)
	if service == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment service not found.")
		return
	}

	payment, err := service.Refund(c.Request.Context(), paymentID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment refunded successfully.",
		"payment": payment,
	})
}

func DeletePayment(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID.")
		return
	}

	service := middleware.GetPaymentService(c)
	if service == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment service not found.")
		return
	}

	if err := service.Delete(c.Request.Context(), paymentID); err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment deleted successfully.",
	})
}

func DeleteAllPayments(c *gin.Context) {
	service := middleware.GetPaymentService(c)
	if service == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment service not found.")
		return
	}

	count, err := service.DeleteAll(c.Request.Context())
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "All payments deleted successfully.",
		"deleted_count": count,
	})
}

func GetClientKey(c *gin.Context) {
	tossClient := middleware.GetTossClient(c)
	if tossClient == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment gateway client not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client_key": tossClient.GetClientKey(),
	})
}

// GetPaymentQR renders the shareable pay-page URL as a PNG QR code.
func GetPaymentQR(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID.")
		return
	}

	service := middleware.GetPaymentService(c)
	if service == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Payment service not found.")
		return
	}

	payment, err := service.Get(c.Request.Context(), paymentID)
	if err != nil {
		helpers.RespondWithDomainError(c, err)
		return
	}

	payURL := config.PublicBaseURL() + "/pay/" + payment.ID.String()
	qrImage, err := qrcode.Encode(payURL, qrcode.Medium, 256)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate QR code.")
		return
	}

	c.Data(http.StatusOK, "image/png", qrImage)
}
