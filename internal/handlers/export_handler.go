package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/farellandr/linkpay/internal/helpers"
	"github.com/farellandr/linkpay/internal/middleware"
)

const exportSheet = "Payments"

// ExportPayments streams the full payment ledger as an xlsx workbook.
func ExportPayments(c *gin.Context) {
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

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to build export file.")
		return
	}

	headers := []interface{}{"ID", "Title", "Amount", "Status", "Method", "Payment Key", "Created At", "Paid At"}
	if err := f.SetSheetRow(exportSheet, "A1", &headers); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to build export file.")
		return
	}

	for i, payment := range paymentList {
		method := ""
		if payment.PaymentMethod != nil {
			method = *payment.PaymentMethod
		}
		paymentKey := ""
		if payment.PaymentKey != nil {
			paymentKey = *payment.PaymentKey
		}
		paidAt := ""
		if payment.PaidAt != nil {
			paidAt = payment.PaidAt.Format(time.RFC3339)
		}

		row := []interface{}{
			payment.ID.String(),
			payment.Title,
			payment.Amount,
			string(payment.Status),
			method,
			paymentKey,
			payment.CreatedAt.Format(time.RFC3339),
			paidAt,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to build export file.")
			return
		}
	}

	c.Header("Content-Disposition", `attachment; filename="payments.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to write export file.")
	}
}
