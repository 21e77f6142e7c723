package toss

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/farellandr/linkpay/internal/telemetry"
)

const DefaultBaseURL = "https://api.tosspayments.com"

// Cancel reasons forwarded to the gateway. Refund and admin cancel hit the
// same endpoint and differ only in this text.
const (
	CancelReasonAdmin  = "관리자 취소"
	CancelReasonRefund = "고객 요청에 의한 환불"
)

const UnknownMethod = "UNKNOWN"

// GatewayError is the only error kind the client surfaces. Message carries
// the gateway-provided message when the response body had one.
type GatewayError struct {
	Code    string
	Message string
}

func (e *GatewayError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway error %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("gateway error: %s", e.Message)
}

// ConfirmResult holds the fields of a successful confirm response the store
// persists.
type ConfirmResult struct {
	Method  string
	RawType string
}

type Client struct {
	BaseURL    string
	SecretKey  string
	ClientKey  string
	HTTPClient *http.Client
}

func NewClient(secretKey, clientKey string) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		SecretKey:  secretKey,
		ClientKey:  clientKey,
		HTTPClient: &http.Client{},
	}
}

// GetClientKey returns the key the payer-facing widget initializes with.
func (c *Client) GetClientKey() string {
	return c.ClientKey
}

// basicAuth builds the gateway credential: secret key with an empty password,
// base64-encoded.
func (c *Client) basicAuth() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.SecretKey+":"))
}

type confirmRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int    `json:"amount"`
}

type confirmResponse struct {
	Method string `json:"method"`
	Type   string `json:"type"`
}

type cancelRequest struct {
	CancelReason string `json:"cancelReason"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ConfirmTransaction finalizes a charge attempt against the gateway.
func (c *Client) ConfirmTransaction(ctx context.Context, paymentKey, orderID string, amount int) (*ConfirmResult, error) {
	body, err := c.post(ctx, "confirm", c.BaseURL+"/v1/payments/confirm", confirmRequest{
		PaymentKey: paymentKey,
		OrderID:    orderID,
		Amount:     amount,
	}, "payment confirmation failed")
	if err != nil {
		return nil, err
	}

	var result confirmResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &GatewayError{Message: "failed to parse gateway response"}
	}

	method := result.Method
	if method == "" {
		method = result.Type
	}
	if method == "" {
		method = UnknownMethod
	}

	return &ConfirmResult{Method: method, RawType: result.Type}, nil
}

// CancelTransaction cancels or refunds a confirmed charge by its payment key.
func (c *Client) CancelTransaction(ctx context.Context, paymentKey, reason string) error {
	_, err := c.post(ctx, "cancel", c.BaseURL+"/v1/payments/"+paymentKey+"/cancel", cancelRequest{
		CancelReason: reason,
	}, "payment cancellation failed")
	return err
}

func (c *Client) post(ctx context.Context, operation, url string, payload interface{}, fallbackMsg string) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, &GatewayError{Message: fallbackMsg}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, &GatewayError{Message: fallbackMsg}
	}
	httpReq.Header.Set("Authorization", c.basicAuth())
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		telemetry.GatewayRequests.WithLabelValues(operation, "transport_error").Inc()
		telemetry.Logger.Warn("Gateway request failed",
			zap.String("operation", operation),
			zap.Error(err),
		)
		return nil, &GatewayError{Message: "failed to reach payment gateway"}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		telemetry.GatewayRequests.WithLabelValues(operation, "transport_error").Inc()
		return nil, &GatewayError{Message: "failed to read gateway response"}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		telemetry.GatewayRequests.WithLabelValues(operation, "rejected").Inc()

		var gatewayErr errorResponse
		if err := json.Unmarshal(body, &gatewayErr); err != nil || gatewayErr.Message == "" {
			gatewayErr.Message = fallbackMsg
		}
		telemetry.Logger.Warn("Gateway rejected request",
			zap.String("operation", operation),
			zap.Int("status", resp.StatusCode),
			zap.String("code", gatewayErr.Code),
		)
		return nil, &GatewayError{Code: gatewayErr.Code, Message: gatewayErr.Message}
	}

	telemetry.GatewayRequests.WithLabelValues(operation, "success").Inc()
	return body, nil
}
