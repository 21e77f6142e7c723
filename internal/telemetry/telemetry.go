package telemetry

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide structured logger. It is a no-op until
// InitTelemetry runs, so packages can log unconditionally in tests.
var Logger = zap.NewNop()

var (
	PaymentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "linkpay_payments_created_total",
		Help: "Number of payment links created.",
	})

	PaymentConfirmations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkpay_payment_confirmations_total",
		Help: "Number of payment confirmation attempts by result.",
	}, []string{"result"})

	GatewayRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "linkpay_gateway_requests_total",
		Help: "Number of outbound gateway calls by operation and outcome.",
	}, []string{"operation", "outcome"})
)

// InitTelemetry initializes the structured logger.
func InitTelemetry(serviceName string) error {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	Logger = logger
	Logger.Info("Telemetry initialized", zap.String("service", serviceName))
	return nil
}

// Shutdown flushes any buffered log entries.
func Shutdown() error {
	return Logger.Sync()
}
