package payments

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/farellandr/linkpay/internal/models"
	"github.com/farellandr/linkpay/internal/telemetry"
	"github.com/farellandr/linkpay/internal/toss"
)

// MinAmount is the smallest amount the gateway accepts, in the smallest
// currency unit.
const MinAmount = 100

// Repository is the persistence contract for payment records.
type Repository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	FindAll(ctx context.Context) ([]models.Payment, error)
	Save(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, payment *models.Payment) error
	DeleteAll(ctx context.Context) (int64, error)
}

// Gateway is the outbound contract to the payment gateway.
type Gateway interface {
	ConfirmTransaction(ctx context.Context, paymentKey, orderID string, amount int) (*toss.ConfirmResult, error)
	CancelTransaction(ctx context.Context, paymentKey, reason string) error
}

type CreateInput struct {
	Title       string
	Amount      int
	Description string
	Items       models.PaymentItems
}

type ConfirmInput struct {
	PaymentKey string
	OrderID    string
	Amount     int
}

// Service owns the payment lifecycle. Confirm, cancel and refund serialize
// per record so two concurrent submits cannot both pass the status guard.
type Service struct {
	repo    Repository
	gateway Gateway
	locks   sync.Map
}

func NewService(repo Repository, gateway Gateway) *Service {
	return &Service{
		repo:    repo,
		gateway: gateway,
	}
}

func (s *Service) lockPayment(id uuid.UUID) func() {
	value, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*models.Payment, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, &ValidationError{Message: "title is required"}
	}
	if input.Amount < MinAmount {
		return nil, &ValidationError{Message: "amount must be at least 100"}
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.Name) == "" {
			return nil, &ValidationError{Message: "item name is required"}
		}
		if item.Price < 1 || item.Quantity < 1 {
			return nil, &ValidationError{Message: "item price and quantity must be at least 1"}
		}
	}

	payment := &models.Payment{
		Title:       input.Title,
		Amount:      input.Amount,
		Description: input.Description,
		Items:       input.Items,
		Status:      models.StatusPending,
	}

	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, err
	}

	telemetry.PaymentsCreated.Inc()
	telemetry.Logger.Info("Payment link created",
		zap.String("payment_id", payment.ID.String()),
		zap.Int("amount", payment.Amount),
	)
	return payment, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]models.Payment, error) {
	return s.repo.FindAll(ctx)
}

// Confirm finalizes a payer's transaction attempt. A gateway failure,
// including a transport failure, marks the payment FAILED before the error
// propagates.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, input ConfirmInput) (*models.Payment, error) {
	unlock := s.lockPayment(id)
	defer unlock()

	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payment.Status != models.StatusPending {
		return nil, ErrAlreadyProcessed
	}
	if payment.Amount != input.Amount {
		return nil, ErrAmountMismatch
	}

	result, err := s.gateway.ConfirmTransaction(ctx, input.PaymentKey, input.OrderID, input.Amount)
	if err != nil {
		payment.Status = models.StatusFailed
		if saveErr := s.repo.Save(ctx, payment); saveErr != nil {
			return nil, saveErr
		}
		telemetry.PaymentConfirmations.WithLabelValues("failed").Inc()
		telemetry.Logger.Warn("Payment confirmation failed",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	now := time.Now()
	paymentKey := input.PaymentKey
	method := result.Method

	payment.Status = models.StatusCompleted
	payment.PaidAt = &now
	payment.PaymentKey = &paymentKey
	payment.PaymentMethod = &method

	if err := s.repo.Save(ctx, payment); err != nil {
		return nil, err
	}

	telemetry.PaymentConfirmations.WithLabelValues("completed").Inc()
	telemetry.Logger.Info("Payment completed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("method", method),
	)
	return payment, nil
}

// Cancel marks a payment CANCELLED. A completed payment is reversed at the
// gateway first; if that call fails the local status is left untouched.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	unlock := s.lockPayment(id)
	defer unlock()

	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payment.Status == models.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	if payment.Status == models.StatusCompleted && payment.PaymentKey != nil {
		if err := s.gateway.CancelTransaction(ctx, *payment.PaymentKey, toss.CancelReasonAdmin); err != nil {
			return nil, err
		}
	}

	payment.Status = models.StatusCancelled
	if err := s.repo.Save(ctx, payment); err != nil {
		return nil, err
	}

	telemetry.Logger.Info("Payment cancelled", zap.String("payment_id", payment.ID.String()))
	return payment, nil
}

// Refund reverses a completed charge. It converges to the same CANCELLED
// terminal state as Cancel.
func (s *Service) Refund(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	unlock := s.lockPayment(id)
	defer unlock()

	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payment.Status != models.StatusCompleted {
		return nil, ErrNotRefundable
	}
	if payment.PaymentKey == nil {
		return nil, ErrMissingPaymentKey
	}

	if err := s.gateway.CancelTransaction(ctx, *payment.PaymentKey, toss.CancelReasonRefund); err != nil {
		return nil, err
	}

	payment.Status = models.StatusCancelled
	if err := s.repo.Save(ctx, payment); err != nil {
		return nil, err
	}

	telemetry.Logger.Info("Payment refunded", zap.String("payment_id", payment.ID.String()))
	return payment, nil
}

// Delete removes a record regardless of its status.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, payment)
}

// DeleteAll removes every record and returns how many were removed.
func (s *Service) DeleteAll(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}
