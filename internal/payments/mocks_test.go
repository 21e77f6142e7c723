package payments

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/farellandr/linkpay/internal/models"
	"github.com/farellandr/linkpay/internal/toss"
)

// Common test errors
var (
	ErrMockRepository = errors.New("mock repository error")
)

// MockRepository implements Repository for testing. Records are stored by
// value so a Save is required for mutations to stick, mirroring the real
// read-modify-write cycle.
type MockRepository struct {
	mu       sync.Mutex
	Records  map[uuid.UUID]models.Payment
	order    []uuid.UUID
	SaveFunc func(ctx context.Context, payment *models.Payment) error
	FailSave bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		Records: make(map[uuid.UUID]models.Payment),
	}
}

func (m *MockRepository) Create(ctx context.Context, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	m.Records[payment.ID] = *payment
	m.order = append(m.order, payment.ID)
	return nil
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.Records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &record, nil
}

func (m *MockRepository) FindAll(ctx context.Context) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]models.Payment, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		if record, ok := m.Records[m.order[i]]; ok {
			result = append(result, record)
		}
	}
	return result, nil
}

func (m *MockRepository) Save(ctx context.Context, payment *models.Payment) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, payment)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailSave {
		return ErrMockRepository
	}
	m.Records[payment.ID] = *payment
	return nil
}

func (m *MockRepository) Delete(ctx context.Context, payment *models.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Records[payment.ID]; !ok {
		return ErrNotFound
	}
	delete(m.Records, payment.ID)
	return nil
}

func (m *MockRepository) DeleteAll(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := int64(len(m.Records))
	m.Records = make(map[uuid.UUID]models.Payment)
	m.order = nil
	return count, nil
}

// MockGateway implements Gateway for testing
type MockGateway struct {
	mu          sync.Mutex
	ConfirmFunc func(ctx context.Context, paymentKey, orderID string, amount int) (*toss.ConfirmResult, error)
	CancelFunc  func(ctx context.Context, paymentKey, reason string) error

	ConfirmCalls int
	CancelCalls  int
	LastReason   string
	LastKey      string
}

func (m *MockGateway) ConfirmTransaction(ctx context.Context, paymentKey, orderID string, amount int) (*toss.ConfirmResult, error) {
	m.mu.Lock()
	m.ConfirmCalls++
	m.LastKey = paymentKey
	m.mu.Unlock()

	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, paymentKey, orderID, amount)
	}
	return &toss.ConfirmResult{Method: "카드"}, nil
}

func (m *MockGateway) CancelTransaction(ctx context.Context, paymentKey, reason string) error {
	m.mu.Lock()
	m.CancelCalls++
	m.LastKey = paymentKey
	m.LastReason = reason
	m.mu.Unlock()

	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, paymentKey, reason)
	}
	return nil
}
