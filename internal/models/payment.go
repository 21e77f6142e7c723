package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "PENDING"
	StatusCompleted PaymentStatus = "COMPLETED"
	StatusFailed    PaymentStatus = "FAILED"
	StatusCancelled PaymentStatus = "CANCELLED"
)

// PaymentItem is presentational line-item metadata. The payment amount is
// supplied independently at creation and is never recomputed from items.
type PaymentItem struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

type PaymentItems []PaymentItem

func (items PaymentItems) Value() (driver.Value, error) {
	if items == nil {
		return nil, nil
	}
	return json.Marshal(items)
}

func (items *PaymentItems) Scan(value interface{}) error {
	if value == nil {
		*items = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	default:
		return fmt.Errorf("unsupported type for payment items: %T", value)
	}
}

type Payment struct {
	ID            uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Title         string        `gorm:"not null" json:"title"`
	Amount        int           `gorm:"not null" json:"amount"`
	Description   string        `json:"description,omitempty"`
	Items         PaymentItems  `gorm:"type:jsonb" json:"items,omitempty"`
	Status        PaymentStatus `gorm:"not null;default:'PENDING'" json:"status"`
	PayerEmail    *string       `json:"payerEmail,omitempty"`
	PaymentKey    *string       `json:"paymentKey,omitempty"`
	PaymentMethod *string       `json:"paymentMethod,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
}

func (payment *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	return
}
