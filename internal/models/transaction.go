package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the payment state reported by the collaborator for a transaction.
type Status string

const (
	StatusSuccess   Status = "success"
	StatusPending   Status = "pending"
	StatusFailed    Status = "failed"
	StatusInitiated Status = "initiated"
	StatusUnknown   Status = "unknown"
)

// FilterableStatuses lists statuses a listing can be restricted to.
var FilterableStatuses = []Status{StatusSuccess, StatusPending, StatusFailed, StatusInitiated}

// ParseStatus maps a raw value onto a known status. Unrecognised values
// yield StatusUnknown and false.
func ParseStatus(raw string) (Status, bool) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusSuccess, StatusPending, StatusFailed, StatusInitiated:
		return s, true
	default:
		return StatusUnknown, false
	}
}

// Filterable reports whether a listing may be restricted to s.
func (s Status) Filterable() bool {
	parsed, ok := ParseStatus(string(s))
	return ok && parsed == s
}

// UnmarshalJSON normalises server supplied statuses; anything unexpected
// (including empty and null) becomes StatusUnknown. An absent field is left
// as the zero value.
func (s *Status) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*s = StatusUnknown
		return nil
	}
	*s, _ = ParseStatus(*raw)
	return nil
}

// StudentInfo identifies the student a payment is collected from.
type StudentInfo struct {
	Name  string `json:"name" validate:"required"`
	ID    string `json:"id" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Transaction is an immutable snapshot of one payment-collection record.
// Amounts are NullDecimal so that an absent amount can be told apart from zero.
type Transaction struct {
	CollectID         string              `json:"collect_id"`         // Collect request identifier
	SchoolID          string              `json:"school_id"`          // School the payment belongs to
	CustomOrderID     string              `json:"custom_order_id"`    // Order identifier issued at creation
	Gateway           string              `json:"gateway"`            // Payment gateway name
	OrderAmount       decimal.NullDecimal `json:"order_amount"`       // Amount requested
	TransactionAmount decimal.NullDecimal `json:"transaction_amount"` // Amount actually paid
	Status            Status              `json:"status"`
	PaymentTime       *time.Time          `json:"payment_time,omitempty"`
	PaymentMode       string              `json:"payment_mode"`
	StudentInfo       StudentInfo         `json:"student_info"`
	CreatedAt         *time.Time          `json:"createdAt,omitempty"`
}

// OrderAmountOrZero returns the order amount, treating an absent value as zero.
func (t Transaction) OrderAmountOrZero() decimal.Decimal {
	if !t.OrderAmount.Valid {
		return decimal.Zero
	}
	return t.OrderAmount.Decimal
}

// DisplayOrderID returns the custom order id, or the tail of the collect id
// when the transaction was created without one.
func (t Transaction) DisplayOrderID() string {
	if t.CustomOrderID != "" {
		return t.CustomOrderID
	}
	if len(t.CollectID) > 8 {
		return t.CollectID[len(t.CollectID)-8:]
	}
	return t.CollectID
}

// AmountMismatch reports whether the paid amount differs from the ordered one.
func (t Transaction) AmountMismatch() bool {
	paid := decimal.Zero
	if t.TransactionAmount.Valid {
		paid = t.TransactionAmount.Decimal
	}
	return !paid.Equal(t.OrderAmountOrZero())
}
