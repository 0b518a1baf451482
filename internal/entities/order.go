package entities

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

// OrderStatusPending is the only status this system ever writes. Transitions
// happen out-of-band.
const OrderStatusPending OrderStatus = "pending"

// Order is a single exchange request. Amounts travel as decimal strings, the
// same way the web forms submit them.
type Order struct {
	ID               uuid.UUID   `db:"id"                json:"id"`
	UserID           string      `db:"user_id"           json:"-"`
	SendAmount       string      `db:"send_amount"       json:"send_amount"`
	SendCurrency     Currency    `db:"send_currency"     json:"send_currency"`
	ReceiveAmount    string      `db:"receive_amount"    json:"receive_amount"`
	ReceiveCurrency  Currency    `db:"receive_currency"  json:"receive_currency"`
	RecipientAddress string      `db:"recipient_address" json:"recipient_address"`
	Status           OrderStatus `db:"status"            json:"status"`
	CreatedAt        time.Time   `db:"created_at"        json:"created_at"`
}

// NewOrderParams carries the caller-supplied fields of an order. Status is
// deliberately absent: creation always persists "pending".
type NewOrderParams struct {
	UserID           string
	SendAmount       string
	SendCurrency     Currency
	ReceiveAmount    string
	ReceiveCurrency  Currency
	RecipientAddress string
}
