package entities

import (
	"time"

	"github.com/google/uuid"
)

// Wallet is a receiving wallet registered by the exchange operator.
// Wallets are created once and never updated or deleted by this system.
type Wallet struct {
	ID            uuid.UUID `db:"id"              json:"id"`
	Address       string    `db:"address"         json:"address"`
	Currency      Currency  `db:"currency"        json:"currency"`
	IsAdminWallet bool      `db:"is_admin_wallet" json:"-"`
	CreatedAt     time.Time `db:"created_at"      json:"created_at"`
}
