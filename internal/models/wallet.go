package models

import (
	"github.com/shopspring/decimal"
)

// Wallet is the database representation of a wallet row.
type Wallet struct {
	WalletID string          `db:"wallet_id"`
	UserID   string          `db:"user_id"`
	Balance  decimal.Decimal `db:"balance"`
	Version  int64           `db:"version"`
	AuditFields
}
