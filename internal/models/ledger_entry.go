package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the database representation of one immutable ledger row.
type LedgerEntry struct {
	EntryID       string          `db:"entry_id"`
	WalletID      string          `db:"wallet_id"`
	TransactionID string          `db:"transaction_id"`
	Amount        decimal.Decimal `db:"amount"`
	EntryType     string          `db:"entry_type"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	Description   string          `db:"description"`
	CreatedAt     time.Time       `db:"created_at"`
}
