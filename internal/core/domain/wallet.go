package domain

import (
	"github.com/shopspring/decimal"
)

// Wallet represents a balance-holding account owned by a user.
//
// Balance is a cached derivation of the ledger: it must always equal the
// BalanceAfter of the wallet's latest ledger entry, and both are updated in
// the same database transaction. Version is bumped on every balance change
// for optimistic conflict detection.
type Wallet struct {
	WalletID string          `json:"walletID"`
	UserID   string          `json:"userID"`
	Balance  decimal.Decimal `json:"balance"`
	Version  int64           `json:"version"`
	AuditFields
}
