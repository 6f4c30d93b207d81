package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind identifies the kind of balance-affecting event a ledger entry records.
type EntryKind string

const (
	EntryDeposit     EntryKind = "DEPOSIT"
	EntryWithdrawal  EntryKind = "WITHDRAWAL"
	EntryPixReserved EntryKind = "PIX_RESERVED" // funds held while a transfer is pending
	EntryPixOut      EntryKind = "PIX_OUT"      // settlement leg on the source; balance already moved at reservation
	EntryPixIn       EntryKind = "PIX_IN"
	EntryReversal    EntryKind = "REVERSAL" // reserved funds returned after a rejection
)

// LedgerEntry is the immutable record of one balance-affecting event.
//
// Amount is signed: positive for credits, negative for debits. BalanceAfter
// is the wallet balance immediately after the entry applied; ordering a
// wallet's entries by CreatedAt and taking the latest BalanceAfter at or
// before an instant yields the exact balance at that instant. Entries are
// never updated or deleted.
type LedgerEntry struct {
	EntryID       string          `json:"entryID"`
	WalletID      string          `json:"walletID"`
	TransactionID string          `json:"transactionID"` // correlation id grouping the legs of one logical transaction
	Amount        decimal.Decimal `json:"amount"`
	Kind          EntryKind       `json:"kind"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
}
