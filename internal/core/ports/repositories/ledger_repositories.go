package repositories

import (
	"context"
	"time"

	"github.com/finaya/pixwallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerRepository persists the append-only ledger.
type LedgerRepository interface {
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// FindBalanceAsOf returns the BalanceAfter of the wallet's latest entry
	// with CreatedAt <= asOf. found is false when the wallet has no entry at
	// or before that instant.
	FindBalanceAsOf(ctx context.Context, walletID string, asOf time.Time) (balance decimal.Decimal, found bool, err error)

	// ListEntriesByWallet returns a page of a wallet's entries, newest first.
	ListEntriesByWallet(ctx context.Context, walletID string, limit int, offset int) ([]domain.LedgerEntry, error)

	// FindEntriesByTransactionID returns every leg recorded under one
	// correlation id, oldest first.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)
}
