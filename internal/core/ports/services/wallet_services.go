package services

import (
	"context"
	"time"

	"github.com/finaya/pixwallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletSvcFacade is the wallet surface exposed to handlers.
type WalletSvcFacade interface {
	CreateWallet(ctx context.Context, userID string) (*domain.Wallet, error)
	GetWallet(ctx context.Context, walletID string, requestingUserID string) (*domain.Wallet, error)
	ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error)

	// Deposit and Withdraw are wrapped by the idempotency coordinator with
	// the caller-supplied key and return the resulting balance.
	Deposit(ctx context.Context, walletID string, requestingUserID string, amount decimal.Decimal, idempotencyKey string) (decimal.Decimal, error)
	Withdraw(ctx context.Context, walletID string, requestingUserID string, amount decimal.Decimal, idempotencyKey string) (decimal.Decimal, error)

	CurrentBalance(ctx context.Context, walletID string, requestingUserID string) (decimal.Decimal, error)
	HistoricalBalance(ctx context.Context, walletID string, requestingUserID string, asOf time.Time) (decimal.Decimal, error)
	ListEntries(ctx context.Context, walletID string, requestingUserID string, limit int, offset int) ([]domain.LedgerEntry, error)
}

// LedgerPosterFacade is the internal money-movement surface shared with the
// transfer service. Credit and Debit are the only primitives that change a
// balance; both lock the target wallet row and append the matching ledger
// entry atomically. All methods must run inside an ambient transaction.
type LedgerPosterFacade interface {
	// LockWallets acquires exclusive locks on the given wallets in the
	// global ascending-id order and returns their current state.
	LockWallets(ctx context.Context, walletIDs ...string) (map[string]domain.Wallet, error)

	Credit(ctx context.Context, walletID string, amount decimal.Decimal, kind domain.EntryKind, transactionID string, description string) (decimal.Decimal, error)
	Debit(ctx context.Context, walletID string, amount decimal.Decimal, kind domain.EntryKind, transactionID string, description string) (decimal.Decimal, error)

	// AppendAuditEntry records a ledger entry whose BalanceAfter is the
	// wallet's current (locked) balance without changing it; used for the
	// settlement leg mirroring an already-applied reservation.
	AppendAuditEntry(ctx context.Context, walletID string, amount decimal.Decimal, kind domain.EntryKind, transactionID string, description string) error
}
