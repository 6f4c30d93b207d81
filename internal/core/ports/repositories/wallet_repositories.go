package repositories

import (
	"context"
	"time"

	"github.com/finaya/pixwallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletRepository persists wallets and arbitrates concurrent balance access.
type WalletRepository interface {
	SaveWallet(ctx context.Context, wallet domain.Wallet) error
	FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error)
	FindWalletsByUserID(ctx context.Context, userID string) ([]domain.Wallet, error)

	// FindWalletsForUpdate acquires exclusive row locks on the given wallets
	// and returns their current state. Locks are always taken in ascending
	// wallet-id order regardless of the order of the input, which is the
	// system-wide deadlock-avoidance invariant; no caller may lock wallet
	// rows any other way. Must run inside an ambient transaction. Returns
	// ErrNotFound if any wallet is missing.
	FindWalletsForUpdate(ctx context.Context, walletIDs []string) (map[string]domain.Wallet, error)

	// UpdateWalletBalance persists a new balance for a wallet the caller has
	// already locked, bumping the optimistic version counter.
	UpdateWalletBalance(ctx context.Context, walletID string, newBalance decimal.Decimal, now time.Time) error

	// FindBalanceByID reads the cached balance without locking; suitable for
	// the read-only current-balance path.
	FindBalanceByID(ctx context.Context, walletID string) (decimal.Decimal, error)
}
