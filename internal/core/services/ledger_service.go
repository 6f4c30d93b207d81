package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finaya/pixwallet/internal/apperrors"
	"github.com/finaya/pixwallet/internal/core/domain"
	portsrepo "github.com/finaya/pixwallet/internal/core/ports/repositories"
	portssvc "github.com/finaya/pixwallet/internal/core/ports/services"
)

// ledgerPoster is the single place balances change. Credit and Debit lock
// the wallet row, apply the delta, and append the matching ledger entry in
// one step; callers provide the ambient transaction.
type ledgerPoster struct {
	walletRepo portsrepo.WalletRepository
	ledgerRepo portsrepo.LedgerRepository
}

// NewLedgerPoster creates the internal money-movement service.
func NewLedgerPoster(walletRepo portsrepo.WalletRepository, ledgerRepo portsrepo.LedgerRepository) portssvc.LedgerPosterFacade {
	return &ledgerPoster{walletRepo: walletRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.LedgerPosterFacade = (*ledgerPoster)(nil)

// LockWallets acquires exclusive locks on the given wallets. The repository
// sorts ids ascending before locking, so every caller follows the same global
// lock order.
func (s *ledgerPoster) LockWallets(ctx context.Context, walletIDs ...string) (map[string]domain.Wallet, error) {
	return s.walletRepo.FindWalletsForUpdate(ctx, walletIDs)
}

// Credit increases the wallet balance by amount and appends a positive entry.
func (s *ledgerPoster) Credit(ctx context.Context, walletID string, amount decimal.Decimal, kind domain.EntryKind, transactionID string, description string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: credit amount must be positive", apperrors.ErrValidation)
	}

	wallets, err := s.walletRepo.FindWalletsForUpdate(ctx, []string{walletID})
	if err != nil {
		return decimal.Zero, err
	}
	wallet := wallets[walletID]

	newBalance := wallet.Balance.Add(amount)
	now := time.Now().UTC()
	if err := s.walletRepo.UpdateWalletBalance(ctx, walletID, newBalance, now); err != nil {
		return decimal.Zero, err
	}

	if err := s.ledgerRepo.SaveEntry(ctx, domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		WalletID:      walletID,
		TransactionID: transactionID,
		Amount:        amount,
		Kind:          kind,
		BalanceAfter:  newBalance,
		Description:   description,
		CreatedAt:     now,
	}); err != nil {
		return decimal.Zero, err
	}

	return newBalance, nil
}

// Debit decreases the wallet balance by amount and appends a negative entry.
// Fails with ErrInsufficientFunds before any write when the balance does not
// cover the amount.
func (s *ledgerPoster) Debit(ctx context.Context, walletID string, amount decimal.Decimal, kind domain.EntryKind, transactionID string, description string) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: debit amount must be positive", apperrors.ErrValidation)
	}

	wallets, err := s.walletRepo.FindWalletsForUpdate(ctx, []string{walletID})
	if err != nil {
		return decimal.Zero, err
	}
	wallet := wallets[walletID]

	if wallet.Balance.LessThan(amount) {
		return decimal.Zero, fmt.Errorf("%w: balance %s is less than %s", apperrors.ErrInsufficientFunds, wallet.Balance, amount)
	}

	newBalance := wallet.Balance.Sub(amount)
	now := time.Now().UTC()
	if err := s.walletRepo.UpdateWalletBalance(ctx, walletID, newBalance, now); err != nil {
		return decimal.Zero, err
	}

	if err := s.ledgerRepo.SaveEntry(ctx, domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		WalletID:      walletID,
		TransactionID: transactionID,
		Amount:        amount.Neg(),
		Kind:          kind,
		BalanceAfter:  newBalance,
		Description:   description,
		CreatedAt:     now,
	}); err != nil {
		return decimal.Zero, err
	}

	return newBalance, nil
}

// AppendAuditEntry records an entry at the wallet's current locked balance
// without changing it. amount carries the sign the caller wants recorded.
func (s *ledgerPoster) AppendAuditEntry(ctx context.Context, walletID string, amount decimal.Decimal, kind domain.EntryKind, transactionID string, description string) error {
	wallets, err := s.walletRepo.FindWalletsForUpdate(ctx, []string{walletID})
	if err != nil {
		return err
	}
	wallet := wallets[walletID]

	return s.ledgerRepo.SaveEntry(ctx, domain.LedgerEntry{
		EntryID:       uuid.NewString(),
		WalletID:      walletID,
		TransactionID: transactionID,
		Amount:        amount,
		Kind:          kind,
		BalanceAfter:  wallet.Balance,
		Description:   description,
		CreatedAt:     time.Now().UTC(),
	})
}
