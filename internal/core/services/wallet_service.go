package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finaya/pixwallet/internal/apperrors"
	"github.com/finaya/pixwallet/internal/core/domain"
	portsrepo "github.com/finaya/pixwallet/internal/core/ports/repositories"
	portssvc "github.com/finaya/pixwallet/internal/core/ports/services"
	"github.com/finaya/pixwallet/internal/middleware"
)

// walletService provides wallet lifecycle, balance and cash-in/cash-out
// operations.
type walletService struct {
	walletRepo  portsrepo.WalletRepository
	ledgerRepo  portsrepo.LedgerRepository
	poster      portssvc.LedgerPosterFacade
	idempotency portssvc.IdempotencySvcFacade
}

// NewWalletService creates a new WalletService.
func NewWalletService(walletRepo portsrepo.WalletRepository, ledgerRepo portsrepo.LedgerRepository, poster portssvc.LedgerPosterFacade, idempotency portssvc.IdempotencySvcFacade) portssvc.WalletSvcFacade {
	return &walletService{
		walletRepo:  walletRepo,
		ledgerRepo:  ledgerRepo,
		poster:      poster,
		idempotency: idempotency,
	}
}

var _ portssvc.WalletSvcFacade = (*walletService)(nil)

// validateMonetaryAmount checks that amount is strictly positive with at
// most two decimal places.
func validateMonetaryAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	if amount.Exponent() < -2 {
		return fmt.Errorf("%w: amount %s has more than two decimal places", apperrors.ErrValidation, amount)
	}
	return nil
}

// CreateWallet opens a new zero-balance wallet for the user.
func (s *walletService) CreateWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	wallet := domain.Wallet{
		WalletID: uuid.NewString(),
		UserID:   userID,
		Balance:  decimal.Zero,
		Version:  1,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.walletRepo.SaveWallet(ctx, wallet); err != nil {
		logger.Error("Failed to create wallet", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Wallet created", slog.String("wallet_id", wallet.WalletID), slog.String("user_id", userID))
	return &wallet, nil
}

// GetWallet returns the wallet when the requester owns it. A wallet owned by
// someone else answers ErrNotFound, not ErrForbidden, so existence is not
// leaked.
func (s *walletService) GetWallet(ctx context.Context, walletID string, requestingUserID string) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UserID != requestingUserID {
		return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
	}
	return wallet, nil
}

// ListWalletsByUser lists the requester's own wallets.
func (s *walletService) ListWalletsByUser(ctx context.Context, userID string) ([]domain.Wallet, error) {
	return s.walletRepo.FindWalletsByUserID(ctx, userID)
}

// Deposit credits the wallet under the caller-supplied idempotency key and
// returns the resulting balance. A replay with the same key returns the
// original balance without applying the credit again.
func (s *walletService) Deposit(ctx context.Context, walletID string, requestingUserID string, amount decimal.Decimal, idempotencyKey string) (decimal.Decimal, error) {
	if err := validateMonetaryAmount(amount); err != nil {
		return decimal.Zero, err
	}

	return RunIdempotent(ctx, s.idempotency, idempotencyKey, func(opCtx context.Context) (decimal.Decimal, error) {
		if _, err := s.GetWallet(opCtx, walletID, requestingUserID); err != nil {
			return decimal.Zero, err
		}
		return s.poster.Credit(opCtx, walletID, amount, domain.EntryDeposit, uuid.NewString(), "deposit")
	})
}

// Withdraw debits the wallet under the caller-supplied idempotency key and
// returns the resulting balance.
func (s *walletService) Withdraw(ctx context.Context, walletID string, requestingUserID string, amount decimal.Decimal, idempotencyKey string) (decimal.Decimal, error) {
	if err := validateMonetaryAmount(amount); err != nil {
		return decimal.Zero, err
	}

	return RunIdempotent(ctx, s.idempotency, idempotencyKey, func(opCtx context.Context) (decimal.Decimal, error) {
		if _, err := s.GetWallet(opCtx, walletID, requestingUserID); err != nil {
			return decimal.Zero, err
		}
		return s.poster.Debit(opCtx, walletID, amount, domain.EntryWithdrawal, uuid.NewString(), "withdrawal")
	})
}

// CurrentBalance reads the wallet's cached balance.
func (s *walletService) CurrentBalance(ctx context.Context, walletID string, requestingUserID string) (decimal.Decimal, error) {
	wallet, err := s.GetWallet(ctx, walletID, requestingUserID)
	if err != nil {
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}

// HistoricalBalance reconstructs the balance at asOf from the ledger. A
// wallet with no entries at or before asOf had balance zero.
func (s *walletService) HistoricalBalance(ctx context.Context, walletID string, requestingUserID string, asOf time.Time) (decimal.Decimal, error) {
	if _, err := s.GetWallet(ctx, walletID, requestingUserID); err != nil {
		return decimal.Zero, err
	}

	balance, found, err := s.ledgerRepo.FindBalanceAsOf(ctx, walletID, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	if !found {
		return decimal.Zero, nil
	}
	return balance, nil
}

// ListEntries returns a page of the wallet's statement, newest first.
func (s *walletService) ListEntries(ctx context.Context, walletID string, requestingUserID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	if _, err := s.GetWallet(ctx, walletID, requestingUserID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.ListEntriesByWallet(ctx, walletID, limit, offset)
}
