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

// Payment network event types accepted by ProcessConfirmation.
const (
	EventTypeConfirmed = "CONFIRMED"
	EventTypeRejected  = "REJECTED"
)

// transferService owns the two-phase Pix transfer state machine.
type transferService struct {
	transferRepo portsrepo.TransferRepository
	walletRepo   portsrepo.WalletRepository
	pixKeyRepo   portsrepo.PixKeyRepository
	ledgerRepo   portsrepo.LedgerRepository
	poster       portssvc.LedgerPosterFacade
	idempotency  portssvc.IdempotencySvcFacade
}

// NewTransferService creates a new TransferService.
func NewTransferService(transferRepo portsrepo.TransferRepository, walletRepo portsrepo.WalletRepository, pixKeyRepo portsrepo.PixKeyRepository, ledgerRepo portsrepo.LedgerRepository, poster portssvc.LedgerPosterFacade, idempotency portssvc.IdempotencySvcFacade) portssvc.TransferSvcFacade {
	return &transferService{
		transferRepo: transferRepo,
		walletRepo:   walletRepo,
		pixKeyRepo:   pixKeyRepo,
		ledgerRepo:   ledgerRepo,
		poster:       poster,
		idempotency:  idempotency,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// InitiateTransfer reserves the amount on the source wallet and records a
// PENDING transfer, atomically under the caller's idempotency key. The
// destination wallet is resolved from the Pix key once, here; later key
// changes do not retarget the transfer.
//
// A transfer whose destination key resolves back to the source wallet is
// permitted: the reservation debits and a later confirmation credits the
// same wallet, net zero, with both legs on the ledger.
func (s *transferService) InitiateTransfer(ctx context.Context, fromWalletID string, requestingUserID string, toKeyValue string, amount decimal.Decimal, idempotencyKey string) (*domain.PixTransfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateMonetaryAmount(amount); err != nil {
		return nil, err
	}

	transfer, err := RunIdempotent(ctx, s.idempotency, idempotencyKey, func(opCtx context.Context) (domain.PixTransfer, error) {
		destKey, err := s.pixKeyRepo.FindActiveByValue(opCtx, toKeyValue)
		if err != nil {
			return domain.PixTransfer{}, fmt.Errorf("failed to resolve destination pix key: %w", err)
		}
		toWalletID := destKey.WalletID

		// Locks both rows in ascending id order.
		wallets, err := s.poster.LockWallets(opCtx, fromWalletID, toWalletID)
		if err != nil {
			return domain.PixTransfer{}, err
		}
		if wallets[fromWalletID].UserID != requestingUserID {
			return domain.PixTransfer{}, fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, fromWalletID)
		}

		endToEndID := uuid.NewString()
		if _, err := s.poster.Debit(opCtx, fromWalletID, amount, domain.EntryPixReserved, endToEndID, "pix transfer reservation"); err != nil {
			return domain.PixTransfer{}, err
		}

		now := time.Now().UTC()
		t := domain.PixTransfer{
			EndToEndID:     endToEndID,
			FromWalletID:   fromWalletID,
			ToWalletID:     toWalletID,
			Amount:         amount,
			Status:         domain.TransferPending,
			IdempotencyKey: idempotencyKey,
			Version:        1,
			AuditFields: domain.AuditFields{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		if err := s.transferRepo.SaveTransfer(opCtx, t); err != nil {
			return domain.PixTransfer{}, err
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Pix transfer initiated",
		slog.String("end_to_end_id", transfer.EndToEndID),
		slog.String("from_wallet_id", transfer.FromWalletID),
		slog.String("to_wallet_id", transfer.ToWalletID),
	)
	return &transfer, nil
}

// GetTransfer returns a transfer visible to the requester, i.e. one whose
// source or destination wallet the requester owns.
func (s *transferService) GetTransfer(ctx context.Context, endToEndID string, requestingUserID string) (*domain.PixTransfer, error) {
	transfer, err := s.transferRepo.FindByEndToEndID(ctx, endToEndID)
	if err != nil {
		return nil, err
	}

	for _, walletID := range []string{transfer.FromWalletID, transfer.ToWalletID} {
		wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
		if err != nil {
			return nil, err
		}
		if wallet.UserID == requestingUserID {
			return transfer, nil
		}
	}
	return nil, fmt.Errorf("%w: transfer %s", apperrors.ErrNotFound, endToEndID)
}

// ListTransferEntries returns every ledger leg recorded under the transfer's
// end-to-end id, oldest first. Visibility follows GetTransfer.
func (s *transferService) ListTransferEntries(ctx context.Context, endToEndID string, requestingUserID string) ([]domain.LedgerEntry, error) {
	if _, err := s.GetTransfer(ctx, endToEndID, requestingUserID); err != nil {
		return nil, err
	}
	return s.ledgerRepo.FindEntriesByTransactionID(ctx, endToEndID)
}

// ProcessConfirmation applies a payment network event to a pending transfer.
// The idempotency key is scoped to the event, so duplicate-safety for the
// transfer itself rests on the terminal-status check under the row lock: a
// re-delivered event for a settled transfer, even with a fresh key, is a
// no-op success.
func (s *transferService) ProcessConfirmation(ctx context.Context, endToEndID string, eventID string, eventType string, idempotencyKey string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	_, err := RunIdempotent(ctx, s.idempotency, idempotencyKey, func(opCtx context.Context) (struct{}, error) {
		transfer, err := s.transferRepo.FindByEndToEndIDForUpdate(opCtx, endToEndID)
		if err != nil {
			return struct{}{}, err
		}

		if transfer.Status.IsTerminal() {
			logger.Info("Transfer already settled, ignoring replayed event",
				slog.String("end_to_end_id", endToEndID),
				slog.String("event_id", eventID),
				slog.String("status", string(transfer.Status)),
			)
			return struct{}{}, nil
		}

		now := time.Now().UTC()
		switch eventType {
		case EventTypeConfirmed:
			if _, err := s.poster.LockWallets(opCtx, transfer.FromWalletID, transfer.ToWalletID); err != nil {
				return struct{}{}, err
			}
			if _, err := s.poster.Credit(opCtx, transfer.ToWalletID, transfer.Amount, domain.EntryPixIn, endToEndID, "pix transfer received"); err != nil {
				return struct{}{}, err
			}
			// Settlement leg on the source; the balance already moved at
			// reservation time.
			if err := s.poster.AppendAuditEntry(opCtx, transfer.FromWalletID, transfer.Amount.Neg(), domain.EntryPixOut, endToEndID, "pix transfer settled"); err != nil {
				return struct{}{}, err
			}
			if err := s.transferRepo.UpdateTransferStatus(opCtx, endToEndID, domain.TransferConfirmed, now); err != nil {
				return struct{}{}, err
			}
		case EventTypeRejected:
			if _, err := s.poster.Credit(opCtx, transfer.FromWalletID, transfer.Amount, domain.EntryReversal, endToEndID, "pix transfer rejected, funds returned"); err != nil {
				return struct{}{}, err
			}
			if err := s.transferRepo.UpdateTransferStatus(opCtx, endToEndID, domain.TransferRejected, now); err != nil {
				return struct{}{}, err
			}
		default:
			return struct{}{}, fmt.Errorf("%w: unsupported event type %s", apperrors.ErrValidation, eventType)
		}

		logger.Info("Transfer settled",
			slog.String("end_to_end_id", endToEndID),
			slog.String("event_id", eventID),
			slog.String("event_type", eventType),
		)
		return struct{}{}, nil
	})
	return err
}
