package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finaya/pixwallet/internal/apperrors"
	"github.com/finaya/pixwallet/internal/core/domain"
	portsrepo "github.com/finaya/pixwallet/internal/core/ports/repositories"
	portssvc "github.com/finaya/pixwallet/internal/core/ports/services"
	"github.com/finaya/pixwallet/internal/middleware"
	"github.com/finaya/pixwallet/internal/utils/pixformat"
)

// pixKeyService manages the Pix key registry.
type pixKeyService struct {
	walletRepo portsrepo.WalletRepository
	pixKeyRepo portsrepo.PixKeyRepository
}

// NewPixKeyService creates a new PixKeyService.
func NewPixKeyService(walletRepo portsrepo.WalletRepository, pixKeyRepo portsrepo.PixKeyRepository) portssvc.PixKeySvcFacade {
	return &pixKeyService{walletRepo: walletRepo, pixKeyRepo: pixKeyRepo}
}

var _ portssvc.PixKeySvcFacade = (*pixKeyService)(nil)

// RegisterPixKey registers keyValue as an addressable alias for the wallet.
// The database's partial unique index rejects a value that already has an
// ACTIVE registration, surfaced as ErrDuplicate.
func (s *pixKeyService) RegisterPixKey(ctx context.Context, walletID string, requestingUserID string, keyValue string, keyType domain.PixKeyType) (*domain.PixKey, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := pixformat.Validate(keyValue, keyType); err != nil {
		return nil, err
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UserID != requestingUserID {
		return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
	}

	now := time.Now().UTC()
	key := domain.PixKey{
		PixKeyID: uuid.NewString(),
		WalletID: walletID,
		KeyValue: keyValue,
		KeyType:  keyType,
		Status:   domain.PixKeyActive,
		Version:  1,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.pixKeyRepo.SavePixKey(ctx, key); err != nil {
		return nil, err
	}

	logger.Info("Pix key registered",
		slog.String("pix_key_id", key.PixKeyID),
		slog.String("wallet_id", walletID),
		slog.String("key_type", string(keyType)),
	)
	return &key, nil
}

// ListPixKeysByWallet lists every key registered to the requester's wallet.
func (s *pixKeyService) ListPixKeysByWallet(ctx context.Context, walletID string, requestingUserID string) ([]domain.PixKey, error) {
	wallet, err := s.walletRepo.FindWalletByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UserID != requestingUserID {
		return nil, fmt.Errorf("%w: wallet %s", apperrors.ErrNotFound, walletID)
	}
	return s.pixKeyRepo.FindPixKeysByWalletID(ctx, walletID)
}

// DeactivatePixKey retires a key. The value becomes reusable for a new
// registration once no ACTIVE row holds it.
func (s *pixKeyService) DeactivatePixKey(ctx context.Context, pixKeyID string, requestingUserID string) error {
	key, err := s.pixKeyRepo.FindPixKeyByID(ctx, pixKeyID)
	if err != nil {
		return err
	}

	wallet, err := s.walletRepo.FindWalletByID(ctx, key.WalletID)
	if err != nil {
		return err
	}
	if wallet.UserID != requestingUserID {
		return fmt.Errorf("%w: pix key %s", apperrors.ErrNotFound, pixKeyID)
	}

	if key.Status != domain.PixKeyActive {
		return fmt.Errorf("%w: pix key %s is not active", apperrors.ErrValidation, pixKeyID)
	}

	return s.pixKeyRepo.UpdatePixKeyStatus(ctx, pixKeyID, domain.PixKeyInactive, time.Now().UTC())
}

// ResolveActiveKey resolves a key value to its single ACTIVE registration.
func (s *pixKeyService) ResolveActiveKey(ctx context.Context, keyValue string) (*domain.PixKey, error) {
	key, err := s.pixKeyRepo.FindActiveByValue(ctx, keyValue)
	if err != nil {
		return nil, err
	}
	return key, nil
}
