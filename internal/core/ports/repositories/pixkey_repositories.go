package repositories

import (
	"context"
	"time"

	"github.com/finaya/pixwallet/internal/core/domain"
)

// PixKeyRepository persists Pix keys. The database enforces at most one
// ACTIVE key per value via a partial unique index; SavePixKey surfaces a
// violation as ErrDuplicate.
type PixKeyRepository interface {
	SavePixKey(ctx context.Context, key domain.PixKey) error
	FindPixKeyByID(ctx context.Context, pixKeyID string) (*domain.PixKey, error)
	FindActiveByValue(ctx context.Context, keyValue string) (*domain.PixKey, error)
	FindPixKeysByWalletID(ctx context.Context, walletID string) ([]domain.PixKey, error)
	UpdatePixKeyStatus(ctx context.Context, pixKeyID string, status domain.PixKeyStatus, now time.Time) error
}
