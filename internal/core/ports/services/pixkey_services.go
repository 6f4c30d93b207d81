package services

import (
	"context"

	"github.com/finaya/pixwallet/internal/core/domain"
)

// PixKeySvcFacade manages the Pix key registry.
type PixKeySvcFacade interface {
	RegisterPixKey(ctx context.Context, walletID string, requestingUserID string, keyValue string, keyType domain.PixKeyType) (*domain.PixKey, error)
	ListPixKeysByWallet(ctx context.Context, walletID string, requestingUserID string) ([]domain.PixKey, error)
	DeactivatePixKey(ctx context.Context, pixKeyID string, requestingUserID string) error

	// ResolveActiveKey returns the single ACTIVE key for a value, or
	// ErrNotFound.
	ResolveActiveKey(ctx context.Context, keyValue string) (*domain.PixKey, error)
}
