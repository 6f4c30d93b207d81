package repositories

import (
	"context"
	"time"

	"github.com/finaya/pixwallet/internal/core/domain"
)

// TransferRepository persists Pix transfers.
type TransferRepository interface {
	SaveTransfer(ctx context.Context, transfer domain.PixTransfer) error
	FindByEndToEndID(ctx context.Context, endToEndID string) (*domain.PixTransfer, error)

	// FindByEndToEndIDForUpdate row-locks the transfer so concurrent
	// confirmation events for the same transfer serialize. Must run inside
	// an ambient transaction.
	FindByEndToEndIDForUpdate(ctx context.Context, endToEndID string) (*domain.PixTransfer, error)

	// UpdateTransferStatus moves a PENDING transfer to a terminal status.
	// The update is guarded on status = PENDING so an illegal transition out
	// of a terminal state can never be written; such an attempt returns
	// ErrNotFound semantics via a zero row count.
	UpdateTransferStatus(ctx context.Context, endToEndID string, status domain.TransferStatus, now time.Time) error
}
