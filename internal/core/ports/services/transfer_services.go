package services

import (
	"context"

	"github.com/finaya/pixwallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferSvcFacade owns the two-phase Pix transfer state machine.
type TransferSvcFacade interface {
	// InitiateTransfer reserves the amount on the source wallet and creates
	// a PENDING transfer, all under the caller-supplied idempotency key.
	InitiateTransfer(ctx context.Context, fromWalletID string, requestingUserID string, toKeyValue string, amount decimal.Decimal, idempotencyKey string) (*domain.PixTransfer, error)

	GetTransfer(ctx context.Context, endToEndID string, requestingUserID string) (*domain.PixTransfer, error)

	// ListTransferEntries returns every ledger leg recorded under the
	// transfer's end-to-end id, oldest first.
	ListTransferEntries(ctx context.Context, endToEndID string, requestingUserID string) ([]domain.LedgerEntry, error)

	// ProcessConfirmation applies a payment network event to a transfer.
	// The idempotency key is scoped to the event (one key per eventID), not
	// to the transfer; re-delivery of a settled transfer's event is a no-op
	// success regardless of key.
	ProcessConfirmation(ctx context.Context, endToEndID string, eventID string, eventType string, idempotencyKey string) error
}
