package repositories

import (
	"context"
	"time"

	"github.com/finaya/pixwallet/internal/core/domain"
)

// IdempotencyRepository persists idempotency records.
type IdempotencyRepository interface {
	// Claim atomically inserts an IN_PROGRESS record for key, committing
	// independently of any ambient transaction. claimed is false when a
	// record for the key already exists.
	Claim(ctx context.Context, key string, now time.Time) (claimed bool, err error)

	FindByKey(ctx context.Context, key string) (*domain.IdempotencyRecord, error)

	// MarkSucceeded finalizes a claimed record with the serialized result.
	// Callers invoke it inside the same transaction as the protected
	// operation's writes so that outcome and side effects commit together.
	MarkSucceeded(ctx context.Context, key string, result []byte, now time.Time) error

	// MarkFailed finalizes a claimed record with an error descriptor. It is
	// called after the protected operation's transaction rolled back and
	// commits on its own.
	MarkFailed(ctx context.Context, key string, errType string, errMessage string, now time.Time) error
}
