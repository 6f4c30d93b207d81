package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/finaya/pixwallet/internal/apperrors"
	"github.com/finaya/pixwallet/internal/core/domain"
	portsrepo "github.com/finaya/pixwallet/internal/core/ports/repositories"
	portssvc "github.com/finaya/pixwallet/internal/core/ports/services"
	"github.com/finaya/pixwallet/internal/middleware"
)

// idempotencyService coordinates at-most-one effective execution of an
// operation per client-supplied key.
type idempotencyService struct {
	tx   portsrepo.Transactor
	repo portsrepo.IdempotencyRepository
}

// NewIdempotencyService creates a new IdempotencyService.
func NewIdempotencyService(tx portsrepo.Transactor, repo portsrepo.IdempotencyRepository) portssvc.IdempotencySvcFacade {
	return &idempotencyService{tx: tx, repo: repo}
}

var _ portssvc.IdempotencySvcFacade = (*idempotencyService)(nil)

// Run executes op at most once for key.
//
// The claim commits on its own before op starts, so a concurrent duplicate
// observes it immediately. The operation and the SUCCEEDED finalization share
// one transaction; either both commit or neither does. A failure finalizes
// the record outside the rolled-back transaction so the stored error
// descriptor survives the rollback. A crash between claim and finalize leaves
// the record IN_PROGRESS, which replays as ErrDuplicateInProgress rather than
// a fabricated success.
func (s *idempotencyService) Run(ctx context.Context, key string, op portssvc.IdempotencyOp) ([]byte, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if key == "" {
		return nil, fmt.Errorf("%w: idempotency key is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	claimed, err := s.repo.Claim(ctx, key, now)
	if err != nil {
		return nil, fmt.Errorf("failed to claim idempotency key: %w", err)
	}

	if !claimed {
		return s.replay(ctx, key)
	}

	var payload []byte
	txErr := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		var opErr error
		payload, opErr = op(txCtx)
		if opErr != nil {
			return opErr
		}
		return s.repo.MarkSucceeded(txCtx, key, payload, time.Now().UTC())
	})
	if txErr != nil {
		// The operation's transaction rolled back; record the failure with
		// the outer context so the finalization commits on its own.
		kind, msg := apperrors.Describe(txErr)
		if markErr := s.repo.MarkFailed(ctx, key, kind, msg, time.Now().UTC()); markErr != nil {
			logger.Error("Failed to finalize failed idempotency record",
				slog.String("key", key),
				slog.String("error", markErr.Error()),
			)
		}
		return nil, txErr
	}

	return payload, nil
}

// replay hands back the stored outcome for an already-claimed key.
func (s *idempotencyService) replay(ctx context.Context, key string) ([]byte, error) {
	record, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load idempotency record for replay: %w", err)
	}

	switch record.Status {
	case domain.IdempotencySucceeded:
		return record.ResultData, nil
	case domain.IdempotencyFailed:
		return nil, apperrors.FromDescriptor(record.ErrorType, record.ErrorMessage)
	default:
		return nil, fmt.Errorf("%w: key %s", apperrors.ErrDuplicateInProgress, key)
	}
}

// RunIdempotent wraps a typed operation with the idempotency coordinator,
// handling the JSON round trip of the result so replays return a value
// identical to the first execution's.
func RunIdempotent[T any](ctx context.Context, coordinator portssvc.IdempotencySvcFacade, key string, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	payload, err := coordinator.Run(ctx, key, func(opCtx context.Context) ([]byte, error) {
		result, opErr := op(opCtx)
		if opErr != nil {
			return nil, opErr
		}
		data, marshalErr := json.Marshal(result)
		if marshalErr != nil {
			return nil, fmt.Errorf("%w: failed to serialize operation result: %s", apperrors.ErrInternal, marshalErr)
		}
		return data, nil
	})
	if err != nil {
		return zero, err
	}

	var result T
	if err := json.Unmarshal(payload, &result); err != nil {
		return zero, fmt.Errorf("%w: failed to deserialize stored result: %s", apperrors.ErrInternal, err)
	}
	return result, nil
}
