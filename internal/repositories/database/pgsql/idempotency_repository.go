package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finaya/pixwallet/internal/apperrors"
	"github.com/finaya/pixwallet/internal/core/domain"
	portsrepo "github.com/finaya/pixwallet/internal/core/ports/repositories"
	"github.com/finaya/pixwallet/internal/models"
)

type PgxIdempotencyRepository struct {
	BaseRepository
}

// newPgxIdempotencyRepository creates a new repository for idempotency records.
func newPgxIdempotencyRepository(pool *pgxpool.Pool) portsrepo.IdempotencyRepository {
	return &PgxIdempotencyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.IdempotencyRepository = (*PgxIdempotencyRepository)(nil)

func toDomainIdempotencyRecord(m models.IdempotencyRecord) domain.IdempotencyRecord {
	d := domain.IdempotencyRecord{
		RecordKey:  m.RecordKey,
		Status:     domain.IdempotencyStatus(m.Status),
		ResultData: m.ResultData,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.ErrorType != nil {
		d.ErrorType = *m.ErrorType
	}
	if m.ErrorMessage != nil {
		d.ErrorMessage = *m.ErrorMessage
	}
	return d
}

// Claim inserts an IN_PROGRESS record for key. It deliberately uses the pool
// rather than any ambient transaction so the claim commits on its own and
// stays visible to concurrent callers even if the protected operation later
// rolls back. claimed is false when the key already has a record.
func (r *PgxIdempotencyRepository) Claim(ctx context.Context, key string, now time.Time) (bool, error) {
	query := `
		INSERT INTO idempotency_records (record_key, status, created_at, updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (record_key) DO NOTHING;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, key, string(domain.IdempotencyInProgress), now)
	if err != nil {
		return false, fmt.Errorf("failed to claim idempotency key %s: %w", key, err)
	}
	return cmdTag.RowsAffected() == 1, nil
}

// FindByKey retrieves a record by its key.
func (r *PgxIdempotencyRepository) FindByKey(ctx context.Context, key string) (*domain.IdempotencyRecord, error) {
	query := `
		SELECT record_key, status, result_data, error_type, error_message, created_at, updated_at
		FROM idempotency_records
		WHERE record_key = $1;
	`
	var m models.IdempotencyRecord
	err := r.conn(ctx).QueryRow(ctx, query, key).Scan(
		&m.RecordKey,
		&m.Status,
		&m.ResultData,
		&m.ErrorType,
		&m.ErrorMessage,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find idempotency record %s: %w", key, err)
	}

	d := toDomainIdempotencyRecord(m)
	return &d, nil
}

// MarkSucceeded finalizes a claimed record with its serialized result. It
// joins the ambient transaction so the outcome commits atomically with the
// protected operation's writes.
func (r *PgxIdempotencyRepository) MarkSucceeded(ctx context.Context, key string, result []byte, now time.Time) error {
	query := `
		UPDATE idempotency_records
		SET status = $2, result_data = $3, updated_at = $4
		WHERE record_key = $1;
	`
	cmdTag, err := r.conn(ctx).Exec(ctx, query, key, string(domain.IdempotencySucceeded), result, now)
	if err != nil {
		return fmt.Errorf("failed to mark idempotency key %s succeeded: %w", key, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: idempotency record %s missing at finalize", apperrors.ErrNotFound, key)
	}
	return nil
}

// MarkFailed finalizes a claimed record with an error descriptor. Callers
// invoke it with a non-transactional context after the protected operation
// rolled back, so it commits on its own.
func (r *PgxIdempotencyRepository) MarkFailed(ctx context.Context, key string, errType string, errMessage string, now time.Time) error {
	query := `
		UPDATE idempotency_records
		SET status = $2, error_type = $3, error_message = $4, updated_at = $5
		WHERE record_key = $1;
	`
	cmdTag, err := r.conn(ctx).Exec(ctx, query, key, string(domain.IdempotencyFailed), errType, errMessage, now)
	if err != nil {
		return fmt.Errorf("failed to mark idempotency key %s failed: %w", key, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: idempotency record %s missing at finalize", apperrors.ErrNotFound, key)
	}
	return nil
}
