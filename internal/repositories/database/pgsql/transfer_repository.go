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

type PgxTransferRepository struct {
	BaseRepository
}

// newPgxTransferRepository creates a new repository for Pix transfers.
func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepository {
	return &PgxTransferRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransferRepository = (*PgxTransferRepository)(nil)

func toModelPixTransfer(d domain.PixTransfer) models.PixTransfer {
	return models.PixTransfer{
		EndToEndID:     d.EndToEndID,
		FromWalletID:   d.FromWalletID,
		ToWalletID:     d.ToWalletID,
		Amount:         d.Amount,
		Status:         string(d.Status),
		IdempotencyKey: d.IdempotencyKey,
		Version:        d.Version,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func toDomainPixTransfer(m models.PixTransfer) domain.PixTransfer {
	return domain.PixTransfer{
		EndToEndID:     m.EndToEndID,
		FromWalletID:   m.FromWalletID,
		ToWalletID:     m.ToWalletID,
		Amount:         m.Amount,
		Status:         domain.TransferStatus(m.Status),
		IdempotencyKey: m.IdempotencyKey,
		Version:        m.Version,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// SaveTransfer inserts a new transfer record.
func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer domain.PixTransfer) error {
	m := toModelPixTransfer(transfer)

	query := `
		INSERT INTO pix_transfers (end_to_end_id, from_wallet_id, to_wallet_id, amount, status, idempotency_key, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.EndToEndID,
		m.FromWalletID,
		m.ToWalletID,
		m.Amount,
		m.Status,
		m.IdempotencyKey,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transfer %s already exists", apperrors.ErrDuplicate, m.EndToEndID)
		}
		return fmt.Errorf("failed to save transfer %s: %w", m.EndToEndID, err)
	}
	return nil
}

// FindByEndToEndID retrieves a transfer without locking.
func (r *PgxTransferRepository) FindByEndToEndID(ctx context.Context, endToEndID string) (*domain.PixTransfer, error) {
	query := `
		SELECT end_to_end_id, from_wallet_id, to_wallet_id, amount, status, idempotency_key, version, created_at, updated_at
		FROM pix_transfers
		WHERE end_to_end_id = $1;
	`
	return r.scanOne(ctx, query, endToEndID)
}

// FindByEndToEndIDForUpdate row-locks the transfer so concurrent settlement
// events for the same transfer serialize. Must run inside an ambient
// transaction.
func (r *PgxTransferRepository) FindByEndToEndIDForUpdate(ctx context.Context, endToEndID string) (*domain.PixTransfer, error) {
	query := `
		SELECT end_to_end_id, from_wallet_id, to_wallet_id, amount, status, idempotency_key, version, created_at, updated_at
		FROM pix_transfers
		WHERE end_to_end_id = $1
		FOR UPDATE;
	`
	return r.scanOne(ctx, query, endToEndID)
}

// UpdateTransferStatus moves a PENDING transfer to a terminal status. The
// status = 'PENDING' guard means an update against an already-terminal row
// affects zero rows and returns ErrNotFound.
func (r *PgxTransferRepository) UpdateTransferStatus(ctx context.Context, endToEndID string, status domain.TransferStatus, now time.Time) error {
	query := `
		UPDATE pix_transfers
		SET status = $2, version = version + 1, updated_at = $3
		WHERE end_to_end_id = $1 AND status = 'PENDING';
	`
	cmdTag, err := r.conn(ctx).Exec(ctx, query, endToEndID, string(status), now)
	if err != nil {
		return fmt.Errorf("failed to update status for transfer %s: %w", endToEndID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: no pending transfer %s to update", apperrors.ErrNotFound, endToEndID)
	}
	return nil
}

func (r *PgxTransferRepository) scanOne(ctx context.Context, query string, endToEndID string) (*domain.PixTransfer, error) {
	var m models.PixTransfer
	err := r.conn(ctx).QueryRow(ctx, query, endToEndID).Scan(
		&m.EndToEndID,
		&m.FromWalletID,
		&m.ToWalletID,
		&m.Amount,
		&m.Status,
		&m.IdempotencyKey,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transfer %s: %w", endToEndID, err)
	}

	d := toDomainPixTransfer(m)
	return &d, nil
}
