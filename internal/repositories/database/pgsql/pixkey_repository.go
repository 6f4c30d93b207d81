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

type PgxPixKeyRepository struct {
	BaseRepository
}

// newPgxPixKeyRepository creates a new repository for Pix keys.
func newPgxPixKeyRepository(pool *pgxpool.Pool) portsrepo.PixKeyRepository {
	return &PgxPixKeyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PixKeyRepository = (*PgxPixKeyRepository)(nil)

func toModelPixKey(d domain.PixKey) models.PixKey {
	return models.PixKey{
		PixKeyID: d.PixKeyID,
		WalletID: d.WalletID,
		KeyValue: d.KeyValue,
		KeyType:  string(d.KeyType),
		Status:   string(d.Status),
		Version:  d.Version,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func toDomainPixKey(m models.PixKey) domain.PixKey {
	return domain.PixKey{
		PixKeyID: m.PixKeyID,
		WalletID: m.WalletID,
		KeyValue: m.KeyValue,
		KeyType:  domain.PixKeyType(m.KeyType),
		Status:   domain.PixKeyStatus(m.Status),
		Version:  m.Version,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// SavePixKey inserts a new Pix key. A partial unique index on key_value
// (WHERE status = 'ACTIVE') makes concurrent registration of the same value
// fail with ErrDuplicate.
func (r *PgxPixKeyRepository) SavePixKey(ctx context.Context, key domain.PixKey) error {
	m := toModelPixKey(key)

	query := `
		INSERT INTO pix_keys (pix_key_id, wallet_id, key_value, key_type, status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.PixKeyID,
		m.WalletID,
		m.KeyValue,
		m.KeyType,
		m.Status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: pix key value already registered", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save pix key %s: %w", m.PixKeyID, err)
	}
	return nil
}

// FindPixKeyByID retrieves a Pix key by its ID.
func (r *PgxPixKeyRepository) FindPixKeyByID(ctx context.Context, pixKeyID string) (*domain.PixKey, error) {
	query := `
		SELECT pix_key_id, wallet_id, key_value, key_type, status, version, created_at, updated_at
		FROM pix_keys
		WHERE pix_key_id = $1;
	`
	return r.scanOne(ctx, query, pixKeyID)
}

// FindActiveByValue resolves a key value to its single ACTIVE registration.
func (r *PgxPixKeyRepository) FindActiveByValue(ctx context.Context, keyValue string) (*domain.PixKey, error) {
	query := `
		SELECT pix_key_id, wallet_id, key_value, key_type, status, version, created_at, updated_at
		FROM pix_keys
		WHERE key_value = $1 AND status = 'ACTIVE';
	`
	return r.scanOne(ctx, query, keyValue)
}

// FindPixKeysByWalletID lists every key registered to a wallet, any status.
func (r *PgxPixKeyRepository) FindPixKeysByWalletID(ctx context.Context, walletID string) ([]domain.PixKey, error) {
	query := `
		SELECT pix_key_id, wallet_id, key_value, key_type, status, version, created_at, updated_at
		FROM pix_keys
		WHERE wallet_id = $1
		ORDER BY created_at;
	`
	rows, err := r.conn(ctx).Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pix keys for wallet %s: %w", walletID, err)
	}
	defer rows.Close()

	keys := []domain.PixKey{}
	for rows.Next() {
		var m models.PixKey
		if err := rows.Scan(&m.PixKeyID, &m.WalletID, &m.KeyValue, &m.KeyType, &m.Status, &m.Version, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pix key row for wallet %s: %w", walletID, err)
		}
		keys = append(keys, toDomainPixKey(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pix key rows for wallet %s: %w", walletID, err)
	}
	return keys, nil
}

// UpdatePixKeyStatus changes a key's lifecycle status.
func (r *PgxPixKeyRepository) UpdatePixKeyStatus(ctx context.Context, pixKeyID string, status domain.PixKeyStatus, now time.Time) error {
	query := `
		UPDATE pix_keys
		SET status = $2, version = version + 1, updated_at = $3
		WHERE pix_key_id = $1;
	`
	cmdTag, err := r.conn(ctx).Exec(ctx, query, pixKeyID, string(status), now)
	if err != nil {
		return fmt.Errorf("failed to update status for pix key %s: %w", pixKeyID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: pix key %s not found during status update", apperrors.ErrNotFound, pixKeyID)
	}
	return nil
}

func (r *PgxPixKeyRepository) scanOne(ctx context.Context, query string, arg any) (*domain.PixKey, error) {
	var m models.PixKey
	err := r.conn(ctx).QueryRow(ctx, query, arg).Scan(
		&m.PixKeyID,
		&m.WalletID,
		&m.KeyValue,
		&m.KeyType,
		&m.Status,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find pix key: %w", err)
	}

	d := toDomainPixKey(m)
	return &d, nil
}
