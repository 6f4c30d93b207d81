package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finaya/pixwallet/internal/apperrors"
	"github.com/finaya/pixwallet/internal/core/domain"
	portsrepo "github.com/finaya/pixwallet/internal/core/ports/repositories"
	"github.com/finaya/pixwallet/internal/models"
)

type PgxWalletRepository struct {
	BaseRepository
}

// newPgxWalletRepository creates a new repository for wallet data.
func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepository {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WalletRepository = (*PgxWalletRepository)(nil)

func toModelWallet(d domain.Wallet) models.Wallet {
	return models.Wallet{
		WalletID: d.WalletID,
		UserID:   d.UserID,
		Balance:  d.Balance,
		Version:  d.Version,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func toDomainWallet(m models.Wallet) domain.Wallet {
	return domain.Wallet{
		WalletID: m.WalletID,
		UserID:   m.UserID,
		Balance:  m.Balance,
		Version:  m.Version,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// SaveWallet inserts a new wallet.
func (r *PgxWalletRepository) SaveWallet(ctx context.Context, wallet domain.Wallet) error {
	m := toModelWallet(wallet)

	query := `
		INSERT INTO wallets (wallet_id, user_id, balance, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.WalletID,
		m.UserID,
		m.Balance,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: wallet %s already exists", apperrors.ErrDuplicate, m.WalletID)
		}
		return fmt.Errorf("failed to save wallet %s: %w", m.WalletID, err)
	}
	return nil
}

// FindWalletByID retrieves a wallet by its ID without locking.
func (r *PgxWalletRepository) FindWalletByID(ctx context.Context, walletID string) (*domain.Wallet, error) {
	query := `
		SELECT wallet_id, user_id, balance, version, created_at, updated_at
		FROM wallets
		WHERE wallet_id = $1;
	`
	var m models.Wallet
	err := r.conn(ctx).QueryRow(ctx, query, walletID).Scan(
		&m.WalletID,
		&m.UserID,
		&m.Balance,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find wallet by ID %s: %w", walletID, err)
	}

	d := toDomainWallet(m)
	return &d, nil
}

// FindWalletsByUserID lists all wallets owned by a user.
func (r *PgxWalletRepository) FindWalletsByUserID(ctx context.Context, userID string) ([]domain.Wallet, error) {
	query := `
		SELECT wallet_id, user_id, balance, version, created_at, updated_at
		FROM wallets
		WHERE user_id = $1
		ORDER BY created_at;
	`
	rows, err := r.conn(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets for user %s: %w", userID, err)
	}
	defer rows.Close()

	wallets := []domain.Wallet{}
	for rows.Next() {
		var m models.Wallet
		if err := rows.Scan(&m.WalletID, &m.UserID, &m.Balance, &m.Version, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wallet row for user %s: %w", userID, err)
		}
		wallets = append(wallets, toDomainWallet(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallet rows for user %s: %w", userID, err)
	}
	return wallets, nil
}

// FindWalletsForUpdate locks the given wallet rows and returns their current
// state. The ids are deduplicated and sorted ascending before the query, and
// the query itself orders by wallet_id, so every caller acquires locks in
// the same global order. Must be called within an ambient transaction.
func (r *PgxWalletRepository) FindWalletsForUpdate(ctx context.Context, walletIDs []string) (map[string]domain.Wallet, error) {
	if len(walletIDs) == 0 {
		return map[string]domain.Wallet{}, nil
	}

	unique := make(map[string]struct{}, len(walletIDs))
	ids := make([]string, 0, len(walletIDs))
	for _, id := range walletIDs {
		if _, ok := unique[id]; ok {
			continue
		}
		unique[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	query := `
		SELECT wallet_id, user_id, balance, version, created_at, updated_at
		FROM wallets
		WHERE wallet_id = ANY($1)
		ORDER BY wallet_id
		FOR UPDATE;
	`
	rows, err := r.conn(ctx).Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query wallets for update: %w", err)
	}
	defer rows.Close()

	walletsMap := make(map[string]domain.Wallet, len(ids))
	for rows.Next() {
		var m models.Wallet
		if err := rows.Scan(&m.WalletID, &m.UserID, &m.Balance, &m.Version, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan locked wallet row: %w", err)
		}
		walletsMap[m.WalletID] = toDomainWallet(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked wallet rows: %w", err)
	}

	if len(walletsMap) != len(ids) {
		missing := make([]string, 0)
		for _, id := range ids {
			if _, ok := walletsMap[id]; !ok {
				missing = append(missing, id)
			}
		}
		return nil, fmt.Errorf("%w: wallet(s) %s", apperrors.ErrNotFound, strings.Join(missing, ", "))
	}

	return walletsMap, nil
}

// UpdateWalletBalance persists a new balance for an already-locked wallet,
// bumping the optimistic version counter.
func (r *PgxWalletRepository) UpdateWalletBalance(ctx context.Context, walletID string, newBalance decimal.Decimal, now time.Time) error {
	query := `
		UPDATE wallets
		SET balance = $2, version = version + 1, updated_at = $3
		WHERE wallet_id = $1;
	`
	cmdTag, err := r.conn(ctx).Exec(ctx, query, walletID, newBalance, now)
	if err != nil {
		return fmt.Errorf("failed to update balance for wallet %s: %w", walletID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: wallet %s not found during balance update", apperrors.ErrNotFound, walletID)
	}
	return nil
}

// FindBalanceByID reads the cached balance without locking.
func (r *PgxWalletRepository) FindBalanceByID(ctx context.Context, walletID string) (decimal.Decimal, error) {
	query := `SELECT balance FROM wallets WHERE wallet_id = $1;`

	var balance decimal.Decimal
	err := r.conn(ctx).QueryRow(ctx, query, walletID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to read balance for wallet %s: %w", walletID, err)
	}
	return balance, nil
}
