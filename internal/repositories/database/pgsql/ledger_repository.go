package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finaya/pixwallet/internal/core/domain"
	portsrepo "github.com/finaya/pixwallet/internal/core/ports/repositories"
	"github.com/finaya/pixwallet/internal/models"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func toModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:       d.EntryID,
		WalletID:      d.WalletID,
		TransactionID: d.TransactionID,
		Amount:        d.Amount,
		EntryType:     string(d.Kind),
		BalanceAfter:  d.BalanceAfter,
		Description:   d.Description,
		CreatedAt:     d.CreatedAt,
	}
}

func toDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:       m.EntryID,
		WalletID:      m.WalletID,
		TransactionID: m.TransactionID,
		Amount:        m.Amount,
		Kind:          domain.EntryKind(m.EntryType),
		BalanceAfter:  m.BalanceAfter,
		Description:   m.Description,
		CreatedAt:     m.CreatedAt,
	}
}

// SaveEntry appends one immutable ledger entry.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := toModelLedgerEntry(entry)

	query := `
		INSERT INTO ledger_entries (entry_id, wallet_id, transaction_id, amount, entry_type, balance_after, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.conn(ctx).Exec(ctx, query,
		m.EntryID,
		m.WalletID,
		m.TransactionID,
		m.Amount,
		m.EntryType,
		m.BalanceAfter,
		m.Description,
		m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save ledger entry %s: %w", m.EntryID, err)
	}
	return nil
}

// FindBalanceAsOf returns the balance snapshot of the latest entry at or
// before asOf for the wallet. found is false when no such entry exists.
func (r *PgxLedgerRepository) FindBalanceAsOf(ctx context.Context, walletID string, asOf time.Time) (decimal.Decimal, bool, error) {
	query := `
		SELECT balance_after
		FROM ledger_entries
		WHERE wallet_id = $1 AND created_at <= $2
		ORDER BY created_at DESC
		LIMIT 1;
	`
	var balance decimal.Decimal
	err := r.conn(ctx).QueryRow(ctx, query, walletID, asOf).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("failed to find balance as of %s for wallet %s: %w", asOf, walletID, err)
	}
	return balance, true, nil
}

// ListEntriesByWallet returns a page of a wallet's entries, newest first.
func (r *PgxLedgerRepository) ListEntriesByWallet(ctx context.Context, walletID string, limit int, offset int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT entry_id, wallet_id, transaction_id, amount, entry_type, balance_after, description, created_at
		FROM ledger_entries
		WHERE wallet_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.conn(ctx).Query(ctx, query, walletID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for wallet %s: %w", walletID, err)
	}
	defer rows.Close()

	return scanLedgerEntries(rows)
}

// FindEntriesByTransactionID returns every leg recorded under one
// correlation id, oldest first.
func (r *PgxLedgerRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT entry_id, wallet_id, transaction_id, amount, entry_type, balance_after, description, created_at
		FROM ledger_entries
		WHERE transaction_id = $1
		ORDER BY created_at;
	`
	rows, err := r.conn(ctx).Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	return scanLedgerEntries(rows)
}

func scanLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var m models.LedgerEntry
		if err := rows.Scan(
			&m.EntryID,
			&m.WalletID,
			&m.TransactionID,
			&m.Amount,
			&m.EntryType,
			&m.BalanceAfter,
			&m.Description,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, toDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return entries, nil
}
