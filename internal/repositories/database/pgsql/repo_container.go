package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finaya/pixwallet/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	walletRepo := newPgxWalletRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	pixKeyRepo := newPgxPixKeyRepository(dbPool)
	transferRepo := newPgxTransferRepository(dbPool)
	idempotencyRepo := newPgxIdempotencyRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)

	return portsrepo.RepositoryProvider{
		Tx:              &BaseRepository{Pool: dbPool},
		WalletRepo:      walletRepo,
		LedgerRepo:      ledgerRepo,
		PixKeyRepo:      pixKeyRepo,
		TransferRepo:    transferRepo,
		IdempotencyRepo: idempotencyRepo,
		UserRepo:        userRepo,
	}
}
