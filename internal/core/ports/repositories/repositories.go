package repositories

// RepositoryProvider bundles every repository implementation plus the shared
// Transactor so service wiring takes a single dependency.
type RepositoryProvider struct {
	Tx              Transactor
	WalletRepo      WalletRepository
	LedgerRepo      LedgerRepository
	PixKeyRepo      PixKeyRepository
	TransferRepo    TransferRepository
	IdempotencyRepo IdempotencyRepository
	UserRepo        UserRepository
}
