package services

import (
	portsrepo "github.com/finaya/pixwallet/internal/core/ports/repositories"
	portssvc "github.com/finaya/pixwallet/internal/core/ports/services"
	"github.com/finaya/pixwallet/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The idempotency coordinator and ledger poster come first since the
	// money-moving services depend on them.
	container.Idempotency = NewIdempotencyService(repos.Tx, repos.IdempotencyRepo)
	poster := NewLedgerPoster(repos.WalletRepo, repos.LedgerRepo)

	container.Wallet = NewWalletService(repos.WalletRepo, repos.LedgerRepo, poster, container.Idempotency)
	container.PixKey = NewPixKeyService(repos.WalletRepo, repos.PixKeyRepo)
	container.Transfer = NewTransferService(repos.TransferRepo, repos.WalletRepo, repos.PixKeyRepo, repos.LedgerRepo, poster, container.Idempotency)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)

	return container
}
