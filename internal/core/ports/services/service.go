package services

// ServiceContainer bundles every service facade for handler wiring.
type ServiceContainer struct {
	Idempotency IdempotencySvcFacade
	Wallet      WalletSvcFacade
	PixKey      PixKeySvcFacade
	Transfer    TransferSvcFacade
	User        UserSvcFacade
	Token       TokenSvcFacade
}
