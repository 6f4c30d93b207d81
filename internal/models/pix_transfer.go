package models

import (
	"github.com/shopspring/decimal"
)

// PixTransfer is the database representation of a pix_transfers row.
type PixTransfer struct {
	EndToEndID     string          `db:"end_to_end_id"`
	FromWalletID   string          `db:"from_wallet_id"`
	ToWalletID     string          `db:"to_wallet_id"`
	Amount         decimal.Decimal `db:"amount"`
	Status         string          `db:"status"`
	IdempotencyKey string          `db:"idempotency_key"`
	Version        int64           `db:"version"`
	AuditFields
}
