package domain

import (
	"github.com/shopspring/decimal"
)

// TransferStatus is the state of a Pix transfer. PENDING is the only
// non-terminal state; no transition is legal out of CONFIRMED or REJECTED.
type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDING"
	TransferConfirmed TransferStatus = "CONFIRMED"
	TransferRejected  TransferStatus = "REJECTED"
)

// IsTerminal reports whether no further transition is allowed.
func (s TransferStatus) IsTerminal() bool {
	return s == TransferConfirmed || s == TransferRejected
}

// PixTransfer is a two-phase money movement: funds are debited from the
// source at initiation and held by the pending transfer until a payment
// network event confirms (credit destination) or rejects (return to source)
// it. EndToEndID doubles as the external reference and the ledger
// correlation id for every leg of the transfer.
//
// ToWalletID is resolved from the destination Pix key once, at initiation;
// later key changes do not retarget a pending transfer.
type PixTransfer struct {
	EndToEndID     string          `json:"endToEndID"`
	FromWalletID   string          `json:"fromWalletID"`
	ToWalletID     string          `json:"toWalletID"`
	Amount         decimal.Decimal `json:"amount"`
	Status         TransferStatus  `json:"status"`
	IdempotencyKey string          `json:"idempotencyKey"`
	Version        int64           `json:"version"`
	AuditFields
}
