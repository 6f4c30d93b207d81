package dto

import (
	"time"

	"github.com/finaya/pixwallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletResponse defines the data returned for a wallet.
type WalletResponse struct {
	WalletID  string          `json:"walletID"`
	UserID    string          `json:"userID"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToWalletResponse converts a domain.Wallet to WalletResponse DTO
func ToWalletResponse(w *domain.Wallet) WalletResponse {
	return WalletResponse{
		WalletID:  w.WalletID,
		UserID:    w.UserID,
		Balance:   w.Balance,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ToListWalletResponse converts a slice of domain.Wallet to WalletResponse DTOs
func ToListWalletResponse(wallets []domain.Wallet) []WalletResponse {
	res := make([]WalletResponse, len(wallets))
	for i, w := range wallets {
		res[i] = ToWalletResponse(&w)
	}
	return res
}

// AmountRequest defines the body for deposits and withdrawals. The
// idempotency key travels in the Idempotency-Key header, not the body.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// BalanceResponse defines the data returned for a balance query.
type BalanceResponse struct {
	WalletID string          `json:"walletID"`
	Balance  decimal.Decimal `json:"balance"`
	AsOf     *time.Time      `json:"asOf,omitempty"`
}

// LedgerEntryResponse defines the data returned for one statement line.
type LedgerEntryResponse struct {
	EntryID       string           `json:"entryID"`
	WalletID      string           `json:"walletID"`
	TransactionID string           `json:"transactionID"`
	Amount        decimal.Decimal  `json:"amount"`
	Kind          domain.EntryKind `json:"kind"`
	BalanceAfter  decimal.Decimal  `json:"balanceAfter"`
	Description   string           `json:"description"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to its DTO
func ToLedgerEntryResponse(e domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:       e.EntryID,
		WalletID:      e.WalletID,
		TransactionID: e.TransactionID,
		Amount:        e.Amount,
		Kind:          e.Kind,
		BalanceAfter:  e.BalanceAfter,
		Description:   e.Description,
		CreatedAt:     e.CreatedAt,
	}
}

// ToListLedgerEntryResponse converts a slice of entries to DTOs
func ToListLedgerEntryResponse(entries []domain.LedgerEntry) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i, e := range entries {
		res[i] = ToLedgerEntryResponse(e)
	}
	return res
}

// ListEntriesParams defines query parameters for the statement endpoint.
type ListEntriesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}
