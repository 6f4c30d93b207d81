package dto

import (
	"time"

	"github.com/finaya/pixwallet/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RegisterPixKeyRequest defines the data needed to register a Pix key.
type RegisterPixKeyRequest struct {
	WalletID string            `json:"walletID" binding:"required,uuid"`
	KeyValue string            `json:"keyValue" binding:"required"`
	KeyType  domain.PixKeyType `json:"keyType" binding:"required,oneof=EMAIL PHONE EVP"`
}

// PixKeyResponse defines the data returned for a Pix key.
type PixKeyResponse struct {
	PixKeyID  string              `json:"pixKeyID"`
	WalletID  string              `json:"walletID"`
	KeyValue  string              `json:"keyValue"`
	KeyType   domain.PixKeyType   `json:"keyType"`
	Status    domain.PixKeyStatus `json:"status"`
	CreatedAt time.Time           `json:"createdAt"`
}

// ToPixKeyResponse converts a domain.PixKey to PixKeyResponse DTO
func ToPixKeyResponse(k *domain.PixKey) PixKeyResponse {
	return PixKeyResponse{
		PixKeyID:  k.PixKeyID,
		WalletID:  k.WalletID,
		KeyValue:  k.KeyValue,
		KeyType:   k.KeyType,
		Status:    k.Status,
		CreatedAt: k.CreatedAt,
	}
}

// ToListPixKeyResponse converts a slice of domain.PixKey to DTOs
func ToListPixKeyResponse(keys []domain.PixKey) []PixKeyResponse {
	res := make([]PixKeyResponse, len(keys))
	for i, k := range keys {
		res[i] = ToPixKeyResponse(&k)
	}
	return res
}

// InitiateTransferRequest defines the data needed to start a Pix transfer.
// The idempotency key travels in the Idempotency-Key header.
type InitiateTransferRequest struct {
	FromWalletID string          `json:"fromWalletID" binding:"required,uuid"`
	ToKeyValue   string          `json:"toKeyValue" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// TransferResponse defines the data returned for a Pix transfer.
type TransferResponse struct {
	EndToEndID   string                `json:"endToEndID"`
	FromWalletID string                `json:"fromWalletID"`
	ToWalletID   string                `json:"toWalletID"`
	Amount       decimal.Decimal       `json:"amount"`
	Status       domain.TransferStatus `json:"status"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// ToTransferResponse converts a domain.PixTransfer to TransferResponse DTO
func ToTransferResponse(t *domain.PixTransfer) TransferResponse {
	return TransferResponse{
		EndToEndID:   t.EndToEndID,
		FromWalletID: t.FromWalletID,
		ToWalletID:   t.ToWalletID,
		Amount:       t.Amount,
		Status:       t.Status,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// WebhookEventRequest defines the payment network settlement event payload.
type WebhookEventRequest struct {
	EndToEndID string `json:"endToEndID" binding:"required"`
	EventID    string `json:"eventID" binding:"required"`
	EventType  string `json:"eventType" binding:"required"`
}
