package domain

// PixKeyType defines the format class of a Pix key value.
type PixKeyType string

const (
	PixKeyEmail PixKeyType = "EMAIL"
	PixKeyPhone PixKeyType = "PHONE"
	PixKeyEVP   PixKeyType = "EVP" // random key, canonical UUID form
)

// PixKeyStatus is the lifecycle state of a Pix key.
type PixKeyStatus string

const (
	PixKeyActive   PixKeyStatus = "ACTIVE"
	PixKeyInactive PixKeyStatus = "INACTIVE"
	PixKeyBlocked  PixKeyStatus = "BLOCKED"
)

// PixKey maps a human-usable identifier to exactly one wallet. A key value
// is unique among ACTIVE keys only; deactivating a key frees its value for
// re-registration by any wallet.
type PixKey struct {
	PixKeyID string       `json:"pixKeyID"`
	WalletID string       `json:"walletID"`
	KeyValue string       `json:"keyValue"`
	KeyType  PixKeyType   `json:"keyType"`
	Status   PixKeyStatus `json:"status"`
	Version  int64        `json:"version"`
	AuditFields
}
