package models

// PixKey is the database representation of a pix_keys row.
type PixKey struct {
	PixKeyID string `db:"pix_key_id"`
	WalletID string `db:"wallet_id"`
	KeyValue string `db:"key_value"`
	KeyType  string `db:"key_type"`
	Status   string `db:"status"`
	Version  int64  `db:"version"`
	AuditFields
}
