package models

import "time"

// IdempotencyRecord is the database representation of an idempotency_records row.
// ResultData, ErrorType and ErrorMessage are nullable.
type IdempotencyRecord struct {
	RecordKey    string    `db:"record_key"`
	Status       string    `db:"status"`
	ResultData   []byte    `db:"result_data"`
	ErrorType    *string   `db:"error_type"`
	ErrorMessage *string   `db:"error_message"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
