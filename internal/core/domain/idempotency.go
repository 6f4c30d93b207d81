package domain

import (
	"encoding/json"
	"time"
)

// IdempotencyStatus is the outcome state of an idempotency record.
type IdempotencyStatus string

const (
	IdempotencyInProgress IdempotencyStatus = "IN_PROGRESS"
	IdempotencySucceeded  IdempotencyStatus = "SUCCEEDED"
	IdempotencyFailed     IdempotencyStatus = "FAILED"
)

// IdempotencyRecord tracks one client-supplied operation key. The record is
// inserted atomically when the key is first seen (the claim) and finalized
// exactly once when the wrapped operation finishes. A record stuck in
// IN_PROGRESS marks an operation interrupted between claim and finalize; it
// is never treated as success.
type IdempotencyRecord struct {
	RecordKey    string            `json:"recordKey"`
	Status       IdempotencyStatus `json:"status"`
	ResultData   json.RawMessage   `json:"resultData,omitempty"`
	ErrorType    string            `json:"errorType,omitempty"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}
