package services

import "context"

// IdempotencyOp is a unit of work protected by an idempotency key. It runs
// inside a database transaction (carried in ctx) together with the record
// finalization, and returns its result pre-serialized so a replay can hand
// back the identical payload.
type IdempotencyOp func(ctx context.Context) ([]byte, error)

// IdempotencySvcFacade guarantees at-most-one effective execution of op per
// key. The first caller to claim the key executes op; every later caller
// with the same key gets the stored outcome (payload or original error)
// without op running again. A concurrent duplicate, while the first
// execution is still in flight, fails with ErrDuplicateInProgress.
type IdempotencySvcFacade interface {
	Run(ctx context.Context, key string, op IdempotencyOp) ([]byte, error)
}
