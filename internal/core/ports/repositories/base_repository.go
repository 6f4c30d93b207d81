package repositories

import "context"

// Transactor runs a function inside one database transaction. The
// transaction is carried in the context, so any repository method invoked
// with the derived context joins it; nested calls reuse the ambient
// transaction. The transaction commits iff fn returns nil.
//
// Every multi-row atomic unit in the core (claim-protected operations,
// debit+entry, transfer initiation/settlement) runs through this.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
