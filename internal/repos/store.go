package repos

import (
	"context"

	"github.com/fastprodman/ledger/internal/repos/audit"
	"github.com/fastprodman/ledger/internal/repos/transactions"
	"github.com/fastprodman/ledger/internal/repos/users"
)

// Repos groups the three stores the ledger depends on.
type Repos interface {
	Users() users.Users
	Transactions() transactions.Transactions
	Audit() audit.Audit
}

// Store is Repos plus a unit-of-work boundary. Everything fn does through the Repos it
// receives is committed together when fn returns nil and discarded otherwise.
type Store interface {
	Repos
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
