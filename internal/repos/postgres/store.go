package repos

import (
	"context"
	"database/sql"

	"github.com/fastprodman/ledger/internal/infra/pgutils"
	"github.com/fastprodman/ledger/internal/repos"
	"github.com/fastprodman/ledger/internal/repos/audit"
	pgaudit "github.com/fastprodman/ledger/internal/repos/audit/postgres"
	"github.com/fastprodman/ledger/internal/repos/transactions"
	pgtransactions "github.com/fastprodman/ledger/internal/repos/transactions/postgres"
	"github.com/fastprodman/ledger/internal/repos/users"
	pgusers "github.com/fastprodman/ledger/internal/repos/users/postgres"
)

var _ repos.Store = (*Store)(nil)

// Store is the PostgreSQL-backed repos.Store. A unit of work is one SQL transaction.
type Store struct {
	db *sql.DB
	bound
}

type bound struct {
	users users.Users
	txns  transactions.Transactions
	audit audit.Audit
}

func bind(db pgutils.DBTX) bound {
	return bound{
		users: pgusers.New(db),
		txns:  pgtransactions.New(db),
		audit: pgaudit.New(db),
	}
}

func (b bound) Users() users.Users                      { return b.users }
func (b bound) Transactions() transactions.Transactions { return b.txns }
func (b bound) Audit() audit.Audit                      { return b.audit }

func New(db *sql.DB) *Store {
	return &Store{db: db, bound: bind(db)}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r repos.Repos) error) error {
	return pgutils.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(ctx, bind(tx))
	})
}
