package users

import (
	"github.com/fastprodman/ledger/internal/infra/pgutils"
	"github.com/fastprodman/ledger/internal/repos/users"
)

var _ users.Users = (*usersRepo)(nil)

type usersRepo struct{ db pgutils.DBTX }

// New returns a user store bound to db, which may be a *sql.DB or a *sql.Tx.
func New(db pgutils.DBTX) *usersRepo {
	return &usersRepo{db: db}
}
