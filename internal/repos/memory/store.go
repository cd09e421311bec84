// Package memory is an in-process repos.Store. It backs tests and local runs
// without PostgreSQL.
//
// A unit of work holds the store mutex for its whole duration and mutates a
// copy of the state; the copy replaces the live state only when the unit
// succeeds. Units are therefore serialized and all-or-nothing.
package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/repos"
	"github.com/fastprodman/ledger/internal/repos/audit"
	"github.com/fastprodman/ledger/internal/repos/transactions"
	"github.com/fastprodman/ledger/internal/repos/users"
)

// ErrUnknownUser is returned when a record references a user that does not exist.
var ErrUnknownUser = errors.New("referenced user does not exist")

var _ repos.Store = (*Store)(nil)

type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

type state struct {
	users  map[int64]domain.User
	byName map[string]int64
	txns   []domain.Transaction
	audit  []domain.Auditable

	nextUserID  int64
	nextTxnID   int64
	nextAuditID int64
}

func New() *Store {
	return &Store{
		state: &state{
			users:  make(map[int64]domain.User),
			byName: make(map[string]int64),
		},
		now: time.Now,
	}
}

func (st *state) clone() *state {
	return &state{
		users:       maps.Clone(st.users),
		byName:      maps.Clone(st.byName),
		txns:        slices.Clone(st.txns),
		audit:       slices.Clone(st.audit),
		nextUserID:  st.nextUserID,
		nextTxnID:   st.nextTxnID,
		nextAuditID: st.nextAuditID,
	}
}

func (s *Store) Users() users.Users                      { return usersView{view{s: s}} }
func (s *Store) Transactions() transactions.Transactions { return txnsView{view{s: s}} }
func (s *Store) Audit() audit.Audit                      { return auditView{view{s: s}} }

// WithinTx runs fn against a private copy of the state. fn must only use the
// Repos it is given; calling the Store's own accessors from fn deadlocks.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r repos.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := ctx.Err()
	if err != nil {
		return err
	}

	work := s.state.clone()

	err = fn(ctx, txRepos{view{s: s, tx: work}})
	if err != nil {
		return err
	}

	// A unit that outlived its context is not committed.
	err = ctx.Err()
	if err != nil {
		return err
	}

	s.state = work

	return nil
}

type txRepos struct{ v view }

func (t txRepos) Users() users.Users                      { return usersView{t.v} }
func (t txRepos) Transactions() transactions.Transactions { return txnsView{t.v} }
func (t txRepos) Audit() audit.Audit                      { return auditView{t.v} }

// view runs operations either on a unit-of-work copy (tx set, lock already
// held) or directly on the live state under the lock.
type view struct {
	s  *Store
	tx *state
}

func (v view) do(ctx context.Context, fn func(st *state) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}

	if v.tx != nil {
		return fn(v.tx)
	}

	v.s.mu.Lock()
	defer v.s.mu.Unlock()

	return fn(v.s.state)
}
