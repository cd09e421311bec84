package memory

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/repos"
	"github.com/fastprodman/ledger/internal/repos/audit"
	"github.com/fastprodman/ledger/internal/repos/transactions"
	"github.com/fastprodman/ledger/internal/repos/users"
)

func addUser(t *testing.T, s *Store, name string) int64 {
	t.Helper()

	id, err := s.Users().Add(t.Context(), domain.User{Username: name, PasswordHash: "x"})
	if err != nil {
		t.Fatalf("add user %q: %v", name, err)
	}

	return id
}

func TestUsers_Lifecycle(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := t.Context()

	id := addUser(t, s, "alice")
	if id != 1 {
		t.Fatalf("want id 1, got %d", id)
	}

	_, err := s.Users().Add(ctx, domain.User{Username: "alice"})
	if !errors.Is(err, users.ErrUsernameTaken) {
		t.Fatalf("duplicate: want ErrUsernameTaken, got %v", err)
	}

	err = s.Users().Update(ctx, domain.User{ID: id, Username: "alice2", FirstName: "A", Balance: 10_000})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	u, err := s.Users().FindByUsername(ctx, "alice2")
	if err != nil {
		t.Fatalf("find renamed: %v", err)
	}
	if u.ID != id || u.FirstName != "A" || u.Balance != 0 {
		t.Fatalf("unexpected user after update: %+v", u)
	}

	_, err = s.Users().FindByUsername(ctx, "alice")
	if !errors.Is(err, users.ErrUserNotFound) {
		t.Fatalf("old name: want ErrUserNotFound, got %v", err)
	}

	err = s.Users().Delete(ctx, id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}

	all, err := s.Users().FindAll(ctx)
	if err != nil || len(all) != 0 {
		t.Fatalf("find all after delete: %v %+v", err, all)
	}
}

func TestUsers_DecreaseBalanceGuard(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := t.Context()

	id := addUser(t, s, "alice")

	err := s.Users().IncreaseBalance(ctx, id, 300)
	if err != nil {
		t.Fatalf("increase: %v", err)
	}

	err = s.Users().DecreaseBalance(ctx, id, 301)
	if !errors.Is(err, users.ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds, got %v", err)
	}

	err = s.Users().DecreaseBalance(ctx, id, 300)
	if err != nil {
		t.Fatalf("decrease to zero: %v", err)
	}

	bal, _ := s.Users().GetBalance(ctx, id)
	if bal != 0 {
		t.Fatalf("want 0, got %d", bal)
	}

	err = s.Users().IncreaseBalance(ctx, 404, 1)
	if !errors.Is(err, users.ErrUserNotFound) {
		t.Fatalf("missing user: want ErrUserNotFound, got %v", err)
	}
}

func TestUsers_IncreaseBalanceOverflow(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := t.Context()

	id := addUser(t, s, "alice")

	err := s.Users().IncreaseBalance(ctx, id, 100)
	if err != nil {
		t.Fatalf("increase: %v", err)
	}

	err = s.Users().IncreaseBalance(ctx, id, domain.Amount(math.MaxInt64))
	if !errors.Is(err, users.ErrBalanceOverflow) {
		t.Fatalf("want ErrBalanceOverflow, got %v", err)
	}

	err = s.Users().IncreaseBalance(ctx, id, domain.Amount(math.MaxInt64-100))
	if err != nil {
		t.Fatalf("increase to max: %v", err)
	}

	bal, _ := s.Users().GetBalance(ctx, id)
	if bal != math.MaxInt64 {
		t.Fatalf("want max balance, got %d", bal)
	}
}

func TestDelete_ReferencedUser(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := t.Context()

	id := addUser(t, s, "alice")

	_, err := s.Audit().Add(ctx, domain.Action{
		Envelope: domain.Envelope{UserID: id, OccurredAt: time.Now(), Status: domain.StatusSuccess},
		Type:     domain.ActionRegister,
	})
	if err != nil {
		t.Fatalf("add action: %v", err)
	}

	err = s.Users().Delete(ctx, id)
	if !errors.Is(err, users.ErrUserReferenced) {
		t.Fatalf("want ErrUserReferenced, got %v", err)
	}
}

func TestRecords_ForeignKeyAndLookup(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := t.Context()

	_, err := s.Transactions().Add(ctx, domain.Transaction{Envelope: domain.Envelope{UserID: 9}})
	if !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("transaction for unknown user: want ErrUnknownUser, got %v", err)
	}

	id := addUser(t, s, "alice")

	txnID, err := s.Transactions().Add(ctx, domain.Transaction{
		Envelope: domain.Envelope{UserID: id, Status: domain.StatusSuccess},
		Type:     domain.TxCredit,
		Amount:   100,
	})
	if err != nil {
		t.Fatalf("add transaction: %v", err)
	}

	got, err := s.Transactions().FindByID(ctx, txnID)
	if err != nil || got.ID != txnID || got.Amount != 100 {
		t.Fatalf("find transaction: %v %+v", err, got)
	}

	_, err = s.Transactions().FindByID(ctx, 404)
	if !errors.Is(err, transactions.ErrTransactionNotFound) {
		t.Fatalf("want ErrTransactionNotFound, got %v", err)
	}

	_, err = s.Audit().FindByID(ctx, 404)
	if !errors.Is(err, audit.ErrAuditableNotFound) {
		t.Fatalf("want ErrAuditableNotFound, got %v", err)
	}

	all, err := s.Transactions().GetAll(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("get all: %v %+v", err, all)
	}
}

func TestWithinTx_AllOrNothing(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := t.Context()

	id := addUser(t, s, "alice")
	boom := errors.New("boom")

	err := s.WithinTx(ctx, func(ctx context.Context, r repos.Repos) error {
		err := r.Users().IncreaseBalance(ctx, id, 500)
		if err != nil {
			return err
		}

		_, err = r.Transactions().Add(ctx, domain.Transaction{Envelope: domain.Envelope{UserID: id}, Type: domain.TxCredit, Amount: 500})
		if err != nil {
			return err
		}

		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}

	bal, _ := s.Users().GetBalance(ctx, id)
	txns, _ := s.Transactions().GetAll(ctx)

	if bal != 0 || len(txns) != 0 {
		t.Fatalf("rolled back unit leaked: balance=%d transactions=%d", bal, len(txns))
	}

	err = s.WithinTx(ctx, func(ctx context.Context, r repos.Repos) error {
		return r.Users().IncreaseBalance(ctx, id, 500)
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	bal, _ = s.Users().GetBalance(ctx, id)
	if bal != 500 {
		t.Fatalf("committed unit lost: balance=%d", bal)
	}
}

func TestWithinTx_CancelledContext(t *testing.T) {
	t.Parallel()

	s := New()
	id := addUser(t, s, "alice")

	ctx, cancel := context.WithCancel(t.Context())

	err := s.WithinTx(ctx, func(ctx context.Context, r repos.Repos) error {
		err := r.Users().IncreaseBalance(ctx, id, 500)
		cancel()
		return err
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}

	bal, _ := s.Users().GetBalance(t.Context(), id)
	if bal != 0 {
		t.Fatalf("unit committed after cancel: %d", bal)
	}
}

func TestWithinTx_Serializes(t *testing.T) {
	t.Parallel()

	s := New()
	ctx := t.Context()

	id := addUser(t, s, "alice")

	var (
		wg      sync.WaitGroup
		active  atomic.Int32
		overlap atomic.Bool
	)

	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			err := s.WithinTx(ctx, func(ctx context.Context, r repos.Repos) error {
				if active.Add(1) > 1 {
					overlap.Store(true)
				}
				defer active.Add(-1)

				return r.Users().IncreaseBalance(ctx, id, 1)
			})
			if err != nil {
				t.Errorf("within tx: %v", err)
			}
		}()
	}

	wg.Wait()

	if overlap.Load() {
		t.Fatalf("units of work overlapped")
	}

	bal, _ := s.Users().GetBalance(ctx, id)
	if bal != 50 {
		t.Fatalf("want 50, got %d", bal)
	}
}
