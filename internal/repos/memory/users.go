package memory

import (
	"cmp"
	"context"
	"math"
	"slices"
	"time"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/repos/users"
)

type usersView struct{ v view }

func (u usersView) Add(ctx context.Context, in domain.User) (int64, error) {
	var id int64

	err := u.v.do(ctx, func(st *state) error {
		if _, taken := st.byName[in.Username]; taken {
			return users.ErrUsernameTaken
		}

		st.nextUserID++
		id = st.nextUserID

		in.ID = id
		in.Balance = 0
		if in.CreatedAt.IsZero() {
			in.CreatedAt = u.v.s.now().UTC().Truncate(time.Microsecond)
		}

		st.users[id] = in
		st.byName[in.Username] = id

		return nil
	})

	return id, err
}

func (u usersView) Update(ctx context.Context, in domain.User) error {
	return u.v.do(ctx, func(st *state) error {
		cur, ok := st.users[in.ID]
		if !ok {
			return users.ErrUserNotFound
		}

		if owner, taken := st.byName[in.Username]; taken && owner != in.ID {
			return users.ErrUsernameTaken
		}

		delete(st.byName, cur.Username)

		cur.Username = in.Username
		cur.PasswordHash = in.PasswordHash
		cur.FirstName = in.FirstName
		cur.LastName = in.LastName

		st.users[cur.ID] = cur
		st.byName[cur.Username] = cur.ID

		return nil
	})
}

func (u usersView) Delete(ctx context.Context, userID int64) error {
	return u.v.do(ctx, func(st *state) error {
		cur, ok := st.users[userID]
		if !ok {
			return users.ErrUserNotFound
		}

		if slices.ContainsFunc(st.txns, func(t domain.Transaction) bool { return t.UserID == userID }) ||
			slices.ContainsFunc(st.audit, func(a domain.Auditable) bool { return a.Meta().UserID == userID }) {
			return users.ErrUserReferenced
		}

		delete(st.users, userID)
		delete(st.byName, cur.Username)

		return nil
	})
}

func (u usersView) FindByID(ctx context.Context, userID int64) (domain.User, error) {
	var out domain.User

	err := u.v.do(ctx, func(st *state) error {
		found, ok := st.users[userID]
		if !ok {
			return users.ErrUserNotFound
		}

		out = found

		return nil
	})

	return out, err
}

func (u usersView) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	var out domain.User

	err := u.v.do(ctx, func(st *state) error {
		id, ok := st.byName[username]
		if !ok {
			return users.ErrUserNotFound
		}

		out = st.users[id]

		return nil
	})

	return out, err
}

func (u usersView) FindAll(ctx context.Context) ([]domain.User, error) {
	var out []domain.User

	err := u.v.do(ctx, func(st *state) error {
		out = make([]domain.User, 0, len(st.users))
		for _, usr := range st.users {
			out = append(out, usr)
		}

		slices.SortFunc(out, func(a, b domain.User) int { return cmp.Compare(a.ID, b.ID) })

		return nil
	})

	return out, err
}

func (u usersView) GetBalance(ctx context.Context, userID int64) (domain.Amount, error) {
	usr, err := u.FindByID(ctx, userID)
	if err != nil {
		return 0, err
	}

	return usr.Balance, nil
}

// LockAndGetBalance needs no extra locking: units of work are already serialized.
func (u usersView) LockAndGetBalance(ctx context.Context, userID int64) (domain.Amount, error) {
	return u.GetBalance(ctx, userID)
}

func (u usersView) IncreaseBalance(ctx context.Context, userID int64, amount domain.Amount) error {
	return u.v.do(ctx, func(st *state) error {
		usr, ok := st.users[userID]
		if !ok {
			return users.ErrUserNotFound
		}

		if amount > math.MaxInt64-usr.Balance {
			return users.ErrBalanceOverflow
		}

		usr.Balance += amount
		st.users[userID] = usr

		return nil
	})
}

func (u usersView) DecreaseBalance(ctx context.Context, userID int64, amount domain.Amount) error {
	return u.v.do(ctx, func(st *state) error {
		usr, ok := st.users[userID]
		if !ok || usr.Balance < amount {
			return users.ErrInsufficientFunds
		}

		usr.Balance -= amount
		st.users[userID] = usr

		return nil
	})
}
