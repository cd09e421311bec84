package memory

import (
	"context"
	"slices"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/repos/transactions"
)

type txnsView struct{ v view }

func (t txnsView) Add(ctx context.Context, in domain.Transaction) (int64, error) {
	var id int64

	err := t.v.do(ctx, func(st *state) error {
		if _, ok := st.users[in.UserID]; !ok {
			return ErrUnknownUser
		}

		st.nextTxnID++
		id = st.nextTxnID

		in.ID = id
		st.txns = append(st.txns, in)

		return nil
	})

	return id, err
}

func (t txnsView) FindByID(ctx context.Context, id int64) (domain.Transaction, error) {
	var out domain.Transaction

	err := t.v.do(ctx, func(st *state) error {
		i := slices.IndexFunc(st.txns, func(txn domain.Transaction) bool { return txn.ID == id })
		if i < 0 {
			return transactions.ErrTransactionNotFound
		}

		out = st.txns[i]

		return nil
	})

	return out, err
}

func (t txnsView) FindAllByUserID(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, 0)

	err := t.v.do(ctx, func(st *state) error {
		for _, txn := range st.txns {
			if txn.UserID == userID {
				out = append(out, txn)
			}
		}

		return nil
	})

	return out, err
}

func (t txnsView) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	var out []domain.Transaction

	err := t.v.do(ctx, func(st *state) error {
		out = slices.Clone(st.txns)
		if out == nil {
			out = make([]domain.Transaction, 0)
		}

		return nil
	})

	return out, err
}
