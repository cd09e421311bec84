package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/repos/audit"
)

type auditView struct{ v view }

func (a auditView) Add(ctx context.Context, rec domain.Auditable) (int64, error) {
	switch rec.(type) {
	case domain.Transaction, domain.Action:
	default:
		return 0, fmt.Errorf("%w: %T", audit.ErrUnknownVariant, rec)
	}

	var id int64

	err := a.v.do(ctx, func(st *state) error {
		if _, ok := st.users[rec.Meta().UserID]; !ok {
			return ErrUnknownUser
		}

		st.nextAuditID++
		id = st.nextAuditID

		st.audit = append(st.audit, domain.WithID(rec, id))

		return nil
	})

	return id, err
}

func (a auditView) FindByID(ctx context.Context, id int64) (domain.Auditable, error) {
	var out domain.Auditable

	err := a.v.do(ctx, func(st *state) error {
		i := slices.IndexFunc(st.audit, func(rec domain.Auditable) bool { return rec.Meta().ID == id })
		if i < 0 {
			return audit.ErrAuditableNotFound
		}

		out = st.audit[i]

		return nil
	})

	return out, err
}

func (a auditView) FindAllByUserID(ctx context.Context, userID int64) ([]domain.Auditable, error) {
	out := make([]domain.Auditable, 0)

	err := a.v.do(ctx, func(st *state) error {
		for _, rec := range st.audit {
			if rec.Meta().UserID == userID {
				out = append(out, rec)
			}
		}

		return nil
	})

	return out, err
}

func (a auditView) GetAll(ctx context.Context) ([]domain.Auditable, error) {
	var out []domain.Auditable

	err := a.v.do(ctx, func(st *state) error {
		out = slices.Clone(st.audit)
		if out == nil {
			out = make([]domain.Auditable, 0)
		}

		return nil
	})

	return out, err
}
