package users

import (
	"context"
	"fmt"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/infra/pgutils"
	"github.com/fastprodman/ledger/internal/repos/users"
)

func (r *usersRepo) IncreaseBalance(ctx context.Context, userID int64, amount domain.Amount) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET balance = balance + $2
		WHERE id = $1
	`, userID, int64(amount))
	if err != nil {
		if pgutils.IsNumericOutOfRange(err) {
			return users.ErrBalanceOverflow
		}

		return fmt.Errorf("increase balance: %w", err)
	}

	return expectOneRow(res)
}
