package users

import (
	"context"
	"fmt"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/repos/users"
)

// DecreaseBalance is a conditional update: it only applies when the balance covers amount.
func (r *usersRepo) DecreaseBalance(ctx context.Context, userID int64, amount domain.Amount) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET balance = balance - $2
		WHERE id = $1
		  AND balance >= $2
	`, userID, int64(amount))
	if err != nil {
		return fmt.Errorf("decrease balance: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if affected == 0 {
		return users.ErrInsufficientFunds
	}

	return nil
}
