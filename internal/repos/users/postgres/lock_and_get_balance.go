package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/repos/users"
)

// LockAndGetBalance reads the balance and holds the row lock until the surrounding
// transaction ends. Outside a transaction the lock is released immediately.
func (r *usersRepo) LockAndGetBalance(ctx context.Context, userID int64) (domain.Amount, error) {
	var balance int64

	err := r.db.QueryRowContext(ctx, `
		SELECT balance
		FROM users
		WHERE id = $1
		FOR UPDATE
	`, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, users.ErrUserNotFound
		}

		return 0, fmt.Errorf("lock/get balance: %w", err)
	}

	return domain.Amount(balance), nil
}
