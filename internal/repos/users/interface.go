package users

import (
	"context"
	"errors"

	"github.com/fastprodman/ledger/internal/domain"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUserNotFound      = errors.New("user not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrUserReferenced    = errors.New("user is referenced by ledger records")
	ErrBalanceOverflow   = errors.New("balance out of range")
)

// Users is the user store. Add/Update never touch the balance; it moves only through
// IncreaseBalance and DecreaseBalance.
type Users interface {
	Add(ctx context.Context, u domain.User) (int64, error)
	Update(ctx context.Context, u domain.User) error
	Delete(ctx context.Context, userID int64) error
	FindByID(ctx context.Context, userID int64) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)

	GetBalance(ctx context.Context, userID int64) (domain.Amount, error)
	LockAndGetBalance(ctx context.Context, userID int64) (domain.Amount, error)
	IncreaseBalance(ctx context.Context, userID int64, amount domain.Amount) error
	DecreaseBalance(ctx context.Context, userID int64, amount domain.Amount) error
}
