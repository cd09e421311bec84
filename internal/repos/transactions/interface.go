package transactions

import (
	"context"
	"errors"

	"github.com/fastprodman/ledger/internal/domain"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// Transactions is the append-only transaction store.
type Transactions interface {
	Add(ctx context.Context, t domain.Transaction) (int64, error)
	FindByID(ctx context.Context, id int64) (domain.Transaction, error)
	FindAllByUserID(ctx context.Context, userID int64) ([]domain.Transaction, error)
	GetAll(ctx context.Context) ([]domain.Transaction, error)
}
