package transactions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/infra/pgutils"
	"github.com/fastprodman/ledger/internal/repos/transactions"
)

var _ transactions.Transactions = (*transactionsRepo)(nil)

type transactionsRepo struct{ db pgutils.DBTX }

// New returns a transaction store bound to db, which may be a *sql.DB or a *sql.Tx.
func New(db pgutils.DBTX) *transactionsRepo {
	return &transactionsRepo{db: db}
}

const selectTransaction = `
	SELECT id, user_id, occurred_at, type, status, amount
	FROM transactions
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var (
		t          domain.Transaction
		occurredAt time.Time
		txType     string
		status     string
		amount     int64
	)

	err := row.Scan(&t.ID, &t.UserID, &occurredAt, &txType, &status, &amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	t.OccurredAt = occurredAt.UTC()
	t.Type = domain.TxType(txType)
	t.Status = domain.Status(status)
	t.Amount = domain.Amount(amount)

	return t, nil
}

func (r *transactionsRepo) Add(ctx context.Context, t domain.Transaction) (int64, error) {
	var id int64

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO transactions (user_id, occurred_at, type, status, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, t.UserID, t.OccurredAt, string(t.Type), string(t.Status), int64(t.Amount)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	return id, nil
}

func (r *transactionsRepo) FindByID(ctx context.Context, id int64) (domain.Transaction, error) {
	t, err := scanTransaction(r.db.QueryRowContext(ctx, selectTransaction+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Transaction{}, transactions.ErrTransactionNotFound
		}

		return domain.Transaction{}, fmt.Errorf("find transaction: %w", err)
	}

	return t, nil
}

func (r *transactionsRepo) FindAllByUserID(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	return r.list(ctx, selectTransaction+` WHERE user_id = $1 ORDER BY id`, userID)
}

func (r *transactionsRepo) GetAll(ctx context.Context) ([]domain.Transaction, error) {
	return r.list(ctx, selectTransaction+` ORDER BY id`)
}

func (r *transactionsRepo) list(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	//nolint:errcheck
	defer rows.Close()

	out := make([]domain.Transaction, 0)

	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		out = append(out, t)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return out, nil
}
