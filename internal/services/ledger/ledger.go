package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/repos"
	"github.com/fastprodman/ledger/internal/repos/users"
)

// Service is the ledger operation engine. It is the only writer of user balances.
type Service struct {
	store     repos.Store
	now       func() time.Time
	opTimeout time.Duration
}

type Option func(*Service)

// WithClock overrides the time source used to stamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithOpTimeout bounds every credit/debit unit of work. Zero means no bound.
func WithOpTimeout(d time.Duration) Option {
	return func(s *Service) { s.opTimeout = d }
}

func New(store repos.Store, opts ...Option) *Service {
	s := &Service{
		store: store,
		now:   time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Credit adds amount to the user's balance and records a SUCCESS CREDIT transaction.
// A credit the balance cannot hold is rejected with domain.ErrBalanceOverflow.
func (s *Service) Credit(ctx context.Context, userID int64, amount domain.Amount) (domain.Result, error) {
	return s.apply(ctx, userID, domain.TxCredit, amount)
}

// Debit withdraws amount when the balance covers it. Otherwise the balance is left
// alone, a DECLINE transaction is recorded and OutcomeNotEnoughMoney is returned
// with a nil error. The returned balance is the one left by the operation.
func (s *Service) Debit(ctx context.Context, userID int64, amount domain.Amount) (domain.Result, error) {
	return s.apply(ctx, userID, domain.TxDebit, amount)
}

// Balance returns the current balance without taking any lock.
func (s *Service) Balance(ctx context.Context, userID int64) (domain.Amount, error) {
	if userID <= 0 {
		return 0, domain.ErrInvalidUserID
	}

	balance, err := s.store.Users().GetBalance(ctx, userID)
	if err != nil {
		return 0, classify("get balance", err)
	}

	return balance, nil
}

// apply runs the whole operation in one unit of work:
//
// 1) Lock the user row and read the balance.
// 2) Apply the effect, or decline a debit the balance does not cover.
// 3) Append the transaction to the transaction store.
// 4) Append the same record to the audit store.
func (s *Service) apply(ctx context.Context, userID int64, typ domain.TxType, amount domain.Amount) (domain.Result, error) {
	if userID <= 0 {
		return domain.Result{}, domain.ErrInvalidUserID
	}

	if !amount.IsPositive() {
		return domain.Result{}, domain.ErrInvalidAmount
	}

	if s.opTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opTimeout)
		defer cancel()
	}

	var (
		txn   domain.Transaction
		after domain.Amount
	)

	err := s.store.WithinTx(ctx, func(ctx context.Context, r repos.Repos) error {
		// 1) Lock user row
		balance, err := r.Users().LockAndGetBalance(ctx, userID)
		if err != nil {
			return fmt.Errorf("lock and get balance: %w", err)
		}

		// 2) Apply the effect
		status := domain.StatusSuccess

		switch typ {
		case domain.TxCredit:
			if amount > math.MaxInt64-balance {
				return domain.ErrBalanceOverflow
			}

			err = r.Users().IncreaseBalance(ctx, userID, amount)
			if err != nil {
				return fmt.Errorf("increase balance: %w", err)
			}

			after = balance + amount

		case domain.TxDebit:
			// pre-check against locked balance; a decline writes no user row
			if balance < amount {
				status = domain.StatusDecline
				after = balance

				break
			}

			err = r.Users().DecreaseBalance(ctx, userID, amount)
			if err != nil {
				return fmt.Errorf("decrease balance: %w", err)
			}

			after = balance - amount

		default:
			return fmt.Errorf("invalid transaction type: %s", typ)
		}

		txn = domain.Transaction{
			Envelope: domain.Envelope{
				UserID:     userID,
				OccurredAt: s.now().UTC().Truncate(time.Microsecond),
				Status:     status,
			},
			Type:   typ,
			Amount: amount,
		}

		// 3) Insert transaction record
		txn.ID, err = r.Transactions().Add(ctx, txn)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		// 4) Insert audit record
		_, err = r.Audit().Add(ctx, txn)
		if err != nil {
			return fmt.Errorf("insert audit record: %w", err)
		}

		return nil
	})
	if err != nil {
		err = classify(fmt.Sprintf("%s %d", typ, userID), err)
		logFailure(ctx, "ledger operation failed", err, slog.Int64("user_id", userID), slog.String("type", string(typ)))

		return domain.Result{}, err
	}

	if txn.Status == domain.StatusDecline {
		slog.InfoContext(ctx, "debit declined",
			slog.Int64("user_id", userID),
			slog.String("amount", amount.String()),
			slog.Int64("transaction_id", txn.ID),
		)

		return domain.Result{Outcome: domain.OutcomeNotEnoughMoney, Balance: after}, nil
	}

	slog.DebugContext(ctx, "ledger operation applied",
		slog.Int64("user_id", userID),
		slog.String("type", string(typ)),
		slog.String("amount", amount.String()),
		slog.Int64("transaction_id", txn.ID),
	)

	return domain.Result{Outcome: domain.OutcomeSuccess, Balance: after}, nil
}

// classify maps store errors onto the domain error kinds.
func classify(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, users.ErrUserNotFound), errors.Is(err, users.ErrBalanceOverflow):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrValidation, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%s: %w: %w", op, domain.ErrTimeout, err)
	default:
		return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
	}
}

func logFailure(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	level := slog.LevelError
	if errors.Is(err, domain.ErrValidation) {
		level = slog.LevelInfo
	}

	slog.LogAttrs(ctx, level, msg, append(attrs, slog.String("error", err.Error()))...)
}
