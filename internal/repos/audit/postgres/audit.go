package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/infra/pgutils"
	"github.com/fastprodman/ledger/internal/repos/audit"
)

var _ audit.Audit = (*auditRepo)(nil)

type auditRepo struct{ db pgutils.DBTX }

// New returns an audit store bound to db, which may be a *sql.DB or a *sql.Tx.
func New(db pgutils.DBTX) *auditRepo {
	return &auditRepo{db: db}
}

const selectAuditable = `
	SELECT id, user_id, occurred_at, status, kind, tx_type, amount, action_type
	FROM audit_log
`

// row is the flattened shape of both variants; the kind column selects which
// of the nullable columns are set.
type row struct {
	id         int64
	userID     int64
	occurredAt time.Time
	status     string
	kind       string
	txType     sql.NullString
	amount     sql.NullInt64
	actionType sql.NullString
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuditable(s rowScanner) (domain.Auditable, error) {
	var r row

	err := s.Scan(&r.id, &r.userID, &r.occurredAt, &r.status, &r.kind, &r.txType, &r.amount, &r.actionType)
	if err != nil {
		return nil, err
	}

	return r.toDomain()
}

func (r row) toDomain() (domain.Auditable, error) {
	env := domain.Envelope{
		ID:         r.id,
		UserID:     r.userID,
		OccurredAt: r.occurredAt.UTC(),
		Status:     domain.Status(r.status),
	}

	switch domain.Kind(r.kind) {
	case domain.KindTransaction:
		return domain.Transaction{
			Envelope: env,
			Type:     domain.TxType(r.txType.String),
			Amount:   domain.Amount(r.amount.Int64),
		}, nil
	case domain.KindAction:
		return domain.Action{
			Envelope: env,
			Type:     domain.ActionType(r.actionType.String),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", audit.ErrUnknownVariant, r.kind)
	}
}

func fromDomain(rec domain.Auditable) (row, error) {
	meta := rec.Meta()

	r := row{
		userID:     meta.UserID,
		occurredAt: meta.OccurredAt,
		status:     string(meta.Status),
		kind:       string(rec.Kind()),
	}

	switch v := rec.(type) {
	case domain.Transaction:
		r.txType = sql.NullString{String: string(v.Type), Valid: true}
		r.amount = sql.NullInt64{Int64: int64(v.Amount), Valid: true}
	case domain.Action:
		r.actionType = sql.NullString{String: string(v.Type), Valid: true}
	default:
		return row{}, fmt.Errorf("%w: %T", audit.ErrUnknownVariant, rec)
	}

	return r, nil
}

func (a *auditRepo) Add(ctx context.Context, rec domain.Auditable) (int64, error) {
	r, err := fromDomain(rec)
	if err != nil {
		return 0, err
	}

	var id int64

	err = a.db.QueryRowContext(ctx, `
		INSERT INTO audit_log (user_id, occurred_at, status, kind, tx_type, amount, action_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, r.userID, r.occurredAt, r.status, r.kind, r.txType, r.amount, r.actionType).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert auditable: %w", err)
	}

	return id, nil
}

func (a *auditRepo) FindByID(ctx context.Context, id int64) (domain.Auditable, error) {
	rec, err := scanAuditable(a.db.QueryRowContext(ctx, selectAuditable+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, audit.ErrAuditableNotFound
		}

		return nil, fmt.Errorf("find auditable: %w", err)
	}

	return rec, nil
}

func (a *auditRepo) FindAllByUserID(ctx context.Context, userID int64) ([]domain.Auditable, error) {
	return a.list(ctx, selectAuditable+` WHERE user_id = $1 ORDER BY id`, userID)
}

func (a *auditRepo) GetAll(ctx context.Context) ([]domain.Auditable, error) {
	return a.list(ctx, selectAuditable+` ORDER BY id`)
}

func (a *auditRepo) list(ctx context.Context, query string, args ...any) ([]domain.Auditable, error) {
	rows, err := a.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	//nolint:errcheck
	defer rows.Close()

	out := make([]domain.Auditable, 0)

	for rows.Next() {
		rec, err := scanAuditable(rows)
		if err != nil {
			return nil, fmt.Errorf("scan auditable: %w", err)
		}

		out = append(out, rec)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate audit log: %w", err)
	}

	return out, nil
}
