package audit

import (
	"context"
	"errors"

	"github.com/fastprodman/ledger/internal/domain"
)

var (
	ErrAuditableNotFound = errors.New("auditable not found")
	ErrUnknownVariant    = errors.New("unknown auditable variant")
)

// Audit is the append-only store of transactions and actions.
type Audit interface {
	Add(ctx context.Context, rec domain.Auditable) (int64, error)
	FindByID(ctx context.Context, id int64) (domain.Auditable, error)
	FindAllByUserID(ctx context.Context, userID int64) ([]domain.Auditable, error)
	GetAll(ctx context.Context) ([]domain.Auditable, error)
}
