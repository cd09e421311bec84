package ledger

import (
	"context"

	"github.com/fastprodman/ledger/internal/domain"
)

// History returns every transaction recorded for the user, in store order.
// Callers that need chronological order sort by OccurredAt.
func (s *Service) History(ctx context.Context, userID int64) ([]domain.Transaction, error) {
	txns, err := s.store.Transactions().FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, classify("history", err)
	}

	return txns, nil
}

// Audit returns every transaction and action recorded for the user.
func (s *Service) Audit(ctx context.Context, userID int64) ([]domain.Auditable, error) {
	recs, err := s.store.Audit().FindAllByUserID(ctx, userID)
	if err != nil {
		return nil, classify("audit", err)
	}

	return recs, nil
}
