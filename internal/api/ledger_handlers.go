package api

import (
	"context"
	"net/http"

	"github.com/fastprodman/ledger/internal/domain"
)

// GetBalanceHandler handles GET /user/{userId}/balance
func (h *HandlerProvider) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	bal, err := h.ledger.Balance(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{UserID: userID, Balance: bal})
}

// CreditHandler handles POST /user/{userId}/credit
func (h *HandlerProvider) CreditHandler(w http.ResponseWriter, r *http.Request) {
	h.handleMovement(w, r, h.ledger.Credit)
}

// DebitHandler handles POST /user/{userId}/debit. A declined debit answers 409
// with outcome NOT_ENOUGH_MONEY.
func (h *HandlerProvider) DebitHandler(w http.ResponseWriter, r *http.Request) {
	h.handleMovement(w, r, h.ledger.Debit)
}

func (h *HandlerProvider) handleMovement(
	w http.ResponseWriter,
	r *http.Request,
	apply func(ctx context.Context, userID int64, amount domain.Amount) (domain.Result, error),
) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	var req amountRequest

	msg, ok := h.decodeBody(w, r, &req)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	amount, err := domain.ParseAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := apply(r.Context(), userID, amount)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if res.Outcome == domain.OutcomeNotEnoughMoney {
		status = http.StatusConflict
	}

	writeJSON(w, status, outcomeResponse{Outcome: res.Outcome, Balance: res.Balance})
}

// HistoryHandler handles GET /user/{userId}/history
func (h *HandlerProvider) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	txns, err := h.ledger.History(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]recordResponse, 0, len(txns))
	for _, txn := range txns {
		out = append(out, toRecordResponse(txn))
	}

	writeJSON(w, http.StatusOK, out)
}

// AuditHandler handles GET /user/{userId}/audit
func (h *HandlerProvider) AuditHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	recs, err := h.ledger.Audit(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]recordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toRecordResponse(rec))
	}

	writeJSON(w, http.StatusOK, out)
}
