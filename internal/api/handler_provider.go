package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/fastprodman/ledger/internal/domain"
	"github.com/fastprodman/ledger/internal/repos/users"
	"github.com/fastprodman/ledger/internal/services/accounts"
)

// maxBodyBytes caps every request body.
const maxBodyBytes = 1 << 20

// Ledger is the operation engine the handlers drive.
type Ledger interface {
	Credit(ctx context.Context, userID int64, amount domain.Amount) (domain.Result, error)
	Debit(ctx context.Context, userID int64, amount domain.Amount) (domain.Result, error)
	Balance(ctx context.Context, userID int64) (domain.Amount, error)
	History(ctx context.Context, userID int64) ([]domain.Transaction, error)
	Audit(ctx context.Context, userID int64) ([]domain.Auditable, error)
}

// Accounts covers registration and login.
type Accounts interface {
	Register(ctx context.Context, in accounts.NewUser) (domain.User, error)
	Login(ctx context.Context, username, password string) (domain.User, error)
	Logout(ctx context.Context, userID int64) error
	Users(ctx context.Context) ([]domain.User, error)
	User(ctx context.Context, userID int64) (domain.User, error)
}

// HandlerProvider exposes the ledger and account services as HTTP handlers.
type HandlerProvider struct {
	ledger   Ledger
	accounts Accounts
	validate *validator.Validate
}

func NewHandler(ledger Ledger, accounts Accounts) *HandlerProvider {
	return &HandlerProvider{
		ledger:   ledger,
		accounts: accounts,
		validate: newValidator(),
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps a service error onto a status code. Validation
// failures on an unknown user surface as 404.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, users.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username already taken")
	case errors.Is(err, accounts.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid username or password")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrTimeout):
		slog.WarnContext(r.Context(), "request timed out",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusServiceUnavailable, "temporarily unavailable")
	default:
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseUserIDFromPath reads `{userId}` from chi routes like:
//
//	GET  /user/{userId}/balance
//	POST /user/{userId}/credit
func parseUserIDFromPath(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "userId")
	if idStr == "" {
		return 0, fmt.Errorf("missing userId")
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid userId: %w", err)
	}

	if id <= 0 {
		return 0, fmt.Errorf("invalid userId: must be positive")
	}

	return id, nil
}

// decodeBody reads a JSON body into dst, rejecting unknown fields, then runs
// struct validation. The returned message is safe to send to the client.
func (h *HandlerProvider) decodeBody(w http.ResponseWriter, r *http.Request, dst any) (string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "empty body", false
		}

		return "invalid JSON", false
	}

	err = h.validate.Struct(dst)
	if err != nil {
		return validationMessage(err), false
	}

	return "", true
}
