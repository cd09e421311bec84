package api

import (
	"time"

	"github.com/fastprodman/ledger/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type amountRequest struct {
	Amount string `json:"amount" validate:"required"`
}

type registerRequest struct {
	Username  string `json:"username" validate:"required,max=64"`
	Password  string `json:"password" validate:"required,min=4,max=72"`
	FirstName string `json:"firstName" validate:"max=128"`
	LastName  string `json:"lastName" validate:"max=128"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	FirstName string        `json:"firstName,omitempty"`
	LastName  string        `json:"lastName,omitempty"`
	Balance   domain.Amount `json:"balance"`
	CreatedAt time.Time     `json:"createdAt"`
}

type balanceResponse struct {
	UserID  int64         `json:"userId"`
	Balance domain.Amount `json:"balance"`
}

type outcomeResponse struct {
	Outcome domain.Outcome `json:"outcome"`
	Balance domain.Amount  `json:"balance"`
}

// recordResponse is the wire form of both variants; Kind tells them apart.
type recordResponse struct {
	ID         int64          `json:"id"`
	Kind       domain.Kind    `json:"kind"`
	UserID     int64          `json:"userId"`
	OccurredAt time.Time      `json:"occurredAt"`
	Status     domain.Status  `json:"status"`
	Type       string         `json:"type"`
	Amount     *domain.Amount `json:"amount,omitempty"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Balance:   u.Balance,
		CreatedAt: u.CreatedAt,
	}
}

func toRecordResponse(rec domain.Auditable) recordResponse {
	meta := rec.Meta()

	out := recordResponse{
		ID:         meta.ID,
		Kind:       rec.Kind(),
		UserID:     meta.UserID,
		OccurredAt: meta.OccurredAt,
		Status:     meta.Status,
	}

	switch v := rec.(type) {
	case domain.Transaction:
		amount := v.Amount
		out.Type = string(v.Type)
		out.Amount = &amount
	case domain.Action:
		out.Type = string(v.Type)
	}

	return out
}
