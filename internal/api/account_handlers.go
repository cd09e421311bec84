package api

import (
	"net/http"

	"github.com/fastprodman/ledger/internal/services/accounts"
)

// RegisterHandler handles POST /users
func (h *HandlerProvider) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest

	msg, ok := h.decodeBody(w, r, &req)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	usr, err := h.accounts.Register(r.Context(), accounts.NewUser{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(usr))
}

// LoginHandler handles POST /users/login
func (h *HandlerProvider) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest

	msg, ok := h.decodeBody(w, r, &req)
	if !ok {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	usr, err := h.accounts.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(usr))
}

// ListUsersHandler handles GET /users
func (h *HandlerProvider) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	all, err := h.accounts.Users(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]userResponse, 0, len(all))
	for _, u := range all {
		out = append(out, toUserResponse(u))
	}

	writeJSON(w, http.StatusOK, out)
}

// GetUserHandler handles GET /user/{userId}
func (h *HandlerProvider) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	usr, err := h.accounts.User(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(usr))
}

// LogoutHandler handles POST /user/{userId}/logout
func (h *HandlerProvider) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUserIDFromPath(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid userId in path")
		return
	}

	err = h.accounts.Logout(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
