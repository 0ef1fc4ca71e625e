package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flockrhq/flockr/internal/service"
	"github.com/flockrhq/flockr/internal/transport/http/middleware"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	uid, err := pathID(r, "id")
	if err != nil {
		respondErr(w, err)
		return
	}

	profile, err := h.userService.Profile(r.Context(), middleware.Token(r.Context()), uid)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": profile})
}

func (h *UserHandler) All(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.All(r.Context(), middleware.Token(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (h *UserHandler) SetName(w http.ResponseWriter, r *http.Request) {
	var input struct {
		NameFirst string `json:"name_first"`
		NameLast  string `json:"name_last"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.userService.SetName(r.Context(), middleware.Token(r.Context()), input.NameFirst, input.NameLast); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (h *UserHandler) SetEmail(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.userService.SetEmail(r.Context(), middleware.Token(r.Context()), input.Email); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (h *UserHandler) SetHandle(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Handle string `json:"handle_str"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.userService.SetHandle(r.Context(), middleware.Token(r.Context()), input.Handle); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}
