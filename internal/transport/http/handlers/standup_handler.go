package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flockrhq/flockr/internal/service"
	"github.com/flockrhq/flockr/internal/transport/http/middleware"
)

type StandupHandler struct {
	standupService *service.StandupService
}

func NewStandupHandler(standupService *service.StandupService) *StandupHandler {
	return &StandupHandler{standupService: standupService}
}

func (h *StandupHandler) Start(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "id")
	if err != nil {
		respondErr(w, err)
		return
	}
	var input struct {
		Length int64 `json:"length"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	deadline, err := h.standupService.Start(r.Context(), middleware.Token(r.Context()), channelID, input.Length)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"time_finish": deadline})
}

func (h *StandupHandler) Active(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "id")
	if err != nil {
		respondErr(w, err)
		return
	}

	status, err := h.standupService.Active(r.Context(), middleware.Token(r.Context()), channelID)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (h *StandupHandler) Send(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "id")
	if err != nil {
		respondErr(w, err)
		return
	}
	var input struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.standupService.Send(r.Context(), middleware.Token(r.Context()), channelID, input.Message); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{})
}
