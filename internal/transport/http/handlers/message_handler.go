package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/flockrhq/flockr/internal/service"
	"github.com/flockrhq/flockr/internal/transport/http/middleware"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
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

	receipt, err := h.messageService.Send(r.Context(), middleware.Token(r.Context()), channelID, input.Message)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, receipt)
}

// Page serves GET /channels/{id}/messages?start=N.
func (h *MessageHandler) Page(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "id")
	if err != nil {
		respondErr(w, err)
		return
	}

	start := 0
	if raw := r.URL.Query().Get("start"); raw != "" {
		start, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INPUT_ERROR", "start must be an integer")
			return
		}
	}

	page, err := h.messageService.Page(r.Context(), middleware.Token(r.Context()), channelID, start)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *MessageHandler) Edit(w http.ResponseWriter, r *http.Request) {
	messageID, err := pathID(r, "id")
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

	if err := h.messageService.Edit(r.Context(), middleware.Token(r.Context()), messageID, input.Message); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (h *MessageHandler) Remove(w http.ResponseWriter, r *http.Request) {
	messageID, err := pathID(r, "id")
	if err != nil {
		respondErr(w, err)
		return
	}

	if err := h.messageService.Remove(r.Context(), middleware.Token(r.Context()), messageID); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (h *MessageHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query_str")
	msgs, err := h.messageService.Search(r.Context(), middleware.Token(r.Context()), query)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}
