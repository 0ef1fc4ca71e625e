package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/flockrhq/flockr/internal/service"
	"github.com/flockrhq/flockr/internal/transport/http/middleware"
)

type ChannelHandler struct {
	channelService *service.ChannelService
}

func NewChannelHandler(channelService *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

func (h *ChannelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		IsPublic bool   `json:"is_public"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	id, err := h.channelService.Create(r.Context(), middleware.Token(r.Context()), input.Name, input.IsPublic)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"channel_id": id})
}

func (h *ChannelHandler) List(w http.ResponseWriter, r *http.Request) {
	channels, err := h.channelService.List(r.Context(), middleware.Token(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"channels": channels})
}

func (h *ChannelHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	channels, err := h.channelService.ListAll(r.Context(), middleware.Token(r.Context()))
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"channels": channels})
}

func (h *ChannelHandler) Details(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "id")
	if err != nil {
		respondErr(w, err)
		return
	}

	details, err := h.channelService.Details(r.Context(), middleware.Token(r.Context()), channelID)
	if err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *ChannelHandler) Invite(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "id")
	if err != nil {
		respondErr(w, err)
		return
	}
	var input struct {
		UserID int64 `json:"u_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.channelService.Invite(r.Context(), middleware.Token(r.Context()), channelID, input.UserID); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (h *ChannelHandler) Join(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "id")
	if err != nil {
		respondErr(w, err)
		return
	}

	if err := h.channelService.Join(r.Context(), middleware.Token(r.Context()), channelID); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (h *ChannelHandler) Leave(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "id")
	if err != nil {
		respondErr(w, err)
		return
	}

	if err := h.channelService.Leave(r.Context(), middleware.Token(r.Context()), channelID); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (h *ChannelHandler) AddOwner(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "id")
	if err != nil {
		respondErr(w, err)
		return
	}
	var input struct {
		UserID int64 `json:"u_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.channelService.AddOwner(r.Context(), middleware.Token(r.Context()), channelID, input.UserID); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (h *ChannelHandler) RemoveOwner(w http.ResponseWriter, r *http.Request) {
	channelID, err := pathID(r, "id")
	if err != nil {
		respondErr(w, err)
		return
	}
	targetID, err := pathID(r, "uid")
	if err != nil {
		respondErr(w, err)
		return
	}

	if err := h.channelService.RemoveOwner(r.Context(), middleware.Token(r.Context()), channelID, targetID); err != nil {
		respondErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}
