package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/flockrhq/flockr/internal/domain"
	"github.com/flockrhq/flockr/pkg/logger"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// respondErr maps core error kinds onto the wire. Both kinds flatten
// to 400; anything else is an internal fault.
func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInput):
		writeError(w, http.StatusBadRequest, "INPUT_ERROR", err.Error())
	case errors.Is(err, domain.ErrAccess):
		writeError(w, http.StatusBadRequest, "ACCESS_ERROR", err.Error())
	default:
		log := logger.Get()
		log.Error().Err(err).Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}

// pathID parses the {id} path segment named by key.
func pathID(r *http.Request, key string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(key), 10, 64)
	if err != nil {
		return 0, domain.Inputf("invalid %s", key)
	}
	return id, nil
}
